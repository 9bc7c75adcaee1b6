package handlers

import (
	"net/http"

	"shopledger/internal/common"
	"shopledger/internal/middleware"
	"shopledger/internal/models"
	"shopledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RepairHandlers handles repair HTTP requests
type RepairHandlers struct {
	repairService services.RepairService
}

// NewRepairHandlers creates a new repair handlers instance
func NewRepairHandlers(repairService services.RepairService) *RepairHandlers {
	return &RepairHandlers{repairService: repairService}
}

// CreateRepairRequest represents the repair creation request payload
type CreateRepairRequest struct {
	RepairNumber string     `json:"repair_number" validate:"required"`
	ItemID       *uuid.UUID `json:"item_id"`
	Vendor       *string    `json:"vendor"`
	RepairCost   *float64   `json:"repair_cost"`
	RepairNotes  *string    `json:"repair_notes"`
}

// CreateRepair handles creating a repair record (always created open)
func (h *RepairHandlers) CreateRepair(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateRepairRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.RepairNumber, "repair_number"); err != nil {
		return common.SendValidationError(c, "repair_number", err.Error())
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	repair := &models.Repair{
		RepairNumber: req.RepairNumber,
		ItemID:       req.ItemID,
		Vendor:       req.Vendor,
		RepairCost:   req.RepairCost,
		RepairNotes:  req.RepairNotes,
	}

	if err := h.repairService.Create(ctx, tenantID, repair); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, repair)
}

// GetRepair handles getting repair details by ID
func (h *RepairHandlers) GetRepair(c echo.Context) error {
	ctx := c.Request().Context()

	repairID, err := common.ValidateUUID(c.Param("id"), "repair_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	repair, err := h.repairService.GetByID(ctx, tenantID, repairID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Repair not found")
	}

	return c.JSON(http.StatusOK, repair)
}

// ListRepairsRequest represents query parameters for listing repairs
type ListRepairsRequest struct {
	Limit  int  `query:"limit"`
	Offset int  `query:"offset"`
	Open   bool `query:"open"`
}

// ListRepairs handles listing repairs, optionally only open ones
func (h *RepairHandlers) ListRepairs(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListRepairsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	limit, offset, err := common.ValidatePaginationParams(req.Limit, req.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var repairs []*models.Repair
	if req.Open {
		repairs, err = h.repairService.ListOpen(ctx, tenantID)
	} else {
		repairs, err = h.repairService.List(ctx, tenantID, limit, offset)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list repairs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"repairs": repairs,
		"limit":   limit,
		"offset":  offset,
	})
}
