package handlers

import (
	"fmt"
	"net/http"
	"time"

	"shopledger/internal/common"
	"shopledger/internal/middleware"
	"shopledger/internal/models"
	"shopledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LogInHandlers handles log-in record HTTP requests
type LogInHandlers struct {
	reconcileService services.ReconcileService
	logInService     services.LogInService
}

// NewLogInHandlers creates a new log-in handlers instance
func NewLogInHandlers(reconcileService services.ReconcileService, logInService services.LogInService) *LogInHandlers {
	return &LogInHandlers{
		reconcileService: reconcileService,
		logInService:     logInService,
	}
}

// LogInLineItemRequest represents one received package or item
type LogInLineItemRequest struct {
	ID           *uuid.UUID `json:"id"`
	ItemNumber   *string    `json:"item_number"`
	Name         string     `json:"name" validate:"required"`
	ProductID    *uuid.UUID `json:"product_id"`
	RepairID     *uuid.UUID `json:"repair_id"`
	RepairNumber *string    `json:"repair_number"`
	RepairCost   *float64   `json:"repair_cost"`
}

// CreateLogInRequest represents the log-in creation request payload
type CreateLogInRequest struct {
	Date         *time.Time             `json:"date"`
	ReceivedFrom *string                `json:"received_from"`
	CustomerName *string                `json:"customer_name"`
	Comments     *string                `json:"comments"`
	LineItems    []LogInLineItemRequest `json:"line_items"`
}

func (req *CreateLogInRequest) toModel() *models.LogIn {
	login := &models.LogIn{
		ReceivedFrom: req.ReceivedFrom,
		CustomerName: req.CustomerName,
		Comments:     req.Comments,
	}
	if req.Date != nil {
		login.Date = *req.Date
	}
	for _, li := range req.LineItems {
		item := &models.LogInLineItem{
			ItemNumber:   li.ItemNumber,
			Name:         li.Name,
			ProductID:    li.ProductID,
			RepairID:     li.RepairID,
			RepairNumber: li.RepairNumber,
			RepairCost:   li.RepairCost,
		}
		if li.ID != nil {
			item.ID = *li.ID
		}
		login.LineItems = append(login.LineItems, item)
	}
	return login
}

// CreateLogIn records a receiving event and runs reconciliation over its line
// items. The record always persists; per-line-item results come back in the
// reconciliation report.
func (h *LogInHandlers) CreateLogIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateLogInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	for i, li := range req.LineItems {
		if li.Name == "" {
			return common.SendValidationError(c, "line_items", fmt.Sprintf("name is required for line item %d", i))
		}
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	login := req.toModel()
	if name, ok := common.GetUserNameFromContext(ctx); ok {
		login.User = &name
	}

	report, err := h.reconcileService.CreateLogIn(ctx, tenantID, login)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"log_in":         login,
		"reconciliation": report,
	})
}

// UpdateLogIn rewrites a log-in record and refreshes cost/notes on repairs the
// line items explicitly reference. Item statuses are not re-derived on edit.
func (h *LogInHandlers) UpdateLogIn(c echo.Context) error {
	ctx := c.Request().Context()

	logInID, err := common.ValidateUUID(c.Param("id"), "log_in_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req CreateLogInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	// The record must already exist; editing never creates.
	existing, err := h.logInService.GetByID(ctx, tenantID, logInID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Log-in record not found")
	}

	login := req.toModel()
	login.ID = existing.ID
	if login.Date.IsZero() {
		login.Date = existing.Date
	}
	login.User = existing.User
	if name, ok := common.GetUserNameFromContext(ctx); ok {
		login.User = &name
	}

	report, err := h.reconcileService.UpdateLogIn(ctx, tenantID, login)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"log_in":         login,
		"reconciliation": report,
	})
}

// GetLogIn handles getting a log-in record with its line items
func (h *LogInHandlers) GetLogIn(c echo.Context) error {
	ctx := c.Request().Context()

	logInID, err := common.ValidateUUID(c.Param("id"), "log_in_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	login, err := h.logInService.GetByID(ctx, tenantID, logInID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Log-in record not found")
	}

	return c.JSON(http.StatusOK, login)
}

// ListLogInsRequest represents query parameters for listing log-in records
type ListLogInsRequest struct {
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	Query  string `query:"q"`
}

// ListLogIns handles listing log-in records, optionally filtered by search text
func (h *LogInHandlers) ListLogIns(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListLogInsRequest
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

	var logins []*models.LogIn
	if req.Query != "" {
		logins, err = h.logInService.Search(ctx, tenantID, req.Query, limit, offset)
	} else {
		logins, err = h.logInService.List(ctx, tenantID, limit, offset)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list log-in records")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"log_ins": logins,
		"limit":   limit,
		"offset":  offset,
	})
}
