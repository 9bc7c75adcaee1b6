package handlers

import (
	"net/http"

	"shopledger/internal/common"
	"shopledger/internal/middleware"
	"shopledger/internal/models"
	"shopledger/internal/services"

	"github.com/labstack/echo/v4"
)

// ItemHandlers handles inventory item HTTP requests
type ItemHandlers struct {
	itemService services.ItemService
}

// NewItemHandlers creates a new item handlers instance
func NewItemHandlers(itemService services.ItemService) *ItemHandlers {
	return &ItemHandlers{itemService: itemService}
}

// CreateItemRequest represents the item creation request payload
type CreateItemRequest struct {
	ItemNumber string            `json:"item_number" validate:"required"`
	Name       string            `json:"name" validate:"required"`
	Status     models.ItemStatus `json:"status"`
}

// CreateItem handles creating an inventory item
func (h *ItemHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.ItemNumber, "item_number"); err != nil {
		return common.SendValidationError(c, "item_number", err.Error())
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	item := &models.Item{
		ItemNumber: req.ItemNumber,
		Name:       req.Name,
		Status:     req.Status,
	}

	if err := h.itemService.Create(ctx, tenantID, item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, item)
}

// GetItem handles getting item details by ID
func (h *ItemHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "item_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	item, err := h.itemService.GetByID(ctx, tenantID, itemID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Item not found")
	}

	return c.JSON(http.StatusOK, item)
}

// GetItemHistory returns the item's full event history in replay order
func (h *ItemHandlers) GetItemHistory(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "item_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	events, err := h.itemService.GetHistory(ctx, tenantID, itemID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load item history")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"item_id": itemID,
		"history": events,
	})
}

// SetItemStatusRequest represents a manual status edit
type SetItemStatusRequest struct {
	Status models.ItemStatus `json:"status" validate:"required"`
}

// SetItemStatus handles manual item status edits
func (h *ItemHandlers) SetItemStatus(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "item_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req SetItemStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Status == "" {
		return common.SendValidationError(c, "status", "status is required")
	}

	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var user *string
	if name, ok := common.GetUserNameFromContext(ctx); ok {
		user = &name
	}

	if err := h.itemService.SetStatus(ctx, tenantID, itemID, req.Status, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Item status updated successfully",
	})
}

// ListItemsRequest represents query parameters for listing items
type ListItemsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListItems handles getting a list of items with tenant filtering
func (h *ItemHandlers) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListItemsRequest
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

	items, err := h.itemService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}
