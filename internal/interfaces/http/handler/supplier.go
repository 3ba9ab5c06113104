package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/partsflow/backend/internal/application/partner"
)

// SupplierHandler handles supplier API endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// RegisterRoutes registers supplier routes on the given group
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.Create)
		suppliers.GET("", h.List)
		suppliers.GET("/:id", h.GetByID)
		suppliers.PUT("/:id", h.Update)
		suppliers.DELETE("/:id", h.Delete)
		suppliers.POST("/:id/activate", h.Activate)
		suppliers.POST("/:id/suspend", h.Suspend)
		suppliers.POST("/:id/blacklist", h.Blacklist)
	}
}

// Create creates a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, supplier)
}

// GetByID retrieves a supplier by ID
func (h *SupplierHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// List retrieves suppliers with pagination and filtering
func (h *SupplierHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// Delete removes a supplier. Suppliers with open purchase orders are
// deactivated instead of removed.
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	deleted, err := h.supplierService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if !deleted {
		h.Success(c, gin.H{"deleted": false, "deactivated": true})
		return
	}
	h.NoContent(c)
}

// Activate reactivates a supplier
func (h *SupplierHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.supplierService.Activate)
}

// Suspend suspends a supplier
func (h *SupplierHandler) Suspend(c *gin.Context) {
	h.changeStatus(c, h.supplierService.Suspend)
}

// Blacklist permanently blacklists a supplier
func (h *SupplierHandler) Blacklist(c *gin.Context) {
	h.changeStatus(c, h.supplierService.Blacklist)
}

func (h *SupplierHandler) changeStatus(c *gin.Context, change func(ctx context.Context, id uuid.UUID) (*partnerapp.SupplierResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	supplier, err := change(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}
