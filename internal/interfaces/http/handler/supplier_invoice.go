package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/partsflow/backend/internal/application/finance"
)

// SupplierInvoiceHandler handles supplier invoice API endpoints
type SupplierInvoiceHandler struct {
	BaseHandler
	invoiceService *financeapp.SupplierInvoiceService
}

// NewSupplierInvoiceHandler creates a new SupplierInvoiceHandler
func NewSupplierInvoiceHandler(invoiceService *financeapp.SupplierInvoiceService) *SupplierInvoiceHandler {
	return &SupplierInvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers supplier invoice routes on the given group
func (h *SupplierInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/supplier-invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/overdue", h.ListOverdue)
		invoices.GET("/:id", h.GetByID)
		invoices.POST("/:id/payments", h.RecordPayment)
		invoices.POST("/:id/mark-paid", h.MarkAsPaid)
		invoices.POST("/:id/cancel", h.Cancel)
	}
}

// Create registers a supplier invoice
func (h *SupplierInvoiceHandler) Create(c *gin.Context) {
	var req financeapp.CreateSupplierInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID retrieves an invoice including its payment ledger
func (h *SupplierInvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List retrieves invoices with pagination and filtering.
// Passing supplier_id scopes the listing to one supplier.
func (h *SupplierInvoiceHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("supplier_id"); raw != "" {
		supplierID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		result, err := h.invoiceService.ListBySupplier(c.Request.Context(), supplierID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListOverdue retrieves unsettled invoices past their due date
func (h *SupplierInvoiceHandler) ListOverdue(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.ListOverdue(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// RecordPayment appends a payment to the invoice ledger
func (h *SupplierInvoiceHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req financeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// MarkAsPaid settles the remaining balance in a single ledger entry
func (h *SupplierInvoiceHandler) MarkAsPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req financeapp.MarkAsPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.MarkAsPaid(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Cancel cancels an invoice. The ledger keeps its entries; cancelled
// invoices simply stop accepting payments.
func (h *SupplierInvoiceHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req financeapp.CancelInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}
