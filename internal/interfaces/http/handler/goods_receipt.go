package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/partsflow/backend/internal/application/procurement"
)

// GoodsReceiptHandler handles goods receipt API endpoints
type GoodsReceiptHandler struct {
	BaseHandler
	receivingService *procurementapp.ReceivingService
}

// NewGoodsReceiptHandler creates a new GoodsReceiptHandler
func NewGoodsReceiptHandler(receivingService *procurementapp.ReceivingService) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{receivingService: receivingService}
}

// RegisterRoutes registers goods receipt routes on the given group
func (h *GoodsReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/goods-receipts")
	{
		receipts.POST("", h.Create)
		receipts.GET("", h.List)
		receipts.GET("/:id", h.GetByID)
	}

	orders := rg.Group("/purchase-orders")
	{
		orders.GET("/:id/receipts", h.ListByOrder)
		orders.POST("/:id/rederive", h.RederiveQuantities)
	}
}

// Create records a receiving event against a purchase order
func (h *GoodsReceiptHandler) Create(c *gin.Context) {
	var req procurementapp.CreateGoodsReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Receiving requires an authenticated user")
		return
	}
	req.ReceivedBy = userID

	receipt, err := h.receivingService.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// GetByID retrieves a goods receipt
func (h *GoodsReceiptHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.receivingService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// List retrieves goods receipts with pagination and filtering
func (h *GoodsReceiptHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.receivingService.ListReceipts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListByOrder retrieves the receipt history of one purchase order
func (h *GoodsReceiptHandler) ListByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	receipts, err := h.receivingService.ListReceiptsByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipts)
}

// RederiveQuantities rebuilds an order's received quantities from its
// receipt history. This is the repair path for drifted totals.
func (h *GoodsReceiptHandler) RederiveQuantities(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.receivingService.RederiveOrderQuantities(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
