package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
)

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID           uuid.UUID                      `json:"supplier_id" binding:"required"`
	ExpectedDeliveryDate *time.Time                     `json:"expected_delivery_date"`
	TaxRate              *decimal.Decimal               `json:"tax_rate" binding:"omitempty,dgte0"`
	Items                []CreatePurchaseOrderItemInput `json:"items"`
	Notes                string                         `json:"notes"`
	CreatedBy            *uuid.UUID                     `json:"-"`
}

// CreatePurchaseOrderItemInput represents an item in the create order request
type CreatePurchaseOrderItemInput struct {
	PartCode    string          `json:"part_code" binding:"required,min=1,max=50"`
	PartName    string          `json:"part_name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"dgte0"`
}

// AddOrderItemRequest represents a request to add an item to a draft order
type AddOrderItemRequest struct {
	PartCode    string          `json:"part_code" binding:"required,min=1,max=50"`
	PartName    string          `json:"part_name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"dgte0"`
}

// UpdateOrderItemRequest represents a request to update a draft order item
type UpdateOrderItemRequest struct {
	Quantity  *decimal.Decimal `json:"quantity" binding:"omitempty,dgt0"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"omitempty,dgte0"`
}

// ApprovePurchaseOrderRequest carries optional approval notes
type ApprovePurchaseOrderRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// RejectPurchaseOrderRequest carries the mandatory rejection reason
type RejectPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// CancelPurchaseOrderRequest carries the mandatory cancellation reason
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// PurchaseOrderItemResponse represents an order line in API responses
type PurchaseOrderItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	PartCode          string          `json:"part_code"`
	PartName          string          `json:"part_name"`
	Description       string          `json:"description,omitempty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	OrderedQuantity   decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	Amount            decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID                   uuid.UUID                   `json:"id"`
	OrderNumber          string                      `json:"order_number"`
	SupplierID           uuid.UUID                   `json:"supplier_id"`
	SupplierName         string                      `json:"supplier_name"`
	OrderDate            time.Time                   `json:"order_date"`
	ExpectedDeliveryDate *time.Time                  `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time                  `json:"actual_delivery_date,omitempty"`
	Items                []PurchaseOrderItemResponse `json:"items"`
	Subtotal             decimal.Decimal             `json:"subtotal"`
	TaxRate              decimal.Decimal             `json:"tax_rate"`
	TaxAmount            decimal.Decimal             `json:"tax_amount"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	Status               string                      `json:"status"`
	Notes                string                      `json:"notes,omitempty"`
	SubmittedBy          *uuid.UUID                  `json:"submitted_by,omitempty"`
	SubmittedAt          *time.Time                  `json:"submitted_at,omitempty"`
	ApprovedBy           *uuid.UUID                  `json:"approved_by,omitempty"`
	ApprovedAt           *time.Time                  `json:"approved_at,omitempty"`
	ApprovalNotes        string                      `json:"approval_notes,omitempty"`
	CancelledAt          *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason         string                      `json:"cancel_reason,omitempty"`
	Version              int                         `json:"version"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain order to a response DTO
func ToPurchaseOrderResponse(order *procurement.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = PurchaseOrderItemResponse{
			ID:                item.ID,
			PartCode:          item.PartCode,
			PartName:          item.PartName,
			Description:       item.Description,
			UnitPrice:         item.UnitPrice,
			OrderedQuantity:   item.OrderedQuantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			RemainingQuantity: item.RemainingQuantity(),
			Amount:            item.Amount,
		}
	}

	return PurchaseOrderResponse{
		ID:                   order.ID,
		OrderNumber:          order.OrderNumber,
		SupplierID:           order.SupplierID,
		SupplierName:         order.SupplierName,
		OrderDate:            order.OrderDate,
		ExpectedDeliveryDate: order.ExpectedDeliveryDate,
		ActualDeliveryDate:   order.ActualDeliveryDate,
		Items:                items,
		Subtotal:             order.Subtotal,
		TaxRate:              order.TaxRate,
		TaxAmount:            order.TaxAmount,
		TotalAmount:          order.TotalAmount,
		Status:               order.Status.String(),
		Notes:                order.Notes,
		SubmittedBy:          order.SubmittedBy,
		SubmittedAt:          order.SubmittedAt,
		ApprovedBy:           order.ApprovedBy,
		ApprovedAt:           order.ApprovedAt,
		ApprovalNotes:        order.ApprovalNotes,
		CancelledAt:          order.CancelledAt,
		CancelReason:         order.CancelReason,
		Version:              order.GetVersion(),
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}

// ToPurchaseOrderResponses converts a slice of domain orders to response DTOs
func ToPurchaseOrderResponses(orders []*procurement.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = ToPurchaseOrderResponse(order)
	}
	return responses
}

// ==================== Goods Receipt DTOs ====================

// CreateGoodsReceiptRequest represents a request to record a receiving event
type CreateGoodsReceiptRequest struct {
	PurchaseOrderID uuid.UUID                `json:"purchase_order_id" binding:"required"`
	Items           []CreateReceiptLineInput `json:"items" binding:"required,min=1"`
	Notes           string                   `json:"notes"`
	ReceivedBy      uuid.UUID                `json:"-"`
}

// CreateReceiptLineInput represents one delivered line
type CreateReceiptLineInput struct {
	PartCode  string          `json:"part_code" binding:"required,min=1,max=50"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	Condition string          `json:"condition" binding:"omitempty,oneof=GOOD DAMAGED PARTIAL"`
	Notes     string          `json:"notes" binding:"max=500"`
}

// GoodsReceiptItemResponse represents a receipt line in API responses
type GoodsReceiptItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	PartCode         string          `json:"part_code"`
	PartName         string          `json:"part_name,omitempty"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	Condition        string          `json:"condition"`
	Matched          bool            `json:"matched"`
	Notes            string          `json:"notes,omitempty"`
}

// GoodsReceiptResponse represents a goods receipt in API responses
type GoodsReceiptResponse struct {
	ID              uuid.UUID                  `json:"id"`
	ReceiptNumber   string                     `json:"receipt_number"`
	PurchaseOrderID uuid.UUID                  `json:"purchase_order_id"`
	OrderNumber     string                     `json:"order_number"`
	SupplierID      uuid.UUID                  `json:"supplier_id"`
	ReceiptDate     time.Time                  `json:"receipt_date"`
	ReceivedBy      uuid.UUID                  `json:"received_by"`
	Status          string                     `json:"status"`
	Notes           string                     `json:"notes,omitempty"`
	Items           []GoodsReceiptItemResponse `json:"items"`
	Warnings        []string                   `json:"warnings,omitempty"`
	OrderStatus     string                     `json:"order_status,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
}

// ToGoodsReceiptResponse converts a domain receipt to a response DTO
func ToGoodsReceiptResponse(receipt *procurement.GoodsReceipt) GoodsReceiptResponse {
	items := make([]GoodsReceiptItemResponse, len(receipt.Items))
	for i, item := range receipt.Items {
		items[i] = GoodsReceiptItemResponse{
			ID:               item.ID,
			PartCode:         item.PartCode,
			PartName:         item.PartName,
			OrderedQuantity:  item.OrderedQuantity,
			ReceivedQuantity: item.ReceivedQuantity,
			Condition:        item.Condition.String(),
			Matched:          item.Matched,
			Notes:            item.Notes,
		}
	}

	return GoodsReceiptResponse{
		ID:              receipt.ID,
		ReceiptNumber:   receipt.ReceiptNumber,
		PurchaseOrderID: receipt.PurchaseOrderID,
		OrderNumber:     receipt.OrderNumber,
		SupplierID:      receipt.SupplierID,
		ReceiptDate:     receipt.ReceiptDate,
		ReceivedBy:      receipt.ReceivedBy,
		Status:          receipt.Status.String(),
		Notes:           receipt.Notes,
		Items:           items,
		CreatedAt:       receipt.CreatedAt,
	}
}

// ToGoodsReceiptResponses converts a slice of domain receipts to response DTOs
func ToGoodsReceiptResponses(receipts []*procurement.GoodsReceipt) []GoodsReceiptResponse {
	responses := make([]GoodsReceiptResponse, len(receipts))
	for i, receipt := range receipts {
		responses[i] = ToGoodsReceiptResponse(receipt)
	}
	return responses
}
