package procurement

import (
	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the procurement context
const (
	EventPurchaseOrderCreated   = "procurement.purchase_order.created"
	EventPurchaseOrderSubmitted = "procurement.purchase_order.submitted"
	EventPurchaseOrderApproved  = "procurement.purchase_order.approved"
	EventPurchaseOrderRejected  = "procurement.purchase_order.rejected"
	EventPurchaseOrderReceived  = "procurement.purchase_order.received"
	EventPurchaseOrderCancelled = "procurement.purchase_order.cancelled"
	EventGoodsReceiptCreated    = "procurement.goods_receipt.created"
)

// PurchaseOrderCreatedEvent is raised when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string    `json:"order_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPurchaseOrderCreated, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
	}
}

// PurchaseOrderSubmittedEvent is raised when an order is sent for approval
type PurchaseOrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SubmittedBy uuid.UUID       `json:"submitted_by"`
}

// NewPurchaseOrderSubmittedEvent creates a new PurchaseOrderSubmittedEvent
func NewPurchaseOrderSubmittedEvent(order *PurchaseOrder) *PurchaseOrderSubmittedEvent {
	event := &PurchaseOrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPurchaseOrderSubmitted, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
	}
	if order.SubmittedBy != nil {
		event.SubmittedBy = *order.SubmittedBy
	}
	return event
}

// PurchaseOrderApprovedEvent is raised when an order is approved
type PurchaseOrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ApprovedBy  uuid.UUID       `json:"approved_by"`
}

// NewPurchaseOrderApprovedEvent creates a new PurchaseOrderApprovedEvent
func NewPurchaseOrderApprovedEvent(order *PurchaseOrder) *PurchaseOrderApprovedEvent {
	event := &PurchaseOrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPurchaseOrderApproved, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
	}
	if order.ApprovedBy != nil {
		event.ApprovedBy = *order.ApprovedBy
	}
	return event
}

// PurchaseOrderRejectedEvent is raised when a pending order is sent back to draft
type PurchaseOrderRejectedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string    `json:"order_number"`
	RejectedBy  uuid.UUID `json:"rejected_by"`
	Reason      string    `json:"reason"`
}

// NewPurchaseOrderRejectedEvent creates a new PurchaseOrderRejectedEvent
func NewPurchaseOrderRejectedEvent(order *PurchaseOrder, rejectedBy uuid.UUID, reason string) *PurchaseOrderRejectedEvent {
	return &PurchaseOrderRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPurchaseOrderRejected, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		RejectedBy:      rejectedBy,
		Reason:          reason,
	}
}

// PurchaseOrderReceivedEvent is raised each time goods are received against an order
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string   `json:"order_number"`
	FullyReceived bool     `json:"fully_received"`
	Warnings      []string `json:"warnings,omitempty"`
}

// NewPurchaseOrderReceivedEvent creates a new PurchaseOrderReceivedEvent
func NewPurchaseOrderReceivedEvent(order *PurchaseOrder, application *ReceiptApplication) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPurchaseOrderReceived, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		FullyReceived:   application.FullyReceived,
		Warnings:        application.Warnings,
	}
}

// PurchaseOrderCancelledEvent is raised when an order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(order *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPurchaseOrderCancelled, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		Reason:          order.CancelReason,
	}
}

// GoodsReceiptCreatedEvent is raised when a goods receipt is recorded
type GoodsReceiptCreatedEvent struct {
	shared.BaseDomainEvent
	ReceiptNumber   string             `json:"receipt_number"`
	PurchaseOrderID uuid.UUID          `json:"purchase_order_id"`
	Status          GoodsReceiptStatus `json:"status"`
}

// NewGoodsReceiptCreatedEvent creates a new GoodsReceiptCreatedEvent
func NewGoodsReceiptCreatedEvent(receipt *GoodsReceipt) *GoodsReceiptCreatedEvent {
	return &GoodsReceiptCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventGoodsReceiptCreated, "GoodsReceipt", receipt.ID),
		ReceiptNumber:   receipt.ReceiptNumber,
		PurchaseOrderID: receipt.PurchaseOrderID,
		Status:          receipt.Status,
	}
}
