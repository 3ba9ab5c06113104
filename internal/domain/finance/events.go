package finance

import (
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the finance context
const (
	EventInvoiceCreated         = "finance.supplier_invoice.created"
	EventInvoicePaymentRecorded = "finance.supplier_invoice.payment_recorded"
	EventInvoicePaid            = "finance.supplier_invoice.paid"
	EventInvoiceCancelled       = "finance.supplier_invoice.cancelled"
)

// InvoiceCreatedEvent is raised when a supplier invoice is registered
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(invoice *SupplierInvoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoiceCreated, "SupplierInvoice", invoice.ID),
		InvoiceNumber:   invoice.InvoiceNumber,
		TotalAmount:     invoice.TotalAmount,
	}
}

// InvoicePaymentRecordedEvent is raised for each payment ledger entry
type InvoicePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
}

// NewInvoicePaymentRecordedEvent creates a new InvoicePaymentRecordedEvent
func NewInvoicePaymentRecordedEvent(invoice *SupplierInvoice, payment *InvoicePayment) *InvoicePaymentRecordedEvent {
	return &InvoicePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoicePaymentRecorded, "SupplierInvoice", invoice.ID),
		InvoiceNumber:   invoice.InvoiceNumber,
		Amount:          payment.Amount,
		Method:          payment.Method,
		PaidAmount:      invoice.PaidAmount,
	}
}

// InvoicePaidEvent is raised when the invoice becomes fully paid
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(invoice *SupplierInvoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoicePaid, "SupplierInvoice", invoice.ID),
		InvoiceNumber:   invoice.InvoiceNumber,
		TotalAmount:     invoice.TotalAmount,
	}
}

// InvoiceCancelledEvent is raised when an invoice is cancelled
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
	Reason        string `json:"reason"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(invoice *SupplierInvoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoiceCancelled, "SupplierInvoice", invoice.ID),
		InvoiceNumber:   invoice.InvoiceNumber,
		Reason:          invoice.CancelReason,
	}
}
