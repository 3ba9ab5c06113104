package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateSupplierInvoiceRequest represents a request to register a supplier
// invoice. When billed lines are given, the subtotal is re-derived from
// them; otherwise the given subtotal stands.
type CreateSupplierInvoiceRequest struct {
	SupplierID            uuid.UUID                `json:"supplier_id" binding:"required"`
	SupplierInvoiceNumber string                   `json:"supplier_invoice_number" binding:"required,min=1,max=100"`
	PurchaseOrderID       *uuid.UUID               `json:"purchase_order_id"`
	GoodsReceiptID        *uuid.UUID               `json:"goods_receipt_id"`
	InvoiceDate           time.Time                `json:"invoice_date" binding:"required"`
	DueDate               *time.Time               `json:"due_date"`
	Items                 []CreateInvoiceItemInput `json:"items" binding:"omitempty,dive"`
	Subtotal              decimal.Decimal          `json:"subtotal" binding:"required,dgt0"`
	TaxAmount             decimal.Decimal          `json:"tax_amount" binding:"dgte0"`
	Notes                 string                   `json:"notes"`
}

// CreateInvoiceItemInput represents one billed line in the create request
type CreateInvoiceItemInput struct {
	PartCode    string          `json:"part_code" binding:"required,min=1,max=50"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"dgte0"`
}

// RecordPaymentRequest represents a request to record a payment against an invoice
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Method    string          `json:"method" binding:"required,oneof=BANK_TRANSFER CHECK CASH CREDIT_CARD OTHER"`
	Reference string          `json:"reference" binding:"max=100"`
	Notes     string          `json:"notes" binding:"max=500"`
	PaidAt    *time.Time      `json:"paid_at"`
}

// MarkAsPaidRequest represents a request to settle the remaining balance
type MarkAsPaidRequest struct {
	Method    string `json:"method" binding:"required,oneof=BANK_TRANSFER CHECK CASH CREDIT_CARD OTHER"`
	Reference string `json:"reference" binding:"max=100"`
}

// CancelInvoiceRequest carries the mandatory cancellation reason
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// InvoiceItemResponse represents a billed line in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	PartCode    string          `json:"part_code"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoicePaymentResponse represents a ledger entry in API responses
type InvoicePaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	PaidAt    time.Time       `json:"paid_at"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// SupplierInvoiceResponse represents a supplier invoice in API responses
type SupplierInvoiceResponse struct {
	ID                    uuid.UUID                `json:"id"`
	InvoiceNumber         string                   `json:"invoice_number"`
	SupplierInvoiceNumber string                   `json:"supplier_invoice_number"`
	SupplierID            uuid.UUID                `json:"supplier_id"`
	SupplierName          string                   `json:"supplier_name"`
	PurchaseOrderID       *uuid.UUID               `json:"purchase_order_id,omitempty"`
	OrderNumber           string                   `json:"order_number,omitempty"`
	GoodsReceiptID        *uuid.UUID               `json:"goods_receipt_id,omitempty"`
	ReceiptNumber         string                   `json:"receipt_number,omitempty"`
	InvoiceDate           time.Time                `json:"invoice_date"`
	DueDate               time.Time                `json:"due_date"`
	Subtotal              decimal.Decimal          `json:"subtotal"`
	TaxAmount             decimal.Decimal          `json:"tax_amount"`
	TotalAmount           decimal.Decimal          `json:"total_amount"`
	PaidAmount            decimal.Decimal          `json:"paid_amount"`
	RemainingBalance      decimal.Decimal          `json:"remaining_balance"`
	Status                string                   `json:"status"`
	PaymentStatus         string                   `json:"payment_status"`
	Items                 []InvoiceItemResponse    `json:"items,omitempty"`
	Payments              []InvoicePaymentResponse `json:"payments"`
	Notes                 string                   `json:"notes,omitempty"`
	CancelledAt           *time.Time               `json:"cancelled_at,omitempty"`
	CancelReason          string                   `json:"cancel_reason,omitempty"`
	Version               int                      `json:"version"`
	CreatedAt             time.Time                `json:"created_at"`
	UpdatedAt             time.Time                `json:"updated_at"`
}

// ToSupplierInvoiceResponse converts a domain invoice to a response DTO
func ToSupplierInvoiceResponse(invoice *finance.SupplierInvoice) SupplierInvoiceResponse {
	items := make([]InvoiceItemResponse, len(invoice.Items))
	for i, it := range invoice.Items {
		items[i] = InvoiceItemResponse{
			ID:          it.ID,
			PartCode:    it.PartCode,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
		}
	}

	payments := make([]InvoicePaymentResponse, len(invoice.Payments))
	for i, p := range invoice.Payments {
		payments[i] = InvoicePaymentResponse{
			ID:        p.ID,
			PaidAt:    p.PaidAt,
			Amount:    p.Amount,
			Method:    string(p.Method),
			Reference: p.Reference,
			Notes:     p.Notes,
		}
	}

	return SupplierInvoiceResponse{
		ID:                    invoice.ID,
		InvoiceNumber:         invoice.InvoiceNumber,
		SupplierInvoiceNumber: invoice.SupplierInvoiceNumber,
		SupplierID:            invoice.SupplierID,
		SupplierName:          invoice.SupplierName,
		PurchaseOrderID:       invoice.PurchaseOrderID,
		OrderNumber:           invoice.OrderNumber,
		GoodsReceiptID:        invoice.GoodsReceiptID,
		ReceiptNumber:         invoice.ReceiptNumber,
		InvoiceDate:           invoice.InvoiceDate,
		DueDate:               invoice.DueDate,
		Subtotal:              invoice.Subtotal,
		TaxAmount:             invoice.TaxAmount,
		TotalAmount:           invoice.TotalAmount,
		PaidAmount:            invoice.PaidAmount,
		RemainingBalance:      invoice.RemainingBalance(),
		Status:                invoice.Status.String(),
		PaymentStatus:         invoice.PaymentStatus.String(),
		Items:                 items,
		Payments:              payments,
		Notes:                 invoice.Notes,
		CancelledAt:           invoice.CancelledAt,
		CancelReason:          invoice.CancelReason,
		Version:               invoice.GetVersion(),
		CreatedAt:             invoice.CreatedAt,
		UpdatedAt:             invoice.UpdatedAt,
	}
}

// ToSupplierInvoiceResponses converts a slice of domain invoices to response DTOs
func ToSupplierInvoiceResponses(invoices []*finance.SupplierInvoice) []SupplierInvoiceResponse {
	responses := make([]SupplierInvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		responses[i] = ToSupplierInvoiceResponse(invoice)
	}
	return responses
}
