package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the overall status of a supplier invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled     InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the invoice can no longer change
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// PaymentStatus summarizes how much of the invoice has been settled
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheck        PaymentMethod = "CHECK"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the value is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodCash,
		PaymentMethodCreditCard, PaymentMethodOther:
		return true
	}
	return false
}

// InvoicePayment is one entry in the invoice payment ledger.
// Entries are append-only; corrections go in as new entries.
type InvoicePayment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaidAt    time.Time       `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null"`
	Reference string          `gorm:"type:varchar(100)"`
	Notes     string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoicePayment) TableName() string {
	return "invoice_payments"
}

// InvoiceItem is one billed line on a supplier invoice
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PartCode    string          `gorm:"type:varchar(50);not null"`
	Description string          `gorm:"type:varchar(500)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// SupplierInvoice represents a supplier invoice aggregate root.
// The payment ledger is the source of truth: PaidAmount and the two
// status fields are always recomputed from the ledger, never set
// independently.
type SupplierInvoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber         string           `gorm:"type:varchar(50);not null;uniqueIndex"` // Internal number (INV-YYYY-NNNNN)
	SupplierInvoiceNumber string           `gorm:"type:varchar(100);not null;index"`      // Number printed on the supplier's document
	SupplierID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	SupplierName          string           `gorm:"type:varchar(200);not null"`
	PurchaseOrderID       *uuid.UUID       `gorm:"type:uuid;index"`
	OrderNumber           string           `gorm:"type:varchar(50)"`
	GoodsReceiptID        *uuid.UUID       `gorm:"type:uuid;index"`
	ReceiptNumber         string           `gorm:"type:varchar(50)"`
	InvoiceDate           time.Time        `gorm:"not null"`
	DueDate               time.Time        `gorm:"not null"`
	Subtotal              decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	TaxAmount             decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount           decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PaidAmount            decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status                InvoiceStatus    `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	PaymentStatus         PaymentStatus    `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	Items                 []InvoiceItem    `gorm:"foreignKey:InvoiceID;references:ID"`
	Payments              []InvoicePayment `gorm:"foreignKey:InvoiceID;references:ID"`
	Notes                 string           `gorm:"type:text"`
	CancelledAt           *time.Time
	CancelReason          string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SupplierInvoice) TableName() string {
	return "supplier_invoices"
}

// NewSupplierInvoice creates a new unpaid supplier invoice
func NewSupplierInvoice(invoiceNumber, supplierInvoiceNumber string, supplierID uuid.UUID, supplierName string, invoiceDate, dueDate time.Time, subtotal, taxAmount decimal.Decimal) (*SupplierInvoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewValidationError("Invoice number cannot be empty")
	}
	if supplierInvoiceNumber == "" {
		return nil, shared.NewValidationError("Supplier invoice number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewValidationError("Supplier name cannot be empty")
	}
	if subtotal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Invoice subtotal must be positive")
	}
	if taxAmount.IsNegative() {
		return nil, shared.NewValidationError("Tax amount cannot be negative")
	}
	if dueDate.Before(invoiceDate) {
		return nil, shared.NewValidationError("Due date cannot be before invoice date")
	}

	invoice := &SupplierInvoice{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		InvoiceNumber:         invoiceNumber,
		SupplierInvoiceNumber: supplierInvoiceNumber,
		SupplierID:            supplierID,
		SupplierName:          supplierName,
		InvoiceDate:           invoiceDate,
		DueDate:               dueDate,
		Subtotal:              subtotal,
		TaxAmount:             taxAmount,
		TotalAmount:           subtotal.Add(taxAmount),
		PaidAmount:            decimal.Zero,
		Status:                InvoiceStatusUnpaid,
		PaymentStatus:         PaymentStatusUnpaid,
		Items:                 make([]InvoiceItem, 0),
		Payments:              make([]InvoicePayment, 0),
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// LinkPurchaseOrder associates the invoice with a purchase order
func (i *SupplierInvoice) LinkPurchaseOrder(purchaseOrderID uuid.UUID, orderNumber string) error {
	if purchaseOrderID == uuid.Nil {
		return shared.NewValidationError("Purchase order ID cannot be empty")
	}
	i.PurchaseOrderID = &purchaseOrderID
	i.OrderNumber = orderNumber
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// LinkGoodsReceipt associates the invoice with a goods receipt
func (i *SupplierInvoice) LinkGoodsReceipt(receiptID uuid.UUID, receiptNumber string) error {
	if receiptID == uuid.Nil {
		return shared.NewValidationError("Goods receipt ID cannot be empty")
	}
	i.GoodsReceiptID = &receiptID
	i.ReceiptNumber = receiptNumber
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// AddItem appends a billed line and re-derives the subtotal and total
// from the lines. Billed lines are frozen once a payment exists: the
// ledger settles against a fixed total.
func (i *SupplierInvoice) AddItem(partCode, description string, quantity, unitPrice decimal.Decimal) (*InvoiceItem, error) {
	if i.Status == InvoiceStatusCancelled {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot change a cancelled invoice")
	}
	if len(i.Payments) > 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot change billed lines after payments were recorded")
	}
	if partCode == "" {
		return nil, shared.NewValidationError("Part code cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Billed quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("Unit price cannot be negative")
	}

	item := InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   i.ID,
		PartCode:    partCode,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
		CreatedAt:   time.Now(),
	}
	i.Items = append(i.Items, item)

	subtotal := decimal.Zero
	for _, it := range i.Items {
		subtotal = subtotal.Add(it.Amount)
	}
	i.Subtotal = subtotal
	i.TotalAmount = subtotal.Add(i.TaxAmount)
	i.recompute()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return &i.Items[len(i.Items)-1], nil
}

// RemainingBalance returns the amount still owed
func (i *SupplierInvoice) RemainingBalance() decimal.Decimal {
	remaining := i.TotalAmount.Sub(i.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RecordPayment appends a payment to the ledger and recomputes paid
// amount and statuses. Payments on a cancelled invoice are rejected
// and leave the ledger untouched. Overpayment is recorded, not
// rejected: credit and refund situations are settled outside this
// aggregate, and the ledger must reflect what actually happened.
func (i *SupplierInvoice) RecordPayment(amount decimal.Decimal, method PaymentMethod, reference, notes string, paidAt time.Time) (*InvoicePayment, error) {
	if i.Status == InvoiceStatusCancelled {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot record payment on a cancelled invoice")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("Invalid payment method")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	payment := InvoicePayment{
		ID:        uuid.New(),
		InvoiceID: i.ID,
		PaidAt:    paidAt,
		Amount:    amount,
		Method:    method,
		Reference: reference,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
	i.Payments = append(i.Payments, payment)

	i.recompute()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoicePaymentRecordedEvent(i, &payment))
	if i.PaymentStatus == PaymentStatusPaid {
		i.AddDomainEvent(NewInvoicePaidEvent(i))
	}

	return &payment, nil
}

// MarkAsPaid settles the remaining balance with a single ledger entry.
//
// Deprecated: prefer RecordPayment with an explicit amount. Kept for
// callers that settle invoices in one step.
func (i *SupplierInvoice) MarkAsPaid(method PaymentMethod, reference string) (*InvoicePayment, error) {
	if i.PaymentStatus == PaymentStatusPaid {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Invoice is already fully paid")
	}
	return i.RecordPayment(i.RemainingBalance(), method, reference, "", time.Now())
}

// Cancel cancels the invoice. A fully paid invoice cannot be
// cancelled, and cancellation is sticky: no payment or further
// transition is possible afterwards.
func (i *SupplierInvoice) Cancel(reason string) error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewInvalidTransitionError("cancel", i.Status.String())
	}
	if i.PaymentStatus == PaymentStatusPaid {
		return shared.NewInvalidTransitionError("cancel", i.Status.String())
	}
	if reason == "" {
		return shared.NewValidationError("Cancel reason is required")
	}

	now := time.Now()
	i.Status = InvoiceStatusCancelled
	i.CancelledAt = &now
	i.CancelReason = reason
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceCancelledEvent(i))

	return nil
}

// SetNotes sets free-form notes
func (i *SupplierInvoice) SetNotes(notes string) {
	i.Notes = notes
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// RefreshStatus re-derives the status fields from the ledger and the
// due date. Call after loading when the overdue flag may be stale.
func (i *SupplierInvoice) RefreshStatus() {
	if i.Status == InvoiceStatusCancelled {
		return
	}
	i.recompute()
}

// IsOverdue returns true if the invoice is unpaid past its due date
func (i *SupplierInvoice) IsOverdue() bool {
	if i.Status == InvoiceStatusCancelled || i.PaymentStatus == PaymentStatusPaid {
		return false
	}
	return time.Now().After(i.DueDate)
}

// IsCancelled returns true if the invoice is cancelled
func (i *SupplierInvoice) IsCancelled() bool {
	return i.Status == InvoiceStatusCancelled
}

// PaymentCount returns the number of ledger entries
func (i *SupplierInvoice) PaymentCount() int {
	return len(i.Payments)
}

// recompute derives PaidAmount, PaymentStatus and Status from the
// ledger. The cancelled status is sticky and never recomputed away.
func (i *SupplierInvoice) recompute() {
	paid := decimal.Zero
	for _, p := range i.Payments {
		paid = paid.Add(p.Amount)
	}
	i.PaidAmount = paid

	switch {
	case paid.GreaterThanOrEqual(i.TotalAmount):
		i.PaymentStatus = PaymentStatusPaid
	case paid.GreaterThan(decimal.Zero):
		i.PaymentStatus = PaymentStatusPartial
	default:
		i.PaymentStatus = PaymentStatusUnpaid
	}

	if i.Status == InvoiceStatusCancelled {
		return
	}

	switch i.PaymentStatus {
	case PaymentStatusPaid:
		i.Status = InvoiceStatusPaid
	case PaymentStatusPartial:
		if time.Now().After(i.DueDate) {
			i.Status = InvoiceStatusOverdue
		} else {
			i.Status = InvoiceStatusPartiallyPaid
		}
	default:
		if time.Now().After(i.DueDate) {
			i.Status = InvoiceStatusOverdue
		} else {
			i.Status = InvoiceStatusUnpaid
		}
	}
}
