package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/partsflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusPendingApproval   PurchaseOrderStatus = "PENDING_APPROVAL"
	PurchaseOrderStatusApproved          PurchaseOrderStatus = "APPROVED"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusPendingApproval, PurchaseOrderStatusApproved,
		PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no transition leaves this status
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusReceived || s == PurchaseOrderStatusCancelled
}

// CanReceive returns true if receiving goods is allowed in this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == PurchaseOrderStatusApproved || s == PurchaseOrderStatusPartiallyReceived
}

// CanCancel returns true if the order may be cancelled from this status.
// Cancellation is allowed from every non-terminal status, including after
// partial receipt.
func (s PurchaseOrderStatus) CanCancel() bool {
	return !s.IsTerminal()
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusPendingApproval || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPendingApproval:
		return target == PurchaseOrderStatusApproved || target == PurchaseOrderStatusDraft ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusApproved:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusReceived ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPartiallyReceived:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusReceived ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return false
	}
	return false
}

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	PartCode         string          `gorm:"type:varchar(50);not null"` // Matching key for receipt lines
	PartName         string          `gorm:"type:varchar(200);not null"`
	Description      string          `gorm:"type:varchar(500)"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Never decreases
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"` // OrderedQuantity * UnitPrice
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new purchase order item
func NewPurchaseOrderItem(orderID uuid.UUID, partCode, partName, description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*PurchaseOrderItem, error) {
	if partCode == "" {
		return nil, shared.NewValidationError("Part code cannot be empty")
	}
	if partName == "" {
		return nil, shared.NewValidationError("Part name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Ordered quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("Unit price cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:               uuid.New(),
		OrderID:          orderID,
		PartCode:         partCode,
		PartName:         partName,
		Description:      description,
		UnitPrice:        unitPrice.Amount(),
		OrderedQuantity:  quantity,
		ReceivedQuantity: decimal.Zero,
		Amount:           quantity.Mul(unitPrice.Amount()),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// RemainingQuantity returns the quantity still to be received.
// Clamped at zero: over-receipt must never drive it negative.
func (i *PurchaseOrderItem) RemainingQuantity() decimal.Decimal {
	remaining := i.OrderedQuantity.Sub(i.ReceivedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived returns true if all ordered quantity has been received
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.OrderedQuantity)
}

// UpdateQuantity updates the ordered quantity and recalculates the amount
func (i *PurchaseOrderItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Ordered quantity must be positive")
	}
	if quantity.LessThan(i.ReceivedQuantity) {
		return shared.NewValidationError("Ordered quantity cannot be less than received quantity")
	}

	i.OrderedQuantity = quantity
	i.Amount = quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the amount
func (i *PurchaseOrderItem) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewValidationError("Unit price cannot be negative")
	}

	i.UnitPrice = unitPrice.Amount()
	i.Amount = i.OrderedQuantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()

	return nil
}

// addReceived accumulates a receiving delta. Over-receipt is tolerated:
// the remaining quantity clamps at zero instead of going negative.
func (i *PurchaseOrderItem) addReceived(quantity decimal.Decimal) {
	i.ReceivedQuantity = i.ReceivedQuantity.Add(quantity)
	i.UpdatedAt = time.Now()
}

// PurchaseOrder represents a purchase order aggregate root.
// It owns the procurement lifecycle from draft through approval and
// receiving; it is never deleted, only cancelled.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber          string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName         string              `gorm:"type:varchar(200);not null"`
	OrderDate            time.Time           `gorm:"not null"`
	ExpectedDeliveryDate *time.Time          `gorm:"index"`
	ActualDeliveryDate   *time.Time          // Stamped on every receive; reflects the most recent delivery
	Items                []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal             decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate              decimal.Decimal     `gorm:"type:decimal(8,6);not null;default:0"`
	TaxAmount            decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount          decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Status               PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Notes                string              `gorm:"type:text"`
	SubmittedBy          *uuid.UUID          `gorm:"type:uuid"`
	SubmittedAt          *time.Time
	ApprovedBy           *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt           *time.Time
	ApprovalNotes        string `gorm:"type:varchar(500)"`
	CancelledAt          *time.Time
	CancelReason         string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in DRAFT status
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string, expectedDelivery *time.Time, taxRate decimal.Decimal) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewValidationError("Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewValidationError("Order number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewValidationError("Supplier name cannot be empty")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewValidationError("Tax rate cannot be negative")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		OrderNumber:          orderNumber,
		SupplierID:           supplierID,
		SupplierName:         supplierName,
		OrderDate:            time.Now(),
		ExpectedDeliveryDate: expectedDelivery,
		Items:                make([]PurchaseOrderItem, 0),
		Subtotal:             decimal.Zero,
		TaxRate:              taxRate,
		TaxAmount:            decimal.Zero,
		TotalAmount:          decimal.Zero,
		Status:               PurchaseOrderStatusDraft,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a new line item to the order.
// Only allowed in DRAFT status; duplicate part codes are rejected since
// the part code is the matching key for receipt reconciliation.
func (o *PurchaseOrder) AddItem(partCode, partName, description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*PurchaseOrderItem, error) {
	if o.Status != PurchaseOrderStatusDraft {
		return nil, shared.NewInvalidTransitionError("add items", o.Status.String())
	}

	for _, item := range o.Items {
		if item.PartCode == partCode {
			return nil, shared.NewValidationError("Part already exists on order, update quantity instead")
		}
	}

	item, err := NewPurchaseOrderItem(o.ID, partCode, partName, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return item, nil
}

// UpdateItemQuantity updates the ordered quantity of an existing item.
// Only allowed in DRAFT status.
func (o *PurchaseOrder) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewInvalidTransitionError("update items", o.Status.String())
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Order item not found")
}

// RemoveItem removes a line item from the order.
// Only allowed in DRAFT status.
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewInvalidTransitionError("remove items", o.Status.String())
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Order item not found")
}

// SetNotes sets the order notes
func (o *PurchaseOrder) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Submit sends the order for approval, transitioning DRAFT to PENDING_APPROVAL
func (o *PurchaseOrder) Submit(requestedBy uuid.UUID) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewInvalidTransitionError("submit", o.Status.String())
	}
	if len(o.Items) == 0 {
		return shared.NewValidationError("Cannot submit order without items")
	}
	if requestedBy == uuid.Nil {
		return shared.NewValidationError("Requester cannot be empty")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusPendingApproval
	o.SubmittedBy = &requestedBy
	o.SubmittedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderSubmittedEvent(o))

	return nil
}

// Approve approves the order, transitioning PENDING_APPROVAL to APPROVED
func (o *PurchaseOrder) Approve(approvedBy uuid.UUID, notes string) error {
	if o.Status != PurchaseOrderStatusPendingApproval {
		return shared.NewInvalidTransitionError("approve", o.Status.String())
	}
	if approvedBy == uuid.Nil {
		return shared.NewValidationError("Approver cannot be empty")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusApproved
	o.ApprovedBy = &approvedBy
	o.ApprovedAt = &now
	o.ApprovalNotes = notes
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderApprovedEvent(o))

	return nil
}

// Reject sends a pending order back to DRAFT for rework
func (o *PurchaseOrder) Reject(rejectedBy uuid.UUID, reason string) error {
	if o.Status != PurchaseOrderStatusPendingApproval {
		return shared.NewInvalidTransitionError("reject", o.Status.String())
	}
	if reason == "" {
		return shared.NewValidationError("Rejection reason is required")
	}

	o.Status = PurchaseOrderStatusDraft
	o.SubmittedBy = nil
	o.SubmittedAt = nil
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderRejectedEvent(o, rejectedBy, reason))

	return nil
}

// Receive folds a receiving event into the order line quantities.
// Allowed from APPROVED or PARTIALLY_RECEIVED. Lines with no matching
// part code are reported as warnings, not failures. The actual delivery
// date is stamped on every call (last-write-wins).
func (o *PurchaseOrder) Receive(lines []ReceiptLine) (*ReceiptApplication, error) {
	if !o.Status.CanReceive() {
		return nil, shared.NewInvalidTransitionError("receive goods", o.Status.String())
	}

	application, err := ApplyReceipt(o, lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if application.FullyReceived {
		o.Status = PurchaseOrderStatusReceived
	} else {
		o.Status = PurchaseOrderStatusPartiallyReceived
	}
	o.ActualDeliveryDate = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o, application))

	return application, nil
}

// Cancel cancels the order.
// Allowed from any non-terminal status, including PARTIALLY_RECEIVED;
// already-received quantities stay on record for history.
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanCancel() {
		return shared.NewInvalidTransitionError("cancel", o.Status.String())
	}
	if reason == "" {
		return shared.NewValidationError("Cancel reason is required")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o))

	return nil
}

// recalculateTotals recomputes subtotal, tax and total from line items.
// Totals are never mutated independently of the items.
func (o *PurchaseOrder) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	o.Subtotal = subtotal
	o.TaxAmount = subtotal.Mul(o.TaxRate).Round(2)
	o.TotalAmount = o.Subtotal.Add(o.TaxAmount)
}

// isAllItemsReceived checks if all items have been fully received
func (o *PurchaseOrder) isAllItemsReceived() bool {
	for _, item := range o.Items {
		if !item.IsFullyReceived() {
			return false
		}
	}
	return len(o.Items) > 0
}

// HasReceivedAnyGoods checks if any goods have been received
func (o *PurchaseOrder) HasReceivedAnyGoods() bool {
	for _, item := range o.Items {
		if item.ReceivedQuantity.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

// TotalOrderedQuantity returns the total ordered quantity across all items
func (o *PurchaseOrder) TotalOrderedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.OrderedQuantity)
	}
	return total
}

// TotalReceivedQuantity returns the total received quantity across all items
func (o *PurchaseOrder) TotalReceivedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.ReceivedQuantity)
	}
	return total
}

// TotalRemainingQuantity returns the total quantity still to be received
func (o *PurchaseOrder) TotalRemainingQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.RemainingQuantity())
	}
	return total
}

// GetItem returns an item by its ID
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// GetItemByPartCode returns an item by its part code
func (o *PurchaseOrder) GetItemByPartCode(partCode string) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].PartCode == partCode {
			return &o.Items[idx]
		}
	}
	return nil
}

// ItemCount returns the number of line items on the order
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

// IsDraft returns true if the order is in draft status
func (o *PurchaseOrder) IsDraft() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// IsPendingApproval returns true if the order is awaiting approval
func (o *PurchaseOrder) IsPendingApproval() bool {
	return o.Status == PurchaseOrderStatusPendingApproval
}

// IsApproved returns true if the order is approved
func (o *PurchaseOrder) IsApproved() bool {
	return o.Status == PurchaseOrderStatusApproved
}

// IsPartiallyReceived returns true if the order is partially received
func (o *PurchaseOrder) IsPartiallyReceived() bool {
	return o.Status == PurchaseOrderStatusPartiallyReceived
}

// IsReceived returns true if the order is fully received
func (o *PurchaseOrder) IsReceived() bool {
	return o.Status == PurchaseOrderStatusReceived
}

// IsCancelled returns true if the order is cancelled
func (o *PurchaseOrder) IsCancelled() bool {
	return o.Status == PurchaseOrderStatusCancelled
}

// IsTerminal returns true if the order is in a terminal state
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// CanModify returns true if the order items can still be edited
func (o *PurchaseOrder) CanModify() bool {
	return o.IsDraft()
}

// ReceiveProgress returns the receiving progress as a percentage (0-100)
func (o *PurchaseOrder) ReceiveProgress() decimal.Decimal {
	totalOrdered := o.TotalOrderedQuantity()
	if totalOrdered.IsZero() {
		return decimal.Zero
	}
	progress := o.TotalReceivedQuantity().Div(totalOrdered).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if progress.GreaterThan(hundred) {
		return hundred
	}
	return progress.Round(2)
}
