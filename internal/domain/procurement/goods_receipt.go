package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceiptCondition describes the condition goods arrived in
type ReceiptCondition string

const (
	ReceiptConditionGood    ReceiptCondition = "GOOD"
	ReceiptConditionDamaged ReceiptCondition = "DAMAGED"
	ReceiptConditionPartial ReceiptCondition = "PARTIAL"
)

// IsValid checks if the condition is a valid ReceiptCondition
func (c ReceiptCondition) IsValid() bool {
	switch c {
	case ReceiptConditionGood, ReceiptConditionDamaged, ReceiptConditionPartial:
		return true
	}
	return false
}

// String returns the string representation of ReceiptCondition
func (c ReceiptCondition) String() string {
	return string(c)
}

// GoodsReceiptStatus summarizes an entire receipt
type GoodsReceiptStatus string

const (
	GoodsReceiptStatusComplete GoodsReceiptStatus = "COMPLETE"
	GoodsReceiptStatusPartial  GoodsReceiptStatus = "PARTIAL"
	GoodsReceiptStatusDamaged  GoodsReceiptStatus = "DAMAGED"
)

// IsValid checks if the status is a valid GoodsReceiptStatus
func (s GoodsReceiptStatus) IsValid() bool {
	switch s {
	case GoodsReceiptStatusComplete, GoodsReceiptStatusPartial, GoodsReceiptStatusDamaged:
		return true
	}
	return false
}

// String returns the string representation of GoodsReceiptStatus
func (s GoodsReceiptStatus) String() string {
	return string(s)
}

// GoodsReceiptItem is one line of a goods receipt. It snapshots the
// ordered quantity at receiving time so the receipt stays meaningful
// even if the order is later amended.
type GoodsReceiptItem struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key"`
	ReceiptID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	PartCode         string           `gorm:"type:varchar(50);not null"`
	PartName         string           `gorm:"type:varchar(200)"`
	OrderedQuantity  decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Condition        ReceiptCondition `gorm:"type:varchar(20);not null;default:'GOOD'"`
	Matched          bool             `gorm:"not null;default:true"` // False when the part code was not on the order
	Notes            string           `gorm:"type:varchar(500)"`
	CreatedAt        time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GoodsReceiptItem) TableName() string {
	return "goods_receipt_items"
}

// GoodsReceipt is an immutable record of a single receiving event
// against a purchase order. Once created it is never modified; any
// correction happens through a new receipt or order-level repair.
type GoodsReceipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber   string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	PurchaseOrderID uuid.UUID          `gorm:"type:uuid;not null;index"`
	OrderNumber     string             `gorm:"type:varchar(50);not null"`
	SupplierID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	ReceiptDate     time.Time          `gorm:"not null"`
	ReceivedBy      uuid.UUID          `gorm:"type:uuid;not null"`
	Status          GoodsReceiptStatus `gorm:"type:varchar(20);not null"`
	Notes           string             `gorm:"type:text"`
	Items           []GoodsReceiptItem `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName returns the table name for GORM
func (GoodsReceipt) TableName() string {
	return "goods_receipts"
}

// NewGoodsReceipt builds the receipt record for a receiving event that
// has already been applied to the order. The application result drives
// the matched flags and the derived status: any damaged line marks the
// receipt DAMAGED, otherwise COMPLETE when the order became fully
// received and PARTIAL when not.
func NewGoodsReceipt(receiptNumber string, order *PurchaseOrder, receivedBy uuid.UUID, lines []ReceiptLine, application *ReceiptApplication, notes string) (*GoodsReceipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewValidationError("Receipt number cannot be empty")
	}
	if order == nil {
		return nil, shared.NewValidationError("Purchase order cannot be empty")
	}
	if receivedBy == uuid.Nil {
		return nil, shared.NewValidationError("Receiver cannot be empty")
	}
	if application == nil || len(lines) == 0 {
		return nil, shared.NewValidationError("Receipt must contain at least one line")
	}

	receipt := &GoodsReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		PurchaseOrderID:   order.ID,
		OrderNumber:       order.OrderNumber,
		SupplierID:        order.SupplierID,
		ReceiptDate:       time.Now(),
		ReceivedBy:        receivedBy,
		Notes:             notes,
		Items:             make([]GoodsReceiptItem, 0, len(lines)),
	}

	damaged := false
	for _, line := range lines {
		condition := line.Condition
		if condition == "" {
			condition = ReceiptConditionGood
		}
		if condition == ReceiptConditionDamaged {
			damaged = true
		}

		item := GoodsReceiptItem{
			ID:               uuid.New(),
			ReceiptID:        receipt.ID,
			PartCode:         line.PartCode,
			OrderedQuantity:  decimal.Zero,
			ReceivedQuantity: line.Quantity,
			Condition:        condition,
			Matched:          false,
			Notes:            line.Notes,
			CreatedAt:        receipt.ReceiptDate,
		}
		if orderItem := order.GetItemByPartCode(line.PartCode); orderItem != nil {
			item.PartName = orderItem.PartName
			item.OrderedQuantity = orderItem.OrderedQuantity
			item.Matched = true
		}
		receipt.Items = append(receipt.Items, item)
	}

	switch {
	case damaged:
		receipt.Status = GoodsReceiptStatusDamaged
	case application.FullyReceived:
		receipt.Status = GoodsReceiptStatusComplete
	default:
		receipt.Status = GoodsReceiptStatusPartial
	}

	receipt.AddDomainEvent(NewGoodsReceiptCreatedEvent(receipt))

	return receipt, nil
}

// MatchedItems returns the receipt lines that matched an order item
func (r *GoodsReceipt) MatchedItems() []GoodsReceiptItem {
	matched := make([]GoodsReceiptItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Matched {
			matched = append(matched, item)
		}
	}
	return matched
}

// TotalReceivedQuantity returns the total quantity on this receipt
func (r *GoodsReceipt) TotalReceivedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.ReceivedQuantity)
	}
	return total
}

// HasDamagedItems returns true if any line arrived damaged
func (r *GoodsReceipt) HasDamagedItems() bool {
	for _, item := range r.Items {
		if item.Condition == ReceiptConditionDamaged {
			return true
		}
	}
	return false
}
