package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceiptLine is one delivered line of a receiving event, matched
// against order items by part code.
type ReceiptLine struct {
	PartCode  string
	Quantity  decimal.Decimal
	Condition ReceiptCondition
	Notes     string
}

// AppliedLine records how one receipt line changed an order item.
type AppliedLine struct {
	ItemID        uuid.UUID
	PartCode      string
	PartName      string
	Quantity      decimal.Decimal // Delta applied by this receipt
	ReceivedTotal decimal.Decimal // Cumulative received after applying
	Remaining     decimal.Decimal // Clamped at zero on over-receipt
}

// ReceiptApplication is the outcome of folding one receiving event
// into a purchase order. Unmatched lines surface as warnings rather
// than failing the whole receipt.
type ReceiptApplication struct {
	Applied       []AppliedLine
	Warnings      []string
	FullyReceived bool
}

// ApplyReceipt accumulates receipt line quantities into the matching
// order items. Matching is by part code. Received quantities only ever
// grow; remaining quantities clamp at zero when a line is over-delivered.
// A line whose part code is not on the order is skipped with a warning.
func ApplyReceipt(order *PurchaseOrder, lines []ReceiptLine) (*ReceiptApplication, error) {
	if len(lines) == 0 {
		return nil, shared.NewValidationError("Receipt must contain at least one line")
	}

	for _, line := range lines {
		if line.PartCode == "" {
			return nil, shared.NewValidationError("Receipt line part code cannot be empty")
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("Receipt line quantity must be positive")
		}
		if line.Condition != "" && !line.Condition.IsValid() {
			return nil, shared.NewValidationError(fmt.Sprintf("Invalid receipt condition: %s", line.Condition))
		}
	}

	application := &ReceiptApplication{
		Applied:  make([]AppliedLine, 0, len(lines)),
		Warnings: make([]string, 0),
	}

	for _, line := range lines {
		item := order.GetItemByPartCode(line.PartCode)
		if item == nil {
			application.Warnings = append(application.Warnings,
				fmt.Sprintf("part %s is not on order %s, line skipped", line.PartCode, order.OrderNumber))
			continue
		}

		item.addReceived(line.Quantity)
		application.Applied = append(application.Applied, AppliedLine{
			ItemID:        item.ID,
			PartCode:      item.PartCode,
			PartName:      item.PartName,
			Quantity:      line.Quantity,
			ReceivedTotal: item.ReceivedQuantity,
			Remaining:     item.RemainingQuantity(),
		})
	}

	if len(application.Applied) == 0 {
		return nil, shared.NewValidationError("No receipt line matched an order item")
	}

	application.FullyReceived = order.isAllItemsReceived()

	return application, nil
}

// RederiveQuantities rebuilds the order's received quantities from the
// full receipt history. Used as a repair path when order totals are
// suspected to have drifted from the recorded receipts. Cancelled
// orders keep their status; the quantities are still corrected.
func RederiveQuantities(order *PurchaseOrder, receipts []*GoodsReceipt) error {
	if order == nil {
		return shared.NewValidationError("Purchase order cannot be empty")
	}

	for idx := range order.Items {
		order.Items[idx].ReceivedQuantity = decimal.Zero
	}

	var lastReceipt *GoodsReceipt
	for _, receipt := range receipts {
		if receipt.PurchaseOrderID != order.ID {
			return shared.NewValidationError("Receipt does not belong to this order")
		}
		for _, item := range receipt.Items {
			if !item.Matched {
				continue
			}
			if orderItem := order.GetItemByPartCode(item.PartCode); orderItem != nil {
				orderItem.addReceived(item.ReceivedQuantity)
			}
		}
		if lastReceipt == nil || receipt.ReceiptDate.After(lastReceipt.ReceiptDate) {
			lastReceipt = receipt
		}
	}

	// RECEIVED may be downgraded here: the repair exists precisely for
	// the case where drifted totals flipped the status too early.
	if order.Status != PurchaseOrderStatusCancelled && order.Status != PurchaseOrderStatusDraft && order.Status != PurchaseOrderStatusPendingApproval {
		switch {
		case order.isAllItemsReceived():
			order.Status = PurchaseOrderStatusReceived
		case order.HasReceivedAnyGoods():
			order.Status = PurchaseOrderStatusPartiallyReceived
		default:
			order.Status = PurchaseOrderStatusApproved
		}
	}
	if lastReceipt != nil {
		date := lastReceipt.ReceiptDate
		order.ActualDeliveryDate = &date
	} else {
		order.ActualDeliveryDate = nil
	}
	order.UpdatedAt = time.Now()
	order.IncrementVersion()

	return nil
}
