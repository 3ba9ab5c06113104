package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the persistence interface for purchase orders
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order by its ID, including items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll returns purchase orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*PurchaseOrder], error)

	// FindBySupplier returns purchase orders for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*PurchaseOrder], error)

	// FindByStatus returns purchase orders in the given status
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, filter shared.Filter) (shared.Paginated[*PurchaseOrder], error)

	// CountIncompleteBySupplier counts non-terminal orders for a supplier
	CountIncompleteBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)

	// ExistsByOrderNumber checks if an order number is already taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// Save persists a purchase order and its items
	Save(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLock persists a purchase order with optimistic locking.
	// expectedVersion is the version loaded before mutation; a mismatch
	// returns a CONCURRENT_MODIFICATION domain error.
	SaveWithLock(ctx context.Context, order *PurchaseOrder, expectedVersion int) error

	// Delete removes a purchase order. Only draft orders may be deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// GenerateOrderNumber generates the next order number (PO-YYYY-NNNNN)
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// GoodsReceiptRepository defines the persistence interface for goods receipts
type GoodsReceiptRepository interface {
	// FindByID finds a goods receipt by its ID, including items
	FindByID(ctx context.Context, id uuid.UUID) (*GoodsReceipt, error)

	// FindByReceiptNumber finds a goods receipt by its receipt number
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*GoodsReceipt, error)

	// FindByPurchaseOrder returns all receipts recorded against an order,
	// oldest first
	FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]*GoodsReceipt, error)

	// FindAll returns goods receipts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*GoodsReceipt], error)

	// Save persists a goods receipt and its items
	Save(ctx context.Context, receipt *GoodsReceipt) error

	// GenerateReceiptNumber generates the next receipt number (GR-YYYY-NNNNN)
	GenerateReceiptNumber(ctx context.Context) (string, error)
}
