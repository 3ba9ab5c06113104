package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/partsflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var purchaseOrderSortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"order_date":   true,
	"status":       true,
	"total_amount": true,
}

// GormPurchaseOrderRepository implements procurement.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID, including items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds a purchase order by its order number
func (r *GormPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll returns purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*procurement.PurchaseOrder], error) {
	query := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(order_number) LIKE ? OR LOWER(supplier_name) LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	return r.paginate(query, filter)
}

// FindBySupplier returns purchase orders for a supplier
func (r *GormPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*procurement.PurchaseOrder], error) {
	query := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("supplier_id = ?", supplierID)
	return r.paginate(query, filter)
}

// FindByStatus returns purchase orders in the given status
func (r *GormPurchaseOrderRepository) FindByStatus(ctx context.Context, status procurement.PurchaseOrderStatus, filter shared.Filter) (shared.Paginated[*procurement.PurchaseOrder], error) {
	query := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("status = ?", status)
	return r.paginate(query, filter)
}

func (r *GormPurchaseOrderRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[*procurement.PurchaseOrder], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*procurement.PurchaseOrder]{}, err
	}

	var orders []*procurement.PurchaseOrder
	query = applyOrdering(query, filter, purchaseOrderSortColumns)
	if err := applyPagination(query, filter).Preload("Items").Find(&orders).Error; err != nil {
		return shared.Paginated[*procurement.PurchaseOrder]{}, err
	}

	page, pageSize := normalizePage(filter)
	return shared.NewPaginated(orders, total, page, pageSize), nil
}

// CountIncompleteBySupplier counts non-terminal orders for a supplier
func (r *GormPurchaseOrderRepository) CountIncompleteBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("supplier_id = ? AND status NOT IN ?", supplierID, []procurement.PurchaseOrderStatus{
			procurement.PurchaseOrderStatusReceived,
			procurement.PurchaseOrderStatusCancelled,
		}).
		Count(&count).Error
	return count, err
}

// ExistsByOrderNumber checks if an order number is already taken
func (r *GormPurchaseOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a purchase order and its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveInTx(tx, order)
	})
}

// SaveWithLock persists the order only if the stored version still
// matches the version the caller loaded. Any mismatch, whether found
// up front or lost to a race on the update itself, comes back as a
// CONCURRENT_MODIFICATION domain error.
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var versions []int
		if err := tx.Model(&procurement.PurchaseOrder{}).
			Where("id = ?", order.ID).
			Pluck("version", &versions).Error; err != nil {
			return err
		}
		if len(versions) == 0 {
			return shared.ErrNotFound
		}
		if versions[0] != expectedVersion {
			return shared.ErrConcurrentModification
		}

		result := tx.Model(&procurement.PurchaseOrder{}).
			Where("id = ? AND version = ?", order.ID, expectedVersion).
			Updates(map[string]interface{}{
				"supplier_id":            order.SupplierID,
				"supplier_name":          order.SupplierName,
				"order_date":             order.OrderDate,
				"expected_delivery_date": order.ExpectedDeliveryDate,
				"actual_delivery_date":   order.ActualDeliveryDate,
				"subtotal":               order.Subtotal,
				"tax_rate":               order.TaxRate,
				"tax_amount":             order.TaxAmount,
				"total_amount":           order.TotalAmount,
				"status":                 order.Status,
				"notes":                  order.Notes,
				"submitted_by":           order.SubmittedBy,
				"submitted_at":           order.SubmittedAt,
				"approved_by":            order.ApprovedBy,
				"approved_at":            order.ApprovedAt,
				"approval_notes":         order.ApprovalNotes,
				"cancelled_at":           order.CancelledAt,
				"cancel_reason":          order.CancelReason,
				"version":                order.GetVersion(),
				"updated_at":             time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrentModification
		}

		return r.syncItems(tx, order)
	})
}

func (r *GormPurchaseOrderRepository) saveInTx(tx *gorm.DB, order *procurement.PurchaseOrder) error {
	if err := tx.Omit("Items").Save(order).Error; err != nil {
		return err
	}
	return r.syncItems(tx, order)
}

// syncItems replaces the stored item set with the aggregate's items:
// removed lines are deleted, the rest upserted.
func (r *GormPurchaseOrderRepository) syncItems(tx *gorm.DB, order *procurement.PurchaseOrder) error {
	itemIDs := make([]uuid.UUID, len(order.Items))
	for i, item := range order.Items {
		itemIDs[i] = item.ID
	}

	query := tx.Where("order_id = ?", order.ID)
	if len(itemIDs) > 0 {
		query = query.Where("id NOT IN ?", itemIDs)
	}
	if err := query.Delete(&procurement.PurchaseOrderItem{}).Error; err != nil {
		return err
	}

	for i := range order.Items {
		if err := tx.Save(&order.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a purchase order and its items
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&procurement.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&procurement.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateOrderNumber generates the next order number.
// Format: PO-YYYY-NNNNN (e.g. PO-2026-00001)
func (r *GormPurchaseOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("PO-%d-", time.Now().Year())
	return nextDocumentNumber(ctx, r.db, &procurement.PurchaseOrder{}, "order_number", prefix)
}

// nextDocumentNumber generates the next sequential document number for
// the given model and column, scoped to the prefix (typically per year).
func nextDocumentNumber(ctx context.Context, db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	var numbers []string
	if err := db.WithContext(ctx).
		Model(model).
		Where(column+" LIKE ?", prefix+"%").
		Order(column + " DESC").
		Limit(1).
		Pluck(column, &numbers).Error; err != nil {
		return "", err
	}

	var nextNum int64 = 1
	if len(numbers) > 0 {
		var num int64
		if _, err := fmt.Sscanf(strings.TrimPrefix(numbers[0], prefix), "%d", &num); err == nil {
			nextNum = num + 1
		}
	}

	for i := 0; i < 100; i++ {
		candidate := fmt.Sprintf("%s%05d", prefix, nextNum)
		var count int64
		if err := db.WithContext(ctx).
			Model(model).
			Where(column+" = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		nextNum++
	}
	return "", fmt.Errorf("unable to generate unique document number with prefix %s", prefix)
}
