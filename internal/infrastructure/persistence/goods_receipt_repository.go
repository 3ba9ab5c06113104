package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/partsflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var goodsReceiptSortColumns = map[string]bool{
	"created_at":     true,
	"receipt_number": true,
	"receipt_date":   true,
	"status":         true,
}

// GormGoodsReceiptRepository implements procurement.GoodsReceiptRepository using GORM
type GormGoodsReceiptRepository struct {
	db *gorm.DB
}

// NewGormGoodsReceiptRepository creates a new GormGoodsReceiptRepository
func NewGormGoodsReceiptRepository(db *gorm.DB) *GormGoodsReceiptRepository {
	return &GormGoodsReceiptRepository{db: db}
}

// FindByID finds a goods receipt by its ID, including items
func (r *GormGoodsReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.GoodsReceipt, error) {
	var receipt procurement.GoodsReceipt
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByReceiptNumber finds a goods receipt by its receipt number
func (r *GormGoodsReceiptRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*procurement.GoodsReceipt, error) {
	var receipt procurement.GoodsReceipt
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&receipt, "receipt_number = ?", receiptNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByPurchaseOrder returns all receipts for an order in receiving
// order. Receipt date ordering matters to quantity rederivation.
func (r *GormGoodsReceiptRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]*procurement.GoodsReceipt, error) {
	var receipts []*procurement.GoodsReceipt
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("receipt_date ASC, created_at ASC").
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// FindAll returns goods receipts matching the filter
func (r *GormGoodsReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*procurement.GoodsReceipt], error) {
	query := r.db.WithContext(ctx).Model(&procurement.GoodsReceipt{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("receipt_number LIKE ? OR order_number LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if supplierID, ok := filter.Filters["supplier_id"].(uuid.UUID); ok && supplierID != uuid.Nil {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*procurement.GoodsReceipt]{}, err
	}

	var receipts []*procurement.GoodsReceipt
	query = applyOrdering(query, filter, goodsReceiptSortColumns)
	if err := applyPagination(query, filter).Preload("Items").Find(&receipts).Error; err != nil {
		return shared.Paginated[*procurement.GoodsReceipt]{}, err
	}

	page, pageSize := normalizePage(filter)
	return shared.NewPaginated(receipts, total, page, pageSize), nil
}

// Save persists a goods receipt and its items. Receipts are written
// once at creation and never updated afterwards.
func (r *GormGoodsReceiptRepository) Save(ctx context.Context, receipt *procurement.GoodsReceipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(receipt).Error; err != nil {
			return err
		}
		for i := range receipt.Items {
			if err := tx.Save(&receipt.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GenerateReceiptNumber generates the next receipt number.
// Format: GR-YYYY-NNNNN (e.g. GR-2026-00001)
func (r *GormGoodsReceiptRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("GR-%d-", time.Now().Year())
	return nextDocumentNumber(ctx, r.db, &procurement.GoodsReceipt{}, "receipt_number", prefix)
}
