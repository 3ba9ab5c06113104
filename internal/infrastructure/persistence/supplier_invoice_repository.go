package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/finance"
	"github.com/partsflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var supplierInvoiceSortColumns = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"invoice_date":   true,
	"due_date":       true,
	"status":         true,
	"total_amount":   true,
}

// GormSupplierInvoiceRepository implements finance.SupplierInvoiceRepository using GORM
type GormSupplierInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSupplierInvoiceRepository creates a new GormSupplierInvoiceRepository
func NewGormSupplierInvoiceRepository(db *gorm.DB) *GormSupplierInvoiceRepository {
	return &GormSupplierInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID, including billed lines and the
// payment ledger
func (r *GormSupplierInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.SupplierInvoice, error) {
	var invoice finance.SupplierInvoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at ASC, created_at ASC")
		}).
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByInvoiceNumber finds an invoice by its internal number
func (r *GormSupplierInvoiceRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*finance.SupplierInvoice, error) {
	var invoice finance.SupplierInvoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&invoice, "invoice_number = ?", invoiceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll returns invoices matching the filter
func (r *GormSupplierInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*finance.SupplierInvoice], error) {
	query := r.db.WithContext(ctx).Model(&finance.SupplierInvoice{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(invoice_number) LIKE ? OR LOWER(supplier_invoice_number) LIKE ? OR LOWER(supplier_name) LIKE ?",
			pattern, pattern, pattern)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	return r.paginate(query, filter)
}

// FindBySupplier returns invoices for a supplier
func (r *GormSupplierInvoiceRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*finance.SupplierInvoice], error) {
	query := r.db.WithContext(ctx).
		Model(&finance.SupplierInvoice{}).
		Where("supplier_id = ?", supplierID)
	return r.paginate(query, filter)
}

// FindByPurchaseOrder returns invoices linked to a purchase order
func (r *GormSupplierInvoiceRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]*finance.SupplierInvoice, error) {
	var invoices []*finance.SupplierInvoice
	if err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("invoice_date ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindOverdue returns unsettled invoices whose due date has passed.
// Cancelled invoices are excluded; they owe nothing.
func (r *GormSupplierInvoiceRepository) FindOverdue(ctx context.Context, filter shared.Filter) (shared.Paginated[*finance.SupplierInvoice], error) {
	query := r.db.WithContext(ctx).
		Model(&finance.SupplierInvoice{}).
		Where("due_date < ?", time.Now()).
		Where("payment_status <> ?", finance.PaymentStatusPaid).
		Where("status <> ?", finance.InvoiceStatusCancelled)
	return r.paginate(query, filter)
}

func (r *GormSupplierInvoiceRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[*finance.SupplierInvoice], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*finance.SupplierInvoice]{}, err
	}

	var invoices []*finance.SupplierInvoice
	query = applyOrdering(query, filter, supplierInvoiceSortColumns)
	if err := applyPagination(query, filter).Preload("Payments").Find(&invoices).Error; err != nil {
		return shared.Paginated[*finance.SupplierInvoice]{}, err
	}

	page, pageSize := normalizePage(filter)
	return shared.NewPaginated(invoices, total, page, pageSize), nil
}

// ExistsBySupplierInvoiceNumber checks whether the supplier already has
// an invoice registered under this document number
func (r *GormSupplierInvoiceRepository) ExistsBySupplierInvoiceNumber(ctx context.Context, supplierID uuid.UUID, supplierInvoiceNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&finance.SupplierInvoice{}).
		Where("supplier_id = ? AND supplier_invoice_number = ?", supplierID, supplierInvoiceNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists an invoice, its billed lines and its payment ledger
func (r *GormSupplierInvoiceRepository) Save(ctx context.Context, invoice *finance.SupplierInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Payments").Save(invoice).Error; err != nil {
			return err
		}
		if err := saveInvoiceItems(tx, invoice); err != nil {
			return err
		}
		return savePayments(tx, invoice)
	})
}

// SaveWithLock persists the invoice only if the stored version still
// matches the version the caller loaded before mutating. Ledger entries
// are append-only, so existing payment rows are never touched.
func (r *GormSupplierInvoiceRepository) SaveWithLock(ctx context.Context, invoice *finance.SupplierInvoice, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var versions []int
		if err := tx.Model(&finance.SupplierInvoice{}).
			Where("id = ?", invoice.ID).
			Pluck("version", &versions).Error; err != nil {
			return err
		}
		if len(versions) == 0 {
			return shared.ErrNotFound
		}
		if versions[0] != expectedVersion {
			return shared.ErrConcurrentModification
		}

		result := tx.Model(&finance.SupplierInvoice{}).
			Where("id = ? AND version = ?", invoice.ID, expectedVersion).
			Updates(map[string]interface{}{
				"supplier_invoice_number": invoice.SupplierInvoiceNumber,
				"purchase_order_id":       invoice.PurchaseOrderID,
				"order_number":            invoice.OrderNumber,
				"goods_receipt_id":        invoice.GoodsReceiptID,
				"receipt_number":          invoice.ReceiptNumber,
				"invoice_date":            invoice.InvoiceDate,
				"due_date":                invoice.DueDate,
				"subtotal":                invoice.Subtotal,
				"tax_amount":              invoice.TaxAmount,
				"total_amount":            invoice.TotalAmount,
				"paid_amount":             invoice.PaidAmount,
				"status":                  invoice.Status,
				"payment_status":          invoice.PaymentStatus,
				"notes":                   invoice.Notes,
				"cancelled_at":            invoice.CancelledAt,
				"cancel_reason":           invoice.CancelReason,
				"version":                 invoice.GetVersion(),
				"updated_at":              time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrentModification
		}

		if err := saveInvoiceItems(tx, invoice); err != nil {
			return err
		}
		return savePayments(tx, invoice)
	})
}

// saveInvoiceItems inserts billed lines that are not yet stored. Lines
// are frozen once a payment exists, so there is nothing to update.
func saveInvoiceItems(tx *gorm.DB, invoice *finance.SupplierInvoice) error {
	if len(invoice.Items) == 0 {
		return nil
	}

	var storedIDs []uuid.UUID
	if err := tx.Model(&finance.InvoiceItem{}).
		Where("invoice_id = ?", invoice.ID).
		Pluck("id", &storedIDs).Error; err != nil {
		return err
	}
	stored := make(map[uuid.UUID]bool, len(storedIDs))
	for _, id := range storedIDs {
		stored[id] = true
	}

	for i := range invoice.Items {
		if stored[invoice.Items[i].ID] {
			continue
		}
		if err := tx.Create(&invoice.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// savePayments inserts ledger entries that are not yet stored. Existing
// entries are left alone; the ledger never rewrites history.
func savePayments(tx *gorm.DB, invoice *finance.SupplierInvoice) error {
	if len(invoice.Payments) == 0 {
		return nil
	}

	var storedIDs []uuid.UUID
	if err := tx.Model(&finance.InvoicePayment{}).
		Where("invoice_id = ?", invoice.ID).
		Pluck("id", &storedIDs).Error; err != nil {
		return err
	}
	stored := make(map[uuid.UUID]bool, len(storedIDs))
	for _, id := range storedIDs {
		stored[id] = true
	}

	for i := range invoice.Payments {
		if stored[invoice.Payments[i].ID] {
			continue
		}
		if err := tx.Create(&invoice.Payments[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// GenerateInvoiceNumber generates the next internal invoice number.
// Format: INV-YYYY-NNNNN (e.g. INV-2026-00001)
func (r *GormSupplierInvoiceRepository) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", time.Now().Year())
	return nextDocumentNumber(ctx, r.db, &finance.SupplierInvoice{}, "invoice_number", prefix)
}
