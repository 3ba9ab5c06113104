package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
)

// SupplierInvoiceRepository defines the persistence interface for supplier invoices
type SupplierInvoiceRepository interface {
	// FindByID finds an invoice by its ID, including the payment ledger
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierInvoice, error)

	// FindByInvoiceNumber finds an invoice by its internal number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*SupplierInvoice, error)

	// FindAll returns invoices matching the filter
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*SupplierInvoice], error)

	// FindBySupplier returns invoices for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*SupplierInvoice], error)

	// FindByPurchaseOrder returns invoices linked to a purchase order
	FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]*SupplierInvoice, error)

	// FindOverdue returns unpaid invoices past their due date
	FindOverdue(ctx context.Context, filter shared.Filter) (shared.Paginated[*SupplierInvoice], error)

	// ExistsBySupplierInvoiceNumber checks whether the supplier already
	// has an invoice registered under this document number
	ExistsBySupplierInvoiceNumber(ctx context.Context, supplierID uuid.UUID, supplierInvoiceNumber string) (bool, error)

	// Save persists an invoice and its payment ledger
	Save(ctx context.Context, invoice *SupplierInvoice) error

	// SaveWithLock persists an invoice with optimistic locking.
	// expectedVersion is the version loaded before mutation; a mismatch
	// returns a CONCURRENT_MODIFICATION domain error.
	SaveWithLock(ctx context.Context, invoice *SupplierInvoice, expectedVersion int) error

	// GenerateInvoiceNumber generates the next internal invoice number (INV-YYYY-NNNNN)
	GenerateInvoiceNumber(ctx context.Context) (string, error)
}
