package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
)

// SupplierRepository defines the persistence interface for suppliers
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByCode finds a supplier by its code
	FindByCode(ctx context.Context, code string) (*Supplier, error)

	// FindAll returns suppliers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Supplier], error)

	// FindActive returns all active suppliers
	FindActive(ctx context.Context) ([]*Supplier, error)

	// ExistsByCode checks if a supplier code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save persists a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Delete removes a supplier. Callers must ensure the supplier has
	// no order history; otherwise deactivate instead.
	Delete(ctx context.Context, id uuid.UUID) error

	// GenerateSupplierCode generates the next supplier code (SUP-NNNNN)
	GenerateSupplierCode(ctx context.Context) (string, error)
}
