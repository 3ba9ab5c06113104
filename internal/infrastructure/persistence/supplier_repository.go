package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/partner"
	"github.com/partsflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var supplierSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
}

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByCode finds a supplier by its code
func (r *GormSupplierRepository) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAll returns suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Supplier], error) {
	query := r.db.WithContext(ctx).Model(&partner.Supplier{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*partner.Supplier]{}, err
	}

	var suppliers []*partner.Supplier
	query = applyOrdering(query, filter, supplierSortColumns)
	if err := applyPagination(query, filter).Find(&suppliers).Error; err != nil {
		return shared.Paginated[*partner.Supplier]{}, err
	}

	page, pageSize := normalizePage(filter)
	return shared.NewPaginated(suppliers, total, page, pageSize), nil
}

// FindActive returns all active suppliers
func (r *GormSupplierRepository) FindActive(ctx context.Context) ([]*partner.Supplier, error) {
	var suppliers []*partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("status = ?", partner.SupplierStatusActive).
		Order("name ASC").
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// ExistsByCode checks if a supplier code is already taken
func (r *GormSupplierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// Delete removes a supplier
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateSupplierCode generates the next supplier code (SUP-NNNNN)
func (r *GormSupplierRepository) GenerateSupplierCode(ctx context.Context) (string, error) {
	const prefix = "SUP-"

	var codes []string
	err := r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
		Where("code LIKE ?", prefix+"%").
		Order("code DESC").
		Limit(1).
		Pluck("code", &codes).Error
	if err != nil {
		return "", err
	}

	var nextNum int64 = 1
	if len(codes) > 0 {
		lastCode := codes[0]
		var num int64
		if _, parseErr := fmt.Sscanf(strings.TrimPrefix(lastCode, prefix), "%d", &num); parseErr == nil {
			nextNum = num + 1
		}
	}

	for i := 0; i < 100; i++ {
		code := fmt.Sprintf("%s%05d", prefix, nextNum)
		exists, err := r.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		nextNum++
	}
	return "", fmt.Errorf("unable to generate unique supplier code")
}
