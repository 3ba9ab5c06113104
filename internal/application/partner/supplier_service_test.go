package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/partner"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Supplier], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*partner.Supplier]), args.Error(1)
}

func (m *MockSupplierRepository) FindActive(ctx context.Context) ([]*partner.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) GenerateSupplierCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPurchaseOrderRepository mocks the order repository methods the
// supplier service depends on.
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*procurement.PurchaseOrder], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*procurement.PurchaseOrder]), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (shared.Paginated[*procurement.PurchaseOrder], error) {
	args := m.Called(ctx, supplierID, filter)
	return args.Get(0).(shared.Paginated[*procurement.PurchaseOrder]), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByStatus(ctx context.Context, status procurement.PurchaseOrderStatus, filter shared.Filter) (shared.Paginated[*procurement.PurchaseOrder], error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).(shared.Paginated[*procurement.PurchaseOrder]), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CountIncompleteBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder, expectedVersion int) error {
	args := m.Called(ctx, order, expectedVersion)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func TestSupplierServiceCreate(t *testing.T) {
	t.Run("generates code when none is given", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := NewSupplierService(supplierRepo, orderRepo)

		supplierRepo.On("GenerateSupplierCode", mock.Anything).Return("SUP-00042", nil)
		supplierRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		resp, err := service.Create(context.Background(), CreateSupplierRequest{Name: "Acme Parts Co"})

		require.NoError(t, err)
		assert.Equal(t, "SUP-00042", resp.Code)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "NET_30", resp.PaymentTerms)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := NewSupplierService(supplierRepo, orderRepo)

		supplierRepo.On("ExistsByCode", mock.Anything, "SUP-00001").Return(true, nil)

		_, err := service.Create(context.Background(), CreateSupplierRequest{Code: "SUP-00001", Name: "Acme Parts Co"})

		require.Error(t, err)
		supplierRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("applies explicit payment terms", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := NewSupplierService(supplierRepo, orderRepo)

		supplierRepo.On("ExistsByCode", mock.Anything, "SUP-00002").Return(false, nil)
		supplierRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Create(context.Background(), CreateSupplierRequest{
			Code: "SUP-00002", Name: "Acme Parts Co", PaymentTerms: "NET_90",
		})

		require.NoError(t, err)
		assert.Equal(t, "NET_90", resp.PaymentTerms)
	})
}

func TestSupplierServiceDelete(t *testing.T) {
	t.Run("deactivates instead of deleting when orders are in flight", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := NewSupplierService(supplierRepo, orderRepo)

		supplier, err := partner.NewSupplier("SUP-00001", "Acme Parts Co")
		require.NoError(t, err)
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		orderRepo.On("CountIncompleteBySupplier", mock.Anything, supplier.ID).Return(int64(2), nil)
		supplierRepo.On("Save", mock.Anything, supplier).Return(nil)

		deleted, err := service.Delete(context.Background(), supplier.ID)

		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Equal(t, partner.SupplierStatusInactive, supplier.Status)
		supplierRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes when no incomplete orders remain", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := NewSupplierService(supplierRepo, orderRepo)

		supplier, err := partner.NewSupplier("SUP-00001", "Acme Parts Co")
		require.NoError(t, err)
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		orderRepo.On("CountIncompleteBySupplier", mock.Anything, supplier.ID).Return(int64(0), nil)
		supplierRepo.On("Delete", mock.Anything, supplier.ID).Return(nil)

		deleted, err := service.Delete(context.Background(), supplier.ID)

		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestSupplierServiceStatus(t *testing.T) {
	t.Run("blacklisted supplier cannot be reactivated", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		orderRepo := new(MockPurchaseOrderRepository)
		service := NewSupplierService(supplierRepo, orderRepo)

		supplier, err := partner.NewSupplier("SUP-00001", "Acme Parts Co")
		require.NoError(t, err)
		supplier.Blacklist()
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)

		_, err = service.Activate(context.Background(), supplier.ID)

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeInvalidTransition, domainErr.Code)
	})
}
