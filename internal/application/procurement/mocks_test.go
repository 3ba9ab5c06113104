package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/partner"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
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

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
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

// MockGoodsReceiptRepository is a mock implementation of GoodsReceiptRepository
type MockGoodsReceiptRepository struct {
	mock.Mock
}

func (m *MockGoodsReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.GoodsReceipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.GoodsReceipt), args.Error(1)
}

func (m *MockGoodsReceiptRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*procurement.GoodsReceipt, error) {
	args := m.Called(ctx, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.GoodsReceipt), args.Error(1)
}

func (m *MockGoodsReceiptRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]*procurement.GoodsReceipt, error) {
	args := m.Called(ctx, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*procurement.GoodsReceipt), args.Error(1)
}

func (m *MockGoodsReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*procurement.GoodsReceipt], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*procurement.GoodsReceipt]), args.Error(1)
}

func (m *MockGoodsReceiptRepository) Save(ctx context.Context, receipt *procurement.GoodsReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockGoodsReceiptRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
