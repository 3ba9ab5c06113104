package procurement

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/partner"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/partsflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newActiveSupplier(t *testing.T) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier("SUP-00001", "Acme Parts Co")
	require.NoError(t, err)
	return supplier
}

func newDraftOrder(t *testing.T) *procurement.PurchaseOrder {
	t.Helper()
	order, err := procurement.NewPurchaseOrder("PO-2026-00001", uuid.New(), "Acme Parts Co", nil, decimal.Zero)
	require.NoError(t, err)
	_, err = order.AddItem("BP-100", "Brake Pad", "", decimal.NewFromInt(100), valueobject.NewMoneyUSDFromFloat(25.50))
	require.NoError(t, err)
	return order
}

func TestPurchaseOrderServiceCreate(t *testing.T) {
	t.Run("creates draft order with generated number", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		supplier := newActiveSupplier(t)
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		orderRepo.On("GenerateOrderNumber", mock.Anything).Return("PO-2026-00042", nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PurchaseOrder")).Return(nil)

		resp, err := service.Create(context.Background(), CreatePurchaseOrderRequest{
			SupplierID: supplier.ID,
			Items: []CreatePurchaseOrderItemInput{
				{PartCode: "BP-100", PartName: "Brake Pad", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromFloat(25.50)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "PO-2026-00042", resp.OrderNumber)
		assert.Equal(t, "DRAFT", resp.Status)
		assert.Equal(t, supplier.Name, resp.SupplierName)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].RemainingQuantity.Equal(decimal.NewFromInt(10)))
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects suspended supplier", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		supplier := newActiveSupplier(t)
		require.NoError(t, supplier.Suspend())
		supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)

		_, err := service.Create(context.Background(), CreatePurchaseOrderRequest{SupplierID: supplier.ID})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("propagates missing supplier", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		id := uuid.New()
		supplierRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), CreatePurchaseOrderRequest{SupplierID: id})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPurchaseOrderServiceTransitions(t *testing.T) {
	t.Run("submit persists with the pre-mutation version", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		order := newDraftOrder(t)
		loadedVersion := order.GetVersion()
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order, loadedVersion).Return(nil)

		resp, err := service.Submit(context.Background(), order.ID, uuid.New())

		require.NoError(t, err)
		assert.Equal(t, "PENDING_APPROVAL", resp.Status)
		orderRepo.AssertExpectations(t)
	})

	t.Run("concurrent modification surfaces from the repository", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		order := newDraftOrder(t)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order, mock.Anything).Return(shared.ErrConcurrentModification)

		_, err := service.Submit(context.Background(), order.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrConcurrentModification)
	})

	t.Run("invalid transition does not touch the repository", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		order := newDraftOrder(t)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		_, err := service.Approve(context.Background(), order.ID, uuid.New(), "")

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.CodeInvalidTransition, domainErr.Code)
		orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("full approval cycle", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		order := newDraftOrder(t)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order, mock.Anything).Return(nil)

		_, err := service.Submit(context.Background(), order.ID, uuid.New())
		require.NoError(t, err)

		resp, err := service.Approve(context.Background(), order.ID, uuid.New(), "ok")
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
	})
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) published() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

func TestPurchaseOrderServiceEvents(t *testing.T) {
	t.Run("publishes raised events after persisting", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)
		publisher := new(capturingPublisher)
		service.SetEventPublisher(publisher)

		order := newDraftOrder(t)
		order.ClearDomainEvents() // drop the creation event, only the submit matters here
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order, mock.Anything).Return(nil)

		_, err := service.Submit(context.Background(), order.ID, uuid.New())
		require.NoError(t, err)

		published := publisher.published()
		require.Len(t, published, 1)
		assert.Equal(t, procurement.EventPurchaseOrderSubmitted, published[0].EventType())
		assert.Equal(t, order.ID, published[0].AggregateID())
		assert.Empty(t, order.GetDomainEvents(), "published events must be cleared from the aggregate")
	})

	t.Run("no publisher configured is a no-op", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		order := newDraftOrder(t)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order, mock.Anything).Return(nil)

		_, err := service.Submit(context.Background(), order.ID, uuid.New())
		require.NoError(t, err)
	})
}

func TestPurchaseOrderServiceDelete(t *testing.T) {
	t.Run("deletes draft order", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		order := newDraftOrder(t)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("Delete", mock.Anything, order.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), order.ID))
		orderRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete a submitted order", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		supplierRepo := new(MockSupplierRepository)
		service := NewPurchaseOrderService(orderRepo, supplierRepo)

		order := newDraftOrder(t)
		require.NoError(t, order.Submit(uuid.New()))
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		err := service.Delete(context.Background(), order.ID)
		require.Error(t, err)
		orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
