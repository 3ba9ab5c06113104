package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/partner"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/partsflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo      procurement.PurchaseOrderRepository
	supplierRepo   partner.SupplierRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(orderRepo procurement.PurchaseOrderRepository, supplierRepo partner.SupplierRepository) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new purchase order in draft status
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.CanOrder() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Supplier is not available for ordering")
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	taxRate := decimal.Zero
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	order, err := procurement.NewPurchaseOrder(orderNumber, supplier.ID, supplier.Name, req.ExpectedDeliveryDate, taxRate)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := order.AddItem(item.PartCode, item.PartName, item.Description, item.Quantity, valueobject.NewMoneyUSD(item.UnitPrice)); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves a purchase order by its order number
func (s *PurchaseOrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseOrderResponse], error) {
	result, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	response := shared.NewPaginated(ToPurchaseOrderResponses(result.Items), result.Total, result.Page, result.PageSize)
	return &response, nil
}

// ListBySupplier retrieves purchase orders for a supplier
func (s *PurchaseOrderService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[PurchaseOrderResponse], error) {
	result, err := s.orderRepo.FindBySupplier(ctx, supplierID, filter)
	if err != nil {
		return nil, err
	}
	response := shared.NewPaginated(ToPurchaseOrderResponses(result.Items), result.Total, result.Page, result.PageSize)
	return &response, nil
}

// AddItem adds a line item to a draft order
func (s *PurchaseOrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddOrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	expectedVersion := order.GetVersion()

	if _, err := order.AddItem(req.PartCode, req.PartName, req.Description, req.Quantity, valueobject.NewMoneyUSD(req.UnitPrice)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expectedVersion); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// UpdateItem updates a draft order line
func (s *PurchaseOrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req UpdateOrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	expectedVersion := order.GetVersion()

	if req.Quantity != nil {
		if err := order.UpdateItemQuantity(itemID, *req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.UnitPrice != nil {
		if !order.CanModify() {
			return nil, shared.NewInvalidTransitionError("update items", order.Status.String())
		}
		item := order.GetItem(itemID)
		if item == nil {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Order item not found")
		}
		if err := item.UpdateUnitPrice(valueobject.NewMoneyUSD(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expectedVersion); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// RemoveItem removes a line from a draft order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	expectedVersion := order.GetVersion()

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expectedVersion); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Submit sends a draft order for approval
func (s *PurchaseOrderService) Submit(ctx context.Context, orderID, requestedBy uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, func(order *procurement.PurchaseOrder) error {
		return order.Submit(requestedBy)
	})
}

// Approve approves a pending order
func (s *PurchaseOrderService) Approve(ctx context.Context, orderID, approvedBy uuid.UUID, notes string) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, func(order *procurement.PurchaseOrder) error {
		return order.Approve(approvedBy, notes)
	})
}

// Reject sends a pending order back to draft
func (s *PurchaseOrderService) Reject(ctx context.Context, orderID, rejectedBy uuid.UUID, reason string) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, func(order *procurement.PurchaseOrder) error {
		return order.Reject(rejectedBy, reason)
	})
}

// Cancel cancels an order
func (s *PurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, reason string) (*PurchaseOrderResponse, error) {
	return s.transition(ctx, orderID, func(order *procurement.PurchaseOrder) error {
		return order.Cancel(reason)
	})
}

// Delete removes a draft order. Orders past draft are cancelled, not deleted.
func (s *PurchaseOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.IsDraft() {
		return shared.NewInvalidTransitionError("delete", order.Status.String())
	}
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *PurchaseOrderService) transition(ctx context.Context, orderID uuid.UUID, apply func(*procurement.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	expectedVersion := order.GetVersion()

	if err := apply(order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expectedVersion); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, order *procurement.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}
