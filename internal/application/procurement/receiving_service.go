package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/partsflow/backend/internal/domain/shared"
)

// ReceivingService records goods receipts against purchase orders and
// keeps the order line quantities reconciled with the receipt history.
type ReceivingService struct {
	orderRepo      procurement.PurchaseOrderRepository
	receiptRepo    procurement.GoodsReceiptRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(orderRepo procurement.PurchaseOrderRepository, receiptRepo procurement.GoodsReceiptRepository, txScope TransactionScope) *ReceivingService {
	return &ReceivingService{
		orderRepo:   orderRepo,
		receiptRepo: receiptRepo,
		txScope:     txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ReceivingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateReceipt records a receiving event. The receipt lines are folded
// into the order's received quantities, and the receipt plus the updated
// order are persisted in one transaction with an optimistic-lock check
// on the order, so concurrent receives against the same order cannot
// silently lose quantities.
func (s *ReceivingService) CreateReceipt(ctx context.Context, req CreateGoodsReceiptRequest) (*GoodsReceiptResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	expectedVersion := order.GetVersion()

	lines := make([]procurement.ReceiptLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = procurement.ReceiptLine{
			PartCode:  item.PartCode,
			Quantity:  item.Quantity,
			Condition: procurement.ReceiptCondition(item.Condition),
			Notes:     item.Notes,
		}
	}

	application, err := order.Receive(lines)
	if err != nil {
		return nil, err
	}

	receiptNumber, err := s.receiptRepo.GenerateReceiptNumber(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := procurement.NewGoodsReceipt(receiptNumber, order, req.ReceivedBy, lines, application, req.Notes)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ReceiptRepo().Save(ctx, receipt); err != nil {
			return err
		}
		return repos.OrderRepo().SaveWithLock(ctx, order, expectedVersion)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()
	s.publishEvents(ctx, receipt.GetDomainEvents())
	receipt.ClearDomainEvents()

	response := ToGoodsReceiptResponse(receipt)
	response.Warnings = application.Warnings
	response.OrderStatus = order.Status.String()
	return &response, nil
}

// GetReceipt retrieves a goods receipt by ID
func (s *ReceivingService) GetReceipt(ctx context.Context, receiptID uuid.UUID) (*GoodsReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	response := ToGoodsReceiptResponse(receipt)
	return &response, nil
}

// ListReceipts retrieves goods receipts with pagination
func (s *ReceivingService) ListReceipts(ctx context.Context, filter shared.Filter) (*shared.Paginated[GoodsReceiptResponse], error) {
	result, err := s.receiptRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	response := shared.NewPaginated(ToGoodsReceiptResponses(result.Items), result.Total, result.Page, result.PageSize)
	return &response, nil
}

// ListReceiptsByOrder retrieves all receipts recorded against an order
func (s *ReceivingService) ListReceiptsByOrder(ctx context.Context, orderID uuid.UUID) ([]GoodsReceiptResponse, error) {
	// Verify the order exists so a bad ID surfaces as NOT_FOUND
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	receipts, err := s.receiptRepo.FindByPurchaseOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToGoodsReceiptResponses(receipts), nil
}

// RederiveOrderQuantities rebuilds an order's received quantities from
// its full receipt history. This is the repair path for orders whose
// cumulative totals are suspected to have drifted from the receipts.
func (s *ReceivingService) RederiveOrderQuantities(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	expectedVersion := order.GetVersion()

	receipts, err := s.receiptRepo.FindByPurchaseOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := procurement.RederiveQuantities(order, receipts); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expectedVersion); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

func (s *ReceivingService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
