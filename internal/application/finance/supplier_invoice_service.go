package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/finance"
	"github.com/partsflow/backend/internal/domain/partner"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/partsflow/backend/internal/domain/shared"
)

// SupplierInvoiceService handles supplier invoice business operations
type SupplierInvoiceService struct {
	invoiceRepo    finance.SupplierInvoiceRepository
	supplierRepo   partner.SupplierRepository
	orderRepo      procurement.PurchaseOrderRepository
	receiptRepo    procurement.GoodsReceiptRepository
	eventPublisher shared.EventPublisher
}

// NewSupplierInvoiceService creates a new SupplierInvoiceService
func NewSupplierInvoiceService(invoiceRepo finance.SupplierInvoiceRepository, supplierRepo partner.SupplierRepository, orderRepo procurement.PurchaseOrderRepository, receiptRepo procurement.GoodsReceiptRepository) *SupplierInvoiceService {
	return &SupplierInvoiceService{
		invoiceRepo:  invoiceRepo,
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		receiptRepo:  receiptRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SupplierInvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a supplier invoice. The supplier's document number
// must be unique per supplier; the due date defaults to the supplier's
// payment terms when not given.
func (s *SupplierInvoiceService) Create(ctx context.Context, req CreateSupplierInvoiceRequest) (*SupplierInvoiceResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	exists, err := s.invoiceRepo.ExistsBySupplierInvoiceNumber(ctx, supplier.ID, req.SupplierInvoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeDuplicateInvoiceNumber, "Supplier invoice number already registered for this supplier")
	}

	invoiceNumber, err := s.invoiceRepo.GenerateInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	dueDate := req.InvoiceDate.AddDate(0, 0, supplier.PaymentTerms.NetDays())
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	invoice, err := finance.NewSupplierInvoice(
		invoiceNumber, req.SupplierInvoiceNumber,
		supplier.ID, supplier.Name,
		req.InvoiceDate, dueDate,
		req.Subtotal, req.TaxAmount,
	)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := invoice.AddItem(item.PartCode, item.Description, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if req.PurchaseOrderID != nil {
		order, err := s.orderRepo.FindByID(ctx, *req.PurchaseOrderID)
		if err != nil {
			return nil, err
		}
		if order.SupplierID != supplier.ID {
			return nil, shared.NewValidationError("Purchase order belongs to a different supplier")
		}
		if err := invoice.LinkPurchaseOrder(order.ID, order.OrderNumber); err != nil {
			return nil, err
		}
	}

	if req.GoodsReceiptID != nil {
		receipt, err := s.receiptRepo.FindByID(ctx, *req.GoodsReceiptID)
		if err != nil {
			return nil, err
		}
		if receipt.SupplierID != supplier.ID {
			return nil, shared.NewValidationError("Goods receipt belongs to a different supplier")
		}
		if req.PurchaseOrderID != nil && receipt.PurchaseOrderID != *req.PurchaseOrderID {
			return nil, shared.NewValidationError("Goods receipt was recorded against a different purchase order")
		}
		if err := invoice.LinkGoodsReceipt(receipt.ID, receipt.ReceiptNumber); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		invoice.SetNotes(req.Notes)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToSupplierInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves a supplier invoice by ID
func (s *SupplierInvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*SupplierInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice.RefreshStatus()
	response := ToSupplierInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves supplier invoices with pagination
func (s *SupplierInvoiceService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplierInvoiceResponse], error) {
	result, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	response := shared.NewPaginated(ToSupplierInvoiceResponses(result.Items), result.Total, result.Page, result.PageSize)
	return &response, nil
}

// ListBySupplier retrieves invoices for a supplier
func (s *SupplierInvoiceService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[SupplierInvoiceResponse], error) {
	result, err := s.invoiceRepo.FindBySupplier(ctx, supplierID, filter)
	if err != nil {
		return nil, err
	}
	response := shared.NewPaginated(ToSupplierInvoiceResponses(result.Items), result.Total, result.Page, result.PageSize)
	return &response, nil
}

// ListOverdue retrieves unpaid invoices past their due date
func (s *SupplierInvoiceService) ListOverdue(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplierInvoiceResponse], error) {
	result, err := s.invoiceRepo.FindOverdue(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, invoice := range result.Items {
		invoice.RefreshStatus()
	}
	response := shared.NewPaginated(ToSupplierInvoiceResponses(result.Items), result.Total, result.Page, result.PageSize)
	return &response, nil
}

// RecordPayment appends a payment to the invoice ledger
func (s *SupplierInvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*SupplierInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	expectedVersion := invoice.GetVersion()

	paidAt := time.Time{}
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	if _, err := invoice.RecordPayment(req.Amount, finance.PaymentMethod(req.Method), req.Reference, req.Notes, paidAt); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice, expectedVersion); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToSupplierInvoiceResponse(invoice)
	return &response, nil
}

// MarkAsPaid settles the remaining balance in one step.
//
// Deprecated: prefer RecordPayment. Kept for single-step settlement flows.
func (s *SupplierInvoiceService) MarkAsPaid(ctx context.Context, invoiceID uuid.UUID, req MarkAsPaidRequest) (*SupplierInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	expectedVersion := invoice.GetVersion()

	if _, err := invoice.MarkAsPaid(finance.PaymentMethod(req.Method), req.Reference); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice, expectedVersion); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToSupplierInvoiceResponse(invoice)
	return &response, nil
}

// Cancel cancels an invoice
func (s *SupplierInvoiceService) Cancel(ctx context.Context, invoiceID uuid.UUID, reason string) (*SupplierInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	expectedVersion := invoice.GetVersion()

	if err := invoice.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice, expectedVersion); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToSupplierInvoiceResponse(invoice)
	return &response, nil
}

func (s *SupplierInvoiceService) publishEvents(ctx context.Context, invoice *finance.SupplierInvoice) {
	if s.eventPublisher == nil {
		return
	}
	events := invoice.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	invoice.ClearDomainEvents()
}
