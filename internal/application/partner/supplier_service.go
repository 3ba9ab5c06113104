package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/partner"
	"github.com/partsflow/backend/internal/domain/procurement"
	"github.com/partsflow/backend/internal/domain/shared"
)

// SupplierService handles supplier business operations
type SupplierService struct {
	supplierRepo   partner.SupplierRepository
	orderRepo      procurement.PurchaseOrderRepository
	eventPublisher shared.EventPublisher
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, orderRepo procurement.PurchaseOrderRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SupplierService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new supplier. A code is generated when none is given.
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	code := req.Code
	if code == "" {
		generated, err := s.supplierRepo.GenerateSupplierCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	} else {
		exists, err := s.supplierRepo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewValidationError("Supplier code already exists")
		}
	}

	supplier, err := partner.NewSupplier(code, req.Name)
	if err != nil {
		return nil, err
	}

	supplier.UpdateContact(req.ContactName, req.Phone, req.Email)
	supplier.UpdateAddress(req.Address, req.City, req.State, req.PostalCode, req.Country)
	supplier.UpdateFinancials(req.TaxID, req.BankName, req.BankAccount)
	if req.PaymentTerms != "" {
		if err := supplier.UpdatePaymentTerms(partner.PaymentTerms(req.PaymentTerms)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		supplier.SetNotes(req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with pagination
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplierResponse], error) {
	result, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := shared.NewPaginated(ToSupplierResponses(result.Items), result.Total, result.Page, result.PageSize)
	return &response, nil
}

// Update updates supplier details
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := supplier.UpdateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		supplier.UpdateContact(
			stringOr(req.ContactName, supplier.ContactName),
			stringOr(req.Phone, supplier.Phone),
			stringOr(req.Email, supplier.Email),
		)
	}
	if req.Address != nil || req.City != nil || req.State != nil || req.PostalCode != nil || req.Country != nil {
		supplier.UpdateAddress(
			stringOr(req.Address, supplier.Address),
			stringOr(req.City, supplier.City),
			stringOr(req.State, supplier.State),
			stringOr(req.PostalCode, supplier.PostalCode),
			stringOr(req.Country, supplier.Country),
		)
	}
	if req.TaxID != nil || req.BankName != nil || req.BankAccount != nil {
		supplier.UpdateFinancials(
			stringOr(req.TaxID, supplier.TaxID),
			stringOr(req.BankName, supplier.BankName),
			stringOr(req.BankAccount, supplier.BankAccount),
		)
	}
	if req.PaymentTerms != nil {
		if err := supplier.UpdatePaymentTerms(partner.PaymentTerms(*req.PaymentTerms)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		supplier.SetNotes(*req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Activate sets the supplier status to active
func (s *SupplierService) Activate(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	return s.changeStatus(ctx, id, (*partner.Supplier).Activate)
}

// Suspend temporarily blocks new orders for the supplier
func (s *SupplierService) Suspend(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	return s.changeStatus(ctx, id, (*partner.Supplier).Suspend)
}

// Blacklist permanently blocks the supplier
func (s *SupplierService) Blacklist(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Blacklist()

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier. When the supplier still has purchase
// orders in flight the supplier is deactivated instead of deleted, so
// order history stays intact.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	incomplete, err := s.orderRepo.CountIncompleteBySupplier(ctx, id)
	if err != nil {
		return false, err
	}
	if incomplete > 0 {
		if err := supplier.Deactivate(); err != nil {
			return false, err
		}
		if err := s.supplierRepo.Save(ctx, supplier); err != nil {
			return false, err
		}
		s.publishEvents(ctx, supplier)
		return false, nil
	}

	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SupplierService) changeStatus(ctx context.Context, id uuid.UUID, change func(*partner.Supplier) error) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := change(supplier); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

func (s *SupplierService) publishEvents(ctx context.Context, supplier *partner.Supplier) {
	if s.eventPublisher == nil {
		return
	}
	events := supplier.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Event delivery is best-effort; the state change is already durable
	_ = s.eventPublisher.Publish(ctx, events...)
	supplier.ClearDomainEvents()
}

func stringOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
