package partner

import (
	"github.com/partsflow/backend/internal/domain/shared"
)

// Event types for the partner context
const (
	EventSupplierCreated       = "partner.supplier.created"
	EventSupplierStatusChanged = "partner.supplier.status_changed"
)

// SupplierCreatedEvent is raised when a supplier is created
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewSupplierCreatedEvent creates a new SupplierCreatedEvent
func NewSupplierCreatedEvent(supplier *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSupplierCreated, "Supplier", supplier.ID),
		Code:            supplier.Code,
		Name:            supplier.Name,
	}
}

// SupplierStatusChangedEvent is raised when a supplier status changes
type SupplierStatusChangedEvent struct {
	shared.BaseDomainEvent
	Code   string         `json:"code"`
	Status SupplierStatus `json:"status"`
}

// NewSupplierStatusChangedEvent creates a new SupplierStatusChangedEvent
func NewSupplierStatusChangedEvent(supplier *Supplier) *SupplierStatusChangedEvent {
	return &SupplierStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSupplierStatusChanged, "Supplier", supplier.ID),
		Code:            supplier.Code,
		Status:          supplier.Status,
	}
}
