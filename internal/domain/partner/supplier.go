package partner

import (
	"time"

	"github.com/partsflow/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive      SupplierStatus = "active"
	SupplierStatusInactive    SupplierStatus = "inactive"
	SupplierStatusSuspended   SupplierStatus = "suspended"
	SupplierStatusBlacklisted SupplierStatus = "blacklisted"
)

// IsValid checks if the status is a valid SupplierStatus
func (s SupplierStatus) IsValid() bool {
	switch s {
	case SupplierStatusActive, SupplierStatusInactive, SupplierStatusSuspended, SupplierStatusBlacklisted:
		return true
	}
	return false
}

// String returns the string representation of SupplierStatus
func (s SupplierStatus) String() string {
	return string(s)
}

// PaymentTerms represents agreed payment terms with a supplier
type PaymentTerms string

const (
	PaymentTermsNet30        PaymentTerms = "NET_30"
	PaymentTermsNet60        PaymentTerms = "NET_60"
	PaymentTermsNet90        PaymentTerms = "NET_90"
	PaymentTermsDueOnReceipt PaymentTerms = "DUE_ON_RECEIPT"
	PaymentTermsCustom       PaymentTerms = "CUSTOM"
)

// IsValid checks if the value is a valid PaymentTerms
func (p PaymentTerms) IsValid() bool {
	switch p {
	case PaymentTermsNet30, PaymentTermsNet60, PaymentTermsNet90, PaymentTermsDueOnReceipt, PaymentTermsCustom:
		return true
	}
	return false
}

// NetDays returns the number of days until payment is due.
// DUE_ON_RECEIPT and CUSTOM terms return 0.
func (p PaymentTerms) NetDays() int {
	switch p {
	case PaymentTermsNet30:
		return 30
	case PaymentTermsNet60:
		return 60
	case PaymentTermsNet90:
		return 90
	}
	return 0
}

// Supplier represents a supplier aggregate root
type Supplier struct {
	shared.BaseAggregateRoot
	Code         string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string         `gorm:"type:varchar(200);not null"`
	ContactName  string         `gorm:"type:varchar(100)"`
	Phone        string         `gorm:"type:varchar(50)"`
	Email        string         `gorm:"type:varchar(100)"`
	Address      string         `gorm:"type:varchar(500)"`
	City         string         `gorm:"type:varchar(100)"`
	State        string         `gorm:"type:varchar(100)"`
	PostalCode   string         `gorm:"type:varchar(20)"`
	Country      string         `gorm:"type:varchar(100)"`
	TaxID        string         `gorm:"type:varchar(50)"`
	BankName     string         `gorm:"type:varchar(100)"`
	BankAccount  string         `gorm:"type:varchar(50)"`
	PaymentTerms PaymentTerms   `gorm:"type:varchar(20);not null;default:'NET_30'"`
	Status       SupplierStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes        string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new active supplier
func NewSupplier(code, name string) (*Supplier, error) {
	if code == "" {
		return nil, shared.NewValidationError("Supplier code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewValidationError("Supplier code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewValidationError("Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Supplier name cannot exceed 200 characters")
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		PaymentTerms:      PaymentTermsNet30,
		Status:            SupplierStatusActive,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// UpdateContact updates contact information
func (s *Supplier) UpdateContact(contactName, phone, email string) {
	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// UpdateAddress updates address information
func (s *Supplier) UpdateAddress(address, city, state, postalCode, country string) {
	s.Address = address
	s.City = city
	s.State = state
	s.PostalCode = postalCode
	s.Country = country
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// UpdateFinancials updates tax and banking details
func (s *Supplier) UpdateFinancials(taxID, bankName, bankAccount string) {
	s.TaxID = taxID
	s.BankName = bankName
	s.BankAccount = bankAccount
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// UpdatePaymentTerms updates the agreed payment terms
func (s *Supplier) UpdatePaymentTerms(terms PaymentTerms) error {
	if !terms.IsValid() {
		return shared.NewValidationError("Invalid payment terms")
	}
	s.PaymentTerms = terms
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// UpdateName updates the supplier name
func (s *Supplier) UpdateName(name string) error {
	if name == "" {
		return shared.NewValidationError("Supplier name cannot be empty")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate sets the supplier status to active
func (s *Supplier) Activate() error {
	if s.Status == SupplierStatusBlacklisted {
		return shared.NewInvalidTransitionError("activate", s.Status.String())
	}
	s.Status = SupplierStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewSupplierStatusChangedEvent(s))
	return nil
}

// Deactivate sets the supplier status to inactive.
// Used instead of deletion when the supplier has order history.
func (s *Supplier) Deactivate() error {
	if s.Status == SupplierStatusBlacklisted {
		return shared.NewInvalidTransitionError("deactivate", s.Status.String())
	}
	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewSupplierStatusChangedEvent(s))
	return nil
}

// Suspend temporarily blocks new orders for the supplier
func (s *Supplier) Suspend() error {
	if s.Status == SupplierStatusBlacklisted {
		return shared.NewInvalidTransitionError("suspend", s.Status.String())
	}
	s.Status = SupplierStatusSuspended
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewSupplierStatusChangedEvent(s))
	return nil
}

// Blacklist permanently blocks the supplier
func (s *Supplier) Blacklist() {
	s.Status = SupplierStatusBlacklisted
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewSupplierStatusChangedEvent(s))
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

// CanOrder returns true if new purchase orders may be placed with this supplier
func (s *Supplier) CanOrder() bool {
	return s.Status == SupplierStatusActive
}
