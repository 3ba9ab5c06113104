package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/partner"
)

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Code         string `json:"code" binding:"omitempty,max=50"`
	Name         string `json:"name" binding:"required,min=1,max=200"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	Phone        string `json:"phone" binding:"max=50"`
	Email        string `json:"email" binding:"omitempty,email,max=100"`
	Address      string `json:"address" binding:"max=500"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"max=100"`
	PostalCode   string `json:"postal_code" binding:"max=20"`
	Country      string `json:"country" binding:"max=100"`
	TaxID        string `json:"tax_id" binding:"max=50"`
	BankName     string `json:"bank_name" binding:"max=100"`
	BankAccount  string `json:"bank_account" binding:"max=50"`
	PaymentTerms string `json:"payment_terms" binding:"omitempty,oneof=NET_30 NET_60 NET_90 DUE_ON_RECEIPT CUSTOM"`
	Notes        string `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Email        *string `json:"email" binding:"omitempty,email,max=100"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	State        *string `json:"state" binding:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" binding:"omitempty,max=20"`
	Country      *string `json:"country" binding:"omitempty,max=100"`
	TaxID        *string `json:"tax_id" binding:"omitempty,max=50"`
	BankName     *string `json:"bank_name" binding:"omitempty,max=100"`
	BankAccount  *string `json:"bank_account" binding:"omitempty,max=50"`
	PaymentTerms *string `json:"payment_terms" binding:"omitempty,oneof=NET_30 NET_60 NET_90 DUE_ON_RECEIPT CUSTOM"`
	Notes        *string `json:"notes"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	Country      string    `json:"country,omitempty"`
	TaxID        string    `json:"tax_id,omitempty"`
	BankName     string    `json:"bank_name,omitempty"`
	BankAccount  string    `json:"bank_account,omitempty"`
	PaymentTerms string    `json:"payment_terms"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier to a response DTO
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           s.ID,
		Code:         s.Code,
		Name:         s.Name,
		ContactName:  s.ContactName,
		Phone:        s.Phone,
		Email:        s.Email,
		Address:      s.Address,
		City:         s.City,
		State:        s.State,
		PostalCode:   s.PostalCode,
		Country:      s.Country,
		TaxID:        s.TaxID,
		BankName:     s.BankName,
		BankAccount:  s.BankAccount,
		PaymentTerms: string(s.PaymentTerms),
		Status:       s.Status.String(),
		Notes:        s.Notes,
		Version:      s.GetVersion(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of domain suppliers to response DTOs
func ToSupplierResponses(suppliers []*partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		responses[i] = ToSupplierResponse(s)
	}
	return responses
}
