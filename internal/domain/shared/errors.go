package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared across contexts
const (
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeInvalidState           = "INVALID_STATE"
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeDuplicateInvoiceNumber = "DUPLICATE_INVOICE_NUMBER"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeStoreUnavailable       = "STORE_UNAVAILABLE"
)

// Common domain errors
var (
	ErrNotFound               = NewDomainError(CodeNotFound, "Resource not found")
	ErrConcurrentModification = NewDomainError(CodeConcurrentModification, "Resource was modified by another process")
	ErrInvalidState           = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrStoreUnavailable       = NewDomainError(CodeStoreUnavailable, "Storage backend is unavailable")
)

// NewInvalidTransitionError reports a rejected status-engine action.
// The message carries both the attempted action and the current state so
// callers can render a meaningful diagnostic.
func NewInvalidTransitionError(action, currentState string) *DomainError {
	return NewDomainError(CodeInvalidTransition,
		fmt.Sprintf("Cannot %s in %s status", action, currentState))
}

// NewValidationError reports malformed input
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidationFailed, message)
}
