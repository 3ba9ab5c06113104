package dto

import (
	"net/http"

	"github.com/partsflow/backend/internal/domain/shared"
)

// HTTP-layer error codes for failures that never reach the domain
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected internal errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:               http.StatusNotFound,
	shared.CodeValidationFailed:       http.StatusBadRequest,
	shared.CodeInvalidTransition:      http.StatusUnprocessableEntity,
	shared.CodeInvalidState:           http.StatusUnprocessableEntity,
	shared.CodeDuplicateInvoiceNumber: http.StatusConflict,
	shared.CodeConcurrentModification: http.StatusConflict,
	shared.CodeStoreUnavailable:       http.StatusServiceUnavailable,
	ErrCodeBadRequest:                 http.StatusBadRequest,
	ErrCodeInternal:                   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes default to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
