package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeValidation              = "VALIDATION_ERROR"
	ErrCodeDuplicateOrder          = "DUPLICATE_ORDER"
	ErrCodeProductNotFound         = "PRODUCT_NOT_FOUND"
	ErrCodeProductUnavailable      = "PRODUCT_UNAVAILABLE"
	ErrCodeInvalidQuantity         = "INVALID_QUANTITY"
	ErrCodeOrderNotFound           = "ORDER_NOT_FOUND"
	ErrCodeInvalidStatus           = "INVALID_STATUS"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeInvalidPageToken        = "INVALID_PAGE_TOKEN"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeNotFound                = "NOT_FOUND"
	ErrCodeMethodNotAllowed        = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches by code, so a detailed error satisfies errors.Is against its sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports a missing or malformed request field.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrProductNotFound         = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrProductUnavailable      = NewDomainError(ErrCodeProductUnavailable, "Product has no image to snapshot")
	ErrInvalidQuantity         = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrDuplicateOrder          = NewDomainError(ErrCodeDuplicateOrder, "Duplicate order")
	ErrOrderNotFound           = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidStatus           = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrInvalidStatusTransition = NewDomainError(ErrCodeInvalidStatusTransition, "Order status transition not allowed")
	ErrInvalidPageToken        = NewDomainError(ErrCodeInvalidPageToken, "Invalid page token")
)
