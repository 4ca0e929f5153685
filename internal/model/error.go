package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidID         = "INVALID_ID"
	ErrCodeInvalidPrice      = "INVALID_PRICE"
	ErrCodeInvalidStock      = "INVALID_STOCK"
	ErrCodeInvalidStatus     = "INVALID_STATUS"
	ErrCodeInvalidFilter     = "INVALID_FILTER"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeOutOfStock        = "OUT_OF_STOCK"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeSessionRequired   = "SESSION_REQUIRED"
	ErrCodeInvalidCredential = "INVALID_CREDENTIAL"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so a field-specific
// validation error still matches its sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// MissingField returns a validation error naming the empty field.
func MissingField(field string) *DomainError {
	return NewDomainError(ErrCodeMissingField, field+" is required")
}

// AsDomainError extracts a DomainError from an error chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrMissingField      = NewDomainError(ErrCodeMissingField, "Please fill in all required fields")
	ErrInvalidPrice      = NewDomainError(ErrCodeInvalidPrice, "Price must be zero or greater")
	ErrInvalidStock      = NewDomainError(ErrCodeInvalidStock, "Stock must be zero or greater")
	ErrInvalidStatus     = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrInvalidFilter     = NewDomainError(ErrCodeInvalidFilter, "Unknown price range")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductsNotFound  = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrCategoryNotFound  = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrOutOfStock        = NewDomainError(ErrCodeOutOfStock, "Product is out of stock")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrSessionRequired   = NewDomainError(ErrCodeSessionRequired, "A session is required")
	ErrForbidden         = NewDomainError(ErrCodeForbidden, "Admin access required")
	ErrInvalidCredential = NewDomainError(ErrCodeInvalidCredential, "Invalid admin key")
)
