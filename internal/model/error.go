package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeMissingField            = "MISSING_FIELD"
	ErrCodeInvalidQuantity         = "INVALID_QUANTITY"
	ErrCodeInvalidPrice            = "INVALID_PRICE"
	ErrCodeCustomerNotFound        = "CUSTOMER_NOT_FOUND"
	ErrCodeProductNotFound         = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound        = "CATEGORY_NOT_FOUND"
	ErrCodeOrderNotFound           = "ORDER_NOT_FOUND"
	ErrCodeDuplicateEmail          = "DUPLICATE_EMAIL"
	ErrCodeDuplicateProductName    = "DUPLICATE_PRODUCT_NAME"
	ErrCodeDuplicateCategoryName   = "DUPLICATE_CATEGORY_NAME"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeInvalidCheckoutStatus   = "INVALID_CHECKOUT_STATUS"
	ErrCodeInsufficientStock       = "INSUFFICIENT_STOCK"
	ErrCodeEmptyOrder              = "EMPTY_ORDER"
	ErrCodeMissingAddress          = "MISSING_ADDRESS"
	ErrCodeMissingPayment          = "MISSING_PAYMENT"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
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

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCustomerNotFound = NewDomainError(ErrCodeCustomerNotFound, "No customer with this id exists.")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "No product with this name exists.")
	ErrCategoryNotFound = NewDomainError(ErrCodeCategoryNotFound, "No category with this id exists.")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "No order with this id exists.")

	ErrDuplicateEmail        = NewDomainError(ErrCodeDuplicateEmail, "A customer with this email already exists.")
	ErrDuplicateProductName  = NewDomainError(ErrCodeDuplicateProductName, "A product with this name already exists.")
	ErrDuplicateCategoryName = NewDomainError(ErrCodeDuplicateCategoryName, "A category with this name already exists.")

	ErrEmptyOrder            = NewDomainError(ErrCodeEmptyOrder, "Order must have at least one item.")
	ErrMissingAddress        = NewDomainError(ErrCodeMissingAddress, "Customer must have a valid address to checkout.")
	ErrMissingPayment        = NewDomainError(ErrCodeMissingPayment, "Order must have a valid payment method to checkout.")
	ErrInvalidQuantity       = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be a non-negative integer.")
	ErrInvalidCheckoutStatus = NewDomainError(ErrCodeInvalidCheckoutStatus, "Checkout can only transition an order to the 'processing' status.")
)

// NewInsufficientStockError reports a stock shortfall for a named product.
func NewInsufficientStockError(productName string, requested, available int) *DomainError {
	return NewDomainError(
		ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for product '%s': %d requested, %d available.", productName, requested, available),
	)
}

// NewInvalidTransitionError reports an order status transition that the
// lifecycle does not permit.
func NewInvalidTransitionError(from, to Status) *DomainError {
	return NewDomainError(
		ErrCodeInvalidStatusTransition,
		fmt.Sprintf("Invalid status transition from '%s' to '%s'.", from, to),
	)
}
