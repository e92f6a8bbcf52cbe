package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeValidation       = "VALIDATION"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeProductNotInCart = "PRODUCT_NOT_IN_CART"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeQuantityTooLarge = "QUANTITY_TOO_LARGE"
	ErrCodeEmptyCart        = "EMPTY_CART"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeWrongPassword    = "WRONG_PASSWORD"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-logic failure that handlers translate
// into an HTTP status and a user-facing message.
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
	ErrUserNotFound       = NewDomainError(ErrCodeUserNotFound, "The user does not exist")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "The product does not exist")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "The order does not exist")
	ErrProductNotInCart   = NewDomainError(ErrCodeProductNotInCart, "The product is not in the cart")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "The quantity cannot be less than 1")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "The cart cannot be empty")
	ErrUnauthorised       = NewDomainError(ErrCodeUnauthorised, "Unauthorized")
	ErrUsernameTaken      = NewDomainError(ErrCodeConflict, "Username is already taken")
	ErrEmailInUse         = NewDomainError(ErrCodeConflict, "The email is already in use")
	ErrWrongCredentials   = NewDomainError(ErrCodeValidation, "Incorrect credentials")
	ErrWrongOldPassword   = NewDomainError(ErrCodeWrongPassword, "The old password is incorrect")
	ErrNegativePrice      = NewDomainError(ErrCodeValidation, "The price cannot be negative")
	ErrInvalidPhone       = NewDomainError(ErrCodeValidation, "The phone number is invalid")
	ErrIncompleteAddress  = NewDomainError(ErrCodeValidation, "The address is incomplete")
	ErrInvalidOrderStatus = NewDomainError(ErrCodeValidation, "The order status is invalid")
)

// NewQuantityTooLargeError reports a cart removal that exceeds the
// quantity currently held, embedding the held quantity in the message.
func NewQuantityTooLargeError(held int) *DomainError {
	return NewDomainError(ErrCodeQuantityTooLarge, fmt.Sprintf("The quantity cannot be larger than %d", held))
}

// NewMissingFieldError reports a required request field that was not supplied.
func NewMissingFieldError(field string) *DomainError {
	return NewDomainError(ErrCodeMissingField, fmt.Sprintf("The %s field is missing", field))
}
