package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates that a raw amount string is not a valid decimal numeral.
var ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

// ErrSelfTransfer indicates a transfer where sender and receiver are the same account.
var ErrSelfTransfer = fmt.Errorf("%w: sender and receiver must be different accounts", ErrValidation)

// ErrAccountNotFound indicates that an account id did not resolve to a row.
var ErrAccountNotFound = fmt.Errorf("%w: account not found", ErrNotFound)

// ErrInsufficientFunds indicates the sender cannot cover amount plus commission.
// It is an expected business outcome, not a system fault.
var ErrInsufficientFunds = errors.New("insufficient funds to complete this transfer")

// ErrDivisionByZero indicates a money division with a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// AppError wraps lower-level failures (storage, locking, connectivity) with an
// HTTP-ish status code and a message. Repositories return it for anything that
// is not one of the sentinel errors above; callers may treat it as retryable.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
