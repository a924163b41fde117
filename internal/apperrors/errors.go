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

// ErrInvalidAmount indicates a zero (or negative, where positive is required) money amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrCurrencyMismatch indicates that the accounts involved in an operation use different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrInsufficientFunds indicates that a transfer would drive the source
// account below zero while its kind or the engine policy forbids that.
var ErrInsufficientFunds = errors.New("insufficient funds on source account")

// ErrPeriodLocked indicates that the posting date falls inside a locked accounting period.
var ErrPeriodLocked = errors.New("accounting period is locked")

// ErrAlreadyReversed indicates that the target movement already has a reversal linked to it.
var ErrAlreadyReversed = errors.New("movement already reversed")

// ErrConflict indicates that the resource is in a state that does not permit the operation.
var ErrConflict = errors.New("conflicting resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level failure (usually from the persistence layer)
// with an HTTP-ish status code and a human-readable message. The underlying
// error is never swallowed; it stays reachable via errors.Unwrap.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
