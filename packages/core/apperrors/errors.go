package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable codes surfaced to API clients alongside the message.
const (
	CodeValidation        = "validation"
	CodeNotFound          = "not_found"
	CodeCapacity          = "capacity"
	CodeInsufficientFunds = "insufficient_funds"
	CodeDuplicateJoin     = "duplicate_join"
	CodeNotParticipant    = "not_participant"
	CodeAlreadyFinished   = "already_finished"
	CodeInsufficientRole  = "insufficient_role"
	CodeInvalidAmount     = "invalid_amount"
	CodeDuplicatePurchase = "duplicate_purchase"
	CodeContention        = "contention"
	CodeInternal          = "internal"
)

// AppError is a domain error with an HTTP status and a user-facing message.
// The wrapped cause is logged but never rendered to the client.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code, message string, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: err}
}

func Validation(format string, args ...interface{}) *AppError {
	return New(http.StatusBadRequest, CodeValidation, fmt.Sprintf(format, args...), nil)
}

func NotFound(format string, args ...interface{}) *AppError {
	return New(http.StatusNotFound, CodeNotFound, fmt.Sprintf(format, args...), nil)
}

func Capacity(format string, args ...interface{}) *AppError {
	return New(http.StatusBadRequest, CodeCapacity, fmt.Sprintf(format, args...), nil)
}

func InsufficientFunds(format string, args ...interface{}) *AppError {
	return New(http.StatusBadRequest, CodeInsufficientFunds, fmt.Sprintf(format, args...), nil)
}

func DuplicateJoin(format string, args ...interface{}) *AppError {
	return New(http.StatusConflict, CodeDuplicateJoin, fmt.Sprintf(format, args...), nil)
}

func NotParticipant(format string, args ...interface{}) *AppError {
	return New(http.StatusBadRequest, CodeNotParticipant, fmt.Sprintf(format, args...), nil)
}

func AlreadyFinished(format string, args ...interface{}) *AppError {
	return New(http.StatusBadRequest, CodeAlreadyFinished, fmt.Sprintf(format, args...), nil)
}

func InsufficientRole(format string, args ...interface{}) *AppError {
	return New(http.StatusBadRequest, CodeInsufficientRole, fmt.Sprintf(format, args...), nil)
}

func InvalidAmount(format string, args ...interface{}) *AppError {
	return New(http.StatusBadRequest, CodeInvalidAmount, fmt.Sprintf(format, args...), nil)
}

func DuplicatePurchase(format string, args ...interface{}) *AppError {
	return New(http.StatusConflict, CodeDuplicatePurchase, fmt.Sprintf(format, args...), nil)
}

// Contention marks a transient lock-acquisition failure. Safe for the caller
// to retry with backoff; never retried internally.
func Contention(format string, args ...interface{}) *AppError {
	return New(http.StatusServiceUnavailable, CodeContention, fmt.Sprintf(format, args...), nil)
}

func Internal(message string, err error) *AppError {
	return New(http.StatusInternalServerError, CodeInternal, message, err)
}

// As unwraps err into an *AppError, if one is anywhere in the chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given domain code.
func IsCode(err error, code string) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}
