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

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure in a lower layer.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause so errors.Is/As see through AppError.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports sentinel equivalence based on the status code when the cause does not decide it.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrInternal:
		return e.Code >= 500
	case ErrValidation:
		return e.Code == 400
	case ErrNotFound:
		return e.Code == 404
	case ErrConflict:
		return e.Code == 409
	}
	return false
}

// NewNotFoundError wraps ErrNotFound with the resource kind and id.
func NewNotFoundError(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
