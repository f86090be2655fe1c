package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrInvalidToken            = errors.New("invalid or expired token")

	ErrInvalidInput = errors.New("invalid input data")
)

// AppError carries a stable machine-readable code alongside the message so
// the presentation layer can render an actionable error without parsing text.
type AppError struct {
	Code    string
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

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf extracts the application error code, falling back to INTERNAL_ERROR
// for errors that did not originate from an invariant check.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}
