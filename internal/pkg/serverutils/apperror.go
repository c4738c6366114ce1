package serverutils

import (
	"errors"
	"fmt"
)

// AppError carries an HTTP status alongside the message so the error
// middleware can map domain failures without string matching.
type AppError struct {
	Status  int
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

func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func WrapAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

// Common domain failures.
var (
	ErrNotFound     = NewAppError(404, "resource not found")
	ErrForbidden    = NewAppError(403, "insufficient role")
	ErrUnauthorized = NewAppError(401, "authentication required")
	ErrValidation   = NewAppError(400, "validation failed")
	ErrFileTooLarge = NewAppError(413, "file exceeds the allowed size")
)

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
