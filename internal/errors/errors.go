// Package errors defines the structured error carried between the
// repository, api and transport layers.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorType classifies an AppError.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
)

type kind struct {
	name string
	code string
	// user is shown verbatim to callers; empty means the message is safe
	// to expose as is.
	user string
}

var kinds = map[ErrorType]kind{
	ErrorTypeValidation:   {name: "validation", code: "VALIDATION_FAILED"},
	ErrorTypeNotFound:     {name: "not_found", code: "NOT_FOUND"},
	ErrorTypeDatabase:     {name: "database", code: "DATABASE_ERROR", user: "A database error occurred. Please try again."},
	ErrorTypeInvalidInput: {name: "invalid_input", code: "INVALID_INPUT"},
	ErrorTypeTimeout:      {name: "timeout", code: "TIMEOUT", user: "The operation timed out. Please try again."},
}

func (t ErrorType) String() string {
	if k, ok := kinds[t]; ok {
		return k.name
	}
	return "unknown"
}

// AppError is returned by the repository, api and transport layers. The
// task manager and calculations never return one.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Fields  map[string]any
}

func newAppError(t ErrorType, cause error, message string, fields map[string]any) *AppError {
	return &AppError{
		Type:    t,
		Message: message,
		Code:    kinds[t].code,
		Cause:   cause,
		Fields:  fields,
	}
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Type.String() + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another AppError with the same type and code.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && other.Type == e.Type && other.Code == e.Code
}

func (e *AppError) IsType(t ErrorType) bool { return e.Type == t }

// Field returns a detail recorded when the error was built.
func (e *AppError) Field(key string) (any, bool) {
	v, ok := e.Fields[key]
	return v, ok
}

func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, cause, message, nil)
}

func NewNotFoundError(resource, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, nil,
		fmt.Sprintf("%s not found: %s", resource, identifier),
		map[string]any{"resource": resource, "identifier": identifier})
}

func NewDatabaseError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeDatabase, cause,
		"database operation failed: "+operation,
		map[string]any{"operation": operation})
}

func NewInvalidInputError(field string, value any, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, nil,
		fmt.Sprintf("invalid input for %s: %s", field, reason),
		map[string]any{"field": field, "value": value})
}

func NewTimeoutError(operation string, timeout any) *AppError {
	return newAppError(ErrorTypeTimeout, nil,
		"operation timed out: "+operation,
		map[string]any{"operation": operation, "timeout": timeout})
}

// FromContext turns a deadline or cancellation into a timeout error for
// operation. Anything else is returned untouched.
func FromContext(err error, operation string) error {
	if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return err
	}
	te := NewTimeoutError(operation, nil)
	te.Cause = err
	return te
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func IsErrorType(err error, t ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(t)
}

// GetUserMessage hides internal detail for database and timeout failures.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	k, known := kinds[appErr.Type]
	if !known {
		return "An unexpected error occurred. Please try again."
	}
	if k.user != "" {
		return k.user
	}
	return appErr.Message
}

func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError is false for mistakes the caller made.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return false
	}
	return true
}
