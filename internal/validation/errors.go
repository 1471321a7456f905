package validation

import (
	"fmt"
	"strings"
)

// ValidationErrorType classifies a single field failure.
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
)

type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   any
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError collects every field failure found in one pass. The
// zero value is ready to use.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) add(field string, t ValidationErrorType, value any, format string, args ...any) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    t,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
	})
}

func (ve *ValidationError) Required(field string) {
	ve.add(field, ErrorTypeRequired, nil, "%s is required", field)
}

func (ve *ValidationError) BadFormat(field string, value any, expected string) {
	ve.add(field, ErrorTypeInvalidFormat, value, "%s has invalid format, expected: %s", field, expected)
}

func (ve *ValidationError) TooLong(field string, value any, max int) {
	ve.add(field, ErrorTypeInvalidLength, value, "%s must be at most %d characters long", field, max)
}

func (ve *ValidationError) BadValue(field string, value any, reason string) {
	ve.add(field, ErrorTypeInvalidValue, value, "%s has invalid value: %s", field, reason)
}

// Err returns ve when something was recorded and nil otherwise, so callers
// never hand back a typed nil.
func (ve *ValidationError) Err() error {
	if len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

// ForField returns the failures recorded against field.
func (ve *ValidationError) ForField(field string) []FieldError {
	var out []FieldError
	for _, fe := range ve.Errors {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return ve.Errors[0].Error()
	}
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Error()
	}
	return "multiple validation errors: " + strings.Join(parts, "; ")
}

// UserMessage renders the failures for terminal or HTTP output.
func (ve *ValidationError) UserMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Message)
	}
	return b.String()
}
