package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"lsp-fixtures/internal/config"
	apperrors "lsp-fixtures/internal/errors"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "validation error",
			operation: "create user",
			err:       apperrors.NewValidationError("name is required", nil),
			expected:  "failed to create user: name is required",
		},
		{
			name:      "not found error",
			operation: "show user",
			err:       apperrors.NewNotFoundError("user", "123"),
			expected:  "failed to show user: user not found: 123",
		},
		{
			name:      "database error",
			operation: "add task",
			err:       apperrors.NewDatabaseError("insert", errors.New("disk full")),
			expected:  "failed to add task: A database error occurred. Please try again.",
		},
		{
			name:      "regular error",
			operation: "export tasks",
			err:       errors.New("permission denied"),
			expected:  "failed to export tasks: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.Handle(tt.operation, tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_HandleKeepsCause(t *testing.T) {
	eh := NewErrorHandler()
	cause := apperrors.NewNotFoundError("task", "7")

	err := eh.Handle("complete task", cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, eh.IsNotFoundError(err))
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "app error", err: apperrors.NewNotFoundError("task", "7"), expected: "task not found: 7"},
		{name: "database detail hidden", err: apperrors.NewDatabaseError("open", errors.New("disk")), expected: "A database error occurred. Please try again."},
		{name: "already handled", err: eh.Handle("show user", apperrors.NewNotFoundError("user", "1")), expected: "failed to show user: user not found: 1"},
		{name: "plain error", err: errors.New("plain"), expected: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.HandleSimple(tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_ExitCode(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "success", err: nil, expected: 0},
		{name: "validation", err: apperrors.NewValidationError("bad", nil), expected: ExitValidation},
		{name: "invalid input", err: eh.Handle("add", apperrors.NewInvalidInputError("id", "x", "must be an integer")), expected: ExitValidation},
		{name: "config", err: &config.ConfigError{Field: "server.addr", Message: "empty"}, expected: ExitValidation},
		{name: "not found", err: eh.Handle("show user", apperrors.NewNotFoundError("user", "1")), expected: ExitNotFound},
		{name: "timeout", err: apperrors.NewTimeoutError("list tasks", nil), expected: ExitTimeout},
		{name: "database", err: apperrors.NewDatabaseError("save", nil), expected: ExitFailure},
		{name: "plain", err: errors.New("boom"), expected: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eh.ExitCode(tt.err))
		})
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	assert.True(t, eh.IsValidationError(apperrors.NewValidationError("bad", nil)))
	assert.True(t, eh.IsValidationError(apperrors.NewInvalidInputError("id", "x", "must be an integer")))
	assert.False(t, eh.IsValidationError(errors.New("plain")))
	assert.True(t, eh.IsNotFoundError(apperrors.NewNotFoundError("user", "1")))
	assert.Equal(t, "NOT_FOUND", eh.GetErrorCode(apperrors.NewNotFoundError("user", "1")))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(errors.New("plain")))
}
