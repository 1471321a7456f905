package cli

import (
	stderrors "errors"
	"fmt"

	"lsp-fixtures/internal/config"
	"lsp-fixtures/internal/errors"
	"lsp-fixtures/internal/logging"
)

// Process exit codes chosen by ExitCode.
const (
	ExitFailure    = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitTimeout    = 4
)

// ErrorHandler turns application errors into messages fit for a terminal.
type ErrorHandler struct{}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// commandError is the message shown for a failed command. The cause stays
// reachable so ExitCode can classify it.
type commandError struct {
	msg   string
	cause error
}

func (e *commandError) Error() string { return e.msg }

func (e *commandError) Unwrap() error { return e.cause }

// Handle prefixes the user-facing message with the failed operation.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if errors.ShouldLogError(err) {
		logging.Debugf("%s: %v\n", operation, err)
	}

	msg := err.Error()
	if _, ok := errors.AsAppError(err); ok {
		msg = errors.GetUserMessage(err)
	}
	return &commandError{msg: fmt.Sprintf("failed to %s: %s", operation, msg), cause: err}
}

// HandleSimple returns the user-facing message for an error that reached the
// top level. Errors already shaped by Handle are returned unchanged.
func (eh *ErrorHandler) HandleSimple(err error) error {
	var ce *commandError
	if stderrors.As(err, &ce) {
		return ce
	}
	if _, ok := errors.AsAppError(err); ok {
		return &commandError{msg: errors.GetUserMessage(err), cause: err}
	}
	return err
}

// IsValidationError covers bad field values, bad arguments and bad
// configuration.
func (eh *ErrorHandler) IsValidationError(err error) bool {
	var cfgErr *config.ConfigError
	return errors.IsErrorType(err, errors.ErrorTypeValidation) ||
		errors.IsErrorType(err, errors.ErrorTypeInvalidInput) ||
		stderrors.As(err, &cfgErr)
}

func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// ExitCode maps err to the process exit status.
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err):
		return ExitValidation
	case eh.IsNotFoundError(err):
		return ExitNotFound
	case eh.GetErrorCode(err) == "TIMEOUT":
		return ExitTimeout
	}
	return ExitFailure
}
