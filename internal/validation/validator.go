// Package validation checks user supplied input at the CLI and HTTP
// boundary. The task manager itself accepts anything.
package validation

import (
	"regexp"
	"strings"
)

// MaxFieldLength bounds free-text fields accepted at the boundary.
const MaxFieldLength = 255

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func tooLong(s string, max int) bool { return len(strings.TrimSpace(s)) > max }

// text records a required or length failure for a free-text field and
// reports whether the value passed.
func text(ve *ValidationError, field, value string) bool {
	switch {
	case blank(value):
		ve.Required(field)
	case tooLong(value, MaxFieldLength):
		ve.TooLong(field, value, MaxFieldLength)
	default:
		return true
	}
	return false
}

// ValidateTaskID rejects non-positive ids before they reach the manager.
func ValidateTaskID(id int) error {
	var ve ValidationError
	if id <= 0 {
		ve.BadValue("task_id", id, "must be a positive integer")
	}
	return ve.Err()
}

// ValidateOwner checks a task list owner name.
func ValidateOwner(owner string) error {
	var ve ValidationError
	text(&ve, "owner", owner)
	return ve.Err()
}

// UserValidator checks user input before a domain.User is built.
type UserValidator struct {
	email *regexp.Regexp
}

func NewUserValidator() *UserValidator {
	return &UserValidator{email: emailPattern}
}

// ValidateUser reports every problem with name and email in one error.
func (uv *UserValidator) ValidateUser(name, email string) error {
	var ve ValidationError
	text(&ve, "name", name)
	if text(&ve, "email", email) && !uv.email.MatchString(strings.TrimSpace(email)) {
		ve.BadFormat("email", email, "name@domain.tld")
	}
	return ve.Err()
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
