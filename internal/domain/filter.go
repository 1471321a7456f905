package domain

import (
	"strings"

	"lsp-fixtures/internal/errors"
)

// CompletionFilter selects tasks by completion state. The zero value
// applies no filter, which is distinct from asking for pending tasks only.
type CompletionFilter int

const (
	FilterAll CompletionFilter = iota
	FilterPending
	FilterCompleted
)

// Matches reports whether the task passes the filter.
func (f CompletionFilter) Matches(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

func (f CompletionFilter) String() string {
	switch f {
	case FilterPending:
		return "pending"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// ParseCompletionFilter parses the textual form used by the CLI and HTTP
// query strings.
func ParseCompletionFilter(s string) (CompletionFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "pending", "incomplete":
		return FilterPending, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return FilterAll, errors.NewInvalidInputError("filter", s, "must be one of all, pending, completed")
	}
}

// FilterFromBool maps an optional completion flag onto a filter: nil means
// no filter, otherwise only tasks whose completed flag equals *completed.
func FilterFromBool(completed *bool) CompletionFilter {
	if completed == nil {
		return FilterAll
	}
	if *completed {
		return FilterCompleted
	}
	return FilterPending
}
