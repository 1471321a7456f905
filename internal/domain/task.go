package domain

import (
	"fmt"
	"time"
)

// DefaultPriority is the priority given to a task when none is supplied.
// Priorities are intended to range from 1 to 5 but are not enforced.
const DefaultPriority = 1

// Task is one unit of work owned by a task manager.
// Values are snapshots: changing a Task never changes the manager that
// produced it.
type Task struct {
	ID          int
	Title       string
	Description string
	Priority    int
	Completed   bool
	CreatedAt   time.Time
}

// Status returns "completed" or "pending".
func (t Task) Status() string {
	if t.Completed {
		return "completed"
	}
	return "pending"
}

// String returns a single-line summary of the task.
func (t Task) String() string {
	return fmt.Sprintf("%d: %s [%s]", t.ID, t.Title, t.Status())
}
