// Package manager implements the in-memory, append-only task list.
//
// The manager owns its tasks. Callers get value copies and refer back to a
// task by its id, so nothing outside the manager can change a stored task.
package manager

import (
	"sync"
	"time"

	"lsp-fixtures/internal/domain"
)

// DefaultOwner is used when a manager is created without an owner name.
const DefaultOwner = "Admin"

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// TaskOption adjusts the optional fields of a task being added.
type TaskOption func(*domain.Task)

// WithDescription sets the task description. The default is empty.
func WithDescription(description string) TaskOption {
	return func(t *domain.Task) {
		t.Description = description
	}
}

// WithPriority sets the task priority. The default is domain.DefaultPriority.
// The value is stored as given.
func WithPriority(priority int) TaskOption {
	return func(t *domain.Task) {
		t.Priority = priority
	}
}

// TaskManager keeps an ordered list of tasks for one owner.
// Ids are assigned as len(tasks)+1 and tasks are never removed, so ids are
// unique and increasing.
type TaskManager struct {
	mu    sync.Mutex
	owner string
	tasks []domain.Task
}

// NewTaskManager creates an empty manager. An empty owner becomes DefaultOwner.
func NewTaskManager(owner string) *TaskManager {
	if owner == "" {
		owner = DefaultOwner
	}
	return &TaskManager{owner: owner}
}

// RestoreTaskManager rebuilds a manager from previously stored tasks, kept
// in the order given.
func RestoreTaskManager(owner string, tasks []domain.Task) *TaskManager {
	tm := NewTaskManager(owner)
	tm.tasks = append(tm.tasks, tasks...)
	return tm
}

// Owner returns the owner name.
func (tm *TaskManager) Owner() string {
	return tm.owner
}

// AddTask appends a new pending task and returns a copy of it.
// Any title and priority are accepted.
func (tm *TaskManager) AddTask(title string, opts ...TaskOption) domain.Task {
	startTime := time.Now()
	defer func() {
		addTaskDuration.Observe(time.Since(startTime).Seconds())
	}()

	task := domain.Task{
		Title:    title,
		Priority: domain.DefaultPriority,
	}
	for _, opt := range opts {
		opt(&task)
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	task.ID = len(tm.tasks) + 1
	task.Completed = false
	task.CreatedAt = timeNow()
	tm.tasks = append(tm.tasks, task)

	addTaskCount.Inc()
	taskTitleLength.Observe(float64(len(title)))

	return task
}

// CompleteTask marks the first task with the given id as completed.
// It returns false, changing nothing, when no such task exists. Completing
// an already completed task still returns true.
func (tm *TaskManager) CompleteTask(id int) bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for i := range tm.tasks {
		if tm.tasks[i].ID == id {
			tm.tasks[i].Completed = true
			completeTaskCount.WithLabelValues("success").Inc()
			return true
		}
	}

	completeTaskCount.WithLabelValues("not_found").Inc()
	return false
}

// Tasks returns a new slice of the tasks that pass the filter, in
// insertion order.
func (tm *TaskManager) Tasks(filter domain.CompletionFilter) []domain.Task {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	result := make([]domain.Task, 0, len(tm.tasks))
	for _, task := range tm.tasks {
		if filter.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Task returns a copy of the task with the given id.
func (tm *TaskManager) Task(id int) (domain.Task, bool) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for _, task := range tm.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

// Len returns the number of tasks.
func (tm *TaskManager) Len() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.tasks)
}
