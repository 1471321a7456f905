package api

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"lsp-fixtures/internal/calc"
	"lsp-fixtures/internal/domain"
	"lsp-fixtures/internal/errors"
	"lsp-fixtures/internal/logging"
	"lsp-fixtures/internal/manager"
	"lsp-fixtures/internal/repository/sqlite"
	"lsp-fixtures/internal/validation"
)

// API defines every operation the CLI and HTTP server expose.
type API interface {
	// Task operations
	AddTask(ctx context.Context, owner, title string, opts ...manager.TaskOption) (domain.Task, error)
	CompleteTask(ctx context.Context, owner string, id int) (bool, error)
	ListTasks(ctx context.Context, owner string, filter domain.CompletionFilter) ([]domain.Task, error)
	ListOwners(ctx context.Context) ([]string, error)
	SummarizeTasks(ctx context.Context, owner string) (TaskSummary, error)

	// User operations
	CreateUser(ctx context.Context, name, email string) (domain.User, error)
	GetUser(ctx context.Context, key uuid.UUID) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SendEmail(ctx context.Context, w io.Writer, key uuid.UUID, subject, message string) (bool, error)

	// Calculations
	CompoundInterest(principal, rate, time, compounds float64) float64
	RectangleArea(width, height float64) float64
}

type apiImpl struct {
	// mu serializes load-modify-save cycles so concurrent adds cannot
	// hand out the same id.
	mu            sync.Mutex
	repo          sqlite.Repository
	userValidator *validation.UserValidator
}

// New creates a new API instance.
func New(repo sqlite.Repository) API {
	return &apiImpl{
		repo:          repo,
		userValidator: validation.NewUserValidator(),
	}
}

func (a *apiImpl) AddTask(ctx context.Context, owner, title string, opts ...manager.TaskOption) (domain.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tm, err := a.loadManager(ctx, owner)
	if err != nil {
		return domain.Task{}, err
	}

	task := tm.AddTask(title, opts...)
	if err := a.repo.SaveTask(ctx, tm.Owner(), task); err != nil {
		return domain.Task{}, err
	}
	logging.Debugf("added task %d for %s\n", task.ID, tm.Owner())
	return task, nil
}

// CompleteTask marks a task done. An unknown id reports false without error.
func (a *apiImpl) CompleteTask(ctx context.Context, owner string, id int) (bool, error) {
	if err := validation.ValidateTaskID(id); err != nil {
		return false, asAppError(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	tm, err := a.loadManager(ctx, owner)
	if err != nil {
		return false, err
	}

	if !tm.CompleteTask(id) {
		logging.Debugf("task %d not found for %s\n", id, tm.Owner())
		return false, nil
	}

	task, _ := tm.Task(id)
	if err := a.repo.SaveTask(ctx, tm.Owner(), task); err != nil {
		return false, err
	}
	return true, nil
}

func (a *apiImpl) ListTasks(ctx context.Context, owner string, filter domain.CompletionFilter) ([]domain.Task, error) {
	tm, err := a.loadManager(ctx, owner)
	if err != nil {
		return nil, err
	}
	return tm.Tasks(filter), nil
}

func (a *apiImpl) ListOwners(ctx context.Context) ([]string, error) {
	return a.repo.ListOwners(ctx)
}

// CreateUser validates the input, then builds and stores a new user.
func (a *apiImpl) CreateUser(ctx context.Context, name, email string) (domain.User, error) {
	if err := a.userValidator.ValidateUser(name, email); err != nil {
		return domain.User{}, asAppError(err)
	}

	user := domain.NewUser(strings.TrimSpace(name), strings.TrimSpace(email))
	if err := a.repo.SaveUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	logging.Debugf("created user %s with display id %d\n", user.Key, user.ID)
	return user, nil
}

func (a *apiImpl) GetUser(ctx context.Context, key uuid.UUID) (domain.User, error) {
	user, err := a.repo.GetUser(ctx, key)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func (a *apiImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	return a.repo.ListUsers(ctx)
}

// SendEmail looks up the user and writes the simulated delivery to w.
func (a *apiImpl) SendEmail(ctx context.Context, w io.Writer, key uuid.UUID, subject, message string) (bool, error) {
	user, err := a.GetUser(ctx, key)
	if err != nil {
		return false, err
	}
	return user.SendEmail(w, subject, message), nil
}

func (a *apiImpl) CompoundInterest(principal, rate, time, compounds float64) float64 {
	return calc.CompoundInterest(principal, rate, time, compounds)
}

func (a *apiImpl) RectangleArea(width, height float64) float64 {
	return calc.RectangleArea(width, height)
}

// loadManager rebuilds the owner's task list from storage.
func (a *apiImpl) loadManager(ctx context.Context, owner string) (*manager.TaskManager, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = manager.DefaultOwner
	}
	if err := validation.ValidateOwner(owner); err != nil {
		return nil, asAppError(err)
	}

	tasks, err := a.repo.ListTasks(ctx, owner)
	if err != nil {
		return nil, err
	}
	return manager.RestoreTaskManager(owner, tasks), nil
}

// asAppError lifts field validation failures into the application error type.
func asAppError(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return errors.NewValidationError(ve.UserMessage(), ve)
	}
	return err
}
