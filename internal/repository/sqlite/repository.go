package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"lsp-fixtures/internal/domain"
	"lsp-fixtures/internal/errors"
	"lsp-fixtures/internal/logging"
	"lsp-fixtures/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the persistence operations for task lists and users
type Repository interface {
	// Tasks
	SaveTask(ctx context.Context, owner string, task domain.Task) error
	ListTasks(ctx context.Context, owner string) ([]domain.Task, error)
	ListOwners(ctx context.Context) ([]string, error)

	// Users
	SaveUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, key uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)

	// Utility
	Close() error
}

// Options tunes the repository.
type Options struct {
	// QueryTimeout bounds each statement. Zero means no extra bound.
	QueryTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens the database at dbPath and applies pending migrations.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	logging.Debugf("opening database %s\n", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := migrations.Run(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

// SaveTask inserts the task for owner or replaces the stored copy.
func (r *SQLiteRepository) SaveTask(ctx context.Context, owner string, task domain.Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := taskToRow(owner, task)
	return exec(ctx, r.db, "save task", `
	INSERT INTO tasks (`+taskColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(owner, id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		priority = excluded.priority,
		completed = excluded.completed,
		created_at = excluded.created_at`,
		row.Owner, row.ID, row.Title, row.Description, row.Priority, row.Completed, row.CreatedAt)
}

// ListTasks returns the owner's tasks ordered by id. An owner with no
// tasks yields an empty slice.
func (r *SQLiteRepository) ListTasks(ctx context.Context, owner string) ([]domain.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := queryAll(ctx, r.db, "list tasks", scanTask,
		`SELECT `+taskColumns+` FROM tasks WHERE owner = ? ORDER BY id ASC`, owner)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := taskFromRow(row)
		if err != nil {
			return nil, dbError("decode task", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ListOwners returns every owner that has at least one task, sorted by name.
func (r *SQLiteRepository) ListOwners(ctx context.Context) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return queryAll(ctx, r.db, "list owners", scanString,
		`SELECT DISTINCT owner FROM tasks ORDER BY owner ASC`)
}

// SaveUser inserts the user or replaces the stored copy with the same key.
func (r *SQLiteRepository) SaveUser(ctx context.Context, user domain.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := userToRow(user)
	return exec(ctx, r.db, "save user", `
	INSERT INTO users (`+userColumns+`)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(user_key) DO UPDATE SET
		display_id = excluded.display_id,
		name = excluded.name,
		email = excluded.email,
		created_at = excluded.created_at`,
		row.Key, row.DisplayID, row.Name, row.Email, row.CreatedAt)
}

func (r *SQLiteRepository) GetUser(ctx context.Context, key uuid.UUID) (*domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row, err := queryOne(ctx, r.db, scanUser, "user", key.String(),
		`SELECT `+userColumns+` FROM users WHERE user_key = ?`, key.String())
	if err != nil {
		return nil, err
	}

	user, err := userFromRow(row)
	if err != nil {
		return nil, dbError("decode user", err)
	}
	return &user, nil
}

// ListUsers returns all users in insertion order.
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := queryAll(ctx, r.db, "list users", scanUser,
		`SELECT `+userColumns+` FROM users ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		user, err := userFromRow(row)
		if err != nil {
			return nil, dbError("decode user", err)
		}
		users = append(users, user)
	}
	return users, nil
}
