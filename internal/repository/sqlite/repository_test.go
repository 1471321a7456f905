package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lsp-fixtures/internal/domain"
	"lsp-fixtures/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "fx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndListTasks(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	createdAt := time.Date(2024, 3, 1, 12, 30, 15, 123456789, time.UTC)

	first := domain.Task{ID: 1, Title: "Learn LSP", Description: "hover", Priority: 1, CreatedAt: createdAt}
	second := domain.Task{ID: 2, Title: "Write docs", Priority: 5, Completed: true, CreatedAt: createdAt.Add(time.Minute)}

	require.NoError(t, repo.SaveTask(ctx, "John", second))
	require.NoError(t, repo.SaveTask(ctx, "John", first))
	require.NoError(t, repo.SaveTask(ctx, "Admin", domain.Task{ID: 1, Title: "Other owner", CreatedAt: createdAt}))

	tasks, err := repo.ListTasks(ctx, "John")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, 1, tasks[0].ID)
	assert.Equal(t, "Learn LSP", tasks[0].Title)
	assert.Equal(t, "hover", tasks[0].Description)
	assert.False(t, tasks[0].Completed)
	assert.True(t, createdAt.Equal(tasks[0].CreatedAt))

	assert.Equal(t, 2, tasks[1].ID)
	assert.Equal(t, 5, tasks[1].Priority)
	assert.True(t, tasks[1].Completed)
}

func TestSaveTask_Upsert(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := domain.Task{ID: 1, Title: "Learn LSP", Priority: 1, CreatedAt: time.Now()}
	require.NoError(t, repo.SaveTask(ctx, "John", task))

	task.Completed = true
	require.NoError(t, repo.SaveTask(ctx, "John", task))

	tasks, err := repo.ListTasks(ctx, "John")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
}

func TestListTasks_UnknownOwner(t *testing.T) {
	repo := setupTestDB(t)

	tasks, err := repo.ListTasks(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListOwners(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	owners, err := repo.ListOwners(ctx)
	require.NoError(t, err)
	assert.Empty(t, owners)

	require.NoError(t, repo.SaveTask(ctx, "John", domain.Task{ID: 1, Title: "a", CreatedAt: time.Now()}))
	require.NoError(t, repo.SaveTask(ctx, "Admin", domain.Task{ID: 1, Title: "b", CreatedAt: time.Now()}))
	require.NoError(t, repo.SaveTask(ctx, "John", domain.Task{ID: 2, Title: "c", CreatedAt: time.Now()}))

	owners, err = repo.ListOwners(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin", "John"}, owners)
}

func TestSaveAndGetUser(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	user := domain.NewUser("John Doe", "john@example.com")
	require.NoError(t, repo.SaveUser(ctx, user))

	stored, err := repo.GetUser(ctx, user.Key)
	require.NoError(t, err)
	assert.Equal(t, user.Key, stored.Key)
	assert.Equal(t, user.ID, stored.ID)
	assert.Equal(t, user.Name, stored.Name)
	assert.Equal(t, user.Email, stored.Email)
	assert.True(t, user.CreatedAt.Equal(stored.CreatedAt))
}

func TestGetUser_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestListUsers_InsertionOrder(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := domain.NewUser("first", "first@example.com")
	second := domain.NewUser("second", "second@example.com")
	second.ID = first.ID // display ids may collide

	require.NoError(t, repo.SaveUser(ctx, first))
	require.NoError(t, repo.SaveUser(ctx, second))

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "first", users[0].Name)
	assert.Equal(t, "second", users[1].Name)
}

func TestRepository_CanceledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListTasks(ctx, "John")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout))
}

func TestNewWithOptions_InMemory(t *testing.T) {
	repo, err := NewWithOptions(":memory:", Options{QueryTimeout: time.Second})
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.SaveTask(ctx, "Admin", domain.Task{ID: 1, Title: "A", CreatedAt: time.Now()}))

	tasks, err := repo.ListTasks(ctx, "Admin")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
