package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lsp-fixtures/internal/api"
	"lsp-fixtures/internal/repository/sqlite"
)

func setupTestServer(t *testing.T) (http.Handler, api.API) {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "fx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	a := api.New(repo)
	return NewRouter(a, "Admin"), a
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAddAndListTasks(t *testing.T) {
	h, _ := setupTestServer(t)

	rec := do(t, h, http.MethodPost, "/tasks", `{"title":"Learn LSP","description":"hover","priority":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created taskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, 3, created.Priority)
	assert.Equal(t, "pending", created.Status)

	rec = do(t, h, http.MethodPost, "/tasks", `{"title":"Write docs"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.Priority)

	rec = do(t, h, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []taskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "Learn LSP", tasks[0].Title)
	assert.Equal(t, "Write docs", tasks[1].Title)
}

func TestCompleteTask(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "existing task", path: "/tasks/1/complete", wantStatus: http.StatusOK},
		{name: "missing task", path: "/tasks/42/complete", wantStatus: http.StatusNotFound},
		{name: "non numeric id", path: "/tasks/abc/complete", wantStatus: http.StatusBadRequest},
		{name: "zero id", path: "/tasks/0/complete", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, a := setupTestServer(t)
			_, err := a.AddTask(context.Background(), "Admin", "A")
			require.NoError(t, err)

			rec := do(t, h, http.MethodPost, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestListTasks_Filter(t *testing.T) {
	h, a := setupTestServer(t)
	ctx := context.Background()
	_, err := a.AddTask(ctx, "John", "A")
	require.NoError(t, err)
	_, err = a.AddTask(ctx, "John", "B")
	require.NoError(t, err)
	_, err = a.CompleteTask(ctx, "John", 2)
	require.NoError(t, err)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantIDs    []int
	}{
		{name: "all", query: "?owner=John", wantStatus: http.StatusOK, wantIDs: []int{1, 2}},
		{name: "pending", query: "?owner=John&filter=pending", wantStatus: http.StatusOK, wantIDs: []int{1}},
		{name: "completed", query: "?owner=John&filter=completed", wantStatus: http.StatusOK, wantIDs: []int{2}},
		{name: "other owner", query: "?owner=Admin", wantStatus: http.StatusOK, wantIDs: []int{}},
		{name: "bad filter", query: "?owner=John&filter=maybe", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/tasks"+tt.query, "")
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var tasks []taskResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
			ids := make([]int, 0, len(tasks))
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSummary(t *testing.T) {
	h, a := setupTestServer(t)
	ctx := context.Background()
	_, err := a.AddTask(ctx, "Admin", "A")
	require.NoError(t, err)
	_, err = a.CompleteTask(ctx, "Admin", 1)
	require.NoError(t, err)

	rec := do(t, h, http.MethodGet, "/tasks/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary api.TaskSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "Admin", summary.Owner)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, map[int]int{1: 1}, summary.ByPriority)
}

func TestAddTask_MalformedBody(t *testing.T) {
	h, _ := setupTestServer(t)

	rec := do(t, h, http.MethodPost, "/tasks", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Code)
}

func TestDisplayName(t *testing.T) {
	h, a := setupTestServer(t)
	user, err := a.CreateUser(context.Background(), "John Doe", "john@example.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{name: "existing user", key: user.Key.String(), wantStatus: http.StatusOK},
		{name: "unknown user", key: uuid.NewString(), wantStatus: http.StatusNotFound},
		{name: "malformed key", key: "not-a-uuid", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/users/"+tt.key+"/display-name", "")
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, user.DisplayName(), body["display_name"])
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := setupTestServer(t)
	do(t, h, http.MethodPost, "/tasks", `{"title":"counted"}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fx_tasks_added_total")
}
