package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lsp-fixtures/internal/errors"
)

func TestDBError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType errors.ErrorType
	}{
		{name: "driver failure", err: stderrors.New("database connection failed"), wantType: errors.ErrorTypeDatabase},
		{name: "deadline", err: fmt.Errorf("exec: %w", context.DeadlineExceeded), wantType: errors.ErrorTypeTimeout},
		{name: "canceled", err: context.Canceled, wantType: errors.ErrorTypeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := dbError("save task", tt.err)
			assert.True(t, errors.IsErrorType(result, tt.wantType))
			assert.Contains(t, result.Error(), "save task")
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestNotFound(t *testing.T) {
	tests := []struct {
		name           string
		inputErr       error
		expectNotFound bool
	}{
		{name: "ErrNoRows becomes not found", inputErr: sql.ErrNoRows, expectNotFound: true},
		{name: "wrapped ErrNoRows becomes not found", inputErr: fmt.Errorf("scan: %w", sql.ErrNoRows), expectNotFound: true},
		{name: "other errors pass through", inputErr: stderrors.New("some other error"), expectNotFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := notFound(tt.inputErr, "user", "123")
			if tt.expectNotFound {
				assert.True(t, errors.IsErrorType(result, errors.ErrorTypeNotFound))
				assert.Contains(t, result.Error(), "user not found: 123")
			} else {
				assert.Equal(t, tt.inputErr, result)
			}
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	owners, err := queryAll(ctx, repo.db, "list owners", scanString, `SELECT DISTINCT owner FROM tasks`)
	require.NoError(t, err)
	assert.NotNil(t, owners)
	assert.Empty(t, owners)

	_, err = queryOne(ctx, repo.db, scanUser, "user", "missing",
		`SELECT `+userColumns+` FROM users WHERE user_key = ?`, "missing")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = exec(ctx, repo.db, "bad statement", `INSERT INTO nowhere VALUES (1)`)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
}

func TestFormatAndParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
	}{
		{name: "utc", input: time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)},
		{name: "nanoseconds survive", input: time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC)},
		{name: "fixed zone", input: time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseTimeFromDB(FormatTimeForDB(tt.input))
			assert.NoError(t, err)
			assert.True(t, tt.input.Equal(parsed))
		})
	}

	_, err := ParseTimeFromDB("2024-06-15 14:30")
	assert.Error(t, err)
}
