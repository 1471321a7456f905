package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"lsp-fixtures/internal/errors"
)

// dbError maps a driver failure during op onto an AppError. Context expiry
// becomes a timeout error.
func dbError(op string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.FromContext(err, op)
	}
	return errors.NewDatabaseError(op, err)
}

// notFound turns sql.ErrNoRows into a not found error for resource id.
func notFound(err error, resource, id string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(resource, id)
	}
	return err
}

func exec(ctx context.Context, db *sql.DB, op, query string, args ...any) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return dbError(op, err)
	}
	return nil
}

// queryOne scans the single row the query returns.
func queryOne[T any](ctx context.Context, db *sql.DB, scan func(Scanner) (T, error), resource, id, query string, args ...any) (T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return v, notFound(err, resource, id)
		}
		return v, dbError("get "+resource, err)
	}
	return v, nil
}

// queryAll scans every row the query returns. No rows yields an empty,
// non-nil slice.
func queryAll[T any](ctx context.Context, db *sql.DB, op string, scan func(Scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(op, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, dbError(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(op, err)
	}
	return out, nil
}
