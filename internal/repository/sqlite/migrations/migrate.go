// Package migrations applies the embedded schema migrations.
//
// Files are named NNNNNN_name.up.sql / NNNNNN_name.down.sql. Applied
// versions are recorded in the schema_migrations table.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"lsp-fixtures/internal/logging"
)

//go:embed *.sql
var migrationsFS embed.FS

var filenamePattern = regexp.MustCompile(`^(\d+)_(\w+)\.(up|down)\.sql$`)

// Migration is one numbered schema step.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Load returns the embedded migrations in version order. A version without
// both an up and a down file is an error.
func Load() ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		version, name, direction, ok := parseFilename(entry.Name())
		if !ok {
			continue
		}

		body, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}

		m, exists := byVersion[version]
		if !exists {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if direction == "up" {
			m.Up = string(body)
		} else {
			m.Down = string(body)
		}
	}

	result := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" || m.Down == "" {
			return nil, fmt.Errorf("migration %d (%s) needs both up and down files", m.Version, m.Name)
		}
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Version < result[j].Version })
	return result, nil
}

// Run applies every migration not yet recorded, each in its own transaction.
func Run(ctx context.Context, db *sql.DB) error {
	all, applied, err := prepare(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		logging.Debugf("applying migration %d (%s)\n", m.Version, m.Name)
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.Up); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.Version, m.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// Rollback reverts the most recently applied migration. It reports the
// reverted version, or 0 when nothing is applied.
func Rollback(ctx context.Context, db *sql.DB) (int, error) {
	all, applied, err := prepare(ctx, db)
	if err != nil {
		return 0, err
	}

	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		if !applied[m.Version] {
			continue
		}
		logging.Debugf("reverting migration %d (%s)\n", m.Version, m.Name)
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.Down); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = ?`, m.Version)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("revert migration %d (%s): %w", m.Version, m.Name, err)
		}
		return m.Version, nil
	}
	return 0, nil
}

func prepare(ctx context.Context, db *sql.DB) ([]Migration, map[int]bool, error) {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return nil, nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	all, err := Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load migrations: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, nil, err
		}
		applied[version] = true
	}
	return all, applied, rows.Err()
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func parseFilename(filename string) (version int, name, direction string, ok bool) {
	m := filenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return 0, "", "", false
	}
	version, err := strconv.Atoi(m[1])
	if err != nil || version == 0 {
		return 0, "", "", false
	}
	return version, m[2], m[3], true
}
