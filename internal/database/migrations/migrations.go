// Package migrations applies versioned schema changes to the recipe store.
//
// Each migration lives in its own file named YYYYMMDD-HHmmss-description.go
// and registers itself from init(). Applied versions are recorded in
// schema_migrations so a migration runs at most once per database.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Migration is one versioned schema change.
type Migration struct {
	// Timestamp in YYYYMMDD-HHmmss format, used for ordering and tracking.
	Timestamp   string
	Description string
	Up          []string
}

// AppliedMigration is a row of schema_migrations.
type AppliedMigration struct {
	Timestamp   string
	Description string
	AppliedAt   time.Time
}

var (
	mu       sync.Mutex
	registry = map[string]Migration{}
)

// Register adds a migration. Registering the same timestamp twice panics,
// since two files would otherwise race for one version.
func Register(m Migration) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[m.Timestamp]; dup {
		panic(fmt.Sprintf("migrations: duplicate timestamp %s", m.Timestamp))
	}
	registry[m.Timestamp] = m
}

// All returns the registered migrations ordered by timestamp.
func All() []Migration {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Migration, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

const createTrackingTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`

// Run applies every pending migration in timestamp order.
func Run(db *sql.DB, logger *slog.Logger) error {
	return RunContext(context.Background(), db, logger)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := db.ExecContext(ctx, createTrackingTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	pending, err := Pending(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range pending {
		logger.Info("running migration", "timestamp", m.Timestamp, "description", m.Description)
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %s (%s) failed: %w", m.Timestamp, m.Description, err)
		}
	}
	if len(pending) > 0 {
		logger.Info("migrations complete", "applied", len(pending))
	}
	return nil
}

// Pending returns registered migrations not yet recorded in db.
func Pending(ctx context.Context, db *sql.DB) ([]Migration, error) {
	applied, err := Applied(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, a := range applied {
		done[a.Timestamp] = true
	}

	var pending []Migration
	for _, m := range All() {
		if !done[m.Timestamp] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// Applied lists recorded migrations, oldest first.
func Applied(ctx context.Context, db *sql.DB) ([]AppliedMigration, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AppliedMigration
	for rows.Next() {
		var a AppliedMigration
		var appliedAt string
		if err := rows.Scan(&a.Timestamp, &a.Description, &appliedAt); err != nil {
			return nil, err
		}
		a.AppliedAt, _ = time.Parse(time.RFC3339, appliedAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.Up {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if ignorable(err, stmt) {
				continue
			}
			return fmt.Errorf("failed to execute statement: %w\n%s", err, stmt)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`,
		m.Timestamp, m.Description, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

// ignorable reports errors from statements that were already applied by hand,
// such as ALTER TABLE ADD COLUMN on a database that has the column.
func ignorable(err error, stmt string) bool {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate column"):
		return true
	case strings.Contains(msg, "already exists") && strings.Contains(stmt, "CREATE INDEX"):
		return true
	}
	return false
}

// LatestVersion returns the newest applied version, or "" for a fresh database.
func LatestVersion(ctx context.Context, db *sql.DB) (string, error) {
	var version sql.NullString
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return "", err
	}
	return version.String, nil
}

// Count returns the number of applied migrations.
func Count(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
