// Package database opens the recipe store and applies its migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tursodatabase/go-libsql"

	"github.com/jmylchreest/recipe-api/internal/database/migrations"
)

// New opens a libsql database.
//   - Local files: DATABASE_URL="file:recipes.db"
//   - Embedded replica: TURSO_URL + TURSO_AUTH_TOKEN sync the local file with Turso
//   - libsql server: DATABASE_URL="http://127.0.0.1:8080" (e.g. `turso dev`)
func New(dsn string) (*sql.DB, error) {
	tursoURL := os.Getenv("TURSO_URL")
	tursoToken := os.Getenv("TURSO_AUTH_TOKEN")

	var db *sql.DB
	if tursoURL != "" && tursoToken != "" {
		connector, err := libsql.NewEmbeddedReplicaConnector(localPath(dsn), tursoURL,
			libsql.WithAuthToken(tursoToken),
			libsql.WithReadYourWrites(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Turso connector: %w", err)
		}
		db = sql.OpenDB(connector)
	} else {
		var err error
		db, err = sql.Open("libsql", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// localPath strips the file: scheme and query parameters from a DSN.
func localPath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

// Migrate runs pending migrations with the default logger.
func Migrate(db *sql.DB) error {
	return MigrateWithLogger(db, nil)
}

// MigrateWithLogger runs pending migrations.
func MigrateWithLogger(db *sql.DB, logger *slog.Logger) error {
	return migrations.Run(db, logger)
}

// GetLatestSchemaVersion returns the newest applied migration version.
func GetLatestSchemaVersion(db *sql.DB) (string, error) {
	return migrations.LatestVersion(context.Background(), db)
}

// GetMigrationCount returns the number of applied migrations.
func GetMigrationCount(db *sql.DB) (int, error) {
	return migrations.Count(context.Background(), db)
}

// GetPendingMigrations returns migrations that haven't been applied yet.
func GetPendingMigrations(db *sql.DB) ([]migrations.Migration, error) {
	return migrations.Pending(context.Background(), db)
}
