package repository

import (
	"database/sql"
	"testing"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/jmylchreest/recipe-api/internal/database/migrations"
)

// setupTestDB creates an in-memory SQLite database for testing.
// It runs migrations and returns a database connection that will be cleaned up
// when the test completes.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// Every new connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := migrations.Run(db, nil); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// setupTestRepos creates all repositories using a test database.
func setupTestRepos(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(setupTestDB(t))
}

// InsertLegacyRecipe inserts a recipe whose ingredients and instructions are
// stored as flat string arrays, as older rows are.
func InsertLegacyRecipe(t *testing.T, db *sql.DB, id, url, ingredients, instructions string) {
	t.Helper()
	query := `
		INSERT INTO recipes (id, url, title, ingredients, instructions, created_at)
		VALUES (?, ?, 'Legacy', ?, ?, '2026-01-02T03:04:05Z')
	`
	if _, err := db.Exec(query, id, url, ingredients, instructions); err != nil {
		t.Fatalf("failed to insert legacy recipe: %v", err)
	}
}
