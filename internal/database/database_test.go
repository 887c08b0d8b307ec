package database

import (
	"database/sql"
	"testing"

	_ "github.com/tursodatabase/go-libsql"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("libsql", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLocalPath(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"file:recipes.db?_journal=WAL&_timeout=5000", "recipes.db"},
		{"file:/data/recipes.db", "/data/recipes.db"},
		{"recipes.db", "recipes.db"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			if got := localPath(tt.dsn); got != tt.want {
				t.Errorf("localPath(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	db := openMemory(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	count, err := GetMigrationCount(db)
	if err != nil {
		t.Fatalf("GetMigrationCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("GetMigrationCount() = %d, want 2", count)
	}

	version, err := GetLatestSchemaVersion(db)
	if err != nil {
		t.Fatalf("GetLatestSchemaVersion() error = %v", err)
	}
	if version != "20260315-090000" {
		t.Errorf("GetLatestSchemaVersion() = %q, want %q", version, "20260315-090000")
	}

	pending, err := GetPendingMigrations(db)
	if err != nil {
		t.Fatalf("GetPendingMigrations() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("GetPendingMigrations() = %d, want 0", len(pending))
	}

	// Re-running is a no-op.
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
	if count, _ := GetMigrationCount(db); count != 2 {
		t.Errorf("GetMigrationCount() after rerun = %d, want 2", count)
	}

	// Columns from the follow-up migration exist.
	if _, err := db.Exec(`SELECT freeze_time, nutrition FROM recipes`); err != nil {
		t.Errorf("recipes missing follow-up columns: %v", err)
	}
}

func TestMigrate_ColumnsAddedByHand(t *testing.T) {
	db := openMemory(t)

	// A database that predates migration tracking but already has the columns.
	stmts := []string{
		`CREATE TABLE recipes (id TEXT PRIMARY KEY, url TEXT NOT NULL UNIQUE, title TEXT NOT NULL,
			description TEXT, image TEXT, author TEXT, prep_time TEXT, cook_time TEXT, total_time TEXT,
			recipe_yield TEXT, recipe_category TEXT, recipe_cuisine TEXT,
			ingredients TEXT NOT NULL DEFAULT '[]', instructions TEXT NOT NULL DEFAULT '[]',
			notes TEXT, created_at TEXT NOT NULL, freeze_time TEXT, nutrition TEXT)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
}
