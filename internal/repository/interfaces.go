// Package repository defines the recipe persistence boundary and its libsql implementation.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmylchreest/recipe-api/internal/models"
)

var (
	// ErrNotFound indicates no recipe has the requested id.
	ErrNotFound = errors.New("recipe not found")

	// ErrDuplicateURL indicates a recipe for the URL is already stored.
	ErrDuplicateURL = errors.New("recipe already exists for url")

	// ErrInvalidPatchValue indicates a patch value has the wrong shape for its column.
	ErrInvalidPatchValue = errors.New("invalid patch value")
)

// RecipeRepository defines methods for recipe data access.
type RecipeRepository interface {
	// Create stores a new recipe, assigning its ID and CreatedAt.
	Create(ctx context.Context, recipe *models.Recipe) error
	// GetByID returns (nil, nil) when the recipe does not exist.
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	// GetByURL returns (nil, nil) when no recipe was scraped from url.
	GetByURL(ctx context.Context, url string) (*models.Recipe, error)
	// Update writes the patched fields in a single statement and returns the stored record.
	Update(ctx context.Context, id string, patch models.Patch) (*models.Recipe, error)
}

// Repositories holds all repository instances.
type Repositories struct {
	Recipe RecipeRepository
}

// NewRepositories creates all repositories with the given database connection.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Recipe: NewSQLiteRecipeRepository(db),
	}
}
