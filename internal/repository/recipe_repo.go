package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/recipe-api/internal/models"
)

const recipeColumns = `id, url, title, description, image, author,
	prep_time, cook_time, total_time, freeze_time,
	recipe_yield, recipe_category, recipe_cuisine,
	ingredients, instructions, nutrition, notes, created_at`

// fieldColumns maps editable JSON field names to their columns.
var fieldColumns = map[string]string{
	models.FieldTitle:          "title",
	models.FieldDescription:    "description",
	models.FieldIngredients:    "ingredients",
	models.FieldInstructions:   "instructions",
	models.FieldPrepTime:       "prep_time",
	models.FieldCookTime:       "cook_time",
	models.FieldTotalTime:      "total_time",
	models.FieldFreezeTime:     "freeze_time",
	models.FieldRecipeYield:    "recipe_yield",
	models.FieldRecipeCategory: "recipe_category",
	models.FieldRecipeCuisine:  "recipe_cuisine",
	models.FieldNutrition:      "nutrition",
	models.FieldNotes:          "notes",
}

// SQLiteRecipeRepository implements RecipeRepository for SQLite/libsql.
type SQLiteRecipeRepository struct {
	db *sql.DB
}

// NewSQLiteRecipeRepository creates a new SQLite recipe repository.
func NewSQLiteRecipeRepository(db *sql.DB) *SQLiteRecipeRepository {
	return &SQLiteRecipeRepository{db: db}
}

// Create inserts a new recipe.
func (r *SQLiteRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = ulid.Make().String()
	}
	recipe.CreatedAt = time.Now().UTC().Truncate(time.Second)
	recipe.Ingredients = recipe.Ingredients.Normalize()
	recipe.Instructions = recipe.Instructions.Normalize()

	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	instructions, err := json.Marshal(recipe.Instructions)
	if err != nil {
		return fmt.Errorf("failed to marshal instructions: %w", err)
	}
	nutrition, err := nutritionColumn(recipe.Nutrition)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		recipe.ID,
		recipe.URL,
		recipe.Title,
		nullStringPtr(recipe.Description),
		nullStringPtr(recipe.Image),
		nullStringPtr(recipe.Author),
		nullStringPtr(recipe.PrepTime),
		nullStringPtr(recipe.CookTime),
		nullStringPtr(recipe.TotalTime),
		nullStringPtr(recipe.FreezeTime),
		nullStringPtr(recipe.RecipeYield),
		nullStringPtr(recipe.RecipeCategory),
		nullStringPtr(recipe.RecipeCuisine),
		string(ingredients),
		string(instructions),
		nutrition,
		nullStringPtr(recipe.Notes),
		recipe.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateURL, recipe.URL)
		}
		return err
	}
	return nil
}

// GetByID retrieves a recipe by ID.
func (r *SQLiteRecipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	return r.scanRecipe(row)
}

// GetByURL retrieves a recipe by its source URL.
func (r *SQLiteRecipeRepository) GetByURL(ctx context.Context, url string) (*models.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE url = ?`, url)
	return r.scanRecipe(row)
}

// Update applies a patch with one UPDATE ... RETURNING statement.
func (r *SQLiteRecipeRepository) Update(ctx context.Context, id string, patch models.Patch) (*models.Recipe, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: empty patch", ErrInvalidPatchValue)
	}
	for field := range patch {
		if _, ok := fieldColumns[field]; !ok {
			return nil, fmt.Errorf("%w: %s is not editable", ErrInvalidPatchValue, field)
		}
	}

	sets := make([]string, 0, len(patch))
	args := make([]any, 0, len(patch)+1)
	// AllowedFields gives a stable column order.
	for _, field := range models.AllowedFields {
		value, ok := patch[field]
		if !ok {
			continue
		}
		arg, err := columnValue(field, value)
		if err != nil {
			return nil, err
		}
		sets = append(sets, fieldColumns[field]+" = ?")
		args = append(args, arg)
	}
	args = append(args, id)

	row := r.db.QueryRowContext(ctx,
		`UPDATE recipes SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING `+recipeColumns,
		args...,
	)
	recipe, err := r.scanRecipe(row)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrNotFound
	}
	return recipe, nil
}

// scanRecipe scans a single row into a Recipe.
func (r *SQLiteRecipeRepository) scanRecipe(row *sql.Row) (*models.Recipe, error) {
	var recipe models.Recipe
	var description, image, author sql.NullString
	var prepTime, cookTime, totalTime, freezeTime sql.NullString
	var recipeYield, recipeCategory, recipeCuisine sql.NullString
	var ingredients, instructions string
	var nutrition, notes sql.NullString
	var createdAt string

	err := row.Scan(
		&recipe.ID,
		&recipe.URL,
		&recipe.Title,
		&description,
		&image,
		&author,
		&prepTime,
		&cookTime,
		&totalTime,
		&freezeTime,
		&recipeYield,
		&recipeCategory,
		&recipeCuisine,
		&ingredients,
		&instructions,
		&nutrition,
		&notes,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	recipe.Description = nullString(description)
	recipe.Image = nullString(image)
	recipe.Author = nullString(author)
	recipe.PrepTime = nullString(prepTime)
	recipe.CookTime = nullString(cookTime)
	recipe.TotalTime = nullString(totalTime)
	recipe.FreezeTime = nullString(freezeTime)
	recipe.RecipeYield = nullString(recipeYield)
	recipe.RecipeCategory = nullString(recipeCategory)
	recipe.RecipeCuisine = nullString(recipeCuisine)
	recipe.Notes = nullString(notes)

	// Sections decoding also upgrades legacy flat string arrays.
	if err := json.Unmarshal([]byte(ingredients), &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to decode ingredients for %s: %w", recipe.ID, err)
	}
	if err := json.Unmarshal([]byte(instructions), &recipe.Instructions); err != nil {
		return nil, fmt.Errorf("failed to decode instructions for %s: %w", recipe.ID, err)
	}
	if nutrition.Valid && nutrition.String != "" {
		if err := json.Unmarshal([]byte(nutrition.String), &recipe.Nutrition); err != nil {
			return nil, fmt.Errorf("failed to decode nutrition for %s: %w", recipe.ID, err)
		}
	}

	recipe.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &recipe, nil
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// columnValue coerces one patch value into its column representation.
func columnValue(field string, value any) (any, error) {
	switch field {
	case models.FieldTitle:
		s, ok := value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: title must be a non-empty string", ErrInvalidPatchValue)
		}
		return strings.TrimSpace(s), nil

	case models.FieldIngredients, models.FieldInstructions:
		secs, err := sectionsValue(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPatchValue, field, err)
		}
		b, err := json.Marshal(secs)
		if err != nil {
			return nil, err
		}
		return string(b), nil

	case models.FieldNutrition:
		n, err := nutritionValue(value)
		if err != nil {
			return nil, fmt.Errorf("%w: nutrition: %v", ErrInvalidPatchValue, err)
		}
		return nutritionColumn(n)

	default:
		switch v := value.(type) {
		case nil:
			return nil, nil
		case string:
			if v = strings.TrimSpace(v); v == "" {
				return nil, nil
			}
			return v, nil
		case *string:
			if v == nil {
				return nil, nil
			}
			return *v, nil
		default:
			return nil, fmt.Errorf("%w: %s must be a string or null", ErrInvalidPatchValue, field)
		}
	}
}

func sectionsValue(value any) (models.Sections, error) {
	switch v := value.(type) {
	case models.Sections:
		return v.Normalize(), nil
	case []string:
		return models.Unsectioned(v), nil
	case []any:
		return models.SectionsFromAny(v)
	default:
		return nil, errors.New("must be an array")
	}
}

func nutritionValue(value any) (map[string]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return v, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, val := range v {
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("value for %q must be a string", k)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, errors.New("must be an object of strings")
	}
}

// nutritionColumn stores an empty map as NULL.
func nutritionColumn(n map[string]string) (any, error) {
	if len(n) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nutrition: %w", err)
	}
	return string(b), nil
}
