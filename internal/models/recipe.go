package models

import "time"

// Recipe is the canonical, storage-ready recipe record.
type Recipe struct {
	ID             string            `json:"id,omitempty"`
	URL            string            `json:"url"`
	Title          string            `json:"title"`
	Description    *string           `json:"description"`
	Image          *string           `json:"image"`
	Author         *string           `json:"author"`
	PrepTime       *string           `json:"prepTime"`
	CookTime       *string           `json:"cookTime"`
	TotalTime      *string           `json:"totalTime"`
	FreezeTime     *string           `json:"freezeTime"`
	RecipeYield    *string           `json:"recipeYield"`
	RecipeCategory *string           `json:"recipeCategory"`
	RecipeCuisine  *string           `json:"recipeCuisine"`
	Ingredients    Sections          `json:"ingredients"`
	Instructions   Sections          `json:"instructions"`
	Nutrition      map[string]string `json:"nutrition"`
	Notes          *string           `json:"notes"`
	CreatedAt      time.Time         `json:"createdAt,omitzero"`
}

// EditableView returns the editable fields keyed by their JSON names. It is
// the reference document handed to the model and the "old" side of a diff.
func (r *Recipe) EditableView() map[string]any {
	view := make(map[string]any, len(AllowedFields))
	for _, f := range AllowedFields {
		view[f] = r.FieldValue(f)
	}
	return view
}

// FieldValue returns the current value of an editable field, with absent
// optional values reported as nil.
func (r *Recipe) FieldValue(field string) any {
	switch field {
	case FieldTitle:
		return r.Title
	case FieldDescription:
		return derefOrNil(r.Description)
	case FieldIngredients:
		return r.Ingredients.Normalize()
	case FieldInstructions:
		return r.Instructions.Normalize()
	case FieldPrepTime:
		return derefOrNil(r.PrepTime)
	case FieldCookTime:
		return derefOrNil(r.CookTime)
	case FieldTotalTime:
		return derefOrNil(r.TotalTime)
	case FieldFreezeTime:
		return derefOrNil(r.FreezeTime)
	case FieldRecipeYield:
		return derefOrNil(r.RecipeYield)
	case FieldRecipeCategory:
		return derefOrNil(r.RecipeCategory)
	case FieldRecipeCuisine:
		return derefOrNil(r.RecipeCuisine)
	case FieldNutrition:
		if r.Nutrition == nil {
			return nil
		}
		return r.Nutrition
	case FieldNotes:
		return derefOrNil(r.Notes)
	}
	return nil
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
