package models

// Editable recipe fields.
const (
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldIngredients    = "ingredients"
	FieldInstructions   = "instructions"
	FieldPrepTime       = "prepTime"
	FieldCookTime       = "cookTime"
	FieldTotalTime      = "totalTime"
	FieldFreezeTime     = "freezeTime"
	FieldRecipeYield    = "recipeYield"
	FieldRecipeCategory = "recipeCategory"
	FieldRecipeCuisine  = "recipeCuisine"
	FieldNutrition      = "nutrition"
	FieldNotes          = "notes"
)

// AllowedFields is the fixed set of fields an automated patch may modify,
// in presentation order.
var AllowedFields = []string{
	FieldTitle,
	FieldDescription,
	FieldIngredients,
	FieldInstructions,
	FieldPrepTime,
	FieldCookTime,
	FieldTotalTime,
	FieldFreezeTime,
	FieldRecipeYield,
	FieldRecipeCategory,
	FieldRecipeCuisine,
	FieldNutrition,
	FieldNotes,
}

var allowedFieldSet = func() map[string]bool {
	m := make(map[string]bool, len(AllowedFields))
	for _, f := range AllowedFields {
		m[f] = true
	}
	return m
}()

// IsAllowedField reports whether field is in the patch allow-list.
func IsAllowedField(field string) bool {
	return allowedFieldSet[field]
}

// Patch maps editable field names to their new values.
type Patch map[string]any

// FieldChange pairs the stored and proposed values of one field.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Diff is the presentational before/after view of a patch.
type Diff map[string]FieldChange
