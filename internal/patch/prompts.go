package patch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmylchreest/recipe-api/internal/models"
)

// Mode selects how free-text AI advice is turned into a patch.
type Mode string

const (
	ModeReview      Mode = "review"
	ModeCleanup     Mode = "cleanup"
	ModeSuggestions Mode = "suggestions"
)

// Modes lists the supported edit modes.
var Modes = []Mode{ModeReview, ModeCleanup, ModeSuggestions}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

const sharedRules = `Your job: Return ONLY a JSON object containing the fields that should be changed.
- Only include fields that need updating based on the AI response.
- "ingredients" must be an array of section objects: [{ "name": string|null, "items": string[] }].
- "instructions" must be an array of section objects: [{ "name": string|null, "items": string[] }].
- Use null for section name when there is no section grouping.
- "nutrition" must be an object with string keys and string values.
- All other fields are strings.
- The "instructions" sections MUST hold >= the same total number of items as the original. Do NOT merge or combine steps.
- The "ingredients" sections MUST hold >= the same total number of items as the original. Do NOT remove ingredients.
- Each instruction step must describe ONE concise action. Do NOT combine multiple actions into one step.
- Preserve all original information. Do NOT summarize, condense, or remove helpful details.
- Do NOT include fields that are unchanged.
- Do NOT wrap in markdown fences.
- Return ONLY valid JSON, nothing else.`

var systemPrompts = map[Mode]string{
	ModeReview: `You are a recipe data editor.
The user provides a recipe as JSON and a list of identified issues.
Apply ONLY the specific fixes for the listed issues. Do NOT change anything that is not mentioned in the issues.

` + sharedRules + `

Additional rules for review mode:
- If an issue mentions a missing time or temperature, add it to the relevant step text.
- If an issue mentions an ambiguous quantity, make it specific only if the correct value can be inferred.
- Do NOT rewrite steps that have no issues. Only edit the specific text that addresses each issue.`,

	ModeCleanup: `You are a recipe data editor.
The user provides a recipe as JSON and a reformatted version of its ingredients and instructions.
Replace the ingredients and instructions with the reformatted versions.

` + sharedRules + `

Additional rules for cleanup mode:
- Only return "ingredients" and "instructions" keys. Do NOT change other fields.
- Keep the existing section names unless the reformatted version renames them.
- Copy the reformatted content faithfully. Do NOT further edit, summarize, or embellish.`,

	ModeSuggestions: `You are a recipe data editor.
The user provides a recipe as JSON and a few improvement suggestions.
Integrate each suggestion into the recipe data with minimal changes.

` + sharedRules + `

Additional rules for suggestions mode:
- Add new ingredients at the END of the relevant ingredient section.
- Add new instruction steps at the logical position, or at the END if position is unclear.
- You may modify the text of existing steps to incorporate a suggestion, but do NOT remove or merge steps.
- Keep modifications minimal and change only what the suggestion requires.`,
}

// SystemPrompt returns the patch system prompt for a mode.
func SystemPrompt(mode Mode) (string, error) {
	p, ok := systemPrompts[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return p, nil
}

// referenceDocument is the editable view of a recipe in presentation order.
type referenceDocument struct {
	Title          string            `json:"title"`
	Description    *string           `json:"description"`
	Ingredients    models.Sections   `json:"ingredients"`
	Instructions   models.Sections   `json:"instructions"`
	PrepTime       *string           `json:"prepTime"`
	CookTime       *string           `json:"cookTime"`
	TotalTime      *string           `json:"totalTime"`
	FreezeTime     *string           `json:"freezeTime"`
	RecipeYield    *string           `json:"recipeYield"`
	RecipeCategory *string           `json:"recipeCategory"`
	RecipeCuisine  *string           `json:"recipeCuisine"`
	Nutrition      map[string]string `json:"nutrition"`
	Notes          *string           `json:"notes"`
}

// ReferenceDocument serializes the editable fields of r, with ingredients and
// instructions in section form, as indented JSON.
func ReferenceDocument(r *models.Recipe) (string, error) {
	doc := referenceDocument{
		Title:          r.Title,
		Description:    r.Description,
		Ingredients:    r.Ingredients.Normalize(),
		Instructions:   r.Instructions.Normalize(),
		PrepTime:       r.PrepTime,
		CookTime:       r.CookTime,
		TotalTime:      r.TotalTime,
		FreezeTime:     r.FreezeTime,
		RecipeYield:    r.RecipeYield,
		RecipeCategory: r.RecipeCategory,
		RecipeCuisine:  r.RecipeCuisine,
		Nutrition:      r.Nutrition,
		Notes:          r.Notes,
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize recipe: %w", err)
	}
	return string(b), nil
}

// UserPrompt builds the user message pairing the current recipe with the
// free-text AI response, restating the minimum item counts.
func UserPrompt(r *models.Recipe, mode Mode, aiResponse string) (string, error) {
	doc, err := ReferenceDocument(r)
	if err != nil {
		return "", err
	}
	ingredients := r.Ingredients.Normalize().Count()
	instructions := r.Instructions.Normalize().Count()

	var b strings.Builder
	fmt.Fprintf(&b, "Current recipe (%d ingredients, %d instruction steps):\n%s\n\n", ingredients, instructions, doc)
	fmt.Fprintf(&b, "AI %s response:\n%s\n\n", mode, strings.TrimSpace(aiResponse))
	fmt.Fprintf(&b, "IMPORTANT: Your output MUST have >= %d ingredients and >= %d instruction steps. Each step must be a single concise action.",
		ingredients, instructions)
	return b.String(), nil
}
