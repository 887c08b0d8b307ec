package patch

import (
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/recipe-api/internal/constants"
	"github.com/jmylchreest/recipe-api/internal/models"
)

// Validate enforces the structural rules on a whitelisted patch and returns
// the coerced values. Ingredient and instruction totals may never shrink,
// and no instruction step may exceed constants.MaxStepLength runes.
// Fields are checked in models.AllowedFields order, so the first rejection
// is stable; keys outside the allow-list are dropped.
func Validate(current *models.Recipe, p models.Patch) (models.Patch, error) {
	out := make(models.Patch, len(p))

	for _, field := range models.AllowedFields {
		value, ok := p[field]
		if !ok {
			continue
		}
		switch field {
		case models.FieldInstructions:
			secs, err := validateSections(field, value, current.Instructions.Normalize().Count(), "steps",
				"(steps were likely merged or removed)")
			if err != nil {
				return nil, err
			}
			for _, step := range secs.Flatten() {
				if utf8.RuneCountInString(step) > constants.MaxStepLength {
					return nil, rejectf(field,
						"Rejected: An instruction step exceeds %d characters, which suggests multiple steps were merged into one. Please try again.",
						constants.MaxStepLength)
				}
			}
			out[field] = secs

		case models.FieldIngredients:
			secs, err := validateSections(field, value, current.Ingredients.Normalize().Count(), "items",
				"(ingredients were likely removed)")
			if err != nil {
				return nil, err
			}
			out[field] = secs

		case models.FieldNutrition:
			n, err := coerceNutrition(value)
			if err != nil {
				return nil, err
			}
			out[field] = n

		case models.FieldTitle:
			s, ok := value.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, rejectf(field, "Rejected: title must be a non-empty string.")
			}
			out[field] = strings.TrimSpace(s)

		default:
			s, err := coerceOptionalString(field, value)
			if err != nil {
				return nil, err
			}
			out[field] = s
		}
	}

	return out, nil
}

// validateSections accepts section arrays or flat legacy arrays, trims every
// item and drops empty ones, then checks the total against the stored count.
func validateSections(field string, value any, before int, unit, hint string) (models.Sections, error) {
	raw, ok := value.([]any)
	if !ok {
		return nil, rejectf(field, "Rejected: %s must be an array.", field)
	}

	secs, err := models.SectionsFromAny(raw)
	if err != nil {
		return nil, rejectf(field, "Rejected: %s sections must contain an items array.", field)
	}

	cleaned := make(models.Sections, 0, len(secs))
	for _, sec := range secs {
		items := make([]string, 0, len(sec.Items))
		for _, it := range sec.Items {
			if it = strings.TrimSpace(it); it != "" {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		cleaned = append(cleaned, models.Section{Name: sec.Name, Items: items})
	}
	cleaned = cleaned.Normalize()

	if after := cleaned.Count(); after < before {
		ve := rejectf(field, "Rejected: AI reduced %s from %d to %d %s %s. Please try again.",
			field, before, after, unit, hint)
		ve.Before, ve.After = before, after
		return nil, ve
	}
	return cleaned, nil
}

// coerceOptionalString returns a trimmed string, or nil to clear the field.
func coerceOptionalString(field string, value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		if v = strings.TrimSpace(v); v == "" {
			return nil, nil
		}
		return v, nil
	case float64, bool:
		return models.Stringify(v), nil
	default:
		return nil, rejectf(field, "Rejected: %s must be a string.", field)
	}
}

func coerceNutrition(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, rejectf(models.FieldNutrition, "Rejected: nutrition must be an object.")
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		switch v.(type) {
		case nil:
			continue
		case string, float64:
			if s := strings.TrimSpace(models.Stringify(v)); s != "" {
				out[k] = s
			}
		default:
			return nil, rejectf(models.FieldNutrition, "Rejected: nutrition value %q must be a string.", k)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
