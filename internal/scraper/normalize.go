package scraper

import (
	"strings"

	"github.com/jmylchreest/recipe-api/internal/models"
)

// nutritionFields are the NutritionInformation properties copied into a
// recipe. Anything else on the source object is ignored.
var nutritionFields = []string{
	"calories",
	"fatContent",
	"saturatedFatContent",
	"unsaturatedFatContent",
	"transFatContent",
	"carbohydrateContent",
	"sugarContent",
	"fiberContent",
	"proteinContent",
	"cholesterolContent",
	"sodiumContent",
	"servingSize",
}

// NormalizeImage resolves schema.org image shapes: a URL string, an array of
// images (first wins) or an ImageObject with a url.
func NormalizeImage(v any) *string {
	switch t := v.(type) {
	case string:
		return models.StringPtr(strings.TrimSpace(t))
	case []any:
		if len(t) == 0 {
			return nil
		}
		return NormalizeImage(t[0])
	case map[string]any:
		if u, ok := t["url"].(string); ok {
			return models.StringPtr(strings.TrimSpace(u))
		}
	}
	return nil
}

// NormalizeAuthor resolves a Person/Organization, a name string, or a list of
// either into a comma-joined display name.
func NormalizeAuthor(v any) *string {
	switch t := v.(type) {
	case string:
		return models.StringPtr(cleanLine(t))
	case map[string]any:
		if name, ok := t["name"].(string); ok {
			return models.StringPtr(cleanLine(name))
		}
	case []any:
		var names []string
		for _, el := range t {
			if name := NormalizeAuthor(el); name != nil {
				names = append(names, *name)
			}
		}
		return models.StringPtr(strings.Join(names, ", "))
	}
	return nil
}

// NormalizeStringOrArray joins list values with ", " and passes scalars
// through. Numbers are rendered as text, so a numeric recipeYield survives.
func NormalizeStringOrArray(v any) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		var parts []string
		for _, el := range t {
			if el == nil {
				continue
			}
			if s := cleanLine(models.Stringify(el)); s != "" {
				parts = append(parts, s)
			}
		}
		return models.StringPtr(strings.Join(parts, ", "))
	case map[string]any:
		return nil
	default:
		return models.StringPtr(cleanLine(models.Stringify(t)))
	}
}

// NormalizeNutrition copies the known nutrition fields holding string
// values. It returns nil rather than an empty map.
func NormalizeNutrition(v any) map[string]string {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string)
	for _, field := range nutritionFields {
		if s, ok := obj[field].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out[field] = s
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// stringField returns a trimmed string property or "" when absent or not a
// string.
func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}
