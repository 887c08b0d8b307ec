package patch

import "github.com/jmylchreest/recipe-api/internal/models"

// Whitelist keeps only allow-listed fields. Explicit nulls are kept since
// they clear optional fields.
func Whitelist(raw map[string]any) models.Patch {
	out := make(models.Patch, len(raw))
	for key, value := range raw {
		if models.IsAllowedField(key) {
			out[key] = value
		}
	}
	return out
}
