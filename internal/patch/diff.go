package patch

import "github.com/jmylchreest/recipe-api/internal/models"

// BuildDiff pairs each patched field with its stored value.
func BuildDiff(current *models.Recipe, p models.Patch) models.Diff {
	diff := make(models.Diff, len(p))
	for field, value := range p {
		diff[field] = models.FieldChange{
			Old: current.FieldValue(field),
			New: value,
		}
	}
	return diff
}
