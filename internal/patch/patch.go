// Package patch turns free-text AI advice about a recipe into a validated,
// whitelisted field patch.
//
// Every stage here is pure: the caller supplies the stored recipe and the
// model reply, and receives either a preview (diff plus patch) or an error
// naming the violated rule. Persisting a patch is the caller's concern.
package patch

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/recipe-api/internal/models"
)

var (
	// ErrNoApplicableChanges indicates the model reply held no allow-listed fields.
	ErrNoApplicableChanges = errors.New("no applicable changes found in AI response")

	// ErrNoChangesToApply indicates a confirmed patch held no allow-listed fields.
	ErrNoChangesToApply = errors.New("no changes to apply")

	// ErrInvalidMode indicates an unknown edit mode.
	ErrInvalidMode = errors.New("invalid edit mode")
)

// ValidationError is a structural rejection of a proposed patch.
type ValidationError struct {
	Field  string
	Reason string
	Before int // item count in the stored recipe, when relevant
	After  int // item count in the proposed patch, when relevant
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Preview is the unpersisted result of the preview path.
type Preview struct {
	Preview bool         `json:"preview"`
	Changes models.Diff  `json:"changes"`
	Patch   models.Patch `json:"patch"`
}

// Evaluate runs the preview stages on a raw model reply: sanitize, whitelist,
// validate and diff against current.
func Evaluate(current *models.Recipe, reply string) (*Preview, error) {
	raw, err := Sanitize(reply)
	if err != nil {
		return nil, err
	}

	filtered := Whitelist(raw)
	if len(filtered) == 0 {
		return nil, ErrNoApplicableChanges
	}

	validated, err := Validate(current, filtered)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Preview: true,
		Changes: BuildDiff(current, validated),
		Patch:   validated,
	}, nil
}

// FilterConfirmed re-applies the allow-list to a client-supplied patch.
// No structural validation is repeated here; value shapes are enforced when
// the patch is written.
func FilterConfirmed(p map[string]any) (models.Patch, error) {
	filtered := Whitelist(p)
	if len(filtered) == 0 {
		return nil, ErrNoChangesToApply
	}
	return filtered, nil
}

func rejectf(field string, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
