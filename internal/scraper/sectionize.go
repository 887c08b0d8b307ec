package scraper

import (
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/recipe-api/internal/constants"
	"github.com/jmylchreest/recipe-api/internal/models"
)

// IsSectionHeader reports whether a flat ingredient line looks like a group
// heading such as "For the sauce:". A line qualifies when it ends with a
// colon, is shorter than 60 characters and has no digits. Quantities almost
// always carry a digit, so real ingredient lines are rarely misread; a short
// quantity-free line ending in a colon will still be taken as a header.
func IsSectionHeader(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasSuffix(line, ":") || utf8.RuneCountInString(line) >= constants.MaxSectionHeaderLength {
		return false
	}
	if strings.TrimSpace(strings.TrimSuffix(line, ":")) == "" {
		return false
	}
	return !strings.ContainsAny(line, "0123456789")
}

// SectionizeIngredients groups a flat ingredient list on header-like lines.
// Without headers the result is one unnamed section holding every line.
func SectionizeIngredients(lines []string) models.Sections {
	var (
		out     models.Sections
		current = models.NewSection("")
		headers bool
	)
	for _, line := range lines {
		if IsSectionHeader(line) {
			headers = true
			if len(current.Items) > 0 {
				out = append(out, current)
			}
			current = models.NewSection(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")))
			continue
		}
		current.Items = append(current.Items, line)
	}
	if !headers {
		return models.Unsectioned(lines)
	}
	if len(current.Items) > 0 {
		out = append(out, current)
	}
	return out.Normalize()
}

// ingredientLines reads recipeIngredient, falling back to the older
// ingredients property. A single string is split on newlines.
func ingredientLines(obj map[string]any) []string {
	v, ok := obj["recipeIngredient"]
	if !ok || v == nil {
		v = obj["ingredients"]
	}
	switch t := v.(type) {
	case string:
		return splitLines(cleanText(t))
	case []any:
		lines := make([]string, 0, len(t))
		for _, el := range t {
			if el == nil {
				continue
			}
			if s := cleanLine(models.Stringify(el)); s != "" {
				lines = append(lines, s)
			}
		}
		return lines
	}
	return nil
}

// SectionizeInstructions converts recipeInstructions into sections. Plain
// strings and HowToStep objects become steps; each HowToSection becomes a
// named section, with steps found between sections collected into anonymous
// ones.
func SectionizeInstructions(v any) models.Sections {
	switch t := v.(type) {
	case string:
		return models.Unsectioned(splitLines(cleanText(t)))
	case map[string]any:
		return SectionizeInstructions([]any{t})
	case []any:
		return sectionizeSteps(t)
	}
	return models.Unsectioned(nil)
}

func sectionizeSteps(items []any) models.Sections {
	var (
		out      models.Sections
		loose    []string
		sections bool
	)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if ok && hasType(obj, "HowToSection") {
			sections = true
			if len(loose) > 0 {
				out = append(out, models.NewSection("", loose...))
				loose = nil
			}
			steps := stepTexts(obj["itemListElement"])
			if len(steps) > 0 {
				out = append(out, models.NewSection(cleanLine(stringField(obj, "name")), steps...))
			}
			continue
		}
		loose = append(loose, stepTexts(item)...)
	}

	if !sections {
		return models.Unsectioned(loose)
	}
	if len(loose) > 0 {
		out = append(out, models.NewSection("", loose...))
	}
	return out.Normalize()
}

// stepTexts flattens a step, a list of steps, or a nested item list into
// step strings.
func stepTexts(v any) []string {
	switch t := v.(type) {
	case string:
		if s := cleanLine(t); s != "" {
			return []string{s}
		}
	case []any:
		var out []string
		for _, el := range t {
			out = append(out, stepTexts(el)...)
		}
		return out
	case map[string]any:
		if s := cleanLine(stringField(t, "text")); s != "" {
			return []string{s}
		}
		if nested, ok := t["itemListElement"]; ok {
			return stepTexts(nested)
		}
		if s := cleanLine(stringField(t, "name")); s != "" {
			return []string{s}
		}
	}
	return nil
}
