package scraper

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad fixture %s: %v", s, err)
	}
	return v
}

// ========================================
// Field Normalizer Tests
// ========================================

func TestNormalizeImage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"string", `"https://x.test/a.jpg"`, "https://x.test/a.jpg"},
		{"array", `["https://x.test/a.jpg", "https://x.test/b.jpg"]`, "https://x.test/a.jpg"},
		{"empty array", `[]`, "<nil>"},
		{"image object", `{"@type": "ImageObject", "url": "https://x.test/c.jpg"}`, "https://x.test/c.jpg"},
		{"array of objects", `[{"url": "https://x.test/d.jpg"}]`, "https://x.test/d.jpg"},
		{"object without url", `{"width": 10}`, "<nil>"},
		{"number", `42`, "<nil>"},
		{"null", `null`, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strOrNil(NormalizeImage(decode(t, tt.input)))
			if got != tt.expected {
				t.Errorf("NormalizeImage(%s) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeAuthor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"string", `"Jane Doe"`, "Jane Doe"},
		{"person", `{"@type": "Person", "name": "Jane Doe"}`, "Jane Doe"},
		{"mixed list", `["Jane", {"name": "John"}]`, "Jane, John"},
		{"list skips nameless", `[{"url": "x"}, {"name": "John"}]`, "John"},
		{"empty list", `[]`, "<nil>"},
		{"object without name", `{"url": "x"}`, "<nil>"},
		{"null", `null`, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strOrNil(NormalizeAuthor(decode(t, tt.input)))
			if got != tt.expected {
				t.Errorf("NormalizeAuthor(%s) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeStringOrArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"string", `"Dessert"`, "Dessert"},
		{"array", `["4", "4 servings"]`, "4, 4 servings"},
		{"number", `6`, "6"},
		{"empty string", `""`, "<nil>"},
		{"null", `null`, "<nil>"},
		{"object", `{"value": 4}`, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strOrNil(NormalizeStringOrArray(decode(t, tt.input)))
			if got != tt.expected {
				t.Errorf("NormalizeStringOrArray(%s) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeNutrition(t *testing.T) {
	got := NormalizeNutrition(decode(t, `{
		"@type": "NutritionInformation",
		"calories": "240 kcal",
		"fatContent": "9 g",
		"proteinContent": 12,
		"sodiumContent": "",
		"unknownContent": "1 g"
	}`))
	want := map[string]string{"calories": "240 kcal", "fatContent": "9 g"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeNutrition = %v, want %v", got, want)
	}

	if got := NormalizeNutrition(decode(t, `{"proteinContent": 12}`)); got != nil {
		t.Errorf("expected nil for no string fields, got %v", got)
	}
	if got := NormalizeNutrition(decode(t, `"240 kcal"`)); got != nil {
		t.Errorf("expected nil for non-object, got %v", got)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Mix &amp; stir", "Mix & stir"},
		{"<p>Whisk <b>well</b></p>", "Whisk well"},
		{"  plain  ", "plain"},
		{"Salt &#38; pepper", "Salt & pepper"},
		{"Boil water.<br>Steep tea.", "Boil water.\nSteep tea."},
		{"Boil water.<BR />Steep tea.", "Boil water.\nSteep tea."},
		{"<p>Boil water.</p><p>Steep tea.</p>", "Boil water.\nSteep tea."},
		{"<ul><li>Mix</li><li>Bake</li></ul>", "Mix\nBake"},
	}
	for _, tt := range tests {
		if got := cleanText(tt.input); got != tt.expected {
			t.Errorf("cleanText(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCleanLine_BreaksBecomeSpaces(t *testing.T) {
	if got := cleanLine("Whisk eggs<br>into flour"); got != "Whisk eggs into flour" {
		t.Errorf("cleanLine = %q, want %q", got, "Whisk eggs into flour")
	}
}
