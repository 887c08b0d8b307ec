package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const recipeType = "Recipe"

// JSONLDBlocks parses every application/ld+json script on the page in
// document order. Blocks that fail to parse are skipped and counted.
func (p *Page) JSONLDBlocks() (blocks []any, skipped int) {
	p.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		var v any
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			skipped++
			return
		}
		blocks = append(blocks, v)
	})
	return blocks, skipped
}

// FindRecipe returns the first object typed Recipe across the given blocks,
// searching arrays in order and descending into @graph wrappers.
func FindRecipe(blocks []any) map[string]any {
	for _, b := range blocks {
		if r := findRecipe(b); r != nil {
			return r
		}
	}
	return nil
}

func findRecipe(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, el := range t {
			if r := findRecipe(el); r != nil {
				return r
			}
		}
	case map[string]any:
		if hasType(t, recipeType) {
			return t
		}
		if graph, ok := t["@graph"].([]any); ok {
			return findRecipe(graph)
		}
	}
	return nil
}

// hasType reports whether obj's @type, scalar or list, includes want.
func hasType(obj map[string]any, want string) bool {
	switch t := obj["@type"].(type) {
	case string:
		return t == want
	case []any:
		for _, el := range t {
			if s, ok := el.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}
