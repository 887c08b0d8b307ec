package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/recipe-api/internal/constants"
	"github.com/jmylchreest/recipe-api/internal/models"
)

// fromMicrodata builds a recipe from itemprop attributes. Machine-readable
// values come from content/src attributes, everything else from text.
func fromMicrodata(p *Page) *models.Recipe {
	doc := p.Doc

	title := firstNonEmpty(
		cleanLine(itemprop(doc, "name").Text()),
		cleanLine(doc.Find("h1").First().Text()),
		cleanLine(doc.Find("title").First().Text()),
		constants.UntitledRecipe,
	)

	imageSel := itemprop(doc, "image")
	image := firstNonEmpty(
		strings.TrimSpace(imageSel.AttrOr("src", "")),
		strings.TrimSpace(imageSel.AttrOr("content", "")),
		strings.TrimSpace(doc.Find(`meta[property="og:image"]`).First().AttrOr("content", "")),
	)

	prep := machineValue(itemprop(doc, "prepTime"))
	cook := machineValue(itemprop(doc, "cookTime"))
	total := machineValue(itemprop(doc, "totalTime"))

	freeze := ParseDuration(machineValue(itemprop(doc, "freezeTime")))
	if freeze == nil {
		freeze = ResidualTime(prep, cook, total)
	}

	return &models.Recipe{
		URL:            p.URL,
		Title:          title,
		Description:    models.StringPtr(cleanLine(itemprop(doc, "description").Text())),
		Image:          models.StringPtr(image),
		Author:         models.StringPtr(authorText(itemprop(doc, "author"))),
		PrepTime:       ParseDuration(prep),
		CookTime:       ParseDuration(cook),
		TotalTime:      ParseDuration(total),
		FreezeTime:     freeze,
		RecipeYield:    models.StringPtr(cleanLine(machineValue(itemprop(doc, "recipeYield")))),
		RecipeCategory: models.StringPtr(cleanLine(machineValue(itemprop(doc, "recipeCategory")))),
		RecipeCuisine:  models.StringPtr(cleanLine(machineValue(itemprop(doc, "recipeCuisine")))),
		Ingredients:    SectionizeIngredients(microdataIngredients(doc)),
		Instructions:   models.Unsectioned(microdataInstructions(doc)),
		Nutrition:      microdataNutrition(doc),
	}
}

func itemprop(doc *goquery.Document, name string) *goquery.Selection {
	return doc.Find(`[itemprop="` + name + `"]`).First()
}

// machineValue prefers the content attribute, then datetime, then text.
func machineValue(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if v, ok := s.Attr("content"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v, ok := s.Attr("datetime"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return norm(s.Text())
}

// authorText reads a nested Person name when present.
func authorText(s *goquery.Selection) string {
	if name := s.Find(`[itemprop="name"]`).First(); name.Length() > 0 {
		return cleanLine(machineValue(name))
	}
	return cleanLine(machineValue(s))
}

func microdataIngredients(doc *goquery.Document) []string {
	var lines []string
	doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		if line := cleanLine(s.Text()); line != "" {
			lines = append(lines, line)
		}
	})
	return lines
}

// microdataInstructions iterates list items of list containers and splits
// any other container on newlines. Containers nested in another
// recipeInstructions element are read through their ancestor only.
func microdataInstructions(doc *goquery.Document) []string {
	const sel = `[itemprop="recipeInstructions"]`
	var steps []string
	doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(sel).Length() > 0 {
			return
		}
		if s.Is("ol, ul") {
			s.Find("li").Each(func(_ int, li *goquery.Selection) {
				if step := cleanLine(li.Text()); step != "" {
					steps = append(steps, step)
				}
			})
			return
		}
		steps = append(steps, splitLines(s.Text())...)
	})
	return steps
}

func microdataNutrition(doc *goquery.Document) map[string]string {
	scope := doc.Find(`[itemprop="nutrition"]`).First()
	if scope.Length() == 0 {
		return nil
	}
	out := make(map[string]string)
	for _, field := range nutritionFields {
		if v := cleanLine(machineValue(scope.Find(`[itemprop="` + field + `"]`).First())); v != "" {
			out[field] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
