// Package scraper extracts canonical recipes from recipe web pages.
//
// Extraction prefers schema.org JSON-LD and falls back to itemprop
// microdata. When ingredients come out as one anonymous list, known
// recipe-plugin markup is probed for ingredient groups.
package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/recipe-api/internal/constants"
	"github.com/jmylchreest/recipe-api/internal/models"
)

// Source identifies the structured data a recipe was read from.
type Source string

const (
	SourceJSONLD    Source = "json-ld"
	SourceMicrodata Source = "microdata"
)

// Extraction is the outcome of extracting one page.
type Extraction struct {
	Recipe *models.Recipe
	Source Source
	// Grouping names the markup strategy that supplied ingredient groups,
	// if any.
	Grouping string
	// SkippedBlocks counts JSON-LD scripts that failed to parse.
	SkippedBlocks int
}

// Extract builds a canonical recipe from a parsed page. It always returns a
// recipe; pages without usable structured data yield a best-effort record.
func Extract(p *Page) *Extraction {
	blocks, skipped := p.JSONLDBlocks()
	ex := &Extraction{SkippedBlocks: skipped}

	if obj := FindRecipe(blocks); obj != nil {
		ex.Recipe = fromJSONLD(obj, p.URL)
		ex.Source = SourceJSONLD
	} else {
		ex.Recipe = fromMicrodata(p)
		ex.Source = SourceMicrodata
	}

	if ex.Recipe.Ingredients.IsSingleUnnamed() {
		if name, groups := GroupIngredients(p, ex.Recipe.Ingredients.Count()); groups != nil {
			ex.Recipe.Ingredients = groups
			ex.Grouping = name
		}
	}
	return ex
}

func fromJSONLD(obj map[string]any, pageURL string) *models.Recipe {
	prep := stringField(obj, "prepTime")
	cook := stringField(obj, "cookTime")
	total := stringField(obj, "totalTime")

	title := cleanLine(stringField(obj, "name"))
	if title == "" {
		title = constants.UntitledRecipe
	}

	return &models.Recipe{
		URL:            pageURL,
		Title:          title,
		Description:    models.StringPtr(cleanLine(stringField(obj, "description"))),
		Image:          NormalizeImage(obj["image"]),
		Author:         NormalizeAuthor(obj["author"]),
		PrepTime:       ParseDuration(prep),
		CookTime:       ParseDuration(cook),
		TotalTime:      ParseDuration(total),
		FreezeTime:     ResidualTime(prep, cook, total),
		RecipeYield:    NormalizeStringOrArray(obj["recipeYield"]),
		RecipeCategory: NormalizeStringOrArray(obj["recipeCategory"]),
		RecipeCuisine:  NormalizeStringOrArray(obj["recipeCuisine"]),
		Ingredients:    SectionizeIngredients(ingredientLines(obj)),
		Instructions:   SectionizeInstructions(obj["recipeInstructions"]),
		Nutrition:      NormalizeNutrition(obj["nutrition"]),
	}
}

// Scraper fetches pages and extracts recipes from them.
type Scraper struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// New creates a scraper.
func New(fetcher Fetcher, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{fetcher: fetcher, logger: logger}
}

// Result is a scraped recipe along with the page it came from.
type Result struct {
	*Extraction
	Page *FetchResult
}

// Scrape fetches pageURL and extracts its recipe. Fetch failures are
// returned as *FetchError.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*Result, error) {
	fetched, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	ex, err := s.ExtractBody(pageURL, fetched.Body, fetched.ContentType)
	if err != nil {
		return nil, err
	}
	return &Result{Extraction: ex, Page: fetched}, nil
}

// ExtractBody parses an HTML body and extracts its recipe.
func (s *Scraper) ExtractBody(pageURL string, body []byte, contentType string) (*Extraction, error) {
	page, err := ParsePage(pageURL, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	ex := Extract(page)
	if ex.SkippedBlocks > 0 {
		s.logger.Warn("skipped malformed JSON-LD blocks", "url", pageURL, "count", ex.SkippedBlocks)
	}
	s.logger.Debug("recipe extracted",
		"url", pageURL,
		"source", ex.Source,
		"grouping", ex.Grouping,
		"ingredients", ex.Recipe.Ingredients.Count(),
		"steps", ex.Recipe.Instructions.Count(),
	)
	return ex, nil
}
