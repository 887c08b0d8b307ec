package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jmylchreest/recipe-api/internal/models"
	"github.com/jmylchreest/recipe-api/internal/repository"
	"github.com/jmylchreest/recipe-api/internal/scraper"
)

// ErrInvalidInput indicates a malformed request (bad URL, unknown mode, missing fields).
var ErrInvalidInput = errors.New("invalid input")

// RecipeScraper fetches and extracts one recipe page.
type RecipeScraper interface {
	Scrape(ctx context.Context, pageURL string) (*scraper.Result, error)
}

// SnapshotStore keeps raw fetched pages.
type SnapshotStore interface {
	IsEnabled() bool
	PutPageSnapshot(ctx context.Context, pageURL string, body []byte, contentType string) (string, error)
}

// ScrapeResult is the outcome of a scrape request.
type ScrapeResult struct {
	Recipe *models.Recipe `json:"recipe"`
	IsNew  bool           `json:"is_new"`
}

// ScrapeService imports recipes from the web, deduplicating by URL.
type ScrapeService struct {
	repo      repository.RecipeRepository
	scraper   RecipeScraper
	snapshots SnapshotStore
	logger    *slog.Logger
}

// NewScrapeService creates a new scrape service. snapshots may be nil.
func NewScrapeService(repo repository.RecipeRepository, s RecipeScraper, snapshots SnapshotStore, logger *slog.Logger) *ScrapeService {
	return &ScrapeService{
		repo:      repo,
		scraper:   s,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Scrape returns the stored recipe for a known URL without fetching;
// otherwise it fetches, extracts and persists a new one.
func (s *ScrapeService) Scrape(ctx context.Context, rawURL string) (*ScrapeResult, error) {
	pageURL, err := validatePageURL(rawURL)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByURL(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recipe: %w", err)
	}
	if existing != nil {
		s.logger.DebugContext(ctx, "recipe already imported", "url", pageURL, "recipe_id", existing.ID)
		return &ScrapeResult{Recipe: existing, IsNew: false}, nil
	}

	res, err := s.scraper.Scrape(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	s.storeSnapshot(ctx, pageURL, res.Page)

	recipe := res.Recipe
	if err := s.repo.Create(ctx, recipe); err != nil {
		// A concurrent import of the same URL won the insert.
		if errors.Is(err, repository.ErrDuplicateURL) {
			if stored, getErr := s.repo.GetByURL(ctx, pageURL); getErr == nil && stored != nil {
				return &ScrapeResult{Recipe: stored, IsNew: false}, nil
			}
		}
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.logger.InfoContext(ctx, "recipe imported",
		"url", pageURL,
		"recipe_id", recipe.ID,
		"source", res.Source,
		"grouping", res.Grouping,
		"ingredients", recipe.Ingredients.Count(),
		"instructions", recipe.Instructions.Count(),
	)

	return &ScrapeResult{Recipe: recipe, IsNew: true}, nil
}

// storeSnapshot keeps the raw page when storage is enabled. Failures are logged only.
func (s *ScrapeService) storeSnapshot(ctx context.Context, pageURL string, page *scraper.FetchResult) {
	if s.snapshots == nil || !s.snapshots.IsEnabled() || page == nil {
		return
	}
	if _, err := s.snapshots.PutPageSnapshot(ctx, pageURL, page.Body, page.ContentType); err != nil {
		s.logger.WarnContext(ctx, "failed to store page snapshot", "url", pageURL, "error", err)
	}
}

func validatePageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: url must be an absolute http(s) URL", ErrInvalidInput)
	}
	return u.String(), nil
}
