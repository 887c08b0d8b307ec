package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jmylchreest/recipe-api/internal/models"
	"github.com/jmylchreest/recipe-api/internal/repository"
	"github.com/jmylchreest/recipe-api/internal/scraper"
)

// ========================================
// Test doubles
// ========================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockRecipeRepository struct {
	mu        sync.Mutex
	recipes   map[string]*models.Recipe
	byURL     map[string]string
	updates   []models.Patch
	createErr error
	nextID    int
}

func newMockRecipeRepository() *mockRecipeRepository {
	return &mockRecipeRepository{
		recipes: make(map[string]*models.Recipe),
		byURL:   make(map[string]string),
	}
}

func (m *mockRecipeRepository) put(r *models.Recipe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes[r.ID] = r
	m.byURL[r.URL] = r.ID
}

func (m *mockRecipeRepository) Create(ctx context.Context, r *models.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byURL[r.URL]; ok {
		return repository.ErrDuplicateURL
	}
	m.nextID++
	r.ID = fmt.Sprintf("recipe-%d", m.nextID)
	m.recipes[r.ID] = r
	m.byURL[r.URL] = r.ID
	return nil
}

func (m *mockRecipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recipes[id], nil
}

func (m *mockRecipeRepository) GetByURL(ctx context.Context, url string) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byURL[url]
	if !ok {
		return nil, nil
	}
	return m.recipes[id], nil
}

func (m *mockRecipeRepository) Update(ctx context.Context, id string, p models.Patch) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m.updates = append(m.updates, p)
	updated := *r
	if title, ok := p[models.FieldTitle].(string); ok {
		updated.Title = title
	}
	m.recipes[id] = &updated
	return &updated, nil
}

type chatCall struct {
	Provider string
	System   string
	User     string
	Opts     LLMCallOptions
}

type mockChatCaller struct {
	mu      sync.Mutex
	content string
	err     error
	calls   []chatCall
}

func (m *mockChatCaller) Call(ctx context.Context, provider, system, user string, opts LLMCallOptions) (*LLMCallResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, chatCall{Provider: provider, System: system, User: user, Opts: opts})
	if m.err != nil {
		return nil, m.err
	}
	return &LLMCallResult{Content: m.content, Provider: provider, Model: "test-model"}, nil
}

type mockScraper struct {
	result *scraper.Result
	err    error
	calls  int
}

func (m *mockScraper) Scrape(ctx context.Context, pageURL string) (*scraper.Result, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockSnapshotStore struct {
	enabled bool
	err     error
	keys    []string
}

func (m *mockSnapshotStore) IsEnabled() bool { return m.enabled }

func (m *mockSnapshotStore) PutPageSnapshot(ctx context.Context, pageURL string, body []byte, contentType string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	key := SnapshotKey(pageURL)
	m.keys = append(m.keys, key)
	return key, nil
}

func sampleRecipe(id string) *models.Recipe {
	return &models.Recipe{
		ID:          id,
		URL:         "https://example.com/" + id,
		Title:       "Pancakes",
		PrepTime:    models.StringPtr("10 min"),
		CookTime:    models.StringPtr("15 min"),
		RecipeYield: models.StringPtr("4"),
		Ingredients: models.Sections{
			models.NewSection("Batter", "1 cup flour", "1 egg"),
			models.NewSection("Topping", "maple syrup"),
		},
		Instructions: models.Unsectioned([]string{"Whisk.", "Fry."}),
	}
}
