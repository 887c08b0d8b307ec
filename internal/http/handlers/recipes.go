package handlers

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/recipe-api/internal/models"
	"github.com/jmylchreest/recipe-api/internal/service"
)

// Scraper imports a recipe by URL.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) (*service.ScrapeResult, error)
}

// Reviewer produces free-text AI feedback.
type Reviewer interface {
	Review(ctx context.Context, recipeID, mode, provider string) (string, error)
}

// PatchApplier runs the preview/confirm patch protocol.
type PatchApplier interface {
	Apply(ctx context.Context, recipeID string, req service.ApplyRequest) (*service.ApplyResult, error)
}

// RecipeHandler handles recipe import and AI edit endpoints.
type RecipeHandler struct {
	scraper  Scraper
	reviewer Reviewer
	patcher  PatchApplier
	logger   *slog.Logger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(scraper Scraper, reviewer Reviewer, patcher PatchApplier, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		scraper:  scraper,
		reviewer: reviewer,
		patcher:  patcher,
		logger:   logger,
	}
}

// ScrapeInput represents a scrape request.
type ScrapeInput struct {
	Body struct {
		URL string `json:"url" minLength:"1" doc:"Recipe page URL (http or https)"`
	}
}

// ScrapeOutput represents a scrape response.
type ScrapeOutput struct {
	Body struct {
		Recipe *models.Recipe `json:"recipe" doc:"Stored recipe"`
		IsNew  bool           `json:"is_new" doc:"False when the URL had already been imported"`
	}
}

// Scrape imports the recipe at a URL, or returns the stored copy.
func (h *RecipeHandler) Scrape(ctx context.Context, input *ScrapeInput) (*ScrapeOutput, error) {
	res, err := h.scraper.Scrape(ctx, input.Body.URL)
	if err != nil {
		return nil, h.fail(ctx, "scrape failed", err)
	}

	out := &ScrapeOutput{}
	out.Body.Recipe = res.Recipe
	out.Body.IsNew = res.IsNew
	return out, nil
}

// ReviewInput represents a review request.
type ReviewInput struct {
	ID   string `path:"id" doc:"Recipe ID"`
	Body struct {
		Mode     string `json:"mode,omitempty" doc:"review, cleanup or suggestions (default review)"`
		Provider string `json:"provider,omitempty" doc:"local or cloud (default local)"`
	}
}

// ReviewOutput represents a review response.
type ReviewOutput struct {
	Body struct {
		Result string `json:"result" doc:"Free-text feedback from the model"`
	}
}

// Review asks the model for short feedback on a stored recipe.
func (h *RecipeHandler) Review(ctx context.Context, input *ReviewInput) (*ReviewOutput, error) {
	result, err := h.reviewer.Review(ctx, input.ID, input.Body.Mode, input.Body.Provider)
	if err != nil {
		return nil, h.fail(ctx, "review failed", err)
	}

	out := &ReviewOutput{}
	out.Body.Result = result
	return out, nil
}

// ApplyInput accepts either a preview request ({aiResponse, mode, provider})
// or a confirm request ({patch, confirm: true}).
type ApplyInput struct {
	ID   string `path:"id" doc:"Recipe ID"`
	Body struct {
		AIResponse string         `json:"aiResponse,omitempty" doc:"Free-text AI feedback to turn into a patch"`
		Mode       string         `json:"mode,omitempty" doc:"review, cleanup or suggestions"`
		Provider   string         `json:"provider,omitempty" doc:"local or cloud (default local)"`
		Confirm    bool           `json:"confirm,omitempty" doc:"Write the supplied patch instead of previewing"`
		Patch      map[string]any `json:"patch,omitempty" doc:"Previously previewed patch to write"`
	}
}

// ApplyOutput is either a preview ({preview, changes, patch}) or the updated recipe.
type ApplyOutput struct {
	Body any
}

// Apply previews an AI patch or writes a confirmed one.
func (h *RecipeHandler) Apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error) {
	res, err := h.patcher.Apply(ctx, input.ID, service.ApplyRequest{
		AIResponse: input.Body.AIResponse,
		Mode:       input.Body.Mode,
		Provider:   input.Body.Provider,
		Confirm:    input.Body.Confirm,
		Patch:      input.Body.Patch,
	})
	if err != nil {
		return nil, h.fail(ctx, "apply failed", err)
	}

	if res.Preview != nil {
		return &ApplyOutput{Body: res.Preview}, nil
	}
	return &ApplyOutput{Body: res.Recipe}, nil
}

func (h *RecipeHandler) fail(ctx context.Context, msg string, err error) *APIError {
	apiErr := NewAPIError(err)
	if apiErr.Status >= 500 {
		h.logger.ErrorContext(ctx, msg, "status", apiErr.Status, "error", err)
	} else {
		h.logger.InfoContext(ctx, msg, "status", apiErr.Status, "error", err)
	}
	return apiErr
}
