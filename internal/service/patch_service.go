package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmylchreest/recipe-api/internal/constants"
	"github.com/jmylchreest/recipe-api/internal/llm"
	"github.com/jmylchreest/recipe-api/internal/logging"
	"github.com/jmylchreest/recipe-api/internal/models"
	"github.com/jmylchreest/recipe-api/internal/patch"
	"github.com/jmylchreest/recipe-api/internal/repository"
)

// ApplyRequest selects the PREVIEW path (AIResponse set, Confirm false) or
// the CONFIRM path (Patch set, Confirm true).
type ApplyRequest struct {
	AIResponse string
	Mode       string
	Provider   string
	Confirm    bool
	Patch      map[string]any
}

// ApplyResult carries exactly one of Preview or Recipe.
type ApplyResult struct {
	Preview *patch.Preview
	Recipe  *models.Recipe
}

// PatchService turns free-text AI feedback into validated recipe patches.
// It never writes in preview; confirm performs a single repository update.
type PatchService struct {
	repo   repository.RecipeRepository
	llm    ChatCaller
	logger *slog.Logger
}

// NewPatchService creates a new patch service.
func NewPatchService(repo repository.RecipeRepository, llmClient ChatCaller, logger *slog.Logger) *PatchService {
	return &PatchService{
		repo:   repo,
		llm:    llmClient,
		logger: logger.With("component", "patch"),
	}
}

// Apply dispatches on the request shape.
func (s *PatchService) Apply(ctx context.Context, recipeID string, req ApplyRequest) (*ApplyResult, error) {
	if req.Confirm {
		if req.Patch == nil {
			return nil, fmt.Errorf("%w: patch is required when confirm is true", ErrInvalidInput)
		}
		updated, err := s.Confirm(ctx, recipeID, req.Patch)
		if err != nil {
			return nil, err
		}
		return &ApplyResult{Recipe: updated}, nil
	}

	if strings.TrimSpace(req.AIResponse) == "" {
		return nil, fmt.Errorf("%w: aiResponse is required", ErrInvalidInput)
	}
	mode, err := patch.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	provider := req.Provider
	if provider == "" {
		provider = llm.ProviderLocal
	}

	preview, err := s.Preview(ctx, recipeID, req.AIResponse, mode, provider)
	if err != nil {
		return nil, err
	}
	return &ApplyResult{Preview: preview}, nil
}

// Preview asks the model to turn aiResponse into a JSON patch and returns
// the validated patch with its diff. Nothing is persisted.
func (s *PatchService) Preview(ctx context.Context, recipeID, aiResponse string, mode patch.Mode, provider string) (*patch.Preview, error) {
	ctx = logging.WithRecipeID(ctx, recipeID)
	current, err := s.load(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	system, err := patch.SystemPrompt(mode)
	if err != nil {
		return nil, err
	}
	user, err := patch.UserPrompt(current, mode, aiResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to build patch prompt: %w", err)
	}

	opts := CallOptions(constants.PatchSampling)
	opts.JSONMode = true
	opts.NoThink = true

	result, err := s.llm.Call(ctx, provider, system, user, opts)
	if err != nil {
		return nil, err
	}

	preview, err := patch.Evaluate(current, result.Content)
	if err != nil {
		s.logger.WarnContext(ctx, "patch rejected",
			"mode", mode,
			"provider", provider,
			"model", result.Model,
			"error", err,
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "patch previewed",
		"mode", mode,
		"provider", provider,
		"fields", len(preview.Patch),
	)
	return preview, nil
}

// Confirm re-applies the allow-list to a client-supplied patch and writes it.
func (s *PatchService) Confirm(ctx context.Context, recipeID string, raw map[string]any) (*models.Recipe, error) {
	ctx = logging.WithRecipeID(ctx, recipeID)
	filtered, err := patch.FilterConfirmed(raw)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, recipeID, filtered)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "patch applied", "fields", len(filtered))
	return updated, nil
}

func (s *PatchService) load(ctx context.Context, recipeID string) (*models.Recipe, error) {
	r, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if r == nil {
		return nil, repository.ErrNotFound
	}
	return r, nil
}
