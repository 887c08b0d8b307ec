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

// ReviewService asks a model for short free-text feedback on a recipe.
type ReviewService struct {
	repo   repository.RecipeRepository
	llm    ChatCaller
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.RecipeRepository, llmClient ChatCaller, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:   repo,
		llm:    llmClient,
		logger: logger.With("component", "review"),
	}
}

// Review returns the model's feedback for the recipe. An empty mode means review.
func (s *ReviewService) Review(ctx context.Context, recipeID, mode, provider string) (string, error) {
	if mode == "" {
		mode = string(patch.ModeReview)
	}
	m, err := patch.ParseMode(mode)
	if err != nil {
		return "", err
	}
	if provider == "" {
		provider = llm.ProviderLocal
	}

	ctx = logging.WithRecipeID(ctx, recipeID)
	r, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		return "", fmt.Errorf("failed to load recipe: %w", err)
	}
	if r == nil {
		return "", repository.ErrNotFound
	}

	opts := CallOptions(constants.ReviewSampling)
	result, err := s.llm.Call(ctx, provider, ReviewSystemPrompt(m), RecipeText(r), opts)
	if err != nil {
		return "", err
	}

	s.logger.DebugContext(ctx, "review completed",
		"mode", m,
		"provider", result.Provider,
		"output_tokens", result.OutputTokens,
	)
	return result.Content, nil
}

// ReviewSystemPrompt returns the concise-assistant prompt for mode.
func ReviewSystemPrompt(mode patch.Mode) string {
	return fmt.Sprintf(`You are a concise cooking assistant.
The user will give you a recipe.

Task mode: %s.
- review: Briefly point out unclear steps, missing times/temperatures, or safety issues.
- cleanup: Rewrite the recipe steps so they are clearer and more structured.
- suggestions: Suggest at most 3 practical improvements to flavor or technique.

Constraints:
- Reply in under %d words.
- No chit-chat or preamble.`, mode, constants.ReviewMaxWords)
}

// RecipeText renders a recipe as the plain text shown to the review model.
// Named sections become headers; step numbering runs across sections.
func RecipeText(r *models.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	writeOptional(&b, "Prep", r.PrepTime)
	writeOptional(&b, "Cook", r.CookTime)
	writeOptional(&b, "Yield", r.RecipeYield)

	b.WriteString("\nIngredients:\n")
	for _, sec := range r.Ingredients.Normalize() {
		if sec.Name != nil {
			fmt.Fprintf(&b, "%s:\n", *sec.Name)
		}
		for _, item := range sec.Items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	b.WriteString("\nInstructions:\n")
	n := 0
	for _, sec := range r.Instructions.Normalize() {
		if sec.Name != nil {
			fmt.Fprintf(&b, "%s:\n", *sec.Name)
		}
		for _, step := range sec.Items {
			n++
			fmt.Fprintf(&b, "%d. %s\n", n, step)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeOptional(b *strings.Builder, label string, v *string) {
	if v == nil || *v == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, *v)
}
