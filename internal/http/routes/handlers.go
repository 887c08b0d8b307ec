package routes

import (
	"context"

	"github.com/jmylchreest/recipe-api/internal/http/handlers"
)

// RecipeHandlers defines the recipe import and AI edit operations.
type RecipeHandlers interface {
	Scrape(ctx context.Context, input *handlers.ScrapeInput) (*handlers.ScrapeOutput, error)
	Review(ctx context.Context, input *handlers.ReviewInput) (*handlers.ReviewOutput, error)
	Apply(ctx context.Context, input *handlers.ApplyInput) (*handlers.ApplyOutput, error)
}

// Handlers aggregates all handlers for route registration.
// For the main server, pass real handler implementations.
// For OpenAPI generation, pass stub implementations.
type Handlers struct {
	HealthCheck func(ctx context.Context, input *struct{}) (*handlers.HealthCheckOutput, error)

	// Kubernetes probes (hidden from docs)
	Livez  func(ctx context.Context, input *struct{}) (*handlers.ProbeOutput, error)
	Readyz func(ctx context.Context, input *struct{}) (*handlers.ProbeOutput, error)

	Recipe RecipeHandlers
}
