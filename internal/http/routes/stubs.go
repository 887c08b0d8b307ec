package routes

import (
	"context"

	"github.com/jmylchreest/recipe-api/internal/http/handlers"
)

// StubHandlers returns handlers that do nothing. They are only used for
// OpenAPI generation, where Huma reads types from the function signatures.
func StubHandlers() *Handlers {
	return &Handlers{
		HealthCheck: stubHealthCheck,
		Livez:       stubProbe,
		Readyz:      stubProbe,
		Recipe:      &stubRecipeHandlers{},
	}
}

func stubHealthCheck(_ context.Context, _ *struct{}) (*handlers.HealthCheckOutput, error) {
	return nil, nil
}

func stubProbe(_ context.Context, _ *struct{}) (*handlers.ProbeOutput, error) {
	return nil, nil
}

type stubRecipeHandlers struct{}

func (s *stubRecipeHandlers) Scrape(_ context.Context, _ *handlers.ScrapeInput) (*handlers.ScrapeOutput, error) {
	return nil, nil
}

func (s *stubRecipeHandlers) Review(_ context.Context, _ *handlers.ReviewInput) (*handlers.ReviewOutput, error) {
	return nil, nil
}

func (s *stubRecipeHandlers) Apply(_ context.Context, _ *handlers.ApplyInput) (*handlers.ApplyOutput, error) {
	return nil, nil
}
