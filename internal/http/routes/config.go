// Package routes provides shared route registration for the recipe API.
// The server and the OpenAPI generator both register through Register,
// so the published document always matches what is served.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/jmylchreest/recipe-api/internal/version"
)

// NewHumaConfig creates the shared Huma configuration for the API.
func NewHumaConfig(baseURL string) huma.Config {
	cfg := huma.DefaultConfig("Recipe API", version.Get().Short())
	cfg.Info.Description = "Imports recipes from web pages and applies reviewed AI edits."

	// Responses carry the recipe document as-is; no $schema link.
	cfg.CreateHooks = nil

	if baseURL != "" {
		cfg.Servers = []*huma.Server{
			{URL: baseURL, Description: "API Server"},
		}
	}

	cfg.Tags = []*huma.Tag{
		{Name: "Recipes", Description: "Recipe import and AI-assisted editing", Extensions: map[string]any{"x-displayName": "Recipes"}},
		{Name: "Health", Description: "System health and status", Extensions: map[string]any{"x-displayName": "Health"}},
	}

	return cfg
}
