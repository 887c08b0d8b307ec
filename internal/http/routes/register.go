package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jmylchreest/recipe-api/internal/constants"
	"github.com/jmylchreest/recipe-api/internal/http/mw"
)

// Register registers all API routes with the given Huma API instance.
func Register(api huma.API, h *Handlers) {
	mw.Get(api, "/api/v1/health", h.HealthCheck,
		mw.WithTags("Health"),
		mw.WithSummary("Health check"),
		mw.WithOperationID("healthCheck"))

	// Kubernetes probes (hidden from docs)
	mw.HiddenGet(api, "/healthz", h.Livez)
	mw.HiddenGet(api, "/readyz", h.Readyz)

	mw.Post(api, "/api/v1/recipes/scrape", h.Recipe.Scrape,
		mw.WithTags("Recipes"),
		mw.WithSummary("Import a recipe from a URL"),
		mw.WithDescription("Fetches the page and extracts its recipe from JSON-LD or microdata. A URL that was already imported returns the stored recipe with is_new=false."),
		mw.WithOperationID("scrapeRecipe"),
		mw.WithErrors(http.StatusBadRequest, http.StatusBadGateway))

	mw.Post(api, "/api/v1/recipes/{id}/review", h.Recipe.Review,
		mw.WithTags("Recipes"),
		mw.WithSummary("Get AI feedback on a recipe"),
		mw.WithDescription("Returns short free-text feedback. Pass it to the apply endpoint as aiResponse to turn it into edits."),
		mw.WithOperationID("reviewRecipe"),
		mw.WithErrors(http.StatusBadRequest, http.StatusNotFound, http.StatusBadGateway, http.StatusServiceUnavailable))

	mw.Post(api, "/api/v1/recipes/{id}/apply", h.Recipe.Apply,
		mw.WithTags("Recipes"),
		mw.WithSummary("Preview or apply AI edits"),
		mw.WithDescription("Without confirm, converts aiResponse into a validated patch and returns {preview, changes, patch} without writing. With confirm=true, writes the supplied patch and returns the updated recipe."),
		mw.WithOperationID("applyRecipeEdits"),
		mw.WithMaxBodyBytes(constants.MaxRequestBodyBytes),
		mw.WithErrors(http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusBadGateway, http.StatusServiceUnavailable))
}
