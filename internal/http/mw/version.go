// Package mw provides HTTP middleware for the recipe API.
package mw

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmylchreest/recipe-api/internal/version"
)

// ResponseHeaders stamps every response with the API version and, when the
// RequestID middleware ran first, the request id used in server logs.
func ResponseHeaders() func(http.Handler) http.Handler {
	apiVersion := version.Get().Short()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-API-Version", apiVersion)
			if id := middleware.GetReqID(r.Context()); id != "" {
				w.Header().Set(middleware.RequestIDHeader, id)
			}
			next.ServeHTTP(w, r)
		})
	}
}
