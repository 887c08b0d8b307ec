package handlers

import (
	"errors"
	"net/http"

	"github.com/jmylchreest/recipe-api/internal/constants"
	"github.com/jmylchreest/recipe-api/internal/llm"
	"github.com/jmylchreest/recipe-api/internal/patch"
	"github.com/jmylchreest/recipe-api/internal/repository"
	"github.com/jmylchreest/recipe-api/internal/scraper"
	"github.com/jmylchreest/recipe-api/internal/service"
)

// APIError is the error body returned by recipe endpoints.
// It implements huma.StatusError so it can be returned from handlers.
// Retryable is set when resubmitting the same request may succeed.
type APIError struct {
	Status        int    `json:"-"`
	Title         string `json:"title,omitempty"`
	Detail        string `json:"detail,omitempty"`
	ErrorCategory string `json:"error_category,omitempty"`
	Field         string `json:"field,omitempty"`
	Before        int    `json:"before,omitempty"`
	After         int    `json:"after,omitempty"`
	Provider      string `json:"provider,omitempty"`
	Retryable     bool   `json:"retryable,omitempty"`
}

func (e *APIError) Error() string {
	return e.Detail
}

func (e *APIError) GetStatus() int {
	return e.Status
}

func newAPIError(status int, detail, category string) *APIError {
	return &APIError{
		Status:        status,
		Title:         http.StatusText(status),
		Detail:        detail,
		ErrorCategory: category,
	}
}

// NewAPIError maps a service error to its HTTP status and client message.
func NewAPIError(err error) *APIError {
	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		apiErr := newAPIError(llmStatus(llmErr), llm.GetUserMessage(llmErr), string(llmErr.Category))
		apiErr.Provider = llmErr.Provider
		apiErr.Retryable = constants.IsTransientCategory(llmErr.Category)
		return apiErr
	}

	var vErr *patch.ValidationError
	if errors.As(err, &vErr) {
		apiErr := newAPIError(http.StatusUnprocessableEntity, vErr.Reason, "validation")
		apiErr.Field = vErr.Field
		apiErr.Before = vErr.Before
		apiErr.After = vErr.After
		return apiErr
	}

	var fetchErr *scraper.FetchError
	if errors.As(err, &fetchErr) {
		return newAPIError(http.StatusBadGateway, fetchErr.Error(), "fetch_failed")
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return newAPIError(http.StatusNotFound, "Recipe not found", "not_found")
	case errors.Is(err, patch.ErrNoApplicableChanges):
		return newAPIError(http.StatusBadRequest, "No applicable changes found in AI response.", "no_changes")
	case errors.Is(err, patch.ErrNoChangesToApply):
		return newAPIError(http.StatusBadRequest, "No changes to apply.", "no_changes")
	case errors.Is(err, repository.ErrInvalidPatchValue):
		return newAPIError(http.StatusUnprocessableEntity, err.Error(), "validation")
	case errors.Is(err, patch.ErrInvalidMode),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, llm.ErrUnknownProvider):
		return newAPIError(http.StatusBadRequest, err.Error(), "bad_request")
	default:
		return newAPIError(http.StatusInternalServerError, "Internal server error", "internal")
	}
}

func llmStatus(e *llm.Error) int {
	switch {
	case errors.Is(e, llm.ErrServiceNotRunning):
		return http.StatusServiceUnavailable
	case errors.Is(e, llm.ErrConfigMissing):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
