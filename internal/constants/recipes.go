// Package constants defines centralized configuration for recipe extraction and AI edits.
package constants

import "time"

// Extraction heuristics.
const (
	// MaxSectionHeaderLength is the rune limit under which a colon-terminated,
	// digit-free ingredient line is treated as a section header.
	MaxSectionHeaderLength = 60

	// UntitledRecipe is used when no title can be found on the page.
	UntitledRecipe = "Untitled Recipe"

	// DefaultFetchTimeout bounds a single page fetch.
	DefaultFetchTimeout = 30 * time.Second
)

// AI patch validation limits.
const (
	// MaxStepLength is the rune limit for a single instruction step in an AI patch.
	// Longer steps are almost always several steps merged into one.
	MaxStepLength = 500

	// DefaultLLMTimeout is the hard upper bound for one chat completion.
	DefaultLLMTimeout = 120 * time.Second
)

// HTTP request timeouts.
const (
	// DefaultRequestTimeout is the timeout for most API endpoints.
	DefaultRequestTimeout = 30 * time.Second

	// RequestTimeoutOverhead is added to the slowest upstream call when sizing
	// the timeout for scrape, review and apply requests.
	RequestTimeoutOverhead = 30 * time.Second

	// MaxRequestBodyBytes caps request payloads.
	MaxRequestBodyBytes = 1 << 20
)

// Sampling holds chat-completion sampling parameters for one kind of request.
type Sampling struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

var (
	// PatchSampling is used to turn free-text AI advice into a JSON patch.
	PatchSampling = Sampling{Temperature: 0.1, TopP: 0.9, MaxTokens: 4096}

	// ReviewSampling is used for the free-text recipe review.
	ReviewSampling = Sampling{Temperature: 0.4, TopP: 0.9, MaxTokens: 1024}
)

// ReviewMaxWords is the reply length requested from the review prompt.
const ReviewMaxWords = 120

// ErrorCategory classifies LLM errors for logs and client messages.
type ErrorCategory string

const (
	ErrorCategoryNotRunning      ErrorCategory = "not_running"
	ErrorCategoryConfig          ErrorCategory = "config"
	ErrorCategoryInvalidKey      ErrorCategory = "invalid_key"
	ErrorCategoryRateLimit       ErrorCategory = "rate_limit"
	ErrorCategoryProviderError   ErrorCategory = "provider_error"
	ErrorCategoryTimeout         ErrorCategory = "timeout"
	ErrorCategoryTransport       ErrorCategory = "transport"
	ErrorCategoryBadRequest      ErrorCategory = "bad_request"
	ErrorCategoryInvalidResponse ErrorCategory = "invalid_response"
)

// IsTransientCategory returns true if resubmitting the same request may succeed
// without any change in configuration or input.
func IsTransientCategory(category ErrorCategory) bool {
	switch category {
	case ErrorCategoryRateLimit, ErrorCategoryProviderError, ErrorCategoryTimeout, ErrorCategoryInvalidResponse:
		return true
	default:
		return false
	}
}
