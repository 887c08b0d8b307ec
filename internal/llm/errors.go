// Package llm provides LLM provider configuration and error handling.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/jmylchreest/recipe-api/internal/constants"
)

// Error categories for LLM operations.
var (
	// ErrServiceNotRunning indicates the provider endpoint refused the connection.
	// For the local provider this almost always means llama-server is not started.
	ErrServiceNotRunning = errors.New("LLM service not running")

	// ErrConfigMissing indicates required provider configuration (API key, base URL) is absent.
	ErrConfigMissing = errors.New("LLM configuration missing")

	// ErrRequestFailed indicates a transport failure, timeout or non-success status.
	ErrRequestFailed = errors.New("LLM request failed")

	// ErrInvalidResponse indicates the model replied with content that could not be used.
	ErrInvalidResponse = errors.New("LLM returned invalid response")

	// ErrUnknownProvider indicates the caller asked for a provider that is not registered.
	ErrUnknownProvider = errors.New("unknown LLM provider")
)

// Error represents a failure talking to an LLM provider with user-facing messaging.
type Error struct {
	// Err is one of the sentinel errors above.
	Err error

	// Cause is the underlying transport or decode error, if any.
	Cause error

	// HTTP status code (if applicable)
	StatusCode int

	// Provider name (local, cloud)
	Provider string

	// Model that was being used
	Model string

	// Category for logs and clients
	Category constants.ErrorCategory

	// UserMessage is safe to show to end users.
	UserMessage string
}

func (e *Error) Error() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Err, e.Cause)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown LLM error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigError reports configuration that is missing for a provider.
// It is raised before any network call is made.
func NewConfigError(provider, msg string) *Error {
	return &Error{
		Err:         ErrConfigMissing,
		Provider:    provider,
		Category:    constants.ErrorCategoryConfig,
		UserMessage: msg,
	}
}

// NewInvalidResponseError reports unusable model output.
func NewInvalidResponseError(provider, model, msg string, cause error) *Error {
	return &Error{
		Err:         ErrInvalidResponse,
		Cause:       cause,
		Provider:    provider,
		Model:       model,
		Category:    constants.ErrorCategoryInvalidResponse,
		UserMessage: msg,
	}
}

// ClassifyError maps a transport error or HTTP status from a chat-completion call
// into a classified Error. statusCode is 0 when no response was received.
func ClassifyError(err error, provider, model string, statusCode int) *Error {
	if err == nil && statusCode < http.StatusBadRequest {
		return nil
	}

	llmErr := &Error{
		Err:        ErrRequestFailed,
		Cause:      err,
		StatusCode: statusCode,
		Provider:   provider,
		Model:      model,
	}

	// Transport failures first: a refused connection is never a timeout.
	if err != nil && statusCode == 0 {
		switch {
		case isConnectionRefused(err):
			llmErr.Err = ErrServiceNotRunning
			llmErr.Category = constants.ErrorCategoryNotRunning
			if provider == ProviderLocal {
				llmErr.UserMessage = "Local LLM server is not running. Start llama-server first."
			} else {
				llmErr.UserMessage = fmt.Sprintf("LLM provider %q is not reachable.", provider)
			}
		case isTimeout(err):
			llmErr.Category = constants.ErrorCategoryTimeout
			llmErr.UserMessage = "Request timed out. The model took too long to respond. Please try again."
		default:
			llmErr.Category = constants.ErrorCategoryTransport
			llmErr.UserMessage = fmt.Sprintf("LLM request failed: %v", err)
		}
		return llmErr
	}

	// Classify by HTTP status code
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		llmErr.Err = ErrConfigMissing
		llmErr.Category = constants.ErrorCategoryInvalidKey
		llmErr.UserMessage = "Invalid API key. Please check your LLM configuration."
	case statusCode == http.StatusTooManyRequests:
		llmErr.Category = constants.ErrorCategoryRateLimit
		llmErr.UserMessage = "Rate limit exceeded. Please wait before retrying."
	case statusCode == http.StatusServiceUnavailable:
		llmErr.Category = constants.ErrorCategoryProviderError
		llmErr.UserMessage = "The model is temporarily unavailable. Please try again later."
	case statusCode >= http.StatusInternalServerError:
		llmErr.Category = constants.ErrorCategoryProviderError
		llmErr.UserMessage = "The LLM provider is experiencing issues. Please try again."
	default:
		llmErr.Category = constants.ErrorCategoryBadRequest
		llmErr.UserMessage = fmt.Sprintf("LLM request rejected (status %d).", statusCode)
	}

	return llmErr
}

func isConnectionRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// GetUserMessage returns a user-friendly message for the error. The
// underlying cause is never included.
func GetUserMessage(err error) string {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		if llmErr.UserMessage != "" {
			return llmErr.UserMessage
		}
		if llmErr.Err != nil {
			return llmErr.Err.Error()
		}
	}
	return "An unexpected error occurred. Please try again."
}
