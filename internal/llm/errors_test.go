package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"

	"github.com/jmylchreest/recipe-api/internal/constants"
)

// ========================================
// Error Tests
// ========================================

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with user message",
			err:      &Error{Err: ErrRequestFailed, UserMessage: "User-friendly message"},
			expected: "User-friendly message",
		},
		{
			name:     "with cause",
			err:      &Error{Err: ErrRequestFailed, Cause: errors.New("boom")},
			expected: "LLM request failed: boom",
		},
		{
			name:     "sentinel only",
			err:      &Error{Err: ErrInvalidResponse},
			expected: "LLM returned invalid response",
		},
		{
			name:     "empty error",
			err:      &Error{},
			expected: "unknown LLM error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	llmErr := &Error{Err: ErrServiceNotRunning, Cause: errors.New("dial tcp: connection refused")}

	if !errors.Is(llmErr, ErrServiceNotRunning) {
		t.Error("errors.Is should match the sentinel")
	}
	if errors.Is(llmErr, ErrRequestFailed) {
		t.Error("errors.Is should not match a different sentinel")
	}

	wrapped := fmt.Errorf("review failed: %w", llmErr)
	var target *Error
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find *Error through wrapping")
	}
	if target.Category != "" {
		t.Errorf("Category = %q, want empty", target.Category)
	}
}

// ========================================
// ClassifyError Tests
// ========================================

func TestClassifyError_Nil(t *testing.T) {
	if got := ClassifyError(nil, ProviderLocal, "m", http.StatusOK); got != nil {
		t.Errorf("ClassifyError(nil, 200) = %v, want nil", got)
	}
}

func TestClassifyError_Transport(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		provider     string
		wantSentinel error
		wantCategory constants.ErrorCategory
		wantMessage  string
	}{
		{
			name:         "local connection refused",
			err:          fmt.Errorf("dial tcp 127.0.0.1:8080: %w", syscall.ECONNREFUSED),
			provider:     ProviderLocal,
			wantSentinel: ErrServiceNotRunning,
			wantCategory: constants.ErrorCategoryNotRunning,
			wantMessage:  "Local LLM server is not running. Start llama-server first.",
		},
		{
			name:         "cloud connection refused by message",
			err:          errors.New("Post \"https://x\": dial tcp: connect: connection refused"),
			provider:     ProviderCloud,
			wantSentinel: ErrServiceNotRunning,
			wantCategory: constants.ErrorCategoryNotRunning,
			wantMessage:  `LLM provider "cloud" is not reachable.`,
		},
		{
			name:         "deadline exceeded",
			err:          fmt.Errorf("request: %w", context.DeadlineExceeded),
			provider:     ProviderLocal,
			wantSentinel: ErrRequestFailed,
			wantCategory: constants.ErrorCategoryTimeout,
			wantMessage:  "Request timed out. The model took too long to respond. Please try again.",
		},
		{
			name:         "other transport failure",
			err:          errors.New("tls: handshake failure"),
			provider:     ProviderCloud,
			wantSentinel: ErrRequestFailed,
			wantCategory: constants.ErrorCategoryTransport,
			wantMessage:  "LLM request failed: tls: handshake failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err, tt.provider, "model", 0)
			if !errors.Is(got, tt.wantSentinel) {
				t.Errorf("sentinel = %v, want %v", got.Err, tt.wantSentinel)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.UserMessage != tt.wantMessage {
				t.Errorf("UserMessage = %q, want %q", got.UserMessage, tt.wantMessage)
			}
		})
	}
}

func TestClassifyError_Status(t *testing.T) {
	tests := []struct {
		status       int
		wantSentinel error
		wantCategory constants.ErrorCategory
	}{
		{http.StatusUnauthorized, ErrConfigMissing, constants.ErrorCategoryInvalidKey},
		{http.StatusForbidden, ErrConfigMissing, constants.ErrorCategoryInvalidKey},
		{http.StatusTooManyRequests, ErrRequestFailed, constants.ErrorCategoryRateLimit},
		{http.StatusServiceUnavailable, ErrRequestFailed, constants.ErrorCategoryProviderError},
		{http.StatusBadGateway, ErrRequestFailed, constants.ErrorCategoryProviderError},
		{http.StatusBadRequest, ErrRequestFailed, constants.ErrorCategoryBadRequest},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			got := ClassifyError(errors.New("API error"), ProviderCloud, "m", tt.status)
			if !errors.Is(got, tt.wantSentinel) {
				t.Errorf("sentinel = %v, want %v", got.Err, tt.wantSentinel)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", got.StatusCode, tt.status)
			}
		})
	}
}

func TestGetUserMessage(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConfigError(ProviderCloud, "No API key."))
	if got := GetUserMessage(err); got != "No API key." {
		t.Errorf("GetUserMessage() = %q, want %q", got, "No API key.")
	}
	if got := GetUserMessage(&Error{Err: ErrRequestFailed, Cause: errors.New("dial tcp: boom")}); got != ErrRequestFailed.Error() {
		t.Errorf("GetUserMessage(no user message) = %q, want %q", got, ErrRequestFailed.Error())
	}
	if got := GetUserMessage(errors.New("plain")); got != "An unexpected error occurred. Please try again." {
		t.Errorf("GetUserMessage(plain) = %q", got)
	}
}
