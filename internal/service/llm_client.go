package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmylchreest/recipe-api/internal/constants"
	"github.com/jmylchreest/recipe-api/internal/llm"
)

// LLMCallOptions configures a chat completion call.
type LLMCallOptions struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
	Timeout     time.Duration // Default: client timeout
	JSONMode    bool          // Request response_format json_object
	NoThink     bool          // Append /no_think for providers that honor it
}

// CallOptions builds call options from a sampling preset.
func CallOptions(s constants.Sampling) LLMCallOptions {
	return LLMCallOptions{
		Temperature: s.Temperature,
		TopP:        s.TopP,
		MaxTokens:   s.MaxTokens,
	}
}

// LLMCallResult holds a completed chat response with reasoning stripped.
type LLMCallResult struct {
	Content      string
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	FinishReason string
}

// ChatCaller is the LLM dependency of the AI services.
type ChatCaller interface {
	Call(ctx context.Context, provider, system, user string, opts LLMCallOptions) (*LLMCallResult, error)
}

// LLMClient calls OpenAI-compatible chat completion endpoints.
type LLMClient struct {
	logger   *slog.Logger
	registry *llm.Registry
	client   *http.Client
	timeout  time.Duration
}

// NewLLMClient creates a new LLM client. timeout bounds every call unless
// the call options set their own.
func NewLLMClient(logger *slog.Logger, registry *llm.Registry, timeout time.Duration) *LLMClient {
	if timeout <= 0 {
		timeout = constants.DefaultLLMTimeout
	}
	return &LLMClient{
		logger:   logger,
		registry: registry,
		client:   &http.Client{},
		timeout:  timeout,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model,omitempty"`
	Messages       []chatMessage     `json:"messages"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	Temperature    float64           `json:"temperature"`
	TopP           float64           `json:"top_p,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Call sends one system+user exchange to provider and returns the reply with
// reasoning blocks removed. Failures other than an unknown provider are
// classified *llm.Error values.
func (c *LLMClient) Call(ctx context.Context, provider, system, user string, opts LLMCallOptions) (*LLMCallResult, error) {
	p, err := c.registry.Get(provider)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if opts.NoThink && p.HonorsNoThink {
		user = llm.WithNoThink(user)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	reqBody := chatRequest{
		Model: p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
	}
	if opts.JSONMode {
		reqBody.ResponseFormat = map[string]string{"type": "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.ChatURL(), bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}
	for k, v := range p.ExtraHeaders {
		req.Header.Set(k, v)
	}

	c.logger.Debug("making LLM API request",
		"provider", p.Name,
		"model", p.Model,
		"api_url", p.ChatURL(),
		"prompt_length", len(system)+len(user),
		"temperature", opts.Temperature,
		"max_tokens", opts.MaxTokens,
		"json_mode", opts.JSONMode,
	)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		llmErr := llm.ClassifyError(err, p.Name, p.Model, 0)
		c.logger.Error("LLM API request failed",
			"provider", p.Name,
			"category", llmErr.Category,
			"error", err,
		)
		return nil, llmErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, llm.ClassifyError(fmt.Errorf("failed to read response: %w", err), p.Name, p.Model, 0)
	}

	c.logger.Debug("LLM API response received",
		"provider", p.Name,
		"status_code", resp.StatusCode,
		"response_length", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("LLM API error",
			"provider", p.Name,
			"status_code", resp.StatusCode,
			"response", truncate(string(body), 500),
		)
		return nil, llm.ClassifyError(
			fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(string(body), 200)),
			p.Name, p.Model, resp.StatusCode,
		)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, llm.NewInvalidResponseError(p.Name, p.Model, "LLM returned an unreadable response. Try again.", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, llm.NewInvalidResponseError(p.Name, p.Model, "LLM returned no choices. Try again.", errors.New("empty choices"))
	}

	content := llm.StripReasoning(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, llm.NewInvalidResponseError(p.Name, p.Model, "LLM returned an empty response. Try again.", errors.New("empty content"))
	}

	result := &LLMCallResult{
		Content:      content,
		Provider:     p.Name,
		Model:        p.Model,
		InputTokens:  parsed.Usage.PromptTokens,
		OutputTokens: parsed.Usage.CompletionTokens,
		FinishReason: parsed.Choices[0].FinishReason,
	}
	if result.FinishReason == "length" {
		c.logger.Warn("LLM output truncated",
			"provider", p.Name,
			"model", p.Model,
			"output_tokens", result.OutputTokens,
			"max_tokens", opts.MaxTokens,
		)
	}
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
