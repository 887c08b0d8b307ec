package llm

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jmylchreest/recipe-api/internal/config"
)

// Provider names accepted by the AI endpoints.
const (
	ProviderLocal = "local"
	ProviderCloud = "cloud"
)

// ChatCompletionsPath is appended to a provider's base URL.
const ChatCompletionsPath = "/v1/chat/completions"

// ProviderConfig describes how to reach one OpenAI-compatible chat endpoint.
type ProviderConfig struct {
	Name          string
	BaseURL       string
	Model         string
	APIKey        string
	RequiresKey   bool              // cloud providers need a bearer key
	ExtraHeaders  map[string]string // attribution headers (HTTP-Referer, X-Title)
	HonorsNoThink bool              // append /no_think to user prompts
}

// ChatURL returns the chat completions endpoint for the provider.
func (p ProviderConfig) ChatURL() string {
	return strings.TrimRight(p.BaseURL, "/") + ChatCompletionsPath
}

// Validate reports missing configuration before any request is attempted.
func (p ProviderConfig) Validate() error {
	if p.BaseURL == "" {
		return NewConfigError(p.Name, fmt.Sprintf("No base URL configured for LLM provider %q.", p.Name))
	}
	if p.RequiresKey && p.APIKey == "" {
		return NewConfigError(p.Name, fmt.Sprintf("No API key configured for LLM provider %q.", p.Name))
	}
	return nil
}

// Registry holds the configured LLM providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ProviderConfig
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]ProviderConfig)}
}

// Register adds or replaces a provider.
func (r *Registry) Register(p ProviderConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name] = p
}

// Get returns a provider by name.
func (r *Registry) Get(name string) (ProviderConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return ProviderConfig{}, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitRegistry builds the registry from configuration.
// The cloud provider is always registered so a missing key surfaces as
// ErrConfigMissing at call time instead of an unknown provider.
func InitRegistry(cfg *config.Config) *Registry {
	r := NewRegistry()

	r.Register(ProviderConfig{
		Name:          ProviderLocal,
		BaseURL:       cfg.LLMLocalBaseURL,
		Model:         cfg.LLMLocalModel,
		HonorsNoThink: true,
	})

	headers := map[string]string{}
	if cfg.LLMAppURL != "" {
		headers["HTTP-Referer"] = cfg.LLMAppURL
	}
	if cfg.LLMAppTitle != "" {
		headers["X-Title"] = cfg.LLMAppTitle
	}
	r.Register(ProviderConfig{
		Name:         ProviderCloud,
		BaseURL:      cfg.LLMCloudBaseURL,
		Model:        cfg.LLMCloudModel,
		APIKey:       cfg.LLMCloudAPIKey,
		RequiresKey:  true,
		ExtraHeaders: headers,
	})

	return r
}
