// Package config handles application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/recipe-api/internal/constants"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    int
	BaseURL string

	// Database
	DatabaseURL string

	// CORS
	CORSOrigins []string

	// Page fetching
	FetchTimeout   time.Duration
	FetchUserAgent string

	// Local LLM (llama.cpp server or any OpenAI-compatible endpoint, no auth)
	LLMLocalBaseURL string
	LLMLocalModel   string

	// Cloud LLM (OpenRouter-compatible, bearer auth)
	LLMCloudBaseURL string
	LLMCloudAPIKey  string
	LLMCloudModel   string
	LLMAppURL       string // HTTP-Referer attribution header
	LLMAppTitle     string // X-Title attribution header

	LLMTimeout time.Duration

	// Object Storage (S3-compatible) for raw page snapshots
	StorageEnabled   bool
	StorageEndpoint  string // AWS_ENDPOINT_URL_S3
	StorageAccessKey string // AWS_ACCESS_KEY_ID
	StorageSecretKey string // AWS_SECRET_ACCESS_KEY
	StorageBucket    string
	StorageRegion    string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseURL: getEnv("DATABASE_URL", "file:recipes.db?_journal=WAL&_timeout=5000"),
		CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),

		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchUserAgent: getEnv("FETCH_USER_AGENT", ""),

		LLMLocalBaseURL: getEnv("LLM_LOCAL_BASE_URL", "http://127.0.0.1:8080"),
		LLMLocalModel:   getEnv("LLM_LOCAL_MODEL", "qwen3-4b-instruct"),

		LLMCloudBaseURL: getEnv("LLM_CLOUD_BASE_URL", "https://openrouter.ai/api"),
		LLMCloudAPIKey:  getEnvWithFallback("LLM_CLOUD_API_KEY", "OPENROUTER_API_KEY", ""),
		LLMCloudModel:   getEnv("LLM_CLOUD_MODEL", "qwen/qwen3-30b-a3b-instruct-2507"),
		LLMAppURL:       getEnv("LLM_APP_URL", "http://localhost:3000"),
		LLMAppTitle:     getEnv("LLM_APP_TITLE", "Recipe Box"),

		LLMTimeout: getEnvDuration("LLM_TIMEOUT", 120*time.Second),

		// Object Storage (S3-compatible), same variable names as Fly/Tigris
		StorageEndpoint:  getEnv("AWS_ENDPOINT_URL_S3", ""),
		StorageAccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		StorageSecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		StorageBucket:    getEnvWithFallback("BUCKET_NAME", "STORAGE_BUCKET", ""),
		StorageRegion:    getEnv("AWS_REGION", "auto"),
	}

	// Enable storage if bucket is configured
	cfg.StorageEnabled = cfg.StorageBucket != "" && cfg.StorageEndpoint != ""

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.LLMTimeout <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT must be positive")
	}

	return cfg, nil
}

// HasCloudLLM reports whether a cloud API key is configured.
func (c *Config) HasCloudLLM() bool {
	return c.LLMCloudAPIKey != ""
}

// ExtendedRequestTimeout is the request budget for endpoints that fetch a
// page or call a model: the slower of LLM_TIMEOUT and FETCH_TIMEOUT plus
// constants.RequestTimeoutOverhead.
func (c *Config) ExtendedRequestTimeout() time.Duration {
	upstream := c.LLMTimeout
	if c.FetchTimeout > upstream {
		upstream = c.FetchTimeout
	}
	return upstream + constants.RequestTimeoutOverhead
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}

func getEnvWithFallback(primary, fallback, defaultValue string) string {
	if value := os.Getenv(primary); value != "" {
		return value
	}
	if value := os.Getenv(fallback); value != "" {
		return value
	}
	return defaultValue
}
