package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

// ========================================
// parseLogLevel Tests
// ========================================

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" debug ", slog.LevelDebug},

		{"info", slog.LevelInfo},
		{"", slog.LevelInfo}, // default

		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},

		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},

		{"invalid", slog.LevelInfo},
		{"trace", slog.LevelInfo}, // unsupported
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

// ========================================
// Context Tests
// ========================================

func TestWithRecipeID(t *testing.T) {
	ctx := context.Background()
	newCtx := WithRecipeID(ctx, "01HZX")

	if ctx.Value(RecipeIDKey) != nil {
		t.Error("original context should not be modified")
	}
	if got := newCtx.Value(RecipeIDKey); got != "01HZX" {
		t.Errorf("context value = %v, want %q", got, "01HZX")
	}
	if newCtx.Value("log_recipe_id") != nil {
		t.Error("raw string key should not match the typed key")
	}
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	return rec
}

func TestNewWithOptions_ContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Writer: &buf, Format: "json", Level: "info"})

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-7")
	ctx = WithRecipeID(ctx, "r-42")
	logger.InfoContext(ctx, "patch applied", "fields", 2)

	rec := decodeRecord(t, &buf)
	if rec["msg"] != "patch applied" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["request_id"] != "req-7" || rec["recipe_id"] != "r-42" {
		t.Errorf("context attrs missing: %v", rec)
	}
	if rec["fields"] != float64(2) {
		t.Errorf("fields = %v", rec["fields"])
	}
	if _, ok := rec["source"]; !ok {
		t.Error("expected source attribute")
	}
}

func TestNewWithOptions_WithAttrsKeepsContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Writer: &buf, Format: "json"}).With("component", "patch")

	logger.InfoContext(WithRecipeID(context.Background(), "r-1"), "hello")

	rec := decodeRecord(t, &buf)
	if rec["component"] != "patch" || rec["recipe_id"] != "r-1" {
		t.Errorf("record = %v", rec)
	}
}

func TestNewWithOptions_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Writer: &buf, Format: "json", Level: "warn"})

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %s", buf.String())
	}
	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn should be logged")
	}
}

func TestNewWithOptions_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Writer: &buf, Format: "text"})

	logger.Info("hello", "url", "https://example.com")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Errorf("expected text output, got %s", out)
	}
	if !strings.Contains(out, "msg=hello") {
		t.Errorf("output = %s", out)
	}
}

func TestNewWithOptions_NonTTYWriterDefaultsToJSON(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	var buf bytes.Buffer
	NewWithOptions(Options{Writer: &buf}).Info("hello")

	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %s", buf.String())
	}
}

// ========================================
// New Logger Tests
// ========================================

func TestNew(t *testing.T) {
	logger := New()
	if logger == nil {
		t.Fatal("New() should return a logger")
	}
}

func TestSetDefault(t *testing.T) {
	logger := SetDefault()
	if logger == nil {
		t.Fatal("SetDefault() should return a logger")
	}
	if slog.Default() != logger {
		t.Error("slog.Default() should return the configured logger")
	}
}
