package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/recipe-api/internal/models"
)

const pancakePage = `<html><head><script type="application/ld+json">
{"@type":"Recipe","name":"Pancakes","recipeIngredient":["1 cup flour","1 egg"],"recipeInstructions":"Mix.\nFry."}
</script></head><body></body></html>`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeRecipe(t *testing.T, data string) models.Recipe {
	t.Helper()
	var r models.Recipe
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("output is not a recipe: %v\n%s", err, data)
	}
	return r
}

// ========================================
// parse
// ========================================

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pancakes.html")
	if err := os.WriteFile(path, []byte(pancakePage), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "parse", path, "--url", "https://example.com/pancakes")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	r := decodeRecipe(t, out)
	if r.Title != "Pancakes" {
		t.Errorf("Title = %q, want %q", r.Title, "Pancakes")
	}
	if r.URL != "https://example.com/pancakes" {
		t.Errorf("URL = %q", r.URL)
	}
	if got := r.Ingredients.Count(); got != 2 {
		t.Errorf("ingredients = %d, want 2", got)
	}
}

func TestParse_DefaultsToFileURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pancakes.html")
	if err := os.WriteFile(path, []byte(pancakePage), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "parse", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r := decodeRecipe(t, out); !strings.HasPrefix(r.URL, "file://") {
		t.Errorf("URL = %q, want file:// prefix", r.URL)
	}
}

func TestParse_OutFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pancakes.html")
	dest := filepath.Join(dir, "pancakes.json")
	if err := os.WriteFile(path, []byte(pancakePage), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "parse", path, "--out", dest)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty when --out is set", out)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if r := decodeRecipe(t, string(data)); r.Title != "Pancakes" {
		t.Errorf("Title = %q", r.Title)
	}
}

func TestParse_MissingFile(t *testing.T) {
	if _, err := run(t, "parse", filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

// ========================================
// scrape
// ========================================

func TestScrape_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(pancakePage))
	}))
	defer srv.Close()

	out, err := run(t, "scrape", srv.URL+"/pancakes", "--timeout", "5s")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	r := decodeRecipe(t, out)
	if r.Title != "Pancakes" {
		t.Errorf("Title = %q, want %q", r.Title, "Pancakes")
	}
	if r.URL != srv.URL+"/pancakes" {
		t.Errorf("URL = %q", r.URL)
	}
}

func TestScrape_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := run(t, "scrape", srv.URL); err == nil {
		t.Fatal("expected an error for a 404 page")
	}
}

func TestScrape_RequiresOneArg(t *testing.T) {
	if _, err := run(t, "scrape"); err == nil {
		t.Fatal("expected an argument error")
	}
}
