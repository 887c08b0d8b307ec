package main

import (
	"encoding/json"
	"testing"
)

func TestRender_JSON(t *testing.T) {
	data, err := render("http://api.test", false)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if doc.Info.Title != "Recipe API" {
		t.Errorf("title = %q, want %q", doc.Info.Title, "Recipe API")
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "http://api.test" {
		t.Errorf("servers = %+v, want one entry for http://api.test", doc.Servers)
	}
	for _, p := range []string{
		"/api/v1/health",
		"/api/v1/recipes/scrape",
		"/api/v1/recipes/{id}/review",
		"/api/v1/recipes/{id}/apply",
	} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("path %s missing from document", p)
		}
	}
	if _, ok := doc.Paths["/healthz"]; ok {
		t.Error("/healthz should be hidden")
	}
}
