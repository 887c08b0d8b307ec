// Package service contains the business logic layer: page import, the AI
// patch pipeline and free-text review.
package service

import (
	"fmt"
	"log/slog"

	"github.com/jmylchreest/recipe-api/internal/config"
	"github.com/jmylchreest/recipe-api/internal/llm"
	"github.com/jmylchreest/recipe-api/internal/repository"
	"github.com/jmylchreest/recipe-api/internal/scraper"
)

// Services holds all service instances.
type Services struct {
	LLM     *LLMClient
	Scrape  *ScrapeService
	Patch   *PatchService
	Review  *ReviewService
	Storage *StorageService
}

// NewServices creates all service instances.
func NewServices(cfg *config.Config, repos *repository.Repositories, logger *slog.Logger) (*Services, error) {
	storageSvc, err := NewStorageService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}

	registry := llm.InitRegistry(cfg)
	logger.Info("provider registry initialized", "providers", registry.Names())
	llmClient := NewLLMClient(logger, registry, cfg.LLMTimeout)
	if !cfg.HasCloudLLM() {
		logger.Warn("cloud LLM key not configured - only the local provider is usable")
	}

	fetcher := scraper.NewFetcher(scraper.FetcherConfig{
		UserAgent: cfg.FetchUserAgent,
		Timeout:   cfg.FetchTimeout,
		Logger:    logger,
	})
	recipeScraper := scraper.New(fetcher, logger)

	return &Services{
		LLM:     llmClient,
		Scrape:  NewScrapeService(repos.Recipe, recipeScraper, storageSvc, logger),
		Patch:   NewPatchService(repos.Recipe, llmClient, logger),
		Review:  NewReviewService(repos.Recipe, llmClient, logger),
		Storage: storageSvc,
	}, nil
}
