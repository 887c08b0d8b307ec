package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/recipe-api/internal/constants"
)

const (
	// DefaultUserAgent is a desktop browser string; many recipe sites serve
	// reduced markup or block unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// FetchResult is a fetched page body.
type FetchResult struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
	FetchedAt   time.Time
}

// Fetcher retrieves a page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*FetchResult, error)
}

// FetchError reports a network failure or non-success status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetcherConfig configures a CollyFetcher.
type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// CollyFetcher fetches single pages with a colly collector.
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewFetcher creates a page fetcher.
func NewFetcher(cfg FetcherConfig) *CollyFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultFetchTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &CollyFetcher{
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		logger:    cfg.Logger,
	}
}

// Fetch performs one GET. Redirects follow the HTTP client default.
func (f *CollyFetcher) Fetch(ctx context.Context, pageURL string) (*FetchResult, error) {
	var (
		result   *FetchResult
		fetchErr *FetchError
	)

	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", acceptHeader)
	})

	c.OnResponse(func(r *colly.Response) {
		result = &FetchResult{
			URL:         r.Request.URL.String(),
			Body:        r.Body,
			ContentType: r.Headers.Get("Content-Type"),
			StatusCode:  r.StatusCode,
			FetchedAt:   time.Now(),
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = &FetchError{URL: pageURL, Err: err}
		if r != nil && r.StatusCode >= 300 {
			fetchErr.StatusCode = r.StatusCode
		}
	})

	f.logger.Debug("fetching page", "url", pageURL)
	start := time.Now()

	if err := c.Visit(pageURL); err != nil {
		if fetchErr == nil {
			fetchErr = &FetchError{URL: pageURL, Err: err}
		}
		f.logger.Debug("page fetch failed", "url", pageURL, "status", fetchErr.StatusCode, "error", err)
		return nil, fetchErr
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	if result == nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("no response received")}
	}

	f.logger.Debug("page fetched",
		"url", pageURL,
		"status", result.StatusCode,
		"bytes", len(result.Body),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
