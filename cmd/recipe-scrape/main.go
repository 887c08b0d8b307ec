// Package main is a command line tool that extracts a recipe from a page
// and prints it as JSON, without touching the database.
//
// Usage:
//
//	recipe-scrape scrape https://example.com/pancakes
//	recipe-scrape parse saved.html --url https://example.com/pancakes
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/recipe-api/internal/constants"
	"github.com/jmylchreest/recipe-api/internal/logging"
	"github.com/jmylchreest/recipe-api/internal/models"
	"github.com/jmylchreest/recipe-api/internal/scraper"
	"github.com/jmylchreest/recipe-api/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	timeout time.Duration
	verbose bool
	out     string
	pageURL string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "recipe-scrape",
		Short:        "Extract recipes from web pages",
		Long:         `Fetches or reads a recipe page and prints the extracted recipe as JSON.`,
		Version:      version.Get().Short(),
		SilenceUsage: true,
	}
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", constants.DefaultFetchTimeout, "Page fetch timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	root.PersistentFlags().StringVarP(&opts.out, "out", "o", "", "Write JSON to this file instead of stdout")

	scrapeCmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Fetch a page and extract its recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd.ErrOrStderr())
			fetcher := scraper.NewFetcher(scraper.FetcherConfig{Timeout: opts.timeout, Logger: logger})

			res, err := scraper.New(fetcher, logger).Scrape(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), res.Recipe)
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Extract a recipe from a saved HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			pageURL := opts.pageURL
			if pageURL == "" {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				pageURL = "file://" + filepath.ToSlash(abs)
			}

			contentType := mime.TypeByExtension(filepath.Ext(args[0]))
			ex, err := scraper.New(nil, opts.logger(cmd.ErrOrStderr())).ExtractBody(pageURL, body, contentType)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), ex.Recipe)
		},
	}
	parseCmd.Flags().StringVar(&opts.pageURL, "url", "", "Source URL recorded on the recipe")

	root.AddCommand(scrapeCmd, parseCmd)
	return root
}

// logger discards everything unless --verbose is set.
func (o *options) logger(stderr io.Writer) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.DiscardHandler)
	}
	return logging.NewWithOptions(logging.Options{Writer: stderr, Format: "text", Level: "debug"})
}

func (o *options) write(stdout io.Writer, r *models.Recipe) error {
	if r == nil {
		return errors.New("no recipe extracted")
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}
	data = append(data, '\n')

	if o.out == "" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(o.out, data, 0o644)
}
