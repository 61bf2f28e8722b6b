package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"toolscout/internal/config"
	"toolscout/internal/domain"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type scrapeOptions struct {
	noCache bool
	format  string
	fetcher string
	timeout time.Duration
}

func newScrapeCmd() *cobra.Command {
	opts := &scrapeOptions{}
	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Scrape one URL and print the metadata record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configDir)
			if err != nil {
				return err
			}
			if err := opts.apply(&cfg); err != nil {
				return err
			}

			log := newLogger(cfg, cmd.ErrOrStderr())
			fetcher, err := newFetcher(cfg, log)
			if err != nil {
				return err
			}
			service := newService(cfg, fetcher, nil, log)
			defer service.Close()

			meta, err := service.Scrape(cmd.Context(), args[0], !opts.noCache)
			if err != nil {
				return err
			}
			return writeMetadata(cmd.OutOrStdout(), meta, opts.format)
		},
	}

	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Bypass the result cache")
	cmd.Flags().StringVar(&opts.format, "format", formatJSON, "Output format: json or yaml")
	cmd.Flags().StringVar(&opts.fetcher, "fetcher", "", "Fetcher backend: http or rod (overrides FETCHER)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Fetch timeout (overrides FETCH_TIMEOUT)")
	return cmd
}

// apply overlays command-line flags on the loaded config.
func (o *scrapeOptions) apply(cfg *config.Config) error {
	if o.format != formatJSON && o.format != formatYAML {
		return fmt.Errorf("unknown format %q, want %s or %s", o.format, formatJSON, formatYAML)
	}
	if o.fetcher != "" {
		cfg.Fetcher = o.fetcher
	}
	if o.timeout > 0 {
		cfg.FetchTimeout = o.timeout
	}
	return cfg.Validate()
}

func writeMetadata(w io.Writer, meta *domain.ScrapedMetadata, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}
}
