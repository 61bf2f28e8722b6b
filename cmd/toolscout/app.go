package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"toolscout/internal/config"
	"toolscout/internal/scraper"
	"toolscout/internal/telemetry"
)

func newLogger(cfg config.Config, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(out)
	level, _ := cfg.Level()
	log.SetLevel(level)
	return log
}

func newFetcher(cfg config.Config, log logrus.FieldLogger) (scraper.Fetcher, error) {
	switch cfg.Fetcher {
	case config.FetcherHTTP:
		return scraper.NewHTTPFetcher(
			scraper.WithUserAgent(cfg.UserAgent),
			scraper.WithFetcherLogger(log),
		), nil
	case config.FetcherRod:
		return scraper.NewRodFetcher(log)
	default:
		return nil, fmt.Errorf("unknown fetcher %q", cfg.Fetcher)
	}
}

func newService(cfg config.Config, fetcher scraper.Fetcher, metrics *telemetry.Metrics, log logrus.FieldLogger) *scraper.Service {
	return scraper.NewService(fetcher, log,
		scraper.WithTimeout(cfg.FetchTimeout),
		scraper.WithDedupInFlight(cfg.DedupInFlight),
		scraper.WithRateLimit(cfg.RateLimitRPS),
		scraper.WithMetrics(metrics),
	)
}
