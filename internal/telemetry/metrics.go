// Package telemetry exposes Prometheus metrics for the scrape pipeline.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Scrape outcomes used as the "outcome" label.
const (
	OutcomeSuccess    = "success"
	OutcomeCacheHit   = "cache_hit"
	OutcomeInvalidURL = "invalid_url"
	OutcomeTimeout    = "timeout"
	OutcomeFetchError = "fetch_error"
	OutcomeInvalid    = "validation_error"
	OutcomeError      = "error"
)

// Metrics holds the scraper metrics. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ScrapesTotal  *prometheus.CounterVec
	CacheHits     prometheus.Counter
	FetchDuration prometheus.Histogram
}

// NewMetrics registers the metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ScrapesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "toolscout_scrapes_total",
			Help: "Scrape calls by outcome",
		}, []string{"outcome"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "toolscout_cache_hits_total",
			Help: "Scrapes answered from the result cache",
		}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "toolscout_fetch_duration_seconds",
			Help:    "Time spent fetching pages",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
	}
}

// Handler serves the registry for a /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordScrape counts one finished scrape.
func (m *Metrics) RecordScrape(outcome string) {
	if m == nil {
		return
	}
	m.ScrapesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeCacheHit {
		m.CacheHits.Inc()
	}
}

// ObserveFetch records how long a fetch took.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}
