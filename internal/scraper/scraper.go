package scraper

import (
	"context"

	"toolscout/internal/domain"
)

// Scraper turns a URL into a validated metadata record.
type Scraper interface {
	// Scrape fetches, extracts, classifies and validates the page at url.
	// With useCache set, a cached record is returned without fetching and a
	// fresh record is stored on success.
	Scrape(ctx context.Context, url string, useCache bool) (*domain.ScrapedMetadata, error)

	// ClearCache drops every cached record.
	ClearCache()

	// CacheSize reports the number of cached URLs.
	CacheSize() int
}

// Fetcher retrieves the HTML for a URL. Implementations must honour ctx
// cancellation and reject non-2xx and non-HTML responses.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
