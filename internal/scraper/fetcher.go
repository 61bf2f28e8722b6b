package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultUserAgent identifies requests as a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.6778.85 Safari/537.36"

const (
	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.9,da;q=0.8"

	// maxBodySize bounds how much of a response is read.
	maxBodySize = 10 << 20
)

// Ensure HTTPFetcher implements Fetcher at compile time.
var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher fetches static HTML with a plain HTTP GET.
// Deadlines come from the caller's context.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	log       logrus.FieldLogger
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithFetcherLogger sets the logger used for fetch warnings.
func WithFetcherLogger(logger logrus.FieldLogger) FetcherOption {
	return func(f *HTTPFetcher) {
		if logger != nil {
			f.log = logger.WithField("component", "http_fetcher")
		}
	}
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{},
		userAgent: DefaultUserAgent,
		log:       logrus.StandardLogger().WithField("component", "http_fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs the GET and returns the body of a 2xx text/html response.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", notHTMLError(contentType)
	}

	// One byte past the limit tells a truncated body from one of exactly maxBodySize.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxBodySize {
		f.log.WithFields(logrus.Fields{
			"url":       url,
			"max_bytes": maxBodySize,
		}).Warn("Response body exceeds size limit, parsing truncated HTML")
		body = body[:maxBodySize]
	}
	return string(body), nil
}

// Close is a no-op; http.Client needs no cleanup.
func (f *HTTPFetcher) Close() error {
	return nil
}
