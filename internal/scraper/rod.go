package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// Ensure RodFetcher implements Fetcher at compile time.
var _ Fetcher = (*RodFetcher)(nil)

// RodFetcher renders pages in a headless browser, for sites that build
// their markup with JavaScript. One browser is shared by all fetches.
type RodFetcher struct {
	browser *rod.Browser
	log     logrus.FieldLogger
}

// NewRodFetcher launches a headless browser found on the host.
// Close must be called when the fetcher is no longer needed.
func NewRodFetcher(logger logrus.FieldLogger) (*RodFetcher, error) {
	log := logger.WithField("component", "rod_fetcher")

	path, exists := launcher.LookPath()
	if !exists {
		log.Error("Cannot find browser executable for rod")
		return nil, errors.New("rod browser dependency not found")
	}

	l := launcher.New().Bin(path).Headless(true)
	u, err := l.Launch()
	if err != nil {
		log.WithError(err).Error("Failed to launch rod browser")
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		log.WithError(err).Error("Failed to connect to rod browser")
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	log.Info("Rod browser instance started")

	return &RodFetcher{browser: browser, log: log}, nil
}

// Fetch navigates to url, checks the main document response and returns
// the rendered HTML.
func (f *RodFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	log := f.log.WithField("url", url)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		log.WithError(err).Error("Failed to create rod page")
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Error closing rod page")
		}
	}()
	// Close through the unbound page so an expired ctx still releases the tab.
	p := page.Context(ctx)

	var (
		status   int
		mimeType string
	)
	waitDocument := p.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		mimeType = e.Response.MIMEType
		return true
	})

	if err := p.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	waitDocument()
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if status < 200 || status > 299 {
		return "", &StatusError{Code: status, Status: http.StatusText(status)}
	}
	if !strings.Contains(strings.ToLower(mimeType), "text/html") {
		return "", notHTMLError(mimeType)
	}

	if err := p.WaitLoad(); err != nil {
		return "", fmt.Errorf("failed waiting for page load: %w", err)
	}

	html, err = p.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read rendered html: %w", err)
	}
	log.Debug("Rendered page fetched")
	return html, nil
}

// Close shuts the shared browser down.
func (f *RodFetcher) Close() error {
	f.log.Info("Closing rod browser instance")
	return f.browser.Close()
}
