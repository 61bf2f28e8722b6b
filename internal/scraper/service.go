package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"toolscout/internal/classify"
	"toolscout/internal/domain"
	"toolscout/internal/extract"
	"toolscout/internal/generate"
	"toolscout/internal/telemetry"
	"toolscout/internal/translate"
)

// DefaultTimeout bounds the fetch stage of a scrape.
const DefaultTimeout = 15 * time.Second

// Pipeline states, used as the "state" log field.
const (
	stateFetching    = "fetching"
	stateExtracting  = "extracting"
	stateClassifying = "classifying"
	stateGenerating  = "generating"
	stateValidating  = "validating"
	stateDone        = "done"
)

// Ensure Service implements Scraper at compile time.
var _ Scraper = (*Service)(nil)

// Service runs the scrape pipeline: fetch, extract, classify, generate,
// validate, cache. A failure at any stage aborts the scrape and nothing is
// cached.
type Service struct {
	fetcher     Fetcher
	extractor   *extract.Extractor
	tagger      *classify.Tagger
	categorizer *classify.Categorizer
	generator   *generate.Generator
	cache       Cache
	limiter     *DomainLimiter
	metrics     *telemetry.Metrics
	translator  translate.Translator
	timeout     time.Duration
	dedup       bool
	group       singleflight.Group
	now         func() time.Time
	log         logrus.FieldLogger
}

// Option configures a Service.
type Option func(*Service)

// WithCache replaces the default MemoryCache.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithTimeout sets the fetch timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithDedupInFlight coalesces concurrent scrapes of the same URL into one
// fetch when enabled. Enabled by default.
func WithDedupInFlight(enabled bool) Option {
	return func(s *Service) { s.dedup = enabled }
}

// WithRateLimit limits fetches to rps per domain. Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(s *Service) {
		if rps > 0 {
			s.limiter = NewDomainLimiter(rps)
		}
	}
}

// WithMetrics records scrape outcomes on m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTranslator replaces the Danish placeholder translator.
func WithTranslator(t translate.Translator) Option {
	return func(s *Service) { s.translator = t }
}

// NewService builds a Service around fetcher.
func NewService(fetcher Fetcher, logger logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		tagger:      classify.NewTagger(),
		categorizer: classify.NewCategorizer(),
		cache:       NewMemoryCache(),
		timeout:     DefaultTimeout,
		dedup:       true,
		now:         time.Now,
		log:         logger.WithField("component", "scraper"),
	}
	for _, opt := range opts {
		opt(s)
	}

	wrapper := translate.NewWrapper(s.translator)
	s.extractor = extract.NewExtractor(wrapper)
	s.generator = generate.NewGenerator(wrapper)
	return s
}

// Scrape implements Scraper.
func (s *Service) Scrape(ctx context.Context, rawURL string, useCache bool) (*domain.ScrapedMetadata, error) {
	log := s.log.WithFields(logrus.Fields{"url": rawURL, "use_cache": useCache})

	target, err := parseTarget(rawURL)
	if err != nil {
		log.WithError(err).Warn("Rejected scrape request")
		s.metrics.RecordScrape(telemetry.OutcomeInvalidURL)
		return nil, err
	}

	if useCache {
		if meta, ok := s.cache.Get(rawURL); ok {
			log.Debug("Serving scrape from cache")
			s.metrics.RecordScrape(telemetry.OutcomeCacheHit)
			return meta, nil
		}
	}

	if !s.dedup {
		return s.run(ctx, log, rawURL, target, useCache)
	}

	key := fmt.Sprintf("%t|%s", useCache, rawURL)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		// Shared by every waiter, so it must outlive the first caller.
		return s.run(context.WithoutCancel(ctx), log, rawURL, target, useCache)
	})

	select {
	case res := <-ch:
		if res.Shared {
			log.Debug("Joined in-flight scrape")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.ScrapedMetadata), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ClearCache implements Scraper.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.log.Info("Scrape cache cleared")
}

// CacheSize implements Scraper.
func (s *Service) CacheSize() int {
	return s.cache.Len()
}

// Close releases the fetcher.
func (s *Service) Close() error {
	return s.fetcher.Close()
}

func (s *Service) run(ctx context.Context, log logrus.FieldLogger, rawURL string, target *url.URL, useCache bool) (*domain.ScrapedMetadata, error) {
	start := s.now()

	log.WithField("state", stateFetching).Info("Attempting to scrape metadata")
	html, err := s.fetch(ctx, rawURL, target)
	if err != nil {
		log.WithError(err).WithField("state", stateFetching).Error("Scrape failed")
		s.metrics.RecordScrape(fetchOutcome(err))
		return nil, err
	}

	log.WithField("state", stateExtracting).Debug("Extracting fields")
	doc, err := s.extractor.Extract(html, rawURL)
	if err != nil {
		log.WithError(err).WithField("state", stateExtracting).Error("Scrape failed")
		s.metrics.RecordScrape(telemetry.OutcomeError)
		return nil, fmt.Errorf("failed to extract metadata: %w", err)
	}
	f := doc.Fields
	mainContent := s.extractor.MainContent(doc)
	pricing := extract.ExtractPricing(doc.HTML)

	log.WithField("state", stateClassifying).Debug("Classifying page")
	input := classify.Fields{
		Title:       f.Title.Original,
		Description: f.Description.Original,
		Keywords:    f.Keywords,
		IsFree:      pricing.Free(),
		HasTrial:    pricing.Trial(),
	}
	tagInput, categoryInput := input, input
	tagInput.Existing = f.Tags
	categoryInput.Existing = f.Categories
	tags := s.tagger.Tags(tagInput)
	categories := s.categorizer.Categories(categoryInput)

	log.WithField("state", stateGenerating).Debug("Generating content")
	generated, err := s.generator.Generate(generate.Input{
		Title:       f.Title.Original,
		Description: f.Description.Original,
		Name:        f.Name,
		Domain:      f.Domain,
		Keywords:    f.Keywords,
		Pricing:     pricing,
	})
	if err != nil {
		log.WithError(err).WithField("state", stateGenerating).Error("Scrape failed")
		s.metrics.RecordScrape(telemetry.OutcomeError)
		return nil, err
	}

	meta := &domain.ScrapedMetadata{
		Title:              f.Title,
		Description:        f.Description,
		OGTitle:            f.OGTitle,
		OGDescription:      f.OGDescription,
		OGImage:            f.OGImage,
		URL:                rawURL,
		Domain:             f.Domain,
		Name:               f.Name,
		Favicon:            f.Favicon,
		Keywords:           f.Keywords,
		Author:             f.Author,
		TwitterCard:        f.TwitterCard,
		TwitterSite:        f.TwitterSite,
		TwitterCreator:     f.TwitterCreator,
		TwitterImage:       f.TwitterImage,
		TwitterTitle:       f.TwitterTitle,
		TwitterDescription: f.TwitterDescription,
		Language:           f.Language,
		ThemeColor:         f.ThemeColor,
		Type:               f.OGType,
		PublishedTime:      f.PublishedTime,
		ModifiedTime:       f.ModifiedTime,
		Tags:               tags,
		Categories:         categories,
		Pricing:            &pricing,
		GeneratedContent:   generated,
		MainContent:        &mainContent,
		ScrapedAt:          s.now(),
	}

	log.WithField("state", stateValidating).Debug("Validating record")
	if err := meta.Validate(); err != nil {
		log.WithError(err).WithField("state", stateValidating).Error("Scrape failed")
		s.metrics.RecordScrape(telemetry.OutcomeInvalid)
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if useCache {
		s.cache.Set(rawURL, meta)
	}
	s.metrics.RecordScrape(telemetry.OutcomeSuccess)
	log.WithFields(logrus.Fields{
		"state":      stateDone,
		"tags":       len(tags),
		"categories": len(categories),
		"duration":   s.now().Sub(start).String(),
	}).Info("Metadata scraping completed successfully")
	return meta, nil
}

// fetch runs the fetcher under the scrape timeout and maps a deadline hit
// to ErrTimeout.
func (s *Service) fetch(ctx context.Context, rawURL string, target *url.URL) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, target.Hostname()); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	html, err := s.fetcher.Fetch(fetchCtx, rawURL)
	s.metrics.ObserveFetch(time.Since(start))

	if err != nil {
		if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return "", fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
		}
		return "", err
	}
	return html, nil
}

// parseTarget accepts only absolute http(s) URLs with a host name.
func parseTarget(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidURL, rawURL)
	}
	return u, nil
}

func fetchOutcome(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return telemetry.OutcomeTimeout
	case errors.Is(err, ErrHTTPStatus), errors.Is(err, ErrNotHTML):
		return telemetry.OutcomeFetchError
	default:
		return telemetry.OutcomeError
	}
}
