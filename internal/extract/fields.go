// Package extract pulls structured fields, main content and pricing signals
// out of an HTML document.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"toolscout/internal/domain"
	"toolscout/internal/translate"
)

// RawFields is the flat bag of values read from a page before classification.
type RawFields struct {
	URL    string
	Domain string
	Name   string

	Title       domain.BilingualContent
	Description domain.BilingualContent

	OGTitle       *domain.BilingualContent
	OGDescription *domain.BilingualContent
	OGImage       string
	OGType        string

	TwitterCard        string
	TwitterSite        string
	TwitterCreator     string
	TwitterImage       string
	TwitterTitle       *domain.BilingualContent
	TwitterDescription *domain.BilingualContent

	Author        string
	Keywords      []string
	Language      string
	ThemeColor    string
	PublishedTime string
	ModifiedTime  string
	Favicon       string

	// Tags and Categories found in page markup, before heuristics run.
	Tags       []string
	Categories []string
}

// Document is a parsed page together with the fields read from it.
type Document struct {
	Fields RawFields
	HTML   *goquery.Document
}

const (
	tagSelector      = ".tag, .tags, [data-tag], [data-tags]"
	categorySelector = ".category, .categories, [data-category], [data-categories]"
)

var faviconSelectors = []string{`link[rel="icon"]`, `link[rel="shortcut icon"]`}

// Extractor reads RawFields from HTML.
type Extractor struct {
	wrapper *translate.Wrapper
}

// NewExtractor returns an Extractor that wraps text fields with w.
func NewExtractor(w *translate.Wrapper) *Extractor {
	if w == nil {
		w = translate.NewWrapper(nil)
	}
	return &Extractor{wrapper: w}
}

// Extract parses html and reads every known field. Absent fields are left
// empty; only an unparseable sourceURL or document is an error.
func (e *Extractor) Extract(html, sourceURL string) (*Document, error) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url %q: %w", sourceURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	domainName := domain.DeriveDomain(base)
	f := RawFields{
		URL:    sourceURL,
		Domain: domainName,
		Name:   domain.DeriveName(domainName),

		Title:       e.wrapper.Wrap(strings.TrimSpace(doc.Find("title").First().Text())),
		Description: e.wrapper.Wrap(metaName(doc, "description")),

		OGTitle:       e.wrapper.WrapOptional(metaProperty(doc, "og:title")),
		OGDescription: e.wrapper.WrapOptional(metaProperty(doc, "og:description")),
		OGImage:       metaProperty(doc, "og:image"),
		OGType:        metaProperty(doc, "og:type"),

		TwitterCard:        metaName(doc, "twitter:card"),
		TwitterSite:        metaName(doc, "twitter:site"),
		TwitterCreator:     metaName(doc, "twitter:creator"),
		TwitterImage:       metaName(doc, "twitter:image"),
		TwitterTitle:       e.wrapper.WrapOptional(metaName(doc, "twitter:title")),
		TwitterDescription: e.wrapper.WrapOptional(metaName(doc, "twitter:description")),

		Author:        metaName(doc, "author"),
		Keywords:      splitKeywords(metaName(doc, "keywords")),
		Language:      doc.Find("html").First().AttrOr("lang", ""),
		ThemeColor:    metaName(doc, "theme-color"),
		PublishedTime: metaProperty(doc, "article:published_time"),
		ModifiedTime:  metaProperty(doc, "article:modified_time"),
		Favicon:       favicon(doc, base),

		Tags:       markedText(doc, tagSelector),
		Categories: markedText(doc, categorySelector),
	}

	return &Document{Fields: f, HTML: doc}, nil
}

// MainContent locates the page's primary text and wraps it.
func (e *Extractor) MainContent(d *Document) domain.BilingualContent {
	return e.wrapper.Wrap(LocateMainContent(d.HTML))
}

func metaName(doc *goquery.Document, name string) string {
	return doc.Find(`meta[name="` + name + `"]`).First().AttrOr("content", "")
}

func metaProperty(doc *goquery.Document, property string) string {
	return doc.Find(`meta[property="` + property + `"]`).First().AttrOr("content", "")
}

func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func favicon(doc *goquery.Document, base *url.URL) string {
	for _, sel := range faviconSelectors {
		href := strings.TrimSpace(doc.Find(sel).First().AttrOr("href", ""))
		if href == "" {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			return ""
		}
		return base.ResolveReference(ref).String()
	}
	return ""
}

func markedText(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}
