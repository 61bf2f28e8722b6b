package domain

import (
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// BilingualContent pairs an extracted string with its secondary-language rendering.
type BilingualContent struct {
	// Original is the text as found on the page. Always present, may be empty.
	Original string `json:"original" yaml:"original"`

	// Secondary is set only when a translation ran for a non-empty Original.
	Secondary *string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// GeneratedContent is the templated prose produced for a scraped tool.
type GeneratedContent struct {
	Summary   BilingualContent   `json:"summary" yaml:"summary"`
	Article   BilingualContent   `json:"article" yaml:"article"`
	KeyPoints []BilingualContent `json:"keyPoints" yaml:"keyPoints"`
	Pros      []BilingualContent `json:"pros" yaml:"pros"`
	Cons      []BilingualContent `json:"cons" yaml:"cons"`
}

// PricingModel is the billing model detected on a page.
type PricingModel string

const (
	PricingSubscription PricingModel = "subscription"
	PricingOneTime      PricingModel = "one-time"
	PricingMonthly      PricingModel = "monthly"
	PricingYearly       PricingModel = "yearly"
)

// PricingModels lists the models in detection priority order.
var PricingModels = []PricingModel{PricingSubscription, PricingOneTime, PricingMonthly, PricingYearly}

// Valid reports whether m is one of the known pricing models.
func (m PricingModel) Valid() bool {
	for _, known := range PricingModels {
		if m == known {
			return true
		}
	}
	return false
}

// PricingInfo holds best-effort pricing signals. A nil flag or empty string
// means the signal was not determined.
type PricingInfo struct {
	IsFree       *bool        `json:"isFree,omitempty" yaml:"isFree,omitempty"`
	HasTrial     *bool        `json:"hasTrial,omitempty" yaml:"hasTrial,omitempty"`
	Price        string       `json:"price,omitempty" yaml:"price,omitempty"`
	PricingModel PricingModel `json:"pricingModel,omitempty" yaml:"pricingModel,omitempty"`
}

// Free reports whether the page was detected as free.
func (p PricingInfo) Free() bool { return p.IsFree != nil && *p.IsFree }

// Trial reports whether a trial offer was detected.
func (p PricingInfo) Trial() bool { return p.HasTrial != nil && *p.HasTrial }

// ScrapedMetadata is the record produced for one URL. It is built once per
// scrape and never mutated afterwards.
type ScrapedMetadata struct {
	Title       BilingualContent `json:"title" yaml:"title"`
	Description BilingualContent `json:"description" yaml:"description"`

	OGTitle       *BilingualContent `json:"ogTitle,omitempty" yaml:"ogTitle,omitempty"`
	OGDescription *BilingualContent `json:"ogDescription,omitempty" yaml:"ogDescription,omitempty"`
	OGImage       string            `json:"ogImage,omitempty" yaml:"ogImage,omitempty"`

	URL    string `json:"url" yaml:"url"`
	Domain string `json:"domain" yaml:"domain"`
	Name   string `json:"name" yaml:"name"`

	Favicon  string   `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Author   string   `json:"author,omitempty" yaml:"author,omitempty"`

	TwitterCard        string            `json:"twitterCard,omitempty" yaml:"twitterCard,omitempty"`
	TwitterSite        string            `json:"twitterSite,omitempty" yaml:"twitterSite,omitempty"`
	TwitterCreator     string            `json:"twitterCreator,omitempty" yaml:"twitterCreator,omitempty"`
	TwitterImage       string            `json:"twitterImage,omitempty" yaml:"twitterImage,omitempty"`
	TwitterTitle       *BilingualContent `json:"twitterTitle,omitempty" yaml:"twitterTitle,omitempty"`
	TwitterDescription *BilingualContent `json:"twitterDescription,omitempty" yaml:"twitterDescription,omitempty"`

	Language      string `json:"language,omitempty" yaml:"language,omitempty"`
	ThemeColor    string `json:"themeColor,omitempty" yaml:"themeColor,omitempty"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	PublishedTime string `json:"publishedTime,omitempty" yaml:"publishedTime,omitempty"`
	ModifiedTime  string `json:"modifiedTime,omitempty" yaml:"modifiedTime,omitempty"`

	Tags       []string `json:"tags" yaml:"tags"`
	Categories []string `json:"categories" yaml:"categories"`

	Pricing          *PricingInfo      `json:"pricing,omitempty" yaml:"pricing,omitempty"`
	GeneratedContent *GeneratedContent `json:"generatedContent,omitempty" yaml:"generatedContent,omitempty"`
	MainContent      *BilingualContent `json:"mainContent,omitempty" yaml:"mainContent,omitempty"`

	ScrapedAt time.Time `json:"scrapedAt" yaml:"scrapedAt"`
}

// DeriveDomain returns the lower-cased host of u with a leading "www." removed.
func DeriveDomain(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// DeriveName turns "example.com" into "Example".
func DeriveName(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return label
	}
	return string(unicode.ToUpper(r)) + label[size:]
}
