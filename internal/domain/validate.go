package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError describes one failing field of a record.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...interface{}) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the record against the ScrapedMetadata contract and returns
// a *ValidationError when any field is out of contract.
func (m *ScrapedMetadata) Validate() error {
	verr := &ValidationError{}

	u, err := url.Parse(m.URL)
	switch {
	case m.URL == "":
		verr.add("url", "is required")
	case err != nil:
		verr.add("url", "invalid url: %v", err)
	case !u.IsAbs() || u.Host == "":
		verr.add("url", "must be an absolute url")
	}

	if m.Domain == "" {
		verr.add("domain", "is required")
	}
	if m.Name == "" {
		verr.add("name", "is required")
	}
	if len(m.Tags) == 0 {
		verr.add("tags", "must not be empty")
	}
	if len(m.Categories) == 0 {
		verr.add("categories", "must not be empty")
	}

	checkBilingual(verr, "title", &m.Title)
	checkBilingual(verr, "description", &m.Description)
	checkBilingual(verr, "ogTitle", m.OGTitle)
	checkBilingual(verr, "ogDescription", m.OGDescription)
	checkBilingual(verr, "twitterTitle", m.TwitterTitle)
	checkBilingual(verr, "twitterDescription", m.TwitterDescription)
	checkBilingual(verr, "mainContent", m.MainContent)

	if m.Pricing != nil && m.Pricing.PricingModel != "" && !m.Pricing.PricingModel.Valid() {
		verr.add("pricing.pricingModel", "unknown pricing model %q", m.Pricing.PricingModel)
	}

	if g := m.GeneratedContent; g == nil {
		verr.add("generatedContent", "is required")
	} else {
		if len(g.KeyPoints) == 0 {
			verr.add("generatedContent.keyPoints", "must not be empty")
		}
		if len(g.Pros) == 0 {
			verr.add("generatedContent.pros", "must not be empty")
		}
		if len(g.Cons) == 0 {
			verr.add("generatedContent.cons", "must not be empty")
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func checkBilingual(verr *ValidationError, field string, c *BilingualContent) {
	if c == nil {
		return
	}
	if c.Original == "" && c.Secondary != nil {
		verr.add(field, "secondary set without original")
	}
	if c.Original != "" && c.Secondary == nil {
		verr.add(field, "missing secondary translation")
	}
}
