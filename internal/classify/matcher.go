// Package classify maps page text onto the directory's tag and category vocabularies.
package classify

import (
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keywordMatcher reports which vocabulary terms occur as substrings of a text
// in a single pass. The underlying automaton keeps per-call state, so calls
// are serialized.
type keywordMatcher struct {
	mu       sync.Mutex
	matcher  *ahocorasick.Matcher
	keywords []string
}

func newKeywordMatcher(keywords []string) *keywordMatcher {
	m := &keywordMatcher{keywords: keywords}
	if len(keywords) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(keywords)
	}
	return m
}

// Matches returns the set of keywords contained in text.
func (m *keywordMatcher) Matches(text string) map[string]bool {
	found := make(map[string]bool)
	if m.matcher == nil || text == "" {
		return found
	}

	m.mu.Lock()
	hits := m.matcher.Match([]byte(text))
	m.mu.Unlock()

	for _, idx := range hits {
		if idx < len(m.keywords) {
			found[m.keywords[idx]] = true
		}
	}
	return found
}

// Fields is the subset of page data the classifiers look at.
type Fields struct {
	Title       string
	Description string
	Keywords    []string

	// Existing tags or categories found in the page markup.
	Existing []string

	IsFree   bool
	HasTrial bool
}

// blob joins title, description and keywords into one lower-cased string.
// Casers carry state, so one is built per call.
func blob(f Fields) string {
	return cases.Lower(language.Und).String(f.Title + " " + f.Description + " " + strings.Join(f.Keywords, " "))
}

// appendUnique appends items not yet in seen, preserving first-seen order.
func appendUnique(out []string, seen map[string]bool, items ...string) []string {
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
