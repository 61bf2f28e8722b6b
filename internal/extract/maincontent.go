package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	// MinContentLength is the text length a candidate container must exceed.
	MinContentLength = 100

	// MaxContentLength caps the returned main content, in characters.
	MaxContentLength = 5000
)

// contentSelectors are tried in order; semantic tags first.
var contentSelectors = []string{
	"article",
	"main",
	".content",
	"#content",
	".post-content",
	".entry-content",
	".article-content",
}

// chromeSelectors are stripped from the body when no container qualifies.
var chromeSelectors = []string{
	"nav", "header", "footer", "aside",
	".nav", ".header", ".footer", ".sidebar",
	"#nav", "#header", "#footer", "#sidebar",
	".navigation", ".menu", ".comments", ".ads", ".advertisement",
}

// LocateMainContent returns the trimmed text of the first content container
// longer than MinContentLength, or the body text with navigation, headers,
// footers, sidebars, menus, comments and ads removed. The result is
// truncated to MaxContentLength characters.
func LocateMainContent(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		candidate := doc.Find(sel).First()
		if candidate.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(candidate.Text())
		if utf8.RuneCountInString(text) > MinContentLength {
			return truncate(text, MaxContentLength)
		}
	}

	// Work on a copy so later stages still see the full document.
	body := doc.Find("body").First().Clone()
	body.Find(strings.Join(chromeSelectors, ", ")).Remove()
	return truncate(strings.TrimSpace(body.Text()), MaxContentLength)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
