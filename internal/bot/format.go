package bot

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"toolscout/internal/domain"
	"toolscout/internal/scraper"
)

var urlRe = regexp.MustCompile(`https?://[^\s<>"]+`)

// findURL returns the first http(s) URL in text, without trailing punctuation.
func findURL(text string) string {
	return strings.TrimRight(urlRe.FindString(text), ".,;:!?)]}'")
}

// isCommand reports whether text invokes command, optionally addressed as
// command@botname and followed by arguments. "/deleteall" is not "/delete".
func isCommand(text, command string) bool {
	rest, ok := strings.CutPrefix(text, command)
	if !ok {
		return false
	}
	return rest == "" || rest[0] == ' ' || rest[0] == '\n' || rest[0] == '@'
}

// commandArgs returns text after the leading command word.
func commandArgs(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}

func formatProductReply(p domain.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Saved %s\n%s\n", p.Codename, p.URL)
	if p.Metadata != nil && p.Metadata.GeneratedContent != nil {
		fmt.Fprintf(&sb, "\n%s\n", p.Metadata.GeneratedContent.Summary.Original)
	}
	fmt.Fprintf(&sb, "\nTags: %s\n", strings.Join(p.Tags, ", "))
	fmt.Fprintf(&sb, "Categories: %s\n", strings.Join(p.Categories, ", "))
	if p.Metadata != nil && p.Metadata.Pricing != nil {
		fmt.Fprintf(&sb, "Pricing: %s\n", describePricing(*p.Metadata.Pricing))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func describePricing(p domain.PricingInfo) string {
	parts := []string{"paid"}
	if p.Free() {
		parts[0] = "free"
	}
	if p.Trial() {
		parts = append(parts, "free trial")
	}
	if p.Price != "" {
		parts = append(parts, p.Price)
	}
	if p.PricingModel != "" {
		parts = append(parts, string(p.PricingModel))
	}
	return strings.Join(parts, ", ")
}

func formatProductList(products []domain.Product, limit int) string {
	if len(products) == 0 {
		return "The directory is empty. Send me a link to add a tool."
	}
	var sb strings.Builder
	sb.WriteString("Recent tools:\n")
	for i, p := range products {
		if i == limit {
			fmt.Fprintf(&sb, "...and %d more", len(products)-limit)
			break
		}
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, p.Codename, p.URL)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func scrapeFailureMessage(err error) string {
	switch {
	case errors.Is(err, scraper.ErrInvalidURL):
		return "That doesn't look like a valid website address."
	case errors.Is(err, scraper.ErrTimeout):
		return "The site took too long to respond. Try again later."
	case errors.Is(err, scraper.ErrNotHTML):
		return "That link doesn't point to a web page."
	default:
		return "Sorry, I couldn't scrape that site: " + err.Error()
	}
}
