package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a directory entry created from a scrape.
type Product struct {
	// ID is assigned when the product is first built.
	ID string `json:"id"`

	// URL is the product website and the unique key in storage.
	URL string `json:"url"`

	Codename    string   `json:"codename"`
	Punchline   string   `json:"punchline"`
	Description string   `json:"description"`
	LogoURL     string   `json:"logo_url,omitempty"`
	Tags        []string `json:"tags"`
	Labels      []string `json:"labels"`
	Categories  []string `json:"categories"`

	// SubmittedBy is the Telegram user ID of the submitter, 0 for API submissions.
	SubmittedBy int64 `json:"submitted_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Metadata *ScrapedMetadata `json:"metadata,omitempty"`
}

// Tags every scraped product carries before classification is merged in.
var defaultProductTags = []string{"ai-tool", "scraped"}

const defaultLabel = "unlabeled"

// NewProduct maps a scrape result onto a directory product.
func NewProduct(meta *ScrapedMetadata, submittedBy int64) Product {
	punchline := meta.Name
	switch {
	case meta.OGTitle != nil && meta.OGTitle.Original != "":
		punchline = meta.OGTitle.Original
	case meta.Title.Original != "":
		punchline = meta.Title.Original
	}

	description := "AI tool scraped from " + meta.URL
	switch {
	case meta.OGDescription != nil && meta.OGDescription.Original != "":
		description = meta.OGDescription.Original
	case meta.Description.Original != "":
		description = meta.Description.Original
	}

	logo := meta.Favicon
	if meta.OGImage != "" {
		logo = meta.OGImage
	}

	return Product{
		ID:          uuid.NewString(),
		URL:         meta.URL,
		Codename:    meta.Name,
		Punchline:   punchline,
		Description: description,
		LogoURL:     logo,
		Tags:        mergeUnique(defaultProductTags, meta.Tags),
		Labels:      []string{defaultLabel},
		Categories:  append([]string(nil), meta.Categories...),
		SubmittedBy: submittedBy,
		CreatedAt:   time.Now(),
		Metadata:    meta,
	}
}

func mergeUnique(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
