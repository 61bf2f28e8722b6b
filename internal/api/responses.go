package api

import "toolscout/internal/domain"

// ScrapeRequest is the body of POST /api/scrape.
type ScrapeRequest struct {
	URL string `json:"url"`

	// UseCache defaults to true when omitted.
	UseCache *bool `json:"useCache"`

	// Save stores the result as a directory product.
	Save bool `json:"save"`
}

// ScrapeResponse is returned by a successful scrape.
type ScrapeResponse struct {
	Metadata *domain.ScrapedMetadata `json:"metadata"`
	Product  *domain.Product         `json:"product,omitempty"`
}

// ProductsResponse lists stored products.
type ProductsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// CacheResponse reports the scrape cache size.
type CacheResponse struct {
	Size int `json:"size"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
