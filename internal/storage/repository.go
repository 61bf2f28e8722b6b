package storage

import (
	"context"
	"errors"

	"toolscout/internal/domain"
)

// ErrProductNotFound is returned when no product is stored for a URL.
var ErrProductNotFound = errors.New("product not found")

// Repository defines the interface for product catalog storage.
type Repository interface {
	// SaveProduct stores a product, replacing any product with the same URL.
	// A replaced product keeps its original ID.
	SaveProduct(ctx context.Context, product domain.Product) error

	// GetProduct returns the product stored for url or ErrProductNotFound.
	GetProduct(ctx context.Context, url string) (domain.Product, error)

	// ListProducts returns every product, newest first.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// DeleteProduct removes the product for url. Deleting a missing product is not an error.
	DeleteProduct(ctx context.Context, url string) error

	// Close gracefully shuts down the repository connection.
	Close() error
}
