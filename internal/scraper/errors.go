package scraper

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned before any network activity for malformed input.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrTimeout is returned when the fetch exceeds the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrHTTPStatus is matched by every *StatusError.
	ErrHTTPStatus = errors.New("failed to fetch URL")

	// ErrNotHTML is returned when the response is not an HTML document.
	ErrNotHTML = errors.New("URL does not return HTML content")

	// ErrValidation wraps a *domain.ValidationError for a rejected record.
	ErrValidation = errors.New("metadata validation failed")
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s (%d)", ErrHTTPStatus, e.Status, e.Code)
}

// Is makes errors.Is(err, ErrHTTPStatus) hold for any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

func notHTMLError(contentType string) error {
	if contentType == "" {
		contentType = "unknown content type"
	}
	return fmt.Errorf("%w: %s", ErrNotHTML, contentType)
}
