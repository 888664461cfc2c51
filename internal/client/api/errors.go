package api

import (
	"errors"
	"fmt"
)

var (
	// ErrBaseURLMissing is returned when no API base URL is configured.
	ErrBaseURLMissing = errors.New("api base url is not set")

	// ErrMalformedResponse is returned when a response body matches none of
	// the shapes the server is known to produce.
	ErrMalformedResponse = errors.New("malformed api response")
)

// APIError reports a non-2xx HTTP response. Message carries the response
// body text when the server provided one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: %d", e.Status)
}
