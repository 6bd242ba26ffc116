package client

import (
	"errors"
	"fmt"
)

// StatusNone is the HTTPError status for requests that never got a response.
const StatusNone = 0

// HTTPError represents a non-2xx HTTP response from the API, or a network
// failure when StatusCode is StatusNone.
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.StatusCode == StatusNone {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsNetwork returns true if err is an HTTPError for a request that got no response.
func IsNetwork(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == StatusNone
	}
	return false
}
