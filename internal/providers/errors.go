package providers

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrProviderUnavailable marks failures reaching or reading from an upstream provider.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrTeamNotFound is returned when no listed team matches the configured name.
	ErrTeamNotFound = errors.New("team not found")
)

// StatusError captures a non-200 response from an upstream provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return ErrProviderUnavailable
}

// Retryable reports whether retrying the same request may succeed.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
