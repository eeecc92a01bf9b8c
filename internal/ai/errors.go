package ai

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoAPIKey      = errors.New("ai: api key is required")
	ErrEmptyResponse = errors.New("ai: empty response")
	ErrMalformed     = errors.New("ai: malformed response")
	ErrSuperseded    = errors.New("ai: superseded by a newer request")
	ErrTimeout       = errors.New("ai: request timed out")
)

// APIError is a non-2xx reply from the completions endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai: api error (status %d): %s", e.StatusCode, e.Message)
}

// IsRetryable reports whether err is worth another attempt: rate limits,
// server errors and per-attempt timeouts.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	return errors.Is(err, ErrTimeout)
}
