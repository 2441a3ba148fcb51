package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable is returned when a client lacks credentials.
var ErrUnavailable = errors.New("llm client not available")

// StatusError is a non-2xx response from a provider.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.Code, body)
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Retryable reports whether err is a rate-limit or server-side failure.
func Retryable(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusTooManyRequests || (se.Code >= 500 && se.Code < 600)
}
