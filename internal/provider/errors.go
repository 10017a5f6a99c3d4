package provider

import "fmt"

// APIError is a non-2xx response from a provider endpoint.
type APIError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Provider, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Provider, e.Endpoint, e.StatusCode)
}

// RateLimitError indicates the provider rejected the call due to quota,
// either via HTTP 429 or an in-band notice inside a 200 body.
type RateLimitError struct {
	Provider string
	Message  string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limit: %s", e.Provider, e.Message)
}
