package mailgateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by the SDK.
var (
	// ErrAPIKeyRequired is returned when the gateway saw no API key.
	ErrAPIKeyRequired = errors.New("mailgateway: API key is required")

	// ErrAPIKeyInvalid is returned when the gateway rejected the API key.
	ErrAPIKeyInvalid = errors.New("mailgateway: invalid API key")

	// ErrRateLimited is returned when the caller exceeded the gateway's rate limit.
	// The concrete error is a *RateLimitError.
	ErrRateLimited = errors.New("mailgateway: rate limited")
)

// APIError represents an error response from the gateway.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	// Details is the upstream diagnostic or a field -> reason map
	Details json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("mailgateway: API error %d: %s (%s)", e.StatusCode, e.Message, e.DetailText())
	}
	return fmt.Sprintf("mailgateway: API error %d: %s", e.StatusCode, e.Message)
}

// DetailText returns Details as plain text
func (e *APIError) DetailText() string {
	var s string
	if err := json.Unmarshal(e.Details, &s); err == nil {
		return s
	}
	return string(e.Details)
}

// RateLimitError is returned for 429 responses. It matches ErrRateLimited.
type RateLimitError struct {
	// RetryAfter is parsed from the Retry-After header
	RetryAfter time.Duration
	// Window is the gateway's human-readable window, e.g. "10 minutes"
	Window  string
	Message string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("mailgateway: rate limited: %s (retry after %s)", e.Message, e.RetryAfter)
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// errorEnvelope matches the gateway error body.
type errorEnvelope struct {
	Success    bool            `json:"success"`
	Error      string          `json:"error"`
	Details    json.RawMessage `json:"details,omitempty"`
	RetryAfter string          `json:"retryAfter,omitempty"`
}

func parseAPIError(statusCode int, body []byte) *APIError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    env.Error,
			Details:    env.Details,
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}

// IsAPIError checks whether err is an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
