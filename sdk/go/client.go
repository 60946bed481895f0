// Package mailgateway is a Go client for the email gateway HTTP API.
package mailgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the gateway client.
type Config struct {
	// BaseURL is the root URL of the gateway, e.g. "http://localhost:3001".
	BaseURL string

	// APIKey is sent in the X-API-Key header on protected routes.
	APIKey string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with a 60s timeout is used, which leaves
	// room for the gateway's own transport timeout.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Client is the gateway SDK client.
type Client struct {
	cfg Config
}

// NewClient creates a new gateway client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// Health reports whether the gateway is up and has transport credentials.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", nil, false)
	if err != nil {
		return nil, err
	}

	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("mailgateway: failed to parse health: %w", err)
	}
	return &h, nil
}

// ContactForm submits a contact form to the gateway's configured inbox.
func (c *Client) ContactForm(ctx context.Context, form ContactForm) (*SendResult, error) {
	return c.send(ctx, "/api/contact-form", form)
}

// SendEmail sends a caller-addressed message.
func (c *Client) SendEmail(ctx context.Context, email Email) (*SendResult, error) {
	return c.send(ctx, "/api/send-email", email)
}

// TestEmail asks the gateway to send its startup notification.
func (c *Client) TestEmail(ctx context.Context) (*SendResult, error) {
	return c.send(ctx, "/api/test-email", nil)
}

// TestSMTP verifies SMTP credentials through the gateway without sending.
func (c *Client) TestSMTP(ctx context.Context, settings SMTPSettings) error {
	_, err := c.do(ctx, http.MethodPost, "/api/test-smtp", settings, true)
	return err
}

func (c *Client) send(ctx context.Context, path string, payload interface{}) (*SendResult, error) {
	body, err := c.do(ctx, http.MethodPost, path, payload, true)
	if err != nil {
		return nil, err
	}

	var res SendResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("mailgateway: failed to parse response: %w", err)
	}
	return &res, nil
}

// do sends a request to the gateway and maps error statuses.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, authenticated bool) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("mailgateway: failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("mailgateway: failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if authenticated && c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mailgateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mailgateway: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAPIKeyRequired
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrAPIKeyInvalid
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, parseRateLimit(resp, body)
	case resp.StatusCode >= 400:
		return nil, parseAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func parseRateLimit(resp *http.Response, body []byte) error {
	rl := &RateLimitError{Message: "too many requests"}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != "" {
			rl.Message = env.Error
		}
		rl.Window = env.RetryAfter
	}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		rl.RetryAfter = time.Duration(secs) * time.Second
	}
	return rl
}
