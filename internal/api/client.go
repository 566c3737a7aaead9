package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Default client settings. These mirror the config package defaults but are
// duplicated here so the client is usable standalone in tests.
const (
	defaultTimeout     = 30 * time.Second
	defaultMaxBodySize = 2 * 1024 * 1024
	defaultUserAgent   = "astromeric-cli/1.0 (+https://github.com/btltech/astromeric-sub000)"
)

// Client talks to the Astromeric backend.
//
// Design decision: We use a struct with a shared http.Client rather than
// package-level functions because:
//  1. Client configuration (base URL, token, timeout) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with httptest servers injected via options
type Client struct {
	// baseURL is the backend base URL without a trailing slash.
	baseURL string

	// httpClient performs the requests. Its transport is wrapped with a
	// header-injecting RoundTripper when a token or extra headers are set.
	httpClient *http.Client

	// token is the bearer token, or empty for anonymous requests.
	token string

	// headers are extra headers injected into every request
	// (per-profile overrides from the config file).
	headers map[string]string

	// userAgent identifies the CLI to the backend.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion from a misbehaving endpoint.
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token for authenticated requests.
// An empty token leaves the client anonymous.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithHeaders sets extra headers injected into every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithHTTPClient replaces the underlying http.Client.
// Primarily useful for tests that need a custom transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the backend at baseURL.
// The base URL should include the scheme (e.g. "https://api.astromeric.app").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Wrap the transport so every request, including redirects, carries
	// the bearer token and configured headers.
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient.Transport = &authTransport{
		base:      base,
		token:     c.token,
		userAgent: c.userAgent,
		headers:   c.headers,
	}

	return c
}

// Authenticated reports whether the client carries a bearer token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// authTransport wraps an http.RoundTripper to inject the Authorization
// header, User-Agent, and any configured extra headers into every request.
type authTransport struct {
	base      http.RoundTripper
	token     string
	userAgent string
	headers   map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clone := req.Clone(req.Context())

	if t.token != "" {
		clone.Header.Set("Authorization", "Bearer "+t.token)
	}
	if t.userAgent != "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}
	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs a JSON request against the backend and decodes the response
// into out. A nil body sends no payload; a nil out discards the response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	// Bound the read regardless of status so a huge error page cannot
	// exhaust memory either.
	limited := io.LimitReader(resp.Body, c.maxBodySize)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, limited)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// statusError builds an *Error from a non-2xx response, extracting the
// backend's message when the body is the conventional error JSON.
func (c *Client) statusError(status int, body io.Reader) error {
	apiErr := &Error{StatusCode: status}

	var eb errorBody
	if err := json.NewDecoder(body).Decode(&eb); err == nil {
		if eb.Error != "" {
			apiErr.Message = eb.Error
		} else if eb.Message != "" {
			apiErr.Message = eb.Message
		}
	}

	return apiErr
}
