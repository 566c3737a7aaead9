package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// defaultLimit is the number of candidates requested per search.
const defaultLimit = 5

// maxResponseSize bounds the Nominatim response read.
const maxResponseSize = 1 * 1024 * 1024

// ErrNoResults is returned when a search matches nothing.
var ErrNoResults = errors.New("no places found for query")

// Place is a geocoding candidate.
type Place struct {
	// DisplayName is the full human-readable place name.
	DisplayName string

	// Lat and Lon locate the place.
	Lat float64
	Lon float64

	// Type is the Nominatim place type (city, town, village, ...).
	Type string
}

// Client searches Nominatim for places.
//
// Nominatim's usage policy requires a descriptive User-Agent and modest
// request rates; the CLI issues at most one search per profile-add, so no
// throttling layer is needed.
type Client struct {
	// baseURL is the Nominatim instance base URL.
	baseURL string

	// httpClient performs the requests.
	httpClient *http.Client

	// userAgent identifies the CLI per the Nominatim usage policy.
	userAgent string

	// limit is the maximum number of candidates per search.
	limit int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different Nominatim instance.
// Primarily useful for tests and self-hosted instances.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLimit sets the maximum number of candidates per search.
func WithLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a Nominatim search client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  "astromeric-cli/1.0 (+https://github.com/btltech/astromeric-sub000)",
		limit:      defaultLimit,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// nominatimResult is the subset of the jsonv2 response shape we consume.
// Coordinates arrive as strings and are parsed into floats.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
}

// Search returns place candidates for the query, best match first.
// It returns ErrNoResults when nothing matches.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(c.limit))

	endpoint := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	limited := io.LimitReader(resp.Body, maxResponseSize)
	if err := json.NewDecoder(limited).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoResults, query)
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue // Skip candidates with malformed coordinates
		}
		places = append(places, Place{
			DisplayName: r.DisplayName,
			Lat:         lat,
			Lon:         lon,
			Type:        r.Type,
		})
	}

	if len(places) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoResults, query)
	}
	return places, nil
}
