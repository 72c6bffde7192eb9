// Package fdaclient is a thin client for the OpenFDA drug endpoints
// (drug-label and Drugs@FDA). It handles rate limiting, API-key injection
// and the quirk that OpenFDA signals "no matches" with a 404.
package fdaclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/openfda-labs/fdadrugs-api/logging"
	"github.com/openfda-labs/fdadrugs-api/metrics"
)

// DefaultBaseURL is the public OpenFDA API root.
const DefaultBaseURL = "https://api.fda.gov"

const (
	labelPath    = "/drug/label.json"
	drugsFDAPath = "/drug/drugsfda.json"

	defaultLimit = 50
	maxLimit     = 100
)

// ErrNotFound is returned by single-record lookups with no match.
var ErrNotFound = errors.New("no matching record found")

// Client queries the OpenFDA drug endpoints. A zero api key is valid; the
// unauthenticated quota still applies.
type Client struct {
	// BaseURL can be pointed at a test server.
	BaseURL string

	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
}

// New creates a client with the given process-default API key.
func New(apiKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		// 100ms between requests, matching OpenFDA's fair-use guidance
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
		apiKey:  apiKey,
	}
}

// WithAPIKey returns a client using key for subsequent calls. The HTTP
// client and rate limiter are shared so a per-request override does not
// bypass throttling.
func (c *Client) WithAPIKey(key string) *Client {
	if key == "" || key == c.apiKey {
		return c
	}
	clone := *c
	clone.apiKey = key
	return &clone
}

type searchResponse struct {
	Results []map[string]any `json:"results"`
}

// search performs one GET against an OpenFDA endpoint path. A 404 yields an
// empty result set, not an error.
func (c *Client) search(ctx context.Context, path string, params url.Values) ([]map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	reqURL := c.BaseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenFDA request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.FDARequestTotals.WithLabelValues(path, "error").Inc()
		return nil, fmt.Errorf("OpenFDA request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("Failed to close OpenFDA response body", "error", err)
		}
	}()

	metrics.FDARequestTotals.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.FDARequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusNotFound {
		return []map[string]any{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenFDA returned status %d for %s", resp.StatusCode, path)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode OpenFDA response: %w", err)
	}

	return decoded.Results, nil
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
