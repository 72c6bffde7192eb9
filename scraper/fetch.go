// Package scraper retrieves and parses FDA web resources that have no API:
// Orange Book patent pages, advisory-committee meeting pages and the
// guidance-document feed. Parsing is separated from fetching so every
// parser can be exercised against static fixtures.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/charmap"

	"github.com/openfda-labs/fdadrugs-api/logging"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36"

// Fetcher performs the HTTP legwork shared by all scrapers.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher wires an HTTP client; nil gets a 30s-timeout default.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{httpClient: client}
}

// get downloads a URL with browser-like headers. accept lets JSON feeds and
// HTML pages advertise the right content type.
func (f *Fetcher) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if accept == "application/json, text/javascript, */*; q=0.01" {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "url", rawURL, "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}
	return body, nil
}

// fetchDocument downloads an HTML page and parses it. FDA serves a mix of
// UTF-8 and ISO-8859-1 pages, so non-UTF-8 bodies are decoded first.
func (f *Fetcher) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := f.get(ctx, rawURL, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, err
	}

	var reader io.Reader = bytes.NewReader(body)
	if !utf8.Valid(body) {
		reader = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(body))
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document from %s: %w", rawURL, err)
	}
	return doc, nil
}

// fetchJSON downloads a JSON feed endpoint.
func (f *Fetcher) fetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	return f.get(ctx, rawURL, "application/json, text/javascript, */*; q=0.01")
}
