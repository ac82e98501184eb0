package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/carlwgeorge/toleo/internal/common/httpclient"
)

// Scraper fetches the raw text that version candidates are extracted from.
type Scraper struct {
	client *httpclient.Client
}

// NewScraper creates a scraper using the given HTTP client.
func NewScraper(client *httpclient.Client) *Scraper {
	return &Scraper{client: client}
}

// Scrape fetches the content of a URL. With useHeaders set it issues a
// HEAD request and returns the response headers flattened into
// "Name: value" lines; otherwise it issues a GET and returns the body.
func (s *Scraper) Scrape(ctx context.Context, url string, useHeaders bool) ([]byte, error) {
	if useHeaders {
		return s.scrapeHeaders(ctx, url)
	}
	return s.scrapeBody(ctx, url)
}

func (s *Scraper) scrapeBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}

func (s *Scraper) scrapeHeaders(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.client.Head(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching headers of %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching headers of %s: status %d", url, resp.StatusCode)
	}

	return flattenHeaders(resp.Header), nil
}

// flattenHeaders serializes response headers into a deterministic flat
// text blob that regex patterns can match against. Headers like
// Content-Disposition often carry the versioned file name.
func flattenHeaders(h http.Header) []byte {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		for _, value := range h[name] {
			sb.WriteString(name)
			sb.WriteString(": ")
			sb.WriteString(value)
			sb.WriteString("\n")
		}
	}
	return []byte(sb.String())
}
