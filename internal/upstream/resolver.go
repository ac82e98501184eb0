// Package upstream resolves the latest released version of a package
// from its upstream distribution page.
package upstream

import (
	"context"
	"errors"
	"fmt"

	"github.com/carlwgeorge/toleo/internal/collection"
	"github.com/carlwgeorge/toleo/internal/common/httpclient"
	"github.com/carlwgeorge/toleo/internal/common/logger"
	"github.com/carlwgeorge/toleo/internal/version"
)

// Error variables for resolver errors
var (
	// ErrNotConfigured is returned when a package has no upstream definition
	ErrNotConfigured = errors.New("no upstream configured")
	// ErrNoVersionFound is returned when the page held no version candidates
	ErrNoVersionFound = errors.New("no upstream version found")
)

// Resolver finds the latest upstream version for configured packages.
type Resolver struct {
	scraper *Scraper
	log     *logger.Logger
}

// NewResolver creates a resolver using the given HTTP client.
func NewResolver(client *httpclient.Client) *Resolver {
	return &Resolver{
		scraper: NewScraper(client),
		log:     logger.Default(),
	}
}

// SetLogger overrides the resolver's logger (useful for testing).
func (r *Resolver) SetLogger(l *logger.Logger) {
	r.log = l
}

// Resolve returns the latest version published on a package's upstream
// page, normalized with a "-0" release suffix so it compares against
// repo versions.
//
// A package without an upstream definition yields ErrNotConfigured
// without any network I/O. A page with no version candidates yields
// ErrNoVersionFound; callers render that distinctly instead of
// treating it as a version.
func (r *Resolver) Resolve(ctx context.Context, pkgName string, cfg *collection.UpstreamConfig) (string, error) {
	if cfg == nil || cfg.URL == "" {
		return "", ErrNotConfigured
	}

	parser, err := NewParser(cfg)
	if err != nil {
		return "", fmt.Errorf("package %s: %w", pkgName, err)
	}

	content, err := r.scraper.Scrape(ctx, cfg.URL, cfg.UseHeaders)
	if err != nil {
		return "", fmt.Errorf("package %s: %w", pkgName, err)
	}

	candidates, err := parser.Extract(content)
	if err != nil {
		return "", fmt.Errorf("package %s: %w", pkgName, err)
	}

	// One line per package so concurrent resolves don't interleave.
	r.log.Debug("package %s: url=%s parser=%s use_headers=%t matches=%v",
		pkgName, cfg.URL, parserName(cfg.Parser), cfg.UseHeaders, candidates)

	best := version.Max(candidates)
	if best == "" {
		return "", fmt.Errorf("package %s: %w", pkgName, ErrNoVersionFound)
	}

	return version.WithRelease(best), nil
}

func parserName(p string) string {
	if p == "" {
		return "regex"
	}
	return p
}
