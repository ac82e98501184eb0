// Package collection loads and filters the per-collection package
// configuration that drives version tracking.
//
// A collection is a single file in the toleo config directory mapping
// package names to their upstream scrape rules and repo query rules.
// Collections are YAML by default, with TOML accepted as an alternate
// format. The file's key order is preserved so reports are
// deterministic.
package collection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Error variables for collection loading errors
var (
	// ErrCollectionNotFound is returned when no collection file exists at the resolved path
	ErrCollectionNotFound = errors.New("collection file not found")
	// ErrInvalidCollection is returned when the collection file cannot be parsed
	ErrInvalidCollection = errors.New("invalid collection file")
)

// UpstreamConfig defines how to scrape an upstream page for versions.
type UpstreamConfig struct {
	// URL is the upstream page to fetch
	URL string `yaml:"url" toml:"url"`
	// Pattern is the regex applied to the fetched text (regex parser)
	Pattern string `yaml:"pattern" toml:"pattern"`
	// Parser selects the extraction strategy: "regex" (default), "json", or "html"
	Parser string `yaml:"parser" toml:"parser"`
	// UseHeaders switches the fetch to a HEAD request, matching against
	// the response headers instead of the body
	UseHeaders bool `yaml:"use_headers" toml:"use_headers"`
	// Path is the JSON path to the version field (json parser)
	Path string `yaml:"path" toml:"path"`
	// Selector is a CSS selector for version extraction (html parser)
	Selector string `yaml:"selector" toml:"selector"`
	// XPath is an XPath expression for version extraction (html parser)
	XPath string `yaml:"xpath" toml:"xpath"`
}

// RepoConfig defines the repo side of a package. The URL and parser
// fields are informational: the AUR RPC endpoint is the only repo
// backend, and packages are queried there by name.
type RepoConfig struct {
	URL    string `yaml:"url" toml:"url"`
	Parser string `yaml:"parser" toml:"parser"`
}

// PackageConfig is a single tracked package. Both sides are optional;
// a missing side is reported as "not configured" rather than queried.
type PackageConfig struct {
	Upstream *UpstreamConfig `yaml:"upstream" toml:"upstream"`
	Repo     *RepoConfig     `yaml:"repo" toml:"repo"`
}

// Collection is an ordered set of tracked packages. Names preserves
// the key order of the source file; Packages indexes by name.
type Collection struct {
	Names    []string
	Packages map[string]PackageConfig
}

// Len returns the number of packages in the collection.
func (c *Collection) Len() int {
	return len(c.Names)
}

// Get returns the configuration for a package by name.
func (c *Collection) Get(name string) (PackageConfig, bool) {
	cfg, ok := c.Packages[name]
	return cfg, ok
}

// Filter narrows the collection to packages whose name contains the
// given substring, preserving order. An empty substring is a no-op.
func (c *Collection) Filter(substr string) *Collection {
	if substr == "" {
		return c
	}
	filtered := &Collection{Packages: make(map[string]PackageConfig)}
	for _, name := range c.Names {
		if strings.Contains(name, substr) {
			filtered.Names = append(filtered.Names, name)
			filtered.Packages[name] = c.Packages[name]
		}
	}
	return filtered
}

// ConfigDir returns the toleo config directory, honoring XDG_CONFIG_HOME.
func ConfigDir() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "toleo"), nil
}

// ResolvePath returns the file path for a named collection. When
// overrideDir is empty the platform config directory is used. The
// returned path is the YAML candidate; Load also tries the TOML
// alternate before failing.
func ResolvePath(name, overrideDir string) (string, error) {
	dir := overrideDir
	if dir == "" {
		configDir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		dir = configDir
	}
	return filepath.Join(dir, name+".yaml"), nil
}

// Load reads a named collection, applying the optional name filter.
// A missing collection file is fatal to the caller: the returned error
// wraps ErrCollectionNotFound and names the resolved path.
func Load(name, overrideDir, limit string) (*Collection, error) {
	yamlPath, err := ResolvePath(name, overrideDir)
	if err != nil {
		return nil, err
	}

	var coll *Collection
	switch {
	case fileExists(yamlPath):
		coll, err = loadYAML(yamlPath)
	case fileExists(tomlAlternate(yamlPath)):
		coll, err = loadTOML(tomlAlternate(yamlPath))
	default:
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, yamlPath)
	}
	if err != nil {
		return nil, err
	}

	return coll.Filter(limit), nil
}

func tomlAlternate(yamlPath string) string {
	return strings.TrimSuffix(yamlPath, ".yaml") + ".toml"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// loadYAML parses a YAML collection file. Decoding goes through
// yaml.Node so the mapping's key order survives into Names.
func loadYAML(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCollection, path, err)
	}

	coll := &Collection{Packages: make(map[string]PackageConfig)}
	if len(root.Content) == 0 {
		return coll, nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: top level must be a mapping", ErrInvalidCollection, path)
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		var cfg PackageConfig
		if err := valueNode.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: package %q: %v", ErrInvalidCollection, path, keyNode.Value, err)
		}

		coll.Names = append(coll.Names, keyNode.Value)
		coll.Packages[keyNode.Value] = cfg
	}

	return coll, nil
}

// loadTOML parses a TOML collection file. Key order is recovered from
// the decoder metadata.
func loadTOML(path string) (*Collection, error) {
	var packages map[string]PackageConfig
	meta, err := toml.DecodeFile(path, &packages)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCollection, path, err)
	}

	coll := &Collection{Packages: make(map[string]PackageConfig)}
	seen := make(map[string]bool)
	for _, key := range meta.Keys() {
		// The first segment of every key names the package table
		name := key[0]
		if seen[name] {
			continue
		}
		seen[name] = true
		cfg, ok := packages[name]
		if !ok {
			continue
		}
		coll.Names = append(coll.Names, name)
		coll.Packages[name] = cfg
	}

	return coll, nil
}
