package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/carlwgeorge/toleo/internal/collection"
)

// Error variables for parser errors
var (
	// ErrInvalidParserType is returned when an unknown parser type is configured
	ErrInvalidParserType = errors.New("invalid parser type: must be 'regex', 'json', or 'html'")
	// ErrInvalidRegexPattern is returned when the regex pattern is invalid
	ErrInvalidRegexPattern = errors.New("invalid regex pattern")
	// ErrMissingPattern is returned when the regex parser has no pattern configured
	ErrMissingPattern = errors.New("missing required field: pattern")
	// ErrInvalidJSONPath is returned when the JSON path syntax is invalid
	ErrInvalidJSONPath = errors.New("invalid JSON path syntax")
	// ErrJSONPathNotFound is returned when the JSON path does not exist in the document
	ErrJSONPathNotFound = errors.New("JSON path not found in response")
)

// Parser extracts candidate version strings from fetched content.
// A parser returns every candidate it finds, in order of appearance;
// the resolver selects the maximum. An empty candidate list with a nil
// error means the content held no version, which the resolver reports
// as "not found" rather than as a failure.
type Parser interface {
	Extract(content []byte) ([]string, error)
}

// NewParser creates a parser for the given upstream configuration,
// dispatching on the parser field. An empty parser field selects the
// regex strategy.
func NewParser(cfg *collection.UpstreamConfig) (Parser, error) {
	switch cfg.Parser {
	case "", "regex":
		return newRegexParser(cfg.Pattern)
	case "json":
		if cfg.Path == "" {
			return nil, fmt.Errorf("%w: empty path", ErrInvalidJSONPath)
		}
		return &jsonParser{path: cfg.Path}, nil
	case "html":
		return newHTMLParser(cfg.Selector, cfg.XPath, cfg.Pattern)
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidParserType, cfg.Parser)
	}
}

// regexParser collects all non-overlapping pattern matches. When the
// pattern has a capture group the first group is the candidate,
// otherwise the whole match is.
type regexParser struct {
	pattern *regexp.Regexp
}

func newRegexParser(pattern string) (*regexParser, error) {
	if pattern == "" {
		return nil, ErrMissingPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegexPattern, err)
	}
	return &regexParser{pattern: re}, nil
}

func (p *regexParser) Extract(content []byte) ([]string, error) {
	matches := p.pattern.FindAllSubmatch(content, -1)
	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) > 1 {
			candidates = append(candidates, string(m[1]))
		} else {
			candidates = append(candidates, string(m[0]))
		}
	}
	return candidates, nil
}

// jsonParser extracts a single candidate from a JSON document using a
// dot/bracket path (e.g. "tag_name", "releases[0].version").
type jsonParser struct {
	path string
}

func (p *jsonParser) Extract(content []byte) ([]string, error) {
	var data interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	value, err := navigatePath(data, p.path)
	if err != nil {
		if errors.Is(err, ErrJSONPathNotFound) {
			// Absent path means no version, not a malformed response
			return nil, nil
		}
		return nil, err
	}

	candidate, ok := valueToString(value)
	if !ok {
		return nil, fmt.Errorf("%w: value at path is not a string", ErrJSONPathNotFound)
	}
	return []string{candidate}, nil
}

// navigatePath walks a JSON value along a dot/bracket path.
func navigatePath(data interface{}, path string) (interface{}, error) {
	current := data
	remaining := path

	for remaining != "" {
		remaining = strings.TrimPrefix(remaining, ".")
		if remaining == "" {
			break
		}

		if remaining[0] == '[' {
			closing := strings.Index(remaining, "]")
			if closing == -1 {
				return nil, fmt.Errorf("%w: unclosed bracket", ErrInvalidJSONPath)
			}
			index, err := strconv.Atoi(remaining[1:closing])
			if err != nil || index < 0 {
				return nil, fmt.Errorf("%w: bad array index %q", ErrInvalidJSONPath, remaining[1:closing])
			}
			arr, ok := current.([]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: expected array at index %d", ErrJSONPathNotFound, index)
			}
			if index >= len(arr) {
				return nil, fmt.Errorf("%w: array index %d out of bounds", ErrJSONPathNotFound, index)
			}
			current = arr[index]
			remaining = remaining[closing+1:]
			continue
		}

		end := len(remaining)
		for i, c := range remaining {
			if c == '.' || c == '[' {
				end = i
				break
			}
		}
		field := remaining[:end]
		if field == "" {
			return nil, fmt.Errorf("%w: empty field name", ErrInvalidJSONPath)
		}

		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: expected object at %q", ErrJSONPathNotFound, field)
		}
		value, exists := obj[field]
		if !exists {
			return nil, fmt.Errorf("%w: field %q not found", ErrJSONPathNotFound, field)
		}
		current = value
		remaining = remaining[end:]
	}

	return current, nil
}

// valueToString converts a JSON leaf value to a version candidate.
func valueToString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10), true
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return "", false
	}
}
