package upstream

import (
	"errors"
	"reflect"
	"testing"

	"github.com/carlwgeorge/toleo/internal/collection"
)

func TestRegexParserFindsAllMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		content string
		want    []string
	}{
		{
			name:    "capture group",
			pattern: `v(\d+\.\d+\.\d+)`,
			content: "download v1.4.0 now or v1.3.9 from the archive",
			want:    []string{"1.4.0", "1.3.9"},
		},
		{
			name:    "no capture group uses whole match",
			pattern: `\d+\.\d+\.\d+`,
			content: "1.2.0 then 1.3.0",
			want:    []string{"1.2.0", "1.3.0"},
		},
		{
			name:    "matches in order of appearance",
			pattern: `(\d+\.\d+\.\d+(?:-rc\d+)?)`,
			content: "1.2.0 1.3.0-rc1 1.2.5",
			want:    []string{"1.2.0", "1.3.0-rc1", "1.2.5"},
		},
		{
			name:    "zero matches",
			pattern: `v(\d+\.\d+\.\d+)`,
			content: "no versions here",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := NewParser(&collection.UpstreamConfig{Pattern: tt.pattern})
			if err != nil {
				t.Fatalf("NewParser returned error: %v", err)
			}
			got, err := parser.Extract([]byte(tt.content))
			if err != nil {
				t.Fatalf("Extract returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegexParserInvalidPattern(t *testing.T) {
	_, err := NewParser(&collection.UpstreamConfig{Pattern: `v(\d+`})
	if !errors.Is(err, ErrInvalidRegexPattern) {
		t.Errorf("error = %v, want ErrInvalidRegexPattern", err)
	}
}

func TestRegexParserMissingPattern(t *testing.T) {
	_, err := NewParser(&collection.UpstreamConfig{})
	if !errors.Is(err, ErrMissingPattern) {
		t.Errorf("error = %v, want ErrMissingPattern", err)
	}
}

func TestJSONParser(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    []string
	}{
		{
			name:    "simple field",
			path:    "tag_name",
			content: `{"tag_name": "v2.1.0"}`,
			want:    []string{"v2.1.0"},
		},
		{
			name:    "nested field",
			path:    "info.version",
			content: `{"info": {"version": "3.0.1"}}`,
			want:    []string{"3.0.1"},
		},
		{
			name:    "array index",
			path:    "releases[0].version",
			content: `{"releases": [{"version": "1.1.0"}, {"version": "1.0.0"}]}`,
			want:    []string{"1.1.0"},
		},
		{
			name:    "numeric value",
			path:    "build",
			content: `{"build": 42}`,
			want:    []string{"42"},
		},
		{
			name:    "absent path means no candidates",
			path:    "missing",
			content: `{"tag_name": "v2.1.0"}`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := NewParser(&collection.UpstreamConfig{Parser: "json", Path: tt.path})
			if err != nil {
				t.Fatalf("NewParser returned error: %v", err)
			}
			got, err := parser.Extract([]byte(tt.content))
			if err != nil {
				t.Fatalf("Extract returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJSONParserMalformedDocument(t *testing.T) {
	parser, err := NewParser(&collection.UpstreamConfig{Parser: "json", Path: "version"})
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}
	if _, err := parser.Extract([]byte("not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestHTMLParserSelector(t *testing.T) {
	content := `<html><body>
		<span class="release">1.2.0</span>
		<span class="release">1.3.0</span>
		<span class="other">9.9.9</span>
	</body></html>`

	parser, err := NewParser(&collection.UpstreamConfig{Parser: "html", Selector: "span.release"})
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}
	got, err := parser.Extract([]byte(content))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	want := []string{"1.2.0", "1.3.0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestHTMLParserXPath(t *testing.T) {
	content := `<html><body><ul>
		<li><a href="/dl/1">widget-1.1.0.tar.gz</a></li>
		<li><a href="/dl/2">widget-1.2.0.tar.gz</a></li>
	</ul></body></html>`

	parser, err := NewParser(&collection.UpstreamConfig{
		Parser:  "html",
		XPath:   "//a",
		Pattern: `widget-(\d+\.\d+\.\d+)`,
	})
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}
	got, err := parser.Extract([]byte(content))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	want := []string{"1.1.0", "1.2.0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestHTMLParserRequiresSelectorOrXPath(t *testing.T) {
	_, err := NewParser(&collection.UpstreamConfig{Parser: "html"})
	if !errors.Is(err, ErrNoSelectorOrXPath) {
		t.Errorf("error = %v, want ErrNoSelectorOrXPath", err)
	}
}

func TestInvalidParserType(t *testing.T) {
	_, err := NewParser(&collection.UpstreamConfig{Parser: "xml"})
	if !errors.Is(err, ErrInvalidParserType) {
		t.Errorf("error = %v, want ErrInvalidParserType", err)
	}
}
