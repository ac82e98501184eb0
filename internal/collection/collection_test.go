package collection

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeCollection(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "default.yaml", `
widget:
  upstream:
    url: http://example.test/widget
    pattern: v(\d+\.\d+\.\d+)
  repo:
    url: https://aur.archlinux.org/packages/widget/
gadget:
  upstream:
    url: http://example.test/gadget
    pattern: (\d+\.\d+)
    use_headers: true
`)

	coll, err := Load("default", dir, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := coll.Names; !reflect.DeepEqual(got, []string{"widget", "gadget"}) {
		t.Errorf("Names = %v, want [widget gadget]", got)
	}

	widget, ok := coll.Get("widget")
	if !ok {
		t.Fatal("widget not found")
	}
	if widget.Upstream == nil || widget.Upstream.URL != "http://example.test/widget" {
		t.Errorf("widget upstream = %+v", widget.Upstream)
	}
	if widget.Upstream.Pattern != `v(\d+\.\d+\.\d+)` {
		t.Errorf("widget pattern = %q", widget.Upstream.Pattern)
	}
	if widget.Repo == nil || widget.Repo.URL == "" {
		t.Errorf("widget repo = %+v", widget.Repo)
	}

	gadget, _ := coll.Get("gadget")
	if gadget.Upstream == nil || !gadget.Upstream.UseHeaders {
		t.Errorf("gadget use_headers not set: %+v", gadget.Upstream)
	}
	if gadget.Repo != nil {
		t.Errorf("gadget repo should be nil, got %+v", gadget.Repo)
	}
}

func TestLoadPreservesFileOrder(t *testing.T) {
	dir := t.TempDir()
	// Names chosen to differ from lexicographic order
	writeCollection(t, dir, "default.yaml", `
zebra:
  upstream: {url: "http://z.test", pattern: "(\\d+)"}
apple:
  upstream: {url: "http://a.test", pattern: "(\\d+)"}
mango:
  upstream: {url: "http://m.test", pattern: "(\\d+)"}
`)

	coll, err := Load("default", dir, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(coll.Names, want) {
		t.Errorf("Names = %v, want %v", coll.Names, want)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "extras.toml", `
[widget.upstream]
url = "http://example.test/widget"
pattern = 'v(\d+\.\d+\.\d+)'

[thing.upstream]
url = "http://example.test/thing"
parser = "json"
path = "tag_name"
`)

	coll, err := Load("extras", dir, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !reflect.DeepEqual(coll.Names, []string{"widget", "thing"}) {
		t.Errorf("Names = %v, want [widget thing]", coll.Names)
	}

	thing, _ := coll.Get("thing")
	if thing.Upstream == nil || thing.Upstream.Parser != "json" || thing.Upstream.Path != "tag_name" {
		t.Errorf("thing upstream = %+v", thing.Upstream)
	}
}

func TestLoadYAMLTakesPrecedenceOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "default.yaml", `
fromyaml:
  upstream: {url: "http://y.test", pattern: "(\\d+)"}
`)
	writeCollection(t, dir, "default.toml", `
[fromtoml.upstream]
url = "http://t.test"
pattern = '(\d+)'
`)

	coll, err := Load("default", dir, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if _, ok := coll.Get("fromyaml"); !ok {
		t.Error("YAML collection should win when both formats exist")
	}
}

func TestLoadMissingCollection(t *testing.T) {
	dir := t.TempDir()

	_, err := Load("ghost", dir, "")
	if err == nil {
		t.Fatal("expected error for missing collection")
	}
	if !errors.Is(err, ErrCollectionNotFound) {
		t.Errorf("error = %v, want ErrCollectionNotFound", err)
	}
	wantPath := filepath.Join(dir, "ghost.yaml")
	if !strings.Contains(err.Error(), wantPath) {
		t.Errorf("error %q should name the resolved path %q", err, wantPath)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "bad.yaml", "widget: [not a mapping\n")

	_, err := Load("bad", dir, "")
	if !errors.Is(err, ErrInvalidCollection) {
		t.Errorf("error = %v, want ErrInvalidCollection", err)
	}
}

func TestLimitFilter(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "default.yaml", `
foobar:
  upstream: {url: "http://f.test", pattern: "(\\d+)"}
foo-lib:
  upstream: {url: "http://fl.test", pattern: "(\\d+)"}
baz:
  upstream: {url: "http://b.test", pattern: "(\\d+)"}
`)

	tests := []struct {
		name  string
		limit string
		want  []string
	}{
		{"substring match", "foo", []string{"foobar", "foo-lib"}},
		{"exact match", "baz", []string{"baz"}},
		{"no match yields empty collection", "nothing", nil},
		{"empty limit keeps everything", "", []string{"foobar", "foo-lib", "baz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll, err := Load("default", dir, tt.limit)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if !reflect.DeepEqual(coll.Names, tt.want) {
				t.Errorf("Names = %v, want %v", coll.Names, tt.want)
			}
		})
	}
}

func TestResolvePathUsesOverrideDir(t *testing.T) {
	path, err := ResolvePath("default", "/tmp/custom")
	if err != nil {
		t.Fatalf("ResolvePath returned error: %v", err)
	}
	if path != "/tmp/custom/default.yaml" {
		t.Errorf("path = %q", path)
	}
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir returned error: %v", err)
	}
	if dir != "/tmp/xdg/toleo" {
		t.Errorf("dir = %q, want /tmp/xdg/toleo", dir)
	}
}
