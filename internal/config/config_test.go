package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleYAML = `
feeds:
  - https://example.com/a.xml
  - " https://example.com/b.xml "
keywords:
  macro: [Fed, cpi]
  earn: ["eps", ""]
  high: [breaking]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantFeeds := []string{"https://example.com/a.xml", "https://example.com/b.xml"}
	if !reflect.DeepEqual(cfg.Feeds, wantFeeds) {
		t.Errorf("feeds = %v, want %v", cfg.Feeds, wantFeeds)
	}

	if got := cfg.Keywords["macro"]; !reflect.DeepEqual(got, []string{"fed", "cpi"}) {
		t.Errorf("macro keywords = %v, want lowercased", got)
	}
	if got := cfg.Keywords["earn"]; !reflect.DeepEqual(got, []string{"eps"}) {
		t.Errorf("earn keywords = %v, empty keyword should be dropped", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty document", "", ErrNoFeeds},
		{"no feeds", "keywords:\n  macro: [fed]\n", ErrNoFeeds},
		{"no keywords", "feeds: [\"http://x\"]\n", ErrNoKeywords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("feeds: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestParseBlankFeedURL(t *testing.T) {
	_, err := Parse([]byte("feeds: [\"  \"]\nkeywords: {}\n"))
	if err == nil {
		t.Error("expected error for blank feed URL")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Feeds) != 2 {
		t.Errorf("expected 2 feeds, got %d", len(cfg.Feeds))
	}
}

func TestMissingCategories(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	got := cfg.MissingCategories("macro", "earn", "tech", "meme", "high")
	want := []string{"tech", "meme"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingCategories = %v, want %v", got, want)
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("NEWSAGENT_CONFIG", "")
	if got := Path(); got != DefaultPath {
		t.Errorf("Path() = %q, want %q", got, DefaultPath)
	}

	t.Setenv("NEWSAGENT_CONFIG", "/etc/newsagent.yml")
	if got := Path(); got != "/etc/newsagent.yml" {
		t.Errorf("Path() = %q, want env override", got)
	}
}
