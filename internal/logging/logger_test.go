package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(&buf, "warn"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer func() { Logger = nil }()

	Info("fetched feed", "url", "http://example.com")
	Warn("feed failed", "url", "http://bad.example.com")

	out := buf.String()
	if strings.Contains(out, "fetched feed") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "feed failed") {
		t.Errorf("warn message missing from output: %q", out)
	}
	if !strings.Contains(out, "http://bad.example.com") {
		t.Errorf("key/value pair missing from output: %q", out)
	}
}

func TestInitDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(&buf, ""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer func() { Logger = nil }()

	Warn("should not appear")
	Error("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Error("default level should suppress warnings")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("default level should keep errors")
	}
}

func TestInitInvalidLevel(t *testing.T) {
	if err := Init(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil
	// Must not panic before Init.
	Info("x")
	Debug("x")
	Warn("x")
	Error("x")
}
