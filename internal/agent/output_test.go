package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abelbrown/newsagent/internal/model"
)

func TestWriteJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "latest.json")
	entries := []model.Entry{{
		Title:    "S&P <500> rallies",
		Link:     "http://example.com/a?b=1&c=2",
		Summary:  "",
		Date:     "2024-01-01",
		Category: "Other",
		Urgency:  "Medium",
	}}

	if err := WriteJSON(path, entries); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := `[
  {
    "title": "S&P <500> rallies",
    "link": "http://example.com/a?b=1&c=2",
    "summary": "",
    "date": "2024-01-01",
    "category": "Other",
    "urgency": "Medium"
  }
]
`
	if string(data) != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", data, want)
	}
}

func TestWriteJSONOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.json")
	if err := os.WriteFile(path, []byte("old content that is longer than the new one"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteJSON(path, nil); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("expected empty array, got %q", data)
	}
}

func TestSortByDateStable(t *testing.T) {
	entries := []model.Entry{
		{Title: "first", Date: "B"},
		{Title: "second", Date: "A"},
		{Title: "third", Date: "B"},
		{Title: "fourth", Date: "C"},
	}
	SortByDate(entries)

	want := []string{"fourth", "first", "third", "second"}
	for i, title := range want {
		if entries[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, entries[i].Title, title)
		}
	}
}

func TestSortByDateIsLexicographic(t *testing.T) {
	// RFC 1123 weekday prefixes sort before ISO years: a known limitation.
	entries := []model.Entry{
		{Title: "iso", Date: "2024-12-31T00:00:00Z"},
		{Title: "rfc", Date: "Mon, 01 Jan 2024 00:00:00 GMT"},
	}
	SortByDate(entries)

	if entries[0].Title != "rfc" {
		t.Errorf("expected raw string ordering, got %q first", entries[0].Title)
	}
}
