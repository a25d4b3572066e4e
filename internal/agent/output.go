package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/abelbrown/newsagent/internal/model"
)

// SortByDate orders entries by their raw date string, newest first.
//
// The comparison is lexicographic, not chronological: feeds that use
// different date formats interleave unpredictably. Equal dates keep their
// collection order.
func SortByDate(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

// WriteJSON writes entries as a 2-space indented JSON array, creating the
// containing directory and overwriting any existing file.
func WriteJSON(path string, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
