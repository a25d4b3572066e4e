// Package model defines the headline record that flows through a run.
package model

// Entry is one normalized headline. The parser fills the first four fields;
// the classifier attaches Category and Urgency exactly once.
//
// Date is kept exactly as the feed wrote it. Formats vary by source.
type Entry struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Summary  string `json:"summary"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Urgency  string `json:"urgency"`
}
