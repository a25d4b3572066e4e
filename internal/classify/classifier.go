// Package classify labels headlines by keyword match.
package classify

import (
	"strings"

	"github.com/abelbrown/newsagent/internal/model"
)

// Category labels written to the output.
const (
	CategoryMacro    = "Macro"
	CategoryEarnings = "Earnings"
	CategoryTech     = "Tech/Trend"
	CategoryMeme     = "Meme/Sentiment"
	CategoryOther    = "Other"
)

// Urgency labels written to the output.
const (
	UrgencyHigh   = "High"
	UrgencyMedium = "Medium"
)

// HighKey is the keyword list that promotes urgency to High.
const HighKey = "high"

// rule maps a config keyword list to the label it assigns.
type rule struct {
	key   string
	label string
}

// rules are tested in order; the first hit wins.
var rules = []rule{
	{"macro", CategoryMacro},
	{"earn", CategoryEarnings},
	{"tech", CategoryTech},
	{"meme", CategoryMeme},
}

// Keys returns every keyword list name the classifier reads, in priority
// order with HighKey last.
func Keys() []string {
	keys := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		keys = append(keys, r.key)
	}
	return append(keys, HighKey)
}

// Categories returns every category label, including CategoryOther.
func Categories() []string {
	labels := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		labels = append(labels, r.label)
	}
	return append(labels, CategoryOther)
}

// Classifier assigns category and urgency. Safe for concurrent use; it
// holds no mutable state after construction.
type Classifier struct {
	keywords map[string][]string
}

// New creates a Classifier over keyword lists keyed by category name.
// Keywords are matched as lowercase substrings. A missing list never matches.
func New(keywords map[string][]string) *Classifier {
	kw := make(map[string][]string, len(keywords))
	for k, words := range keywords {
		lowered := make([]string, 0, len(words))
		for _, w := range words {
			if w = strings.ToLower(w); w != "" {
				lowered = append(lowered, w)
			}
		}
		kw[k] = lowered
	}
	return &Classifier{keywords: kw}
}

// Classify returns e with Category and Urgency attached.
func (c *Classifier) Classify(e model.Entry) model.Entry {
	text := strings.ToLower(e.Title) + " " + strings.ToLower(e.Summary)

	e.Category = CategoryOther
	for _, r := range rules {
		if c.hit(r.key, text) {
			e.Category = r.label
			break
		}
	}

	e.Urgency = UrgencyMedium
	if c.hit(HighKey, text) {
		e.Urgency = UrgencyHigh
	}
	return e
}

// ClassifyAll classifies entries in place and returns the same slice.
func (c *Classifier) ClassifyAll(entries []model.Entry) []model.Entry {
	for i := range entries {
		entries[i] = c.Classify(entries[i])
	}
	return entries
}

func (c *Classifier) hit(key, text string) bool {
	for _, w := range c.keywords[key] {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
