// Package config loads the feed list and keyword lists for a run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config is read from when nothing overrides it.
const DefaultPath = "config.yml"

var (
	// ErrNoFeeds is returned when the document has no usable feed URLs.
	ErrNoFeeds = errors.New("config: no feeds configured")

	// ErrNoKeywords is returned when the keywords mapping is absent.
	ErrNoKeywords = errors.New("config: keywords mapping is required")
)

// Config is the run configuration. Loaded once, never mutated afterwards.
type Config struct {
	// Feeds are fetched in this order.
	Feeds []string `yaml:"feeds"`

	// Keywords maps a category key ("macro", "earn", "tech", "meme", "high")
	// to lowercase substrings.
	Keywords map[string][]string `yaml:"keywords"`
}

// Path returns the config path from NEWSAGENT_CONFIG, or DefaultPath.
func Path() string {
	if p := strings.TrimSpace(os.Getenv("NEWSAGENT_CONFIG")); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads and validates the YAML config at path.
// There is no fallback: any problem is returned to the caller.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document into a normalized, validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the pipeline relies on.
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 {
		return ErrNoFeeds
	}
	for i, u := range c.Feeds {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("config: feed %d has an empty URL", i)
		}
	}
	if c.Keywords == nil {
		return ErrNoKeywords
	}
	return nil
}

// MissingCategories returns the keys from want that have no keyword list.
// A missing list behaves as empty: that category can never match.
func (c *Config) MissingCategories(want ...string) []string {
	var missing []string
	for _, k := range want {
		if _, ok := c.Keywords[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// normalize trims feed URLs and lowercases keywords. Empty keywords are
// dropped since an empty substring matches every headline.
func (c *Config) normalize() {
	for i, u := range c.Feeds {
		c.Feeds[i] = strings.TrimSpace(u)
	}

	for cat, words := range c.Keywords {
		kept := make([]string, 0, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			kept = append(kept, w)
		}
		c.Keywords[cat] = kept
	}
}
