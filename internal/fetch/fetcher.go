// Package fetch retrieves raw feed documents over HTTP.
//
// Each call is a single blocking GET. There is no retry and no caching;
// parsing is left to the caller.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every individual request.
const DefaultTimeout = 30 * time.Second

// UserAgent is sent on every request. Several news sites reject the Go
// default client string, so this presents as a desktop browser.
const UserAgent = "Mozilla/5.0 (+https://github.com/abelbrown/newsagent)" +
	" AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124 Safari/537.36"

// Fetcher retrieves feed bodies.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher with the given HTTP client timeout.
// A non-positive timeout means DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: UserAgent,
	}
}

// Fetch issues one GET for url and returns the full response body.
// Any transport error, timeout, or non-2xx status is returned as an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}
