// Package agent runs one batch: fetch every configured feed, parse,
// classify, sort, and write the JSON document.
//
// Feeds are processed strictly one after another. A failing feed is
// reported and skipped; it never aborts the run.
package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abelbrown/newsagent/internal/classify"
	"github.com/abelbrown/newsagent/internal/config"
	"github.com/abelbrown/newsagent/internal/feeds"
	"github.com/abelbrown/newsagent/internal/fetch"
	"github.com/abelbrown/newsagent/internal/logging"
	"github.com/abelbrown/newsagent/internal/model"
	"github.com/abelbrown/newsagent/internal/otel"
)

// Defaults for the command-line surface.
const (
	DefaultMaxItems   = 10
	DefaultOutputPath = "output/latest.json"
)

// Fetcher retrieves a raw feed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configure a run. Zero values fall back to the defaults above,
// except MaxItems where zero means "keep nothing".
type Options struct {
	MaxItems   int
	OutputPath string

	// Fetcher defaults to fetch.NewFetcher(fetch.DefaultTimeout).
	Fetcher Fetcher

	// ErrOut receives one "Feed <url> failed: <msg>" line per failed feed.
	// Defaults to os.Stderr.
	ErrOut io.Writer

	// Events is optional; a nil Logger discards.
	Events *otel.Logger
}

// FeedResult is the outcome of one feed: its entries, or why it failed.
type FeedResult struct {
	URL     string
	Entries []model.Entry
	Err     error
	Dur     time.Duration
}

// OK reports whether the feed succeeded.
func (r FeedResult) OK() bool {
	return r.Err == nil
}

// Result summarizes a completed run.
type Result struct {
	Entries    []model.Entry
	Feeds      []FeedResult
	OutputPath string
}

// Failures returns the failed feed results in fetch order.
func (r *Result) Failures() []FeedResult {
	var failed []FeedResult
	for _, f := range r.Feeds {
		if !f.OK() {
			failed = append(failed, f)
		}
	}
	return failed
}

// Succeeded returns the number of feeds that produced a result.
func (r *Result) Succeeded() int {
	return len(r.Feeds) - len(r.Failures())
}

// Agent wires the pipeline stages together for one configuration.
type Agent struct {
	cfg        *config.Config
	fetcher    Fetcher
	parser     *feeds.Parser
	classifier *classify.Classifier
	maxItems   int
	outPath    string
	errOut     io.Writer
	events     *otel.Logger
}

// New creates an Agent. cfg must already be validated.
func New(cfg *config.Config, opts Options) *Agent {
	a := &Agent{
		cfg:        cfg,
		fetcher:    opts.Fetcher,
		parser:     feeds.NewParser(),
		classifier: classify.New(cfg.Keywords),
		maxItems:   opts.MaxItems,
		outPath:    opts.OutputPath,
		errOut:     opts.ErrOut,
		events:     opts.Events,
	}
	if a.fetcher == nil {
		a.fetcher = fetch.NewFetcher(fetch.DefaultTimeout)
	}
	if a.outPath == "" {
		a.outPath = DefaultOutputPath
	}
	if a.errOut == nil {
		a.errOut = os.Stderr
	}
	return a
}

// Run processes every feed in configuration order and writes the output
// document. The only error it returns is a failure to write that document.
func (a *Agent) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindRunStart, Comp: "agent", Count: len(a.cfg.Feeds)})

	res := &Result{
		Entries:    []model.Entry{},
		Feeds:      make([]FeedResult, 0, len(a.cfg.Feeds)),
		OutputPath: a.outPath,
	}

	for _, url := range a.cfg.Feeds {
		fr := a.processFeed(ctx, url)
		res.Feeds = append(res.Feeds, fr)

		if !fr.OK() {
			a.reportFailure(fr)
			continue
		}
		res.Entries = append(res.Entries, fr.Entries...)
	}

	SortByDate(res.Entries)

	if err := WriteJSON(a.outPath, res.Entries); err != nil {
		a.events.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindOutputError, Comp: "agent", Path: a.outPath, Err: err.Error()})
		return res, err
	}
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindOutputWrite, Comp: "agent", Path: a.outPath, Count: len(res.Entries)})

	if res.Succeeded() == 0 {
		logging.Warn("No feed succeeded", "feeds", len(res.Feeds))
		a.events.Warn(otel.KindRunComplete, "agent", "no feed succeeded")
	}
	logging.Info("Run complete",
		"entries", len(res.Entries),
		"feeds", len(res.Feeds),
		"failed", len(res.Feeds)-res.Succeeded(),
		"duration", time.Since(start))
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindRunComplete, Comp: "agent", Count: len(res.Entries), Dur: time.Since(start)})

	return res, nil
}

// processFeed runs fetch, parse, and classify for a single URL.
func (a *Agent) processFeed(ctx context.Context, url string) FeedResult {
	start := time.Now()
	fr := FeedResult{URL: url}

	a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindFetchStart, Comp: "agent", Feed: url})
	logging.Debug("Fetching feed", "url", url)

	body, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		fr.Err = err
		fr.Dur = time.Since(start)
		a.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindFetchError, Comp: "agent", Feed: url, Err: err.Error(), Dur: fr.Dur})
		return fr
	}

	entries, err := a.parser.Parse(body, a.maxItems)
	if err != nil {
		fr.Err = err
		fr.Dur = time.Since(start)
		a.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindParseError, Comp: "agent", Feed: url, Bytes: len(body), Err: err.Error(), Dur: fr.Dur})
		return fr
	}

	fr.Entries = a.classifier.ClassifyAll(entries)
	fr.Dur = time.Since(start)

	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchComplete, Comp: "agent", Feed: url, Bytes: len(body), Count: len(fr.Entries), Dur: fr.Dur})
	logging.Debug("Feed processed", "url", url, "entries", len(fr.Entries), "bytes", len(body))
	return fr
}

// reportFailure writes the error-stream line for a failed feed. Network
// and parse failures are reported identically.
func (a *Agent) reportFailure(fr FeedResult) {
	fmt.Fprintf(a.errOut, "Feed %s failed: %v\n", fr.URL, fr.Err)
	logging.Warn("Feed failed", "url", fr.URL, "error", fr.Err)
}
