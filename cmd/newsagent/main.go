// Command newsagent fetches the configured news feeds once, tags every
// headline with a category and urgency, and writes the merged result as JSON.
//
// Usage:
//
//	newsagent [--max-items N] [--json-out PATH]
//
// Environment:
//
//	NEWSAGENT_CONFIG     Config file (default: config.yml)
//	NEWSAGENT_LOG_LEVEL  debug, info, warn, error (default: error)
//	NEWSAGENT_EVENTS     Append a JSONL event log for the run to this path
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/abelbrown/newsagent/internal/agent"
	"github.com/abelbrown/newsagent/internal/classify"
	"github.com/abelbrown/newsagent/internal/config"
	"github.com/abelbrown/newsagent/internal/fetch"
	"github.com/abelbrown/newsagent/internal/logging"
	"github.com/abelbrown/newsagent/internal/otel"
	"github.com/abelbrown/newsagent/internal/report"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes one batch and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("newsagent", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxItems := fs.Int("max-items", agent.DefaultMaxItems, "Maximum items kept per feed")
	jsonOut := fs.String("json-out", agent.DefaultOutputPath, "Output JSON file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "newsagent: unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return 2
	}
	if *maxItems < 0 {
		fmt.Fprintf(stderr, "newsagent: --max-items must be >= 0, got %d\n", *maxItems)
		return 2
	}

	if err := logging.Init(stderr, envOrDefault("NEWSAGENT_LOG_LEVEL", logging.DefaultLevel)); err != nil {
		fmt.Fprintf(stderr, "newsagent: %v\n", err)
		return 2
	}

	events, err := openEvents()
	if err != nil {
		logging.Error("Failed to open event log", "error", err)
		return 1
	}
	defer events.Close()
	logging.Debug("Event session", "id", events.SessionID())

	cfgPath := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logging.Error("Configuration error", "path", cfgPath, "error", err)
		events.Error(otel.KindConfigError, "main", err)
		return 1
	}
	if missing := cfg.MissingCategories(classify.Keys()...); len(missing) > 0 {
		logging.Warn("Keyword lists missing, treating as empty", "categories", missing)
		events.Warn(otel.KindConfigLoad, "main", "keyword lists missing: "+strings.Join(missing, ", "))
	}
	logging.Info("Config loaded", "path", cfgPath, "feeds", len(cfg.Feeds))
	events.Info(otel.KindConfigLoad, "main", cfgPath)

	res, err := agent.New(cfg, agent.Options{
		MaxItems:   *maxItems,
		OutputPath: *jsonOut,
		Fetcher:    fetch.NewFetcher(fetch.DefaultTimeout),
		ErrOut:     stderr,
		Events:     events,
	}).Run(ctx)
	if err != nil {
		logging.Error("Failed to write output", "path", *jsonOut, "error", err)
		return 1
	}

	fmt.Fprint(stdout, report.Render(res))
	return 0
}

// openEvents returns the event log named by NEWSAGENT_EVENTS, or a logger
// that discards everything.
func openEvents() (*otel.Logger, error) {
	path := envOrDefault("NEWSAGENT_EVENTS", "")
	if path == "" {
		return otel.NewNullLogger(), nil
	}
	return otel.OpenFile(path)
}
