// Package otel records a run as a stream of typed events.
//
// Events are serialized as JSONL lines by an asynchronous writer, so an
// operator can replay what happened to each feed after the batch exits.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event.
// Dot-delimited: "<stage>.<action>".
type EventKind string

const (
	KindConfigLoad  EventKind = "config.load"
	KindConfigError EventKind = "config.error"

	KindRunStart    EventKind = "run.start"
	KindRunComplete EventKind = "run.complete"

	KindFetchStart    EventKind = "fetch.start"
	KindFetchComplete EventKind = "fetch.complete"
	KindFetchError    EventKind = "fetch.error"

	KindParseError EventKind = "parse.error"

	KindOutputWrite EventKind = "output.write"
	KindOutputError EventKind = "output.error"
)

// Event is the universal record. Every field except Kind and Time is
// optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time     `json:"t"`
	Level     Level         `json:"level,omitempty"`
	Kind      EventKind     `json:"kind"`
	Comp      string        `json:"comp,omitempty"` // "agent", "main"
	SessionID string        `json:"session_id,omitempty"`
	Dur       time.Duration `json:"-"`
	DurMs     float64       `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Count     int           `json:"count,omitempty"`
	Feed      string        `json:"feed,omitempty"`
	Bytes     int           `json:"bytes,omitempty"`
	Path      string        `json:"path,omitempty"`
	Err       string        `json:"err,omitempty"`
	Msg       string        `json:"msg,omitempty"`
}

// MarshalJSON implements json.Marshaler, converting Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	a := struct {
		Alias
	}{Alias: Alias(e)}
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
