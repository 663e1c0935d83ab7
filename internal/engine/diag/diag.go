// Package diag carries per-event diagnostics out of the extraction fold
// without letting them influence its result.
package diag

import (
	"log/slog"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/crimson-sun/trailshift/internal/model"
)

// SkipReason names why an event did not become an activity.
type SkipReason string

const (
	SkipUnsupportedIdentity SkipReason = "unsupported_identity"
	SkipNoActor             SkipReason = "no_actor"
	SkipActorFiltered       SkipReason = "actor_filtered"
	SkipNoTime              SkipReason = "no_time"
	SkipInvalidTime         SkipReason = "invalid_time"
	SkipMalformed           SkipReason = "malformed"
)

// Stats tallies one extraction run.
type Stats struct {
	Total    int
	Accepted int
	Skipped  map[SkipReason]int
	PerActor map[string]int
}

// NewStats returns zeroed Stats with initialised maps.
func NewStats() Stats {
	return Stats{Skipped: make(map[SkipReason]int), PerActor: make(map[string]int)}
}

// SkippedTotal is the number of events skipped for any reason.
func (s Stats) SkippedTotal() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// Sink receives trace callbacks in event order. Implementations must not
// retain or modify the values they are given.
type Sink interface {
	Seen(index int, rec model.Record)
	Skipped(index int, reason SkipReason, detail string)
	Accepted(index int, actor string, act model.Activity)
	Finished(stats Stats)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Seen(int, model.Record)               {}
func (Nop) Skipped(int, SkipReason, string)      {}
func (Nop) Accepted(int, string, model.Activity) {}
func (Nop) Finished(Stats)                       {}

// Logger traces every decision at debug level. Malformed events are always
// reported at warn level.
type Logger struct {
	log *slog.Logger
}

// NewLogger returns a Logger writing to l, or to slog.Default when l is nil.
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}
	return &Logger{log: l}
}

func (l *Logger) Seen(index int, rec model.Record) {
	typ := ""
	if rec.UserIdentity != nil {
		typ = rec.UserIdentity.Type
	}
	l.log.Debug("event", "index", index, "name", rec.EventName, "identity_type", typ)
}

func (l *Logger) Skipped(index int, reason SkipReason, detail string) {
	if reason == SkipMalformed {
		l.log.Warn("event processing error", "index", index, "error", detail)
		return
	}
	l.log.Debug("skip", "index", index, "reason", string(reason), "detail", detail)
}

func (l *Logger) Accepted(index int, actor string, act model.Activity) {
	l.log.Debug("accept", "index", index, "actor", actor,
		"time", act.Timestamp.Format("2006-01-02T15:04:05Z07:00"), "name", act.EventName)
}

func (l *Logger) Finished(stats Stats) {
	l.log.Debug("extraction stats",
		"total", humanize.Comma(int64(stats.Total)),
		"accepted", humanize.Comma(int64(stats.Accepted)),
		"skipped", humanize.Comma(int64(stats.SkippedTotal())),
		"actors", len(stats.PerActor))

	reasons := make([]string, 0, len(stats.Skipped))
	for r := range stats.Skipped {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		l.log.Debug("skipped events", "reason", r, "count", stats.Skipped[SkipReason(r)])
	}

	actors := make([]string, 0, len(stats.PerActor))
	for a := range stats.PerActor {
		actors = append(actors, a)
	}
	sort.Strings(actors)
	for _, a := range actors {
		l.log.Debug("actor activities", "actor", a, "count", stats.PerActor[a])
	}
}

// Entry is one callback captured by a Recorder.
type Entry struct {
	Kind   string // "seen", "skipped", "accepted"
	Index  int
	Actor  string
	Reason SkipReason
	Detail string
}

// Recorder keeps every callback in memory.
type Recorder struct {
	Entries []Entry
	Final   *Stats
}

func (r *Recorder) Seen(index int, _ model.Record) {
	r.Entries = append(r.Entries, Entry{Kind: "seen", Index: index})
}

func (r *Recorder) Skipped(index int, reason SkipReason, detail string) {
	r.Entries = append(r.Entries, Entry{Kind: "skipped", Index: index, Reason: reason, Detail: detail})
}

func (r *Recorder) Accepted(index int, actor string, _ model.Activity) {
	r.Entries = append(r.Entries, Entry{Kind: "accepted", Index: index, Actor: actor})
}

func (r *Recorder) Finished(stats Stats) {
	r.Final = &stats
}
