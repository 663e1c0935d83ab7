// Package extractor folds raw audit records into a per-actor activity ledger.
package extractor

import (
	"fmt"
	"sort"

	"github.com/crimson-sun/trailshift/internal/engine/diag"
	"github.com/crimson-sun/trailshift/internal/engine/identity"
	"github.com/crimson-sun/trailshift/internal/model"
)

// Result is the output of one extraction: the ledger and the tally of what
// was accepted or skipped.
type Result struct {
	Ledger model.Ledger
	Stats  diag.Stats
}

// Extractor normalizes in-scope events into activities.
type Extractor struct {
	actor string
	sink  diag.Sink
}

// New creates an Extractor. A non-empty actor restricts the ledger to that
// actor id. A nil sink discards diagnostics.
func New(actor string, sink diag.Sink) *Extractor {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &Extractor{actor: actor, sink: sink}
}

// skip is the failure side of a per-event outcome.
type skip struct {
	reason diag.SkipReason
	detail string
}

// Extract processes events in order. No single event can fail the run: every
// event either becomes an activity or is tallied under a skip reason.
func (x *Extractor) Extract(events []model.RawEvent) Result {
	res := Result{Ledger: make(model.Ledger), Stats: diag.NewStats()}

	for i, raw := range events {
		res.Stats.Total++
		actor, act, s := x.process(i+1, raw)
		if s != nil {
			res.Stats.Skipped[s.reason]++
			x.sink.Skipped(i+1, s.reason, s.detail)
			continue
		}
		res.Ledger[actor] = append(res.Ledger[actor], act)
		res.Stats.Accepted++
		res.Stats.PerActor[actor]++
		x.sink.Accepted(i+1, actor, act)
	}

	for _, acts := range res.Ledger {
		sort.SliceStable(acts, func(i, j int) bool {
			return acts[i].Timestamp.Before(acts[j].Timestamp)
		})
	}

	x.sink.Finished(res.Stats)
	return res
}

// process evaluates a single event. A panic while handling the event is
// converted into a malformed skip.
func (x *Extractor) process(index int, raw model.RawEvent) (actor string, act model.Activity, s *skip) {
	defer func() {
		if r := recover(); r != nil {
			s = &skip{reason: diag.SkipMalformed, detail: fmt.Sprint(r)}
		}
	}()

	rec, err := model.DecodeRecord(raw)
	if err != nil {
		return "", act, &skip{reason: diag.SkipMalformed, detail: err.Error()}
	}
	x.sink.Seen(index, rec)

	id, ok := identity.Resolve(rec)
	if !ok {
		if id.Kind.InScope() {
			return "", act, &skip{reason: diag.SkipNoActor, detail: "no actor id for " + string(id.Kind)}
		}
		return "", act, &skip{reason: diag.SkipUnsupportedIdentity, detail: string(id.Kind)}
	}

	if x.actor != "" && id.ActorID != x.actor {
		return "", act, &skip{reason: diag.SkipActorFiltered, detail: id.ActorID + " != " + x.actor}
	}

	if rec.EventTime == "" {
		return "", act, &skip{reason: diag.SkipNoTime}
	}
	ts, err := model.ParseEventTime(rec.EventTime)
	if err != nil {
		return "", act, &skip{reason: diag.SkipInvalidTime, detail: err.Error()}
	}

	return id.ActorID, model.Activity{
		Timestamp:       ts,
		EventName:       rec.EventName,
		EventSource:     rec.EventSource,
		SourceIPAddress: rec.SourceIPAddress,
		UserAgent:       rec.UserAgent,
		Region:          rec.AWSRegion,
		IdentityType:    id.Kind,
	}, nil
}
