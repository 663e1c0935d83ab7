package trailshift

import (
	"errors"
	"fmt"
	"io"

	"github.com/crimson-sun/trailshift/internal/engine"
	"github.com/crimson-sun/trailshift/internal/engine/diag"
	"github.com/crimson-sun/trailshift/internal/model"
	"github.com/crimson-sun/trailshift/internal/source"
)

// ErrNoActivity is returned by Analyze when no event in the document is
// attributable to an in-scope actor, or the actor filter matched nothing.
var ErrNoActivity = engine.ErrNoActivity

// Analyze reads one audit document from r and returns per-actor, per-day
// summaries ordered by actor then date. A document with no in-scope
// activity returns ErrNoActivity.
func Analyze(r io.Reader, opts ...Option) ([]Summary, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("trailshift: read: %w", err)
	}
	events, err := source.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("trailshift: %w", err)
	}

	var sink diag.Sink
	if o.logger != nil {
		sink = diag.NewLogger(o.logger)
	}

	rep, err := engine.New(o.actor, sink).Process(events)
	if errors.Is(err, engine.ErrNoActivity) {
		return nil, ErrNoActivity
	}
	if err != nil {
		return nil, fmt.Errorf("trailshift: %w", err)
	}

	out := make([]Summary, len(rep.Summaries))
	for i, s := range rep.Summaries {
		out[i] = summaryFromModel(s)
	}
	return out, nil
}

func summaryFromModel(s model.DailySummary) Summary {
	return Summary{
		Actor:         s.Actor,
		Date:          s.Date,
		Start:         s.StartTime,
		End:           s.EndTime,
		Duration:      s.Duration,
		ActivityCount: s.ActivityCount,
		FirstAction:   s.FirstAction,
		LastAction:    s.LastAction,
		SourceIP:      s.SourceIPAddress,
	}
}
