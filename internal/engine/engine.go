package engine

import (
	"errors"

	"github.com/crimson-sun/trailshift/internal/engine/aggregator"
	"github.com/crimson-sun/trailshift/internal/engine/diag"
	"github.com/crimson-sun/trailshift/internal/engine/extractor"
	"github.com/crimson-sun/trailshift/internal/model"
)

// ErrNoActivity is returned when no event survived extraction, either because
// none was in scope or because the actor filter matched nothing.
var ErrNoActivity = errors.New("no matching activity")

// Report is the outcome of one engine run.
type Report struct {
	Summaries []model.DailySummary
	Stats     diag.Stats
	Actors    int
}

// Engine orchestrates the extract → aggregate pipeline.
type Engine struct {
	extractor *extractor.Extractor
}

// New creates an Engine. actor optionally restricts the report to one actor id.
func New(actor string, sink diag.Sink) *Engine {
	return &Engine{extractor: extractor.New(actor, sink)}
}

// Process turns raw events into daily summaries. The returned Report always
// carries the extraction stats, even alongside ErrNoActivity.
func (e *Engine) Process(events []model.RawEvent) (Report, error) {
	res := e.extractor.Extract(events)
	rep := Report{Stats: res.Stats, Actors: len(res.Ledger)}
	if len(res.Ledger) == 0 {
		return rep, ErrNoActivity
	}
	rep.Summaries = aggregator.Aggregate(res.Ledger)
	return rep, nil
}
