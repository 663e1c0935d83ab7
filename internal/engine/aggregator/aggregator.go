// Package aggregator turns a ledger into per-actor, per-day working windows.
//
// Days are UTC calendar dates. Activity that crosses midnight produces one
// summary for each day, each bounded by that day's own first and last event.
package aggregator

import (
	"sort"

	"github.com/crimson-sun/trailshift/internal/model"
)

// DateLayout is the format of DailySummary.Date.
const DateLayout = "2006-01-02"

// Aggregate computes one DailySummary per (actor, date), ordered by actor
// then date. The ledger is not modified.
func Aggregate(ledger model.Ledger) []model.DailySummary {
	var out []model.DailySummary
	for _, actor := range ledger.Actors() {
		out = append(out, aggregateActor(actor, ledger[actor])...)
	}
	return out
}

func aggregateActor(actor string, acts []model.Activity) []model.DailySummary {
	if len(acts) == 0 {
		return nil
	}

	days := make(map[string][]model.Activity)
	var order []string
	for _, a := range acts {
		d := a.Timestamp.UTC().Format(DateLayout)
		if _, ok := days[d]; !ok {
			order = append(order, d)
		}
		days[d] = append(days[d], a)
	}
	sort.Strings(order)

	out := make([]model.DailySummary, 0, len(order))
	for _, d := range order {
		out = append(out, summarize(actor, d, days[d]))
	}
	return out
}

// summarize builds the summary of one non-empty day group.
func summarize(actor, date string, group []model.Activity) model.DailySummary {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Timestamp.Before(group[j].Timestamp)
	})
	first, last := group[0], group[len(group)-1]
	return model.DailySummary{
		Actor:           actor,
		Date:            date,
		StartTime:       first.Timestamp.UTC(),
		EndTime:         last.Timestamp.UTC(),
		Duration:        last.Timestamp.Sub(first.Timestamp),
		ActivityCount:   len(group),
		FirstAction:     first.EventName,
		LastAction:      last.EventName,
		SourceIPAddress: first.SourceIPAddress,
	}
}
