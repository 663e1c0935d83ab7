package model

import (
	"sort"
	"time"
)

// Activity is the normalized projection of an in-scope audit record.
type Activity struct {
	Timestamp       time.Time
	EventName       string
	EventSource     string
	SourceIPAddress string
	UserAgent       string
	Region          string
	IdentityType    IdentityKind
}

// Ledger maps an actor id to its activities in ascending timestamp order.
// Sequences are never empty.
type Ledger map[string][]Activity

// Actors returns the ledger's actor ids in lexical order.
func (l Ledger) Actors() []string {
	actors := make([]string, 0, len(l))
	for a := range l {
		actors = append(actors, a)
	}
	sort.Strings(actors)
	return actors
}

// Len returns the total number of activities across all actors.
func (l Ledger) Len() int {
	n := 0
	for _, acts := range l {
		n += len(acts)
	}
	return n
}
