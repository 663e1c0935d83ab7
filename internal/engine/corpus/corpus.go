// Package corpus embeds a small audit trail with known summaries for tests.
package corpus

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed trail.json
var trailJSON []byte

//go:embed expected.json
var expectedJSON []byte

// Counts of the embedded trail.
const (
	TotalEvents    = 10
	AcceptedEvents = 6
)

// Expected is one rendered summary row the trail must produce.
type Expected struct {
	Actor    string `json:"actor"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration"`
	Count    int    `json:"count"`
	First    string `json:"first"`
	Last     string `json:"last"`
	IP       string `json:"ip"`
}

// Trail returns a copy of the embedded trail document ({"Records": [...]}).
func Trail() []byte {
	return append([]byte(nil), trailJSON...)
}

// LoadExpected parses the expected summaries in actor, date order.
func LoadExpected() ([]Expected, error) {
	var entries []Expected
	if err := json.Unmarshal(expectedJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse expected.json: %w", err)
	}
	return entries, nil
}
