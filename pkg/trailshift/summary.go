package trailshift

import "time"

// Summary is one actor's activity on one UTC calendar day.
// This is the stable public type; internal representations may evolve
// independently without breaking consumers.
type Summary struct {
	Actor         string        `json:"user"`
	Date          string        `json:"date"`       // YYYY-MM-DD, UTC
	Start         time.Time     `json:"start_time"` // earliest event of the day
	End           time.Time     `json:"end_time"`   // latest event of the day
	Duration      time.Duration `json:"duration"`
	ActivityCount int           `json:"activity_count"`
	FirstAction   string        `json:"first_action"`
	LastAction    string        `json:"last_action"`
	SourceIP      string        `json:"source_ip,omitempty"` // of the first event
}
