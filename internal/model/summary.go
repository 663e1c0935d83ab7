package model

import "time"

// DailySummary is the working window of one actor on one UTC calendar date.
type DailySummary struct {
	Actor           string
	Date            string // YYYY-MM-DD
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	ActivityCount   int
	FirstAction     string
	LastAction      string
	SourceIPAddress string // from the day's first activity
}
