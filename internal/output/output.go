package output

import (
	"context"

	"github.com/crimson-sun/trailshift/internal/model"
)

// NoActivityNotice is rendered in place of a report when nothing matched.
const NoActivityNotice = "No matching user activity was found."

// Output defines the interface for report destinations.
type Output interface {
	// Write delivers the full, ordered set of summaries.
	Write(ctx context.Context, summaries []model.DailySummary) error
	// WriteNotice delivers a message that replaces the report.
	WriteNotice(ctx context.Context, msg string) error
	Close() error
}
