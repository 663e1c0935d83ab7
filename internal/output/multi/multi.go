package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/trailshift/internal/model"
	"github.com/crimson-sun/trailshift/internal/output"
)

// Multi fans out a report to multiple output.Output implementations.
// If one output fails, the remaining outputs still receive the report.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers the summaries to every wrapped output. Errors are collected
// but do not prevent delivery to subsequent outputs.
func (m *Multi) Write(ctx context.Context, summaries []model.DailySummary) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, summaries); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteNotice delivers msg to every wrapped output.
func (m *Multi) WriteNotice(ctx context.Context, msg string) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.WriteNotice(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
