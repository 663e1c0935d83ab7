package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/crimson-sun/trailshift/internal/engine"
	"github.com/crimson-sun/trailshift/internal/model"
	"github.com/crimson-sun/trailshift/internal/output"
	"github.com/crimson-sun/trailshift/internal/source"
)

// Processor turns raw events into a report. *engine.Engine satisfies it.
type Processor interface {
	Process(events []model.RawEvent) (engine.Report, error)
}

// Result describes a completed run.
type Result struct {
	Files       int
	FailedFiles []source.FileError
	Events      int
	Report      engine.Report
	NoActivity  bool
}

// Pipeline connects a source, engine, and output for one batch run.
// Each stage finishes before the next begins.
type Pipeline struct {
	source    source.Source
	processor Processor
	output    output.Output
	log       *slog.Logger
}

// New creates a Pipeline from the given components.
func New(src source.Source, proc Processor, out output.Output, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		source:    src,
		processor: proc,
		output:    out,
		log:       log,
	}
}

// Run loads location, aggregates it, and writes the report. An empty
// result is delivered as a notice and is not an error.
func (p *Pipeline) Run(ctx context.Context, location string) (Result, error) {
	p.log.Info("loading audit logs", "path", location)
	batch, err := p.source.Load(ctx, location)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline load: %w", err)
	}

	res := Result{Files: batch.Files, FailedFiles: batch.Failed, Events: len(batch.Events)}
	p.log.Info("events loaded",
		"events", humanize.Comma(int64(res.Events)),
		"files", res.Files,
		"failed_files", len(res.FailedFiles))

	p.log.Info("extracting user activity")
	rep, err := p.processor.Process(batch.Events)
	res.Report = rep
	if errors.Is(err, engine.ErrNoActivity) {
		res.NoActivity = true
		p.log.Info("no matching activity",
			"total", rep.Stats.Total,
			"skipped", rep.Stats.SkippedTotal())
		if err := p.output.WriteNotice(ctx, output.NoActivityNotice); err != nil {
			return res, fmt.Errorf("pipeline output: %w", err)
		}
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("pipeline process: %w", err)
	}

	p.log.Info("users found", "actors", rep.Actors, "days", len(rep.Summaries),
		"skipped", humanize.Comma(int64(rep.Stats.SkippedTotal())))
	if err := p.output.Write(ctx, rep.Summaries); err != nil {
		return res, fmt.Errorf("pipeline output: %w", err)
	}
	return res, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
