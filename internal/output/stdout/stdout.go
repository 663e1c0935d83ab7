package stdout

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/crimson-sun/trailshift/internal/model"
	"github.com/crimson-sun/trailshift/internal/output"
)

// Option configures a stdout Output.
type Option func(*Output)

// WithTitle prints a ruled heading above table reports.
func WithTitle(title string) Option {
	return func(o *Output) { o.title = title }
}

// WithColor enables ANSI colour in table reports and notices.
func WithColor(on bool) Option {
	return func(o *Output) { o.color = on }
}

// Output writes the rendered report to stdout.
type Output struct {
	format output.Format
	title  string
	color  bool
}

// New creates a stdout Output for the given format.
func New(format output.Format, opts ...Option) *Output {
	o := &Output{format: format}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Output) Write(_ context.Context, summaries []model.DailySummary) error {
	data, err := output.Render(o.format, summaries, o.color)
	if err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	if o.title != "" && o.format == output.Table {
		rule := strings.Repeat("=", 80)
		data = append([]byte(rule+"\n"+o.title+"\n"+rule+"\n"), data...)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) WriteNotice(_ context.Context, msg string) error {
	if _, err := os.Stdout.Write(output.RenderNotice(msg, o.color)); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
