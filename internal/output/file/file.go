package file

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/crimson-sun/trailshift/internal/model"
	"github.com/crimson-sun/trailshift/internal/output"
)

const bufSize = 64 * 1024 // 64KB

// Option configures a file Output.
type Option func(*Output)

// WithAppend appends to an existing file instead of truncating it.
func WithAppend() Option {
	return func(o *Output) { o.flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND }
}

// Output writes the rendered report to a file with buffered I/O.
// The file is opened on the first write, so a run that fails before
// reporting leaves any previous report untouched. Reports never carry colour.
type Output struct {
	w       *bufio.Writer
	f       *os.File
	mu      sync.Mutex
	path    string
	format  output.Format
	flags   int
	written int64
}

// New prepares a file output at path. The parent directory must exist.
func New(path string, format output.Format, opts ...Option) (*Output, error) {
	o := &Output{
		path:   path,
		format: format,
		flags:  os.O_CREATE | os.O_WRONLY | os.O_TRUNC,
	}
	for _, opt := range opts {
		opt(o)
	}
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("file output: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("file output: %s is not a directory", dir)
	}
	return o, nil
}

// Write renders the summaries and buffers them for the file.
func (o *Output) Write(_ context.Context, summaries []model.DailySummary) error {
	data, err := output.Render(o.format, summaries, false)
	if err != nil {
		return fmt.Errorf("file output: %w", err)
	}
	return o.write(data)
}

// WriteNotice writes msg in place of a report.
func (o *Output) WriteNotice(_ context.Context, msg string) error {
	return o.write(output.RenderNotice(msg, false))
}

func (o *Output) write(data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.f == nil {
		f, err := os.OpenFile(o.path, o.flags, 0644)
		if err != nil {
			return fmt.Errorf("file output: open %s: %w", o.path, err)
		}
		o.f = f
		o.w = bufio.NewWriterSize(f, bufSize)
	}
	n, err := o.w.Write(data)
	o.written += int64(n)
	if err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	return nil
}

// Close flushes the buffer and closes the file. It does nothing when
// nothing was written.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.f == nil {
		return nil
	}
	if err := o.w.Flush(); err != nil {
		o.f.Close()
		return fmt.Errorf("file output: flush: %w", err)
	}
	if err := o.f.Close(); err != nil {
		return fmt.Errorf("file output: close: %w", err)
	}
	slog.Info("report saved", "path", o.path, "size", humanize.Bytes(uint64(o.written)))
	return nil
}
