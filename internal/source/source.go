// Package source loads raw audit records from files or object storage.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/crimson-sun/trailshift/internal/model"
)

// ErrNotFound is returned when a log location names nothing loadable.
var ErrNotFound = errors.New("log path not found")

// DefaultPatterns select files inside a directory or prefix.
var DefaultPatterns = []string{"*.json", "*.json.gz"}

// Source loads every audit record reachable from a location.
type Source interface {
	// Load reads all documents at location. Per-document failures are
	// recorded on the Batch; only an unreachable location is an error.
	Load(ctx context.Context, location string) (*Batch, error)
}

// Config holds settings shared by all sources.
type Config struct {
	Patterns []string
	Region   string
	Profile  string
}

// FileError records a document that could not be read or decoded.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// Batch is the flattened, ordered result of loading a location.
type Batch struct {
	Events []model.RawEvent
	Files  int
	Failed []FileError
}

// Add decodes one document and appends its records. A decode failure is
// logged and recorded; it contributes zero events.
func (b *Batch) Add(path string, data []byte) {
	events, err := Decode(data)
	if err != nil {
		b.Fail(path, err)
		return
	}
	b.Files++
	b.Events = append(b.Events, events...)
	slog.Info("loaded", "file", path, "events", len(events), "size", humanize.Bytes(uint64(len(data))))
}

// Fail records a document that could not be used.
func (b *Batch) Fail(path string, err error) {
	slog.Warn("skipping file", "file", path, "error", err)
	b.Failed = append(b.Failed, FileError{Path: path, Err: err})
}
