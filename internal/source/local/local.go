// Package local loads audit documents from a file or a directory tree.
package local

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/crimson-sun/trailshift/internal/source"
)

func init() {
	source.Register("file", func(cfg source.Config) (source.Source, error) {
		return New(cfg.Patterns)
	})
}

// Source implements source.Source for the local filesystem.
type Source struct {
	matcher *source.Matcher
}

// New creates a filesystem source selecting directory entries by patterns.
func New(patterns []string) (*Source, error) {
	m, err := source.NewMatcher(patterns)
	if err != nil {
		return nil, fmt.Errorf("local source: %w", err)
	}
	return &Source{matcher: m}, nil
}

// Load reads a single file regardless of its name, or every matching file
// under a directory in lexical path order.
func (s *Source) Load(ctx context.Context, location string) (*source.Batch, error) {
	path := trimScheme(location)
	info, err := os.Stat(path)
	if err != nil || !(info.Mode().IsRegular() || info.IsDir()) {
		return nil, fmt.Errorf("local source: %w: %s", source.ErrNotFound, path)
	}

	b := &source.Batch{}
	if !info.IsDir() {
		s.readFile(b, path)
		return b, nil
	}

	files, err := s.walk(b, path)
	if err != nil {
		return nil, fmt.Errorf("local source: %w", err)
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.readFile(b, f)
	}
	return b, nil
}

// walk lists matching regular files under root. Unreadable subtrees are
// recorded as failures and skipped.
func (s *Source) walk(b *source.Batch, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			b.Fail(p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && s.matcher.Match(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (s *Source) readFile(b *source.Batch, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.Fail(path, err)
		return
	}
	b.Add(path, data)
}

func trimScheme(location string) string {
	const prefix = "file://"
	if len(location) > len(prefix) && location[:len(prefix)] == prefix {
		return location[len(prefix):]
	}
	return location
}
