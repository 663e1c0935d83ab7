package source

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Matcher selects document names by glob patterns applied to the base name.
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles patterns. An empty list selects DefaultPatterns.
func NewMatcher(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	m := &Matcher{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether the base name of name matches any pattern.
// Both "/" and OS separators are treated as path separators.
func (m *Matcher) Match(name string) bool {
	base := path.Base(filepath.ToSlash(name))
	for _, g := range m.globs {
		if g.Match(base) {
			return true
		}
	}
	return false
}
