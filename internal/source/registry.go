package source

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Constructor creates a Source from shared settings.
type Constructor func(cfg Config) (Source, error)

// ErrUnknownScheme is returned for a location whose scheme has no source.
var ErrUnknownScheme = errors.New("unknown source scheme")

var registry = map[string]Constructor{}

// Register adds a source constructor under a location scheme.
func Register(scheme string, ctor Constructor) {
	registry[scheme] = ctor
}

// Get returns the constructor registered for scheme.
func Get(scheme string) (Constructor, error) {
	ctor, ok := registry[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownScheme, scheme, strings.Join(Schemes(), ", "))
	}
	return ctor, nil
}

// Schemes returns the registered scheme names in order.
func Schemes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemeOf returns the scheme of a location. Plain paths are "file".
func SchemeOf(location string) string {
	if i := strings.Index(location, "://"); i > 0 {
		return strings.ToLower(location[:i])
	}
	return "file"
}

// Open resolves the source for location.
func Open(location string, cfg Config) (Source, error) {
	ctor, err := Get(SchemeOf(location))
	if err != nil {
		return nil, err
	}
	return ctor(cfg)
}
