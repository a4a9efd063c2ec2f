package options

import (
	"fmt"
	"os"
)

// Source supplies raw definitions for option names.
type Source interface {
	Lookup(name Name) (string, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(name Name) (string, bool)

// Lookup calls f.
func (f SourceFunc) Lookup(name Name) (string, bool) {
	return f(name)
}

// LookupEnv matches os.LookupEnv and allows injection in tests.
type LookupEnv func(key string) (string, bool)

// EnvSource reads <prefix><NAME> through lookup, defaulting to os.LookupEnv.
// A variable set to the empty string counts as defined.
func EnvSource(prefix string, lookup LookupEnv) Source {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return SourceFunc(func(name Name) (string, bool) {
		return lookup(prefix + string(name))
	})
}

// MapSource is a fixed set of definitions keyed by catalog name.
type MapSource map[Name]string

// Lookup returns the definition for name.
func (m MapSource) Lookup(name Name) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// NewMapSource converts loosely keyed definitions, such as those read from a
// file, into a MapSource. Keys may carry prefix and any letter case. Two keys
// naming the same option are rejected since a map has no order to pick a winner.
func NewMapSource(raw map[string]string, prefix string) (MapSource, error) {
	out := make(MapSource, len(raw))
	seen := make(map[Name]string, len(raw))
	for key, value := range raw {
		name, err := ParseName(key, prefix)
		if err != nil {
			return nil, fmt.Errorf("parse option key: %w", err)
		}
		if prev, ok := seen[name]; ok {
			first, second := prev, key
			if second < first {
				first, second = second, first
			}
			return nil, fmt.Errorf("%w: %q and %q both name %s", ErrDuplicateName, first, second, name)
		}
		seen[name] = key
		out[name] = value
	}
	return out, nil
}
