package options

import "sync"

// Entry pairs an option name with its resolved value.
type Entry struct {
	Name  Name
	Value Value
}

// Set holds one resolved Value per catalog name. It has no mutating
// methods, so it is safe to share between goroutines.
type Set struct {
	values []Value
}

// Resolve builds a Set from sources ordered from highest to lowest
// precedence. A name defined by no source resolves to the absent Value.
func Resolve(sources ...Source) Set {
	values := make([]Value, len(catalog))
	for i, spec := range catalog {
		for _, src := range sources {
			if src == nil {
				continue
			}
			raw, ok := src.Lookup(spec.Name)
			if !ok {
				continue
			}
			text := stringify(raw)
			if spec.Wrapped {
				text = wrap(text)
			}
			values[i] = Of(text)
			break
		}
	}
	return Set{values: values}
}

// Get returns the value for name; unknown names are absent.
func (s Set) Get(name Name) Value {
	i, ok := catalogIndex[name]
	if !ok || i >= len(s.values) {
		return Unset()
	}
	return s.values[i]
}

// Lookup makes a Set usable as a Source.
func (s Set) Lookup(name Name) (string, bool) {
	return s.Get(name).Get()
}

// Entries returns a fresh slice of every option in catalog order.
func (s Set) Entries() []Entry {
	out := make([]Entry, len(catalog))
	for i, spec := range catalog {
		out[i] = Entry{Name: spec.Name, Value: s.Get(spec.Name)}
	}
	return out
}

// Present returns the number of options that have a definition.
func (s Set) Present() int {
	n := 0
	for _, v := range s.values {
		if v.IsSet() {
			n++
		}
	}
	return n
}

var defaultSet = sync.OnceValue(func() Set {
	return Resolve(EnvSource(DefaultEnvPrefix, nil), BuildSource())
})

// Default returns the process-wide Set, resolved on first use from the
// environment and the link-time definitions.
func Default() Set {
	return defaultSet()
}
