package options

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is an optional piece of option text. The zero Value is absent,
// which is distinct from a present empty string.
type Value struct {
	text    string
	present bool
}

// Unset returns the absent Value.
func Unset() Value {
	return Value{}
}

// Of returns a present Value holding text as given.
func Of(text string) Value {
	return Value{text: text, present: true}
}

// Get returns the text and whether the option was defined.
func (v Value) Get() (string, bool) {
	return v.text, v.present
}

// IsSet reports whether the option was defined.
func (v Value) IsSet() bool {
	return v.present
}

// Or returns the text, or fallback when the option is absent.
func (v Value) Or(fallback string) string {
	if !v.present {
		return fallback
	}
	return v.text
}

// String renders absent values as <unset> for diagnostics.
func (v Value) String() string {
	if !v.present {
		return "<unset>"
	}
	return v.text
}

// Int parses the text as a base-10 integer.
func (v Value) Int() (int, error) {
	if !v.present {
		return 0, ErrUnset
	}
	n, err := strconv.Atoi(v.text)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid integer %q", ErrMalformed, v.text)
	}
	return n, nil
}

// Bool parses the text with strconv.ParseBool.
func (v Value) Bool() (bool, error) {
	if !v.present {
		return false, ErrUnset
	}
	b, err := strconv.ParseBool(v.text)
	if err != nil {
		return false, fmt.Errorf("%w: invalid boolean %q", ErrMalformed, v.text)
	}
	return b, nil
}

// Strings splits a comma-separated list, with or without surrounding
// parentheses, into trimmed non-empty elements.
func (v Value) Strings() ([]string, error) {
	if !v.present {
		return nil, ErrUnset
	}
	return splitList(v.text), nil
}

// Ints parses a comma-separated list of integers.
func (v Value) Ints() ([]int, error) {
	parts, err := v.Strings()
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer %q", ErrMalformed, part)
		}
		out = append(out, n)
	}
	return out, nil
}

// Floats parses a comma-separated list of numbers.
func (v Value) Floats() ([]float64, error) {
	parts, err := v.Strings()
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrMalformed, part)
		}
		out = append(out, f)
	}
	return out, nil
}

func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if isWrapped(raw) {
		raw = raw[1 : len(raw)-1]
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// stringify turns a raw definition into its token text: surrounding
// whitespace is dropped and interior runs collapse to a single space.
func stringify(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func wrap(text string) string {
	if isWrapped(text) {
		return text
	}
	return "(" + text + ")"
}

// isWrapped reports whether the opening parenthesis at index 0 is closed
// by the final character, so "(1),(2)" is not wrapped.
func isWrapped(text string) bool {
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(text)-1
			}
		}
	}
	return false
}
