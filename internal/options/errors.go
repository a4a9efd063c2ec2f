package options

import (
	"errors"
	"fmt"
)

var (
	// ErrUnset is returned by typed accessors when the option has no definition.
	ErrUnset = errors.New("option is not set")
	// ErrMalformed is returned by typed accessors when the text does not parse as the requested shape.
	ErrMalformed = errors.New("option value is malformed")
	// ErrUnknownName is matched by UnknownNameError.
	ErrUnknownName = errors.New("unknown option name")
	// ErrDuplicateName is returned when two keys of one source name the same option.
	ErrDuplicateName = errors.New("option defined more than once")
)

// UnknownNameError reports a key that is not part of the catalog.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown option name %q", e.Name)
}

func (e *UnknownNameError) Is(target error) bool {
	return target == ErrUnknownName
}
