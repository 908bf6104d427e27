package cast

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparsable is returned when a raw value has the right shape but its
	// content cannot be converted, e.g. "abc" for an integer column.
	ErrUnparsable = errors.New("cast: unparsable value")
	// ErrUnsupportedType is returned when the raw Go type has no conversion.
	ErrUnsupportedType = errors.New("cast: unsupported type")
)

// Error records the column and value a conversion failed on.
type Error struct {
	Field string
	Value any
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cast %s (%T): %v", e.Field, e.Value, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
