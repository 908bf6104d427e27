package result

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a cursor is built from a nil or empty
	// raw set, or configured with a class that cannot be hydrated.
	ErrInvalidInput = errors.New("result: invalid input")
	// ErrClassNotHydratable is matched by every row-level hydration failure
	// in ObjectByField mode.
	ErrClassNotHydratable = errors.New("result: class not hydratable")
	// ErrResourceClosed is returned by every operation on a freed cursor
	// except Free itself.
	ErrResourceClosed = errors.New("result: resource closed")
	// ErrUnsupportedOperation is returned by the write side of indexed
	// access. Results are read-only.
	ErrUnsupportedOperation = errors.New("result: unsupported operation")
)

// ClassError reports the row whose class could not be resolved to a
// hydratable type. It matches ErrClassNotHydratable with errors.Is and
// unwraps to the registry error.
type ClassError struct {
	Row   int
	Class string
	Err   error
}

func (e *ClassError) Error() string {
	return fmt.Sprintf("result: row %d: class %q not hydratable: %v", e.Row, e.Class, e.Err)
}

func (e *ClassError) Unwrap() error { return e.Err }

func (e *ClassError) Is(target error) bool { return target == ErrClassNotHydratable }
