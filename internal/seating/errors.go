package seating

import (
	"errors"
	"fmt"

	"github.com/iliyamo/banquet-seating/internal/identity"
)

var (
	// ErrStoreUnavailable marks a guest store that could not be read.
	// Callers substitute an empty collection and surface a warning.
	ErrStoreUnavailable = errors.New("guest store unavailable")

	// ErrStoreWrite marks a failed save.  The mutation that produced the
	// collection is not committed.
	ErrStoreWrite = errors.New("guest store write failed")

	// ErrMalformedRow marks a stored value that could not be parsed and
	// was coerced to its zero value.
	ErrMalformedRow = errors.New("malformed guest row")

	// ErrOutOfRange is the resolver's range error, re-exported so action
	// code needs only this package to classify failures.
	ErrOutOfRange = identity.ErrOutOfRange
)

// StoreError is returned by guest stores.  Kind is ErrStoreUnavailable
// or ErrStoreWrite; Err is the underlying cause.
type StoreError struct {
	Kind error
	Op   string // load | save
	Path string // file, sheet or table the store is bound to
	Err  error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the classification and the cause to errors.Is.
func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Unavailable wraps a load failure.
func Unavailable(path string, err error) error {
	return &StoreError{Kind: ErrStoreUnavailable, Op: "load", Path: path, Err: err}
}

// WriteFailed wraps a save failure.
func WriteFailed(path string, err error) error {
	return &StoreError{Kind: ErrStoreWrite, Op: "save", Path: path, Err: err}
}

// MalformedValue describes one coerced field.
type MalformedValue struct {
	Line   int
	Column string
	Value  string
}

func (m MalformedValue) Error() string {
	return fmt.Sprintf("%v: line %d column %s value %q", ErrMalformedRow, m.Line, m.Column, m.Value)
}

func (m MalformedValue) Unwrap() error { return ErrMalformedRow }
