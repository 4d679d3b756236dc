package synthpop

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("dataset not found")
	ErrUnrecognizedFormat = errors.New("unrecognized dataset format")
	ErrInvalidOption      = errors.New("invalid option")
)

// OpenError reports why a dataset could not be opened. Err is one of
// ErrNotFound, ErrUnrecognizedFormat, ErrInvalidOption, or the source
// sentinel (source.ErrIO, source.ErrCorrupt) of a failed source open.
type OpenError struct {
	Path  string
	Err   error
	Cause error
}

func (e *OpenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("synthpop: open %s: %v: %v", e.Path, e.Err, e.Cause)
	}
	return fmt.Sprintf("synthpop: open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// EntryError locates a failure while reading records. Line is the row that
// did not decode, or 0 when the entry itself could not be opened or read.
type EntryError struct {
	Entry string
	Line  int
	Err   error
}

func (e *EntryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("synthpop: %s:%d: %v", e.Entry, e.Line, e.Err)
	}
	return fmt.Sprintf("synthpop: %s: %v", e.Entry, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }
