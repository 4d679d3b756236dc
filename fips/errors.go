package fips

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat         = errors.New("invalid format")
	ErrInsufficientPrecision = errors.New("insufficient precision")
	ErrInvalidLevel          = errors.New("invalid level")
	ErrOutOfRange            = errors.New("value out of range")
)

// FormatError describes malformed FIPS text or a request to render a code
// at a precision it does not have. Err is one of the package sentinels.
type FormatError struct {
	Input  string // offending text, or the code's own rendering
	Level  Level  // requested level, when formatting
	Reason string // optional detail, e.g. "unknown state code"
	Err    error
}

func (e *FormatError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("fips: %q: %v: %s", e.Input, e.Err, e.Reason)
	case e.Level != LevelNone:
		return fmt.Sprintf("fips: %q as %s: %v", e.Input, e.Level, e.Err)
	}
	return fmt.Sprintf("fips: %q: %v", e.Input, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
