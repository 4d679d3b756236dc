package schema

import (
	"errors"
	"fmt"
)

var (
	ErrFieldCountMismatch   = errors.New("field count mismatch")
	ErrFieldTypeMismatch    = errors.New("field type mismatch")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidSchema        = errors.New("invalid schema")
)

// DecodeError reports why a row could not become a record. Err is one of
// the package sentinels; Cause, when set, is the conversion failure.
type DecodeError struct {
	Err      error
	Field    string // offending field (type mismatch, missing field)
	Raw      string // offending raw value (type mismatch)
	Expected int    // declared field count (count mismatch)
	Actual   int    // field count of the row (count mismatch)
	Cause    error
}

func (e *DecodeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrFieldCountMismatch):
		return fmt.Sprintf("schema: %v: expected %d fields, got %d", e.Err, e.Expected, e.Actual)
	case e.Cause != nil:
		return fmt.Sprintf("schema: field %q: %v %q: %v", e.Field, e.Err, e.Raw, e.Cause)
	case e.Raw != "":
		return fmt.Sprintf("schema: field %q: %v %q", e.Field, e.Err, e.Raw)
	case e.Field != "":
		return fmt.Sprintf("schema: field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("schema: %v", e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}
