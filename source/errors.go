package source

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrIO           = errors.New("i/o failure")
	ErrCorrupt      = errors.New("corrupt data")
	ErrStreamClosed = errors.New("stream closed")
	ErrClosed       = errors.New("source closed")

	// ErrEntryNotFound also matches ErrNotFound.
	ErrEntryNotFound = fmt.Errorf("archive entry %w", ErrNotFound)
)

// SourceError reports a filesystem failure. Err is ErrNotFound, ErrIO,
// ErrCorrupt (a compressed file that failed to decode), ErrStreamClosed or
// ErrClosed; Cause is the underlying error, if any.
type SourceError struct {
	Op    string
	Path  string
	Err   error
	Cause error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source: %s %s: %v: %v", e.Op, e.Path, e.Err, e.Cause)
	}
	return fmt.Sprintf("source: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SourceError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// ArchiveError reports a failure inside an archive. Err is ErrEntryNotFound,
// ErrCorrupt, ErrIO, ErrStreamClosed or ErrClosed.
type ArchiveError struct {
	Op      string
	Archive string
	Entry   string
	Err     error
	Cause   error
}

func (e *ArchiveError) Error() string {
	where := e.Archive
	if e.Entry != "" {
		where += ":" + e.Entry
	}
	if e.Cause != nil {
		return fmt.Sprintf("archive: %s %s: %v: %v", e.Op, where, e.Err, e.Cause)
	}
	return fmt.Sprintf("archive: %s %s: %v", e.Op, where, e.Err)
}

func (e *ArchiveError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// classify maps a read failure to ErrIO when the filesystem produced it and
// to ErrCorrupt when a decoder did.
func classify(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) || errors.Is(err, fs.ErrClosed) {
		return ErrIO
	}
	return ErrCorrupt
}

func notFoundOrIO(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return ErrIO
}
