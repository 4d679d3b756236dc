package source

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

const readBufferSize = 64 << 10

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// errStale is returned by slot.with when the caller's generation is no
// longer the active one.
var errStale = errors.New("stale stream")

// cursor is the read position inside one entry: the raw entry reader, the
// decoder layered on it, and the line buffer on top. Decoding starts on the
// first pull, so corrupt data is reported when it is reached rather than
// when the entry is opened.
type cursor struct {
	raw     io.Reader
	decode  decoder
	closers []io.Closer
	br      *bufio.Reader
	done    bool
}

func (c *cursor) start() error {
	if c.br != nil {
		return nil
	}
	r := c.raw
	if c.decode != nil {
		d, err := c.decode(r)
		if err != nil {
			return err
		}
		if cl, ok := d.(io.Closer); ok {
			c.closers = append(c.closers, cl)
		}
		r = d
	}
	c.br = bufio.NewReaderSize(r, readBufferSize)

	b, err := c.br.Peek(len(utf8BOM))
	switch {
	case err == nil && bytes.Equal(b, utf8BOM):
		_, _ = c.br.Discard(len(utf8BOM))
	case err != nil && err != io.EOF:
		return err
	}
	return nil
}

// finish releases the cursor's readers, innermost decoder first.
func (c *cursor) finish() error {
	if c.done {
		return nil
	}
	c.done = true
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// slot owns the single active cursor of a read position. Streams refer to
// it by generation and never hold the cursor themselves: each pull looks the
// cursor up again, so a stream issued under an older generation can only
// observe that it has been superseded.
type slot struct {
	mu     sync.Mutex
	gen    uint64
	cur    *cursor
	closed bool
}

// install finishes the current cursor and makes c the active one.
func (s *slot) install(c *cursor) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		_ = c.finish()
		return 0, ErrClosed
	}
	if s.cur != nil {
		_ = s.cur.finish()
	}
	s.gen++
	s.cur = c
	return s.gen, nil
}

// with runs fn on the cursor of generation gen. Any error from fn, io.EOF
// included, ends the cursor.
func (s *slot) with(gen uint64, fn func(*cursor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen || s.cur == nil || s.cur.done {
		return errStale
	}
	err := fn(s.cur)
	if err != nil {
		_ = s.cur.finish()
	}
	return err
}

// release finishes the cursor of generation gen if it is still active.
func (s *slot) release(gen uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.cur == nil {
		return nil
	}
	err := s.cur.finish()
	s.cur = nil
	return err
}

// idle reports whether the slot has no unfinished cursor.
func (s *slot) idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur == nil || s.cur.done
}

func (s *slot) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// shutdown finishes the active cursor and refuses further installs.
func (s *slot) shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cur == nil {
		return nil
	}
	err := s.cur.finish()
	s.cur = nil
	return err
}

// Stream is a forward-only reader over one entry. It is a small value that
// can be stored and passed around; the readers it pulls from stay with the
// source that issued it.
//
// A stream ends when it returns io.EOF (exactly once), when it is closed, or,
// for archive sources, when another entry is opened on the same archive.
// Further use reports ErrStreamClosed. A decoding failure ends the stream
// with ErrCorrupt.
//
// A UTF-8 byte order mark at the start of the entry is dropped.
type Stream struct {
	name    string
	path    string
	archive bool
	slot    *slot
	gen     uint64

	bytes atomic.Int64
	lines atomic.Int64
}

// Name returns the entry name.
func (s *Stream) Name() string { return s.name }

// BytesRead returns the number of decoded bytes delivered so far.
func (s *Stream) BytesRead() int64 { return s.bytes.Load() }

// Line returns the number of lines returned by NextLine so far.
func (s *Stream) Line() int { return int(s.lines.Load()) }

// NextLine returns the next line without its line ending. At the end of the
// entry it returns io.EOF; a final line without a trailing newline is still
// returned first.
func (s *Stream) NextLine() (string, error) {
	var line string
	err := s.slot.with(s.gen, func(c *cursor) error {
		if err := c.start(); err != nil {
			return err
		}
		text, err := c.br.ReadString('\n')
		if err == io.EOF && text != "" {
			err = nil
		}
		if err != nil {
			return err
		}
		s.bytes.Add(int64(len(text)))
		s.lines.Add(1)
		text = strings.TrimSuffix(text, "\n")
		line = strings.TrimSuffix(text, "\r")
		return nil
	})
	if err != nil {
		return "", s.fail("read", err)
	}
	return line, nil
}

// Read implements io.Reader over the decoded entry bytes.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var n int
	err := s.slot.with(s.gen, func(c *cursor) error {
		if err := c.start(); err != nil {
			return err
		}
		var err error
		n, err = c.br.Read(p)
		s.bytes.Add(int64(n))
		if err == io.EOF && n > 0 {
			err = nil
		}
		return err
	})
	if err != nil {
		return n, s.fail("read", err)
	}
	return n, nil
}

// Close ends the stream. Closing a stream that has already ended is a no-op.
func (s *Stream) Close() error {
	if err := s.slot.release(s.gen); err != nil {
		return s.fail("close", err)
	}
	return nil
}

func (s *Stream) fail(op string, err error) error {
	var sentinel, cause error
	switch {
	case err == io.EOF:
		return io.EOF
	case errors.Is(err, errStale):
		sentinel = ErrStreamClosed
	default:
		sentinel, cause = classify(err), err
	}
	if s.archive {
		return &ArchiveError{Op: op, Archive: s.path, Entry: s.name, Err: sentinel, Cause: cause}
	}
	return &SourceError{Op: op, Path: s.path, Err: sentinel, Cause: cause}
}
