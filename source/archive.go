package source

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// ArchiveSource reads the members of a zip archive. The archive has a
// single read position: opening an entry ends the stream of the previously
// opened one, whose further use reports ErrStreamClosed.
//
// The source owns the archive handle and the active cursor; streams only
// name them. The archive is never loaded into memory.
type ArchiveSource struct {
	path    string
	file    io.Closer
	zr      *zip.Reader
	entries []string
	files   map[string]*zip.File

	slot slot
}

// OpenArchive opens the zip archive at path.
func OpenArchive(path string) (*ArchiveSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Op: "open", Path: path, Err: notFoundOrIO(err), Cause: err}
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &SourceError{Op: "open", Path: path, Err: ErrIO, Cause: err}
	}
	a, err := newArchiveSource(path, f, fi.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	a.file = f
	return a, nil
}

// NewArchiveSource reads a zip archive of the given size from r. Closing the
// source does not close r.
func NewArchiveSource(r io.ReaderAt, size int64) (*ArchiveSource, error) {
	return newArchiveSource("", r, size)
}

func newArchiveSource(path string, r io.ReaderAt, size int64) (*ArchiveSource, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &ArchiveError{Op: "open", Archive: path, Err: archiveFailure(err), Cause: err}
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	a := &ArchiveSource{path: path, zr: zr, files: make(map[string]*zip.File, len(zr.File))}
	for _, zf := range zr.File {
		if strings.HasSuffix(zf.Name, "/") || zf.FileInfo().IsDir() {
			continue
		}
		if _, dup := a.files[zf.Name]; dup {
			continue
		}
		a.files[zf.Name] = zf
		a.entries = append(a.entries, zf.Name)
	}
	return a, nil
}

// Path returns the archive path, or "" for archives read from a ReaderAt.
func (a *ArchiveSource) Path() string { return a.path }

// Entries returns the member names in archive order. Directories are
// omitted, and a repeated name is listed once.
func (a *ArchiveSource) Entries() ([]string, error) {
	out := make([]string, len(a.entries))
	copy(out, a.entries)
	return out, nil
}

// Open positions the archive at the start of the named member and returns a
// stream over it, ending any stream opened before.
func (a *ArchiveSource) Open(name string) (*Stream, error) {
	zf, ok := a.files[name]
	if !ok {
		return nil, &ArchiveError{Op: "open", Archive: a.path, Entry: name, Err: ErrEntryNotFound}
	}
	if a.slot.isClosed() {
		return nil, &ArchiveError{Op: "open", Archive: a.path, Entry: name, Err: ErrClosed}
	}
	rc, err := zf.Open()
	if err != nil {
		return nil, &ArchiveError{Op: "open", Archive: a.path, Entry: name, Err: archiveFailure(err), Cause: err}
	}

	s := &Stream{name: name, path: a.path, archive: true, slot: &a.slot}
	c := &cursor{raw: rc, decode: decoderFor(name), closers: []io.Closer{rc}}
	if s.gen, err = a.slot.install(c); err != nil {
		return nil, &ArchiveError{Op: "open", Archive: a.path, Entry: name, Err: err}
	}
	return s, nil
}

// Close ends the active stream and closes the archive file.
func (a *ArchiveSource) Close() error {
	err := a.slot.shutdown()
	if a.file != nil {
		if cerr := a.file.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && err == nil {
			err = cerr
		}
		a.file = nil
	}
	if err != nil {
		return &ArchiveError{Op: "close", Archive: a.path, Err: ErrIO, Cause: err}
	}
	return nil
}

func archiveFailure(err error) error {
	switch {
	case errors.Is(err, zip.ErrFormat), errors.Is(err, zip.ErrAlgorithm), errors.Is(err, zip.ErrChecksum):
		return ErrCorrupt
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return ErrCorrupt
	}
	return classify(err)
}
