package source

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DirectorySource reads the regular files of one directory. Streams are
// independent: any number may be open at once.
type DirectorySource struct {
	dir string

	mu     sync.Mutex
	open   map[*slot]struct{}
	closed bool
}

// OpenDirectory returns a source over the files in dir.
func OpenDirectory(dir string) (*DirectorySource, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, &SourceError{Op: "stat", Path: dir, Err: notFoundOrIO(err), Cause: err}
	}
	if !fi.IsDir() {
		return nil, &SourceError{Op: "stat", Path: dir, Err: ErrNotFound, Cause: fs.ErrInvalid}
	}
	return &DirectorySource{dir: dir, open: make(map[*slot]struct{})}, nil
}

// Path returns the directory.
func (d *DirectorySource) Path() string { return d.dir }

// Entries returns the names of the regular files in the directory, sorted by
// name. Symbolic links are followed; subdirectories are not listed.
func (d *DirectorySource) Entries() ([]string, error) {
	des, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, &SourceError{Op: "list", Path: d.dir, Err: notFoundOrIO(err), Cause: err}
	}
	names := make([]string, 0, len(des))
	for _, de := range des {
		if d.regular(de) {
			names = append(names, de.Name())
		}
	}
	return names, nil
}

func (d *DirectorySource) regular(de fs.DirEntry) bool {
	if de.Type().IsRegular() {
		return true
	}
	if de.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(d.dir, de.Name()))
	return err == nil && fi.Mode().IsRegular()
}

// Open opens the named file. Names that are not a plain file name in the
// directory are not found.
func (d *DirectorySource) Open(name string) (*Stream, error) {
	path := filepath.Join(d.dir, name)
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return nil, &SourceError{Op: "open", Path: path, Err: ErrNotFound}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, &SourceError{Op: "open", Path: path, Err: ErrClosed}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Op: "open", Path: path, Err: notFoundOrIO(err), Cause: err}
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &SourceError{Op: "open", Path: path, Err: ErrIO, Cause: err}
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, &SourceError{Op: "open", Path: path, Err: ErrNotFound, Cause: fs.ErrInvalid}
	}

	s := &Stream{name: name, path: path, slot: &slot{}}
	c := &cursor{raw: f, decode: decoderFor(name), closers: []io.Closer{f}}
	if s.gen, err = s.slot.install(c); err != nil {
		return nil, &SourceError{Op: "open", Path: path, Err: err}
	}
	for sl := range d.open {
		if sl.idle() {
			delete(d.open, sl)
		}
	}
	d.open[s.slot] = struct{}{}
	return s, nil
}

// Close closes every stream still open and refuses further opens.
func (d *DirectorySource) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	var first error
	for sl := range d.open {
		if err := sl.shutdown(); err != nil && first == nil {
			first = err
		}
	}
	d.open = nil
	if first != nil {
		return &SourceError{Op: "close", Path: d.dir, Err: classify(first), Cause: first}
	}
	return nil
}
