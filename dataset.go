// Package synthpop reads ASPR synthetic-population datasets and indexes
// their records by FIPS geographic code.
//
// A dataset is a directory of tabular files or a single zip archive of them:
//
//	d, err := synthpop.Open("/data/ASPR_Synthetic_Population")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Close()
//
//	harris := fips.MustParse("48201")
//	rs := d.RecordsIn(harris)
//	defer rs.Close()
//	for rs.Next() {
//	    fmt.Println(rs.Record())
//	}
//	if err := rs.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// Reading is single-threaded and pull-based. Datasets opened separately are
// independent; record scanners from the same archive dataset share its one
// read position and must not be interleaved.
package synthpop

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andreiashu/synthpop/fips"
	"github.com/andreiashu/synthpop/schema"
	"github.com/andreiashu/synthpop/source"
)

// statesDir is the ASPR layout's directory of per-state files.
const statesDir = "all_states"

var zipSignatures = [][]byte{
	[]byte("PK\x03\x04"),
	[]byte("PK\x05\x06"), // empty archive
}

// Dataset is an opened population dataset.
type Dataset struct {
	id     uuid.UUID
	src    source.Source
	config *DatasetConfig
	log    *zap.SugaredLogger
	person *schema.Schema
}

// Open opens the dataset at path, detecting its form: a directory is read
// file by file (descending into "all_states" when the directory itself holds
// no files), and a zip archive member by member.
//
// Example:
//
//	d, err := Open("aspr.zip", WithLogger(logger))
func Open(path string, opts ...Option) (*Dataset, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &OpenError{Path: path, Err: ErrNotFound, Cause: err}
		}
		return nil, &OpenError{Path: path, Err: source.ErrIO, Cause: err}
	}

	var src source.Source
	switch {
	case fi.IsDir():
		src, err = source.OpenDirectory(datasetDir(path))
	case fi.Mode().IsRegular():
		var zipped bool
		if zipped, err = isZip(path); err == nil {
			if !zipped {
				return nil, &OpenError{Path: path, Err: ErrUnrecognizedFormat}
			}
			src, err = source.OpenArchive(path)
		}
	default:
		return nil, &OpenError{Path: path, Err: ErrUnrecognizedFormat}
	}
	if err != nil {
		return nil, &OpenError{Path: path, Err: sourceFailure(err), Cause: err}
	}

	d, err := OpenSource(src, opts...)
	if err != nil {
		src.Close()
		return nil, err
	}
	return d, nil
}

// OpenDefault opens the dataset at DataPath.
func OpenDefault(opts ...Option) (*Dataset, error) {
	return Open(DataPath(), opts...)
}

// OpenSource wraps an already opened source. Closing the dataset closes src.
func OpenSource(src source.Source, opts ...Option) (*Dataset, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	for _, rule := range cfg.Schemas {
		if _, err := path.Match(rule.Pattern, ""); err != nil {
			return nil, &OpenError{Path: src.Path(), Err: ErrInvalidOption, Cause: err}
		}
		if rule.Schema == nil {
			return nil, &OpenError{Path: src.Path(), Err: ErrInvalidOption, Cause: errors.New("nil schema for " + rule.Pattern)}
		}
		if err := rule.Schema.Validate(); err != nil {
			return nil, &OpenError{Path: src.Path(), Err: ErrInvalidOption, Cause: err}
		}
	}

	d := &Dataset{
		id:     uuid.New(),
		src:    src,
		config: cfg,
		person: schema.ASPRPerson(),
	}
	d.log = cfg.Logger.Sugar().With("dataset_id", d.id.String(), "path", src.Path())
	d.log.Debugw("dataset opened")
	return d, nil
}

// datasetDir returns the directory holding the data files of dir.
func datasetDir(dir string) string {
	des, err := os.ReadDir(dir)
	if err != nil {
		return dir
	}
	for _, de := range des {
		if de.Type().IsRegular() {
			return dir
		}
	}
	sub := filepath.Join(dir, statesDir)
	if fi, err := os.Stat(sub); err == nil && fi.IsDir() {
		return sub
	}
	return dir
}

func isZip(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 4)
	if _, err := io.ReadFull(f, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	for _, sig := range zipSignatures {
		if bytes.Equal(head, sig) {
			return true, nil
		}
	}
	return false, nil
}

func sourceFailure(err error) error {
	switch {
	case errors.Is(err, source.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, source.ErrCorrupt):
		return source.ErrCorrupt
	}
	return source.ErrIO
}

// ID identifies this open dataset in logs.
func (d *Dataset) ID() uuid.UUID { return d.id }

// Path returns the directory or archive being read.
func (d *Dataset) Path() string { return d.src.Path() }

// Source returns the underlying source.
func (d *Dataset) Source() source.Source { return d.src }

// Entries returns the entry names in reading order.
func (d *Dataset) Entries() ([]string, error) { return d.src.Entries() }

// Close releases the dataset.
func (d *Dataset) Close() error {
	d.log.Debugw("dataset closed")
	return d.src.Close()
}

// SchemaFor returns the schema entries named entry are decoded with, or nil
// when the entry is not read. WithSchema rules come first; then, unless
// disabled, per-state ASPR files ("tx.csv") and "people*"/"person*" files,
// optionally led by a FIPS code ("06037_people.csv"), use schema.ASPRPerson.
func (d *Dataset) SchemaFor(entry string) *schema.Schema {
	base := path.Base(source.TrimCompression(entry))
	for _, rule := range d.config.Schemas {
		if ok, _ := path.Match(rule.Pattern, base); ok {
			return rule.Schema
		}
	}
	if !d.config.Defaults || !strings.EqualFold(path.Ext(base), ".csv") {
		return nil
	}
	stem := strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
	if len(stem) == 2 {
		if _, ok := fips.LookupState(stem); ok {
			return d.person
		}
	}
	if _, ok := entryRegion(base); ok {
		stem = strings.TrimLeft(strings.TrimLeft(stem, "0123456789"), "_-.")
	}
	if strings.HasPrefix(stem, "people") || strings.HasPrefix(stem, "person") {
		return d.person
	}
	return nil
}

// Records returns a scanner over every record, starting from the first
// entry. Each call starts over.
func (d *Dataset) Records() *Records {
	return &Records{d: d}
}

// RecordsIn returns a scanner over the records whose code lies within
// prefix. Entries whose names place them in a region disjoint from prefix
// ("tx.csv", "06037_people.csv") are skipped unread.
func (d *Dataset) RecordsIn(prefix fips.Code) *Records {
	return &Records{d: d, prefix: prefix, filtered: true}
}

// entryRegion returns the region an entry name places it in: a state
// abbreviation stem, or a leading FIPS code of a recognized width.
func entryRegion(entry string) (fips.Code, bool) {
	base := path.Base(source.TrimCompression(entry))
	stem := base
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	if len(stem) == 2 {
		if st, ok := fips.LookupState(stem); ok {
			return st.FIPS(), true
		}
	}

	n := 0
	for n < len(stem) && stem[n] >= '0' && stem[n] <= '9' {
		n++
	}
	switch n {
	case 2, 5, 11, 15:
		if c, err := fips.Parse(stem[:n]); err == nil {
			return c, true
		}
	}
	return 0, false
}

// disjoint reports whether no code lies within both a and b.
func disjoint(a, b fips.Code) bool {
	return !a.IsPrefixOf(b) && !b.IsPrefixOf(a)
}
