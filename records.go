package synthpop

import (
	"errors"
	"io"
	"strings"

	"github.com/andreiashu/synthpop/fips"
	"github.com/andreiashu/synthpop/schema"
	"github.com/andreiashu/synthpop/source"
)

// Records scans the decoded records of a dataset, entry by entry in the
// source's order. Header rows and blank lines are skipped, as are entries
// with no schema.
//
//	rs := d.Records()
//	defer rs.Close()
//	for rs.Next() {
//	    use(rs.Record())
//	}
//
// Next returns false at the end of the data or on a failure, which Err then
// reports as an *EntryError. A failure is not final: calling Next again goes
// on after the failed row, or with the next entry when the failure ended the
// entry (corrupt data, an entry that would not open).
type Records struct {
	d        *Dataset
	prefix   fips.Code
	filtered bool

	entries []string
	listed  bool
	next    int

	stream *source.Stream
	entry  string
	schema *schema.Schema

	rec    schema.Record
	err    error
	closed bool
}

// Next advances to the next record.
func (r *Records) Next() bool {
	r.err = nil
	if r.closed {
		return false
	}
	if !r.listed {
		entries, err := r.d.src.Entries()
		if err != nil {
			r.err, r.closed = err, true
			return false
		}
		r.entries, r.listed = entries, true
	}

	for {
		if r.stream == nil {
			if r.next >= len(r.entries) {
				return false
			}
			name := r.entries[r.next]
			r.next++
			if !r.openEntry(name) {
				if r.err != nil {
					return false
				}
				continue
			}
		}

		line, err := r.stream.NextLine()
		if err == io.EOF {
			r.endEntry()
			continue
		}
		if err != nil {
			r.fail(err)
			return false
		}

		n := r.stream.Line()
		if (n == 1 && r.schema.Header) || strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := schema.Decode(r.schema, r.schema.Split(line))
		if err != nil {
			r.err = &EntryError{Entry: r.entry, Line: n, Err: err}
			r.d.config.Metrics.IncrementDecodeErrors(decodeReason(err))
			r.d.log.Debugw("row not decoded", "entry", r.entry, "line", n, "error", err)
			return false
		}
		if r.filtered && !r.prefix.IsPrefixOf(rec.Code) {
			continue
		}
		rec.Entry, rec.Line = r.entry, n
		r.rec = rec
		r.d.config.Metrics.IncrementRecordsDecoded(rec.Kind.String())
		return true
	}
}

// Record returns the record Next advanced to.
func (r *Records) Record() schema.Record { return r.rec }

// Err returns the failure that made the last Next return false, or nil.
func (r *Records) Err() error { return r.err }

// Entry returns the name of the entry being read.
func (r *Records) Entry() string { return r.entry }

// Close stops the scan and releases the open entry.
func (r *Records) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.stream == nil {
		return nil
	}
	return r.endEntry()
}

func (r *Records) openEntry(name string) bool {
	log := r.d.log.With("entry", name)
	if r.filtered {
		if region, ok := entryRegion(name); ok && disjoint(region, r.prefix) {
			r.d.config.Metrics.IncrementEntriesSkipped("out_of_region")
			log.Debugw("entry skipped", "reason", "out of region", "region", region.String())
			return false
		}
	}
	s := r.d.SchemaFor(name)
	if s == nil {
		r.d.config.Metrics.IncrementEntriesSkipped("no_schema")
		log.Infow("entry skipped", "reason", "no schema")
		return false
	}

	stream, err := r.d.src.Open(name)
	if err != nil {
		r.err = &EntryError{Entry: name, Err: err}
		log.Warnw("entry not opened", "error", err)
		return false
	}
	r.d.config.Metrics.IncrementEntriesOpened()
	r.stream, r.entry, r.schema = stream, name, s
	return true
}

func (r *Records) endEntry() error {
	r.d.config.Metrics.AddBytesRead(r.stream.BytesRead())
	err := r.stream.Close()
	r.stream, r.schema = nil, nil
	return err
}

// fail abandons the current entry after a read failure.
func (r *Records) fail(err error) {
	r.err = &EntryError{Entry: r.entry, Err: err}
	if errors.Is(err, source.ErrCorrupt) {
		r.d.config.Metrics.IncrementCorruptEntries()
	}
	r.d.log.Warnw("entry abandoned", "entry", r.entry, "line", r.stream.Line(), "error", err)
	_ = r.endEntry()
}

func decodeReason(err error) string {
	switch {
	case errors.Is(err, schema.ErrFieldCountMismatch):
		return "field_count_mismatch"
	case errors.Is(err, schema.ErrFieldTypeMismatch):
		return "field_type_mismatch"
	case errors.Is(err, schema.ErrMissingRequiredField):
		return "missing_required_field"
	}
	return "other"
}
