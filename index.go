package synthpop

import (
	"sort"

	"github.com/andreiashu/synthpop/fips"
)

// Count is the number of records located in one region.
type Count struct {
	Code fips.Code
	N    int64
}

// Index counts records per FIPS region at a fixed level. Records located
// only at a coarser level than the index are counted at their own level.
//
// Codes are kept in FIPS order, where every region's subregions directly
// follow it, so the records within any prefix are a contiguous run found by
// binary search.
type Index struct {
	level  fips.Level
	counts []Count
	cum    []int64 // cum[i] is the sum of counts[:i]
}

// BuildIndex drains rs, counting each record at its code truncated to
// level. It stops at the first failure and returns it.
func BuildIndex(rs *Records, level fips.Level) (*Index, error) {
	return BuildIndexFunc(rs, level, func(error) bool { return false })
}

// BuildIndexFunc is BuildIndex with a failure handler: when rs fails, the
// scan goes on past the failure if onErr returns true, and stops with the
// failure otherwise.
func BuildIndexFunc(rs *Records, level fips.Level, onErr func(error) bool) (*Index, error) {
	m := make(map[fips.Code]int64)
	for {
		for rs.Next() {
			m[rs.Record().Code.Truncate(level)]++
		}
		err := rs.Err()
		if err == nil {
			break
		}
		if !onErr(err) {
			return nil, err
		}
	}
	return newIndex(level, m), nil
}

func newIndex(level fips.Level, m map[fips.Code]int64) *Index {
	idx := &Index{level: level, counts: make([]Count, 0, len(m))}
	for code, n := range m {
		idx.counts = append(idx.counts, Count{Code: code, N: n})
	}
	sort.Slice(idx.counts, func(i, j int) bool { return idx.counts[i].Code < idx.counts[j].Code })

	idx.cum = make([]int64, len(idx.counts)+1)
	for i, c := range idx.counts {
		idx.cum[i+1] = idx.cum[i] + c.N
	}
	return idx
}

// Level returns the level records were counted at.
func (x *Index) Level() fips.Level { return x.level }

// Len returns the number of distinct regions.
func (x *Index) Len() int { return len(x.counts) }

// Total returns the number of records counted.
func (x *Index) Total() int64 { return x.cum[len(x.counts)] }

// Count returns the number of records within prefix. A prefix finer than
// the index level matches only regions counted at exactly that code.
func (x *Index) Count(prefix fips.Code) int64 {
	if !prefix.Valid() {
		return 0
	}
	lo := sort.Search(len(x.counts), func(i int) bool { return x.counts[i].Code >= prefix })
	hi := lo + sort.Search(len(x.counts)-lo, func(i int) bool {
		return !prefix.IsPrefixOf(x.counts[lo+i].Code)
	})
	return x.cum[hi] - x.cum[lo]
}

// Rollup returns the index re-counted at a coarser level.
func (x *Index) Rollup(level fips.Level) *Index {
	m := make(map[fips.Code]int64, len(x.counts))
	for _, c := range x.counts {
		m[c.Code.Truncate(level)] += c.N
	}
	return newIndex(level, m)
}

// Codes returns the counted regions in FIPS order.
func (x *Index) Codes() []fips.Code {
	codes := make([]fips.Code, len(x.counts))
	for i, c := range x.counts {
		codes[i] = c.Code
	}
	return codes
}

// Counts returns the per-region counts in FIPS order.
func (x *Index) Counts() []Count {
	out := make([]Count, len(x.counts))
	copy(out, x.counts)
	return out
}
