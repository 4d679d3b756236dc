package synthpop

import (
	. "gopkg.in/check.v1"

	"github.com/andreiashu/synthpop/fips"
)

type IndexSuite struct{}

var _ = Suite(&IndexSuite{})

func (s *IndexSuite) dataset(c *C) *Dataset {
	d, err := Open(writeDir(c,
		fixture{"ca.csv", caCSV},
		fixture{"tx.csv", txCSV},
		fixture{"48201_people.csv", "age,homeId,schoolId,workId\n40,482015101000001,,\n41,482011234560002,,\n"},
	))
	c.Assert(err, IsNil)
	return d
}

func (s *IndexSuite) TestCounts(c *C) {
	d := s.dataset(c)
	defer d.Close()

	idx, err := BuildIndex(d.Records(), fips.LevelCounty)
	c.Assert(err, IsNil)
	c.Assert(idx.Level(), Equals, fips.LevelCounty)
	c.Assert(idx.Total(), Equals, int64(6))
	c.Assert(idx.Len(), Equals, 4)

	tests := []struct {
		prefix string
		want   int64
	}{
		{"06", 2},
		{"06037", 1},
		{"48", 4},
		{"48201", 3},
		{"48155", 1},
		{"72", 0},
		{"48201510100", 0},
	}
	for _, tt := range tests {
		c.Assert(idx.Count(fips.MustParse(tt.prefix)), Equals, tt.want, Commentf(tt.prefix))
	}
	c.Assert(idx.Count(0), Equals, int64(0))
}

func (s *IndexSuite) TestCodesAreOrdered(c *C) {
	d := s.dataset(c)
	defer d.Close()

	idx, err := BuildIndex(d.Records(), fips.LevelCounty)
	c.Assert(err, IsNil)

	var got []string
	for _, code := range idx.Codes() {
		got = append(got, code.String())
	}
	c.Assert(got, DeepEquals, []string{"06037", "06059", "48155", "48201"})

	counts := idx.Counts()
	c.Assert(counts[3], Equals, Count{Code: fips.MustParse("48201"), N: 3})
}

func (s *IndexSuite) TestRollup(c *C) {
	d := s.dataset(c)
	defer d.Close()

	idx, err := BuildIndex(d.Records(), fips.LevelTract)
	c.Assert(err, IsNil)
	c.Assert(idx.Count(fips.MustParse("48201510100")), Equals, int64(2))

	states := idx.Rollup(fips.LevelState)
	c.Assert(states.Level(), Equals, fips.LevelState)
	c.Assert(states.Counts(), DeepEquals, []Count{
		{Code: fips.MustParse("06"), N: 2},
		{Code: fips.MustParse("48"), N: 4},
	})
	c.Assert(states.Total(), Equals, idx.Total())
}

func (s *IndexSuite) TestMixedLevels(c *C) {
	idx := newIndex(fips.LevelTract, map[fips.Code]int64{
		fips.MustParse("06"):          1,
		fips.MustParse("06037"):       2,
		fips.MustParse("06037207301"): 3,
		fips.MustParse("06059062604"): 4,
		fips.MustParse("48"):          5,
	})
	c.Assert(idx.Count(fips.MustParse("06")), Equals, int64(10))
	c.Assert(idx.Count(fips.MustParse("06037")), Equals, int64(5))
	c.Assert(idx.Count(fips.MustParse("06059")), Equals, int64(4))
	c.Assert(idx.Count(fips.MustParse("48")), Equals, int64(5))
}

func (s *IndexSuite) TestBuildIndexStopsAtFailure(c *C) {
	d, err := Open(writeDir(c, fixture{"tx.csv", txCSV + "1,2\n"}))
	c.Assert(err, IsNil)
	defer d.Close()

	_, err = BuildIndex(d.Records(), fips.LevelState)
	c.Assert(err, NotNil)
}

func (s *IndexSuite) TestBuildIndexFuncContinues(c *C) {
	d, err := Open(writeDir(c, fixture{"tx.csv", txCSV + "1,2\n9,482015101000009,,\n"}))
	c.Assert(err, IsNil)
	defer d.Close()

	var failures int
	idx, err := BuildIndexFunc(d.Records(), fips.LevelState, func(error) bool {
		failures++
		return true
	})
	c.Assert(err, IsNil)
	c.Assert(failures, Equals, 1)
	c.Assert(idx.Count(fips.MustParse("48")), Equals, int64(3))
}
