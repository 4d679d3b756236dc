package fips

import (
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	. "gopkg.in/check.v1"
)

type StateSuite struct{}

var _ = Suite(&StateSuite{})

func (s *StateSuite) TestTable(c *C) {
	all := States()
	c.Assert(len(all), Equals, 56)
	for i := 1; i < len(all); i++ {
		c.Assert(all[i-1].Code < all[i].Code, Equals, true)
	}
	for _, st := range all {
		code := st.FIPS()
		c.Assert(code.Level(), Equals, LevelState)
		back, err := Parse(code.String())
		c.Assert(err, IsNil)
		c.Assert(back, Equals, code)
	}
}

func (s *StateSuite) TestLookup(c *C) {
	tx, ok := LookupState("tx")
	c.Assert(ok, Equals, true)
	c.Assert(tx.Code, Equals, uint8(48))
	c.Assert(tx.Name, Equals, "Texas")

	_, ok = LookupState("XX")
	c.Assert(ok, Equals, false)

	ca, ok := StateByCode(6)
	c.Assert(ok, Equals, true)
	c.Assert(ca.Abbrev, Equals, "CA")

	for _, code := range []uint8{0, 3, 7, 14, 43, 52, 200} {
		_, ok = StateByCode(code)
		c.Assert(ok, Equals, false, Commentf("%d", code))
	}
}

func (s *StateSuite) TestByName(c *C) {
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"Texas", "TX", true},
		{"  new york ", "NY", true},
		{"Califronia", "CA", true},
		{"Pensylvania", "PA", true},
		{"wy", "WY", true},
		{"Atlantis", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := StateByName(tt.query)
		c.Assert(ok, Equals, tt.ok, Commentf("%q", tt.query))
		if tt.ok {
			c.Assert(got.Abbrev, Equals, tt.want, Commentf("%q", tt.query))
		}
	}
}

func (s *StateSuite) TestNearest(c *C) {
	tests := []struct {
		lat, lng float64
		want     string
	}{
		{39.74, -104.99, "CO"}, // Denver
		{38.58, -121.49, "CA"}, // Sacramento
		{21.31, -157.86, "HI"}, // Honolulu
		{61.22, -149.90, "AK"}, // Anchorage
		{18.47, -66.11, "PR"},  // San Juan
	}
	for _, tt := range tests {
		st, ok := NearestState(tt.lat, tt.lng)
		c.Assert(ok, Equals, true)
		c.Assert(st.Abbrev, Equals, tt.want, Commentf("(%v, %v)", tt.lat, tt.lng))
	}

	_, ok := NearestState(91, 0)
	c.Assert(ok, Equals, false)
}

func (s *StateSuite) TestCellAndGeohash(c *C) {
	co, _ := LookupState("CO")
	cell := co.CellID(10)
	c.Assert(cell.IsValid(), Equals, true)
	c.Assert(cell.Level(), Equals, 10)
	c.Assert(cell.Contains(co.CellID(20)), Equals, true)

	h := co.Geohash(5)
	c.Assert(len(h), Equals, 5)
	c.Assert(strings.HasPrefix(co.Geohash(7), h), Equals, true)

	center := geohash.Decode(h).Center()
	c.Assert(center.Lat() > 38.5 && center.Lat() < 39.5, Equals, true)

	st, ok := GeohashState(h)
	c.Assert(ok, Equals, true)
	c.Assert(st.Abbrev, Equals, "CO")

	st, ok = GeohashState(strings.ToUpper(h))
	c.Assert(ok, Equals, true)
	c.Assert(st.Abbrev, Equals, "CO")

	for _, bad := range []string{"", "!!", "ilo", "aaaa", h + "a", "9x j"} {
		_, ok = GeohashState(bad)
		c.Assert(ok, Equals, false, Commentf("%q", bad))
	}
}
