package fips

import (
	"errors"

	. "gopkg.in/check.v1"
)

type SettingSuite struct{}

var _ = Suite(&SettingSuite{})

func (s *SettingSuite) TestHomeID(c *C) {
	id, err := ParseHomeID("110010109000024")
	c.Assert(err, IsNil)
	c.Assert(id.Category, Equals, SettingHome)
	c.Assert(id.Code.Level(), Equals, LevelTract)
	c.Assert(id.Code.State(), Equals, uint8(11))
	c.Assert(id.Code.County(), Equals, uint16(1))
	c.Assert(id.Code.Tract(), Equals, uint32(10900))
	c.Assert(id.ID, Equals, uint16(24))
	c.Assert(id.String(), Equals, "110010109000024")
}

func (s *SettingSuite) TestWorkplaceID(c *C) {
	id, err := ParseWorkplaceID("1100100620201546")
	c.Assert(err, IsNil)
	c.Assert(id.Category, Equals, SettingWorkplace)
	c.Assert(id.Code.Tract(), Equals, uint32(6202))
	c.Assert(id.ID, Equals, uint16(1546))
	c.Assert(id.String(), Equals, "1100100620201546")

	_, err = ParseWorkplaceID("1100100620216384")
	c.Assert(errors.Is(err, ErrOutOfRange), Equals, true)
}

func (s *SettingSuite) TestPublicSchoolID(c *C) {
	id, err := ParseSchoolID("11001009810157")
	c.Assert(err, IsNil)
	c.Assert(id.Category, Equals, SettingPublicSchool)
	c.Assert(id.Code.Tract(), Equals, uint32(9810))
	c.Assert(id.ID, Equals, uint16(157))
	c.Assert(id.String(), Equals, "11001009810157")
}

func (s *SettingSuite) TestPrivateSchoolID(c *C) {
	id, err := ParseSchoolID("24031xprvx0150")
	c.Assert(err, IsNil)
	c.Assert(id.Category, Equals, SettingPrivateSchool)
	c.Assert(id.Code.Level(), Equals, LevelCounty)
	c.Assert(id.Code.String(), Equals, "24031")
	c.Assert(id.ID, Equals, uint16(150))
	c.Assert(id.String(), Equals, "24031xprvx0150")

	_, err = ParseSchoolID("24031xprvx2048")
	c.Assert(errors.Is(err, ErrOutOfRange), Equals, true)

	_, err = ParseSchoolID("24031xpubx0150")
	c.Assert(errors.Is(err, ErrInvalidFormat), Equals, true)
}

func (s *SettingSuite) TestASPRSamples(c *C) {
	samples := []struct {
		text     string
		category SettingCategory
		code     string
		id       uint16
	}{
		{"481559501000128", SettingHome, "48155950100", 128},
		{"48155950100001", SettingPublicSchool, "48155950100", 1},
		{"021300003000173", SettingHome, "02130000300", 173},
		{"4848795060000714", SettingWorkplace, "48487950600", 714},
		{"0213000020000291", SettingWorkplace, "02130000200", 291},
		{"021300002001170", SettingHome, "02130000200", 1170},
	}
	for _, tc := range samples {
		var (
			id  SettingID
			err error
		)
		switch tc.category {
		case SettingHome:
			id, err = ParseHomeID(tc.text)
		case SettingWorkplace:
			id, err = ParseWorkplaceID(tc.text)
		default:
			id, err = ParseSchoolID(tc.text)
		}
		c.Assert(err, IsNil, Commentf("%s", tc.text))
		c.Assert(id.Category, Equals, tc.category)
		c.Assert(id.Code.String(), Equals, tc.code)
		c.Assert(id.ID, Equals, tc.id)
	}
}

func (s *SettingSuite) TestInvalid(c *C) {
	for _, text := range []string{"", "11001010900002", "1100101090000245", "11001010900a024", "030010109000024"} {
		_, err := ParseHomeID(text)
		c.Assert(errors.Is(err, ErrInvalidFormat), Equals, true, Commentf("%q: %v", text, err))
	}
}

func (s *SettingSuite) TestCategoryString(c *C) {
	c.Assert(SettingPrivateSchool.String(), Equals, "Private School")
	c.Assert(SettingCategory(42).String(), Equals, "SettingCategory(42)")
	c.Assert(SettingID{}.IsZero(), Equals, true)
}
