package fips

import (
	"fmt"
	"strings"
)

// SettingCategory is not part of a FIPS code but is implied by which column
// of an ASPR person row a setting id came from.
type SettingCategory uint8

const (
	SettingUnspecified SettingCategory = iota
	SettingHome
	SettingWorkplace
	SettingPublicSchool
	SettingPrivateSchool
	SettingCensusTract
)

var settingNames = [...]string{"Unspecified", "Home", "Workplace", "Public School", "Private School", "Census Tract"}

func (s SettingCategory) String() string {
	if int(s) < len(settingNames) {
		return settingNames[s]
	}
	return fmt.Sprintf("SettingCategory(%d)", uint8(s))
}

// Widths and capacities of the monotonically increasing id numbers that
// follow the geographic prefix in ASPR ids.
const (
	homeIDDigits          = 4
	publicSchoolIDDigits  = 3
	privateSchoolIDDigits = 4
	workplaceIDDigits     = 5

	maxHomeID          = 1<<14 - 1
	maxPublicSchoolID  = 1<<10 - 1
	maxPrivateSchoolID = 1<<11 - 1
	maxWorkplaceID     = 1<<14 - 1

	privateSchoolMarker = "xprvx"
)

// SettingID is an ASPR home, school or workplace identifier: a FIPS prefix
// (tract level, or county level for private schools) followed by a
// sequential id within that region.
type SettingID struct {
	Code     Code
	Category SettingCategory
	ID       uint16
}

// IsZero reports whether the id is unset.
func (s SettingID) IsZero() bool { return s == SettingID{} }

// String restores the id's textual form as it appears in ASPR data.
func (s SettingID) String() string {
	switch s.Category {
	case SettingHome:
		return fmt.Sprintf("%s%0*d", s.Code, homeIDDigits, s.ID)
	case SettingPublicSchool:
		return fmt.Sprintf("%s%0*d", s.Code, publicSchoolIDDigits, s.ID)
	case SettingPrivateSchool:
		return fmt.Sprintf("%s%s%0*d", s.Code, privateSchoolMarker, privateSchoolIDDigits, s.ID)
	case SettingWorkplace:
		return fmt.Sprintf("%s%0*d", s.Code, workplaceIDDigits, s.ID)
	}
	return s.Code.String()
}

// ParseHomeID parses a 15-character home id: an 11-digit census tract
// followed by a 4-digit within-tract sequence number.
func ParseHomeID(s string) (SettingID, error) {
	return parseTractSetting(s, SettingHome, homeIDDigits, maxHomeID)
}

// ParseWorkplaceID parses a 16-character workplace id: an 11-digit census
// tract followed by a 5-digit within-tract sequence number (at most 16383).
func ParseWorkplaceID(s string) (SettingID, error) {
	return parseTractSetting(s, SettingWorkplace, workplaceIDDigits, maxWorkplaceID)
}

// ParseSchoolID parses a 14-character school id. Public schools are an
// 11-digit tract plus a 3-digit sequence number; private schools are a
// 5-digit county, the marker "xprvx" and a 4-digit within-county sequence
// number (at most 2047).
func ParseSchoolID(s string) (SettingID, error) {
	county := LevelCounty.Width()
	if len(s) > county && strings.HasPrefix(s[county:], "x") {
		if len(s) != county+len(privateSchoolMarker)+privateSchoolIDDigits ||
			!strings.HasPrefix(s[county:], privateSchoolMarker) {
			return SettingID{}, &FormatError{Input: s, Err: ErrInvalidFormat, Reason: "malformed private school id"}
		}
		code, err := Parse(s[:county])
		if err != nil {
			return SettingID{}, rebase(err, s)
		}
		id, _, err := parseFragment(s[county+len(privateSchoolMarker):], privateSchoolIDDigits, maxPrivateSchoolID)
		if err != nil {
			return SettingID{}, wrapFormat(s, err)
		}
		return SettingID{Code: code, Category: SettingPrivateSchool, ID: uint16(id)}, nil
	}
	return parseTractSetting(s, SettingPublicSchool, publicSchoolIDDigits, maxPublicSchoolID)
}

func parseTractSetting(s string, cat SettingCategory, digits int, max uint64) (SettingID, error) {
	tract := LevelTract.Width()
	if len(s) != tract+digits {
		return SettingID{}, &FormatError{Input: s, Err: ErrInvalidFormat,
			Reason: fmt.Sprintf("%s id has length %d, want %d", strings.ToLower(cat.String()), len(s), tract+digits)}
	}
	code, err := Parse(s[:tract])
	if err != nil {
		return SettingID{}, rebase(err, s)
	}
	id, _, err := parseFragment(s[tract:], digits, max)
	if err != nil {
		return SettingID{}, wrapFormat(s, err)
	}
	return SettingID{Code: code, Category: cat, ID: uint16(id)}, nil
}

// rebase reports a prefix parse failure against the whole setting id.
func rebase(err error, input string) error {
	if fe, ok := err.(*FormatError); ok {
		return &FormatError{Input: input, Err: fe.Err, Reason: fe.Reason}
	}
	return err
}
