// Package fips represents hierarchical FIPS geographic region codes (state,
// county, census tract, census block) in a single 64-bit word, and parses
// the FIPS-prefixed setting identifiers found in ASPR synthetic population
// data.
//
// A Code is the full GEOID up to its level: "48" is Texas, "48201" is Harris
// County, TX, "48201223100" is a census tract in Harris County and
// "482012231001050" is a block in that tract.
//
// Bit layout, most significant bit first:
//
//	| state | county | tract | block | reserved | level |
//	| 63…57 | 56…47  | 46…27 | 26…13 |  12…3    |  2…0  |
//	|   7   |   10   |   20  |   14  |    10    |   3   |
//
// Coarser fields occupy the higher bits, so numeric order of the word is
// hierarchical order. The level tag sits in the lowest bits so a coarser
// code sorts before every finer code that shares its prefix.
package fips

import "fmt"

// Level is the precision of a Code.
type Level uint8

const (
	LevelNone Level = iota
	LevelState
	LevelCounty
	LevelTract
	LevelBlock
)

var levelNames = [...]string{"none", "state", "county", "tract", "block"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// Width returns the number of decimal digits of a full code at this level:
// 2, 5, 11 or 15. LevelNone has width 0.
func (l Level) Width() int {
	switch l {
	case LevelState:
		return stateDigits
	case LevelCounty:
		return stateDigits + countyDigits
	case LevelTract:
		return stateDigits + countyDigits + tractDigits
	case LevelBlock:
		return stateDigits + countyDigits + tractDigits + blockDigits
	}
	return 0
}

// levelForWidth is the inverse of Width.
func levelForWidth(n int) (Level, bool) {
	for l := LevelState; l <= LevelBlock; l++ {
		if l.Width() == n {
			return l, true
		}
	}
	return LevelNone, false
}

// Digit widths of each fragment.
const (
	stateDigits  = 2
	countyDigits = 3
	tractDigits  = 6
	blockDigits  = 4
)

// Bit offsets and masks of the encoded fields.
const (
	stateOffset  = 57
	countyOffset = 47
	tractOffset  = 27
	blockOffset  = 13

	stateMask  = 1<<7 - 1
	countyMask = 1<<10 - 1
	tractMask  = 1<<20 - 1
	blockMask  = 1<<14 - 1
	levelMask  = 1<<3 - 1
)

// Largest fragment values representable in the digit widths.
const (
	MaxCounty = 999
	MaxTract  = 999999
	MaxBlock  = 9999
)

// Code is an immutable FIPS geographic region code. The zero value is the
// empty code: it has LevelNone, formats as "" and is a prefix of nothing.
type Code uint64

func encode(state uint8, county uint16, tract uint32, block uint16, level Level) Code {
	return Code(uint64(state)<<stateOffset |
		uint64(county)<<countyOffset |
		uint64(tract)<<tractOffset |
		uint64(block)<<blockOffset |
		uint64(level))
}

// NewState returns the state-level code for a numeric state FIPS code.
// The state must be present in the state table.
func NewState(state uint8) (Code, error) {
	if _, ok := StateByCode(state); !ok {
		return 0, &FormatError{Input: fmt.Sprintf("%02d", state), Err: ErrInvalidFormat, Reason: "unknown state code"}
	}
	return encode(state, 0, 0, 0, LevelState), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level tables.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Level returns the precision of the code.
func (c Code) Level() Level {
	return Level(uint64(c) & levelMask)
}

// Valid reports whether the code is non-empty.
func (c Code) Valid() bool {
	l := c.Level()
	return l >= LevelState && l <= LevelBlock
}

// State returns the numeric state code.
func (c Code) State() uint8 {
	return uint8(uint64(c)>>stateOffset) & stateMask
}

// County returns the 3-digit county code, or 0 for a state-level code.
func (c Code) County() uint16 {
	return uint16(uint64(c)>>countyOffset) & countyMask
}

// Tract returns the 6-digit census tract code, or 0 above tract level.
func (c Code) Tract() uint32 {
	return uint32(uint64(c)>>tractOffset) & tractMask
}

// Block returns the 4-digit census block code, or 0 above block level.
func (c Code) Block() uint16 {
	return uint16(uint64(c)>>blockOffset) & blockMask
}

// WithCounty extends a state-level code to county level.
func (c Code) WithCounty(county uint16) (Code, error) {
	if err := c.checkExtend(LevelState, uint64(county), MaxCounty); err != nil {
		return 0, err
	}
	return encode(c.State(), county, 0, 0, LevelCounty), nil
}

// WithTract extends a county-level code to tract level.
func (c Code) WithTract(tract uint32) (Code, error) {
	if err := c.checkExtend(LevelCounty, uint64(tract), MaxTract); err != nil {
		return 0, err
	}
	return encode(c.State(), c.County(), tract, 0, LevelTract), nil
}

// WithBlock extends a tract-level code to block level.
func (c Code) WithBlock(block uint16) (Code, error) {
	if err := c.checkExtend(LevelTract, uint64(block), MaxBlock); err != nil {
		return 0, err
	}
	return encode(c.State(), c.County(), c.Tract(), block, LevelBlock), nil
}

func (c Code) checkExtend(from Level, value, max uint64) error {
	if c.Level() != from {
		return fmt.Errorf("fips: extend %s code %q: %w (want %s)", c.Level(), c.String(), ErrInvalidLevel, from)
	}
	if value > max {
		return fmt.Errorf("fips: extend %q with %d: %w (max %d)", c.String(), value, ErrOutOfRange, max)
	}
	return nil
}

// Truncate drops every fragment finer than level. Truncating to the code's
// own level or a finer one returns the code unchanged, so Truncate never
// fails. Truncating to LevelNone returns the zero code.
func (c Code) Truncate(level Level) Code {
	if level >= c.Level() {
		return c
	}
	switch level {
	case LevelState:
		return encode(c.State(), 0, 0, 0, LevelState)
	case LevelCounty:
		return encode(c.State(), c.County(), 0, 0, LevelCounty)
	case LevelTract:
		return encode(c.State(), c.County(), c.Tract(), 0, LevelTract)
	}
	return 0
}

// Parent returns the code one level coarser. A state-level or empty code has
// no parent.
func (c Code) Parent() (Code, bool) {
	if c.Level() <= LevelState {
		return 0, false
	}
	return c.Truncate(c.Level() - 1), true
}

// IsPrefixOf reports whether other lies inside the region c names: other is
// at least as precise as c and agrees with c on every fragment c has.
func (c Code) IsPrefixOf(other Code) bool {
	if !c.Valid() || other.Level() < c.Level() {
		return false
	}
	return other.Truncate(c.Level()) == c
}

// Compare orders codes hierarchically: by shared prefix first, and a coarser
// code before any finer code sharing its prefix. It returns -1, 0 or +1.
func Compare(a, b Code) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less reports whether c sorts before other.
func (c Code) Less(other Code) bool { return c < other }

// Format renders the code at the requested level, zero padded to that
// level's canonical width. Formatting at a level finer than the code's own
// fails with ErrInsufficientPrecision.
func (c Code) Format(level Level) (string, error) {
	if level == LevelNone || level > LevelBlock {
		return "", &FormatError{Input: c.String(), Level: level, Err: ErrInvalidLevel}
	}
	if c.Level() < level {
		return "", &FormatError{Input: c.String(), Level: level, Err: ErrInsufficientPrecision}
	}
	return c.format(level), nil
}

func (c Code) format(level Level) string {
	switch level {
	case LevelState:
		return fmt.Sprintf("%02d", c.State())
	case LevelCounty:
		return fmt.Sprintf("%02d%03d", c.State(), c.County())
	case LevelTract:
		return fmt.Sprintf("%02d%03d%06d", c.State(), c.County(), c.Tract())
	case LevelBlock:
		return fmt.Sprintf("%02d%03d%06d%04d", c.State(), c.County(), c.Tract(), c.Block())
	}
	return ""
}

// String formats the code at its own level.
func (c Code) String() string {
	return c.format(c.Level())
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input yields the
// zero code.
func (c *Code) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = 0
		return nil
	}
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
