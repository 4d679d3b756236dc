package fips

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// State is an entry of the FIPS state table: the numeric code, USPS
// abbreviation, full name and an approximate geographic centroid.
type State struct {
	Code      uint8
	Abbrev    string
	Name      string
	Latitude  float64
	Longitude float64
}

// FIPS returns the state-level Code.
func (s State) FIPS() Code {
	return encode(s.Code, 0, 0, 0, LevelState)
}

func (s State) String() string { return s.Abbrev }

// states is ordered by code. Codes have gaps (03, 07, 14, 43, 52 are unused).
var states = []State{
	{1, "AL", "Alabama", 32.78, -86.83},
	{2, "AK", "Alaska", 64.07, -152.28},
	{4, "AZ", "Arizona", 34.27, -111.66},
	{5, "AR", "Arkansas", 34.89, -92.44},
	{6, "CA", "California", 37.18, -119.47},
	{8, "CO", "Colorado", 39.00, -105.55},
	{9, "CT", "Connecticut", 41.62, -72.73},
	{10, "DE", "Delaware", 38.99, -75.51},
	{11, "DC", "District of Columbia", 38.91, -77.01},
	{12, "FL", "Florida", 28.63, -82.45},
	{13, "GA", "Georgia", 32.64, -83.44},
	{15, "HI", "Hawaii", 20.29, -156.37},
	{16, "ID", "Idaho", 44.35, -114.61},
	{17, "IL", "Illinois", 40.04, -89.20},
	{18, "IN", "Indiana", 39.89, -86.28},
	{19, "IA", "Iowa", 42.08, -93.50},
	{20, "KS", "Kansas", 38.49, -98.38},
	{21, "KY", "Kentucky", 37.53, -85.30},
	{22, "LA", "Louisiana", 31.07, -92.00},
	{23, "ME", "Maine", 45.37, -69.24},
	{24, "MD", "Maryland", 39.06, -76.80},
	{25, "MA", "Massachusetts", 42.26, -71.81},
	{26, "MI", "Michigan", 44.35, -85.41},
	{27, "MN", "Minnesota", 46.28, -94.31},
	{28, "MS", "Mississippi", 32.74, -89.67},
	{29, "MO", "Missouri", 38.36, -92.46},
	{30, "MT", "Montana", 47.05, -109.63},
	{31, "NE", "Nebraska", 41.54, -99.80},
	{32, "NV", "Nevada", 39.33, -116.63},
	{33, "NH", "New Hampshire", 43.68, -71.58},
	{34, "NJ", "New Jersey", 40.19, -74.67},
	{35, "NM", "New Mexico", 34.41, -106.11},
	{36, "NY", "New York", 42.95, -75.53},
	{37, "NC", "North Carolina", 35.56, -79.39},
	{38, "ND", "North Dakota", 47.45, -100.47},
	{39, "OH", "Ohio", 40.29, -82.79},
	{40, "OK", "Oklahoma", 35.59, -97.49},
	{41, "OR", "Oregon", 43.93, -120.56},
	{42, "PA", "Pennsylvania", 40.88, -77.80},
	{44, "RI", "Rhode Island", 41.68, -71.56},
	{45, "SC", "South Carolina", 33.92, -80.90},
	{46, "SD", "South Dakota", 44.44, -100.23},
	{47, "TN", "Tennessee", 35.86, -86.35},
	{48, "TX", "Texas", 31.48, -99.33},
	{49, "UT", "Utah", 39.31, -111.67},
	{50, "VT", "Vermont", 44.07, -72.67},
	{51, "VA", "Virginia", 37.52, -78.85},
	{53, "WA", "Washington", 47.38, -120.45},
	{54, "WV", "West Virginia", 38.64, -80.62},
	{55, "WI", "Wisconsin", 44.62, -89.99},
	{56, "WY", "Wyoming", 42.99, -107.55},
	{60, "AS", "American Samoa", -14.27, -170.70},
	{66, "GU", "Guam", 13.44, 144.79},
	{69, "MP", "Northern Mariana Islands", 15.10, 145.67},
	{72, "PR", "Puerto Rico", 18.22, -66.59},
	{78, "VI", "U.S. Virgin Islands", 18.34, -64.90},
}

var (
	statesByCode   [stateMask + 1]int16
	statesByAbbrev = make(map[string]int, len(states))
	statesByName   = make(map[string]int, len(states))
)

func init() {
	for i := range statesByCode {
		statesByCode[i] = -1
	}
	for i, s := range states {
		statesByCode[s.Code] = int16(i)
		statesByAbbrev[s.Abbrev] = i
		statesByName[strings.ToLower(s.Name)] = i
	}
}

// maxStateNameDistance caps the edit distance StateByName tolerates.
const maxStateNameDistance = 2

// States returns a copy of the state table in code order.
func States() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}

// StateByCode looks a state up by its numeric FIPS code.
func StateByCode(code uint8) (State, bool) {
	if int(code) >= len(statesByCode) || statesByCode[code] < 0 {
		return State{}, false
	}
	return states[statesByCode[code]], true
}

// LookupState looks a state up by its two-letter USPS abbreviation,
// case-insensitively.
func LookupState(abbrev string) (State, bool) {
	i, ok := statesByAbbrev[strings.ToUpper(strings.TrimSpace(abbrev))]
	if !ok {
		return State{}, false
	}
	return states[i], true
}

// StateByName finds a state by full name. Abbreviations are accepted too.
// When there is no exact (case-insensitive) match, the closest name within
// a small Levenshtein distance wins; a tie between two candidates is
// treated as no match.
func StateByName(name string) (State, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return State{}, false
	}
	if i, ok := statesByName[q]; ok {
		return states[i], true
	}
	if s, ok := LookupState(q); ok {
		return s, true
	}

	best, bestDist, tied := -1, maxStateNameDistance+1, false
	for n, i := range statesByName {
		d := levenshtein.ComputeDistance(q, n)
		switch {
		case d < bestDist:
			best, bestDist, tied = i, d, false
		case d == bestDist:
			tied = true
		}
	}
	if best < 0 || tied {
		return State{}, false
	}
	return states[best], true
}
