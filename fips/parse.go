package fips

import "fmt"

// Parse reads a full GEOID of 2, 5, 11 or 15 decimal digits (state, county,
// tract or block). Any other length, a non-digit character or an unknown
// state code fails with a *FormatError wrapping ErrInvalidFormat.
func Parse(s string) (Code, error) {
	level, ok := levelForWidth(len(s))
	if !ok {
		return 0, &FormatError{Input: s, Err: ErrInvalidFormat,
			Reason: fmt.Sprintf("length %d, want 2, 5, 11 or 15 digits", len(s))}
	}

	state, rest, err := parseFragment(s, stateDigits, stateMask)
	if err != nil {
		return 0, wrapFormat(s, err)
	}
	if _, ok := StateByCode(uint8(state)); !ok {
		return 0, &FormatError{Input: s, Err: ErrInvalidFormat, Reason: "unknown state code"}
	}

	var county, tract, block uint64
	if level >= LevelCounty {
		if county, rest, err = parseFragment(rest, countyDigits, MaxCounty); err != nil {
			return 0, wrapFormat(s, err)
		}
	}
	if level >= LevelTract {
		if tract, rest, err = parseFragment(rest, tractDigits, MaxTract); err != nil {
			return 0, wrapFormat(s, err)
		}
	}
	if level >= LevelBlock {
		if block, _, err = parseFragment(rest, blockDigits, MaxBlock); err != nil {
			return 0, wrapFormat(s, err)
		}
	}
	return encode(uint8(state), uint16(county), uint32(tract), uint16(block), level), nil
}

// fragmentError is the internal failure of parseFragment; callers attach
// the whole input when converting it to a FormatError.
type fragmentError struct {
	reason string
	err    error
}

func (e *fragmentError) Error() string { return e.reason }

func wrapFormat(input string, err error) error {
	if fe, ok := err.(*fragmentError); ok {
		return &FormatError{Input: input, Err: fe.err, Reason: fe.reason}
	}
	return &FormatError{Input: input, Err: ErrInvalidFormat, Reason: err.Error()}
}

// parseFragment consumes exactly width decimal digits from the front of
// input and checks the value fits in max. It returns the value and the
// remaining input.
func parseFragment(input string, width int, max uint64) (uint64, string, error) {
	if len(input) < width {
		return 0, input, &fragmentError{
			reason: fmt.Sprintf("expected %d digits, found %d", width, len(input)),
			err:    ErrInvalidFormat,
		}
	}
	var v uint64
	for i := 0; i < width; i++ {
		ch := input[i]
		if ch < '0' || ch > '9' {
			return 0, input, &fragmentError{
				reason: fmt.Sprintf("invalid digit %q", ch),
				err:    ErrInvalidFormat,
			}
		}
		v = v*10 + uint64(ch-'0')
	}
	if v > max {
		return 0, input, &fragmentError{
			reason: fmt.Sprintf("value %d exceeds capacity %d", v, max),
			err:    ErrOutOfRange,
		}
	}
	return v, input[width:], nil
}
