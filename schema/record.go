package schema

import (
	"fmt"
	"strings"

	"github.com/andreiashu/synthpop/fips"
)

// Value is one decoded column. Only the member matching Type is set.
type Value struct {
	Type    Type
	Present bool // false for an empty optional column

	Text    string
	Int     int64
	Code    fips.Code
	Setting fips.SettingID
}

// Geo returns the FIPS code carried by a geographic value.
func (v Value) Geo() (fips.Code, bool) {
	if !v.Present {
		return 0, false
	}
	switch v.Type {
	case TypeFIPS:
		return v.Code, true
	case TypeHomeID, TypeSchoolID, TypeWorkplaceID:
		return v.Setting.Code, true
	}
	return 0, false
}

func (v Value) String() string {
	if !v.Present {
		return ""
	}
	switch v.Type {
	case TypeInt:
		return fmt.Sprint(v.Int)
	case TypeFIPS:
		return v.Code.String()
	case TypeHomeID, TypeSchoolID, TypeWorkplaceID:
		return v.Setting.String()
	}
	return v.Text
}

// Record is a decoded row. Records are immutable once returned and share no
// memory with the line they were decoded from.
type Record struct {
	Kind Kind
	ID   string    // value of the schema's IDField, if declared
	Link string    // value of the schema's LinkField, if declared
	Code fips.Code // location at the finest level the geo field provides

	// Entry and Line locate the row in its source. They are set by the
	// dataset reader; Decode leaves them zero.
	Entry string
	Line  int

	schema *Schema
	names  []string // column names as declared when the row was decoded
	values []Value
}

// Schema returns the schema the record was decoded with.
func (r Record) Schema() *Schema { return r.schema }

// Key identifies the record: its ID when the schema declares one, otherwise
// its source position.
func (r Record) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("%s:%d", r.Entry, r.Line)
}

// Len returns the number of columns.
func (r Record) Len() int { return len(r.values) }

// At returns the value of column i.
func (r Record) At(i int) Value { return r.values[i] }

// Get returns the named column's value.
func (r Record) Get(name string) (Value, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return Value{}, false
}

// Int returns the named integer column.
func (r Record) Int(name string) (int64, bool) {
	v, ok := r.Get(name)
	if !ok || !v.Present || v.Type != TypeInt {
		return 0, false
	}
	return v.Int, true
}

// Text returns the named text or category column.
func (r Record) Text(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok || !v.Present || (v.Type != TypeText && v.Type != TypeCategory) {
		return "", false
	}
	return v.Text, true
}

// Setting returns the named ASPR setting id column.
func (r Record) Setting(name string) (fips.SettingID, bool) {
	v, ok := r.Get(name)
	if !ok || !v.Present {
		return fips.SettingID{}, false
	}
	switch v.Type {
	case TypeHomeID, TypeSchoolID, TypeWorkplaceID:
		return v.Setting, true
	}
	return fips.SettingID{}, false
}

// Geo returns the FIPS code of the named geographic column.
func (r Record) Geo(name string) (fips.Code, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	return v.Geo()
}

func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", r.Kind, r.Code)
	for i, name := range r.names {
		if !r.values[i].Present {
			continue
		}
		fmt.Fprintf(&b, ", %s: %s", name, r.values[i])
	}
	return b.String()
}
