// Package schema declares the column layout of population data files and
// decodes raw rows into typed records.
//
// ASPR dataset versions vary their columns, so a Schema is runtime
// configuration (built in Go or loaded from YAML) rather than a fixed
// record shape. Only the identifier, the linkage key and the FIPS-bearing
// geographic field are known to every record.
package schema

import (
	"fmt"
	"strings"
)

// Type is the declared type of a column.
type Type uint8

const (
	TypeText Type = iota
	TypeInt
	TypeCategory
	TypeFIPS
	TypeHomeID
	TypeSchoolID
	TypeWorkplaceID
)

var typeNames = [...]string{"text", "int", "category", "fips", "home_id", "school_id", "workplace_id"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Geographic reports whether values of the type carry a FIPS code.
func (t Type) Geographic() bool {
	return t >= TypeFIPS && t <= TypeWorkplaceID
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range typeNames {
		if n == name {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("schema: unknown field type %q", string(b))
}

// Kind distinguishes the population entity a schema describes.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPerson
	KindHousehold
)

var kindNames = [...]string{"unknown", "person", "household"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range kindNames {
		if n == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("schema: unknown record kind %q", string(b))
}

// Field declares one column.
type Field struct {
	Name     string   `yaml:"name"`
	Type     Type     `yaml:"type"`
	Required bool     `yaml:"required"`
	Values   []string `yaml:"values,omitempty"` // allowed values of a category field
}

// Schema is the column layout of one kind of data file.
type Schema struct {
	Name      string  `yaml:"name"`
	Kind      Kind    `yaml:"kind"`
	Delimiter string  `yaml:"delimiter,omitempty"` // single character; "," when empty
	Header    bool    `yaml:"header"`              // first line of each entry is a header row
	Fields    []Field `yaml:"fields"`

	IDField   string `yaml:"id_field,omitempty"`
	LinkField string `yaml:"link_field,omitempty"`
	GeoField  string `yaml:"geo_field"`
}

// Validate checks the schema is usable. Decode checks the schema as it is
// at each call, so a schema may be changed between rows.
func (s *Schema) Validate() error {
	_, err := s.layout()
	return err
}

// layout validates the schema and returns the position of each field.
func (s *Schema) layout() (map[string]int, error) {
	if len(s.Fields) == 0 {
		return nil, fmt.Errorf("schema %q: no fields", s.Name)
	}
	if len([]rune(s.delimiter())) != 1 {
		return nil, fmt.Errorf("schema %q: delimiter %q must be a single character", s.Name, s.Delimiter)
	}
	index := make(map[string]int, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema %q: field %d has no name", s.Name, i)
		}
		if _, dup := index[f.Name]; dup {
			return nil, fmt.Errorf("schema %q: duplicate field %q", s.Name, f.Name)
		}
		if f.Type > TypeWorkplaceID {
			return nil, fmt.Errorf("schema %q: field %q: unknown type %d", s.Name, f.Name, f.Type)
		}
		if f.Type == TypeCategory && len(f.Values) == 0 {
			return nil, fmt.Errorf("schema %q: category field %q declares no values", s.Name, f.Name)
		}
		index[f.Name] = i
	}

	geo, ok := index[s.GeoField]
	if !ok {
		return nil, fmt.Errorf("schema %q: geo field %q is not declared", s.Name, s.GeoField)
	}
	if !s.Fields[geo].Type.Geographic() {
		return nil, fmt.Errorf("schema %q: geo field %q has type %s, which carries no FIPS code", s.Name, s.GeoField, s.Fields[geo].Type)
	}
	if !s.Fields[geo].Required {
		return nil, fmt.Errorf("schema %q: geo field %q must be required", s.Name, s.GeoField)
	}
	for _, name := range []string{s.IDField, s.LinkField} {
		if name == "" {
			continue
		}
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("schema %q: field %q is not declared", s.Name, name)
		}
	}
	return index, nil
}

// FieldIndex returns the position of the named field.
func (s *Schema) FieldIndex(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

func (s *Schema) delimiter() string {
	if s.Delimiter == "" {
		return ","
	}
	return s.Delimiter
}

// Split breaks a raw line into fields on the schema's delimiter. A trailing
// carriage return is dropped. Quoting is not interpreted: ASPR files never
// quote fields.
func (s *Schema) Split(line string) []string {
	line = strings.TrimSuffix(line, "\r")
	return strings.Split(line, s.delimiter())
}
