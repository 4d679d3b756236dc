package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML schema declaration and validates it.
//
//	name: people
//	kind: person
//	header: true
//	geo_field: geoid
//	id_field: id
//	fields:
//	  - {name: id, type: text, required: true}
//	  - {name: sex, type: category, values: [F, M]}
//	  - {name: geoid, type: fips, required: true}
func Load(r io.Reader) (*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Schema
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return &s, nil
}

// LoadFile reads a YAML schema declaration from path.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schema file: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
