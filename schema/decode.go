package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andreiashu/synthpop/fips"
)

// Decode converts the raw fields of one row into a Record. It is a pure
// function of its arguments and does not modify s: fields are trimmed of
// surrounding whitespace, converted per their declared type, and text is
// copied so the record keeps no reference to the input.
func Decode(s *Schema, fields []string) (Record, error) {
	index, err := s.layout()
	if err != nil {
		return Record{}, &DecodeError{Err: ErrInvalidSchema, Cause: err}
	}
	if len(fields) != len(s.Fields) {
		return Record{}, &DecodeError{Err: ErrFieldCountMismatch, Expected: len(s.Fields), Actual: len(fields)}
	}

	names := make([]string, len(fields))
	values := make([]Value, len(fields))
	for i, f := range s.Fields {
		v, err := decodeField(f, strings.TrimSpace(fields[i]))
		if err != nil {
			return Record{}, err
		}
		names[i], values[i] = f.Name, v
	}

	rec := Record{Kind: s.Kind, schema: s, names: names, values: values}
	code, ok := values[index[s.GeoField]].Geo()
	if !ok || !code.Valid() {
		return Record{}, &DecodeError{Err: ErrMissingRequiredField, Field: s.GeoField}
	}
	rec.Code = code
	if s.IDField != "" {
		rec.ID = values[index[s.IDField]].String()
	}
	if s.LinkField != "" {
		rec.Link = values[index[s.LinkField]].String()
	}
	return rec, nil
}

func decodeField(f Field, raw string) (Value, error) {
	v := Value{Type: f.Type}
	if raw == "" {
		if f.Required {
			return v, &DecodeError{Err: ErrMissingRequiredField, Field: f.Name}
		}
		return v, nil
	}

	var err error
	switch f.Type {
	case TypeText:
		v.Text = strings.Clone(raw)
	case TypeInt:
		v.Int, err = strconv.ParseInt(raw, 10, 64)
	case TypeCategory:
		v.Text, err = category(f, raw)
	case TypeFIPS:
		v.Code, err = fips.Parse(raw)
	case TypeHomeID:
		v.Setting, err = fips.ParseHomeID(raw)
	case TypeSchoolID:
		v.Setting, err = fips.ParseSchoolID(raw)
	case TypeWorkplaceID:
		v.Setting, err = fips.ParseWorkplaceID(raw)
	default:
		err = fmt.Errorf("unknown type %d", f.Type)
	}
	if err != nil {
		return Value{}, &DecodeError{Err: ErrFieldTypeMismatch, Field: f.Name, Raw: strings.Clone(raw), Cause: err}
	}
	v.Present = true
	return v, nil
}

// category returns the declared spelling of raw, matched case-insensitively,
// so records share the schema's strings instead of the input's.
func category(f Field, raw string) (string, error) {
	for _, allowed := range f.Values {
		if strings.EqualFold(allowed, raw) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("not one of %s", strings.Join(f.Values, ", "))
}
