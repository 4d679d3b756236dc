package schema

import (
	"errors"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/andreiashu/synthpop/fips"
)

func peopleSchema() *Schema {
	return &Schema{
		Name:   "people",
		Kind:   KindPerson,
		Header: true,
		Fields: []Field{
			{Name: "id", Type: TypeText, Required: true},
			{Name: "sex", Type: TypeCategory, Required: true, Values: []string{"F", "M"}},
			{Name: "geoid", Type: TypeFIPS, Required: true},
			{Name: "age", Type: TypeInt},
		},
		IDField:  "id",
		GeoField: "geoid",
	}
}

func TestDecode(t *testing.T) {
	s := peopleSchema()
	rec, err := Decode(s, s.Split(" 123 ,f,06037000100, 42\r"))
	require.NoError(t, err)

	require.Equal(t, KindPerson, rec.Kind)
	require.Equal(t, "123", rec.ID)
	require.Equal(t, "06037000100", rec.Code.String())
	require.Equal(t, 4, rec.Len())

	age, ok := rec.Int("age")
	require.True(t, ok)
	require.EqualValues(t, 42, age)

	sex, ok := rec.Text("sex")
	require.True(t, ok)
	require.Equal(t, "F", sex)

	geo, ok := rec.Geo("geoid")
	require.True(t, ok)
	require.True(t, fips.MustParse("06037").IsPrefixOf(geo))

	_, ok = rec.Get("missing")
	require.False(t, ok)
	require.Equal(t, "123", rec.Key())
}

func TestDecodeFieldCountMismatch(t *testing.T) {
	s := peopleSchema()
	_, err := Decode(s, s.Split("123,F,06037"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFieldCountMismatch))

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	require.Equal(t, 4, de.Expected)
	require.Equal(t, 3, de.Actual)
}

func TestDecodeTypeMismatch(t *testing.T) {
	s := peopleSchema()
	tests := []struct {
		name  string
		row   string
		field string
		raw   string
	}{
		{"bad int", "1,F,06037,forty", "age", "forty"},
		{"bad category", "1,X,06037,40", "sex", "X"},
		{"bad fips", "1,F,6037,40", "geoid", "6037"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(s, s.Split(tt.row))
			require.True(t, errors.Is(err, ErrFieldTypeMismatch))

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			require.Equal(t, tt.field, de.Field)
			require.Equal(t, tt.raw, de.Raw)
		})
	}

	_, err := Decode(s, s.Split("1,F,6037,40"))
	require.True(t, errors.Is(err, fips.ErrInvalidFormat))
}

func TestDecodeMissingRequired(t *testing.T) {
	s := peopleSchema()
	_, err := Decode(s, s.Split("1,F,  ,40"))
	require.True(t, errors.Is(err, ErrMissingRequiredField))

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	require.Equal(t, "geoid", de.Field)

	rec, err := Decode(s, s.Split("1,M,06037,"))
	require.NoError(t, err)
	_, ok := rec.Int("age")
	require.False(t, ok)
	v, ok := rec.Get("age")
	require.True(t, ok)
	require.False(t, v.Present)
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	s := peopleSchema()
	buf := []byte("abc,F,06037,1")
	line := string(buf)
	rec, err := Decode(s, s.Split(line))
	require.NoError(t, err)

	id, _ := rec.Text("id")
	require.Equal(t, "abc", id)
	require.NotSame(t, unsafe.StringData(line), unsafe.StringData(id))
}

func TestDecodeASPRPerson(t *testing.T) {
	s := ASPRPerson()
	rec, err := Decode(s, s.Split("34,481559501000128,48155950100001,4848795060000714"))
	require.NoError(t, err)

	require.Equal(t, KindPerson, rec.Kind)
	require.Equal(t, fips.LevelTract, rec.Code.Level())
	require.Equal(t, "48155950100", rec.Code.String())
	require.Equal(t, "481559501000128", rec.Link)
	require.True(t, fips.MustParse("48155").IsPrefixOf(rec.Code))

	home, ok := rec.Setting("homeId")
	require.True(t, ok)
	require.Equal(t, fips.SettingHome, home.Category)
	require.EqualValues(t, 128, home.ID)

	work, ok := rec.Setting("workId")
	require.True(t, ok)
	require.Equal(t, "48487950600", work.Code.String())

	rec, err = Decode(s, s.Split("7,021300003000173,,"))
	require.NoError(t, err)
	_, ok = rec.Setting("schoolId")
	require.False(t, ok)
	require.True(t, strings.HasPrefix(rec.String(), "person 02130000300"))
}

func TestDecodeFollowsSchemaChanges(t *testing.T) {
	s := ASPRPerson()
	before, err := Decode(s, s.Split("34,481559501000128,,"))
	require.NoError(t, err)

	s.Fields = []Field{s.Fields[1], s.Fields[0]}
	rec, err := Decode(s, []string{"481559501000128", "34"})
	require.NoError(t, err)
	require.Equal(t, "48155950100", rec.Code.String())
	require.Equal(t, "481559501000128", rec.Link)
	age, ok := rec.Int("age")
	require.True(t, ok)
	require.EqualValues(t, 34, age)

	// Records decoded earlier keep their own column layout.
	age, ok = before.Int("age")
	require.True(t, ok)
	require.EqualValues(t, 34, age)

	s.Fields = s.Fields[1:]
	_, err = Decode(s, []string{"34"})
	require.ErrorIs(t, err, ErrInvalidSchema)
}

func TestDecodeChecksGeoFieldOnEachCall(t *testing.T) {
	s := &Schema{
		Fields:   []Field{{Name: "geoid", Type: TypeFIPS, Required: true}},
		GeoField: "geoid",
	}
	_, err := Decode(s, []string{"06037"})
	require.NoError(t, err)

	s.Fields[0].Required = false
	_, err = Decode(s, []string{""})
	require.ErrorIs(t, err, ErrInvalidSchema)
}

func TestDecodeInvalidSchema(t *testing.T) {
	s := &Schema{Name: "broken", Fields: []Field{{Name: "a", Type: TypeInt}}, GeoField: "a"}
	_, err := Decode(s, []string{"1"})
	require.True(t, errors.Is(err, ErrInvalidSchema))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
	}{
		{"no fields", Schema{GeoField: "g"}},
		{"missing geo", Schema{Fields: []Field{{Name: "a", Type: TypeInt}}}},
		{"geo not geographic", Schema{Fields: []Field{{Name: "g", Type: TypeText, Required: true}}, GeoField: "g"}},
		{"geo optional", Schema{Fields: []Field{{Name: "g", Type: TypeFIPS}}, GeoField: "g"}},
		{"duplicate", Schema{Fields: []Field{{Name: "g", Type: TypeFIPS, Required: true}, {Name: "g", Type: TypeInt}}, GeoField: "g"}},
		{"empty category", Schema{Fields: []Field{{Name: "g", Type: TypeFIPS, Required: true}, {Name: "c", Type: TypeCategory}}, GeoField: "g"}},
		{"bad delimiter", Schema{Delimiter: "::", Fields: []Field{{Name: "g", Type: TypeFIPS, Required: true}}, GeoField: "g"}},
		{"unknown id", Schema{Fields: []Field{{Name: "g", Type: TypeFIPS, Required: true}}, GeoField: "g", IDField: "id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.schema.Validate())
		})
	}
	require.NoError(t, peopleSchema().Validate())
}

func TestSplitDelimiter(t *testing.T) {
	s := &Schema{Delimiter: "\t"}
	require.Equal(t, []string{"a", "b", ""}, s.Split("a\tb\t"))
	require.Equal(t, []string{"a,b"}, s.Split("a,b\r"))
}
