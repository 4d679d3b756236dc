package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreiashu/synthpop/fips"
)

const householdsYAML = `
name: households
kind: household
header: true
delimiter: "|"
id_field: hh_id
geo_field: geoid
fields:
  - {name: hh_id, type: text, required: true}
  - {name: geoid, type: fips, required: true}
  - {name: size, type: int}
  - {name: tenure, type: category, values: [own, rent]}
`

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(householdsYAML))
	require.NoError(t, err)

	require.Equal(t, "households", s.Name)
	require.Equal(t, KindHousehold, s.Kind)
	require.True(t, s.Header)
	require.Len(t, s.Fields, 4)
	require.Equal(t, TypeCategory, s.Fields[3].Type)

	i, ok := s.FieldIndex("size")
	require.True(t, ok)
	require.Equal(t, 2, i)

	rec, err := Decode(s, s.Split("h-1|48201|3|RENT"))
	require.NoError(t, err)
	require.Equal(t, "h-1", rec.ID)
	require.Equal(t, fips.LevelCounty, rec.Code.Level())

	tenure, _ := rec.Text("tenure")
	require.Equal(t, "rent", tenure)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "name: x\ngeo_field: g\ncolour: red\nfields:\n  - {name: g, type: fips, required: true}\n"},
		{"unknown type", "name: x\ngeo_field: g\nfields:\n  - {name: g, type: float, required: true}\n"},
		{"unknown kind", "name: x\nkind: pet\ngeo_field: g\nfields:\n  - {name: g, type: fips, required: true}\n"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}

	_, err := Load(strings.NewReader("name: x\ngeo_field: missing\nfields:\n  - {name: g, type: fips, required: true}\n"))
	require.True(t, errors.Is(err, ErrInvalidSchema))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "households.yaml")
	require.NoError(t, os.WriteFile(path, []byte(householdsYAML), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "households", s.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTypeText(t *testing.T) {
	for typ := TypeText; typ <= TypeWorkplaceID; typ++ {
		b, err := typ.MarshalText()
		require.NoError(t, err)

		var back Type
		require.NoError(t, back.UnmarshalText(b))
		require.Equal(t, typ, back)
	}
	require.False(t, TypeInt.Geographic())
	require.True(t, TypeSchoolID.Geographic())
}

// Every record decoded with a FIPS geo field lies inside its own state and
// county prefixes.
func TestDecodedCodeIsInsideItsPrefixes(t *testing.T) {
	s := peopleSchema()
	rows := []string{
		"a,F,06,1",
		"b,M,06037,2",
		"c,F,06037137000,3",
		"d,M,060371370001001,4",
		"e,F,72127000100,5",
	}
	for _, row := range rows {
		rec, err := Decode(s, s.Split(row))
		require.NoError(t, err, row)

		for lvl := fips.LevelState; lvl <= rec.Code.Level(); lvl++ {
			require.True(t, rec.Code.Truncate(lvl).IsPrefixOf(rec.Code), "%s at %s", row, lvl)
		}
	}
}
