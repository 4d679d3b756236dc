package schema

// ASPRPerson returns the schema of the ASPR synthetic population person
// files (one file per state, e.g. "all_states/tx.csv"). Each row is a person:
//
//   - age as an integer by single year
//   - homeId: 11-digit tract + 4-digit within-tract id
//   - schoolId: public 11-digit tract + 3-digit id, or private 5-digit
//     county + "xprvx" + 4-digit id
//   - workId: 11-digit tract + 5-digit id
//
// The home id locates the person and links them to their household. A new
// schema is returned on each call so callers may adjust it freely.
func ASPRPerson() *Schema {
	s := &Schema{
		Name:   "aspr-person",
		Kind:   KindPerson,
		Header: true,
		Fields: []Field{
			{Name: "age", Type: TypeInt, Required: true},
			{Name: "homeId", Type: TypeHomeID, Required: true},
			{Name: "schoolId", Type: TypeSchoolID},
			{Name: "workId", Type: TypeWorkplaceID},
		},
		LinkField: "homeId",
		GeoField:  "homeId",
	}
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}
