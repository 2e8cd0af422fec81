// Package schema derives and applies record schemas for delimited text I/O.
//
// A Schema is an ordered list of named, typed fields describing one row of a
// tabular file. It is the single source of truth for column names, column
// order, and the per-field conversion between string tokens and Go values.
//
// # Building a schema
//
// Schemas are built exactly once, at reader/writer construction, and are
// immutable afterwards. There are two constructors:
//
//	// Static: derived from a struct type by reflection.
//	s, err := schema.For[Pet]()
//
//	// Dynamic: declared at run time, rows are schema.Record maps.
//	s, err := schema.New("pet", []schema.Field{
//	    {Name: "name", Kind: schema.KindString},
//	    {Name: "age", Kind: schema.KindInt},
//	})
//
// For struct schemas the column order is the struct's declaration order.
// The `dsv` struct tag renames a column, and `dsv:"-"` skips a field:
//
//	type Pet struct {
//	    Name   string `dsv:"name"`
//	    Age    int    `dsv:"age"`
//	    Secret string `dsv:"-"`
//	}
//
// Unexported and anonymous (embedded) fields are skipped. A pointer field is
// optional: an empty token decodes to nil and a nil value encodes to the
// empty token.
//
// # Converting rows
//
// Build converts a row, keyed by fieldname, into a record value; Row converts
// a record value back into tokens for a chosen field order. Both report
// failures per field: a missing key is a *MissingFieldError (never defaulted),
// a token that does not parse is a *CoercionError naming the field and the
// raw value, and a record of the wrong runtime type is a *TypeMismatchError.
//
// # Supported field types
//
// string, bool, every int/uint width, float32/float64, time.Time (RFC 3339),
// time.Duration, named types of those kinds, and any type implementing both
// encoding.TextMarshaler and encoding.TextUnmarshaler.
package schema
