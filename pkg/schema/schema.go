package schema

import (
	"fmt"
	"reflect"
)

// TagKey is the struct tag consulted when deriving a schema from a struct
// type. The tag value renames the column; "-" skips the field.
const TagKey = "dsv"

// Field describes one column of a schema: its name and its scalar kind.
// Fields of struct-derived schemas additionally carry the reflect metadata
// needed to read and write the backing struct field.
type Field struct {
	Name string
	Kind Kind

	typ      reflect.Type // field type with any pointer stripped
	index    int          // struct field index; -1 for dynamic fields
	optional bool         // pointer struct field; empty token <-> nil
}

// Optional reports whether the field is a pointer field of a struct schema.
func (f Field) Optional() bool { return f.optional }

// Record is a row of a dynamic schema, keyed by fieldname. Values hold the
// canonical Go type of the field's kind (string, bool, int64, float64,
// time.Time, ...).
type Record map[string]any

// Schema is an ordered, immutable description of a record type's fields.
// It is built once per reader or writer and never re-derived per row.
type Schema struct {
	name   string
	typ    reflect.Type // nil for dynamic schemas
	fields []Field
	byName map[string]int
}

// For derives a schema from the struct type T. It fails with ErrNotStruct
// for non-struct types and with an *UnsupportedTypeError for fields that
// have no codec.
func For[T any]() (*Schema, error) {
	return TypeOf(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeOf derives a schema from a reflect type. See For.
func TypeOf(t reflect.Type) (*Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrNotStruct)
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}
	s := &Schema{name: name, typ: t, byName: make(map[string]int)}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		colName := sf.Name
		if tag, ok := sf.Tag.Lookup(TagKey); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				colName = tag
			}
		}

		ft := sf.Type
		optional := false
		if ft.Kind() == reflect.Pointer {
			optional = true
			ft = ft.Elem()
		}

		kind := kindOf(ft)
		if !kind.IsValid() {
			return nil, &UnsupportedTypeError{Field: sf.Name, Type: sf.Type}
		}

		if _, dup := s.byName[colName]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, colName)
		}
		s.byName[colName] = len(s.fields)
		s.fields = append(s.fields, Field{
			Name:     colName,
			Kind:     kind,
			typ:      ft,
			index:    i,
			optional: optional,
		})
	}

	if len(s.fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, t)
	}
	return s, nil
}

// New builds a dynamic schema from an explicit field list. Rows of a dynamic
// schema are Record maps. KindText fields are rejected because they need a
// concrete Go type; use For for those.
func New(name string, fields []Field) (*Schema, error) {
	if name == "" {
		name = "record"
	}
	s := &Schema{name: name, byName: make(map[string]int)}

	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema: %s has a field with an empty name", name)
		}
		if !f.Kind.IsValid() {
			return nil, fmt.Errorf("schema: field %s has invalid kind", f.Name)
		}
		if f.Kind == KindText {
			return nil, fmt.Errorf("schema: field %s: text fields require a struct schema", f.Name)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		s.byName[f.Name] = len(s.fields)
		s.fields = append(s.fields, Field{
			Name:  f.Name,
			Kind:  f.Kind,
			typ:   canonicalTypes[f.Kind],
			index: -1,
		})
	}

	if len(s.fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, name)
	}
	return s, nil
}

// Name returns the record type name (struct name, or the name given to New).
func (s *Schema) Name() string { return s.name }

// Dynamic reports whether the schema was built with New rather than derived
// from a struct type.
func (s *Schema) Dynamic() bool { return s.typ == nil }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns a copy of the ordered field list.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Fieldnames returns the ordered fieldnames. The result is a fresh slice and
// never contains duplicates.
func (s *Schema) Fieldnames() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Has reports whether name is one of the schema's fieldnames.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Build converts a row, keyed by fieldname, into a record. Struct schemas
// return a value of the schema's struct type; dynamic schemas return a
// Record. Every schema field must be present in the row: absent keys fail
// with a *MissingFieldError, unparseable tokens with a *CoercionError.
func (s *Schema) Build(row map[string]string) (any, error) {
	if s.typ == nil {
		rec := make(Record, len(s.fields))
		for _, f := range s.fields {
			token, ok := row[f.Name]
			if !ok {
				return nil, &MissingFieldError{Schema: s.name, Field: f.Name}
			}
			v, err := decodeValue(f.Kind, f.typ, token)
			if err != nil {
				return nil, &CoercionError{Field: f.Name, Value: token, Err: err}
			}
			rec[f.Name] = v.Interface()
		}
		return rec, nil
	}

	out := reflect.New(s.typ).Elem()
	for _, f := range s.fields {
		token, ok := row[f.Name]
		if !ok {
			return nil, &MissingFieldError{Schema: s.name, Field: f.Name}
		}
		if f.optional && token == "" {
			continue // leave the pointer nil
		}
		v, err := decodeValue(f.Kind, f.typ, token)
		if err != nil {
			return nil, &CoercionError{Field: f.Name, Value: token, Err: err}
		}
		target := out.Field(f.index)
		if f.optional {
			ptr := reflect.New(f.typ)
			ptr.Elem().Set(v)
			target.Set(ptr)
		} else {
			target.Set(v)
		}
	}
	return out.Interface(), nil
}

// Row converts a record back into tokens, restricted and reordered to the
// given fieldnames. The record's runtime type must match the schema
// (*TypeMismatchError otherwise), and every requested name must be a schema
// field (*UnknownFieldError otherwise).
func (s *Schema) Row(rec any, fieldnames []string) ([]string, error) {
	if s.typ == nil {
		return s.dynamicRow(rec, fieldnames)
	}

	rv := reflect.ValueOf(rec)
	if rv.IsValid() && rv.Kind() == reflect.Pointer && rv.Type().Elem() == s.typ && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != s.typ {
		return nil, &TypeMismatchError{Schema: s.name, Got: reflect.TypeOf(rec)}
	}

	out := make([]string, len(fieldnames))
	for i, name := range fieldnames {
		idx, ok := s.byName[name]
		if !ok {
			return nil, &UnknownFieldError{Schema: s.name, Field: name}
		}
		f := s.fields[idx]
		fv := rv.Field(f.index)
		if f.optional {
			if fv.IsNil() {
				continue // empty token
			}
			fv = fv.Elem()
		}
		token, err := encodeValue(f.Kind, fv)
		if err != nil {
			return nil, fmt.Errorf("schema: field %s: %w", name, err)
		}
		out[i] = token
	}
	return out, nil
}

func (s *Schema) dynamicRow(rec any, fieldnames []string) ([]string, error) {
	var m Record
	switch v := rec.(type) {
	case Record:
		m = v
	case map[string]any:
		m = Record(v)
	default:
		return nil, &TypeMismatchError{Schema: s.name, Got: reflect.TypeOf(rec)}
	}

	out := make([]string, len(fieldnames))
	for i, name := range fieldnames {
		idx, ok := s.byName[name]
		if !ok {
			return nil, &UnknownFieldError{Schema: s.name, Field: name}
		}
		val, ok := m[name]
		if !ok {
			return nil, &MissingFieldError{Schema: s.name, Field: name}
		}
		if val == nil {
			continue // empty token
		}
		f := s.fields[idx]
		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(f.typ) {
			return nil, fmt.Errorf("schema: field %s holds %T, want %s", name, val, f.Kind)
		}
		token, err := encodeValue(f.Kind, rv)
		if err != nil {
			return nil, fmt.Errorf("schema: field %s: %w", name, err)
		}
		out[i] = token
	}
	return out, nil
}
