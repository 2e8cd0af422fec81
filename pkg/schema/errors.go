package schema

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotStruct is returned when a schema is requested for a type that is
	// not a struct.
	ErrNotStruct = errors.New("schema: record type must be a struct")
	// ErrNoFields is returned when a schema would contain no fields.
	ErrNoFields = errors.New("schema: schema has no fields")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("schema: duplicate fieldname")
)

// UnsupportedTypeError reports a struct field whose type has no codec.
type UnsupportedTypeError struct {
	Field string
	Type  reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("schema: field %s has unsupported type %s", e.Field, e.Type)
}

// TypeMismatchError reports a record value whose runtime type is not the
// type the schema was built from.
type TypeMismatchError struct {
	Schema string
	Got    reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("schema: record must be of type %s, got %s", e.Schema, e.Got)
}

// UnknownFieldError reports a requested fieldname that is not part of the
// schema.
type UnknownFieldError struct {
	Schema string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("schema: %s is not a field of %s", e.Field, e.Schema)
}

// MissingFieldError reports a schema field for which a row holds no value.
// Values are never defaulted.
type MissingFieldError struct {
	Schema string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("schema: row has no value for field %s of %s", e.Field, e.Schema)
}

// CoercionError reports a raw value that could not be converted to the
// declared type of its field.
type CoercionError struct {
	Field string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("schema: cannot coerce %q into field %s: %v", e.Value, e.Field, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
