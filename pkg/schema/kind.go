package schema

import (
	"encoding"
	"fmt"
	"reflect"
	"time"
)

// Kind identifies the scalar category of a field. It decides which codec is
// used to convert between string tokens and Go values.
type Kind int

const (
	KindInvalid Kind = iota

	KindString
	KindBool
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindTime
	KindDuration
	// KindText covers types implementing both encoding.TextMarshaler and
	// encoding.TextUnmarshaler.
	KindText
)

var kindNames = map[Kind]string{
	KindInvalid:  "invalid",
	KindString:   "string",
	KindBool:     "bool",
	KindInt:      "int",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint:     "uint",
	KindUint8:    "uint8",
	KindUint16:   "uint16",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindTime:     "time",
	KindDuration: "duration",
	KindText:     "text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsValid reports whether k names a usable field kind.
func (k Kind) IsValid() bool {
	return k > KindInvalid && k <= KindText
}

// ParseKind maps a type name from a schema definition file to a Kind.
// Accepted names are the Kind String() values plus the aliases "float"
// (float64) and "datetime" (time).
func ParseKind(name string) (Kind, error) {
	switch name {
	case "float":
		return KindFloat64, nil
	case "datetime":
		return KindTime, nil
	}
	for k, n := range kindNames {
		if n == name && k != KindInvalid {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("schema: unknown field type %q", name)
}

var (
	timeType            = reflect.TypeOf(time.Time{})
	durationType        = reflect.TypeOf(time.Duration(0))
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// kindOf classifies a reflect type. Exact types are checked before interface
// and kind fallbacks so that time.Time stays KindTime even though it also
// implements encoding.TextMarshaler.
func kindOf(t reflect.Type) Kind {
	if t == nil {
		return KindInvalid
	}

	switch t {
	case timeType:
		return KindTime
	case durationType:
		return KindDuration
	}

	if isTextCodec(t) {
		return KindText
	}

	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	default:
		return KindInvalid
	}
}

// isTextCodec reports whether t round-trips through encoding text interfaces.
// Unmarshaling needs a pointer receiver, so the pointer type is consulted.
func isTextCodec(t reflect.Type) bool {
	if !reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return false
	}
	return t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType)
}
