package schema

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// canonicalTypes backs dynamic schemas, where a field has a Kind but no
// declared Go type.
var canonicalTypes = map[Kind]reflect.Type{
	KindString:   reflect.TypeOf(""),
	KindBool:     reflect.TypeOf(false),
	KindInt:      reflect.TypeOf(int(0)),
	KindInt8:     reflect.TypeOf(int8(0)),
	KindInt16:    reflect.TypeOf(int16(0)),
	KindInt32:    reflect.TypeOf(int32(0)),
	KindInt64:    reflect.TypeOf(int64(0)),
	KindUint:     reflect.TypeOf(uint(0)),
	KindUint8:    reflect.TypeOf(uint8(0)),
	KindUint16:   reflect.TypeOf(uint16(0)),
	KindUint32:   reflect.TypeOf(uint32(0)),
	KindUint64:   reflect.TypeOf(uint64(0)),
	KindFloat32:  reflect.TypeOf(float32(0)),
	KindFloat64:  reflect.TypeOf(float64(0)),
	KindTime:     timeType,
	KindDuration: durationType,
}

var intBits = map[Kind]int{
	KindInt: 0, KindInt8: 8, KindInt16: 16, KindInt32: 32, KindInt64: 64,
	KindUint: 0, KindUint8: 8, KindUint16: 16, KindUint32: 32, KindUint64: 64,
}

// decodeValue parses one token into a value of type t, classified as kind k.
// Named types are produced via conversion from the parsed base value.
func decodeValue(k Kind, t reflect.Type, token string) (reflect.Value, error) {
	switch k {
	case KindString:
		return reflect.ValueOf(token).Convert(t), nil

	case KindBool:
		b, err := strconv.ParseBool(token)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b).Convert(t), nil

	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		n, err := strconv.ParseInt(token, 10, intBits[k])
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(t), nil

	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		n, err := strconv.ParseUint(token, 10, intBits[k])
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(t), nil

	case KindFloat32:
		f, err := strconv.ParseFloat(token, 32)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f).Convert(t), nil

	case KindFloat64:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f).Convert(t), nil

	case KindTime:
		ts, err := time.Parse(time.RFC3339Nano, token)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(ts).Convert(t), nil

	case KindDuration:
		d, err := time.ParseDuration(token)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d).Convert(t), nil

	case KindText:
		ptr := reflect.New(t)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(token)); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil

	default:
		return reflect.Value{}, fmt.Errorf("schema: no codec for kind %s", k)
	}
}

// encodeValue formats a value of kind k as one token.
func encodeValue(k Kind, v reflect.Value) (string, error) {
	switch k {
	case KindString:
		return v.String(), nil

	case KindBool:
		return strconv.FormatBool(v.Bool()), nil

	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.Int(), 10), nil

	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.Uint(), 10), nil

	case KindFloat32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32), nil

	case KindFloat64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil

	case KindTime:
		return v.Convert(timeType).Interface().(time.Time).Format(time.RFC3339Nano), nil

	case KindDuration:
		return v.Convert(durationType).Interface().(time.Duration).String(), nil

	case KindText:
		m, ok := v.Interface().(encoding.TextMarshaler)
		if !ok {
			// Marshaling may need the pointer receiver.
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			m = ptr.Interface().(encoding.TextMarshaler)
		}
		text, err := m.MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil

	default:
		return "", fmt.Errorf("schema: no codec for kind %s", k)
	}
}
