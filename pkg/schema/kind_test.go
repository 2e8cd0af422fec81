package schema

import (
	"net"
	"reflect"
	"testing"
	"time"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		typ  reflect.Type
		want Kind
	}{
		{name: "string", typ: reflect.TypeOf(""), want: KindString},
		{name: "bool", typ: reflect.TypeOf(false), want: KindBool},
		{name: "int", typ: reflect.TypeOf(int(0)), want: KindInt},
		{name: "int8", typ: reflect.TypeOf(int8(0)), want: KindInt8},
		{name: "int16", typ: reflect.TypeOf(int16(0)), want: KindInt16},
		{name: "int32", typ: reflect.TypeOf(int32(0)), want: KindInt32},
		{name: "int64", typ: reflect.TypeOf(int64(0)), want: KindInt64},
		{name: "uint", typ: reflect.TypeOf(uint(0)), want: KindUint},
		{name: "uint8", typ: reflect.TypeOf(uint8(0)), want: KindUint8},
		{name: "uint16", typ: reflect.TypeOf(uint16(0)), want: KindUint16},
		{name: "uint32", typ: reflect.TypeOf(uint32(0)), want: KindUint32},
		{name: "uint64", typ: reflect.TypeOf(uint64(0)), want: KindUint64},
		{name: "float32", typ: reflect.TypeOf(float32(0)), want: KindFloat32},
		{name: "float64", typ: reflect.TypeOf(float64(0)), want: KindFloat64},
		{
			// time.Time also implements encoding.TextMarshaler; the exact
			// type match must win.
			name: "time.Time",
			typ:  reflect.TypeOf(time.Time{}),
			want: KindTime,
		},
		{
			// time.Duration is an int64 underneath; the exact type match
			// must win over the integer fallback.
			name: "time.Duration",
			typ:  reflect.TypeOf(time.Duration(0)),
			want: KindDuration,
		},
		{name: "text codec type", typ: reflect.TypeOf(net.IP{}), want: KindText},
		{name: "named string", typ: reflect.TypeOf(species("")), want: KindString},
		{name: "slice", typ: reflect.TypeOf([]int{}), want: KindInvalid},
		{name: "map", typ: reflect.TypeOf(map[string]int{}), want: KindInvalid},
		{name: "plain struct", typ: reflect.TypeOf(struct{ X int }{}), want: KindInvalid},
		{name: "func", typ: reflect.TypeOf(func() {}), want: KindInvalid},
		{name: "nil", typ: nil, want: KindInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := kindOf(tc.typ); got != tc.want {
				t.Errorf("kindOf(%v) = %s, want %s", tc.typ, got, tc.want)
			}
		})
	}
}

type species string

func TestParseKind(t *testing.T) {
	testCases := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{name: "string", want: KindString},
		{name: "bool", want: KindBool},
		{name: "int", want: KindInt},
		{name: "int64", want: KindInt64},
		{name: "uint32", want: KindUint32},
		{name: "float32", want: KindFloat32},
		{name: "float64", want: KindFloat64},
		{name: "float", want: KindFloat64},
		{name: "time", want: KindTime},
		{name: "datetime", want: KindTime},
		{name: "duration", want: KindDuration},
		{name: "text", want: KindText},
		{name: "invalid", wantErr: true},
		{name: "", wantErr: true},
		{name: "varchar", wantErr: true},
		{name: "Float64", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run("name="+tc.name, func(t *testing.T) {
			got, err := ParseKind(tc.name)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) succeeded as %s, want error", tc.name, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) failed: %v", tc.name, err)
			}
			if got != tc.want {
				t.Errorf("ParseKind(%q) = %s, want %s", tc.name, got, tc.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindFloat64.String(); got != "float64" {
		t.Errorf("String mismatch: got %q, want %q", got, "float64")
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("String mismatch for out-of-range kind: got %q", got)
	}
	if KindInvalid.IsValid() {
		t.Error("KindInvalid reported as valid")
	}
	if !KindText.IsValid() {
		t.Error("KindText reported as invalid")
	}
}
