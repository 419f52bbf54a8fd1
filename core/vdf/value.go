package vdf

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// Kind is the one byte type tag that precedes every field.
type Kind byte

const (
	KindMap        Kind = 0x00
	KindString     Kind = 0x01
	KindInt32      Kind = 0x02
	KindFloat32    Kind = 0x03
	KindPointer    Kind = 0x04
	KindWideString Kind = 0x05
	KindColor      Kind = 0x06
	KindUint64     Kind = 0x07
	KindEnd        Kind = 0x08
	KindInt64      Kind = 0x0A
	KindEndAlt     Kind = 0x0B
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindString:
		return "string"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	case KindPointer:
		return "pointer"
	case KindWideString:
		return "wstring"
	case KindColor:
		return "color"
	case KindUint64:
		return "uint64"
	case KindEnd, KindEndAlt:
		return "end"
	case KindInt64:
		return "int64"
	default:
		return fmt.Sprintf("kind(0x%02x)", byte(k))
	}
}

// Value is a single typed payload.
// Scalars keep their raw bits so that decoding and re-encoding is lossless.
type Value struct {
	kind Kind
	str  string
	bits uint64
	m    *Map
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int32 returns an int32 value.
func Int32(v int32) Value { return Value{kind: KindInt32, bits: uint64(uint32(v))} }

// Uint32 returns an int32-tagged value holding the bits of v.
// The format has no unsigned 32-bit kind; Steam stores AppIDs this way.
func Uint32(v uint32) Value { return Value{kind: KindInt32, bits: uint64(v)} }

// Float32 returns a float32 value.
func Float32(v float32) Value { return Value{kind: KindFloat32, bits: uint64(math.Float32bits(v))} }

// Pointer returns a pointer value.
func Pointer(v uint32) Value { return Value{kind: KindPointer, bits: uint64(v)} }

// Color returns a color value.
func Color(v uint32) Value { return Value{kind: KindColor, bits: uint64(v)} }

// Uint64 returns a uint64 value.
func Uint64(v uint64) Value { return Value{kind: KindUint64, bits: v} }

// Int64 returns an int64 value.
func Int64(v int64) Value { return Value{kind: KindInt64, bits: uint64(v)} }

// WideString returns a UTF-16 string value.
func WideString(s string) Value {
	raw, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(s)
	if err != nil {
		raw = ""
	}
	return Value{kind: KindWideString, str: raw}
}

// MapValue wraps m as a nested map value.
func MapValue(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// Str returns the payload of a string value.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Text returns the decoded payload of a wide string value.
func (v Value) Text() (string, bool) {
	if v.kind != KindWideString {
		return "", false
	}
	s, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().String(v.str)
	if err != nil {
		return "", false
	}
	return s, true
}

// Uint32 returns the bits of any 32-bit scalar.
func (v Value) Uint32() (uint32, bool) {
	switch v.kind {
	case KindInt32, KindPointer, KindColor, KindFloat32:
		return uint32(v.bits), true
	}
	return 0, false
}

// Int32 returns the payload of an int32 value.
func (v Value) Int32() (int32, bool) {
	if v.kind != KindInt32 {
		return 0, false
	}
	return int32(uint32(v.bits)), true
}

// Float32 returns the payload of a float32 value.
func (v Value) Float32() (float32, bool) {
	if v.kind != KindFloat32 {
		return 0, false
	}
	return math.Float32frombits(uint32(v.bits)), true
}

// Uint64 returns the bits of a uint64 or int64 value.
func (v Value) Uint64() (uint64, bool) {
	if v.kind != KindUint64 && v.kind != KindInt64 {
		return 0, false
	}
	return v.bits, true
}

// Map returns the nested map of a map value.
func (v Value) Map() (*Map, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Interface returns the payload as a plain Go value, for logging and loose conversions.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindWideString:
		s, _ := v.Text()
		return s
	case KindInt32:
		return int32(uint32(v.bits))
	case KindFloat32:
		f, _ := v.Float32()
		return f
	case KindPointer, KindColor:
		return uint32(v.bits)
	case KindUint64:
		return v.bits
	case KindInt64:
		return int64(v.bits)
	case KindMap:
		return v.m
	}
	return nil
}
