package vdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *Map {
	tags := NewMap()
	tags.Append("0", String("favorite"))

	entry := NewMap()
	entry.Append("appid", Uint32(0x8000ABCD))
	entry.Append("AppName", String("Foo"))
	entry.Append("ratio", Float32(1.5))
	entry.Append("ptr", Pointer(7))
	entry.Append("tint", Color(0xFF00FF00))
	entry.Append("big", Uint64(1<<40))
	entry.Append("neg", Int64(-42))
	entry.Append("wide", WideString("héllo"))
	entry.Append("tags", MapValue(tags))

	list := NewMap()
	list.Append("0", MapValue(entry))

	doc := NewMap()
	doc.Append("shortcuts", MapValue(list))
	return doc
}

func TestEncode_LayoutOfSimpleDocument(t *testing.T) {
	inner := NewMap()
	inner.Append("n", Int32(1))
	inner.Append("s", String("x"))

	doc := NewMap()
	doc.Append("m", MapValue(inner))

	got, err := Encode(doc)
	require.NoError(t, err)

	want := []byte{
		0x00, 'm', 0x00,
		0x02, 'n', 0x00, 0x01, 0x00, 0x00, 0x00,
		0x01, 's', 0x00, 'x', 0x00,
		0x08,
		0x08,
	}
	assert.Equal(t, want, got)
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDoc()

	data, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)

	again, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDecode_EmptyDocument(t *testing.T) {
	doc, err := Decode([]byte{0x08})
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestDecode_AcceptsAlternateEndMarker(t *testing.T) {
	doc, err := Decode([]byte{0x00, 'a', 0x00, 0x0B, 0x0B})
	require.NoError(t, err)

	v, ok := doc.Get("a")
	require.True(t, ok)
	m, ok := v.Map()
	require.True(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Empty", []byte{}, ErrTruncated},
		{"MissingEnd", []byte{0x01, 'k', 0x00, 'v', 0x00}, ErrTruncated},
		{"UnterminatedKey", []byte{0x01, 'k'}, ErrTruncated},
		{"ShortInt", []byte{0x02, 'k', 0x00, 0x01, 0x02}, ErrTruncated},
		{"UnknownKind", []byte{0x09, 'k', 0x00, 0x08}, ErrUnknownKind},
		{"Trailing", []byte{0x08, 0x08}, ErrTrailingData},
		{"UnterminatedWide", []byte{0x05, 'k', 0x00, 'a', 0x00}, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_DepthLimit(t *testing.T) {
	var data []byte
	for i := 0; i <= MaxDepth+1; i++ {
		data = append(data, 0x00, 'm', 0x00)
	}
	for i := 0; i <= MaxDepth+2; i++ {
		data = append(data, 0x08)
	}

	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestEncode_RejectsNUL(t *testing.T) {
	doc := NewMap()
	doc.Append("k", String("a\x00b"))
	_, err := Encode(doc)
	assert.ErrorIs(t, err, ErrInvalidString)

	doc = NewMap()
	doc.Append("k\x00", String("v"))
	_, err = Encode(doc)
	assert.ErrorIs(t, err, ErrInvalidString)
}

func TestDecode_KeepsDuplicateKeysInOrder(t *testing.T) {
	data := []byte{
		0x01, 'k', 0x00, '1', 0x00,
		0x01, 'k', 0x00, '2', 0x00,
		0x08,
	}
	doc, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, 2, doc.Len())

	out, err := Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}
