package vdf

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// MaxDepth bounds map nesting on decode.
const MaxDepth = 32

// Decode parses a binary KeyValues document.
func Decode(data []byte) (*Map, error) {
	d := &decoder{data: data}
	doc, err := d.readMap(0)
	if err != nil {
		return nil, err
	}
	if d.off != len(d.data) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrTrailingData, len(d.data)-d.off, d.off)
	}
	return doc, nil
}

type decoder struct {
	data []byte
	off  int
}

func (d *decoder) readMap(depth int) (*Map, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w at offset %d", ErrTooDeep, d.off)
	}

	m := NewMap()
	for {
		if d.off >= len(d.data) {
			return nil, fmt.Errorf("%w: missing end marker at offset %d", ErrTruncated, d.off)
		}
		kind := Kind(d.data[d.off])
		d.off++

		if kind == KindEnd || kind == KindEndAlt {
			return m, nil
		}

		key, err := d.readString()
		if err != nil {
			return nil, err
		}

		v, err := d.readValue(kind, depth)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		m.Append(key, v)
	}
}

func (d *decoder) readValue(kind Kind, depth int) (Value, error) {
	switch kind {
	case KindMap:
		child, err := d.readMap(depth + 1)
		if err != nil {
			return Value{}, err
		}
		return MapValue(child), nil
	case KindString:
		s, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case KindWideString:
		s, err := d.readWideString()
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindWideString, str: s}, nil
	case KindInt32, KindFloat32, KindPointer, KindColor:
		b, err := d.take(4)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: kind, bits: uint64(binary.LittleEndian.Uint32(b))}, nil
	case KindUint64, KindInt64:
		b, err := d.take(8)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: kind, bits: binary.LittleEndian.Uint64(b)}, nil
	default:
		return Value{}, fmt.Errorf("%w 0x%02x at offset %d", ErrUnknownKind, byte(kind), d.off-1)
	}
}

func (d *decoder) take(n int) ([]byte, error) {
	if len(d.data)-d.off < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d", ErrTruncated, n, d.off)
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) readString() (string, error) {
	i := bytes.IndexByte(d.data[d.off:], 0)
	if i < 0 {
		return "", fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, d.off)
	}
	s := string(d.data[d.off : d.off+i])
	d.off += i + 1
	return s, nil
}

// readWideString returns the raw UTF-16LE payload without its terminator.
func (d *decoder) readWideString() (string, error) {
	for i := d.off; i+1 < len(d.data); i += 2 {
		if d.data[i] == 0 && d.data[i+1] == 0 {
			s := string(d.data[d.off:i])
			d.off = i + 2
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unterminated wide string at offset %d", ErrTruncated, d.off)
}

// Encode serializes doc. Fields are written in stored order, so the output is
// deterministic for a given document.
func Encode(doc *Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeMap(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMap(buf *bytes.Buffer, m *Map) error {
	for _, f := range m.Fields() {
		if err := writeField(buf, f); err != nil {
			return err
		}
	}
	buf.WriteByte(byte(KindEnd))
	return nil
}

func writeField(buf *bytes.Buffer, f Field) error {
	v := f.Value
	buf.WriteByte(byte(v.kind))
	if err := writeString(buf, f.Key); err != nil {
		return fmt.Errorf("key %q: %w", f.Key, err)
	}

	var scratch [8]byte
	switch v.kind {
	case KindMap:
		return writeMap(buf, v.m)
	case KindString:
		if err := writeString(buf, v.str); err != nil {
			return fmt.Errorf("field %q: %w", f.Key, err)
		}
	case KindWideString:
		buf.WriteString(v.str)
		buf.Write([]byte{0, 0})
	case KindInt32, KindFloat32, KindPointer, KindColor:
		binary.LittleEndian.PutUint32(scratch[:4], uint32(v.bits))
		buf.Write(scratch[:4])
	case KindUint64, KindInt64:
		binary.LittleEndian.PutUint64(scratch[:], v.bits)
		buf.Write(scratch[:])
	default:
		return fmt.Errorf("field %q: %w 0x%02x", f.Key, ErrUnknownKind, byte(v.kind))
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		return ErrInvalidString
	}
	buf.WriteString(s)
	buf.WriteByte(0)
	return nil
}
