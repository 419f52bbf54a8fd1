// Package vdf implements Valve's binary KeyValues format, the encoding used by
// Steam's shortcuts.vdf.
//
// A document is a list of fields closed by an end marker. Every field starts with a
// one byte kind tag and a NUL-terminated key, followed by a kind-specific payload:
//
//	0x00 map       nested field list, closed by 0x08
//	0x01 string    NUL-terminated bytes
//	0x02 int32     4 bytes little-endian
//	0x03 float32   4 bytes little-endian
//	0x04 pointer   4 bytes little-endian
//	0x05 wstring   UTF-16LE, terminated by two NUL bytes
//	0x06 color     4 bytes
//	0x07 uint64    8 bytes little-endian
//	0x0A int64     8 bytes little-endian
//
// Maps keep their fields in file order and the encoder writes them back in that order,
// so a decoded document re-encodes to the same bytes. Values are tagged by Kind and
// never stored as untyped interfaces.
//
// # Usage
//
//	doc, err := vdf.Decode(data)
//	root, ok := doc.Lookup("shortcuts")
//	out, err := vdf.Encode(doc)
package vdf
