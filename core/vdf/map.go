package vdf

import "golang.org/x/text/cases"

// Field is a key with its value.
type Field struct {
	Key   string
	Value Value
}

// Map is an ordered list of fields. Keys are usually unique but the format does not
// enforce it, so duplicates read from disk are kept.
type Map struct {
	fields []Field
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{}
}

// Len returns the number of fields.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.fields)
}

// Fields returns a copy of the fields in order.
func (m *Map) Fields() []Field {
	if m == nil || len(m.fields) == 0 {
		return nil
	}
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Get returns the first field whose key equals key exactly.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	for _, f := range m.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Lookup is Get with case-insensitive key matching, which is how Steam reads keys.
func (m *Map) Lookup(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	folded := FoldKey(key)
	for _, f := range m.fields {
		if FoldKey(f.Key) == folded {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Set replaces the value of the first field named key, or appends a new field.
func (m *Map) Set(key string, v Value) {
	for i := range m.fields {
		if m.fields[i].Key == key {
			m.fields[i].Value = v
			return
		}
	}
	m.fields = append(m.fields, Field{Key: key, Value: v})
}

// Append adds a field at the end without checking for an existing key.
func (m *Map) Append(key string, v Value) {
	m.fields = append(m.fields, Field{Key: key, Value: v})
}

// Delete removes every field named key and reports whether any was removed.
func (m *Map) Delete(key string) bool {
	kept := m.fields[:0]
	removed := false
	for _, f := range m.fields {
		if f.Key == key {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	m.fields = kept
	if len(m.fields) == 0 {
		m.fields = nil
	}
	return removed
}

// FoldKey normalizes a key for case-insensitive comparison.
func FoldKey(key string) string {
	return cases.Fold().String(key)
}
