package utils

import (
	"strconv"
	"strings"
)

// ToUint32 converts various types to uint32 using explicit type switching.
// It handles integer types, numeric strings and byte slices; ok is false for
// anything that does not fit in 32 bits.
func ToUint32(val any) (uint32, bool) {
	switch v := val.(type) {
	case uint32:
		return v, true
	case int32:
		return uint32(v), true
	case int:
		return fitUint32(int64(v))
	case int64:
		return fitUint32(v)
	case uint64:
		if v > 0xFFFFFFFF {
			return 0, false
		}
		return uint32(v), true
	case uint16:
		return uint32(v), true
	case uint8:
		return uint32(v), true
	case string:
		return parseUint32(v)
	case []byte:
		return parseUint32(string(v))
	default:
		return 0, false
	}
}

func fitUint32(v int64) (uint32, bool) {
	// Negative values are reinterpreted, the way int32 fields carry unsigned ids.
	if v < -0x80000000 || v > 0xFFFFFFFF {
		return 0, false
	}
	return uint32(v), true
}

func parseUint32(s string) (uint32, bool) {
	s = strings.TrimSpace(s)
	if u, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(u), true
	}
	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return uint32(i), true
	}
	return 0, false
}
