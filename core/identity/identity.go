package identity

import (
	"strconv"

	"github.com/klauspost/crc32"
)

// ShortcutBit is the high bit set on every shortcut AppID.
const ShortcutBit uint32 = 0x80000000

// AppID returns the shortcut identity for a game launched through exePath.
func AppID(name, exePath string) uint32 {
	return crc32.ChecksumIEEE([]byte(exePath+name)) | ShortcutBit
}

// IsShortcut reports whether id carries the shortcut marker bit.
// Artwork for regular Steam apps never does.
func IsShortcut(id uint32) bool {
	return id&ShortcutBit != 0
}

// Format returns the decimal form used in artwork file names.
func Format(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

// Parse is the inverse of Format.
func Parse(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
