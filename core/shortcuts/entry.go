package shortcuts

import (
	"strings"

	"shortcut-sync/core/vdf"
)

// Entry is one shortcut in the registry.
type Entry struct {
	// AppID is the shortcut identity (see core/identity).
	AppID uint32
	// AppName is the display name shown in the Steam library.
	AppName string
	// Exe is the launch target exactly as stored, normally a quoted path. Hand-edited
	// entries may carry arguments after the closing quote. See ExePath.
	Exe string
	// StartDir is the install directory exactly as stored, normally quoted.
	// The reconcile engine matches entries to installs by the basename of StartDirPath.
	StartDir string
	// LaunchOptions is passed to the executable; preserved verbatim.
	LaunchOptions string
	// Flags are opaque pass-through fields, defaulted on creation.
	Flags Flags
	// Tags is Steam's category list, opaque to this package. Nil means the entry has
	// no tags map at all.
	Tags Tags
	// Extra holds unrecognized fields in file order.
	Extra []vdf.Field
}

// Flags groups the per-shortcut settings Steam owns.
type Flags struct {
	Icon                string
	ShortcutPath        string
	IsHidden            uint32
	AllowDesktopConfig  uint32
	AllowOverlay        uint32
	OpenVR              uint32
	Devkit              uint32
	DevkitGameID        string
	DevkitOverrideAppID uint32
	LastPlayTime        uint32
	FlatpakAppID        string
}

// DefaultFlags returns the settings Steam applies to a freshly added shortcut.
func DefaultFlags() Flags {
	return Flags{
		AllowDesktopConfig: 1,
		AllowOverlay:       1,
	}
}

// Tag is one entry of the tags map.
type Tag struct {
	Key   string
	Value string
}

// Tags is an ordered string map.
type Tags []Tag

// NewEntry builds the entry created for a newly detected install. exe and startDir are
// bare paths; they are quoted the way Steam stores them.
func NewEntry(appID uint32, name, exe, startDir string) Entry {
	return Entry{
		AppID:    appID,
		AppName:  name,
		Exe:      quote(exe),
		StartDir: quote(startDir),
		Flags:    DefaultFlags(),
		Tags:     Tags{},
	}
}

// ExePath returns the executable path without quotes or trailing arguments.
func (e Entry) ExePath() string {
	return pathOf(e.Exe)
}

// StartDirPath returns the install directory without quotes.
func (e Entry) StartDirPath() string {
	return pathOf(e.StartDir)
}

func quote(s string) string {
	return `"` + s + `"`
}

// pathOf extracts the path from a stored value. A value opening with a quote ends at the
// next quote; anything else is taken whole.
func pathOf(s string) string {
	rest, ok := strings.CutPrefix(s, `"`)
	if !ok {
		return s
	}
	if i := strings.IndexByte(rest, '"'); i >= 0 {
		return rest[:i]
	}
	return rest
}
