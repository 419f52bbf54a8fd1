package shortcuts

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"shortcut-sync/core/utils"
	"shortcut-sync/core/vdf"
)

// RootKey is the single key of the outer container.
const RootKey = "shortcuts"

// Registry is the ordered list of shortcuts.
type Registry struct {
	Entries []Entry
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// Append adds e at the end of the registry.
func (r *Registry) Append(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Field names as Steam writes them.
const (
	keyAppID               = "appid"
	keyAppName             = "AppName"
	keyExe                 = "Exe"
	keyStartDir            = "StartDir"
	keyIcon                = "icon"
	keyShortcutPath        = "ShortcutPath"
	keyLaunchOptions       = "LaunchOptions"
	keyIsHidden            = "IsHidden"
	keyAllowDesktopConfig  = "AllowDesktopConfig"
	keyAllowOverlay        = "AllowOverlay"
	keyOpenVR              = "OpenVR"
	keyDevkit              = "Devkit"
	keyDevkitGameID        = "DevkitGameID"
	keyDevkitOverrideAppID = "DevkitOverrideAppID"
	keyLastPlayTime        = "LastPlayTime"
	keyFlatpakAppID        = "FlatpakAppID"
	keyTags                = "tags"
)

// Decode parses the bytes of a shortcuts.vdf file.
func Decode(data []byte) (*Registry, error) {
	doc, err := vdf.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}

	reg := &Registry{}
	root, ok := doc.Lookup(RootKey)
	if !ok {
		return reg, nil
	}
	list, ok := root.Map()
	if !ok {
		return nil, fmt.Errorf("registry %q is a %s, not a map", RootKey, root.Kind())
	}

	for _, f := range list.Fields() {
		m, ok := f.Value.Map()
		if !ok {
			return nil, fmt.Errorf("shortcut %q is a %s, not a map", f.Key, f.Value.Kind())
		}
		reg.Entries = append(reg.Entries, entryFromMap(m))
	}
	return reg, nil
}

// Encode serializes reg, regenerating the dense "0".."n-1" entry keys.
func Encode(reg *Registry) ([]byte, error) {
	list := vdf.NewMap()
	if reg != nil {
		for i, e := range reg.Entries {
			list.Append(strconv.Itoa(i), vdf.MapValue(entryToMap(e)))
		}
	}

	doc := vdf.NewMap()
	doc.Append(RootKey, vdf.MapValue(list))

	data, err := vdf.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode registry: %w", err)
	}
	return data, nil
}

// Load reads the registry at path. A missing or zero-length file is an empty registry.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Registry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}
	if len(data) == 0 {
		return &Registry{}, nil
	}
	return Decode(data)
}

// Save overwrites the registry at path.
func Save(path string, reg *Registry) error {
	data, err := Encode(reg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry %s: %w", path, err)
	}
	return nil
}

func entryFromMap(m *vdf.Map) Entry {
	var e Entry
	for _, f := range m.Fields() {
		if !assignField(&e, f) {
			e.Extra = append(e.Extra, f)
		}
	}
	return e
}

// assignField stores a known field into e. It returns false when the key is unknown
// or the value has a kind the typed field cannot hold.
func assignField(e *Entry, f vdf.Field) bool {
	str := func(dst *string) bool {
		s, ok := f.Value.Str()
		if ok {
			*dst = s
		}
		return ok
	}
	num := func(dst *uint32) bool {
		u, ok := f.Value.Uint32()
		if ok && f.Value.Kind() == vdf.KindInt32 {
			*dst = u
			return true
		}
		return false
	}

	switch vdf.FoldKey(f.Key) {
	case "appid":
		// Older writers stored the id as a decimal string.
		if num(&e.AppID) {
			return true
		}
		if f.Value.Kind() == vdf.KindString {
			u, ok := utils.ToUint32(f.Value.Interface())
			if ok {
				e.AppID = u
			}
			return ok
		}
		return false
	case "appname":
		return str(&e.AppName)
	case "exe":
		return str(&e.Exe)
	case "startdir":
		return str(&e.StartDir)
	case "icon":
		return str(&e.Flags.Icon)
	case "shortcutpath":
		return str(&e.Flags.ShortcutPath)
	case "launchoptions":
		return str(&e.LaunchOptions)
	case "ishidden":
		return num(&e.Flags.IsHidden)
	case "allowdesktopconfig":
		return num(&e.Flags.AllowDesktopConfig)
	case "allowoverlay":
		return num(&e.Flags.AllowOverlay)
	case "openvr":
		return num(&e.Flags.OpenVR)
	case "devkit":
		return num(&e.Flags.Devkit)
	case "devkitgameid":
		return str(&e.Flags.DevkitGameID)
	case "devkitoverrideappid":
		return num(&e.Flags.DevkitOverrideAppID)
	case "lastplaytime":
		return num(&e.Flags.LastPlayTime)
	case "flatpakappid":
		return str(&e.Flags.FlatpakAppID)
	case "tags":
		tags, ok := tagsFromValue(f.Value)
		if ok {
			e.Tags = tags
		}
		return ok
	}
	return false
}

func tagsFromValue(v vdf.Value) (Tags, bool) {
	m, ok := v.Map()
	if !ok {
		return nil, false
	}
	tags := Tags{}
	for _, f := range m.Fields() {
		s, ok := f.Value.Str()
		if !ok {
			return nil, false
		}
		tags = append(tags, Tag{Key: f.Key, Value: s})
	}
	return tags, true
}

func entryToMap(e Entry) *vdf.Map {
	m := vdf.NewMap()
	m.Append(keyAppID, vdf.Uint32(e.AppID))
	m.Append(keyAppName, vdf.String(e.AppName))
	m.Append(keyExe, vdf.String(e.Exe))
	m.Append(keyStartDir, vdf.String(e.StartDir))
	m.Append(keyIcon, vdf.String(e.Flags.Icon))
	m.Append(keyShortcutPath, vdf.String(e.Flags.ShortcutPath))
	m.Append(keyLaunchOptions, vdf.String(e.LaunchOptions))
	m.Append(keyIsHidden, vdf.Uint32(e.Flags.IsHidden))
	m.Append(keyAllowDesktopConfig, vdf.Uint32(e.Flags.AllowDesktopConfig))
	m.Append(keyAllowOverlay, vdf.Uint32(e.Flags.AllowOverlay))
	m.Append(keyOpenVR, vdf.Uint32(e.Flags.OpenVR))
	m.Append(keyDevkit, vdf.Uint32(e.Flags.Devkit))
	m.Append(keyDevkitGameID, vdf.String(e.Flags.DevkitGameID))
	m.Append(keyDevkitOverrideAppID, vdf.Uint32(e.Flags.DevkitOverrideAppID))
	m.Append(keyLastPlayTime, vdf.Uint32(e.Flags.LastPlayTime))
	m.Append(keyFlatpakAppID, vdf.String(e.Flags.FlatpakAppID))
	for _, f := range e.Extra {
		m.Append(f.Key, f.Value)
	}

	if e.Tags != nil {
		tags := vdf.NewMap()
		for _, t := range e.Tags {
			tags.Append(t.Key, vdf.String(t.Value))
		}
		m.Append(keyTags, vdf.MapValue(tags))
	}
	return m
}
