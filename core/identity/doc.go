// Package identity derives the numeric AppID Steam uses for a non-Steam shortcut.
//
// The AppID is a pure function of the executable path and the display name, so the
// same install always maps to the same identity across runs without any stored
// counter or allocator. Artwork file names and registry entries are both keyed by it.
//
// # Algorithm
//
// The executable path and the name are concatenated (path first) and hashed with the
// IEEE CRC-32. The most significant bit is then forced on, which is the marker Steam
// uses for legacy shortcut identities.
//
//	id := identity.AppID("Foo", `C:\Games\Foo\foo.exe`)
//	name := identity.Format(id) + "p.png" // portrait grid artwork
//
// Two different (name, path) pairs may collide. Collisions are not resolved here; the
// doctor command reports them instead.
package identity
