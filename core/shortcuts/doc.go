// Package shortcuts is the typed view of Steam's non-Steam-game registry (shortcuts.vdf).
//
// The file is a binary KeyValues document (see core/vdf) shaped like:
//
//	"shortcuts" {
//	    "0" { "appid" <int32> "AppName" "…" "Exe" "\"…\"" "StartDir" "\"…\"" … "tags" { … } }
//	    "1" { … }
//	}
//
// A Registry holds its entries in order. Entry keys ("0", "1", …) are not stored:
// Encode regenerates them densely on every write.
//
// # Pass-through fields
//
// Exe and StartDir are kept exactly as stored, quotes and any trailing arguments
// included, so an entry read from disk is written back byte for byte. NewEntry adds the
// quotes for new entries and ExePath/StartDirPath give the bare paths.
//
// Flags, Tags and Extra are carried verbatim and never interpreted by the reconcile
// engine. Extra collects any field this package does not know, including known keys
// stored with an unexpected kind, so entries created by Steam or other tools survive
// a rewrite.
//
// # Persistence
//
// Load treats a missing or empty file as an empty registry. Save overwrites the file
// in place with no temporary file and no backup.
package shortcuts
