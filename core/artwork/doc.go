// Package artwork maintains the per-user Steam grid directory.
//
// Every shortcut identity owns up to four image files, one per kind, at deterministic
// paths inside the grid directory:
//
//	grid  {id}p.{ext}      portrait capsule, 600x900
//	hero  {id}_hero.{ext}  banner
//	logo  {id}_logo.{ext}  title logo
//	home  {id}.{ext}       landscape capsule, 920x430
//
// The extension comes from the source URL and is one of .jpg or .png.
//
// # Cache Policy
//
// A file on disk is the only record that an image was fetched. Populate skips any kind
// whose file already exists under a known extension, before contacting the provider, so a
// fully cached identity costs no network calls. There is no refresh: a changed install
// produces a new identity and therefore new files.
//
// Downloads are written to a ".part" file and renamed into place, so an interrupted fetch
// never leaves a file that would be mistaken for a cached image.
//
// # Eviction
//
// Evict removes every kind under every known extension for an identity. Missing files are
// not an error, which makes eviction idempotent.
package artwork
