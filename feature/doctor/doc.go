// Package doctor provides health checks for a Steam user's shortcut setup.
//
// Unlike the reconcile engine, which changes the registry to match the library, doctor
// only inspects. Fixes are limited to safe housekeeping and run only when asked for.
//
// # Checks Provided
//
//   - Structure: the config and grid directories exist (fix creates them).
//   - Registry: the registry decodes; identity collisions, duplicate installs, entries whose
//     executable is gone and identities without the shortcut bit are reported. Nothing
//     here is fixed automatically.
//   - Artwork: grid files belonging to unregistered shortcut identities, and leftover
//     partial downloads (fix deletes them). Artwork of regular Steam apps is never touched.
//   - Bucket: the snapshot bucket and prefix exist (fix creates them).
//
// # CLI
//
//   - shortcut-sync doctor : runs every check.
//   - shortcut-sync doctor structure [--fix]
//   - shortcut-sync doctor registry
//   - shortcut-sync doctor artwork [--fix]
//   - shortcut-sync doctor bucket [--fix]
package doctor
