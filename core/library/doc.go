// Package library discovers installed games on disk.
//
// A library is one or more root directories. Every immediate subdirectory of a root is
// treated as one installed game, named after the subdirectory.
//
// # Scanning
//
// Scan returns a set keyed by the cleaned install path. Duplicate directories reached
// through several roots collapse into one Game, and iteration order carries no meaning.
// Roots that are missing, are not directories, or cannot be read are logged and skipped;
// a scan where nothing is readable yields an empty set rather than an error.
//
// # Executable Selection
//
// SelectExecutable walks an install directory and picks the launch target:
//   - only files with the configured extension (".exe" by default) qualify
//   - names containing "unins", "unity" or "redist" (case-insensitive) are excluded
//   - the largest remaining file wins; ties keep the first file in lexical walk order
//
// # Usage
//
//	scanner := library.NewScanner(cfg, log)
//	games := scanner.Scan(library.SplitRoots(cfg.Roots))
//	for _, g := range games {
//	    exe, ok := scanner.SelectExecutable(g.InstallDir)
//	}
package library
