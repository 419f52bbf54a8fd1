// Package reconcile keeps the Steam shortcut registry in step with the games installed
// under the library roots.
//
// A reconciliation pass runs once per invocation and has three phases:
//
//  1. Load: decode the registry (missing means empty) and scan the library roots.
//  2. Reconcile: entries whose install directory is gone are stale; their artwork is
//     evicted and the entries are dropped. Scanned directories without an entry are
//     candidates; each gets an executable, an identity, optional artwork and a new entry.
//  3. Persist: encode the registry and overwrite the file.
//
// Entries and installs are matched by the case-folded basename of the install directory.
// Entries whose install is still present are left untouched.
//
// # Planning
//
// BuildPlan is the pure diff step. It returns the kept and stale entries in registry order,
// the candidates sorted by install path, and the list of typed actions. With DryRun set,
// Run stops after planning and touches nothing on disk.
//
// # Failure Handling
//
// Only a registry that cannot be decoded or written aborts the run. Everything else is
// recorded per candidate as an Outcome: a missing executable skips the game until the next
// run, and provider trouble only means the game is added without artwork.
//
// # Usage
//
//	engine := reconcile.New(reconcile.Options{
//	    Roots:        library.SplitRoots(cfg.Library.Roots),
//	    RegistryPath: paths.ShortcutsFile(),
//	}, scanner, cache, sgdb, log)
//
//	result, err := engine.Run(ctx)
//	fmt.Println(result.Summary.Added, result.Summary.Removed)
package reconcile
