// Package steam locates the per-user Steam configuration directory.
//
// Steam keeps one directory per signed-in account under <root>/userdata/<id>. The
// shortcut registry lives at config/shortcuts.vdf and custom artwork under config/grid.
//
// ResolveUser picks the account to operate on. An explicit user id wins; otherwise the
// first non-"0" account directory in name order is used and Paths.Ambiguous reports
// whether other accounts were passed over.
package steam
