// Package snapshot copies a Steam user's shortcut registry and artwork to object storage.
//
// Registry writes are not atomic, so a snapshot taken before a sync is the recovery path
// when a write is interrupted.
//
// # Layout
//
// Each snapshot is a folder named after the UTC time it was taken:
//
//	<prefix>/<user id>/<20060102T150405Z>/shortcuts.vdf
//	<prefix>/<user id>/<20060102T150405Z>/grid/<artwork files>
//
// Only artwork that belongs to a registered shortcut is uploaded.
//
// # Usage
//
//	svc := snapshot.NewService(client, cfg.Storage.Bucket, cfg.Storage.Prefix, log)
//	manifest, err := svc.Upload(ctx, paths)
//	names, err := svc.List(ctx, paths.UserID)
//	err = svc.Restore(ctx, names[len(names)-1], paths)
package snapshot
