// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface covering what snapshots need:
// checking and creating the bucket, uploading and downloading objects, and listing them.
// Both AWS S3 and self-hosted MinIO endpoints work.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket on first use.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Configuration
//
// Storage is optional. With no STORAGE_ENDPOINT set, NewClient returns ErrNotConfigured
// and callers skip whatever needs a bucket.
//
// # Keys
//
// Key and Folder build object names from parts, normalizing separators and dropping
// traversal segments.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
