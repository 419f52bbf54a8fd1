package checks

import (
	"bytes"
	"context"
	"fmt"

	"shortcut-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// BucketReport describes the snapshot bucket.
type BucketReport struct {
	Bucket        string `json:"bucket"`
	BucketMissing bool   `json:"bucket_missing"`
	PrefixMissing bool   `json:"prefix_missing"`
}

// CheckBucket verifies that the snapshot bucket and its prefix folder exist.
func CheckBucket(ctx context.Context, client storage.Client, bucket, prefix string) (*BucketReport, error) {
	report := &BucketReport{Bucket: bucket}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		report.BucketMissing = true
		report.PrefixMissing = true
		return report, nil
	}

	if storage.Folder(prefix) == "" {
		return report, nil
	}

	opts := minio.ListObjectsOptions{
		Prefix:    storage.Folder(prefix),
		Recursive: false,
		MaxKeys:   1,
	}

	found := false
	for range client.ListObjects(ctx, bucket, opts) {
		found = true
		break
	}
	report.PrefixMissing = !found
	return report, nil
}

// FixBucket creates whatever CheckBucket found missing.
func FixBucket(ctx context.Context, client storage.Client, bucket, prefix string, logger *zap.Logger, report *BucketReport) error {
	if report.BucketMissing {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
			return err
		}
		logger.Info("Created bucket", zap.String("bucket", bucket))
	}

	if report.PrefixMissing {
		_, err := client.PutObject(ctx, bucket, storage.Folder(prefix), bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", prefix), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", prefix))
	}
	return nil
}
