package checks

import (
	"context"
	"errors"
	"testing"

	"shortcut-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objects(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestCheckBucket(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "backups").Return(false, nil)

		report, err := CheckBucket(context.Background(), mockClient, "backups", "snapshots")
		require.NoError(t, err)
		assert.True(t, report.BucketMissing)
		assert.True(t, report.PrefixMissing)
		mockClient.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "backups").Return(false, errors.New("denied"))

		_, err := CheckBucket(context.Background(), mockClient, "backups", "snapshots")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "denied")
	})

	t.Run("Prefix Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "backups").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "backups", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "snapshots/"
		})).Return(objects())

		report, err := CheckBucket(context.Background(), mockClient, "backups", "snapshots")
		require.NoError(t, err)
		assert.False(t, report.BucketMissing)
		assert.True(t, report.PrefixMissing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "backups").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "backups", mock.Anything).Return(objects("snapshots/"))

		report, err := CheckBucket(context.Background(), mockClient, "backups", "snapshots/")
		require.NoError(t, err)
		assert.False(t, report.PrefixMissing)
	})

	t.Run("Empty Prefix", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "backups").Return(true, nil)

		report, err := CheckBucket(context.Background(), mockClient, "backups", "/")
		require.NoError(t, err)
		assert.False(t, report.PrefixMissing)
		mockClient.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFixBucket(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("MakeBucket", mock.Anything, "backups", mock.Anything).Return(nil)
	mockClient.On("PutObject", mock.Anything, "backups", "snapshots/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := FixBucket(context.Background(), mockClient, "backups", "snapshots", zap.NewNop(),
		&BucketReport{Bucket: "backups", BucketMissing: true, PrefixMissing: true})
	assert.NoError(t, err)
	mockClient.AssertExpectations(t)

	failing := new(mocks.Client)
	failing.On("PutObject", mock.Anything, "backups", "snapshots/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("read only"))
	err = FixBucket(context.Background(), failing, "backups", "snapshots", zap.NewNop(),
		&BucketReport{Bucket: "backups", PrefixMissing: true})
	assert.Error(t, err)
	failing.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}
