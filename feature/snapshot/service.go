package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"shortcut-sync/core/artwork"
	"shortcut-sync/core/shortcuts"
	"shortcut-sync/core/steam"
	"shortcut-sync/core/storage"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// TimeFormat names snapshot folders.
const TimeFormat = "20060102T150405Z"

const (
	registryObject = "shortcuts.vdf"
	gridFolder     = "grid"
)

// ErrNoRegistry is returned when there is no registry file to snapshot.
var ErrNoRegistry = errors.New("snapshot: registry file does not exist")

// Manifest describes an uploaded snapshot.
type Manifest struct {
	Name    string   `json:"name"`
	Objects []string `json:"objects"`
	Bytes   int64    `json:"bytes"`
}

// Service uploads and restores snapshots.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new snapshot service.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		bucket: bucket,
		prefix: storage.Key(prefix),
		logger: logger,
		now:    time.Now,
	}
}


// Upload stores the registry and the artwork of every registered entry.
func (s *Service) Upload(ctx context.Context, paths steam.Paths) (*Manifest, error) {
	registryPath := paths.ShortcutsFile()
	if _, err := os.Stat(registryPath); errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoRegistry
	}
	reg, err := shortcuts.Load(registryPath)
	if err != nil {
		return nil, err
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	name := storage.Key(s.prefix, paths.UserID, s.now().UTC().Format(TimeFormat))
	manifest := &Manifest{Name: name}

	if err := s.put(ctx, manifest, registryPath, storage.Key(name, registryObject)); err != nil {
		return nil, err
	}
	for _, e := range reg.Entries {
		for _, file := range artwork.Files(paths.GridDir(), e.AppID) {
			object := storage.Key(name, gridFolder, filepath.Base(file))
			if err := s.put(ctx, manifest, file, object); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("Snapshot uploaded",
		zap.String("name", name),
		zap.Int("objects", len(manifest.Objects)),
		zap.String("size", humanize.Bytes(uint64(manifest.Bytes))))
	return manifest, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	return nil
}

func (s *Service) put(ctx context.Context, manifest *Manifest, file, object string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", file, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, object, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(file),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}

	manifest.Objects = append(manifest.Objects, object)
	manifest.Bytes += info.Size()
	s.logger.Debug("Uploaded object", zap.String("object", object))
	return nil
}

// List returns the snapshot names of a user, oldest first.
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Prefix: storage.Folder(s.prefix, userID), Recursive: false}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			names = append(names, strings.TrimSuffix(obj.Key, "/"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Restore writes a snapshot's registry and artwork back into the user directory.
// Existing files with the same names are overwritten.
func (s *Service) Restore(ctx context.Context, name string, paths steam.Paths) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	name = storage.Key(name)

	if err := os.MkdirAll(paths.ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.get(ctx, storage.Key(name, registryObject), paths.ShortcutsFile()); err != nil {
		return err
	}

	opts := minio.ListObjectsOptions{Prefix: storage.Folder(name, gridFolder), Recursive: true}
	restored := 0
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list snapshot artwork: %w", obj.Err)
		}
		base := path.Base(obj.Key)
		if _, _, ok := artwork.ParseFileName(base); !ok {
			continue
		}
		if err := os.MkdirAll(paths.GridDir(), 0o755); err != nil {
			return fmt.Errorf("failed to create grid directory: %w", err)
		}
		if err := s.get(ctx, obj.Key, filepath.Join(paths.GridDir(), base)); err != nil {
			return err
		}
		restored++
	}

	s.logger.Info("Snapshot restored", zap.String("name", name), zap.Int("artwork", restored))
	return nil
}

func (s *Service) get(ctx context.Context, object, dest string) error {
	body, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", object, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", object, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		return "image/png"
	case ".jpg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
