package doctor

import (
	"context"
	"errors"

	"shortcut-sync/core/shortcuts"
	"shortcut-sync/core/steam"
	"shortcut-sync/core/storage"
	"shortcut-sync/feature/doctor/checks"

	"go.uber.org/zap"
)

// ErrNoStorage is returned by bucket checks when no storage client is configured.
var ErrNoStorage = errors.New("doctor: storage not configured")

// Service handles health checks.
type Service struct {
	paths  steam.Paths
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewService creates a new doctor service. client may be nil when snapshots are unused.
func NewService(paths steam.Paths, client storage.Client, bucket, prefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		paths:  paths,
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Report is the combined result of every check. A check that could not run carries its
// error instead.
type Report struct {
	Structure      *checks.StructureReport `json:"structure,omitempty"`
	StructureError string                  `json:"structure_error,omitempty"`
	Registry       *checks.RegistryReport  `json:"registry,omitempty"`
	RegistryError  string                  `json:"registry_error,omitempty"`
	Artwork        *checks.ArtworkReport   `json:"artwork,omitempty"`
	ArtworkError   string                  `json:"artwork_error,omitempty"`
	Bucket         *checks.BucketReport    `json:"bucket,omitempty"`
	BucketError    string                  `json:"bucket_error,omitempty"`
}

// CheckStructure returns the missing directories.
func (s *Service) CheckStructure() (*checks.StructureReport, error) {
	return checks.CheckStructure(s.paths)
}

// FixStructure creates the missing directories.
func (s *Service) FixStructure(missing []string) error {
	return checks.FixStructure(s.logger, missing)
}

// CheckRegistry decodes the registry and inspects it.
func (s *Service) CheckRegistry() (*checks.RegistryReport, error) {
	reg, err := shortcuts.Load(s.paths.ShortcutsFile())
	if err != nil {
		return nil, err
	}
	return checks.CheckRegistry(reg), nil
}

// CheckArtwork finds orphaned and partial artwork files.
func (s *Service) CheckArtwork() (*checks.ArtworkReport, error) {
	reg, err := shortcuts.Load(s.paths.ShortcutsFile())
	if err != nil {
		return nil, err
	}
	return checks.CheckArtwork(s.paths.GridDir(), reg)
}

// FixArtwork deletes the files reported by CheckArtwork.
func (s *Service) FixArtwork(report *checks.ArtworkReport) (int, error) {
	files := append(append([]string(nil), report.Orphans...), report.Partial...)
	return checks.FixArtwork(s.logger, files)
}

// CheckBucket verifies the snapshot bucket.
func (s *Service) CheckBucket(ctx context.Context) (*checks.BucketReport, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckBucket(ctx, s.client, s.bucket, s.prefix)
}

// FixBucket creates the bucket or prefix reported missing.
func (s *Service) FixBucket(ctx context.Context, report *checks.BucketReport) error {
	if s.client == nil {
		return ErrNoStorage
	}
	return checks.FixBucket(ctx, s.client, s.bucket, s.prefix, s.logger, report)
}

// CheckAll runs every check. The bucket check is skipped without a storage client.
func (s *Service) CheckAll(ctx context.Context) *Report {
	report := &Report{}

	if r, err := s.CheckStructure(); err != nil {
		report.StructureError = err.Error()
	} else {
		report.Structure = r
	}

	if r, err := s.CheckRegistry(); err != nil {
		report.RegistryError = err.Error()
	} else {
		report.Registry = r
	}

	if r, err := s.CheckArtwork(); err != nil {
		report.ArtworkError = err.Error()
	} else {
		report.Artwork = r
	}

	if s.client != nil {
		if r, err := s.CheckBucket(ctx); err != nil {
			report.BucketError = err.Error()
		} else {
			report.Bucket = r
		}
	}

	return report
}
