package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"shortcut-sync/core/config"
	"shortcut-sync/core/storage"
	"shortcut-sync/feature/doctor"
	"shortcut-sync/feature/doctor/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag    bool
	doctorJSON bool
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the shortcut setup",
	Long:  `Checks the Steam user directory, the shortcut registry, cached artwork and the snapshot bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := newDoctor()
		if err != nil {
			return err
		}
		defer l.Sync()

		report := svc.CheckAll(cmd.Context())
		if doctorJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		logDoctorReport(l, report)
		return nil
	},
}

// structureCmd represents the doctor structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the user directory layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := newDoctor()
		if err != nil {
			return err
		}
		defer l.Sync()
		return runStructure(svc, l)
	},
}

// registryCmd represents the doctor registry command
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Check the shortcut registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := newDoctor()
		if err != nil {
			return err
		}
		defer l.Sync()

		report, err := svc.CheckRegistry()
		if err != nil {
			return fmt.Errorf("registry check failed: %w", err)
		}
		logRegistry(l, report)
		return nil
	},
}

// artworkCmd represents the doctor artwork command
var artworkCmd = &cobra.Command{
	Use:   "artwork",
	Short: "Check and remove orphaned artwork",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := newDoctor()
		if err != nil {
			return err
		}
		defer l.Sync()
		return runArtwork(svc, l)
	},
}

// bucketCmd represents the doctor bucket command
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Check and create the snapshot bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := newDoctor()
		if err != nil {
			return err
		}
		defer l.Sync()
		return runBucket(cmd.Context(), svc, l)
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
	doctorCmd.AddCommand(structureCmd, registryCmd, artworkCmd, bucketCmd)

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Print the full report as JSON")
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing directories")
	artworkCmd.Flags().BoolVar(&fixFlag, "fix", false, "Delete orphaned artwork")
	bucketCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and prefix")
}

func newDoctor() (*doctor.Service, *zap.Logger, error) {
	cfg, l, err := setup()
	if err != nil {
		return nil, nil, err
	}
	paths, err := resolveUser(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return doctor.NewService(paths, optionalStorage(cfg, l), cfg.Storage.Bucket, cfg.Storage.Prefix, l), l, nil
}

// optionalStorage returns nil when storage is not configured or no client can be built.
func optionalStorage(cfg *config.Config, l *zap.Logger) storage.Client {
	if !cfg.Storage.Configured() {
		l.Debug("Storage not configured, skipping bucket check")
		return nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		l.Warn("Optional storage client unavailable", zap.Error(err))
		return nil
	}
	return client
}

func runStructure(svc *doctor.Service, l *zap.Logger) error {
	report, err := svc.CheckStructure()
	if err != nil {
		return fmt.Errorf("structure check failed: %w", err)
	}
	if len(report.Missing) == 0 {
		l.Info("Structure is intact.", zap.String("user_id", report.UserID))
		return nil
	}

	l.Warn("Missing directories detected", zap.Strings("missing", report.Missing))
	if !fixFlag {
		l.Info("Run with --fix to create missing directories.")
		return nil
	}
	if err := svc.FixStructure(report.Missing); err != nil {
		return fmt.Errorf("failed to fix structure: %w", err)
	}
	l.Info("Structure fixed successfully.")
	return nil
}

func runArtwork(svc *doctor.Service, l *zap.Logger) error {
	report, err := svc.CheckArtwork()
	if err != nil {
		return fmt.Errorf("artwork check failed: %w", err)
	}
	if len(report.Orphans) == 0 && len(report.Partial) == 0 {
		l.Info("Artwork is clean.", zap.Int("files", report.Files))
		return nil
	}

	l.Warn("Unowned artwork detected",
		zap.Strings("orphans", report.Orphans),
		zap.Strings("partial", report.Partial))
	if !fixFlag {
		l.Info("Run with --fix to delete orphaned artwork.")
		return nil
	}
	removed, err := svc.FixArtwork(report)
	if err != nil {
		return fmt.Errorf("failed to fix artwork: %w", err)
	}
	l.Info("Artwork cleaned", zap.Int("removed", removed))
	return nil
}

func runBucket(ctx context.Context, svc *doctor.Service, l *zap.Logger) error {
	report, err := svc.CheckBucket(ctx)
	if err != nil {
		return fmt.Errorf("bucket check failed: %w", err)
	}
	if !report.BucketMissing && !report.PrefixMissing {
		l.Info("Snapshot bucket is intact.", zap.String("bucket", report.Bucket))
		return nil
	}

	l.Warn("Snapshot bucket incomplete",
		zap.String("bucket", report.Bucket),
		zap.Bool("bucket_missing", report.BucketMissing),
		zap.Bool("prefix_missing", report.PrefixMissing))
	if !fixFlag {
		l.Info("Run with --fix to create the bucket.")
		return nil
	}
	if err := svc.FixBucket(ctx, report); err != nil {
		return fmt.Errorf("failed to fix bucket: %w", err)
	}
	l.Info("Bucket fixed successfully.")
	return nil
}

func logRegistry(l *zap.Logger, report *checks.RegistryReport) {
	if report.Healthy() {
		l.Info("Registry is healthy.", zap.Int("entries", report.Entries))
		return
	}
	for _, c := range report.Collisions {
		l.Warn("Identity collision", zap.Uint32("app_id", c.AppID), zap.Strings("names", c.Names))
	}
	for _, d := range report.DuplicateInstalls {
		l.Warn("Install registered more than once", zap.String("key", d.Key), zap.Strings("names", d.Names))
	}
	if len(report.MissingExecutables) > 0 {
		l.Warn("Executables missing", zap.Strings("names", report.MissingExecutables))
	}
	if len(report.Unmarked) > 0 {
		l.Warn("Identities without the shortcut bit", zap.Strings("names", report.Unmarked))
	}
}

func logDoctorReport(l *zap.Logger, report *doctor.Report) {
	if report.StructureError != "" {
		l.Error("Structure check failed", zap.String("error", report.StructureError))
	} else if len(report.Structure.Missing) > 0 {
		l.Warn("Missing directories detected", zap.Strings("missing", report.Structure.Missing))
	} else {
		l.Info("Structure is intact.", zap.String("user_id", report.Structure.UserID))
	}

	if report.RegistryError != "" {
		l.Error("Registry check failed", zap.String("error", report.RegistryError))
	} else {
		logRegistry(l, report.Registry)
	}

	if report.ArtworkError != "" {
		l.Error("Artwork check failed", zap.String("error", report.ArtworkError))
	} else {
		l.Info("Artwork checked",
			zap.Int("files", report.Artwork.Files),
			zap.Int("orphans", len(report.Artwork.Orphans)),
			zap.Int("partial", len(report.Artwork.Partial)))
	}

	switch {
	case report.BucketError != "":
		l.Warn("Bucket check failed", zap.String("error", report.BucketError))
	case report.Bucket != nil:
		l.Info("Bucket checked",
			zap.String("bucket", report.Bucket.Bucket),
			zap.Bool("bucket_missing", report.Bucket.BucketMissing),
			zap.Bool("prefix_missing", report.Bucket.PrefixMissing))
	}
}
