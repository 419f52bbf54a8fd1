package checks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shortcut-sync/core/artwork"
	"shortcut-sync/core/identity"
	"shortcut-sync/core/shortcuts"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ArtworkReport lists grid files that no registry entry owns.
type ArtworkReport struct {
	Files int `json:"files"`
	// Orphans are shortcut artwork files whose identity is not registered.
	Orphans []string `json:"orphans"`
	// Partial are leftover downloads.
	Partial []string `json:"partial"`
}

// CheckArtwork scans gridDir for orphaned shortcut artwork. Artwork of regular Steam
// apps and files outside the naming scheme are ignored.
func CheckArtwork(gridDir string, reg *shortcuts.Registry) (*ArtworkReport, error) {
	report := &ArtworkReport{}

	entries, err := os.ReadDir(gridDir)
	if errors.Is(err, os.ErrNotExist) {
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", gridDir, err)
	}

	owned := make(map[uint32]struct{}, reg.Len())
	for _, e := range reg.Entries {
		owned[e.AppID] = struct{}{}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(gridDir, name)

		if strings.HasSuffix(name, ".part") {
			report.Partial = append(report.Partial, path)
			continue
		}

		id, _, ok := artwork.ParseFileName(name)
		if !ok {
			continue
		}
		report.Files++
		if !identity.IsShortcut(id) {
			continue
		}
		if _, ok := owned[id]; !ok {
			report.Orphans = append(report.Orphans, path)
		}
	}

	sort.Strings(report.Orphans)
	sort.Strings(report.Partial)
	return report, nil
}

// FixArtwork deletes the given files and returns how many it removed. Files already gone
// are skipped; other errors are combined.
func FixArtwork(logger *zap.Logger, files []string) (int, error) {
	removed := 0
	var errs error
	for _, path := range files {
		err := os.Remove(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			continue
		case err != nil:
			logger.Error("Failed to remove artwork", zap.String("path", path), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		removed++
		logger.Info("Removed orphaned artwork", zap.String("path", path))
	}
	return removed, errs
}
