package checks

import (
	"fmt"
	"os"

	"shortcut-sync/core/steam"

	"go.uber.org/zap"
)

// StructureReport lists the parts of the Steam user directory that are absent.
type StructureReport struct {
	UserID    string   `json:"user_id"`
	Ambiguous bool     `json:"ambiguous"`
	Users     []string `json:"users"`
	Missing   []string `json:"missing"`
	// RegistryMissing is informational: a missing registry is treated as empty.
	RegistryMissing bool `json:"registry_missing"`
}

// CheckStructure verifies that the config and grid directories exist.
func CheckStructure(paths steam.Paths) (*StructureReport, error) {
	report := &StructureReport{
		UserID:    paths.UserID,
		Ambiguous: paths.Ambiguous,
		Users:     paths.Candidates,
	}

	for _, dir := range []string{paths.ConfigDir(), paths.GridDir()} {
		info, err := os.Stat(dir)
		switch {
		case os.IsNotExist(err):
			report.Missing = append(report.Missing, dir)
		case err != nil:
			return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
		case !info.IsDir():
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
	}

	if _, err := os.Stat(paths.ShortcutsFile()); os.IsNotExist(err) {
		report.RegistryMissing = true
	}
	return report, nil
}

// FixStructure creates the missing directories.
func FixStructure(logger *zap.Logger, missing []string) error {
	for _, dir := range missing {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("Failed to create directory", zap.String("dir", dir), zap.Error(err))
			return err
		}
		logger.Info("Created missing directory", zap.String("dir", dir))
	}
	return nil
}
