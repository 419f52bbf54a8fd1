package steam

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoUser is returned when no account directory can be found.
var ErrNoUser = errors.New("steam: no user directory found")

// Config holds configuration for locating the Steam installation.
type Config struct {
	// Root is the Steam installation directory.
	Root string `mapstructure:"root" default:"C:\\Program Files (x86)\\Steam"`
	// UserID selects an account explicitly instead of auto-detecting it.
	UserID string `mapstructure:"user_id" default:""`
}

// Paths are the resolved locations for one Steam account.
type Paths struct {
	// UserDir is <root>/userdata/<id>.
	UserDir string
	// UserID is the account directory name.
	UserID string
	// Candidates are all account directories that could have been chosen.
	Candidates []string
	// Ambiguous is set when auto-detection had more than one candidate.
	Ambiguous bool
}

// ConfigDir returns the account's config directory.
func (p Paths) ConfigDir() string {
	return filepath.Join(p.UserDir, "config")
}

// ShortcutsFile returns the path of the shortcut registry.
func (p Paths) ShortcutsFile() string {
	return filepath.Join(p.ConfigDir(), "shortcuts.vdf")
}

// GridDir returns the artwork directory.
func (p Paths) GridDir() string {
	return filepath.Join(p.ConfigDir(), "grid")
}

// ResolveUser finds the account directory under cfg.Root.
func ResolveUser(cfg Config) (Paths, error) {
	userdata := filepath.Join(cfg.Root, "userdata")

	if cfg.UserID != "" {
		dir := filepath.Join(userdata, cfg.UserID)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return Paths{}, fmt.Errorf("%w: %s", ErrNoUser, dir)
		}
		return Paths{UserDir: dir, UserID: cfg.UserID, Candidates: []string{cfg.UserID}}, nil
	}

	entries, err := os.ReadDir(userdata)
	if err != nil {
		return Paths{}, fmt.Errorf("%w: %v", ErrNoUser, err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != "0" {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) == 0 {
		return Paths{}, fmt.Errorf("%w in %s", ErrNoUser, userdata)
	}
	sort.Strings(candidates)

	return Paths{
		UserDir:    filepath.Join(userdata, candidates[0]),
		UserID:     candidates[0],
		Candidates: candidates,
		Ambiguous:  len(candidates) > 1,
	}, nil
}
