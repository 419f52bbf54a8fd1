package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// DefaultExtension is used when the configuration leaves the extension empty.
const DefaultExtension = ".exe"

// excluded name fragments, matched against the case-folded file name.
var excluded = []string{"unins", "unity", "redist"}

// Game is one install directory found under a library root.
type Game struct {
	// InstallDir is the cleaned absolute path of the game directory.
	InstallDir string
	// Name is the directory basename.
	Name string
}

// Executable is the launch target chosen for a game.
type Executable struct {
	Path string
	Size int64
}

// Scanner enumerates games and chooses their executables.
type Scanner struct {
	ext    string
	fold   cases.Caser
	logger *zap.Logger
}

// NewScanner creates a scanner for cfg.
func NewScanner(cfg Config, logger *zap.Logger) *Scanner {
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fold := cases.Fold()
	return &Scanner{ext: fold.String(ext), fold: fold, logger: logger}
}

// Scan returns the set of games found directly under roots.
func (s *Scanner) Scan(roots []string) map[string]Game {
	games := make(map[string]Game)
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			s.logger.Debug("Skipping library root", zap.String("root", root), zap.Error(err))
			continue
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			s.logger.Warn("Failed to read library root", zap.String("root", root), zap.Error(err))
			continue
		}

		for _, entry := range entries {
			dir := filepath.Join(root, entry.Name())
			if !isDir(entry, dir) {
				continue
			}
			if abs, err := filepath.Abs(dir); err == nil {
				dir = abs
			}
			games[dir] = Game{InstallDir: dir, Name: entry.Name()}
		}
	}

	s.logger.Debug("Library scanned", zap.Int("roots", len(roots)), zap.Int("games", len(games)))
	return games
}

// Sorted returns the games ordered by install path.
func Sorted(games map[string]Game) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstallDir < out[j].InstallDir })
	return out
}

// SelectExecutable returns the most plausible launch target inside installDir.
func (s *Scanner) SelectExecutable(installDir string) (Executable, bool) {
	var best Executable
	found := false

	err := filepath.WalkDir(installDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == installDir {
				return err
			}
			s.logger.Debug("Skipping unreadable path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !s.qualifies(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !found || info.Size() > best.Size {
			best = Executable{Path: path, Size: info.Size()}
			found = true
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Failed to walk install directory", zap.String("dir", installDir), zap.Error(err))
		return Executable{}, false
	}

	if found {
		s.logger.Debug("Executable selected",
			zap.String("path", best.Path),
			zap.String("size", humanize.Bytes(uint64(best.Size))))
	}
	return best, found
}

func (s *Scanner) qualifies(name string) bool {
	folded := s.fold.String(name)
	if !strings.HasSuffix(folded, s.ext) {
		return false
	}
	for _, frag := range excluded {
		if strings.Contains(folded, frag) {
			return false
		}
	}
	return true
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
