package checks

import (
	"os"
	"path/filepath"
	"testing"

	"shortcut-sync/core/shortcuts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckArtwork(t *testing.T) {
	grid := t.TempDir()
	for _, name := range []string{
		"3000000001p.png",      // registered
		"3000000001_hero.jpg",  // registered
		"3000000002_logo.png",  // orphan
		"3000000002.jpg",       // orphan
		"440p.jpg",             // regular Steam app
		"3000000003_icon.png",  // outside the naming scheme
		"3000000004p.png.part", // partial download
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(grid, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(grid, "3000000005p.png"), 0o755))

	reg := &shortcuts.Registry{Entries: []shortcuts.Entry{
		shortcuts.NewEntry(3000000001, "Foo", "", "/games/Foo"),
	}}

	report, err := CheckArtwork(grid, reg)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Files)
	assert.Equal(t, []string{
		filepath.Join(grid, "3000000002.jpg"),
		filepath.Join(grid, "3000000002_logo.png"),
	}, report.Orphans)
	assert.Equal(t, []string{filepath.Join(grid, "3000000004p.png.part")}, report.Partial)
}

func TestCheckArtwork_MissingGrid(t *testing.T) {
	report, err := CheckArtwork(filepath.Join(t.TempDir(), "grid"), &shortcuts.Registry{})
	require.NoError(t, err)
	assert.Empty(t, report.Orphans)
}

func TestFixArtwork(t *testing.T) {
	grid := t.TempDir()
	orphan := filepath.Join(grid, "3000000002.jpg")
	require.NoError(t, os.WriteFile(orphan, []byte("x"), 0o644))

	removed, err := FixArtwork(zap.NewNop(), []string{orphan, filepath.Join(grid, "gone.png")})
	require.NoError(t, err)
	assert.Equal(t, 1, removed, "files already gone are not counted")
	assert.NoFileExists(t, orphan)
}
