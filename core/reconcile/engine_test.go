package reconcile

import (
	"context"
	"errors"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shortcut-sync/core/artwork"
	"shortcut-sync/core/identity"
	"shortcut-sync/core/library"
	"shortcut-sync/core/provider"
	"shortcut-sync/core/provider/mocks"
	"shortcut-sync/core/shortcuts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture is a library root, a grid directory and a registry path in one temp tree.
type fixture struct {
	root     string
	grid     string
	registry string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	base := t.TempDir()
	f := fixture{
		root:     filepath.Join(base, "library"),
		grid:     filepath.Join(base, "config", "grid"),
		registry: filepath.Join(base, "config", "shortcuts.vdf"),
	}
	require.NoError(t, os.MkdirAll(f.root, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(f.registry), 0o755))
	return f
}

func (f fixture) install(t *testing.T, rel string, size int) string {
	t.Helper()
	path := filepath.Join(f.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func (f fixture) engine(p provider.ImageProvider, dryRun bool) *Engine {
	logger := zap.NewNop()
	var cache AssetCache = artwork.New(f.grid, p, logger)
	opts := Options{Roots: []string{f.root}, RegistryPath: f.registry, DryRun: dryRun}
	return New(opts, library.NewScanner(library.Config{}, logger), cache, p, logger)
}

func (f fixture) load(t *testing.T) *shortcuts.Registry {
	t.Helper()
	reg, err := shortcuts.Load(f.registry)
	require.NoError(t, err)
	return reg
}

func TestRun_AddsNewInstall(t *testing.T) {
	f := newFixture(t)
	exe := f.install(t, "Foo/bin/foo.exe", 2048)

	result, err := f.engine(nil, false).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Persisted)
	assert.Equal(t, 1, result.Summary.Added)

	reg := f.load(t)
	require.Equal(t, 1, reg.Len())
	e := reg.Entries[0]
	assert.Equal(t, "Foo", filepath.Base(e.StartDirPath()))
	assert.True(t, strings.HasSuffix(e.ExePath(), "foo.exe"))
	assert.Equal(t, exe, e.ExePath())
	assert.Equal(t, `"`+exe+`"`, e.Exe)
	assert.Equal(t, "Foo", e.AppName)
	assert.Equal(t, crc32.ChecksumIEEE([]byte(exe+"Foo"))|0x80000000, e.AppID)
	assert.Equal(t, shortcuts.DefaultFlags(), e.Flags)
}

func TestRun_RemovesStaleEntryAndArtwork(t *testing.T) {
	f := newFixture(t)
	bar := shortcuts.NewEntry(0x8000BEEF, "Bar", "/gone/Bar/bar.exe", "/gone/Bar")
	require.NoError(t, shortcuts.Save(f.registry, &shortcuts.Registry{Entries: []shortcuts.Entry{bar}}))

	require.NoError(t, os.MkdirAll(f.grid, 0o755))
	var cached []string
	for _, kind := range provider.Kinds {
		path := filepath.Join(f.grid, artwork.FileName(bar.AppID, kind, ".png"))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		cached = append(cached, path)
	}
	other := filepath.Join(f.grid, "440p.png")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	result, err := f.engine(nil, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Removed)
	assert.Equal(t, 4, result.Summary.Evicted)

	assert.Equal(t, 0, f.load(t).Len())
	for _, path := range cached {
		assert.NoFileExists(t, path)
	}
	assert.FileExists(t, other)
}

func TestRun_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Foo/foo.exe", 100)
	f.install(t, "Bar/bar.exe", 200)
	f.install(t, "Baz/readme.txt", 10)

	p := new(mocks.Provider)
	p.On("SearchByName", mock.Anything, mock.Anything).Return([]provider.Game{}, nil)

	_, err := f.engine(p, false).Run(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(f.registry)
	require.NoError(t, err)

	second, err := f.engine(p, false).Run(context.Background())
	require.NoError(t, err)
	after, err := os.ReadFile(f.registry)
	require.NoError(t, err)

	assert.Equal(t, first, after)
	assert.Equal(t, 2, second.Summary.Kept)
	assert.Equal(t, 0, second.Summary.Added)
	// Baz has no executable and is retried on every run.
	assert.Equal(t, 1, second.Summary.Skipped)
	p.AssertNumberOfCalls(t, "SearchByName", 2)
}

func TestRun_ExclusionBeatsSize(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Game/uninstall.exe", 10_000)
	want := f.install(t, "Game/game.exe", 5_000)

	_, err := f.engine(nil, false).Run(context.Background())
	require.NoError(t, err)

	reg := f.load(t)
	require.Equal(t, 1, reg.Len())
	assert.Equal(t, want, reg.Entries[0].ExePath())
}

func TestRun_SkipsInstallWithoutExecutable(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Empty/data.bin", 10)
	f.install(t, "Foo/foo.exe", 10)

	result, err := f.engine(nil, false).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, OutcomeSkipped, result.Outcomes[0].Status)
	assert.Equal(t, "Empty", result.Outcomes[0].Game.Name)
	assert.Equal(t, OutcomeAdded, result.Outcomes[1].Status)
	assert.Equal(t, 1, f.load(t).Len())
}

func TestRun_ProviderMatchPopulatesArtwork(t *testing.T) {
	f := newFixture(t)
	exe := f.install(t, "celeste/Celeste.exe", 10)
	appID := identity.AppID("celeste", exe)

	p := new(mocks.Provider)
	p.On("SearchByName", mock.Anything, "celeste").Return([]provider.Game{{ID: 77, Name: "Celeste"}, {ID: 78, Name: "Celeste 64"}}, nil)
	p.On("FetchURLs", mock.Anything, 77, provider.KindLogo).Return([]provider.Image{{URL: "https://cdn/logo.png"}}, nil)
	p.On("FetchURLs", mock.Anything, 77, mock.Anything).Return(nil, nil)
	p.On("Download", mock.Anything, "https://cdn/logo.png").Return(io.NopCloser(strings.NewReader("logo")), nil)

	result, err := f.engine(p, false).Run(context.Background())
	require.NoError(t, err)

	e := f.load(t).Entries[0]
	assert.Equal(t, "Celeste", e.AppName)
	// The identity is derived from the directory name, before the provider rename.
	assert.Equal(t, appID, e.AppID)
	assert.FileExists(t, filepath.Join(f.grid, artwork.FileName(appID, provider.KindLogo, ".png")))

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, 77, result.Outcomes[0].ProviderGameID)
	require.NotNil(t, result.Outcomes[0].Artwork)
	assert.Equal(t, 1, result.Outcomes[0].Artwork.Count(artwork.StatusFetched))
}

func TestRun_ProviderFailureStillAdds(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Foo/foo.exe", 10)

	p := new(mocks.Provider)
	p.On("SearchByName", mock.Anything, "Foo").Return(nil, provider.ErrUnauthorized)

	result, err := f.engine(p, false).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Added)
	assert.Equal(t, "Foo", f.load(t).Entries[0].AppName)
	assert.Nil(t, result.Outcomes[0].Artwork)
	p.AssertNotCalled(t, "FetchURLs", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_LeavesExistingEntriesUntouched(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Foo/foo.exe", 10)
	f.install(t, "Foo/bigger.exe", 9000)

	existing := shortcuts.NewEntry(0x80001234, "My Foo", `D:\Old\Foo\foo.exe`, `D:\Old\FOO`)
	existing.LaunchOptions = "-fullscreen"
	existing.Flags.LastPlayTime = 1700000000
	existing.Tags = shortcuts.Tags{{Key: "0", Value: "favorite"}}
	require.NoError(t, shortcuts.Save(f.registry, &shortcuts.Registry{Entries: []shortcuts.Entry{existing}}))
	before, err := os.ReadFile(f.registry)
	require.NoError(t, err)

	p := new(mocks.Provider)
	result, err := f.engine(p, false).Run(context.Background())
	require.NoError(t, err)

	after, err := os.ReadFile(f.registry)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, result.Summary.Kept)
	assert.Empty(t, result.Outcomes)
	p.AssertNotCalled(t, "SearchByName", mock.Anything, mock.Anything)
}

func TestRun_KeepsHandEditedLaunchTarget(t *testing.T) {
	f := newFixture(t)
	exe := f.install(t, "Foo/foo.exe", 10)

	kept := shortcuts.NewEntry(identity.AppID("Foo", exe), "Foo", "", "")
	kept.Exe = `"` + exe + `" -windowed`
	kept.StartDir = filepath.Dir(exe)
	require.NoError(t, shortcuts.Save(f.registry, &shortcuts.Registry{Entries: []shortcuts.Entry{kept}}))
	before, err := os.ReadFile(f.registry)
	require.NoError(t, err)

	result, err := f.engine(nil, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Kept)
	assert.Equal(t, 0, result.Summary.Added)

	reg := f.load(t)
	require.Equal(t, 1, reg.Len())
	assert.Equal(t, kept.Exe, reg.Entries[0].Exe)
	assert.Equal(t, kept.StartDir, reg.Entries[0].StartDir)

	after, err := os.ReadFile(f.registry)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_DryRun(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Foo/foo.exe", 10)
	stale := shortcuts.NewEntry(0x80000042, "Bar", "/gone/Bar/bar.exe", "/gone/Bar")
	require.NoError(t, shortcuts.Save(f.registry, &shortcuts.Registry{Entries: []shortcuts.Entry{stale}}))
	require.NoError(t, os.MkdirAll(f.grid, 0o755))
	art := filepath.Join(f.grid, artwork.FileName(stale.AppID, provider.KindGrid, ".jpg"))
	require.NoError(t, os.WriteFile(art, []byte("x"), 0o644))
	before, err := os.ReadFile(f.registry)
	require.NoError(t, err)

	result, err := f.engine(nil, true).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Persisted)
	assert.Equal(t, 1, result.Plan.Summary.AddActions)
	assert.Equal(t, 1, result.Plan.Summary.RemoveActions)
	assert.Empty(t, result.Outcomes)

	after, err := os.ReadFile(f.registry)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.FileExists(t, art)
}

func TestRun_CorruptRegistryIsFatal(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Foo/foo.exe", 10)
	require.NoError(t, os.WriteFile(f.registry, []byte{0x00, 's', 'h'}, 0o644))

	_, err := f.engine(nil, false).Run(context.Background())
	require.Error(t, err)

	data, err := os.ReadFile(f.registry)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 's', 'h'}, data)
}

func TestRun_PersistFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Foo/foo.exe", 10)
	f.registry = filepath.Join(f.registry+".d", "missing", "shortcuts.vdf")

	_, err := f.engine(nil, false).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_CancelledContextFailsCandidates(t *testing.T) {
	f := newFixture(t)
	f.install(t, "Foo/foo.exe", 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.engine(nil, false).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Failed)
	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
	assert.Equal(t, 0, f.load(t).Len())
}

// evictFailer wraps a cache and fails every eviction.
type evictFailer struct {
	AssetCache
}

func (evictFailer) Evict(uint32) ([]string, error) {
	return nil, errors.New("permission denied")
}

func TestRun_EvictFailureStillDropsEntry(t *testing.T) {
	f := newFixture(t)
	stale := shortcuts.NewEntry(0x80000042, "Bar", "/gone/Bar/bar.exe", "/gone/Bar")
	require.NoError(t, shortcuts.Save(f.registry, &shortcuts.Registry{Entries: []shortcuts.Entry{stale}}))

	logger := zap.NewNop()
	engine := New(
		Options{Roots: []string{f.root}, RegistryPath: f.registry},
		library.NewScanner(library.Config{}, logger),
		evictFailer{artwork.New(f.grid, nil, logger)},
		nil,
		logger,
	)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Removed)
	assert.Equal(t, 0, f.load(t).Len())
}
