package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv clears the variables LoadConfig reads and restores them after the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LIBRARY_ROOTS", "LIBRARY_EXTENSION", "STEAM_ROOT", "STEAM_USER_ID",
		"STEAMGRIDDB_API_KEY", "STEAMGRIDDB_BASE_URL", "STEAMGRIDDB_TIMEOUT_SECONDS",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "STORAGE_BUCKET", "STORAGE_ENDPOINT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Library.Roots)
	assert.Equal(t, ".exe", cfg.Library.Extension)
	assert.Equal(t, `C:\Program Files (x86)\Steam`, cfg.Steam.Root)
	assert.Equal(t, "https://www.steamgriddb.com/api/v2", cfg.SteamGridDB.BaseURL)
	assert.Equal(t, 30, cfg.SteamGridDB.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "shortcut-sync", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.Configured())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("LIBRARY_ROOTS", "/games;/more")
	t.Setenv("STEAMGRIDDB_TIMEOUT_SECONDS", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"/games", "/more"}, cfg.Library.RootList())
	assert.Equal(t, 5, cfg.SteamGridDB.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("STEAM_ROOT=/opt/steam\nSTEAMGRIDDB_API_KEY=abc\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/opt/steam", cfg.Steam.Root)
	assert.Equal(t, "abc", cfg.SteamGridDB.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Steam.Root = "/opt/steam"

	err := cfg.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{KeyLibraryRoots, KeyAPIKey}, verr.Missing)
	assert.Contains(t, err.Error(), "library.roots")

	cfg.Library.Roots = " ; "
	cfg.SteamGridDB.APIKey = "k"
	require.ErrorAs(t, cfg.Validate(), &verr)
	assert.Equal(t, []string{KeyLibraryRoots}, verr.Missing)

	cfg.Library.Roots = "/games"
	assert.NoError(t, cfg.Validate())

	assert.NoError(t, (&Config{Steam: cfg.Steam}).Require(KeySteamRoot))
}

func TestSave(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o644))

	cfg := &Config{}
	cfg.Library.Roots = `D:\Games;E:\Games`
	cfg.Steam.Root = "/opt/steam"
	cfg.SteamGridDB.APIKey = "secret"
	require.NoError(t, Save(dir, cfg))

	values, err := godotenv.Read(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"LOG_LEVEL":           "debug",
		"LIBRARY_ROOTS":       `D:\Games;E:\Games`,
		"STEAM_ROOT":          "/opt/steam",
		"STEAMGRIDDB_API_KEY": "secret",
	}, values)

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Library.Roots, loaded.Library.Roots)
	assert.Equal(t, "secret", loaded.SteamGridDB.APIKey)
}

func TestSave_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, &Config{}))
	assert.FileExists(t, filepath.Join(dir, ".env"))
}
