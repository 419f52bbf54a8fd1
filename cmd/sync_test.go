package cmd

import (
	"testing"

	"shortcut-sync/core/config"
	"shortcut-sync/core/library"
	"shortcut-sync/core/reconcile"
	"shortcut-sync/core/shortcuts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestApplySyncFlags(t *testing.T) {
	t.Cleanup(func() {
		syncRoots, syncSteamDir, syncAPIKey, syncUserID = "", "", "", ""
	})

	cfg := &config.Config{}
	cfg.Library.Roots = `D:\Games`
	cfg.Steam.Root = `C:\Steam`
	cfg.SteamGridDB.APIKey = "stored"

	syncRoots = `E:\Games;F:\Games`
	syncAPIKey = "flag"
	applySyncFlags(cfg)

	assert.Equal(t, `E:\Games;F:\Games`, cfg.Library.Roots)
	assert.Equal(t, `C:\Steam`, cfg.Steam.Root, "unset flags keep the stored value")
	assert.Equal(t, "flag", cfg.SteamGridDB.APIKey)
	assert.Empty(t, cfg.Steam.UserID)
	assert.NoError(t, cfg.Validate())
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"sync", "list", "doctor", "snapshot"} {
		assert.True(t, names[want], want)
	}

	doctor, _, err := RootCmd.Find([]string{"doctor", "bucket"})
	assert.NoError(t, err)
	assert.NotNil(t, doctor.Flags().Lookup("fix"))
}

func TestPrintSyncReport(t *testing.T) {
	reg := &shortcuts.Registry{Entries: []shortcuts.Entry{
		shortcuts.NewEntry(0x80000001, "Bar", "/old/Bar/bar.exe", "/old/Bar"),
		shortcuts.NewEntry(0x80000002, "Qux", "/old/Qux/qux.exe", "/old/Qux"),
	}}
	plan := reconcile.BuildPlan(reg, map[string]library.Game{
		"/lib/Foo": {InstallDir: "/lib/Foo", Name: "Foo"},
	})
	result := &reconcile.Result{
		Plan:     plan,
		Outcomes: []reconcile.Outcome{{Game: library.Game{Name: "Foo"}, Status: reconcile.OutcomeSkipped, Reason: "no qualifying executable"}},
		Summary:  reconcile.Summary{Registered: 2, Scanned: 1, Removed: 2, Skipped: 1},
	}

	core, logs := observer.New(zapcore.DebugLevel)
	printSyncReport(zap.New(core), result)

	removed := logs.FilterMessage("Shortcuts removed for uninstalled games").All()
	require.Len(t, removed, 1)
	assert.Equal(t, []interface{}{"Bar", "Qux"}, removed[0].ContextMap()["names"])

	notAdded := logs.FilterMessage("Game not added").All()
	require.Len(t, notAdded, 1)
	assert.Equal(t, "skipped", notAdded[0].ContextMap()["status"])

	report := logs.FilterMessage("Sync report").All()
	require.Len(t, report, 1)
	assert.Equal(t, int64(2), report[0].ContextMap()["removed"])
}
