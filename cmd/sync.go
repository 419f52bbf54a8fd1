package cmd

import (
	"fmt"
	"os"

	"shortcut-sync/core/artwork"
	"shortcut-sync/core/config"
	"shortcut-sync/core/library"
	"shortcut-sync/core/provider"
	"shortcut-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncRoots    string
	syncSteamDir string
	syncAPIKey   string
	syncUserID   string
	syncDryRun   bool
	syncSave     bool
)

// syncCmd reconciles the shortcut registry with the installed games.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile shortcuts with the installed games",
	Long: `Scan the library roots, remove shortcuts of uninstalled games, and add shortcuts
(with artwork) for new installs.

Examples:
  # Plan only, nothing is written
  sync --dry-run

  # Override the stored inputs and remember them
  sync --roots "D:\Games;E:\Games" --steam-dir "C:\Program Files (x86)\Steam" --api-key KEY --save`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncRoots, "roots", "", "Semicolon-separated library roots (overrides LIBRARY_ROOTS)")
	syncCmd.Flags().StringVar(&syncSteamDir, "steam-dir", "", "Steam installation directory (overrides STEAM_ROOT)")
	syncCmd.Flags().StringVar(&syncAPIKey, "api-key", "", "SteamGridDB API key (overrides STEAMGRIDDB_API_KEY)")
	syncCmd.Flags().StringVar(&syncUserID, "user-id", "", "Steam user directory to use (overrides STEAM_USER_ID)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report the plan without changing anything")
	syncCmd.Flags().BoolVar(&syncSave, "save", false, "Remember the inputs in the .env file")

	RootCmd.AddCommand(syncCmd)
}

func applySyncFlags(cfg *config.Config) {
	if syncRoots != "" {
		cfg.Library.Roots = syncRoots
	}
	if syncSteamDir != "" {
		cfg.Steam.Root = syncSteamDir
	}
	if syncAPIKey != "" {
		cfg.SteamGridDB.APIKey = syncAPIKey
	}
	if syncUserID != "" {
		cfg.Steam.UserID = syncUserID
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	applySyncFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if syncSave {
		if err := config.Save(configDir, cfg); err != nil {
			return err
		}
		l.Info("Inputs saved", zap.String("dir", configDir))
	}

	paths, err := resolveUser(cfg, l)
	if err != nil {
		return err
	}
	if !syncDryRun {
		if err := os.MkdirAll(paths.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	l.Info("Starting shortcut sync",
		zap.String("user_id", paths.UserID),
		zap.Strings("roots", cfg.Library.RootList()))

	scanner := library.NewScanner(cfg.Library, l)
	images := provider.NewFromConfig(cfg.SteamGridDB)
	cache := artwork.New(paths.GridDir(), images, l)

	engine := reconcile.New(reconcile.Options{
		Roots:        cfg.Library.RootList(),
		RegistryPath: paths.ShortcutsFile(),
		DryRun:       syncDryRun,
	}, scanner, cache, images, l)

	result, err := engine.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printSyncReport(l, result)
	if syncDryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printSyncReport logs the outcome of a pass using logger.
func printSyncReport(l *zap.Logger, result *reconcile.Result) {
	plan := result.Plan

	if len(plan.Actions) > 0 {
		maxShow := 5
		if len(plan.Actions) < maxShow {
			maxShow = len(plan.Actions)
		}
		for i := 0; i < maxShow; i++ {
			action := plan.Actions[i]
			l.Info("Planned action",
				zap.String("type", string(action.Type)),
				zap.String("key", action.Key),
				zap.String("reason", action.Reason))
		}
		if len(plan.Actions) > maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
		}
	}

	if removes := plan.ActionsOf(reconcile.ActionRemove); len(removes) > 0 {
		names := make([]string, 0, len(removes))
		for _, a := range removes {
			names = append(names, a.Name)
		}
		l.Info("Shortcuts removed for uninstalled games", zap.Strings("names", names))
	}

	for _, o := range result.Outcomes {
		if o.Status == reconcile.OutcomeAdded {
			continue
		}
		l.Warn("Game not added",
			zap.String("game", o.Game.Name),
			zap.String("status", string(o.Status)),
			zap.String("reason", o.Reason))
	}

	s := result.Summary
	l.Info("Sync report",
		zap.Int("registered", s.Registered),
		zap.Int("scanned", s.Scanned),
		zap.Int("kept", s.Kept),
		zap.Int("removed", s.Removed),
		zap.Int("added", s.Added),
		zap.Int("skipped", s.Skipped),
		zap.Int("failed", s.Failed),
		zap.Int("artwork_evicted", s.Evicted),
		zap.Bool("persisted", result.Persisted))
}
