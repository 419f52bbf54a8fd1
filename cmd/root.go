package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"shortcut-sync/core/config"
	"shortcut-sync/core/logger"
	"shortcut-sync/core/steam"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is where the .env file is read from and saved to.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "shortcut-sync",
	Short: "Steam non-Steam shortcut reconciler",
	Long: `shortcut-sync keeps a Steam user's non-Steam shortcuts in step with the games
installed under one or more library folders. Shortcuts are added for new installs,
removed for uninstalled games, and decorated with SteamGridDB artwork.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		// Console format with debug level gives ISO8601 timestamps on the CLI
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
}

// setup loads the configuration and builds a logger tagged with a fresh run id.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.WithRun(l, logger.NewRunID()), nil
}

// resolveUser locates the Steam account and warns when the choice was a guess.
func resolveUser(cfg *config.Config, l *zap.Logger) (steam.Paths, error) {
	paths, err := steam.ResolveUser(cfg.Steam)
	if err != nil {
		return steam.Paths{}, err
	}
	if paths.Ambiguous {
		l.Warn("Several Steam users found, using the first. Set STEAM_USER_ID or --user-id to choose.",
			zap.String("user_id", paths.UserID),
			zap.Strings("candidates", paths.Candidates))
	}
	return paths, nil
}
