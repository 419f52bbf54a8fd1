package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"shortcut-sync/core/steam"
	"shortcut-sync/core/storage"
	"shortcut-sync/feature/snapshot"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var yesConfirm bool

// snapshotCmd uploads the registry and its artwork to object storage.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Back up the registry and artwork to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, paths, l, err := newSnapshot()
		if err != nil {
			return err
		}
		defer l.Sync()

		manifest, err := svc.Upload(cmd.Context(), paths)
		if err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}
		fmt.Printf("Snapshot %s: %d objects, %s\n", manifest.Name, len(manifest.Objects), humanize.Bytes(uint64(manifest.Bytes)))
		return nil
	},
}

// snapshotListCmd lists the snapshots of the current user.
var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, paths, l, err := newSnapshot()
		if err != nil {
			return err
		}
		defer l.Sync()

		names, err := svc.List(cmd.Context(), paths.UserID)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		l.Debug("Snapshots listed", zap.Int("count", len(names)))
		return nil
	},
}

// snapshotRestoreCmd overwrites the registry and artwork from a snapshot.
var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore a snapshot (overwrites the registry)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, paths, l, err := newSnapshot()
		if err != nil {
			return err
		}
		defer l.Sync()

		if !confirmDestructiveAction() {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		return svc.Restore(cmd.Context(), args[0], paths)
	},
}

func init() {
	snapshotRestoreCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the overwrite (non-interactive)")
	snapshotCmd.AddCommand(snapshotListCmd, snapshotRestoreCmd)
	RootCmd.AddCommand(snapshotCmd)
}

func newSnapshot() (*snapshot.Service, steam.Paths, *zap.Logger, error) {
	cfg, l, err := setup()
	if err != nil {
		return nil, steam.Paths{}, nil, err
	}
	paths, err := resolveUser(cfg, l)
	if err != nil {
		return nil, steam.Paths{}, nil, err
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, steam.Paths{}, nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	return snapshot.NewService(client, cfg.Storage.Bucket, cfg.Storage.Prefix, l), paths, l, nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm the restore: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
