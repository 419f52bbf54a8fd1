package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"shortcut-sync/core/identity"
	"shortcut-sync/core/shortcuts"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listJSON bool

// listCmd prints the registered shortcuts.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered shortcuts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		paths, err := resolveUser(cfg, l)
		if err != nil {
			return err
		}
		reg, err := shortcuts.Load(paths.ShortcutsFile())
		if err != nil {
			return err
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(listEntries(reg))
		}

		fmt.Printf("\n=== Shortcuts (%s) ===\n", paths.UserID)
		for _, e := range reg.Entries {
			fmt.Printf("%-12s %-40s %s\n", identity.Format(e.AppID), e.AppName, e.ExePath())
		}
		fmt.Printf("Total: %d\n", reg.Len())

		l.Debug("Listed shortcuts", zap.String("registry", paths.ShortcutsFile()), zap.Int("count", reg.Len()))
		return nil
	},
}

// listedEntry is one shortcut in the --json output.
type listedEntry struct {
	AppID    uint32   `json:"app_id"`
	Name     string   `json:"name"`
	Exe      string   `json:"exe"`
	StartDir string   `json:"start_dir"`
	Tags     []string `json:"tags,omitempty"`
}

func listEntries(reg *shortcuts.Registry) []listedEntry {
	out := make([]listedEntry, 0, reg.Len())
	for _, e := range reg.Entries {
		listed := listedEntry{AppID: e.AppID, Name: e.AppName, Exe: e.ExePath(), StartDir: e.StartDirPath()}
		for _, tag := range e.Tags {
			listed.Tags = append(listed.Tags, tag.Value)
		}
		out = append(out, listed)
	}
	return out
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print entries as JSON")
	RootCmd.AddCommand(listCmd)
}
