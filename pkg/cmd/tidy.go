package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillkit-cli/skillkit/internal/assistant"
	"github.com/skillkit-cli/skillkit/internal/fsutil"
	"github.com/skillkit-cli/skillkit/internal/installer"
	"github.com/skillkit-cli/skillkit/internal/lockfile"
	"github.com/skillkit-cli/skillkit/internal/types"
)

func init() {
	rootCmd.AddCommand(tidyCmd)
}

var tidyCmd = &cobra.Command{
	Use:     "tidy",
	Aliases: []string{"prune"},
	Short:   "Drop lock entries whose installed files no longer exist",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeTidy()
	},
}

// executeTidy reconciles the lock file with the filesystem: an entry whose
// canonical copy and every assistant destination are gone was removed by
// hand, so the bookkeeping follows.
func executeTidy() error {
	inst, err := installer.New(currentScope())
	if err != nil {
		return err
	}

	entries, err := lockfile.InstalledItems(inst.Root())
	if err != nil {
		return err
	}

	pruned := 0
	for _, entry := range entries {
		if anyPresent(inst, entry) {
			continue
		}
		removed, err := lockfile.Remove(inst.Root(), entry.Type, entry.ID)
		if err != nil {
			return err
		}
		if removed {
			fmt.Printf("Pruned stale entry %s/%s\n", entry.Type.Plural(), entry.ID)
			pruned++
		}
	}

	if pruned == 0 {
		fmt.Println("Lock file is already tidy.")
	} else {
		fmt.Printf("\nPruned %d stale entries\n", pruned)
	}
	return nil
}

func anyPresent(inst *installer.Installer, entry types.LockEntry) bool {
	if ok, _ := fsutil.PathExists(inst.CanonicalDir(entry.Type, entry.ID)); ok {
		return true
	}
	for _, id := range entry.Assistants {
		a, ok := assistant.Get(id)
		if !ok {
			continue
		}
		rel, ok := a.DestinationPath(entry.Type, entry.ID)
		if !ok {
			continue
		}
		if ok, _ := fsutil.PathExists(filepath.Join(inst.Root(), rel)); ok {
			return true
		}
	}
	return false
}
