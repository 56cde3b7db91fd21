package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillkit-cli/skillkit/internal/installer"
	"github.com/skillkit-cli/skillkit/internal/lockfile"
	"github.com/skillkit-cli/skillkit/internal/types"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <id>...",
	Aliases: []string{"rm", "uninstall"},
	Short:   "Remove installed items and their lock entries",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeRemove(args)
	},
}

func executeRemove(ids []string) error {
	inst, err := installer.New(currentScope())
	if err != nil {
		return err
	}

	for _, id := range ids {
		entry, err := findEntry(inst.Root(), id)
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("%q is not installed", id)
		}

		if !flagYes {
			ok, err := promptForConfirmation(fmt.Sprintf(
				"Remove %s %q installed for %s?", entry.Type, entry.ID, strings.Join(entry.Assistants, ", ")))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("operation cancelled")
			}
		}

		for _, assistantID := range entry.Assistants {
			removed, err := inst.UninstallItem(entry.Type, entry.ID, assistantID)
			if err != nil {
				fmt.Printf("Warning: failed to remove %s for %s: %v\n", entry.ID, assistantID, err)
				continue
			}
			if removed {
				fmt.Printf("Removed %s for %s\n", entry.ID, assistantID)
			}
		}

		if err := inst.RemoveCanonical(entry.Type, entry.ID); err != nil {
			return err
		}
		if _, err := lockfile.Remove(inst.Root(), entry.Type, entry.ID); err != nil {
			return err
		}
	}
	return nil
}

// findEntry locates a lock entry by id, honoring --type when present and
// otherwise searching all content types.
func findEntry(root, id string) (*types.LockEntry, error) {
	if flagType != "" {
		t, err := currentType()
		if err != nil {
			return nil, err
		}
		return lockfile.Find(root, t, id)
	}
	for _, t := range types.AllContentTypes() {
		entry, err := lockfile.Find(root, t, id)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			return entry, nil
		}
	}
	return nil, nil
}

func promptForConfirmation(question string) (bool, error) {
	fmt.Printf("%s [y/N]: ", question)

	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		if err == io.EOF || err.Error() == "unexpected newline" {
			return false, nil
		}
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
