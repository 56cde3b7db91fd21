package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillkit-cli/skillkit/internal/assistant"
	"github.com/skillkit-cli/skillkit/internal/catalog"
	"github.com/skillkit-cli/skillkit/internal/installer"
	"github.com/skillkit-cli/skillkit/internal/lockfile"
	"github.com/skillkit-cli/skillkit/internal/source"
	"github.com/skillkit-cli/skillkit/internal/types"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:     "update [id]...",
	Aliases: []string{"upgrade"},
	Short:   "Re-fetch installed items from their recorded sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeUpdate(args)
	},
}

// executeUpdate walks the lock file, re-resolves each entry's source and
// re-installs it for the assistants recorded at install time. One item's
// failure never aborts the rest.
func executeUpdate(ids []string) error {
	inst, err := installer.New(currentScope())
	if err != nil {
		return err
	}

	entries, err := lockfile.InstalledItems(inst.Root())
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		entries = filterEntries(entries, ids)
	}
	if len(entries) == 0 {
		fmt.Println("Nothing to update.")
		return nil
	}

	updated, failed := 0, 0
	for _, entry := range entries {
		item, err := refetch(entry)
		if err != nil {
			color.Red("✗ %s: %v", entry.ID, err)
			failed++
			continue
		}

		configs, unknown := assistant.Resolve(entry.Assistants)
		if unknown != "" {
			color.Red("✗ %s: unknown assistant %q in lock file", entry.ID, unknown)
			failed++
			continue
		}

		summary, err := inst.InstallItems([]types.CatalogItem{item}, configs, currentMethod())
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			printSummary(summary)
			failed++
			continue
		}
		color.Green("✓ %s updated", entry.ID)
		updated++
	}

	fmt.Printf("\n%d updated, %d failed\n", updated, failed)
	if failed > 0 {
		return fmt.Errorf("%d items failed to update", failed)
	}
	return nil
}

// refetch rebuilds an installable item from a lock entry's recorded source.
// Builtin items come back from the catalog; everything else is re-fetched.
func refetch(entry types.LockEntry) (types.CatalogItem, error) {
	if id, ok := cutBuiltinSource(entry.Source); ok {
		item, found := catalog.Find(id, entry.Type)
		if !found {
			return types.CatalogItem{}, fmt.Errorf("builtin item %q no longer exists", id)
		}
		return item, nil
	}

	src, err := source.Parse(entry.Source)
	if err != nil {
		return types.CatalogItem{}, err
	}

	fetcher := source.NewFetcher(viper.GetString("github_token"))
	fetched, err := fetcher.FetchSkill(src)
	if err != nil {
		return types.CatalogItem{}, err
	}

	item := fetched.Item(entry.Type)
	// Keep the identity the entry was installed under.
	item.ID = entry.ID
	return item, nil
}

func cutBuiltinSource(s string) (string, bool) {
	const prefix = "builtin:"
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):], true
	}
	return "", false
}

func filterEntries(entries []types.LockEntry, ids []string) []types.LockEntry {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []types.LockEntry
	for _, e := range entries {
		if want[e.ID] {
			out = append(out, e)
		}
	}
	return out
}
