package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/skillkit-cli/skillkit/internal/lockfile"
	"github.com/skillkit-cli/skillkit/internal/types"
)

const (
	dateFormat = "2006-01-02 15:04"
	emptyMsg   = "Nothing installed yet."
	usageHint  = "Use 'skillkit add <source>' to install something."
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed items",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeList()
	},
}

// executeList reads the lock file for the selected scope and renders a
// table of installed items, optionally filtered by --type.
func executeList() error {
	root, err := currentScope().Root()
	if err != nil {
		return err
	}

	var entries []types.LockEntry
	if flagType != "" {
		t, err := currentType()
		if err != nil {
			return err
		}
		entries, err = lockfile.InstalledItemsByType(root, t)
		if err != nil {
			return err
		}
	} else {
		entries, err = lockfile.InstalledItems(root)
		if err != nil {
			return err
		}
	}

	if len(entries) == 0 {
		fmt.Println(emptyMsg)
		fmt.Println(usageHint)
		return nil
	}

	cnf := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(cnf))
	table.Header("ID", "Type", "Assistants", "Source", "Installed At")

	for _, e := range entries {
		table.Append(e.ID, string(e.Type), strings.Join(e.Assistants, ", "), e.Source, e.InstalledAt.Format(dateFormat))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal: %d items\n", len(entries))
	return nil
}
