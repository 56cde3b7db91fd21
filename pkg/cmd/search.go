package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/skillkit-cli/skillkit/internal/catalog"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"find"},
	Short:   "Search the builtin catalog",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeSearch(args[0])
	},
}

func executeSearch(query string) error {
	items := catalog.Search(query)
	if len(items) == 0 {
		fmt.Printf("No catalog items match %q.\n", query)
		return nil
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("ID", "Type", "Name", "Description")
	for _, item := range items {
		table.Append(item.ID, string(item.Type), item.Name, truncate(item.Description, 60))
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
