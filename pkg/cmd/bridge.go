package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillkit-cli/skillkit/internal/bridge"
)

var flagOverwrite bool

func init() {
	bridgeCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "rewrite bridge files even when they already exist")
	rootCmd.AddCommand(bridgeCmd)
}

var bridgeCmd = &cobra.Command{
	Use:     "bridge",
	Aliases: []string{"context"},
	Short:   "Generate assistant bridge files pointing at .ai/",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeBridge()
	},
}

func executeBridge() error {
	root, err := currentScope().Root()
	if err != nil {
		return err
	}

	assistants := targetOrDetected(root)
	if len(assistants) == 0 {
		return fmt.Errorf("no assistants selected or detected; use --assistant to name one")
	}

	files := bridge.GenerateBridgeFiles(assistants)
	report, err := bridge.WriteBridgeFiles(files, root, flagOverwrite)
	if err != nil {
		return err
	}

	for _, path := range report.Written {
		fmt.Printf("Wrote %s\n", path)
	}
	for _, path := range report.Skipped {
		fmt.Printf("Skipped %s (already exists, use --overwrite to replace)\n", path)
	}
	return nil
}
