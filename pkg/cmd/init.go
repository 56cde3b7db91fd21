package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillkit-cli/skillkit/internal/assistant"
	"github.com/skillkit-cli/skillkit/internal/bridge"
	"github.com/skillkit-cli/skillkit/internal/constants"
	"github.com/skillkit-cli/skillkit/internal/types"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"create"},
	Short:   "Create the .ai/ skeleton and bridge files for detected assistants",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeInit()
	},
}

func executeInit() error {
	root, err := currentScope().Root()
	if err != nil {
		return err
	}

	for _, t := range types.AllContentTypes() {
		dir := filepath.Join(root, constants.AIDir, t.Plural())
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	fmt.Printf("Initialized %s/\n", constants.AIDir)

	assistants := targetOrDetected(root)
	if len(assistants) == 0 {
		fmt.Println("No assistants detected; skipping bridge files. Use 'skillkit bridge -a <name>' later.")
		return nil
	}

	report, err := bridge.WriteBridgeFiles(bridge.GenerateBridgeFiles(assistants), root, false)
	if err != nil {
		return err
	}
	for _, path := range report.Written {
		fmt.Printf("Created %s\n", path)
	}
	for _, path := range report.Skipped {
		fmt.Printf("Kept existing %s\n", path)
	}
	return nil
}

// targetOrDetected honors --assistant, falling back to detection.
func targetOrDetected(root string) []assistant.Config {
	if len(flagAssistants) > 0 {
		configs, unknown := assistant.Resolve(flagAssistants)
		if unknown == "" {
			return configs
		}
	}
	if flagAll {
		return assistant.All()
	}
	return assistant.Detect(root)
}
