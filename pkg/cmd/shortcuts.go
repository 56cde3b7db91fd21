package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skillkit-cli/skillkit/internal/types"
)

// Bare content-type shortcuts: `skillkit skills` behaves like
// `skillkit list --type skill`, and so on for each content type.
func init() {
	for _, contentType := range types.AllContentTypes() {
		t := contentType
		rootCmd.AddCommand(&cobra.Command{
			Use:   t.Plural(),
			Short: "List installed " + t.Plural(),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				flagType = string(t)
				return executeList()
			},
		})
	}
}
