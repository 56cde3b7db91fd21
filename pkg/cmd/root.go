package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillkit-cli/skillkit/internal/types"
)

var (
	flagGlobal     bool
	flagAssistants []string
	flagType       string
	flagYes        bool
	flagAll        bool
)

var rootCmd = &cobra.Command{
	Use:   "skillkit",
	Short: "Install AI skills and wire them into your coding assistants",
	Long: `skillkit installs markdown-based skills, agents, commands, rules and
prompts into a shared .ai/ directory and generates bridge files that point
AI coding assistants at that content.`,

	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagGlobal, "global", "g", false, "install to the home directory instead of the current project")
	rootCmd.PersistentFlags().StringSliceVarP(&flagAssistants, "assistant", "a", nil, "target assistants (default: detected)")
	rootCmd.PersistentFlags().StringVarP(&flagType, "type", "t", "", "content type (skill, agent, command, rule, prompt)")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&flagAll, "all", false, "select everything applicable")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// currentScope maps the --global flag to a scope.
func currentScope() types.Scope {
	if flagGlobal {
		return types.ScopeGlobal
	}
	return types.ScopeProject
}

// currentType parses the --type flag, defaulting to skill.
func currentType() (types.ContentType, error) {
	if flagType == "" {
		return types.ContentTypeSkill, nil
	}
	t, ok := types.ParseContentType(flagType)
	if !ok {
		return "", fmt.Errorf("unknown content type %q: expected one of skill, agent, command, rule, prompt", flagType)
	}
	return t, nil
}
