package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillkit-cli/skillkit/internal/assistant"
	"github.com/skillkit-cli/skillkit/internal/bridge"
	"github.com/skillkit-cli/skillkit/internal/catalog"
	"github.com/skillkit-cli/skillkit/internal/installer"
	"github.com/skillkit-cli/skillkit/internal/source"
	"github.com/skillkit-cli/skillkit/internal/types"
)

var flagCopy bool

func init() {
	addCmd.Flags().BoolVar(&flagCopy, "copy", false, "copy content per assistant instead of symlinking a shared copy")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:     "add <source>...",
	Aliases: []string{"install", "i"},
	Short:   "Install content from the builtin catalog, GitHub, a URL, or a local path",
	Long: `Install one or more items. A source can be:

  clean-code                          builtin catalog id
  owner/repo                          GitHub repository shorthand
  owner/repo/path/to/skill            GitHub shorthand with subpath
  https://github.com/o/r/tree/b/p     GitHub URL
  https://example.com/skill.md        generic URL
  ./local/skill or /abs/path          local path`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeAdd(args)
	},
}

func executeAdd(sources []string) error {
	contentType, err := currentType()
	if err != nil {
		return err
	}

	var items []types.CatalogItem
	for _, raw := range sources {
		resolved, err := resolveItems(raw, contentType)
		if err != nil {
			// A fetch failure is fatal to that one item, not the batch.
			var srcErr *source.SourceError
			if errors.As(err, &srcErr) && srcErr.Type != source.ErrorTypeUnparseable && len(sources) > 1 {
				color.Red("✗ %s: %v", raw, err)
				continue
			}
			return err
		}
		items = append(items, resolved...)
	}
	if len(items) == 0 {
		return fmt.Errorf("nothing to install")
	}

	assistants, err := selectAssistants(items)
	if err != nil {
		return err
	}
	if len(assistants) == 0 {
		return fmt.Errorf("no assistants selected or detected; use --assistant to name one")
	}

	inst, err := installer.New(currentScope())
	if err != nil {
		return err
	}

	summary, err := inst.InstallItems(items, assistants, currentMethod())
	printSummary(summary)
	if err != nil {
		return err
	}

	// Bridge files are a post-install side effect; existing files survive.
	report, err := bridge.WriteBridgeFiles(bridge.GenerateBridgeFiles(assistants), inst.Root(), false)
	if err != nil {
		return err
	}
	for _, path := range report.Written {
		fmt.Printf("Created bridge file %s\n", path)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d installs failed", summary.Failed, summary.Total)
	}
	return nil
}

// resolveItems turns one source string into installable items: builtin
// catalog ids win, everything else goes through source resolution. A bare
// GitHub repository without a root content file falls back to discovering
// its skill directories, so one source can yield several items.
func resolveItems(raw string, contentType types.ContentType) ([]types.CatalogItem, error) {
	if item, ok := catalog.Find(raw, contentType); ok {
		return []types.CatalogItem{item}, nil
	}
	if item, ok := catalog.FindByID(raw); ok {
		return []types.CatalogItem{item}, nil
	}

	src, err := source.Parse(raw)
	if err != nil {
		return nil, err
	}

	fetcher := source.NewFetcher(viper.GetString("github_token"))
	fetched, err := fetcher.FetchSkill(src)
	if err != nil {
		if gh, ok := src.(source.GitHubSource); ok && gh.Path == "" {
			skills, derr := fetcher.FetchRepoSkills(gh)
			if derr == nil {
				items := make([]types.CatalogItem, 0, len(skills))
				for _, s := range skills {
					items = append(items, s.Item(contentType))
				}
				return items, nil
			}
		}
		return nil, err
	}
	return []types.CatalogItem{fetched.Item(contentType)}, nil
}

// selectAssistants resolves the --assistant flag, then the configured
// default_assistants, then with --all every assistant supporting the item
// types, and finally falls back to detection.
func selectAssistants(items []types.CatalogItem) ([]assistant.Config, error) {
	if len(flagAssistants) > 0 {
		configs, unknown := assistant.Resolve(flagAssistants)
		if unknown != "" {
			return nil, fmt.Errorf("unknown assistant %q", unknown)
		}
		return configs, nil
	}

	if defaults := viper.GetStringSlice("default_assistants"); len(defaults) > 0 {
		configs, unknown := assistant.Resolve(defaults)
		if unknown != "" {
			return nil, fmt.Errorf("unknown assistant %q in default_assistants config", unknown)
		}
		return configs, nil
	}

	if flagAll {
		seen := map[string]bool{}
		var out []assistant.Config
		for _, item := range items {
			for _, c := range assistant.ForContentType(item.Type) {
				if !seen[c.ID] {
					seen[c.ID] = true
					out = append(out, c)
				}
			}
		}
		return out, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return assistant.Detect(cwd), nil
}

func currentMethod() types.Method {
	if flagCopy {
		return types.MethodCopy
	}
	if m := viper.GetString("default_method"); m == string(types.MethodCopy) {
		return types.MethodCopy
	}
	return types.MethodSymlink
}

// printSummary prints the per-pair breakdown so a partially failed batch
// never leaves the user guessing which part failed.
func printSummary(summary *types.InstallSummary) {
	if summary == nil {
		return
	}
	for _, r := range summary.Results {
		if r.Success {
			color.Green("✓ %s → %s", r.ItemID, r.Assistant)
		} else {
			color.Red("✗ %s → %s: %s", r.ItemID, r.Assistant, r.Error)
		}
	}
	if summary.Total > 0 {
		fmt.Printf("\n%d installed, %d failed\n", summary.Succeeded, summary.Failed)
	}
}
