// Package bridge produces the small stub files that point each AI assistant
// at the shared .ai/ content directory. Several assistants can share one
// physical file, so generation deduplicates by destination path.
package bridge

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skillkit-cli/skillkit/internal/assistant"
	"github.com/skillkit-cli/skillkit/internal/constants"
	"github.com/skillkit-cli/skillkit/internal/fsutil"
)

// File is one bridge stub to be written relative to an installation root.
type File struct {
	Path        string
	Content     string
	Description string
}

// WriteReport lists which bridge files were written and which were left
// alone because something already existed at their path.
type WriteReport struct {
	Written []string
	Skipped []string
}

// GenerateBridgeFiles returns one File per distinct bridge path required by
// the given assistants, in first-appearance order. Assistants sharing a
// path (codex and opencode both read AGENTS.md) yield a single file naming
// both.
func GenerateBridgeFiles(assistants []assistant.Config) []File {
	byPath := map[string][]string{}
	var order []string

	for _, a := range assistants {
		if a.BridgeFile == "" {
			continue
		}
		if _, seen := byPath[a.BridgeFile]; !seen {
			order = append(order, a.BridgeFile)
		}
		byPath[a.BridgeFile] = append(byPath[a.BridgeFile], a.Name)
	}

	files := make([]File, 0, len(order))
	for _, path := range order {
		names := byPath[path]
		files = append(files, File{
			Path:        path,
			Content:     bridgeContent(names),
			Description: fmt.Sprintf("bridge file for %s", strings.Join(names, ", ")),
		})
	}
	return files
}

func bridgeContent(assistantNames []string) string {
	var b strings.Builder
	b.WriteString("# AI Assistant Instructions\n\n")
	b.WriteString(fmt.Sprintf(
		"Shared configuration for %s lives in the `%s/` directory at the root of this project.\n\n",
		strings.Join(assistantNames, " and "), constants.AIDir))
	b.WriteString("Before starting work, read the relevant content there:\n\n")
	b.WriteString(fmt.Sprintf("- `%s/skills/`: task-specific skills\n", constants.AIDir))
	b.WriteString(fmt.Sprintf("- `%s/agents/`: agent definitions\n", constants.AIDir))
	b.WriteString(fmt.Sprintf("- `%s/commands/`: reusable commands\n", constants.AIDir))
	b.WriteString(fmt.Sprintf("- `%s/rules/`: project rules\n", constants.AIDir))
	b.WriteString(fmt.Sprintf("- `%s/prompts/`: prompt templates\n", constants.AIDir))
	b.WriteString("\nManaged by skillkit. Edits to this file are preserved across installs.\n")
	return b.String()
}

// WriteBridgeFiles writes each file under root. A file that already exists
// is skipped unless overwrite is set: bridge files may be edited by the
// user and must survive repeated runs.
func WriteBridgeFiles(files []File, root string, overwrite bool) (*WriteReport, error) {
	report := &WriteReport{}

	for _, f := range files {
		path := filepath.Join(root, f.Path)

		if overwrite {
			exists, err := fsutil.PathExists(path)
			if err != nil {
				return report, err
			}
			if exists {
				if err := fsutil.AtomicWrite(path, []byte(f.Content), 0644); err != nil {
					return report, err
				}
				report.Written = append(report.Written, f.Path)
				continue
			}
		}

		err := fsutil.GuardedWrite(path, []byte(f.Content), 0644)
		switch {
		case errors.Is(err, fsutil.ErrConflict):
			report.Skipped = append(report.Skipped, f.Path)
		case err != nil:
			return report, err
		default:
			report.Written = append(report.Written, f.Path)
		}
	}
	return report, nil
}
