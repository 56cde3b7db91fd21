// Package assistant holds the static table of known AI assistants: how to
// detect them on a machine and where each expects installed content to live.
// Adding an assistant is a data edit here, not a new code path.
package assistant

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/skillkit-cli/skillkit/internal/types"
)

// Config describes one assistant. Paths maps content types to destination
// templates relative to the installation root; an absent entry means the
// assistant does not support that content type. The {{name}} placeholder is
// replaced with the item identifier.
type Config struct {
	ID          string
	Name        string
	Description string
	ConfigDirs  []string
	Binary      string
	Paths       map[types.ContentType]string
	BridgeFile  string
}

// registry definition order is the stable ordering surfaced by All and used
// for deterministic default selection.
var registry = []Config{
	{
		ID:          "claude",
		Name:        "Claude Code",
		Description: "Anthropic's Claude Code CLI",
		ConfigDirs:  []string{".claude"},
		Binary:      "claude",
		Paths: map[types.ContentType]string{
			types.ContentTypeSkill:   ".claude/skills/{{name}}",
			types.ContentTypeAgent:   ".claude/agents/{{name}}",
			types.ContentTypeCommand: ".claude/commands/{{name}}",
		},
		BridgeFile: "CLAUDE.md",
	},
	{
		ID:          "cursor",
		Name:        "Cursor",
		Description: "Cursor editor",
		ConfigDirs:  []string{".cursor"},
		Paths: map[types.ContentType]string{
			types.ContentTypeRule:    ".cursor/rules/{{name}}",
			types.ContentTypeCommand: ".cursor/commands/{{name}}",
		},
		BridgeFile: ".cursor/rules/ai-config.mdc",
	},
	{
		ID:          "windsurf",
		Name:        "Windsurf",
		Description: "Windsurf editor",
		ConfigDirs:  []string{".windsurf"},
		Paths: map[types.ContentType]string{
			types.ContentTypeRule: ".windsurf/rules/{{name}}",
		},
		BridgeFile: ".windsurfrules",
	},
	{
		ID:          "copilot",
		Name:        "GitHub Copilot",
		Description: "GitHub Copilot in VS Code and github.com",
		ConfigDirs:  []string{".github"},
		Paths: map[types.ContentType]string{
			types.ContentTypePrompt: ".github/prompts/{{name}}",
		},
		BridgeFile: ".github/copilot-instructions.md",
	},
	{
		ID:          "gemini",
		Name:        "Gemini CLI",
		Description: "Google's Gemini CLI",
		ConfigDirs:  []string{".gemini"},
		Binary:      "gemini",
		Paths: map[types.ContentType]string{
			types.ContentTypeSkill:   ".gemini/skills/{{name}}",
			types.ContentTypeCommand: ".gemini/commands/{{name}}",
		},
		BridgeFile: "GEMINI.md",
	},
	{
		ID:          "codex",
		Name:        "Codex CLI",
		Description: "OpenAI's Codex CLI",
		ConfigDirs:  []string{".codex"},
		Binary:      "codex",
		Paths: map[types.ContentType]string{
			types.ContentTypeSkill:  ".codex/skills/{{name}}",
			types.ContentTypePrompt: ".codex/prompts/{{name}}",
		},
		BridgeFile: "AGENTS.md",
	},
	{
		ID:          "opencode",
		Name:        "OpenCode",
		Description: "OpenCode terminal agent",
		ConfigDirs:  []string{".opencode"},
		Binary:      "opencode",
		Paths: map[types.ContentType]string{
			types.ContentTypeSkill:   ".opencode/skill/{{name}}",
			types.ContentTypeAgent:   ".opencode/agent/{{name}}",
			types.ContentTypeCommand: ".opencode/command/{{name}}",
		},
		BridgeFile: "AGENTS.md",
	},
}

// All returns every known assistant in registry definition order.
func All() []Config {
	out := make([]Config, len(registry))
	copy(out, registry)
	return out
}

// Get looks up one assistant by identifier.
func Get(id string) (Config, bool) {
	for _, c := range registry {
		if c.ID == id {
			return c, true
		}
	}
	return Config{}, false
}

// Resolve maps a list of assistant identifiers to their configs, reporting
// the first unknown identifier.
func Resolve(ids []string) ([]Config, string) {
	out := make([]Config, 0, len(ids))
	for _, id := range ids {
		c, ok := Get(strings.ToLower(strings.TrimSpace(id)))
		if !ok {
			return nil, id
		}
		out = append(out, c)
	}
	return out, ""
}

// ForContentType returns the assistants whose destination mapping includes
// the given content type.
func ForContentType(t types.ContentType) []Config {
	var out []Config
	for _, c := range registry {
		if c.SupportsType(t) {
			out = append(out, c)
		}
	}
	return out
}

// SupportsType reports whether the assistant has a destination for t.
func (c Config) SupportsType(t types.ContentType) bool {
	_, ok := c.Paths[t]
	return ok
}

// DestinationPath expands the destination template for t with the item name.
// The second return is false when the assistant does not support t.
func (c Config) DestinationPath(t types.ContentType, name string) (string, bool) {
	template, ok := c.Paths[t]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(template, "{{name}}", name), true
}

// Detect returns the subset of assistants present on this machine, probing
// each assistant's config directories under the project root and the home
// directory, then its CLI binary on PATH. Detection is best-effort: a failed
// probe counts as not detected, never as an error.
func Detect(projectRoot string) []Config {
	home, _ := os.UserHomeDir()

	var out []Config
	for _, c := range registry {
		if detected(c, projectRoot, home) {
			out = append(out, c)
		}
	}
	return out
}

func detected(c Config, projectRoot, home string) bool {
	for _, dir := range c.ConfigDirs {
		if projectRoot != "" && dirExists(filepath.Join(projectRoot, dir)) {
			return true
		}
		if home != "" && dirExists(filepath.Join(home, dir)) {
			return true
		}
	}
	if c.Binary != "" {
		if _, err := exec.LookPath(c.Binary); err == nil {
			return true
		}
	}
	return false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
