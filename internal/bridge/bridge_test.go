package bridge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillkit-cli/skillkit/internal/assistant"
)

func configs(ids ...string) []assistant.Config {
	var out []assistant.Config
	for _, id := range ids {
		c, ok := assistant.Get(id)
		if !ok {
			panic("unknown test assistant " + id)
		}
		out = append(out, c)
	}
	return out
}

func TestGenerateBridgeFilesDeduplicatesSharedPaths(t *testing.T) {
	files := GenerateBridgeFiles(configs("codex", "opencode", "claude"))

	paths := map[string]int{}
	for _, f := range files {
		paths[f.Path]++
	}

	if paths["AGENTS.md"] != 1 {
		t.Errorf("AGENTS.md planned %d times, want exactly once", paths["AGENTS.md"])
	}
	if paths["CLAUDE.md"] != 1 {
		t.Errorf("CLAUDE.md planned %d times, want exactly once", paths["CLAUDE.md"])
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2", len(files))
	}

	// The shared file names both assistants.
	for _, f := range files {
		if f.Path == "AGENTS.md" {
			if !strings.Contains(f.Content, "Codex CLI") || !strings.Contains(f.Content, "OpenCode") {
				t.Errorf("shared bridge content missing assistant names:\n%s", f.Content)
			}
		}
	}
}

func TestGenerateBridgeFilesMentionsAIDir(t *testing.T) {
	files := GenerateBridgeFiles(configs("claude"))
	if len(files) != 1 {
		t.Fatalf("got %d files", len(files))
	}
	if !strings.Contains(files[0].Content, ".ai/") {
		t.Errorf("bridge content does not point at .ai/:\n%s", files[0].Content)
	}
}

func TestWriteBridgeFilesNeverOverwrites(t *testing.T) {
	root := t.TempDir()
	custom := "# my own customized instructions\n"
	if err := os.WriteFile(filepath.Join(root, "CLAUDE.md"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := WriteBridgeFiles(GenerateBridgeFiles(configs("claude", "gemini")), root, false)
	if err != nil {
		t.Fatalf("WriteBridgeFiles() error = %v", err)
	}

	if len(report.Skipped) != 1 || report.Skipped[0] != "CLAUDE.md" {
		t.Errorf("skipped = %v, want [CLAUDE.md]", report.Skipped)
	}
	if len(report.Written) != 1 || report.Written[0] != "GEMINI.md" {
		t.Errorf("written = %v, want [GEMINI.md]", report.Written)
	}

	data, err := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Errorf("existing bridge file bytes changed to %q", data)
	}
}

func TestWriteBridgeFilesOverwrite(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "CLAUDE.md"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := WriteBridgeFiles(GenerateBridgeFiles(configs("claude")), root, true)
	if err != nil {
		t.Fatalf("WriteBridgeFiles() error = %v", err)
	}
	if len(report.Written) != 1 {
		t.Errorf("written = %v", report.Written)
	}

	data, _ := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	if string(data) == "old" {
		t.Error("overwrite=true left old content in place")
	}
}

func TestWriteBridgeFilesCreatesNestedPaths(t *testing.T) {
	root := t.TempDir()

	report, err := WriteBridgeFiles(GenerateBridgeFiles(configs("cursor", "copilot")), root, false)
	if err != nil {
		t.Fatalf("WriteBridgeFiles() error = %v", err)
	}
	if len(report.Written) != 2 {
		t.Fatalf("written = %v", report.Written)
	}

	for _, rel := range []string{
		filepath.Join(".cursor", "rules", "ai-config.mdc"),
		filepath.Join(".github", "copilot-instructions.md"),
	} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Errorf("nested bridge file %s missing: %v", rel, err)
		}
	}
}
