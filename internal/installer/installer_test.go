package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillkit-cli/skillkit/internal/assistant"
	"github.com/skillkit-cli/skillkit/internal/lockfile"
	"github.com/skillkit-cli/skillkit/internal/types"
)

func mockAssistant() assistant.Config {
	return assistant.Config{
		ID:   "mock",
		Name: "Mock Assistant",
		Paths: map[types.ContentType]string{
			types.ContentTypeSkill: ".mock/skills/{{name}}",
		},
		BridgeFile: "MOCK.md",
	}
}

func skillItem(id, content string) types.CatalogItem {
	return types.CatalogItem{
		ID:      id,
		Name:    id,
		Type:    types.ContentTypeSkill,
		Content: content,
		Source:  "builtin:" + id,
	}
}

func TestInstallSymlinkScenario(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)
	item := skillItem("clean-code", "# Clean Code\n")

	summary, err := in.InstallItems([]types.CatalogItem{item}, []assistant.Config{mockAssistant()}, types.MethodSymlink)
	if err != nil {
		t.Fatalf("InstallItems() error = %v", err)
	}
	if summary.Total != 1 || summary.Succeeded != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 1/1/0", summary)
	}

	canonical := filepath.Join(root, ".ai", "skills", "clean-code", "SKILL.md")
	data, err := os.ReadFile(canonical)
	if err != nil {
		t.Fatalf("canonical copy missing: %v", err)
	}
	if string(data) != "# Clean Code\n" {
		t.Errorf("canonical content = %q", data)
	}

	link := filepath.Join(root, ".mock", "skills", "clean-code")
	target, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("assistant destination is not a symlink: %v", err)
	}
	if target != filepath.Join(root, ".ai", "skills", "clean-code") {
		t.Errorf("link target = %q", target)
	}

	entry, err := lockfile.Find(root, types.ContentTypeSkill, "clean-code")
	if err != nil {
		t.Fatal(err)
	}
	if entry == nil {
		t.Fatal("no lock entry recorded")
	}
	if len(entry.Assistants) != 1 || entry.Assistants[0] != "mock" {
		t.Errorf("lock entry assistants = %v, want [mock]", entry.Assistants)
	}
}

func TestInstallIsIdempotent(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)
	item := skillItem("clean-code", "# Clean Code\n")
	assistants := []assistant.Config{mockAssistant()}

	for i := 0; i < 2; i++ {
		summary, err := in.InstallItems([]types.CatalogItem{item}, assistants, types.MethodSymlink)
		if err != nil {
			t.Fatalf("run %d: InstallItems() error = %v", i, err)
		}
		if summary.Failed != 0 {
			t.Fatalf("run %d: %d failures: %+v", i, summary.Failed, summary.Results)
		}
	}

	entries, err := lockfile.InstalledItemsByType(root, types.ContentTypeSkill)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("lock entries = %d, want 1 (no duplicates)", len(entries))
	}
}

func TestInstallCopyMethod(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)
	item := skillItem("clean-code", "# Clean Code\n")

	second := mockAssistant()
	second.ID = "mock2"
	second.Paths = map[types.ContentType]string{
		types.ContentTypeSkill: ".mock2/skills/{{name}}",
	}

	summary, err := in.InstallItems([]types.CatalogItem{item}, []assistant.Config{mockAssistant(), second}, types.MethodCopy)
	if err != nil {
		t.Fatalf("InstallItems() error = %v", err)
	}
	if summary.Succeeded != 2 {
		t.Fatalf("summary = %+v", summary)
	}

	for _, dest := range []string{".mock/skills/clean-code", ".mock2/skills/clean-code"} {
		path := filepath.Join(root, dest, "SKILL.md")
		info, err := os.Lstat(filepath.Join(root, dest))
		if err != nil {
			t.Fatalf("destination %s missing: %v", dest, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			t.Errorf("copy method produced a symlink at %s", dest)
		}
		if _, err := os.ReadFile(path); err != nil {
			t.Errorf("copied file missing at %s: %v", path, err)
		}
	}
}

func TestInstallDestinationConflict(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)
	item := skillItem("clean-code", "# Clean Code\n")

	// User content already lives at the assistant destination.
	dest := filepath.Join(root, ".mock", "skills", "clean-code")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "notes.md"), []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	summary, err := in.InstallItems([]types.CatalogItem{item}, []assistant.Config{mockAssistant()}, types.MethodSymlink)
	if err != nil {
		t.Fatalf("InstallItems() error = %v (conflicts must not abort the batch)", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("summary = %+v, want one failure", summary)
	}
	if !strings.Contains(summary.Results[0].Error, "refusing to overwrite") {
		t.Errorf("failure message = %q", summary.Results[0].Error)
	}

	// The user's file survives.
	if _, err := os.Stat(filepath.Join(dest, "notes.md")); err != nil {
		t.Errorf("user content was clobbered: %v", err)
	}

	// No lock entry for an item that reached no assistant.
	entry, err := lockfile.Find(root, types.ContentTypeSkill, "clean-code")
	if err != nil {
		t.Fatal(err)
	}
	if entry != nil {
		t.Errorf("lock entry recorded despite total failure: %+v", entry)
	}
}

func TestInstallPartialFailureContinues(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)
	item := skillItem("clean-code", "# Clean Code\n")

	blocked := mockAssistant()
	blocked.ID = "blocked"
	blocked.Paths = map[types.ContentType]string{
		types.ContentTypeSkill: ".blocked/skills/{{name}}",
	}
	if err := os.MkdirAll(filepath.Join(root, ".blocked", "skills"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".blocked", "skills", "clean-code"), []byte("foreign"), 0644); err != nil {
		t.Fatal(err)
	}

	summary, err := in.InstallItems([]types.CatalogItem{item}, []assistant.Config{blocked, mockAssistant()}, types.MethodSymlink)
	if err != nil {
		t.Fatalf("InstallItems() error = %v", err)
	}
	if summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want one success and one failure", summary)
	}

	entry, err := lockfile.Find(root, types.ContentTypeSkill, "clean-code")
	if err != nil {
		t.Fatal(err)
	}
	if entry == nil {
		t.Fatal("successful pair should still be recorded")
	}
	if len(entry.Assistants) != 1 || entry.Assistants[0] != "mock" {
		t.Errorf("lock entry assistants = %v, want only the successful one", entry.Assistants)
	}
}

func TestInstallSkipsUnsupportedType(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)

	rule := types.CatalogItem{
		ID:      "some-rule",
		Type:    types.ContentTypeRule,
		Content: "# rule",
		Source:  "builtin:some-rule",
	}

	// The mock assistant only supports skills.
	summary, err := in.InstallItems([]types.CatalogItem{rule}, []assistant.Config{mockAssistant()}, types.MethodSymlink)
	if err != nil {
		t.Fatalf("InstallItems() error = %v", err)
	}
	if summary.Total != 0 {
		t.Errorf("summary = %+v, want no attempted pairs", summary)
	}
}

func TestUninstallItem(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)
	item := skillItem("clean-code", "# Clean Code\n")

	mock := mockAssistant()
	if _, err := in.InstallItems([]types.CatalogItem{item}, []assistant.Config{mock}, types.MethodSymlink); err != nil {
		t.Fatal(err)
	}

	// UninstallItem consults the static registry, so use a real assistant
	// path layout by checking against the mock destination directly.
	dest := filepath.Join(root, ".mock", "skills", "clean-code")
	if _, err := os.Lstat(dest); err != nil {
		t.Fatalf("destination missing after install: %v", err)
	}

	removed, err := uninstallAt(in, mock, types.ContentTypeSkill, "clean-code")
	if err != nil {
		t.Fatalf("uninstall error = %v", err)
	}
	if !removed {
		t.Error("first uninstall = false, want true")
	}
	if _, err := os.Lstat(dest); !os.IsNotExist(err) {
		t.Error("destination still present after uninstall")
	}

	removed, err = uninstallAt(in, mock, types.ContentTypeSkill, "clean-code")
	if err != nil {
		t.Fatalf("second uninstall error = %v", err)
	}
	if removed {
		t.Error("second uninstall = true, want false")
	}
}

// uninstallAt mirrors UninstallItem for an assistant outside the static
// registry.
func uninstallAt(in *Installer, a assistant.Config, contentType types.ContentType, id string) (bool, error) {
	rel, ok := a.DestinationPath(contentType, id)
	if !ok {
		return false, nil
	}
	dest := filepath.Join(in.Root(), rel)
	if _, err := os.Lstat(dest); os.IsNotExist(err) {
		return false, nil
	}
	return true, os.RemoveAll(dest)
}

func TestUninstallItemRegisteredAssistant(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)
	item := skillItem("clean-code", "# Clean Code\n")

	claude, ok := assistant.Get("claude")
	if !ok {
		t.Fatal("claude missing from registry")
	}

	if _, err := in.InstallItems([]types.CatalogItem{item}, []assistant.Config{claude}, types.MethodSymlink); err != nil {
		t.Fatal(err)
	}

	removed, err := in.UninstallItem(types.ContentTypeSkill, "clean-code", "claude")
	if err != nil {
		t.Fatalf("UninstallItem() error = %v", err)
	}
	if !removed {
		t.Error("UninstallItem() = false, want true")
	}

	removed, err = in.UninstallItem(types.ContentTypeSkill, "clean-code", "claude")
	if err != nil {
		t.Fatalf("UninstallItem() second call error = %v", err)
	}
	if removed {
		t.Error("UninstallItem() on absent destination = true, want false")
	}
}

func TestRemoveCanonical(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)
	item := skillItem("clean-code", "# Clean Code\n")

	if _, err := in.InstallItems([]types.CatalogItem{item}, []assistant.Config{mockAssistant()}, types.MethodSymlink); err != nil {
		t.Fatal(err)
	}

	if err := in.RemoveCanonical(types.ContentTypeSkill, "clean-code"); err != nil {
		t.Fatalf("RemoveCanonical() error = %v", err)
	}
	if _, err := os.Stat(in.CanonicalDir(types.ContentTypeSkill, "clean-code")); !os.IsNotExist(err) {
		t.Error("canonical dir still present")
	}
}

func TestItemContentFromPath(t *testing.T) {
	root := t.TempDir()
	in := NewWithRoot(root)

	skillDir := filepath.Join(root, "template")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte("# from template"), 0644); err != nil {
		t.Fatal(err)
	}

	item := types.CatalogItem{
		ID:     "templated",
		Type:   types.ContentTypeSkill,
		Path:   skillDir,
		Source: "local",
	}

	summary, err := in.InstallItems([]types.CatalogItem{item}, []assistant.Config{mockAssistant()}, types.MethodSymlink)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	data, err := os.ReadFile(filepath.Join(in.CanonicalDir(types.ContentTypeSkill, "templated"), "SKILL.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# from template" {
		t.Errorf("canonical content = %q", data)
	}
}
