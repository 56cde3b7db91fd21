package catalog

import (
	"strings"
	"testing"

	"github.com/skillkit-cli/skillkit/internal/types"
)

func TestLoad(t *testing.T) {
	items, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) == 0 {
		t.Fatal("Load() returned no builtin items")
	}

	for _, item := range items {
		if item.ID == "" || item.Content == "" {
			t.Errorf("incomplete item: %+v", item)
		}
		if !item.Type.Valid() {
			t.Errorf("item %s has invalid type %q", item.ID, item.Type)
		}
		if !strings.HasPrefix(item.Source, "builtin:") {
			t.Errorf("item %s source = %q, want builtin: prefix", item.ID, item.Source)
		}
	}
}

func TestFindCleanCode(t *testing.T) {
	item, ok := Find("clean-code", types.ContentTypeSkill)
	if !ok {
		t.Fatal("builtin skill clean-code not found")
	}
	if item.Name != "Clean Code" {
		t.Errorf("name = %q, want frontmatter name", item.Name)
	}
	if item.Description == "" {
		t.Error("description empty, want frontmatter description")
	}

	if _, ok := Find("clean-code", types.ContentTypeRule); ok {
		t.Error("clean-code should not exist as a rule")
	}
}

func TestFindByID(t *testing.T) {
	item, ok := FindByID("doc-writer")
	if !ok {
		t.Fatal("builtin agent doc-writer not found")
	}
	if item.Type != types.ContentTypeAgent {
		t.Errorf("type = %q, want agent", item.Type)
	}

	if _, ok := FindByID("no-such-item"); ok {
		t.Error("FindByID(no-such-item) should fail")
	}
}

func TestByType(t *testing.T) {
	skills := ByType(types.ContentTypeSkill)
	if len(skills) < 3 {
		t.Errorf("got %d builtin skills, want at least 3", len(skills))
	}
	for _, item := range skills {
		if item.Type != types.ContentTypeSkill {
			t.Errorf("ByType(skill) returned %q item %s", item.Type, item.ID)
		}
	}
}

func TestSearch(t *testing.T) {
	got := Search("review")
	found := false
	for _, item := range got {
		if item.ID == "code-review" {
			found = true
		}
	}
	if !found {
		t.Errorf("Search(review) = %v, want code-review included", got)
	}

	if got := Search("zzz-no-match"); len(got) != 0 {
		t.Errorf("Search(no match) = %v, want empty", got)
	}

	// Case-insensitive.
	if got := Search("CLEAN"); len(got) == 0 {
		t.Error("Search(CLEAN) found nothing, want case-insensitive match")
	}
}
