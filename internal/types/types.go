package types

import (
	"os"
	"time"
)

// ContentType identifies one of the fixed kinds of installable content.
type ContentType string

const (
	ContentTypeSkill   ContentType = "skill"
	ContentTypeAgent   ContentType = "agent"
	ContentTypeCommand ContentType = "command"
	ContentTypeRule    ContentType = "rule"
	ContentTypePrompt  ContentType = "prompt"
)

// AllContentTypes returns the fixed set of content types in definition order.
func AllContentTypes() []ContentType {
	return []ContentType{
		ContentTypeSkill,
		ContentTypeAgent,
		ContentTypeCommand,
		ContentTypeRule,
		ContentTypePrompt,
	}
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeSkill, ContentTypeAgent, ContentTypeCommand, ContentTypeRule, ContentTypePrompt:
		return true
	}
	return false
}

// Plural returns the directory name used for this type under .ai/.
func (t ContentType) Plural() string {
	return string(t) + "s"
}

// CanonicalFile returns the conventional markdown file name for this type,
// e.g. SKILL.md for skills.
func (t ContentType) CanonicalFile() string {
	switch t {
	case ContentTypeSkill:
		return "SKILL.md"
	case ContentTypeAgent:
		return "AGENT.md"
	case ContentTypeCommand:
		return "COMMAND.md"
	case ContentTypeRule:
		return "RULE.md"
	case ContentTypePrompt:
		return "PROMPT.md"
	}
	return "SKILL.md"
}

// ParseContentType resolves a user-supplied string (singular or plural)
// to a ContentType.
func ParseContentType(s string) (ContentType, bool) {
	for _, t := range AllContentTypes() {
		if s == string(t) || s == t.Plural() {
			return t, true
		}
	}
	return "", false
}

// CatalogItem is one unit of installable content. Path is empty when the
// content was fetched in-memory rather than read from a template directory.
// Source is the human-readable description of where the item came from,
// recorded in the lock file.
type CatalogItem struct {
	ID          string
	Name        string
	Description string
	Type        ContentType
	Path        string
	Content     string
	Source      string
}

// Scope selects the installation root.
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeGlobal  Scope = "global"
)

// Root resolves the scope to its installation root directory: the current
// working directory for project scope, the home directory for global scope.
func (s Scope) Root() (string, error) {
	if s == ScopeGlobal {
		return os.UserHomeDir()
	}
	return os.Getwd()
}

// Method selects how content reaches each assistant's expected path.
type Method string

const (
	// MethodSymlink keeps a single canonical copy under .ai/ and links
	// each assistant destination to it.
	MethodSymlink Method = "symlink"
	// MethodCopy writes an independent duplicate per assistant.
	MethodCopy Method = "copy"
)

// LockEntry is the persisted record of one installed item.
type LockEntry struct {
	ID          string      `json:"id"`
	Type        ContentType `json:"type"`
	Source      string      `json:"source"`
	Assistants  []string    `json:"assistants"`
	InstalledAt time.Time   `json:"installedAt"`
}

// InstallResult is the outcome of one (item, assistant) pair.
type InstallResult struct {
	ItemID    string
	Assistant string
	Success   bool
	Error     string
}

// InstallSummary aggregates the results of one install operation.
type InstallSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []InstallResult
}

// Add records one pair result and updates the counters.
func (s *InstallSummary) Add(r InstallResult) {
	s.Total++
	if r.Success {
		s.Succeeded++
	} else {
		s.Failed++
	}
	s.Results = append(s.Results, r)
}
