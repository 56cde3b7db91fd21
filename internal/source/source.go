// Package source turns user-supplied source strings into typed content
// sources and fetches their raw markdown.
package source

import (
	"fmt"
	urlpkg "net/url"
	pathpkg "path"
	"path/filepath"
	"strings"

	"github.com/skillkit-cli/skillkit/internal/constants"
)

// Source is a tagged union over the places content can come from. The only
// implementations are GitHubSource, URLSource and LocalSource; every
// consumer switches over all three.
type Source interface {
	fmt.Stringer
	isSource()
}

// GitHubSource identifies content inside a GitHub repository. Branch is
// empty when the user did not name one, in which case fetching defaults to
// main with a single fallback to master.
type GitHubSource struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

func (GitHubSource) isSource() {}

// String renders the source in a form Parse accepts again, so lock entries
// recorded from it can be re-resolved by update.
func (s GitHubSource) String() string {
	if s.Branch != "" {
		out := fmt.Sprintf("https://github.com/%s/%s/tree/%s", s.Owner, s.Repo, s.Branch)
		if s.Path != "" {
			out += "/" + s.Path
		}
		return out
	}
	out := s.Owner + "/" + s.Repo
	if s.Path != "" {
		out += "/" + s.Path
	}
	return out
}

// URLSource identifies content behind a generic http(s) URL.
type URLSource struct {
	URL string
}

func (URLSource) isSource() {}

func (s URLSource) String() string { return s.URL }

// LocalSource identifies content on the local filesystem. Path may name a
// skill directory or a direct file.
type LocalSource struct {
	Path string
}

func (LocalSource) isSource() {}

func (s LocalSource) String() string { return s.Path }

// DeriveID computes the identifier for an item fetched from src: the final
// path segment where one exists, the repository name for a bare GitHub
// source, and a constant default when nothing usable remains.
func DeriveID(src Source) string {
	switch s := src.(type) {
	case GitHubSource:
		if s.Path != "" {
			return strings.TrimSuffix(pathpkg.Base(s.Path), ".md")
		}
		return s.Repo
	case LocalSource:
		p := filepath.Clean(s.Path)
		// A path naming the canonical file identifies its directory.
		if strings.EqualFold(filepath.Base(p), "SKILL.md") {
			p = filepath.Dir(p)
		}
		base := strings.TrimSuffix(filepath.Base(p), ".md")
		if base != "" && base != "." && base != string(filepath.Separator) {
			return base
		}
	case URLSource:
		if u, err := urlpkg.Parse(s.URL); err == nil {
			base := pathpkg.Base(u.Path)
			base = strings.TrimSuffix(base, ".md")
			if base != "" && base != "." && base != "/" {
				return base
			}
		}
	}
	return constants.DefaultItemID
}
