package source

import (
	"fmt"
	urlpkg "net/url"
	pathpkg "path"
	"regexp"
	"strings"
)

// shorthandPattern matches owner/repo and owner/repo/sub/path forms. The
// character class excludes ':' so scheme-qualified URLs never match.
var shorthandPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+(/[A-Za-z0-9_.-]+)+$`)

// Parse resolves a source string to a typed Source. Resolution is
// prefix-based and first-match-wins:
//
//	/, ./, ../ prefix          -> local path
//	host github.com            -> GitHub URL (tree/blob forms supported)
//	word-chars/word-chars[...] -> GitHub shorthand
//	http:// or https://        -> generic URL
//
// An ambiguous string such as a local directory literally named owner/repo
// resolves as GitHub shorthand unless it carries an explicit ./ or /
// prefix. Anything else fails with an unparseable-source error.
func Parse(raw string) (Source, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, &SourceError{
			Type:    ErrorTypeUnparseable,
			Message: "source cannot be empty",
		}
	}

	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") {
		return LocalSource{Path: s}, nil
	}

	if isGitHubURL(s) {
		return parseGitHubURL(s)
	}

	if shorthandPattern.MatchString(s) {
		parts := strings.Split(s, "/")
		gh := GitHubSource{Owner: parts[0], Repo: parts[1]}
		if len(parts) > 2 {
			gh.Path = strings.Join(parts[2:], "/")
		}
		return gh, nil
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return URLSource{URL: s}, nil
	}

	return nil, &SourceError{
		Type:    ErrorTypeUnparseable,
		Message: fmt.Sprintf("unrecognized source %q: expected a local path, GitHub repository, or URL", raw),
	}
}

func isGitHubURL(s string) bool {
	u, err := urlpkg.Parse(withScheme(s))
	if err != nil {
		return false
	}
	return u.Host == "github.com" || strings.HasSuffix(u.Host, ".github.com")
}

// withScheme lets bare github.com/owner/repo strings parse with a real host.
func withScheme(s string) string {
	if strings.Contains(s, "://") {
		return s
	}
	return "https://" + s
}

func parseGitHubURL(raw string) (Source, error) {
	u, err := urlpkg.Parse(withScheme(raw))
	if err != nil {
		return nil, &SourceError{
			Type:    ErrorTypeUnparseable,
			Message: fmt.Sprintf("invalid GitHub URL %q", raw),
			Err:     err,
		}
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, &SourceError{
			Type:    ErrorTypeUnparseable,
			Message: fmt.Sprintf("GitHub URL %q must include owner and repository", raw),
		}
	}

	gh := GitHubSource{
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}

	// /tree/<branch>/<path> and /blob/<branch>/<path> carry a branch and an
	// optional subpath; anything after owner/repo otherwise is ignored.
	if len(parts) >= 4 && (parts[2] == "tree" || parts[2] == "blob") {
		gh.Branch = parts[3]
		if len(parts) > 4 {
			gh.Path = strings.Join(parts[4:], "/")
		}
	}

	// A URL pointing directly at the canonical file means its directory.
	if pathpkg.Base(gh.Path) == "SKILL.md" {
		gh.Path = strings.TrimSuffix(pathpkg.Dir(gh.Path), ".")
		if gh.Path == "/" {
			gh.Path = ""
		}
	}

	return gh, nil
}
