package source

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skillkit-cli/skillkit/internal/frontmatter"
	"github.com/skillkit-cli/skillkit/internal/types"
)

const (
	defaultRawBaseURL = "https://raw.githubusercontent.com"
	defaultAPIBaseURL = "https://api.github.com"

	fetchTimeout = 30 * time.Second
)

// repoEntry is one item returned by the GitHub contents API.
type repoEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	DownloadURL string `json:"download_url"`
}

// FetchedSkill is the result of resolving a source to content. Name and
// Description come from the document's frontmatter, falling back to the
// derived identifier when absent.
type FetchedSkill struct {
	ID          string
	Name        string
	Description string
	Content     string
	Source      Source
}

// Item converts the fetched result into a catalog item of the given type.
func (f *FetchedSkill) Item(contentType types.ContentType) types.CatalogItem {
	return types.CatalogItem{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Type:        contentType,
		Content:     f.Content,
		Source:      f.Source.String(),
	}
}

// Fetcher retrieves raw content for non-builtin sources.
type Fetcher struct {
	client     *resty.Client
	rawBaseURL string
	apiBaseURL string
}

// NewFetcher creates a fetcher. The token, when non-empty, is sent as a
// bearer credential so GitHub API calls get the authenticated rate limit.
func NewFetcher(token string) *Fetcher {
	client := resty.New()
	client.SetTimeout(fetchTimeout)
	client.SetHeader("User-Agent", "skillkit-cli/1.0")
	if token != "" {
		client.SetHeader("Authorization", "Bearer "+token)
	}

	return &Fetcher{
		client:     client,
		rawBaseURL: defaultRawBaseURL,
		apiBaseURL: defaultAPIBaseURL,
	}
}

// SetBaseURLs overrides the GitHub endpoints, primarily for tests.
func (f *Fetcher) SetBaseURLs(rawBase, apiBase string) {
	f.rawBaseURL = rawBase
	f.apiBaseURL = apiBase
}

// FetchSkill resolves src to its markdown content. GitHub sources without
// an explicit branch try main and fall back exactly once to master; all
// other failures surface immediately.
func (f *Fetcher) FetchSkill(src Source) (*FetchedSkill, error) {
	var (
		content string
		err     error
	)

	switch s := src.(type) {
	case GitHubSource:
		content, err = f.fetchGitHub(s)
	case URLSource:
		content, err = f.fetchRaw(s.URL)
	case LocalSource:
		content, err = readLocal(s.Path)
	default:
		err = &SourceError{
			Type:    ErrorTypeFetch,
			Message: fmt.Sprintf("unsupported source %q", src),
		}
	}
	if err != nil {
		return nil, err
	}

	id := DeriveID(src)
	doc := frontmatter.Parse(content)

	fetched := &FetchedSkill{
		ID:          id,
		Name:        doc.Name(),
		Description: doc.Description(),
		Content:     content,
		Source:      src,
	}
	if fetched.Name == "" {
		fetched.Name = id
	}
	return fetched, nil
}

func (f *Fetcher) fetchGitHub(s GitHubSource) (string, error) {
	branch := s.Branch
	implicitDefault := branch == ""
	if implicitDefault {
		branch = "main"
	}

	content, err := f.fetchRaw(f.rawContentURL(s, branch))
	if err != nil && implicitDefault {
		// Older repositories still use master as the default branch.
		content, err = f.fetchRaw(f.rawContentURL(s, "master"))
	}
	return content, err
}

// rawContentURL builds the raw-content URL for a GitHub source. A path
// naming a markdown file is fetched directly; otherwise the path is treated
// as a skill directory holding SKILL.md.
func (f *Fetcher) rawContentURL(s GitHubSource, branch string) string {
	file := "SKILL.md"
	if s.Path != "" {
		if strings.HasSuffix(s.Path, ".md") {
			file = s.Path
		} else {
			file = s.Path + "/SKILL.md"
		}
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s", f.rawBaseURL, s.Owner, s.Repo, branch, file)
}

func (f *Fetcher) fetchRaw(url string) (string, error) {
	resp, err := f.client.R().Get(url)
	if err != nil {
		return "", &SourceError{
			Type:    ErrorTypeFetch,
			Message: fmt.Sprintf("failed to fetch %s", url),
			Err:     err,
		}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &SourceError{
			Type:    ErrorTypeFetch,
			Message: fmt.Sprintf("fetch %s returned %d", url, resp.StatusCode()),
		}
	}
	return string(resp.Body()), nil
}

// readLocal probes <path>/SKILL.md first so a source can name a skill
// directory, then falls back to the path itself as a direct file.
func readLocal(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(path, "SKILL.md"))
	if err == nil {
		return string(data), nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return "", &SourceError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("no skill content at %s", path),
			Err:     err,
		}
	}
	return string(data), nil
}

// ListGitHubSkills discovers skill directories in a repository and returns
// their repo-relative paths. It tries the conventional skills/ directory
// first and falls back to scanning the repository root: a root-level
// SKILL.md means the repository is itself one skill (the empty path),
// otherwise each child directory is probed individually. Individual probe
// failures are treated as "not a skill directory" rather than propagated so
// discovery degrades gracefully.
func (f *Fetcher) ListGitHubSkills(s GitHubSource) ([]string, error) {
	entries, err := f.repoContents(s, "skills")
	if err == nil {
		var paths []string
		for _, entry := range entries {
			if entry.Type == "dir" {
				paths = append(paths, entry.Path)
			}
		}
		if len(paths) > 0 {
			return paths, nil
		}
	}

	root, err := f.repoContents(s, "")
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range root {
		if entry.Type == "file" && entry.Name == "SKILL.md" {
			return []string{""}, nil
		}
		if entry.Type != "dir" {
			continue
		}
		children, err := f.repoContents(s, entry.Path)
		if err != nil {
			continue
		}
		for _, child := range children {
			if child.Type == "file" && child.Name == "SKILL.md" {
				paths = append(paths, entry.Path)
				break
			}
		}
	}
	return paths, nil
}

// FetchRepoSkills discovers and fetches every skill in a repository. Skills
// whose content fails to fetch are skipped; discovering nothing fetchable is
// a not-found error.
func (f *Fetcher) FetchRepoSkills(s GitHubSource) ([]*FetchedSkill, error) {
	paths, err := f.ListGitHubSkills(s)
	if err != nil {
		return nil, err
	}

	var out []*FetchedSkill
	for _, p := range paths {
		sub := s
		sub.Path = p
		fetched, err := f.FetchSkill(sub)
		if err != nil {
			continue
		}
		out = append(out, fetched)
	}
	if len(out) == 0 {
		return nil, &SourceError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("no skills found in %s/%s", s.Owner, s.Repo),
		}
	}
	return out, nil
}

func (f *Fetcher) repoContents(s GitHubSource, path string) ([]repoEntry, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", f.apiBaseURL, s.Owner, s.Repo, path)
	if s.Branch != "" {
		url += "?ref=" + s.Branch
	}

	var entries []repoEntry
	resp, err := f.client.R().SetResult(&entries).Get(url)
	if err != nil {
		return nil, &SourceError{
			Type:    ErrorTypeFetch,
			Message: fmt.Sprintf("failed to list %s", url),
			Err:     err,
		}
	}
	if resp.StatusCode() == http.StatusForbidden && strings.Contains(resp.String(), "rate limit") {
		return nil, &SourceError{
			Type:    ErrorTypeFetch,
			Message: "GitHub API rate limit exceeded; configure github_token in ~/.skillkit/config.json",
		}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &SourceError{
			Type:    ErrorTypeFetch,
			Message: fmt.Sprintf("list %s returned %d", url, resp.StatusCode()),
		}
	}
	return entries, nil
}
