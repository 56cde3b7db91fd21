// Package installer writes resolved items to disk for a set of assistants
// and records successful installs in the lock file. Each (item, assistant)
// pair succeeds or fails independently; partial success is the normal case.
package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skillkit-cli/skillkit/internal/assistant"
	"github.com/skillkit-cli/skillkit/internal/constants"
	"github.com/skillkit-cli/skillkit/internal/fsutil"
	"github.com/skillkit-cli/skillkit/internal/lockfile"
	"github.com/skillkit-cli/skillkit/internal/types"
)

// Installer performs installs rooted at one scope directory.
type Installer struct {
	root   string
	logger Logger
}

// New creates an installer for the given scope.
func New(scope types.Scope) (*Installer, error) {
	root, err := scope.Root()
	if err != nil {
		return nil, &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to resolve %s scope root", scope),
			Err:     err,
		}
	}
	return NewWithRoot(root), nil
}

// NewWithRoot creates an installer rooted at an explicit directory.
func NewWithRoot(root string) *Installer {
	return &Installer{
		root:   root,
		logger: NoOpLogger{},
	}
}

// Root returns the installation root directory.
func (in *Installer) Root() string {
	return in.root
}

// CanonicalDir returns the canonical content directory for one item.
func (in *Installer) CanonicalDir(contentType types.ContentType, id string) string {
	return filepath.Join(in.root, constants.AIDir, contentType.Plural(), id)
}

// InstallItems writes every (item, assistant) pair where the assistant
// supports the item's content type, then records one lock entry per
// successfully installed item listing the assistants it reached. Re-running
// with identical inputs is a no-op that reports success again. A lock write
// failure is returned alongside the summary since bookkeeping can no longer
// be trusted.
func (in *Installer) InstallItems(items []types.CatalogItem, assistants []assistant.Config, method types.Method) (*types.InstallSummary, error) {
	summary := &types.InstallSummary{}

	for _, item := range items {
		content, err := in.itemContent(item)
		if err != nil {
			for _, a := range assistants {
				if !a.SupportsType(item.Type) {
					continue
				}
				summary.Add(types.InstallResult{
					ItemID:    item.ID,
					Assistant: a.ID,
					Error:     err.Error(),
				})
			}
			continue
		}

		var installedFor []string
		canonicalReady := false

		for _, a := range assistants {
			rel, ok := a.DestinationPath(item.Type, item.ID)
			if !ok {
				continue
			}
			dest := filepath.Join(in.root, rel)

			var pairErr error
			switch method {
			case types.MethodSymlink:
				if !canonicalReady {
					pairErr = in.writeCanonical(item, content)
					canonicalReady = pairErr == nil
				}
				if pairErr == nil {
					pairErr = in.link(in.CanonicalDir(item.Type, item.ID), dest)
				}
			case types.MethodCopy:
				pairErr = in.writeCopy(item, content, dest)
			default:
				pairErr = &InstallError{
					Type:    ErrorTypeFilesystem,
					Message: fmt.Sprintf("unknown install method %q", method),
				}
			}

			result := types.InstallResult{ItemID: item.ID, Assistant: a.ID}
			if pairErr != nil {
				result.Error = pairErr.Error()
				in.logger.Warn("install pair failed", "item", item.ID, "assistant", a.ID, "error", pairErr)
			} else {
				result.Success = true
				installedFor = append(installedFor, a.ID)
			}
			summary.Add(result)
		}

		if len(installedFor) == 0 {
			continue
		}

		entry := types.LockEntry{
			ID:          item.ID,
			Type:        item.Type,
			Source:      item.Source,
			Assistants:  installedFor,
			InstalledAt: time.Now().UTC(),
		}
		if err := lockfile.Upsert(in.root, entry); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// UninstallItem removes the destination for one (item, assistant) triple
// and reports whether anything was removed. The lock file is not touched;
// dropping the entry once the last assistant is gone is the caller's job.
func (in *Installer) UninstallItem(contentType types.ContentType, id, assistantID string) (bool, error) {
	a, ok := assistant.Get(assistantID)
	if !ok {
		return false, &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("unknown assistant %q", assistantID),
		}
	}

	rel, ok := a.DestinationPath(contentType, id)
	if !ok {
		return false, nil
	}
	dest := filepath.Join(in.root, rel)

	exists, err := fsutil.PathExists(dest)
	if err != nil {
		return false, &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to check %s", dest),
			Err:     err,
		}
	}
	if !exists {
		return false, nil
	}

	if err := os.RemoveAll(dest); err != nil {
		return false, &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to remove %s", dest),
			Err:     err,
		}
	}
	return true, nil
}

// RemoveCanonical deletes the canonical copy of an item under .ai/.
func (in *Installer) RemoveCanonical(contentType types.ContentType, id string) error {
	if err := os.RemoveAll(in.CanonicalDir(contentType, id)); err != nil {
		return &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to remove canonical copy of %s", id),
			Err:     err,
		}
	}
	return nil
}

// itemContent resolves the markdown for an item: in-memory content when the
// item was fetched, otherwise the item's template path, probing it both as a
// skill directory and as a direct file.
func (in *Installer) itemContent(item types.CatalogItem) (string, error) {
	if item.Content != "" {
		return item.Content, nil
	}
	if item.Path == "" {
		return "", &InstallError{
			Type:    ErrorTypeMissingContent,
			Message: fmt.Sprintf("item %s carries no content", item.ID),
		}
	}

	data, err := os.ReadFile(filepath.Join(item.Path, item.Type.CanonicalFile()))
	if err == nil {
		return string(data), nil
	}
	data, err = os.ReadFile(item.Path)
	if err != nil {
		return "", &InstallError{
			Type:    ErrorTypeMissingContent,
			Message: fmt.Sprintf("no content for %s at %s", item.ID, item.Path),
			Err:     err,
		}
	}
	return string(data), nil
}

// writeCanonical ensures the single on-disk copy under .ai/<type>/<id>/.
// The canonical area is owned by this tool, so the write always overwrites.
func (in *Installer) writeCanonical(item types.CatalogItem, content string) error {
	dir := in.CanonicalDir(item.Type, item.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to create %s", dir),
			Err:     err,
		}
	}
	path := filepath.Join(dir, item.Type.CanonicalFile())
	if err := fsutil.AtomicWrite(path, []byte(content), 0644); err != nil {
		return &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to write %s", path),
			Err:     err,
		}
	}
	return nil
}

func (in *Installer) link(canonicalDir, dest string) error {
	if err := fsutil.EnsureSymlink(canonicalDir, dest); err != nil {
		if errors.Is(err, fsutil.ErrConflict) {
			return &InstallError{
				Type:    ErrorTypeDestinationConflict,
				Message: fmt.Sprintf("refusing to overwrite existing content at %s", dest),
				Err:     err,
			}
		}
		return &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to link %s", dest),
			Err:     err,
		}
	}
	return nil
}

// writeCopy writes an independent duplicate at the assistant destination. A
// destination this tool already owns (a prior copy of the same item) is
// overwritten for idempotence; a symlink or foreign file is a conflict.
func (in *Installer) writeCopy(item types.CatalogItem, content, dest string) error {
	path := filepath.Join(dest, item.Type.CanonicalFile())

	info, err := os.Lstat(dest)
	switch {
	case os.IsNotExist(err):
		// Fresh destination.
	case err != nil:
		return &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to check %s", dest),
			Err:     err,
		}
	case info.Mode()&os.ModeSymlink != 0 || !info.IsDir():
		return &InstallError{
			Type:    ErrorTypeDestinationConflict,
			Message: fmt.Sprintf("refusing to overwrite existing content at %s", dest),
		}
	default:
		if ok, _ := fsutil.PathExists(path); !ok {
			// A directory without our canonical file belongs to someone else.
			if entries, readErr := os.ReadDir(dest); readErr == nil && len(entries) > 0 {
				return &InstallError{
					Type:    ErrorTypeDestinationConflict,
					Message: fmt.Sprintf("refusing to overwrite existing content at %s", dest),
				}
			}
		}
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to create %s", dest),
			Err:     err,
		}
	}
	if err := fsutil.AtomicWrite(path, []byte(content), 0644); err != nil {
		return &InstallError{
			Type:    ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to write %s", path),
			Err:     err,
		}
	}
	return nil
}
