// Package lockfile persists the set of installed items as a single JSON
// document per installation root, so list/remove/update can reason about
// installed state without re-scanning the filesystem.
package lockfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/skillkit-cli/skillkit/internal/constants"
	"github.com/skillkit-cli/skillkit/internal/fsutil"
	"github.com/skillkit-cli/skillkit/internal/types"
)

// Document maps a content type's plural directory name to the entries
// installed for that type.
type Document map[string][]types.LockEntry

// lockMutexes serializes read-modify-write cycles per lock path within this
// process. Concurrent CLI invocations against the same root are out of scope.
var lockMutexes sync.Map

// PathFor returns the lock document location for an installation root.
func PathFor(root string) string {
	return filepath.Join(root, constants.AIDir, constants.LockFileName)
}

// Load reads the lock document at root. A missing file is an empty
// document, never an error.
func Load(root string) (Document, error) {
	data, err := os.ReadFile(PathFor(root))
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, &LockError{
			Type:    ErrorTypeRead,
			Message: "failed to read lock file",
			Err:     err,
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LockError{
			Type:    ErrorTypeParse,
			Message: fmt.Sprintf("malformed lock file %s", PathFor(root)),
			Err:     err,
		}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Save rewrites the whole lock document atomically.
func Save(root string, doc Document) error {
	path := PathFor(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &LockError{
			Type:    ErrorTypeWrite,
			Message: "failed to create lock directory",
			Err:     err,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &LockError{
			Type:    ErrorTypeWrite,
			Message: "failed to marshal lock file",
			Err:     err,
		}
	}

	if err := fsutil.AtomicWrite(path, data, 0644); err != nil {
		return &LockError{
			Type:    ErrorTypeWrite,
			Message: "failed to write lock file",
			Err:     err,
		}
	}
	return nil
}

// Upsert records entry in the document at root. At most one entry exists
// per (content type, id) pair: a re-install overwrites rather than
// duplicates.
func Upsert(root string, entry types.LockEntry) error {
	mu := mutexFor(root)
	mu.Lock()
	defer mu.Unlock()

	doc, err := Load(root)
	if err != nil {
		return err
	}

	key := entry.Type.Plural()
	entries := doc[key]
	replaced := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	doc[key] = entries

	return Save(root, doc)
}

// Remove deletes the entry for (contentType, id) and reports whether it
// was present.
func Remove(root string, contentType types.ContentType, id string) (bool, error) {
	mu := mutexFor(root)
	mu.Lock()
	defer mu.Unlock()

	doc, err := Load(root)
	if err != nil {
		return false, err
	}

	key := contentType.Plural()
	entries := doc[key]
	kept := make([]types.LockEntry, 0, len(entries))
	removed := false
	for _, e := range entries {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return false, nil
	}

	if len(kept) == 0 {
		delete(doc, key)
	} else {
		doc[key] = kept
	}
	return true, Save(root, doc)
}

// InstalledItems returns every entry at root, ordered by content type
// definition order for stable output.
func InstalledItems(root string) ([]types.LockEntry, error) {
	doc, err := Load(root)
	if err != nil {
		return nil, err
	}

	var out []types.LockEntry
	for _, t := range types.AllContentTypes() {
		out = append(out, doc[t.Plural()]...)
	}
	return out, nil
}

// InstalledItemsByType returns the entries of one content type at root.
func InstalledItemsByType(root string, contentType types.ContentType) ([]types.LockEntry, error) {
	doc, err := Load(root)
	if err != nil {
		return nil, err
	}
	return doc[contentType.Plural()], nil
}

// Find returns the entry for (contentType, id), or nil when absent.
func Find(root string, contentType types.ContentType, id string) (*types.LockEntry, error) {
	entries, err := InstalledItemsByType(root, contentType)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, nil
}

func mutexFor(root string) *sync.Mutex {
	mu, _ := lockMutexes.LoadOrStore(PathFor(root), &sync.Mutex{})
	return mu.(*sync.Mutex)
}
