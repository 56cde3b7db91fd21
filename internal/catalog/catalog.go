// Package catalog exposes the builtin content bundled with the binary, so
// common items install without a network fetch.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/skillkit-cli/skillkit/internal/frontmatter"
	"github.com/skillkit-cli/skillkit/internal/types"
)

//go:embed templates
var templatesFS embed.FS

var (
	loadOnce sync.Once
	loaded   []types.CatalogItem
	loadErr  error
)

// Load returns every builtin item, parsed once per process. Items are laid
// out as templates/<plural>/<id>/<CANONICAL>.md with optional frontmatter.
func Load() ([]types.CatalogItem, error) {
	loadOnce.Do(func() {
		loaded, loadErr = loadAll()
	})
	return loaded, loadErr
}

func loadAll() ([]types.CatalogItem, error) {
	var items []types.CatalogItem

	for _, contentType := range types.AllContentTypes() {
		dir := path.Join("templates", contentType.Plural())
		entries, err := fs.ReadDir(templatesFS, dir)
		if err != nil {
			// Not every type ships builtin content.
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			id := entry.Name()
			filePath := path.Join(dir, id, contentType.CanonicalFile())
			data, err := fs.ReadFile(templatesFS, filePath)
			if err != nil {
				return nil, fmt.Errorf("builtin item %s/%s is missing %s: %w",
					contentType.Plural(), id, contentType.CanonicalFile(), err)
			}

			doc := frontmatter.Parse(string(data))
			item := types.CatalogItem{
				ID:          id,
				Name:        doc.Name(),
				Description: doc.Description(),
				Type:        contentType,
				Path:        filePath,
				Content:     string(data),
				Source:      "builtin:" + id,
			}
			if item.Name == "" {
				item.Name = id
			}
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Type != items[j].Type {
			return typeOrder(items[i].Type) < typeOrder(items[j].Type)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func typeOrder(t types.ContentType) int {
	for i, known := range types.AllContentTypes() {
		if t == known {
			return i
		}
	}
	return len(types.AllContentTypes())
}

// Find returns the builtin item with the given id and type, or false.
func Find(id string, contentType types.ContentType) (types.CatalogItem, bool) {
	items, err := Load()
	if err != nil {
		return types.CatalogItem{}, false
	}
	for _, item := range items {
		if item.ID == id && item.Type == contentType {
			return item, true
		}
	}
	return types.CatalogItem{}, false
}

// FindByID returns the first builtin item matching id across all types,
// searching in content type definition order.
func FindByID(id string) (types.CatalogItem, bool) {
	items, err := Load()
	if err != nil {
		return types.CatalogItem{}, false
	}
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return types.CatalogItem{}, false
}

// ByType returns the builtin items of one content type.
func ByType(contentType types.ContentType) []types.CatalogItem {
	items, err := Load()
	if err != nil {
		return nil
	}
	var out []types.CatalogItem
	for _, item := range items {
		if item.Type == contentType {
			out = append(out, item)
		}
	}
	return out
}

// Search returns builtin items whose id, name or description contains the
// query, case-insensitively.
func Search(query string) []types.CatalogItem {
	items, err := Load()
	if err != nil {
		return nil
	}
	q := strings.ToLower(query)

	var out []types.CatalogItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.ID), q) ||
			strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			out = append(out, item)
		}
	}
	return out
}
