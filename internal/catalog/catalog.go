// Package catalog holds the read-only canonical item catalog supplied by
// the caller. This core never mutates or persists it.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/chamchi6619/pantry-core/internal/entity"
)

// Catalog is an immutable set of canonical items.
type Catalog struct {
	items []entity.CanonicalItem
	byID  map[string]int
}

// New wraps a caller-supplied item list. The slice is not copied; callers
// must not mutate it afterwards.
func New(items []entity.CanonicalItem) *Catalog {
	byID := make(map[string]int, len(items))
	for i, it := range items {
		byID[it.ID] = i
	}
	return &Catalog{items: items, byID: byID}
}

// LoadJSON decodes a catalog from its JSON array form.
func LoadJSON(data []byte) (*Catalog, error) {
	var items []entity.CanonicalItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, it := range items {
		if it.ID == "" || it.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: id and name are required", i)
		}
	}
	return New(items), nil
}

// Items returns the backing list, read-only by convention.
func (c *Catalog) Items() []entity.CanonicalItem { return c.items }

// ByID returns the item with the given id.
func (c *Catalog) ByID(id string) (entity.CanonicalItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return entity.CanonicalItem{}, false
	}
	return c.items[i], true
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.items) }
