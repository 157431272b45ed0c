// Package finder implements the stored-item query: given a target object
// type and an optional material, locate stored minified items that a
// hauler could legally fetch for installation.
package finder

import (
	"github.com/refit/extension/internal/cache"
	"github.com/refit/extension/pkg/core"
)

// Query describes what the player is about to place.
type Query struct {
	Type core.ObjectType
	// Material constrains matches when non-empty.
	Material core.Material
}

// Finder runs read-only scans over the world cache. It never mutates
// anything and is safe to call repeatedly from any hook.
type Finder struct {
	world *cache.WorldCache
}

// New creates a finder over the given world cache.
func New(world *cache.WorldCache) *Finder {
	return &Finder{world: world}
}

// matches reports whether the item's inner prototype satisfies the query.
func matches(q Query, item core.MinifiedItem) bool {
	if item.Type != q.Type {
		return false
	}
	if q.Material != "" && item.Material != q.Material {
		return false
	}
	return true
}

// accessible applies the accessibility policy, in priority order:
// the item must be actively on the map; a covering container's policy
// decides; else a covering zone's policy decides; else the item is
// accessible unless forbidden.
func (f *Finder) accessible(item core.MinifiedItem) bool {
	if item.Held {
		return false
	}
	if ct, ok := f.world.ContainerAt(item.Cell); ok {
		return ct.Policy.Permits(item.Type, item.Material)
	}
	if cz, ok := f.world.ZoneAt(item.Cell); ok {
		return cz.Zone.Policy.Permits(item.Type, item.Material)
	}
	return !item.Forbidden
}

// FindFirst returns the first accessible match in ascending host ID
// order, which is the order the host enumerates stored objects in.
func (f *Finder) FindFirst(q Query) (core.MinifiedItem, bool) {
	for _, item := range f.world.ItemsSorted() {
		if matches(q, item) && f.accessible(item) {
			return item, true
		}
	}
	return core.MinifiedItem{}, false
}

// FindAll returns every accessible match in ascending host ID order.
func (f *Finder) FindAll(q Query) []core.MinifiedItem {
	var out []core.MinifiedItem
	for _, item := range f.world.ItemsSorted() {
		if matches(q, item) && f.accessible(item) {
			out = append(out, item)
		}
	}
	return out
}
