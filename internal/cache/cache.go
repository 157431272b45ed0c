package cache

import (
	"sort"
	"sync"

	"github.com/refit/extension/internal/grid"
	"github.com/refit/extension/pkg/core"
)

// WorldCache mirrors the host-announced storage state of the current map:
// minified items, storage containers, and stockpile zones, keyed by host
// object ID. The host is the single writer (via sync events); the finder
// only reads. Latency matters here because the placement hook blocks the
// host UI thread.
type WorldCache struct {
	m          sync.Mutex
	Items      map[uint32]core.MinifiedItem
	Containers map[uint32]core.Container
	Zones      map[uint32]*grid.CompiledZone
}

// NewWorldCache creates an empty world cache.
func NewWorldCache() *WorldCache {
	return &WorldCache{
		Items:      make(map[uint32]core.MinifiedItem),
		Containers: make(map[uint32]core.Container),
		Zones:      make(map[uint32]*grid.CompiledZone),
	}
}

// Reset clears all mirrored state. Called on session init.
func (c *WorldCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.Items = make(map[uint32]core.MinifiedItem)
	c.Containers = make(map[uint32]core.Container)
	c.Zones = make(map[uint32]*grid.CompiledZone)
}

// PutItem adds or replaces a minified item.
func (c *WorldCache) PutItem(item core.MinifiedItem) {
	c.m.Lock()
	defer c.m.Unlock()
	c.Items[item.ID] = item
}

// GetItem returns the item with the given host ID.
func (c *WorldCache) GetItem(id uint32) (core.MinifiedItem, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	item, ok := c.Items[id]
	return item, ok
}

// MoveItem updates an item's cell and held flag. Unknown IDs are ignored;
// the host may report moves for items it never announced (e.g. spawned
// before the extension attached).
func (c *WorldCache) MoveItem(id uint32, cell core.GridPos, held bool) {
	c.m.Lock()
	defer c.m.Unlock()
	item, ok := c.Items[id]
	if !ok {
		return
	}
	item.Cell = cell
	item.Held = held
	c.Items[id] = item
}

// SetItemForbidden updates an item's forbid flag. Unknown IDs are ignored.
func (c *WorldCache) SetItemForbidden(id uint32, forbidden bool) {
	c.m.Lock()
	defer c.m.Unlock()
	item, ok := c.Items[id]
	if !ok {
		return
	}
	item.Forbidden = forbidden
	c.Items[id] = item
}

// RemoveItem drops an item from the mirror.
func (c *WorldCache) RemoveItem(id uint32) {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.Items, id)
}

// ItemsSorted returns a snapshot of all items in ascending host ID order.
// This is the enumeration order the finder scans in.
func (c *WorldCache) ItemsSorted() []core.MinifiedItem {
	c.m.Lock()
	defer c.m.Unlock()
	out := make([]core.MinifiedItem, 0, len(c.Items))
	for _, item := range c.Items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PutContainer adds or replaces a storage container.
func (c *WorldCache) PutContainer(ct core.Container) {
	c.m.Lock()
	defer c.m.Unlock()
	c.Containers[ct.ID] = ct
}

// SetContainerPolicy replaces a container's accept policy. Unknown IDs are ignored.
func (c *WorldCache) SetContainerPolicy(id uint32, p core.AcceptPolicy) {
	c.m.Lock()
	defer c.m.Unlock()
	ct, ok := c.Containers[id]
	if !ok {
		return
	}
	ct.Policy = p
	c.Containers[id] = ct
}

// RemoveContainer drops a container from the mirror.
func (c *WorldCache) RemoveContainer(id uint32) {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.Containers, id)
}

// ContainerAt returns the container whose footprint covers the cell.
func (c *WorldCache) ContainerAt(cell core.GridPos) (core.Container, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	for _, ct := range c.Containers {
		if ct.Footprint.Contains(cell) {
			return ct, true
		}
	}
	return core.Container{}, false
}

// PutZone compiles and stores a stockpile zone.
func (c *WorldCache) PutZone(z core.Zone) error {
	cz, err := grid.CompileZone(z)
	if err != nil {
		return err
	}
	c.m.Lock()
	defer c.m.Unlock()
	c.Zones[z.ID] = cz
	return nil
}

// SetZonePolicy replaces a zone's accept policy. Unknown IDs are ignored.
func (c *WorldCache) SetZonePolicy(id uint32, p core.AcceptPolicy) {
	c.m.Lock()
	defer c.m.Unlock()
	cz, ok := c.Zones[id]
	if !ok {
		return
	}
	cz.Zone.Policy = p
}

// RemoveZone drops a zone from the mirror.
func (c *WorldCache) RemoveZone(id uint32) {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.Zones, id)
}

// ZoneAt returns the zone whose footprint covers the cell.
func (c *WorldCache) ZoneAt(cell core.GridPos) (*grid.CompiledZone, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	for _, cz := range c.Zones {
		if cz.Contains(cell) {
			return cz, true
		}
	}
	return nil, false
}

// Counts returns the mirror sizes for monitoring.
func (c *WorldCache) Counts() (items, containers, zones int) {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.Items), len(c.Containers), len(c.Zones)
}
