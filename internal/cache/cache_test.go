package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refit/extension/pkg/core"
)

func TestWorldCache_NewWorldCache(t *testing.T) {
	c := NewWorldCache()

	require.NotNil(t, c)
	assert.NotNil(t, c.Items)
	assert.NotNil(t, c.Containers)
	assert.NotNil(t, c.Zones)
}

func TestWorldCache_Items(t *testing.T) {
	c := NewWorldCache()

	item := core.MinifiedItem{ID: 7, Type: "ARMCHAIR", Material: "OAK", Cell: core.GridPos{X: 1, Y: 2, Z: 0}}
	c.PutItem(item)

	got, ok := c.GetItem(7)
	require.True(t, ok)
	assert.Equal(t, item, got)

	c.MoveItem(7, core.GridPos{X: 5, Y: 5, Z: 0}, true)
	got, _ = c.GetItem(7)
	assert.Equal(t, core.GridPos{X: 5, Y: 5, Z: 0}, got.Cell)
	assert.True(t, got.Held)

	c.SetItemForbidden(7, true)
	got, _ = c.GetItem(7)
	assert.True(t, got.Forbidden)

	c.RemoveItem(7)
	_, ok = c.GetItem(7)
	assert.False(t, ok)
}

func TestWorldCache_UnknownIDsIgnored(t *testing.T) {
	c := NewWorldCache()

	c.MoveItem(99, core.GridPos{}, false)
	c.SetItemForbidden(99, true)
	c.SetContainerPolicy(99, core.AcceptPolicy{Disabled: true})
	c.SetZonePolicy(99, core.AcceptPolicy{Disabled: true})

	items, containers, zones := c.Counts()
	assert.Equal(t, 0, items)
	assert.Equal(t, 0, containers)
	assert.Equal(t, 0, zones)
}

func TestWorldCache_ItemsSorted(t *testing.T) {
	c := NewWorldCache()
	c.PutItem(core.MinifiedItem{ID: 30})
	c.PutItem(core.MinifiedItem{ID: 10})
	c.PutItem(core.MinifiedItem{ID: 20})

	items := c.ItemsSorted()
	require.Len(t, items, 3)
	assert.Equal(t, uint32(10), items[0].ID)
	assert.Equal(t, uint32(20), items[1].ID)
	assert.Equal(t, uint32(30), items[2].ID)
}

func TestWorldCache_ContainerAt(t *testing.T) {
	c := NewWorldCache()
	c.PutContainer(core.Container{
		ID: 1,
		Footprint: core.CellRect{
			Min: core.GridPos{X: 0, Y: 0, Z: 0},
			Max: core.GridPos{X: 1, Y: 1, Z: 0},
		},
	})

	_, ok := c.ContainerAt(core.GridPos{X: 1, Y: 0, Z: 0})
	assert.True(t, ok)
	_, ok = c.ContainerAt(core.GridPos{X: 2, Y: 0, Z: 0})
	assert.False(t, ok)
	_, ok = c.ContainerAt(core.GridPos{X: 1, Y: 0, Z: 1})
	assert.False(t, ok, "level must match")
}

func TestWorldCache_Zones(t *testing.T) {
	c := NewWorldCache()
	err := c.PutZone(core.Zone{
		ID:    4,
		Level: 0,
		Vertices: []core.GridPos{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		},
	})
	require.NoError(t, err)

	cz, ok := c.ZoneAt(core.GridPos{X: 2, Y: 2, Z: 0})
	require.True(t, ok)
	assert.Equal(t, uint32(4), cz.Zone.ID)

	c.SetZonePolicy(4, core.AcceptPolicy{Disabled: true})
	cz, _ = c.ZoneAt(core.GridPos{X: 2, Y: 2, Z: 0})
	assert.True(t, cz.Zone.Policy.Disabled)

	c.RemoveZone(4)
	_, ok = c.ZoneAt(core.GridPos{X: 2, Y: 2, Z: 0})
	assert.False(t, ok)
}

func TestWorldCache_PutZone_InvalidOutline(t *testing.T) {
	c := NewWorldCache()
	err := c.PutZone(core.Zone{ID: 9, Vertices: []core.GridPos{{X: 0, Y: 0}, {X: 1, Y: 1}}})
	assert.Error(t, err)
}

func TestWorldCache_Reset(t *testing.T) {
	c := NewWorldCache()
	c.PutItem(core.MinifiedItem{ID: 1})
	c.PutContainer(core.Container{ID: 2})

	c.Reset()

	items, containers, zones := c.Counts()
	assert.Equal(t, 0, items)
	assert.Equal(t, 0, containers)
	assert.Equal(t, 0, zones)
}

func TestWorldCache_ConcurrentAccess(t *testing.T) {
	c := NewWorldCache()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n uint32) {
			defer wg.Done()
			c.PutItem(core.MinifiedItem{ID: n})
		}(uint32(i))
		go func() {
			defer wg.Done()
			c.ItemsSorted()
		}()
	}
	wg.Wait()

	items, _, _ := c.Counts()
	assert.Equal(t, 50, items)
}
