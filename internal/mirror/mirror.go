// Package mirror keeps the world cache in step with host sync events.
package mirror

import (
	"fmt"

	"github.com/refit/extension/internal/cache"
	"github.com/refit/extension/internal/dispatcher"
	"github.com/refit/extension/internal/logging"
	"github.com/refit/extension/internal/parser"
)

// Dependencies holds all dependencies for the mirror manager.
type Dependencies struct {
	World      *cache.WorldCache
	Parser     *parser.Parser
	LogManager *logging.Manager
}

// Manager applies host sync events to the world cache.
type Manager struct {
	deps Dependencies
}

// NewManager creates a new mirror manager.
func NewManager(deps Dependencies) *Manager {
	return &Manager{deps: deps}
}

// RegisterHandlers registers all sync event handlers with the dispatcher.
// Item traffic is high volume (every haul step reports a move), so those
// handlers are buffered; structure announcements are sync so the mirror
// is coherent before the next hook call.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Structure announcements - sync (hooks may consult them immediately)
	d.RegisterSync(":NEW:CONTAINER:", m.handleNewContainer)
	d.RegisterSync(":NEW:ZONE:", m.handleNewZone)
	d.RegisterSync(":POLICY:CONTAINER:", m.handleContainerPolicy)
	d.RegisterSync(":POLICY:ZONE:", m.handleZonePolicy)
	d.RegisterSync(":DEL:CONTAINER:", m.handleDelContainer)
	d.RegisterSync(":DEL:ZONE:", m.handleDelZone)

	// Item traffic - buffered
	d.RegisterBuffered(":NEW:MINIFIED:", m.handleNewItem, 5000)
	d.RegisterBuffered(":MOVE:MINIFIED:", m.handleMoveItem, 10000)
	d.RegisterBuffered(":FORBID:MINIFIED:", m.handleForbidItem, 1000)
	d.RegisterBuffered(":DEL:MINIFIED:", m.handleDelItem, 5000)
}

func (m *Manager) handleNewItem(e dispatcher.Event) (any, error) {
	item, err := m.deps.Parser.ParseMinifiedItem(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror new minified item: %w", err)
	}
	m.deps.World.PutItem(item)
	return nil, nil
}

func (m *Manager) handleMoveItem(e dispatcher.Event) (any, error) {
	id, cell, held, err := m.deps.Parser.ParseItemMove(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror item move: %w", err)
	}
	m.deps.World.MoveItem(id, cell, held)
	return nil, nil
}

func (m *Manager) handleForbidItem(e dispatcher.Event) (any, error) {
	id, forbidden, err := m.deps.Parser.ParseItemForbid(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror forbid flag: %w", err)
	}
	m.deps.World.SetItemForbidden(id, forbidden)
	return nil, nil
}

func (m *Manager) handleDelItem(e dispatcher.Event) (any, error) {
	id, err := m.deps.Parser.ParseID(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror item delete: %w", err)
	}
	m.deps.World.RemoveItem(id)
	return nil, nil
}

func (m *Manager) handleNewContainer(e dispatcher.Event) (any, error) {
	ct, err := m.deps.Parser.ParseContainer(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror new container: %w", err)
	}
	m.deps.World.PutContainer(ct)
	return nil, nil
}

func (m *Manager) handleNewZone(e dispatcher.Event) (any, error) {
	z, err := m.deps.Parser.ParseZone(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror new zone: %w", err)
	}
	if err := m.deps.World.PutZone(z); err != nil {
		return nil, fmt.Errorf("failed to compile zone %d: %w", z.ID, err)
	}
	return nil, nil
}

func (m *Manager) handleContainerPolicy(e dispatcher.Event) (any, error) {
	id, policy, err := m.deps.Parser.ParsePolicy(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror container policy: %w", err)
	}
	m.deps.World.SetContainerPolicy(id, policy)
	return nil, nil
}

func (m *Manager) handleZonePolicy(e dispatcher.Event) (any, error) {
	id, policy, err := m.deps.Parser.ParsePolicy(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror zone policy: %w", err)
	}
	m.deps.World.SetZonePolicy(id, policy)
	return nil, nil
}

func (m *Manager) handleDelContainer(e dispatcher.Event) (any, error) {
	id, err := m.deps.Parser.ParseID(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror container delete: %w", err)
	}
	m.deps.World.RemoveContainer(id)
	return nil, nil
}

func (m *Manager) handleDelZone(e dispatcher.Event) (any, error) {
	id, err := m.deps.Parser.ParseID(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror zone delete: %w", err)
	}
	m.deps.World.RemoveZone(id)
	return nil, nil
}
