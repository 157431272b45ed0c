// Package session holds the host game session announced at :INIT:.
package session

import (
	"log/slog"
	"sync"
)

// Info describes the running game session.
type Info struct {
	MapName          string
	Faction          string
	AddonVersion     string
	ExtensionVersion string
}

// Context is a concurrency-safe holder for the current session.
type Context struct {
	mu   sync.RWMutex
	info Info
}

// NewContext creates an empty session context.
func NewContext() *Context {
	return &Context{}
}

// Set replaces the current session info.
func (c *Context) Set(info Info) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info = info
}

// Get returns a copy of the current session info.
func (c *Context) Get() Info {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.info
}

// Attrs returns the session as log attributes. It satisfies the logging
// context provider so every log line carries the map and faction.
func (c *Context) Attrs() []slog.Attr {
	info := c.Get()
	if info.MapName == "" {
		return nil
	}
	return []slog.Attr{
		slog.String("map", info.MapName),
		slog.String("faction", info.Faction),
	}
}
