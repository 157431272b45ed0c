package core

import "fmt"

// ObjectType is the host's class name for a buildable object, e.g. "ARMCHAIR_OAK".
type ObjectType string

// Material is the host's material token, e.g. "OAK" or "GRANITE".
// An empty Material means "unconstrained" wherever a material is optional.
type Material string

// Faction identifies the owning side of items and placements.
type Faction string

// GridPos is a cell position on the host map. The host map is a local
// integer tile grid; Z is the map level.
type GridPos struct {
	X int
	Y int
	Z int
}

// String formats the position as "x,y,z", the host wire form.
func (p GridPos) String() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)
}

// CellRect is an inclusive axis-aligned rectangle of cells on one level.
// Containers report their footprint in this form.
type CellRect struct {
	Min GridPos
	Max GridPos
}

// Contains reports whether the cell lies inside the rectangle.
// Levels must match exactly.
func (r CellRect) Contains(p GridPos) bool {
	return p.Z == r.Min.Z &&
		p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
