package core

// MinifiedItem is the extension's read-only mirror of a host minified
// object: a disassembled, storable copy of a buildable object, carrying
// the type and material of its inner prototype.
// ID is the host's object identifier for the wrapper.
type MinifiedItem struct {
	ID        uint32
	Type      ObjectType // inner prototype type
	Material  Material   // inner prototype material
	Cell      GridPos
	Faction   Faction
	Forbidden bool // host forbid flag, set against the owning faction
	Held      bool // picked up by a hauler; not actively on the map
}
