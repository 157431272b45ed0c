package core

// AcceptPolicy is the accept/reject policy of a storage container or
// stockpile zone. Empty Types/Materials lists accept everything of that
// dimension; Disabled rejects everything regardless.
type AcceptPolicy struct {
	Disabled  bool
	Types     []ObjectType
	Materials []Material
}

// Permits reports whether the policy accepts an item with the given
// type and material.
func (p AcceptPolicy) Permits(t ObjectType, m Material) bool {
	if p.Disabled {
		return false
	}
	if len(p.Types) > 0 && !containsType(p.Types, t) {
		return false
	}
	if len(p.Materials) > 0 && !containsMaterial(p.Materials, m) {
		return false
	}
	return true
}

func containsType(list []ObjectType, t ObjectType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func containsMaterial(list []Material, m Material) bool {
	for _, v := range list {
		if v == m {
			return true
		}
	}
	return false
}

// Container mirrors a host storage container (chest, bin, wagon).
type Container struct {
	ID        uint32
	Footprint CellRect
	Policy    AcceptPolicy
}

// Zone mirrors a host stockpile zone. Vertices is the zone outline as
// cell corners in host draw order; the outline is closed implicitly.
type Zone struct {
	ID       uint32
	Level    int // map level the zone lives on
	Vertices []GridPos
	Policy   AcceptPolicy
}
