// Package grid handles cell parsing and zone footprint geometry.
//
// Zone outlines arrive from the host as cell-corner vertex lists and are
// compiled to polygons once, when the zone is announced. Containment is
// tested against the cell center so cells on the outline edge resolve
// consistently.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/refit/extension/pkg/core"

	geom "github.com/peterstace/simplefeatures/geom"
)

// ErrInvalidCell is returned when a cell string cannot be parsed.
var ErrInvalidCell = errors.New("invalid cell coordinates provided")

// PosFromString parses a "x,y,z" cell string into a core.GridPos.
func PosFromString(cell string) (core.GridPos, error) {
	parts := strings.Split(cell, ",")
	if len(parts) != 3 {
		return core.GridPos{}, ErrInvalidCell
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return core.GridPos{}, ErrInvalidCell
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return core.GridPos{}, ErrInvalidCell
	}
	z, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return core.GridPos{}, ErrInvalidCell
	}
	return core.GridPos{X: x, Y: y, Z: z}, nil
}

// CompiledZone is a zone with its outline compiled to a polygon.
type CompiledZone struct {
	Zone    core.Zone
	polygon geom.Polygon
}

// CompileZone builds the containment polygon for a zone outline.
// The outline is closed implicitly; fewer than 3 vertices is an error.
func CompileZone(z core.Zone) (*CompiledZone, error) {
	if len(z.Vertices) < 3 {
		return nil, fmt.Errorf("zone %d outline has %d vertices, need at least 3", z.ID, len(z.Vertices))
	}

	flat := make([]float64, 0, (len(z.Vertices)+1)*2)
	for _, v := range z.Vertices {
		flat = append(flat, float64(v.X), float64(v.Y))
	}
	// close the ring
	flat = append(flat, float64(z.Vertices[0].X), float64(z.Vertices[0].Y))

	ring, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return nil, fmt.Errorf("zone %d outline is not a valid ring: %w", z.ID, err)
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return nil, fmt.Errorf("zone %d outline is not a valid polygon: %w", z.ID, err)
	}

	return &CompiledZone{Zone: z, polygon: poly}, nil
}

// Contains reports whether the cell lies inside the zone footprint.
// Levels must match; the test point is the cell center.
func (c *CompiledZone) Contains(cell core.GridPos) bool {
	if cell.Z != c.Zone.Level {
		return false
	}
	center, err := geom.NewPoint(geom.Coordinates{
		XY: geom.XY{X: float64(cell.X) + 0.5, Y: float64(cell.Y) + 0.5},
	})
	if err != nil {
		return false
	}
	return geom.Intersects(c.polygon.AsGeometry(), center.AsGeometry())
}
