package parser

import (
	"encoding/json"
	"fmt"

	"github.com/refit/extension/internal/grid"
	"github.com/refit/extension/internal/util"
	"github.com/refit/extension/pkg/core"
)

// parsePolicyFields builds an AcceptPolicy from the trailing
// [disabled, "[types]", "[materials]"] slots shared by container and
// zone payloads.
func parsePolicyFields(disabled, types, materials string) core.AcceptPolicy {
	policy := core.AcceptPolicy{
		Disabled: util.ParseBool(disabled),
	}
	for _, t := range util.ParseBracketList(types) {
		policy.Types = append(policy.Types, core.ObjectType(t))
	}
	for _, m := range util.ParseBracketList(materials) {
		policy.Materials = append(policy.Materials, core.Material(m))
	}
	return policy
}

// ParseContainer parses a storage container announcement.
// Args: [id, "minx,miny,z", "maxx,maxy,z", disabled, "[types]", "[materials]"]
func (p *Parser) ParseContainer(data []string) (core.Container, error) {
	var result core.Container

	if len(data) < 6 {
		return result, fmt.Errorf("insufficient data fields: got %d, need 6", len(data))
	}

	// fix received data
	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}

	// [0] container id
	id, err := parseUintFromFloat(data[0])
	if err != nil {
		return result, fmt.Errorf("error parsing container id: %w", err)
	}
	result.ID = uint32(id)

	// [1] footprint min cell
	minCell, err := grid.PosFromString(data[1])
	if err != nil {
		return result, fmt.Errorf("error parsing footprint min: %w", err)
	}

	// [2] footprint max cell
	maxCell, err := grid.PosFromString(data[2])
	if err != nil {
		return result, fmt.Errorf("error parsing footprint max: %w", err)
	}
	result.Footprint = core.CellRect{Min: minCell, Max: maxCell}

	// [3..5] accept policy
	result.Policy = parsePolicyFields(data[3], data[4], data[5])

	return result, nil
}

// ParseZone parses a stockpile zone announcement. The outline arrives as
// a JSON array of cell-corner pairs, like the host's own zone save format.
// Args: [id, level, "[[x1,y1],[x2,y2],...]", disabled, "[types]", "[materials]"]
func (p *Parser) ParseZone(data []string) (core.Zone, error) {
	var result core.Zone

	if len(data) < 6 {
		return result, fmt.Errorf("insufficient data fields: got %d, need 6", len(data))
	}

	// fix received data
	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}

	// [0] zone id
	id, err := parseUintFromFloat(data[0])
	if err != nil {
		return result, fmt.Errorf("error parsing zone id: %w", err)
	}
	result.ID = uint32(id)

	// [1] map level
	level, err := parseIntFromFloat(data[1])
	if err != nil {
		return result, fmt.Errorf("error parsing zone level: %w", err)
	}
	result.Level = int(level)

	// [2] outline vertices
	var coords [][]int
	if err := json.Unmarshal([]byte(data[2]), &coords); err != nil {
		return result, fmt.Errorf("error parsing zone outline: %w", err)
	}
	if len(coords) < 3 {
		return result, fmt.Errorf("zone outline must have at least 3 vertices, got %d", len(coords))
	}
	result.Vertices = make([]core.GridPos, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return result, fmt.Errorf("zone outline vertex %d has insufficient values", i)
		}
		result.Vertices[i] = core.GridPos{X: c[0], Y: c[1], Z: result.Level}
	}

	// [3..5] accept policy
	result.Policy = parsePolicyFields(data[3], data[4], data[5])

	return result, nil
}

// ParsePolicy parses a standalone accept policy update for a container
// or zone.
// Args: [id, disabled, "[types]", "[materials]"]
func (p *Parser) ParsePolicy(data []string) (uint32, core.AcceptPolicy, error) {
	if len(data) < 4 {
		return 0, core.AcceptPolicy{}, fmt.Errorf("insufficient data fields: got %d, need 4", len(data))
	}

	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}

	rawID, err := parseUintFromFloat(data[0])
	if err != nil {
		return 0, core.AcceptPolicy{}, fmt.Errorf("error parsing object id: %w", err)
	}

	return uint32(rawID), parsePolicyFields(data[1], data[2], data[3]), nil
}
