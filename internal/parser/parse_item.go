package parser

import (
	"fmt"

	"github.com/refit/extension/internal/grid"
	"github.com/refit/extension/internal/util"
	"github.com/refit/extension/pkg/core"
)

// ParseMinifiedItem parses a minified item announcement.
// Args: [id, type, material, "x,y,z", faction, forbidden, held]
func (p *Parser) ParseMinifiedItem(data []string) (core.MinifiedItem, error) {
	var result core.MinifiedItem

	if len(data) < 7 {
		return result, fmt.Errorf("insufficient data fields: got %d, need 7", len(data))
	}

	// fix received data
	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}

	// [0] item id
	id, err := parseUintFromFloat(data[0])
	if err != nil {
		return result, fmt.Errorf("error parsing item id: %w", err)
	}
	result.ID = uint32(id)

	// [1] inner prototype type
	result.Type = core.ObjectType(data[1])

	// [2] inner prototype material
	result.Material = core.Material(data[2])

	// [3] cell "x,y,z"
	cell, err := grid.PosFromString(data[3])
	if err != nil {
		return result, fmt.Errorf("error parsing item cell: %w", err)
	}
	result.Cell = cell

	// [4] owning faction
	result.Faction = core.Faction(data[4])

	// [5] forbidden flag
	result.Forbidden = util.ParseBool(data[5])

	// [6] held flag
	result.Held = util.ParseBool(data[6])

	return result, nil
}

// ParseItemMove parses an item move update.
// Args: [id, "x,y,z", held]
func (p *Parser) ParseItemMove(data []string) (id uint32, cell core.GridPos, held bool, err error) {
	if len(data) < 3 {
		return 0, core.GridPos{}, false, fmt.Errorf("insufficient data fields: got %d, need 3", len(data))
	}

	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}

	rawID, err := parseUintFromFloat(data[0])
	if err != nil {
		return 0, core.GridPos{}, false, fmt.Errorf("error parsing item id: %w", err)
	}

	cell, err = grid.PosFromString(data[1])
	if err != nil {
		return 0, core.GridPos{}, false, fmt.Errorf("error parsing item cell: %w", err)
	}

	return uint32(rawID), cell, util.ParseBool(data[2]), nil
}

// ParseItemForbid parses a forbid flag update.
// Args: [id, forbidden]
func (p *Parser) ParseItemForbid(data []string) (id uint32, forbidden bool, err error) {
	if len(data) < 2 {
		return 0, false, fmt.Errorf("insufficient data fields: got %d, need 2", len(data))
	}

	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}

	rawID, err := parseUintFromFloat(data[0])
	if err != nil {
		return 0, false, fmt.Errorf("error parsing item id: %w", err)
	}

	return uint32(rawID), util.ParseBool(data[1]), nil
}

// ParseID parses a bare host object ID, as sent by delete events.
// Args: [id]
func (p *Parser) ParseID(data []string) (uint32, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("insufficient data fields: got 0, need 1")
	}

	rawID, err := parseUintFromFloat(util.FixEscapeQuotes(util.TrimQuotes(data[0])))
	if err != nil {
		return 0, fmt.Errorf("error parsing object id: %w", err)
	}
	return uint32(rawID), nil
}
