package parser

import (
	"fmt"
	"time"

	"github.com/refit/extension/internal/grid"
	"github.com/refit/extension/internal/util"
	"github.com/refit/extension/pkg/core"
)

// ParsePlacement parses a placement hook payload.
// Args: [type, material, "x,y,z", faction, minifiable, verdict, reason, callbackId]
func (p *Parser) ParsePlacement(data []string) (core.Placement, error) {
	var result core.Placement

	if len(data) < 8 {
		return result, fmt.Errorf("insufficient data fields: got %d, need 8", len(data))
	}

	// fix received data
	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}

	// [0] target object type
	if data[0] == "" {
		return result, fmt.Errorf("placement has empty object type")
	}
	result.Type = core.ObjectType(data[0])

	// [1] pinned material (may be empty)
	result.Material = core.Material(data[1])

	// [2] target cell "x,y,z"
	cell, err := grid.PosFromString(data[2])
	if err != nil {
		return result, fmt.Errorf("error parsing placement cell: %w", err)
	}
	result.Cell = cell

	// [3] placing faction
	result.Faction = core.Faction(data[3])

	// [4] minifiable flag
	result.Minifiable = util.ParseBool(data[4])

	// [5] host placement-rule verdict
	result.Verdict = util.ParseBool(data[5])

	// [6] host rejection reason (empty when verdict is true)
	result.Reason = data[6]

	// [7] per-placement callback token
	result.CallbackID = data[7]

	result.Time = time.Now()

	return result, nil
}

// ParseQuery parses the readout and job hook payloads.
// Args: [type, material, faction]
func (p *Parser) ParseQuery(data []string) (t core.ObjectType, m core.Material, f core.Faction, err error) {
	if len(data) < 3 {
		return "", "", "", fmt.Errorf("insufficient data fields: got %d, need 3", len(data))
	}

	for i, v := range data {
		data[i] = util.FixEscapeQuotes(util.TrimQuotes(v))
	}

	if data[0] == "" {
		return "", "", "", fmt.Errorf("query has empty object type")
	}

	return core.ObjectType(data[0]), core.Material(data[1]), core.Faction(data[2]), nil
}
