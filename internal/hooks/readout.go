package hooks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/refit/extension/internal/finder"
	"github.com/refit/extension/internal/journal"
	"github.com/refit/extension/pkg/core"
)

// readoutTooltip explains the extra info-panel line to the player.
const readoutTooltip = "Stored copies of this building can be installed instead of built from raw materials."

// HandleReadout adds a line to the host's per-cell placement info panel
// when stored copies of the hovered building are accessible. It is
// display-only and never alters game state.
func (s *Service) HandleReadout(data []string) string {
	functionName := ":HOOK:READOUT:"

	return s.guard(functionName, PassResponse, func() (string, error) {
		typ, mat, faction, err := s.deps.Parser.ParseQuery(data)
		if err != nil {
			return "", fmt.Errorf("error parsing readout query: %w", err)
		}

		q := finder.Query{Type: typ}
		if s.deps.RequireMaterialMatch && mat != "" {
			q.Material = mat
		}

		scanStart := time.Now()
		matches := s.deps.Finder.FindAll(q)
		scanDur := time.Since(scanStart)
		s.observeScan("readout", scanDur)

		if len(matches) == 0 {
			s.count("readout", "pass")
			return PassResponse, nil
		}

		s.count("readout", "readout")

		payload, _ := json.Marshal(data)
		s.record(journal.DecisionRecord{
			Hook:       "readout",
			Kind:       "readout",
			Type:       string(typ),
			Material:   string(mat),
			Faction:    string(faction),
			Matches:    len(matches),
			ScanMicros: scanDur.Microseconds(),
			Payload:    payload,
		})

		noun := "copies"
		if len(matches) == 1 {
			noun = "copy"
		}
		return encodeReadout(core.Readout{
			Count:   len(matches),
			Line:    fmt.Sprintf("%d stored %s ready to install", len(matches), noun),
			Tooltip: readoutTooltip,
		}), nil
	})
}
