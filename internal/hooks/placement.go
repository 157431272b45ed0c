package hooks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/refit/extension/internal/finder"
	"github.com/refit/extension/internal/journal"
	"github.com/refit/extension/pkg/core"
)

// HandlePlacement intercepts a single-cell blueprint placement. When a
// stored minified copy of the target is accessible, the build action is
// substituted with an install of that copy; the host's own placement
// verdict still gates the cell. Anything else passes through.
func (s *Service) HandlePlacement(data []string) string {
	functionName := ":HOOK:PLACE:"

	return s.guard(functionName, PassResponse, func() (string, error) {
		pl, err := s.deps.Parser.ParsePlacement(data)
		if err != nil {
			return "", fmt.Errorf("error parsing placement: %w", err)
		}

		if !pl.Minifiable {
			s.count("placement", "pass")
			return PassResponse, nil
		}

		q := finder.Query{Type: pl.Type}
		if s.deps.RequireMaterialMatch && pl.Material != "" {
			q.Material = pl.Material
		}

		scanStart := time.Now()
		item, found := s.deps.Finder.FindFirst(q)
		scanDur := time.Since(scanStart)
		s.observeScan("placement", scanDur)

		if !found {
			s.count("placement", "pass")
			return PassResponse, nil
		}

		decision := core.Decision{Kind: core.DecisionPass}
		if !pl.Verdict {
			// A stored copy exists but the host's placement rules
			// reject the cell: surface the host's reason and cancel.
			decision = core.Decision{Kind: core.DecisionReject, Reason: pl.Reason}
			s.writeLog(functionName, fmt.Sprintf("placement of %s rejected by host rules: %s", pl.Type, pl.Reason), "INFO")
		} else {
			decision = core.Decision{
				Kind:   core.DecisionInstall,
				ItemID: item.ID,
				Effects: []core.Effect{
					{Kind: "puff", Arg: pl.Cell.String()},
					{Kind: "tutorial", Arg: s.deps.TutorialKey},
				},
			}
			if pl.CallbackID != "" {
				decision.Effects = append(decision.Effects, core.Effect{Kind: "callback", Arg: pl.CallbackID})
			}
			s.writeLog(functionName, fmt.Sprintf("substituting install of stored item %d for %s placement", item.ID, pl.Type), "INFO")
		}

		s.count("placement", string(decision.Kind))

		payload, _ := json.Marshal(data)
		s.record(journal.DecisionRecord{
			Hook:       "placement",
			Kind:       string(decision.Kind),
			Type:       string(pl.Type),
			Material:   string(pl.Material),
			Faction:    string(pl.Faction),
			ItemID:     decision.ItemID,
			Reason:     decision.Reason,
			Matches:    1,
			ScanMicros: scanDur.Microseconds(),
			Payload:    payload,
		})

		return encodeDecision(decision), nil
	})
}
