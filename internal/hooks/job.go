package hooks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/refit/extension/internal/finder"
	"github.com/refit/extension/internal/journal"
)

// HandleJob observes resource-delivery job assignment for an existing
// blueprint. It never alters the assignment: when a stored copy exists
// it logs an informational note, then always defers to the host.
func (s *Service) HandleJob(data []string) string {
	functionName := ":HOOK:JOB:"

	return s.guard(functionName, PassResponse, func() (string, error) {
		typ, mat, faction, err := s.deps.Parser.ParseQuery(data)
		if err != nil {
			return "", fmt.Errorf("error parsing job query: %w", err)
		}

		q := finder.Query{Type: typ}
		if s.deps.RequireMaterialMatch && mat != "" {
			q.Material = mat
		}

		scanStart := time.Now()
		item, found := s.deps.Finder.FindFirst(q)
		scanDur := time.Since(scanStart)
		s.observeScan("job", scanDur)

		if found {
			s.writeLog(functionName,
				fmt.Sprintf("delivery job for %s scheduled while stored item %d sits unused", typ, item.ID), "INFO")
			s.count("job", "noted")

			payload, _ := json.Marshal(data)
			s.record(journal.DecisionRecord{
				Hook:       "job",
				Kind:       "pass",
				Type:       string(typ),
				Material:   string(mat),
				Faction:    string(faction),
				ItemID:     item.ID,
				Matches:    1,
				ScanMicros: scanDur.Microseconds(),
				Payload:    payload,
			})
		} else {
			s.count("job", "pass")
		}

		return PassResponse, nil
	})
}
