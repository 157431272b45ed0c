package hooks

import (
	"encoding/json"
	"strconv"

	"github.com/refit/extension/pkg/core"
)

// PassResponse is the answer that defers to unmodified host behavior.
// It is the fallback of every hook boundary.
const PassResponse = `["pass"]`

// encodeDecision serializes a placement decision for the host.
//
//	["pass"]
//	["reject","<reason>"]
//	["install","<itemId>",[["puff","x,y,z"],["tutorial","<key>"],["callback","<token>"]]]
func encodeDecision(d core.Decision) string {
	switch d.Kind {
	case core.DecisionReject:
		out, err := json.Marshal([]any{string(core.DecisionReject), d.Reason})
		if err != nil {
			return PassResponse
		}
		return string(out)
	case core.DecisionInstall:
		effects := make([][]string, 0, len(d.Effects))
		for _, e := range d.Effects {
			effects = append(effects, []string{e.Kind, e.Arg})
		}
		out, err := json.Marshal([]any{string(core.DecisionInstall), itoa(d.ItemID), effects})
		if err != nil {
			return PassResponse
		}
		return string(out)
	default:
		return PassResponse
	}
}

// encodeReadout serializes a readout answer for the host UI.
//
//	["readout","<count>","<line>","<tooltip>"]
func encodeReadout(r core.Readout) string {
	if r.Count == 0 {
		return PassResponse
	}
	out, err := json.Marshal([]any{"readout", itoa(uint32(r.Count)), r.Line, r.Tooltip})
	if err != nil {
		return PassResponse
	}
	return string(out)
}

func itoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
