package core

import "time"

// Placement is a single-cell blueprint placement request as the host
// reports it to the placement hook. Verdict and Reason carry the host's
// own placement-rule evaluation for the target cell; the extension never
// re-derives them.
type Placement struct {
	Type       ObjectType
	Material   Material // empty when the player did not pin a material
	Cell       GridPos
	Faction    Faction
	Minifiable bool
	Verdict    bool   // host placement rules passed
	Reason     string // host rejection reason when Verdict is false
	CallbackID string // per-placement callback token to echo on install
	Time       time.Time
}

// DecisionKind classifies a hook answer.
type DecisionKind string

const (
	// DecisionPass defers to unmodified host behavior.
	DecisionPass DecisionKind = "pass"
	// DecisionInstall substitutes an install action for a stored item.
	DecisionInstall DecisionKind = "install"
	// DecisionReject cancels the placement with the host's reason.
	DecisionReject DecisionKind = "reject"
)

// Effect names a cosmetic side effect the host must replicate when it
// executes an install decision, matching what a normal build placement
// would have produced.
type Effect struct {
	Kind string // "puff", "tutorial", "callback"
	Arg  string // cell for puff, notification key, callback token
}

// Decision is the placement hook's answer.
type Decision struct {
	Kind    DecisionKind
	ItemID  uint32 // set when Kind is DecisionInstall
	Reason  string // set when Kind is DecisionReject
	Effects []Effect
}

// Readout is the readout hook's answer: one extra line on the host's
// per-cell placement info panel. A zero Count means "no line".
type Readout struct {
	Count   int
	Line    string
	Tooltip string
}
