package journal

import (
	"time"

	"gorm.io/datatypes"
)

// DecisionRecord is one hook outcome persisted for after-session review.
// Payload carries the raw host arguments of the intercepted call.
type DecisionRecord struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`

	Hook       string `json:"hook" gorm:"index"` // "placement", "readout", "job"
	Kind       string `json:"kind" gorm:"index"` // "pass", "install", "reject"
	Type       string `json:"type"`              // target object type
	Material   string `json:"material"`          // requested material, may be empty
	Faction    string `json:"faction"`
	ItemID     uint32 `json:"itemId"`     // matched item on install
	Reason     string `json:"reason"`     // host rejection reason on reject
	Matches    int    `json:"matches"`    // accessible match count at decision time
	ScanMicros int64  `json:"scanMicros"` // finder scan duration in microseconds

	Payload datatypes.JSON `json:"payload"`
}

// DatabaseModels is a list of all structs representing tables in the
// journal schema.
var DatabaseModels = []interface{}{
	&DecisionRecord{},
	&SessionRecord{},
}

// SessionRecord marks one host session (map load) in the journal.
type SessionRecord struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`

	MapName          string `json:"mapName"`
	Faction          string `json:"faction"`
	AddonVersion     string `json:"addonVersion"`
	ExtensionVersion string `json:"extensionVersion"`
}
