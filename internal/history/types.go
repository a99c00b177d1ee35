package history

import "time"

// Outcome classifies one reference's result within a session.
type Outcome string

const (
	OutcomeRepaired Outcome = "repaired"
	OutcomeMissing  Outcome = "missing"
)

// Session is one recorded repair pass over a scene document.
type Session struct {
	ID         string
	CreatedAt  time.Time
	Scene      string
	SearchRoot string
	Scanned    int // texture references checked
	Missing    int // missing before the repair pass
	Repaired   int // repaired by the pass
}

// Repair is one reference's outcome within a session.
type Repair struct {
	SessionID string
	Node      string
	OldPath   string
	NewPath   string // empty when the outcome is missing
	Outcome   Outcome
}
