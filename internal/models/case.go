package models

import "time"

// Phase is the major stage of a case. Phase moves forward only:
// investigation -> trial -> complete.
type Phase string

const (
	PhaseInvestigation Phase = "investigation"
	PhaseTrial         Phase = "trial"
	PhaseComplete      Phase = "complete"
)

// GateKind classifies a gate as belonging to the investigation or the trial
// portion of a case.
type GateKind string

const (
	GateKindInvestigation GateKind = "investigation"
	GateKindTrial         GateKind = "trial"
)

// GateStatus is the lifecycle state of a single gate.
// Transitions are monotonic: pending -> in_progress -> completed.
type GateStatus string

const (
	GateStatusPending    GateStatus = "pending"
	GateStatusInProgress GateStatus = "in_progress"
	GateStatusCompleted  GateStatus = "completed"
)

// Case is the full durable state of one case: the authored backbone plus the
// mutable investigation, trial, and dice documents loaded from disk.
type Case struct {
	ID            string
	Backbone      Backbone
	Investigation Investigation
	Trial         Trial
	Dice          DiceLog
}

// Investigation is the authoritative mutable document for a case outside the
// courtroom: gate progression, the evidence and character ledgers, notes,
// location, and the classification reveal audit.
type Investigation struct {
	Phase      Phase       `json:"phase" validate:"required,oneof=investigation trial complete"`
	Gates      []Gate      `json:"gates" validate:"required,min=1,dive"`
	Evidence   []Evidence  `json:"evidence" validate:"dive"`
	Characters []Character `json:"characters" validate:"dive"`
	Notes      []Note      `json:"notes,omitempty"`
	Location   string      `json:"location,omitempty"`
	Reveals    []Reveal    `json:"reveals,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Gate is a named story beat that the narrator drives the case through.
type Gate struct {
	Name        string     `json:"name" validate:"required"`
	Kind        GateKind   `json:"kind" validate:"required,oneof=investigation trial"`
	Status      GateStatus `json:"status" validate:"required,oneof=pending in_progress completed"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Evidence is a discovered item in the case ledger. Names are unique within
// a case.
type Evidence struct {
	Name         string    `json:"name" validate:"required"`
	Description  string    `json:"description"`
	DiscoveredAt string    `json:"discovered_at,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}

// Character is a person in the case ledger. Trust is an unbounded integer
// defaulting to zero. RoleHint is the stable input to classification and
// never changes after creation.
type Character struct {
	Name        string      `json:"name" validate:"required"`
	RoleHint    string      `json:"role_hint,omitempty"`
	Trust       int         `json:"trust"`
	Age         int         `json:"age,omitempty"`
	Occupation  string      `json:"occupation,omitempty"`
	Personality string      `json:"personality,omitempty"`
	Interviews  []Interview `json:"interviews,omitempty"`
}

// Interview is one entry in a character's append-only interview history.
type Interview struct {
	Gate  string    `json:"gate,omitempty"`
	Topic string    `json:"topic,omitempty"`
	At    time.Time `json:"at"`
}

// Note is a free-text investigation note tagged with the gate that was
// active when it was taken.
type Note struct {
	Text string    `json:"text" validate:"required"`
	Gate string    `json:"gate,omitempty"`
	At   time.Time `json:"at"`
}

// Reveal is an audit record stating that a character's hidden classification
// was disclosed. The outcome itself is not stored; it is recomputable.
type Reveal struct {
	Character string    `json:"character" validate:"required"`
	At        time.Time `json:"at"`
}

// Gate returns the named gate or nil when no such gate exists.
func (inv *Investigation) Gate(name string) *Gate {
	for i := range inv.Gates {
		if inv.Gates[i].Name == name {
			return &inv.Gates[i]
		}
	}
	return nil
}

// GateNames returns the names of all gates in authored order.
func (inv *Investigation) GateNames() []string {
	names := make([]string, len(inv.Gates))
	for i := range inv.Gates {
		names[i] = inv.Gates[i].Name
	}
	return names
}

// ActiveGate returns the name of the first in-progress gate, or the empty
// string when no gate is in progress.
func (inv *Investigation) ActiveGate() string {
	for i := range inv.Gates {
		if inv.Gates[i].Status == GateStatusInProgress {
			return inv.Gates[i].Name
		}
	}
	return ""
}

// CompletedCount returns the number of completed gates of the given kind.
func (inv *Investigation) CompletedCount(kind GateKind) int {
	count := 0
	for i := range inv.Gates {
		if inv.Gates[i].Kind == kind && inv.Gates[i].Status == GateStatusCompleted {
			count++
		}
	}
	return count
}

// FindEvidence returns the named evidence or nil when it has not been
// discovered.
func (inv *Investigation) FindEvidence(name string) *Evidence {
	for i := range inv.Evidence {
		if inv.Evidence[i].Name == name {
			return &inv.Evidence[i]
		}
	}
	return nil
}

// Character returns the named character or nil when no such character exists.
func (inv *Investigation) Character(name string) *Character {
	for i := range inv.Characters {
		if inv.Characters[i].Name == name {
			return &inv.Characters[i]
		}
	}
	return nil
}
