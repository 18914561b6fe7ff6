package models

import "time"

// SaveArtifact is a point-in-time copy of a case's full mutable state. Every
// save produces a new artifact; labels are descriptive, not unique keys.
type SaveArtifact struct {
	ID            string        `json:"id" validate:"required"`
	Label         string        `json:"label" validate:"required"`
	Phase         Phase         `json:"phase"`
	ActiveGate    string        `json:"active_gate,omitempty"`
	Investigation Investigation `json:"investigation" validate:"required"`
	Trial         Trial         `json:"trial"`
	Dice          DiceLog       `json:"dice"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Snapshot is a denormalized narrative-context document emitted at gate
// completion. It is advisory output for the narrator and is never read back
// into engine state.
type Snapshot struct {
	ID          string             `json:"id"`
	Gate        string             `json:"gate"`
	Phase       Phase              `json:"phase"`
	CaseFacts   CaseFacts          `json:"case_facts"`
	Evidence    []EvidenceNote     `json:"evidence_significance,omitempty"`
	Characters  []CharacterDynamic `json:"character_dynamics,omitempty"`
	OpenThreads []string           `json:"unresolved_threads,omitempty"`
	Strategy    string             `json:"trial_strategy,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CaseFacts is the snapshot's summary of where the story stands.
type CaseFacts struct {
	Title          string   `json:"title"`
	Location       string   `json:"location,omitempty"`
	CompletedGates []string `json:"completed_gates,omitempty"`
	PendingGates   []string `json:"pending_gates,omitempty"`
}

// EvidenceNote is the snapshot's view of one piece of evidence.
type EvidenceNote struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Significance string `json:"significance,omitempty"`
	DiscoveredAt string `json:"discovered_at,omitempty"`
}

// CharacterDynamic is the snapshot's view of one character relationship.
type CharacterDynamic struct {
	Name       string `json:"name"`
	Trust      int    `json:"trust"`
	Interviews int    `json:"interviews"`
	RoleHint   string `json:"role_hint,omitempty"`
}
