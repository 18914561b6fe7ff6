package models

import "time"

// DiceLog is the append-only record of every resolved roll in a case.
type DiceLog struct {
	Rolls []Roll `json:"rolls,omitempty"`
}

// Roll is one resolved d20 roll with its full inputs, so a reader can
// reconstruct how the outcome was reached.
type Roll struct {
	ID          string    `json:"id" validate:"required"`
	Description string    `json:"description,omitempty"`
	Natural     int       `json:"natural" validate:"min=1,max=20"`
	Modifier    int       `json:"modifier"`
	Total       int       `json:"total"`
	Outcome     string    `json:"outcome" validate:"required"`
	Check       *Check    `json:"check,omitempty"`
	At          time.Time `json:"at"`
}

// Check carries the action-check inputs that produced a roll's modifier and,
// for skill checks, the target difficulty class and its result.
type Check struct {
	Action     string `json:"action,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Evidence   int    `json:"evidence,omitempty"`
	Trust      int    `json:"trust,omitempty"`
	Extra      int    `json:"extra,omitempty"`
	TargetDC   *int   `json:"target_dc,omitempty"`
	Succeeded  *bool  `json:"succeeded,omitempty"`
	Margin     *int   `json:"margin,omitempty"`
}
