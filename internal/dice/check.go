package dice

import (
	"time"

	"github.com/myrjola/docket/internal/models"
)

// difficultyShifts maps a named difficulty to its flat modifier. Unknown
// names shift nothing so that bare checks follow the core formula.
var difficultyShifts = map[string]int{
	"trivial":           5,
	"easy":              3,
	"moderate":          0,
	"hard":              -2,
	"very_hard":         -4,
	"nearly_impossible": -6,
}

// Difficulties lists the named difficulties in ascending order of severity.
func Difficulties() []string {
	return []string{"trivial", "easy", "moderate", "hard", "very_hard", "nearly_impossible"}
}

// DifficultyShift returns the modifier contributed by a named difficulty.
func DifficultyShift(difficulty string) int {
	return difficultyShifts[difficulty]
}

// EvidenceModifier converts a relevant-evidence count into its bonus,
// capped at +3.
func EvidenceModifier(count int) int {
	if count <= 0 {
		return 0
	}
	if count > 3 {
		return 3
	}
	return count
}

// TrustBand converts unbounded character trust into its modifier. Zero trust
// is neutral; the bands saturate at +3 and -3.
func TrustBand(trust int) int {
	switch {
	case trust >= 8:
		return 3
	case trust >= 1:
		return 1
	case trust == 0:
		return 0
	case trust >= -3:
		return -1
	default:
		return -3
	}
}

// CheckInput carries the inputs of an action or skill check.
type CheckInput struct {
	// Action describes what the player attempts.
	Action string
	// Difficulty is an optional named difficulty from Difficulties.
	Difficulty string
	// Evidence is the count of evidence relevant to the action.
	Evidence int
	// Trust is the trust of the character involved, if any.
	Trust int
	// Extra is a free modifier supplied by the narrator.
	Extra int
	// TargetDC, when set, makes this a skill check reporting success and
	// margin against the difficulty class.
	TargetDC *int
}

// Check resolves an action check: one d20 roll whose modifier combines the
// difficulty shift, capped evidence bonus, trust band, and any extra
// modifier. The full input breakdown is retained on the roll record.
func (r *Roller) Check(in CheckInput, now time.Time) (models.Roll, error) {
	modifier := DifficultyShift(in.Difficulty) + EvidenceModifier(in.Evidence) + TrustBand(in.Trust) + in.Extra

	roll, err := r.Roll(modifier, in.Action, now)
	if err != nil {
		return models.Roll{}, err
	}

	check := models.Check{
		Action:     in.Action,
		Difficulty: in.Difficulty,
		Evidence:   in.Evidence,
		Trust:      in.Trust,
		Extra:      in.Extra,
	}
	if in.TargetDC != nil {
		dc := *in.TargetDC
		succeeded := roll.Total >= dc
		margin := roll.Total - dc
		check.TargetDC = &dc
		check.Succeeded = &succeeded
		check.Margin = &margin
	}
	roll.Check = &check

	return roll, nil
}
