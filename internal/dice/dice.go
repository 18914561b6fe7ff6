// Package dice resolves d20 action checks. Rolls are graded into narrative
// outcome tiers; the natural die face, not just the modified total, gates the
// extreme tiers.
package dice

import (
	"time"

	"github.com/google/uuid"

	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/random"
)

// Outcome is the narrative tier of a resolved roll.
type Outcome int

const (
	OutcomeCriticalFailure Outcome = iota
	OutcomeFailure
	OutcomePartialSuccess
	OutcomeSuccess
	OutcomeGreatSuccess
	OutcomeCriticalSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCriticalFailure:
		return "critical_failure"
	case OutcomeFailure:
		return "failure"
	case OutcomePartialSuccess:
		return "partial_success"
	case OutcomeSuccess:
		return "success"
	case OutcomeGreatSuccess:
		return "great_success"
	case OutcomeCriticalSuccess:
		return "critical_success"
	default:
		return "unknown"
	}
}

// Source produces natural die faces in the range [1, sides]. Tests inject a
// fixed sequence; production rolls come from crypto/rand.
type Source func(sides int) (int, error)

// Roller resolves rolls against a die source.
type Roller struct {
	source Source
}

// NewRoller returns a Roller backed by the given source, or the
// cryptographically random default when source is nil.
func NewRoller(source Source) *Roller {
	if source == nil {
		source = random.DieRoll
	}
	return &Roller{source: source}
}

// Roll resolves a bare d20 roll with a flat modifier.
func (r *Roller) Roll(modifier int, description string, now time.Time) (models.Roll, error) {
	natural, err := r.source(20)
	if err != nil {
		return models.Roll{}, err
	}

	total := natural + modifier

	return models.Roll{
		ID:          uuid.NewString(),
		Description: description,
		Natural:     natural,
		Modifier:    modifier,
		Total:       total,
		Outcome:     OutcomeFor(natural, total).String(),
		At:          now,
	}, nil
}

// OutcomeFor grades a roll. A natural 20 is always a critical success and a
// natural 1 always a critical failure, regardless of modifiers. Totals are
// otherwise unclamped.
func OutcomeFor(natural, total int) Outcome {
	switch {
	case natural == 20:
		return OutcomeCriticalSuccess
	case natural == 1:
		return OutcomeCriticalFailure
	case total >= 18:
		return OutcomeCriticalSuccess
	case total >= 15:
		return OutcomeGreatSuccess
	case total >= 12:
		return OutcomeSuccess
	case total >= 8:
		return OutcomePartialSuccess
	case total >= 5:
		return OutcomeFailure
	default:
		return OutcomeCriticalFailure
	}
}

// Recent returns up to n rolls from the log, newest first.
func Recent(log models.DiceLog, n int) []models.Roll {
	if n <= 0 || len(log.Rolls) == 0 {
		return nil
	}
	if n > len(log.Rolls) {
		n = len(log.Rolls)
	}

	recent := make([]models.Roll, n)
	for i := range n {
		recent[i] = log.Rolls[len(log.Rolls)-1-i]
	}
	return recent
}
