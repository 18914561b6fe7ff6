// Package gates advances a case through its authored story beats and flips
// the case phase from investigation to trial once enough investigation gates
// have completed for the case's length tier.
package gates

import (
	"log/slog"
	"strings"
	"time"

	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/models"
)

var (
	ErrUnknownGate      = errors.NewSentinel("unknown gate")
	ErrAlreadyStarted   = errors.NewSentinel("gate already started")
	ErrAlreadyCompleted = errors.NewSentinel("gate already completed")
	ErrNotInTrial       = errors.NewSentinel("case is not in the trial phase")
	ErrCaseClosed       = errors.NewSentinel("case is already complete")
)

// trialTriggerPoints maps a case length tier to the number of completed
// investigation gates that moves the case into the trial phase.
var trialTriggerPoints = map[int]int{
	1: 0,
	2: 1,
	3: 3,
}

// TrialTrigger returns the completed-investigation-gate threshold for a tier.
func TrialTrigger(tier int) int {
	return trialTriggerPoints[tier]
}

// Result describes the effect of completing a gate.
type Result struct {
	Gate                   *models.Gate `json:"gate"`
	Phase                  models.Phase `json:"phase"`
	PhaseChanged           bool         `json:"phase_changed"`
	CompletedInvestigation int          `json:"completed_investigation"`
	TrialTrigger           int          `json:"trial_trigger"`
}

// Start moves a pending gate to in_progress.
func Start(inv *models.Investigation, name string, now time.Time) (*models.Gate, error) {
	gate := inv.Gate(name)
	if gate == nil {
		return nil, errors.Wrap(ErrUnknownGate, "start gate",
			slog.String("gate", name),
			slog.String("valid_gates", strings.Join(inv.GateNames(), ", ")),
		)
	}

	switch gate.Status {
	case models.GateStatusCompleted:
		return nil, errors.Wrap(ErrAlreadyCompleted, "start gate", slog.String("gate", name))
	case models.GateStatusInProgress:
		return nil, errors.Wrap(ErrAlreadyStarted, "start gate", slog.String("gate", name))
	case models.GateStatusPending:
	}

	gate.Status = models.GateStatusInProgress
	startedAt := now
	gate.StartedAt = &startedAt

	return gate, nil
}

// Complete moves a pending or in-progress gate to completed and recomputes
// the case phase. Completing all gates never closes the case by itself;
// closing happens only through Resolve.
func Complete(inv *models.Investigation, tier int, name string, now time.Time) (*Result, error) {
	gate := inv.Gate(name)
	if gate == nil {
		return nil, errors.Wrap(ErrUnknownGate, "complete gate",
			slog.String("gate", name),
			slog.String("valid_gates", strings.Join(inv.GateNames(), ", ")),
		)
	}
	if gate.Status == models.GateStatusCompleted {
		return nil, errors.Wrap(ErrAlreadyCompleted, "complete gate", slog.String("gate", name))
	}

	gate.Status = models.GateStatusCompleted
	completedAt := now
	gate.CompletedAt = &completedAt

	changed := RecomputePhase(inv, tier)

	return &Result{
		Gate:                   gate,
		Phase:                  inv.Phase,
		PhaseChanged:           changed,
		CompletedInvestigation: inv.CompletedCount(models.GateKindInvestigation),
		TrialTrigger:           TrialTrigger(tier),
	}, nil
}

// RecomputePhase flips the phase from investigation to trial when the
// completed investigation gates reach the tier's trigger point. The phase
// never moves backwards.
func RecomputePhase(inv *models.Investigation, tier int) bool {
	if inv.Phase != models.PhaseInvestigation {
		return false
	}
	if inv.CompletedCount(models.GateKindInvestigation) >= TrialTrigger(tier) {
		inv.Phase = models.PhaseTrial
		return true
	}
	return false
}

// Resolve closes a case that has reached the trial phase. This is the only
// way a case becomes complete.
func Resolve(inv *models.Investigation) error {
	switch inv.Phase {
	case models.PhaseComplete:
		return errors.Wrap(ErrCaseClosed, "resolve case")
	case models.PhaseInvestigation:
		return errors.Wrap(ErrNotInTrial, "resolve case", slog.String("phase", string(inv.Phase)))
	case models.PhaseTrial:
	}

	inv.Phase = models.PhaseComplete
	return nil
}
