package gates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/myrjola/docket/internal/gates"
	"github.com/myrjola/docket/internal/models"
)

func newInvestigation(tier int) models.Investigation {
	backboneGates := gates.DefaultGates(tier)
	invGates := make([]models.Gate, len(backboneGates))
	for i, gate := range backboneGates {
		invGates[i] = models.Gate{Name: gate.Name, Kind: gate.Kind, Status: models.GateStatusPending}
	}
	return models.Investigation{
		Phase: models.PhaseInvestigation,
		Gates: invGates,
	}
}

func TestStart(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("pending gate starts", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(2)

		gate, err := gates.Start(&inv, "investigation_day", now)
		require.NoError(t, err)
		require.Equal(t, models.GateStatusInProgress, gate.Status)
		require.Equal(t, now, *gate.StartedAt)
		require.Equal(t, "investigation_day", inv.ActiveGate())
	})

	t.Run("unknown gate names the valid gates", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(2)

		_, err := gates.Start(&inv, "closing_argument", now)
		require.ErrorIs(t, err, gates.ErrUnknownGate)
	})

	t.Run("double start is rejected", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(2)

		_, err := gates.Start(&inv, "investigation_day", now)
		require.NoError(t, err)
		_, err = gates.Start(&inv, "investigation_day", now)
		require.ErrorIs(t, err, gates.ErrAlreadyStarted)
	})

	t.Run("starting a completed gate is rejected", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(2)

		_, err := gates.Complete(&inv, 2, "investigation_day", now)
		require.NoError(t, err)
		_, err = gates.Start(&inv, "investigation_day", now)
		require.ErrorIs(t, err, gates.ErrAlreadyCompleted)
	})
}

func TestComplete(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("pending gate completes directly", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(3)

		result, err := gates.Complete(&inv, 3, "investigation_day_1", now)
		require.NoError(t, err)
		require.Equal(t, models.GateStatusCompleted, result.Gate.Status)
		require.Equal(t, now, *result.Gate.CompletedAt)
		require.False(t, result.PhaseChanged)
	})

	t.Run("completing twice is rejected", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(3)

		_, err := gates.Complete(&inv, 3, "investigation_day_1", now)
		require.NoError(t, err)
		_, err = gates.Complete(&inv, 3, "investigation_day_1", now)
		require.ErrorIs(t, err, gates.ErrAlreadyCompleted)
	})

	t.Run("completed timestamps survive status", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(2)

		_, err := gates.Start(&inv, "investigation_day", now)
		require.NoError(t, err)
		result, err := gates.Complete(&inv, 2, "investigation_day", now.Add(time.Hour))
		require.NoError(t, err)
		require.Equal(t, now, *result.Gate.StartedAt)
		require.Equal(t, now.Add(time.Hour), *result.Gate.CompletedAt)
	})
}

func TestTrialTrigger(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("tier 1 is trial-ready immediately", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(1)

		require.True(t, gates.RecomputePhase(&inv, 1))
		require.Equal(t, models.PhaseTrial, inv.Phase)
	})

	t.Run("tier 2 flips after one investigation gate", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(2)

		require.False(t, gates.RecomputePhase(&inv, 2))

		result, err := gates.Complete(&inv, 2, "investigation_day", now)
		require.NoError(t, err)
		require.True(t, result.PhaseChanged)
		require.Equal(t, models.PhaseTrial, result.Phase)
		require.Equal(t, 1, result.CompletedInvestigation)
		require.Equal(t, 1, result.TrialTrigger)
	})

	t.Run("tier 3 needs three investigation gates", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(3)

		for _, name := range []string{"investigation_day_1", "investigation_day_2"} {
			result, err := gates.Complete(&inv, 3, name, now)
			require.NoError(t, err)
			require.False(t, result.PhaseChanged)
			require.Equal(t, models.PhaseInvestigation, result.Phase)
		}

		result, err := gates.Complete(&inv, 3, "brief_investigation", now)
		require.NoError(t, err)
		require.True(t, result.PhaseChanged)
		require.Equal(t, models.PhaseTrial, result.Phase)
	})

	t.Run("trial gates never count toward the trigger", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(2)

		result, err := gates.Complete(&inv, 2, "trial_opening", now)
		require.NoError(t, err)
		require.False(t, result.PhaseChanged)
		require.Equal(t, models.PhaseInvestigation, result.Phase)
	})

	t.Run("phase never moves backwards", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(2)
		inv.Phase = models.PhaseTrial

		require.False(t, gates.RecomputePhase(&inv, 2))
		require.Equal(t, models.PhaseTrial, inv.Phase)
	})

	t.Run("completing every gate does not close the case", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(1)
		gates.RecomputePhase(&inv, 1)

		for _, name := range inv.GateNames() {
			_, err := gates.Complete(&inv, 1, name, now)
			require.NoError(t, err)
		}
		require.Equal(t, models.PhaseTrial, inv.Phase)
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("resolves from trial", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(1)
		require.True(t, gates.RecomputePhase(&inv, 1))

		require.NoError(t, gates.Resolve(&inv))
		require.Equal(t, models.PhaseComplete, inv.Phase)
	})

	t.Run("rejects resolution during investigation", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(2)

		require.ErrorIs(t, gates.Resolve(&inv), gates.ErrNotInTrial)
	})

	t.Run("rejects double resolution", func(t *testing.T) {
		t.Parallel()
		inv := newInvestigation(1)
		require.True(t, gates.RecomputePhase(&inv, 1))
		require.NoError(t, gates.Resolve(&inv))

		require.ErrorIs(t, gates.Resolve(&inv), gates.ErrCaseClosed)
	})
}
