package engine_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myrjola/docket/internal/casefile"
	"github.com/myrjola/docket/internal/dice"
	"github.com/myrjola/docket/internal/engine"
	"github.com/myrjola/docket/internal/gates"
	"github.com/myrjola/docket/internal/ledger"
	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/namegen"
	"github.com/myrjola/docket/internal/saves"
	"github.com/myrjola/docket/internal/testhelpers"
	"github.com/myrjola/docket/internal/trial"
)

// cyclingSource feeds a repeating sequence of die faces.
func cyclingSource(faces ...int) dice.Source {
	i := 0
	return func(sides int) (int, error) {
		face := faces[i%len(faces)]
		i++
		return face, nil
	}
}

func newTestEngine(t *testing.T, source dice.Source) *engine.Engine {
	t.Helper()
	logger := testhelpers.NewLogger(io.Discard)
	store := casefile.NewStore(t.TempDir(), logger)
	return engine.New(store, dice.NewRoller(source), namegen.New(1), logger)
}

func galaBackbone() models.Backbone {
	return models.Backbone{
		Title:     "The Midnight Gala",
		Tier:      2,
		Locations: []string{"ballroom", "garden"},
		Witnesses: []models.BackboneWitness{
			{
				Name: "Valet",
				Statements: []models.BackboneStatement{
					{Text: "I polished silver all evening."},
					{Text: "I never left the kitchen.", Contradiction: "muddy boots"},
				},
			},
		},
	}
}

// newGalaCase scaffolds a tier-2 case with the stock gate structure.
func newGalaCase(t *testing.T, eng *engine.Engine) string {
	t.Helper()
	_, err := eng.NewCase(context.TODO(), "midnight-gala", galaBackbone())
	require.NoError(t, err)
	return "midnight-gala"
}

// advanceToTrial completes the single investigation gate of a tier-2 case.
func advanceToTrial(t *testing.T, eng *engine.Engine, caseID string) {
	t.Helper()
	ctx := context.TODO()
	_, err := eng.StartGate(ctx, caseID, "investigation_day")
	require.NoError(t, err)
	_, err = eng.CompleteGate(ctx, caseID, "investigation_day")
	require.NoError(t, err)
}

func TestNewCase(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()

	t.Run("tier 2 gets stock gates and starts investigating", func(t *testing.T) {
		t.Parallel()
		eng := newTestEngine(t, nil)

		c, err := eng.NewCase(ctx, "gala", galaBackbone())
		require.NoError(t, err)
		require.Equal(t, models.PhaseInvestigation, c.Investigation.Phase)
		require.Equal(t, []string{
			"investigation_day", "trial_opening", "cross_examination", "final_battle",
		}, c.Investigation.GateNames())
		require.Equal(t, "ballroom", c.Investigation.Location)
	})

	t.Run("tier 1 is born at trial", func(t *testing.T) {
		t.Parallel()
		eng := newTestEngine(t, nil)

		c, err := eng.NewCase(ctx, "overnight", models.Backbone{Title: "The Overnight Verdict", Tier: 1})
		require.NoError(t, err)
		require.Equal(t, models.PhaseTrial, c.Investigation.Phase)

		// The phase change is durable, not an in-memory artifact.
		status, err := eng.Status(ctx, "overnight")
		require.NoError(t, err)
		require.Equal(t, models.PhaseTrial, status.Phase)
	})

	t.Run("authored gates pass through", func(t *testing.T) {
		t.Parallel()
		eng := newTestEngine(t, nil)

		backbone := galaBackbone()
		backbone.Gates = []models.BackboneGate{
			{Name: "prologue", Kind: models.GateKindInvestigation},
			{Name: "verdict", Kind: models.GateKindTrial},
		}
		c, err := eng.NewCase(ctx, "authored", backbone)
		require.NoError(t, err)
		require.Equal(t, []string{"prologue", "verdict"}, c.Investigation.GateNames())
	})

	t.Run("duplicate case id", func(t *testing.T) {
		t.Parallel()
		eng := newTestEngine(t, nil)

		caseID := newGalaCase(t, eng)
		_, err := eng.NewCase(ctx, caseID, galaBackbone())
		require.ErrorIs(t, err, casefile.ErrAlreadyExists)
	})
}

func TestGateProgression(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, nil)
	caseID := newGalaCase(t, eng)

	gate, err := eng.StartGate(ctx, caseID, "investigation_day")
	require.NoError(t, err)
	require.Equal(t, models.GateStatusInProgress, gate.Status)

	result, err := eng.CompleteGate(ctx, caseID, "investigation_day")
	require.NoError(t, err)
	require.True(t, result.PhaseChanged)
	require.Equal(t, models.PhaseTrial, result.Phase)
	require.NotEmpty(t, result.SnapshotPath, "gate completion emits a narrative snapshot")

	var snapshot models.Snapshot
	require.NoError(t, casefile.ReadJSON(result.SnapshotPath, &snapshot))
	require.Equal(t, "investigation_day", snapshot.Gate)
	require.Equal(t, models.PhaseTrial, snapshot.Phase)

	// Progression is durable across invocations.
	status, err := eng.Status(ctx, caseID)
	require.NoError(t, err)
	require.Equal(t, models.PhaseTrial, status.Phase)
	require.Equal(t, 1, status.CompletedInvestigation)

	_, err = eng.CompleteGate(ctx, caseID, "investigation_day")
	require.ErrorIs(t, err, gates.ErrAlreadyCompleted)

	_, err = eng.StartGate(ctx, caseID, "closing_argument")
	require.ErrorIs(t, err, gates.ErrUnknownGate)
}

func TestLedgerOperations(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, nil)
	caseID := newGalaCase(t, eng)

	_, err := eng.StartGate(ctx, caseID, "investigation_day")
	require.NoError(t, err)

	evidence, err := eng.AddEvidence(ctx, caseID, "muddy boots", "Boots caked in garden soil.")
	require.NoError(t, err)
	require.Equal(t, "investigation_day", evidence.DiscoveredAt)

	_, err = eng.AddEvidence(ctx, caseID, "muddy boots", "again")
	require.ErrorIs(t, err, ledger.ErrDuplicateEvidence)

	listed, err := eng.Evidence(ctx, caseID)
	require.NoError(t, err)
	require.Len(t, listed, 1, "failed add leaves the ledger unchanged")

	character, err := eng.Interview(ctx, caseID, "Valet", "whereabouts")
	require.NoError(t, err)
	require.Len(t, character.Interviews, 1)

	character, err = eng.AdjustTrust(ctx, caseID, "Valet", -2)
	require.NoError(t, err)
	require.Equal(t, -2, character.Trust)

	_, err = eng.AddNote(ctx, caseID, "The valet avoids questions about the garden.")
	require.NoError(t, err)

	location, err := eng.Move(ctx, caseID, "garden")
	require.NoError(t, err)
	require.Equal(t, "garden", location)

	_, err = eng.Move(ctx, caseID, "wine cellar")
	require.ErrorIs(t, err, ledger.ErrUnknownLocation)

	summary, err := eng.Summary(ctx, caseID)
	require.NoError(t, err)
	require.Len(t, summary.Evidence, 1)
	require.Len(t, summary.Characters, 1)
	require.Len(t, summary.Notes, 1)
	require.Equal(t, "garden", summary.Location)
}

func TestRollsAndChecks(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, cyclingSource(10))
	caseID := newGalaCase(t, eng)

	roll, err := eng.Roll(ctx, caseID, 2, "pick the lock")
	require.NoError(t, err)
	require.Equal(t, 10, roll.Natural)
	require.Equal(t, 12, roll.Total)
	require.Equal(t, "success", roll.Outcome)

	// Trust resolved from the ledger: 9 sits in the +3 band.
	_, err = eng.AdjustTrust(ctx, caseID, "Valet", 9)
	require.NoError(t, err)

	check, err := eng.Check(ctx, caseID, engine.CheckParams{
		Action:     "convince the valet to talk",
		Difficulty: "hard",
		Evidence:   2,
		TrustOf:    "Valet",
	})
	require.NoError(t, err)
	require.Equal(t, 9, check.Check.Trust)
	require.Equal(t, 3, check.Modifier, "hard -2, evidence +2, trust band +3")
	require.Equal(t, 13, check.Total)

	_, err = eng.Check(ctx, caseID, engine.CheckParams{Action: "x", TrustOf: "Nobody"})
	require.ErrorIs(t, err, ledger.ErrCharacterNotFound)

	history, err := eng.RollHistory(ctx, caseID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "convince the valet to talk", history[0].Description, "newest first")
}

func TestGenerateRevealAndStats(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, nil)
	caseID := newGalaCase(t, eng)

	character, err := eng.GenerateCharacter(ctx, caseID, "security guard", "")
	require.NoError(t, err)
	require.NotEmpty(t, character.Name)
	require.Equal(t, "security guard", character.RoleHint)
	require.NotEmpty(t, character.Occupation)

	_, err = eng.GenerateCharacter(ctx, caseID, "witness", "Nobody")
	require.ErrorIs(t, err, ledger.ErrCharacterNotFound)

	sibling, err := eng.GenerateCharacter(ctx, caseID, "witness", character.Name)
	require.NoError(t, err)
	words := strings.Fields(character.Name)
	require.True(t, strings.HasSuffix(sibling.Name, words[len(words)-1]), "relatives share a surname")

	summary, err := eng.Summary(ctx, caseID)
	require.NoError(t, err)
	require.Len(t, summary.Characters, 2)

	_, err = eng.Reveal(ctx, caseID, character.Name, false)
	require.ErrorIs(t, err, engine.ErrSpoilersNotAcknowledged)

	_, err = eng.Reveal(ctx, caseID, "Nobody", true)
	require.ErrorIs(t, err, ledger.ErrCharacterNotFound)

	first, err := eng.Reveal(ctx, caseID, character.Name, true)
	require.NoError(t, err)
	second, err := eng.Reveal(ctx, caseID, character.Name, true)
	require.NoError(t, err)
	require.Equal(t, first.Culprit, second.Culprit, "classification is stable across calls")

	// Stats without the acknowledgement disclose nothing but the shape.
	stats, err := eng.Stats(ctx, caseID, false)
	require.NoError(t, err)
	require.False(t, stats.Revealed)
	require.Empty(t, stats.Outcomes)
	require.Equal(t, 1, stats.TotalCharacters)
	require.InDelta(t, 1.0/3.0, stats.ExpectedRate, 1e-9)

	stats, err = eng.Stats(ctx, caseID, true)
	require.NoError(t, err)
	require.True(t, stats.Revealed)
	require.Len(t, stats.Outcomes, 1)
	require.Equal(t, 1, stats.Culprits+stats.RedHerrings)
}

func TestExamFlow(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, nil)
	caseID := newGalaCase(t, eng)

	_, err := eng.ExamBegin(ctx, caseID, "Valet", nil)
	require.ErrorIs(t, err, gates.ErrNotInTrial)

	advanceToTrial(t, eng, caseID)
	_, err = eng.AddEvidence(ctx, caseID, "muddy boots", "Boots caked in garden soil.")
	require.NoError(t, err)
	_, err = eng.AddEvidence(ctx, caseID, "guest list", "No valet listed for the gala.")
	require.NoError(t, err)

	exam, err := eng.ExamBegin(ctx, caseID, "Valet", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, exam.Labels())

	_, err = eng.ExamPress(ctx, caseID, "a")
	require.NoError(t, err)

	// A miss costs a penalty that survives the process boundary.
	miss, err := eng.ExamPresent(ctx, caseID, "A", "guest list")
	require.NoError(t, err)
	require.False(t, miss.Correct)
	require.Equal(t, 1, miss.Penalties)

	report, err := eng.ExamStatus(ctx, caseID)
	require.NoError(t, err)
	require.Equal(t, 1, report.Penalties)
	require.Equal(t, models.ExamStatusActive, report.Status)

	hit, err := eng.ExamPresent(ctx, caseID, "B", "muddy boots")
	require.NoError(t, err)
	require.True(t, hit.Correct)
	require.True(t, hit.Victory, "exposing the only critical statement wins")

	report, err = eng.ExamStatus(ctx, caseID)
	require.NoError(t, err)
	require.Equal(t, models.ExamStatusVictory, report.Status)

	_, err = eng.ExamEnd(ctx, caseID)
	require.ErrorIs(t, err, trial.ErrExamOver)
}

func TestExamExhaustion(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, nil)
	caseID := newGalaCase(t, eng)
	advanceToTrial(t, eng, caseID)

	_, err := eng.AddEvidence(ctx, caseID, "guest list", "No valet listed for the gala.")
	require.NoError(t, err)
	_, err = eng.ExamBegin(ctx, caseID, "Valet", nil)
	require.NoError(t, err)

	var last *trial.PresentResult
	for range trial.MaxPenalties {
		last, err = eng.ExamPresent(ctx, caseID, "A", "guest list")
		require.NoError(t, err)
	}
	require.True(t, last.Exhausted)
	require.Equal(t, models.ExamStatusExhausted, last.Status)

	// The defeat is persisted; further actions point at save restoration.
	_, err = eng.ExamPress(ctx, caseID, "A")
	require.ErrorIs(t, err, trial.ErrExhausted)
	_, err = eng.ExamPresent(ctx, caseID, "B", "guest list")
	require.ErrorIs(t, err, trial.ErrExhausted)
}

func TestSaveRestoreFlow(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, nil)
	caseID := newGalaCase(t, eng)

	_, err := eng.AddEvidence(ctx, caseID, "muddy boots", "Boots caked in garden soil.")
	require.NoError(t, err)

	_, err = eng.Save(ctx, caseID, "before-blunder")
	require.NoError(t, err)

	_, err = eng.AdjustTrust(ctx, caseID, "Valet", -10)
	require.NoError(t, err)

	result, err := eng.Restore(ctx, caseID, "before-blunder")
	require.NoError(t, err)
	require.Equal(t, "before-blunder", result.Artifact.Label)
	require.Equal(t, saves.BackupLabel, result.Backup.Label)

	summary, err := eng.Summary(ctx, caseID)
	require.NoError(t, err)
	require.Len(t, summary.Evidence, 1)
	require.Empty(t, summary.Characters, "post-save trust change rolled back")

	artifacts, err := eng.ListSaves(ctx, caseID)
	require.NoError(t, err)
	require.Len(t, artifacts, 2, "manual save plus automatic backup")

	_, err = eng.Restore(ctx, caseID, "never-saved")
	require.ErrorIs(t, err, saves.ErrSaveNotFound)

	removed, err := eng.CleanupSaves(ctx, caseID, 1)
	require.NoError(t, err)
	require.NotEmpty(t, removed)
}

func TestResume(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, cyclingSource(4, 11, 17, 2, 19, 8, 13))
	caseID := newGalaCase(t, eng)

	for i := range 7 {
		_, err := eng.Roll(ctx, caseID, i, "probe")
		require.NoError(t, err)
	}

	resume, err := eng.Resume(ctx, caseID)
	require.NoError(t, err)
	require.Equal(t, "The Midnight Gala", resume.Snapshot.CaseFacts.Title)
	require.Len(t, resume.RecentRolls, 5, "resume trims the dice log")
	require.Equal(t, 6, resume.RecentRolls[0].Modifier, "newest first")
	require.Nil(t, resume.Examination)
}

func TestSnapshotCommand(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, nil)
	caseID := newGalaCase(t, eng)

	snapshot, path, err := eng.Snapshot(ctx, caseID, []string{"who hired the valet?"}, "open with the boots")
	require.NoError(t, err)
	require.NotEmpty(t, path)
	require.Equal(t, []string{"who hired the valet?"}, snapshot.OpenThreads)
	require.Equal(t, "open with the boots", snapshot.Strategy)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	ctx := context.TODO()
	eng := newTestEngine(t, nil)
	caseID := newGalaCase(t, eng)

	_, err := eng.Resolve(ctx, caseID)
	require.ErrorIs(t, err, gates.ErrNotInTrial)

	advanceToTrial(t, eng, caseID)

	c, err := eng.Resolve(ctx, caseID)
	require.NoError(t, err)
	require.Equal(t, models.PhaseComplete, c.Investigation.Phase)

	_, err = eng.Resolve(ctx, caseID)
	require.ErrorIs(t, err, gates.ErrCaseClosed)
}
