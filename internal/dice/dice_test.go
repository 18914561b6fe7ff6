package dice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/myrjola/docket/internal/dice"
	"github.com/myrjola/docket/internal/models"
)

// fixedSource returns the given faces in order and fails the test when the
// sequence runs out.
func fixedSource(t *testing.T, faces ...int) dice.Source {
	t.Helper()
	i := 0
	return func(sides int) (int, error) {
		require.Equal(t, 20, sides)
		require.Less(t, i, len(faces), "die source exhausted")
		face := faces[i]
		i++
		return face, nil
	}
}

func TestOutcomeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		natural int
		total   int
		want    dice.Outcome
	}{
		{name: "natural 20 beats negative modifiers", natural: 20, total: 8, want: dice.OutcomeCriticalSuccess},
		{name: "natural 1 beats positive modifiers", natural: 1, total: 15, want: dice.OutcomeCriticalFailure},
		{name: "total 18 and above", natural: 14, total: 18, want: dice.OutcomeCriticalSuccess},
		{name: "total 15 to 17", natural: 13, total: 16, want: dice.OutcomeGreatSuccess},
		{name: "total 12 to 14", natural: 11, total: 12, want: dice.OutcomeSuccess},
		{name: "total 8 to 11", natural: 9, total: 11, want: dice.OutcomePartialSuccess},
		{name: "total 5 to 7", natural: 6, total: 7, want: dice.OutcomeFailure},
		{name: "total 4 and below", natural: 3, total: 4, want: dice.OutcomeCriticalFailure},
		{name: "unclamped negative total", natural: 2, total: -5, want: dice.OutcomeCriticalFailure},
		{name: "unclamped high total", natural: 19, total: 27, want: dice.OutcomeCriticalSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, dice.OutcomeFor(tt.natural, tt.total))
		})
	}
}

func TestRoll(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	roller := dice.NewRoller(fixedSource(t, 11))

	roll, err := roller.Roll(3, "pick the lock", now)
	require.NoError(t, err)

	require.NotEmpty(t, roll.ID)
	require.Equal(t, 11, roll.Natural)
	require.Equal(t, 3, roll.Modifier)
	require.Equal(t, 14, roll.Total)
	require.Equal(t, "success", roll.Outcome)
	require.Equal(t, "pick the lock", roll.Description)
	require.Equal(t, now, roll.At)
	require.Nil(t, roll.Check)
}

func TestRollDistribution(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	roller := dice.NewRoller(nil)

	const trials = 2000
	counts := make(map[int]int, 20)
	for range trials {
		roll, err := roller.Roll(0, "", now)
		require.NoError(t, err)
		require.GreaterOrEqual(t, roll.Natural, 1)
		require.LessOrEqual(t, roll.Natural, 20)
		require.Equal(t, roll.Natural, roll.Total)
		counts[roll.Natural]++
	}

	// Expected count per face is 100. The bounds are over six standard
	// deviations out, so a fair die never trips them.
	for face := 1; face <= 20; face++ {
		require.Greater(t, counts[face], 40, "face %d rolled too rarely", face)
		require.Less(t, counts[face], 220, "face %d rolled too often", face)
	}
}

func TestDifficultyShift(t *testing.T) {
	t.Parallel()
	tests := []struct {
		difficulty string
		want       int
	}{
		{difficulty: "trivial", want: 5},
		{difficulty: "easy", want: 3},
		{difficulty: "moderate", want: 0},
		{difficulty: "hard", want: -2},
		{difficulty: "very_hard", want: -4},
		{difficulty: "nearly_impossible", want: -6},
		{difficulty: "", want: 0},
		{difficulty: "unheard_of", want: 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, dice.DifficultyShift(tt.difficulty), "difficulty %q", tt.difficulty)
	}
}

func TestEvidenceModifier(t *testing.T) {
	t.Parallel()
	require.Equal(t, 0, dice.EvidenceModifier(-1))
	require.Equal(t, 0, dice.EvidenceModifier(0))
	require.Equal(t, 2, dice.EvidenceModifier(2))
	require.Equal(t, 3, dice.EvidenceModifier(3))
	require.Equal(t, 3, dice.EvidenceModifier(9))
}

func TestTrustBand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		trust int
		want  int
	}{
		{trust: 12, want: 3},
		{trust: 8, want: 3},
		{trust: 7, want: 1},
		{trust: 1, want: 1},
		{trust: 0, want: 0},
		{trust: -1, want: -1},
		{trust: -3, want: -1},
		{trust: -4, want: -3},
		{trust: -50, want: -3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, dice.TrustBand(tt.trust), "trust %d", tt.trust)
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("combines all modifier components", func(t *testing.T) {
		t.Parallel()
		roller := dice.NewRoller(fixedSource(t, 10))

		roll, err := roller.Check(dice.CheckInput{
			Action:     "confront the valet",
			Difficulty: "hard",
			Evidence:   5,
			Trust:      9,
			Extra:      1,
		}, now)
		require.NoError(t, err)

		// hard -2, evidence capped +3, trust band +3, extra +1.
		require.Equal(t, 5, roll.Modifier)
		require.Equal(t, 15, roll.Total)
		require.Equal(t, "great_success", roll.Outcome)
		require.NotNil(t, roll.Check)
		require.Equal(t, "confront the valet", roll.Check.Action)
		require.Equal(t, 5, roll.Check.Evidence)
		require.Nil(t, roll.Check.TargetDC)
	})

	t.Run("skill check reports success and margin", func(t *testing.T) {
		t.Parallel()
		roller := dice.NewRoller(fixedSource(t, 12))
		targetDC := 14

		roll, err := roller.Check(dice.CheckInput{
			Action:   "decipher the ledger",
			Evidence: 1,
			TargetDC: &targetDC,
		}, now)
		require.NoError(t, err)

		require.Equal(t, 13, roll.Total)
		require.NotNil(t, roll.Check.Succeeded)
		require.False(t, *roll.Check.Succeeded)
		require.Equal(t, -1, *roll.Check.Margin)
	})

	t.Run("skill check success on exact DC", func(t *testing.T) {
		t.Parallel()
		roller := dice.NewRoller(fixedSource(t, 13))
		targetDC := 14

		roll, err := roller.Check(dice.CheckInput{
			Action:   "decipher the ledger",
			Evidence: 1,
			TargetDC: &targetDC,
		}, now)
		require.NoError(t, err)

		require.Equal(t, 14, roll.Total)
		require.True(t, *roll.Check.Succeeded)
		require.Equal(t, 0, *roll.Check.Margin)
	})
}

func TestRecent(t *testing.T) {
	t.Parallel()
	log := models.DiceLog{Rolls: []models.Roll{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}}

	recent := dice.Recent(log, 2)
	require.Len(t, recent, 2)
	require.Equal(t, "c", recent[0].ID)
	require.Equal(t, "b", recent[1].ID)

	require.Len(t, dice.Recent(log, 10), 3)
	require.Nil(t, dice.Recent(log, 0))
	require.Nil(t, dice.Recent(models.DiceLog{}, 5))
}
