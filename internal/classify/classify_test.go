package classify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myrjola/docket/internal/classify"
)

func TestEvaluateIsDeterministic(t *testing.T) {
	t.Parallel()

	first := classify.Evaluate("Beatrice Holt", "business rival", 2)
	for range 10 {
		require.Equal(t, first, classify.Evaluate("Beatrice Holt", "business rival", 2))
	}

	require.Equal(t, first.Culprit, first.Fraction < first.Probability)
}

func TestEvaluateInputsChangeTheOutcome(t *testing.T) {
	t.Parallel()

	base := classify.Evaluate("Beatrice Holt", "business rival", 2)

	differentName := classify.Evaluate("Beatrice Holm", "business rival", 2)
	require.NotEqual(t, base.Fraction, differentName.Fraction)

	differentHint := classify.Evaluate("Beatrice Holt", "journalist", 2)
	require.NotEqual(t, base.Fraction, differentHint.Fraction)

	differentTier := classify.Evaluate("Beatrice Holt", "business rival", 3)
	require.NotEqual(t, base.Fraction, differentTier.Fraction)
}

func TestFractionBounds(t *testing.T) {
	t.Parallel()

	names := []string{"Ada", "Brennan Voss", "Cordelia Nightingale-Pryce", "d", ""}
	for _, name := range names {
		fraction := classify.Fraction(name, "witness", 1)
		require.GreaterOrEqual(t, fraction, 0.0, "name %q", name)
		require.Less(t, fraction, 1.0, "name %q", name)
	}
}

func TestBaseProbability(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 0.50, classify.BaseProbability(1), 1e-9)
	require.InDelta(t, 1.0/3.0, classify.BaseProbability(2), 1e-9)
	require.InDelta(t, 0.25, classify.BaseProbability(3), 1e-9)
}

func TestRoleWeight(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		roleHint string
		want     float64
	}{
		{name: "exact high authority", roleHint: "detective", want: 0.3},
		{name: "exact normal", roleHint: "witness", want: 1.0},
		{name: "exact high suspicion", roleHint: "business rival", want: 1.8},
		{name: "case and whitespace insensitive", roleHint: "  Detective ", want: 0.3},
		{name: "partial match inside longer hint", roleHint: "chief of police", want: 0.3},
		{name: "partial match of suspicious role", roleHint: "night security lead", want: 1.8},
		{name: "empty hint is neutral", roleHint: "", want: 1.0},
		{name: "unknown hint is neutral", roleHint: "astronaut", want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.InDelta(t, tt.want, classify.RoleWeight(tt.roleHint), 1e-9)
		})
	}
}

func TestProbabilityIsCapped(t *testing.T) {
	t.Parallel()

	hints := []string{"", "detective", "witness", "business rival", "family"}
	for tier := 1; tier <= 3; tier++ {
		for _, hint := range hints {
			probability := classify.Probability(hint, tier)
			require.Greater(t, probability, 0.0)
			require.LessOrEqual(t, probability, 0.95)
		}
	}

	// Suspicion raises and authority lowers the odds within a tier.
	require.Greater(t,
		classify.Probability("business rival", 2),
		classify.Probability("witness", 2),
	)
	require.Less(t,
		classify.Probability("judge", 2),
		classify.Probability("witness", 2),
	)
}

func TestRoleNames(t *testing.T) {
	t.Parallel()

	culprit := classify.Outcome{Culprit: true}
	require.Equal(t, "culprit", culprit.Role())

	herring := classify.Outcome{Culprit: false}
	require.Equal(t, "red_herring", herring.Role())
}
