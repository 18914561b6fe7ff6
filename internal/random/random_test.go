package random

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDieRoll(t *testing.T) {
	t.Parallel()

	for range 100 {
		face, err := DieRoll(20)
		require.NoError(t, err)
		require.GreaterOrEqual(t, face, 1)
		require.LessOrEqual(t, face, 20)
	}
}

func TestDieRollOneSide(t *testing.T) {
	t.Parallel()

	face, err := DieRoll(1)
	require.NoError(t, err)
	require.Equal(t, 1, face)
}

func TestDieRollInvalidSides(t *testing.T) {
	t.Parallel()

	_, err := DieRoll(0)
	require.ErrorIs(t, err, ErrInvalidSides)
}
