// Package random draws from crypto/rand. The dice engine injects a seeded
// source in tests; production rolls come from here.
package random

import (
	"crypto/rand"
	"math/big"

	"github.com/myrjola/docket/internal/errors"
)

var ErrInvalidSides = errors.NewSentinel("die must have at least one side")

// DieRoll returns a uniformly random face of a die with the given number of
// sides, in the range [1, sides].
func DieRoll(sides int) (int, error) {
	if sides < 1 {
		return 0, errors.Wrap(ErrInvalidSides, "roll die")
	}

	face, err := rand.Int(rand.Reader, big.NewInt(int64(sides)))
	if err != nil {
		return 0, errors.Wrap(err, "draw random face")
	}

	return int(face.Int64()) + 1, nil
}
