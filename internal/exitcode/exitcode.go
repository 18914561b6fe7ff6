// Package exitcode maps domain errors to process exit codes so a scripted
// narrator can branch on a failed command without parsing stderr.
package exitcode

import (
	"github.com/myrjola/docket/internal/casefile"
	"github.com/myrjola/docket/internal/config"
	"github.com/myrjola/docket/internal/engine"
	"github.com/myrjola/docket/internal/envstruct"
	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/gates"
	"github.com/myrjola/docket/internal/ledger"
	"github.com/myrjola/docket/internal/namegen"
	"github.com/myrjola/docket/internal/random"
	"github.com/myrjola/docket/internal/saves"
	"github.com/myrjola/docket/internal/trial"
)

// Usage is reserved for command-line usage errors; From never returns it.
const (
	OK                = 0
	Failure           = 1
	Usage             = 2
	NotFound          = 3
	Duplicate         = 4
	InvalidTransition = 5
	Validation        = 6
	Exhausted         = 7
	Corrupted         = 8
)

// From resolves the exit code for an error by walking its wrap chain.
// Unrecognized errors report the generic failure code.
func From(err error) int {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, trial.ErrExhausted):
		return Exhausted
	case errors.Is(err, casefile.ErrCorrupted):
		return Corrupted
	case isAny(err,
		casefile.ErrNotFound,
		gates.ErrUnknownGate,
		ledger.ErrEvidenceNotFound,
		ledger.ErrCharacterNotFound,
		trial.ErrUnknownWitness,
		trial.ErrUnknownStatement,
		saves.ErrSaveNotFound,
	):
		return NotFound
	case isAny(err,
		casefile.ErrAlreadyExists,
		ledger.ErrDuplicateEvidence,
		ledger.ErrDuplicateCharacter,
		trial.ErrExamActive,
	):
		return Duplicate
	case isAny(err,
		gates.ErrAlreadyStarted,
		gates.ErrAlreadyCompleted,
		gates.ErrNotInTrial,
		gates.ErrCaseClosed,
		trial.ErrNoExam,
		trial.ErrExamOver,
	):
		return InvalidTransition
	case isAny(err,
		casefile.ErrInvalidDocument,
		casefile.ErrInvalidName,
		envstruct.ErrEnvNotSet,
		envstruct.ErrInvalidValue,
		config.ErrUnknownLogLevel,
		ledger.ErrEmptyName,
		ledger.ErrEmptyNote,
		ledger.ErrUnknownLocation,
		trial.ErrNoContradiction,
		saves.ErrInvalidKeep,
		random.ErrInvalidSides,
		namegen.ErrNoSurname,
		engine.ErrSpoilersNotAcknowledged,
	):
		return Validation
	default:
		return Failure
	}
}

func isAny(err error, sentinels ...error) bool {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
