package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/docket/internal/dice"
	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/ledger"
	"github.com/myrjola/docket/internal/models"
)

// Roll resolves a bare d20 roll and appends it to the case's dice log.
func (e *Engine) Roll(ctx context.Context, caseID string, modifier int, description string) (models.Roll, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return models.Roll{}, err
	}

	roll, err := e.roller.Roll(modifier, description, time.Now().UTC())
	if err != nil {
		return models.Roll{}, err
	}

	c.Dice.Rolls = append(c.Dice.Rolls, roll)
	if err = e.store.Save(ctx, c); err != nil {
		return models.Roll{}, err
	}

	return roll, nil
}

// CheckParams carries the narrator-facing inputs of an action check. TrustOf
// resolves a character's current trust from the ledger; Trust passes a band
// input directly and is ignored when TrustOf is set.
type CheckParams struct {
	Action     string
	Difficulty string
	Evidence   int
	TrustOf    string
	Trust      int
	Extra      int
	TargetDC   *int
}

// Check resolves an action check and appends it to the dice log with its
// full input breakdown.
func (e *Engine) Check(ctx context.Context, caseID string, params CheckParams) (models.Roll, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return models.Roll{}, err
	}

	trust := params.Trust
	if params.TrustOf != "" {
		character := c.Investigation.Character(params.TrustOf)
		if character == nil {
			return models.Roll{}, errors.Wrap(ledger.ErrCharacterNotFound, "resolve trust for check",
				slog.String("character", params.TrustOf))
		}
		trust = character.Trust
	}

	roll, err := e.roller.Check(dice.CheckInput{
		Action:     params.Action,
		Difficulty: params.Difficulty,
		Evidence:   params.Evidence,
		Trust:      trust,
		Extra:      params.Extra,
		TargetDC:   params.TargetDC,
	}, time.Now().UTC())
	if err != nil {
		return models.Roll{}, err
	}

	c.Dice.Rolls = append(c.Dice.Rolls, roll)
	if err = e.store.Save(ctx, c); err != nil {
		return models.Roll{}, err
	}

	return roll, nil
}

// RollHistory returns up to n rolls from the case's dice log, newest first.
func (e *Engine) RollHistory(ctx context.Context, caseID string, n int) ([]models.Roll, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return dice.Recent(c.Dice, n), nil
}
