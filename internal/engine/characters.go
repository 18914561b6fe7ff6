package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/docket/internal/classify"
	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/ledger"
	"github.com/myrjola/docket/internal/models"
)

var ErrSpoilersNotAcknowledged = errors.NewSentinel(
	"revealing hidden roles spoils the mystery; pass the spoiler acknowledgement to proceed")

// GenerateCharacter creates a fully profiled character with a unique name
// and records it in the ledger. A non-empty relative names an existing cast
// member the new character shares a surname with. The hidden role is not
// computed here: it is derived on demand and only ever disclosed through
// Reveal.
func (e *Engine) GenerateCharacter(ctx context.Context, caseID, roleHint, relative string) (*models.Character, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	profile, err := e.profileCharacter(c, roleHint, relative)
	if err != nil {
		return nil, err
	}
	character, err := ledger.AddCharacter(&c.Investigation, profile)
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	e.logger.LogAttrs(ctx, slog.LevelInfo, "character generated",
		slog.String("case_id", caseID),
		slog.String("character", character.Name),
		slog.String("role_hint", roleHint),
	)

	return character, nil
}

// profileCharacter draws a standalone profile, or a family member when a
// relative is named. The relative must already be in the cast so surnames
// stay canonical.
func (e *Engine) profileCharacter(c *models.Case, roleHint, relative string) (models.Character, error) {
	if relative == "" {
		return e.names.Character(&c.Investigation, roleHint), nil
	}

	found := c.Investigation.Character(relative)
	if found == nil {
		return models.Character{}, errors.Wrap(ledger.ErrCharacterNotFound, "generate family member",
			slog.String("relative", relative))
	}

	return e.names.FamilyMember(&c.Investigation, found.Name, roleHint)
}

// Reveal discloses a character's hidden role. Disclosure requires the
// spoiler acknowledgement and leaves an audit record on the case; the
// outcome itself is never persisted.
func (e *Engine) Reveal(ctx context.Context, caseID, character string, ack bool) (*classify.Outcome, error) {
	if !ack {
		return nil, errors.Wrap(ErrSpoilersNotAcknowledged, "reveal classification",
			slog.String("character", character))
	}

	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	found := c.Investigation.Character(character)
	if found == nil {
		return nil, errors.Wrap(ledger.ErrCharacterNotFound, "reveal classification",
			slog.String("character", character))
	}

	outcome := classify.Evaluate(found.Name, found.RoleHint, c.Backbone.Tier)

	c.Investigation.Reveals = append(c.Investigation.Reveals, models.Reveal{
		Character: found.Name,
		At:        time.Now().UTC(),
	})
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	e.logger.LogAttrs(ctx, slog.LevelWarn, "hidden role revealed",
		slog.String("case_id", caseID),
		slog.String("character", found.Name),
	)

	return &outcome, nil
}

// ClassificationStats summarizes the hidden-role distribution of a case.
// Identities and counts appear only when the spoiler acknowledgement is
// given; without it the stats carry the expected rate alone.
type ClassificationStats struct {
	Tier            int                `json:"tier"`
	TotalCharacters int                `json:"total_characters"`
	ExpectedRate    float64            `json:"expected_rate"`
	Revealed        bool               `json:"revealed"`
	Culprits        int                `json:"culprits"`
	RedHerrings     int                `json:"red_herrings"`
	Outcomes        []classify.Outcome `json:"outcomes,omitempty"`
}

// Stats reports the classification statistics. With the acknowledgement it
// discloses every character's outcome, auditing each disclosure the same way
// Reveal does.
func (e *Engine) Stats(ctx context.Context, caseID string, ack bool) (*ClassificationStats, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	stats := &ClassificationStats{
		Tier:            c.Backbone.Tier,
		TotalCharacters: len(c.Investigation.Characters),
		ExpectedRate:    classify.BaseProbability(c.Backbone.Tier),
		Revealed:        ack,
	}
	if !ack {
		return stats, nil
	}

	now := time.Now().UTC()
	for _, character := range c.Investigation.Characters {
		outcome := classify.Evaluate(character.Name, character.RoleHint, c.Backbone.Tier)
		stats.Outcomes = append(stats.Outcomes, outcome)
		if outcome.Culprit {
			stats.Culprits++
		} else {
			stats.RedHerrings++
		}
		c.Investigation.Reveals = append(c.Investigation.Reveals, models.Reveal{
			Character: character.Name,
			At:        now,
		})
	}

	if len(c.Investigation.Characters) > 0 {
		if err = e.store.Save(ctx, c); err != nil {
			return nil, err
		}
		e.logger.LogAttrs(ctx, slog.LevelWarn, "hidden roles revealed in bulk",
			slog.String("case_id", caseID),
			slog.Int("characters", stats.TotalCharacters),
		)
	}

	return stats, nil
}
