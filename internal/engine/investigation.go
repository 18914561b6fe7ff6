package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/gates"
	"github.com/myrjola/docket/internal/ledger"
	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/saves"
)

// StartGate moves a pending gate to in_progress.
func (e *Engine) StartGate(ctx context.Context, caseID, gate string) (*models.Gate, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	started, err := gates.Start(&c.Investigation, gate, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	e.logger.LogAttrs(ctx, slog.LevelInfo, "gate started",
		slog.String("case_id", caseID),
		slog.String("gate", gate),
	)

	return started, nil
}

// CompleteResult is the effect of completing a gate, including the narrative
// snapshot emitted at the boundary.
type CompleteResult struct {
	*gates.Result
	SnapshotPath string `json:"snapshot_path,omitempty"`
}

// CompleteGate completes a gate, persists the progression, and emits a
// narrative snapshot. The snapshot is advisory: failing to write it logs a
// warning but never fails the completion.
func (e *Engine) CompleteGate(ctx context.Context, caseID, gate string) (*CompleteResult, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := gates.Complete(&c.Investigation, c.Backbone.Tier, gate, now)
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	if result.PhaseChanged {
		e.logger.LogAttrs(ctx, slog.LevelInfo, "case moved to trial",
			slog.String("case_id", caseID),
			slog.Int("completed_investigation", result.CompletedInvestigation),
			slog.Int("trigger", result.TrialTrigger),
		)
	}

	snapshotPath, err := e.saves.WriteSnapshot(ctx, c, saves.BuildSnapshot(c, gate, nil, "", now))
	if err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "narrative snapshot failed",
			slog.String("case_id", caseID),
			slog.String("gate", gate),
			errors.SlogError(err),
		)
		snapshotPath = ""
	}

	return &CompleteResult{Result: result, SnapshotPath: snapshotPath}, nil
}

// AddEvidence records a discovered piece of evidence.
func (e *Engine) AddEvidence(ctx context.Context, caseID, name, description string) (*models.Evidence, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	evidence, err := ledger.AddEvidence(&c.Investigation, name, description, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	return evidence, nil
}

// Evidence lists the case's discovered evidence in discovery order.
func (e *Engine) Evidence(ctx context.Context, caseID string) ([]models.Evidence, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return c.Investigation.Evidence, nil
}

// Interview appends to a character's interview history, creating the
// character on first reference.
func (e *Engine) Interview(ctx context.Context, caseID, character, topic string) (*models.Character, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	interviewed, err := ledger.RecordInterview(&c.Investigation, character, topic, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	return interviewed, nil
}

// AdjustTrust shifts a character's trust by a signed delta.
func (e *Engine) AdjustTrust(ctx context.Context, caseID, character string, delta int) (*models.Character, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	adjusted, err := ledger.AdjustTrust(&c.Investigation, character, delta)
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	return adjusted, nil
}

// AddNote records a free-text investigation note.
func (e *Engine) AddNote(ctx context.Context, caseID, text string) (*models.Note, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	note, err := ledger.AddNote(&c.Investigation, text, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	return note, nil
}

// Move changes the current location.
func (e *Engine) Move(ctx context.Context, caseID, location string) (string, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return "", err
	}

	if err = ledger.MoveTo(&c.Investigation, c.Backbone, location); err != nil {
		return "", err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return "", err
	}

	return c.Investigation.Location, nil
}
