package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/gates"
	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/trial"
)

// ExamBegin opens a cross-examination. Examinations belong to the courtroom:
// the case must have reached the trial phase.
func (e *Engine) ExamBegin(
	ctx context.Context,
	caseID, witness string,
	statements []models.BackboneStatement,
) (*models.Examination, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if c.Investigation.Phase != models.PhaseTrial {
		return nil, errors.Wrap(gates.ErrNotInTrial, "begin cross-examination",
			slog.String("phase", string(c.Investigation.Phase)))
	}

	exam, err := trial.Begin(&c.Trial, c.Backbone, witness, statements, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	e.logger.LogAttrs(ctx, slog.LevelInfo, "cross-examination begun",
		slog.String("case_id", caseID),
		slog.String("witness", exam.Witness),
		slog.Int("statements", len(exam.Statements)),
	)

	return exam, nil
}

// ExamPress presses a statement for elaboration. Zero risk, always logged.
func (e *Engine) ExamPress(ctx context.Context, caseID, label string) (*models.Statement, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	statement, err := trial.Press(&c.Trial, label, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	return statement, nil
}

// ExamPresent confronts a statement with evidence. Game outcomes, victory
// and exhaustion included, are reported in the result rather than as errors
// so that the state they produced is always persisted.
func (e *Engine) ExamPresent(ctx context.Context, caseID, label, evidence string) (*trial.PresentResult, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	result, err := trial.Present(&c.Trial, &c.Investigation, label, evidence, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	if result.Exhausted {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "cross-examination exhausted",
			slog.String("case_id", caseID),
			slog.String("witness", c.Trial.Examination.Witness),
			slog.Int("penalties", result.Penalties),
		)
	}

	return result, nil
}

// ExamStatus reports the progress of the current examination, active or
// finished.
func (e *Engine) ExamStatus(ctx context.Context, caseID string) (*trial.Report, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return trial.Check(&c.Trial)
}

// ExamEnd abandons the active examination without a verdict.
func (e *Engine) ExamEnd(ctx context.Context, caseID string) (*models.Examination, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	exam, err := trial.End(&c.Trial, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	return exam, nil
}
