package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/saves"
)

// Save captures the case's current state in a new labeled artifact.
func (e *Engine) Save(ctx context.Context, caseID, label string) (*models.SaveArtifact, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return e.saves.Save(ctx, c, label, time.Now().UTC())
}

// RestoreResult reports a completed rollback and the safety save taken
// beforehand.
type RestoreResult struct {
	Artifact *models.SaveArtifact `json:"artifact"`
	Backup   *models.SaveArtifact `json:"backup"`
}

// Restore rolls the case back to the most recent artifact with the label.
// The pre-restore state is captured in an automatic backup first, so even a
// rollback can be rolled back.
func (e *Engine) Restore(ctx context.Context, caseID, label string) (*RestoreResult, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	backup, err := e.saves.Backup(ctx, c, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	artifact, err := e.saves.Restore(ctx, c, label)
	if err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	e.logger.LogAttrs(ctx, slog.LevelInfo, "case rolled back",
		slog.String("case_id", caseID),
		slog.String("label", label),
		slog.String("backup_id", backup.ID),
	)

	return &RestoreResult{Artifact: artifact, Backup: backup}, nil
}

// ListSaves returns the case's save artifacts, newest first.
func (e *Engine) ListSaves(ctx context.Context, caseID string) ([]models.SaveArtifact, error) {
	if _, err := e.store.Load(ctx, caseID); err != nil {
		return nil, err
	}

	return e.saves.List(ctx, caseID)
}

// CleanupSaves removes all but the keep most recent save artifacts.
func (e *Engine) CleanupSaves(ctx context.Context, caseID string, keep int) ([]string, error) {
	if _, err := e.store.Load(ctx, caseID); err != nil {
		return nil, err
	}

	return e.saves.Cleanup(ctx, caseID, keep)
}

// Snapshot emits a manual narrative snapshot. Threads and strategy are
// narrator-supplied; empty threads are derived from the unresolved state.
func (e *Engine) Snapshot(ctx context.Context, caseID string, threads []string, strategy string) (models.Snapshot, string, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return models.Snapshot{}, "", err
	}

	snapshot := saves.BuildSnapshot(c, "", threads, strategy, time.Now().UTC())
	path, err := e.saves.WriteSnapshot(ctx, c, snapshot)
	if err != nil {
		return models.Snapshot{}, "", err
	}

	return snapshot, path, nil
}
