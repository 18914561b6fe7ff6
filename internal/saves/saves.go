// Package saves manages save artifacts and narrative snapshots. Every save
// writes a new timestamped artifact; restore is a hard rollback to the most
// recent artifact carrying a label.
package saves

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/myrjola/docket/internal/casefile"
	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/models"
)

var (
	ErrSaveNotFound = errors.NewSentinel("save artifact not found")
	ErrInvalidKeep  = errors.NewSentinel("cleanup must keep a non-negative number of artifacts")
)

// BackupLabel is the label used for automatic safety saves.
const BackupLabel = "backup"

// Manager reads and writes save artifacts under a case's saves directory.
type Manager struct {
	store  *casefile.Store
	logger *slog.Logger
}

func NewManager(store *casefile.Store, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger.With("source", "saves.Manager"),
	}
}

// Save captures the case's full mutable state in a new artifact. Labels are
// descriptive and may repeat; every call produces a distinct file.
func (m *Manager) Save(ctx context.Context, c *models.Case, label string, now time.Time) (*models.SaveArtifact, error) {
	if !casefile.ValidName.MatchString(label) {
		return nil, errors.Wrap(casefile.ErrInvalidName, "validate save label", slog.String("label", label))
	}

	artifact := models.SaveArtifact{
		ID:            uuid.NewString(),
		Label:         label,
		Phase:         c.Investigation.Phase,
		ActiveGate:    c.Investigation.ActiveGate(),
		Investigation: c.Investigation,
		Trial:         c.Trial,
		Dice:          c.Dice,
		CreatedAt:     now,
	}

	name := label + "-" + now.UTC().Format("20060102T150405") + "-" + artifact.ID[:8] + ".json"
	path := filepath.Join(m.store.SavesDir(c.ID), name)
	if err := casefile.WriteJSON(path, artifact); err != nil {
		return nil, err
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "save artifact written",
		slog.String("case_id", c.ID),
		slog.String("label", label),
		slog.String("path", path),
	)

	return &artifact, nil
}

// Backup writes an automatic safety save.
func (m *Manager) Backup(ctx context.Context, c *models.Case, now time.Time) (*models.SaveArtifact, error) {
	return m.Save(ctx, c, BackupLabel, now)
}

// List returns the case's save artifacts, newest first.
func (m *Manager) List(ctx context.Context, caseID string) ([]models.SaveArtifact, error) {
	entries, err := m.listEntries(caseID)
	if err != nil {
		return nil, err
	}

	artifacts := make([]models.SaveArtifact, len(entries))
	for i, entry := range entries {
		artifacts[i] = entry.artifact
	}

	m.logger.LogAttrs(ctx, slog.LevelDebug, "save artifacts listed",
		slog.String("case_id", caseID),
		slog.Int("count", len(artifacts)),
	)

	return artifacts, nil
}

// Restore replaces the case's mutable state with the most recent artifact
// carrying the label. The caller persists the case afterwards.
func (m *Manager) Restore(ctx context.Context, c *models.Case, label string) (*models.SaveArtifact, error) {
	entries, err := m.listEntries(c.ID)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.artifact.Label != label {
			continue
		}

		restored := models.Case{
			ID:            c.ID,
			Backbone:      c.Backbone,
			Investigation: entry.artifact.Investigation,
			Trial:         entry.artifact.Trial,
			Dice:          entry.artifact.Dice,
		}
		if err = m.store.Validate(&restored); err != nil {
			return nil, errors.Wrap(err, "validate save artifact", slog.String("path", entry.path))
		}

		c.Investigation = entry.artifact.Investigation
		c.Trial = entry.artifact.Trial
		c.Dice = entry.artifact.Dice

		m.logger.LogAttrs(ctx, slog.LevelInfo, "save artifact restored",
			slog.String("case_id", c.ID),
			slog.String("label", label),
			slog.String("save_id", entry.artifact.ID),
		)

		return &entry.artifact, nil
	}

	return nil, errors.Wrap(ErrSaveNotFound, "restore save",
		slog.String("label", label),
		slog.String("known_labels", strings.Join(labels(entries), ", ")),
	)
}

// Cleanup removes the oldest artifacts beyond keep and returns the removed
// file names.
func (m *Manager) Cleanup(ctx context.Context, caseID string, keep int) ([]string, error) {
	if keep < 0 {
		return nil, errors.Wrap(ErrInvalidKeep, "cleanup saves", slog.Int("keep", keep))
	}

	entries, err := m.listEntries(caseID)
	if err != nil {
		return nil, err
	}
	if len(entries) <= keep {
		return nil, nil
	}

	var removed []string
	for _, entry := range entries[keep:] {
		if err = os.Remove(entry.path); err != nil {
			return removed, errors.Wrap(err, "remove save artifact", slog.String("path", entry.path))
		}
		removed = append(removed, filepath.Base(entry.path))
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "old save artifacts removed",
		slog.String("case_id", caseID),
		slog.Int("removed", len(removed)),
		slog.Int("kept", keep),
	)

	return removed, nil
}

type entry struct {
	artifact models.SaveArtifact
	path     string
}

// listEntries reads every artifact in the saves directory, newest first.
// A missing directory means no saves yet; an unreadable artifact is an error
// so that restores never guess.
func (m *Manager) listEntries(caseID string) ([]entry, error) {
	dir := m.store.SavesDir(caseID)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read saves directory", slog.String("dir", dir))
	}

	var entries []entry
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, dirEntry.Name())

		var artifact models.SaveArtifact
		if err = casefile.ReadJSON(path, &artifact); err != nil {
			return nil, err
		}
		entries = append(entries, entry{artifact: artifact, path: path})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].artifact.CreatedAt.Equal(entries[j].artifact.CreatedAt) {
			return entries[i].path > entries[j].path
		}
		return entries[i].artifact.CreatedAt.After(entries[j].artifact.CreatedAt)
	})

	return entries, nil
}

func labels(entries []entry) []string {
	seen := make(map[string]bool, len(entries))
	var out []string
	for _, entry := range entries {
		if !seen[entry.artifact.Label] {
			seen[entry.artifact.Label] = true
			out = append(out, entry.artifact.Label)
		}
	}
	return out
}
