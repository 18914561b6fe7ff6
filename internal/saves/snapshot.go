package saves

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/myrjola/docket/internal/casefile"
	"github.com/myrjola/docket/internal/models"
)

// BuildSnapshot denormalizes the case into a narrative-context document for
// the narrator. It contains story facts only: the hidden classification
// never appears in a snapshot.
func BuildSnapshot(c *models.Case, gate string, threads []string, strategy string, now time.Time) models.Snapshot {
	inv := &c.Investigation

	var completed, pending []string
	for _, g := range inv.Gates {
		switch g.Status {
		case models.GateStatusCompleted:
			completed = append(completed, g.Name)
		case models.GateStatusPending, models.GateStatusInProgress:
			pending = append(pending, g.Name)
		}
	}

	evidence := make([]models.EvidenceNote, len(inv.Evidence))
	for i, item := range inv.Evidence {
		evidence[i] = models.EvidenceNote{
			Name:         item.Name,
			Description:  item.Description,
			Significance: significance(c, item),
			DiscoveredAt: item.DiscoveredAt,
		}
	}

	characters := make([]models.CharacterDynamic, len(inv.Characters))
	for i, character := range inv.Characters {
		characters[i] = models.CharacterDynamic{
			Name:       character.Name,
			Trust:      character.Trust,
			Interviews: len(character.Interviews),
			RoleHint:   character.RoleHint,
		}
	}

	if len(threads) == 0 {
		threads = openThreads(inv)
	}

	return models.Snapshot{
		ID:    uuid.NewString(),
		Gate:  gate,
		Phase: inv.Phase,
		CaseFacts: models.CaseFacts{
			Title:          c.Backbone.Title,
			Location:       inv.Location,
			CompletedGates: completed,
			PendingGates:   pending,
		},
		Evidence:    evidence,
		Characters:  characters,
		OpenThreads: threads,
		Strategy:    strategy,
		CreatedAt:   now,
	}
}

// WriteSnapshot persists a snapshot under the case's snapshots directory and
// returns the file path. Snapshots are one-way: the engine never reads them
// back.
func (m *Manager) WriteSnapshot(ctx context.Context, c *models.Case, snapshot models.Snapshot) (string, error) {
	name := snapshot.Gate + "-" + snapshot.CreatedAt.UTC().Format("20060102T150405") + "-" + snapshot.ID[:8] + ".json"
	if snapshot.Gate == "" {
		name = "manual-" + snapshot.CreatedAt.UTC().Format("20060102T150405") + "-" + snapshot.ID[:8] + ".json"
	}
	path := filepath.Join(m.store.SnapshotsDir(c.ID), name)

	if err := casefile.WriteJSON(path, snapshot); err != nil {
		return "", err
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "narrative snapshot written",
		slog.String("case_id", c.ID),
		slog.String("gate", snapshot.Gate),
		slog.String("path", path),
	)

	return path, nil
}

// significance explains why a piece of evidence matters to the story:
// contradiction bindings name the testimony they break, everything else
// falls back to its discovery context.
func significance(c *models.Case, item models.Evidence) string {
	for _, witness := range c.Backbone.Witnesses {
		for _, statement := range witness.Statements {
			if statement.Contradiction == item.Name {
				return "contradicts " + witness.Name + "'s testimony"
			}
		}
	}
	if c.Trial.Examination != nil {
		for _, statement := range c.Trial.Examination.Statements {
			if statement.Contradiction == item.Name {
				return "contradicts " + c.Trial.Examination.Witness + "'s testimony"
			}
		}
	}
	if item.DiscoveredAt != "" {
		return "discovered during " + item.DiscoveredAt
	}
	return ""
}

// openThreads derives unresolved narrative threads when the narrator
// supplies none: gates still open and characters never interviewed.
func openThreads(inv *models.Investigation) []string {
	var threads []string
	for _, gate := range inv.Gates {
		if gate.Status != models.GateStatusCompleted {
			threads = append(threads, "gate "+gate.Name+" is unresolved")
		}
	}
	for _, character := range inv.Characters {
		if len(character.Interviews) == 0 {
			threads = append(threads, character.Name+" has not been interviewed")
		}
	}
	return threads
}
