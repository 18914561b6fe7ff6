// Package engine orchestrates case operations behind one facade: load the
// case from the store, apply domain logic, persist, report. The command-line
// surface and the MCP server both drive this package; neither touches the
// domain packages directly.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/docket/internal/casefile"
	"github.com/myrjola/docket/internal/dice"
	"github.com/myrjola/docket/internal/gates"
	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/namegen"
	"github.com/myrjola/docket/internal/saves"
	"github.com/myrjola/docket/internal/trial"
)

type Engine struct {
	store  *casefile.Store
	saves  *saves.Manager
	roller *dice.Roller
	names  *namegen.Generator
	logger *slog.Logger
}

func New(store *casefile.Store, roller *dice.Roller, names *namegen.Generator, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		saves:  saves.NewManager(store, logger),
		roller: roller,
		names:  names,
		logger: logger.With("source", "engine.Engine"),
	}
}

// NewCase scaffolds a case. An untitled backbone takes the case ID as its
// title, and a backbone without authored gates receives the stock gate
// structure for its tier. Tier-1 cases have no investigation gates to
// complete, so they are born in the trial phase.
func (e *Engine) NewCase(ctx context.Context, caseID string, backbone models.Backbone) (*models.Case, error) {
	if backbone.Title == "" {
		backbone.Title = caseID
	}
	if len(backbone.Gates) == 0 {
		backbone.Gates = gates.DefaultGates(backbone.Tier)
	}

	c, err := e.store.Create(ctx, caseID, backbone)
	if err != nil {
		return nil, err
	}

	if gates.RecomputePhase(&c.Investigation, backbone.Tier) {
		if err = e.store.Save(ctx, c); err != nil {
			return nil, err
		}
		e.logger.LogAttrs(ctx, slog.LevelInfo, "case opened at trial",
			slog.String("case_id", caseID),
			slog.Int("tier", backbone.Tier),
		)
	}

	return c, nil
}

// Resolve closes a case that has reached the trial phase.
func (e *Engine) Resolve(ctx context.Context, caseID string) (*models.Case, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if err = gates.Resolve(&c.Investigation); err != nil {
		return nil, err
	}
	if err = e.store.Save(ctx, c); err != nil {
		return nil, err
	}

	e.logger.LogAttrs(ctx, slog.LevelInfo, "case resolved", slog.String("case_id", caseID))

	return c, nil
}

// Status is the machine-oriented projection of a case.
type Status struct {
	CaseID                 string        `json:"case_id"`
	Title                  string        `json:"title"`
	Tier                   int           `json:"tier"`
	Phase                  models.Phase  `json:"phase"`
	Location               string        `json:"location,omitempty"`
	Gates                  []models.Gate `json:"gates"`
	ActiveGate             string        `json:"active_gate,omitempty"`
	CompletedInvestigation int           `json:"completed_investigation"`
	TrialTrigger           int           `json:"trial_trigger"`
	EvidenceCount          int           `json:"evidence_count"`
	CharacterCount         int           `json:"character_count"`
	NoteCount              int           `json:"note_count"`
	RollCount              int           `json:"roll_count"`
	Examination            *trial.Report `json:"examination,omitempty"`
}

// Summary adds the ledgers to the status for a narrative digest.
type Summary struct {
	Status
	Evidence   []models.Evidence  `json:"evidence,omitempty"`
	Characters []models.Character `json:"characters,omitempty"`
	Notes      []models.Note      `json:"notes,omitempty"`
}

// ResumeContext re-primes a narrator that lost its conversation context:
// the narrative snapshot of where the story stands plus the recent
// mechanical record.
type ResumeContext struct {
	Snapshot        models.Snapshot         `json:"snapshot"`
	Examination     *trial.Report           `json:"examination,omitempty"`
	RecentRolls     []models.Roll           `json:"recent_rolls,omitempty"`
	RecentTestimony []models.TestimonyEvent `json:"recent_testimony,omitempty"`
}

const (
	resumeRolls     = 5
	resumeTestimony = 10
)

func (e *Engine) Status(ctx context.Context, caseID string) (*Status, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return e.status(c), nil
}

func (e *Engine) Summary(ctx context.Context, caseID string) (*Summary, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Status:     *e.status(c),
		Evidence:   c.Investigation.Evidence,
		Characters: c.Investigation.Characters,
		Notes:      c.Investigation.Notes,
	}, nil
}

func (e *Engine) Resume(ctx context.Context, caseID string) (*ResumeContext, error) {
	c, err := e.store.Load(ctx, caseID)
	if err != nil {
		return nil, err
	}

	testimony := c.Trial.Testimony
	if len(testimony) > resumeTestimony {
		testimony = testimony[len(testimony)-resumeTestimony:]
	}

	return &ResumeContext{
		Snapshot:        saves.BuildSnapshot(c, c.Investigation.ActiveGate(), nil, "", time.Now().UTC()),
		Examination:     examReport(c),
		RecentRolls:     dice.Recent(c.Dice, resumeRolls),
		RecentTestimony: testimony,
	}, nil
}

func (e *Engine) status(c *models.Case) *Status {
	return &Status{
		CaseID:                 c.ID,
		Title:                  c.Backbone.Title,
		Tier:                   c.Backbone.Tier,
		Phase:                  c.Investigation.Phase,
		Location:               c.Investigation.Location,
		Gates:                  c.Investigation.Gates,
		ActiveGate:             c.Investigation.ActiveGate(),
		CompletedInvestigation: c.Investigation.CompletedCount(models.GateKindInvestigation),
		TrialTrigger:           gates.TrialTrigger(c.Backbone.Tier),
		EvidenceCount:          len(c.Investigation.Evidence),
		CharacterCount:         len(c.Investigation.Characters),
		NoteCount:              len(c.Investigation.Notes),
		RollCount:              len(c.Dice.Rolls),
		Examination:            examReport(c),
	}
}

// examReport is the nil-safe projection of the trial document.
func examReport(c *models.Case) *trial.Report {
	if c.Trial.Examination == nil {
		return nil
	}
	report, err := trial.Check(&c.Trial)
	if err != nil {
		return nil
	}
	return report
}
