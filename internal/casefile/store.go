// Package casefile persists case state as human-inspectable documents under
// one directory per case. The authored backbone lives in case.yaml; mutable
// state lives in JSON documents that are replaced atomically on every save.
package casefile

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/models"
)

var (
	ErrNotFound        = errors.NewSentinel("case not found")
	ErrAlreadyExists   = errors.NewSentinel("case already exists")
	ErrCorrupted       = errors.NewSentinel("case document corrupted")
	ErrInvalidDocument = errors.NewSentinel("case document failed validation")
	ErrInvalidName     = errors.NewSentinel("name must contain only letters, digits, hyphens, and underscores")
)

// ValidName matches identifiers that are safe to use as file names, such as
// case IDs and save labels.
var ValidName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const (
	backboneFile      = "case.yaml"
	stateDir          = "state"
	investigationFile = "investigation.json"
	trialFile         = "trial.json"
	diceFile          = "dice.json"
	savesDir          = "saves"
	snapshotsDir      = "snapshots"
)

// Store reads and writes cases under a root directory.
type Store struct {
	root     string
	logger   *slog.Logger
	validate *validator.Validate
}

func NewStore(root string, logger *slog.Logger) *Store {
	return &Store{
		root:     root,
		logger:   logger.With("source", "casefile.Store"),
		validate: validator.New(),
	}
}

// CaseDir returns the directory holding the given case.
func (s *Store) CaseDir(caseID string) string {
	return filepath.Join(s.root, caseID)
}

// SavesDir returns the directory holding the case's save artifacts.
func (s *Store) SavesDir(caseID string) string {
	return filepath.Join(s.root, caseID, savesDir)
}

// SnapshotsDir returns the directory holding the case's narrative snapshots.
func (s *Store) SnapshotsDir(caseID string) string {
	return filepath.Join(s.root, caseID, snapshotsDir)
}

// Exists reports whether a case with the given ID has been created.
func (s *Store) Exists(caseID string) bool {
	_, err := os.Stat(filepath.Join(s.CaseDir(caseID), backboneFile))
	return err == nil
}

// Create scaffolds the case directory with the given backbone and a fresh
// investigation document seeded from it.
func (s *Store) Create(ctx context.Context, caseID string, backbone models.Backbone) (*models.Case, error) {
	if !ValidName.MatchString(caseID) {
		return nil, errors.Wrap(ErrInvalidName, "validate case id", slog.String("case_id", caseID))
	}
	if err := s.validateBackbone(backbone); err != nil {
		return nil, err
	}
	if s.Exists(caseID) {
		return nil, errors.Wrap(ErrAlreadyExists, "create case", slog.String("case_id", caseID))
	}

	for _, dir := range []string{
		filepath.Join(s.CaseDir(caseID), stateDir),
		s.SavesDir(caseID),
		s.SnapshotsDir(caseID),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create case directory", slog.String("dir", dir))
		}
	}

	data, err := yaml.Marshal(backbone)
	if err != nil {
		return nil, errors.Wrap(err, "marshal backbone", slog.String("case_id", caseID))
	}
	backbonePath := filepath.Join(s.CaseDir(caseID), backboneFile)
	if err = os.WriteFile(backbonePath, data, 0o644); err != nil {
		return nil, errors.Wrap(err, "write backbone", slog.String("path", backbonePath))
	}

	c := &models.Case{
		ID:            caseID,
		Backbone:      backbone,
		Investigation: NewInvestigation(backbone, time.Now().UTC()),
		Trial:         models.Trial{},
		Dice:          models.DiceLog{},
	}
	if err = s.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "case created",
		slog.String("case_id", caseID),
		slog.Int("tier", backbone.Tier),
		slog.Int("gates", len(backbone.Gates)),
	)

	return c, nil
}

// NewInvestigation builds the initial investigation document for a backbone:
// every gate pending, empty ledgers, and the first authored location.
func NewInvestigation(backbone models.Backbone, now time.Time) models.Investigation {
	gates := make([]models.Gate, len(backbone.Gates))
	for i, gate := range backbone.Gates {
		gates[i] = models.Gate{
			Name:   gate.Name,
			Kind:   gate.Kind,
			Status: models.GateStatusPending,
		}
	}

	location := ""
	if len(backbone.Locations) > 0 {
		location = backbone.Locations[0]
	}

	return models.Investigation{
		Phase:     models.PhaseInvestigation,
		Gates:     gates,
		Location:  location,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Load reconstructs the case aggregate from disk. Missing state documents
// initialize to safe defaults; a missing backbone means the case does not
// exist.
func (s *Store) Load(ctx context.Context, caseID string) (*models.Case, error) {
	if !ValidName.MatchString(caseID) {
		return nil, errors.Wrap(ErrInvalidName, "validate case id", slog.String("case_id", caseID))
	}

	backbone, err := s.loadBackbone(caseID)
	if err != nil {
		return nil, err
	}

	c := &models.Case{
		ID:            caseID,
		Backbone:      backbone,
		Investigation: models.Investigation{},
		Trial:         models.Trial{},
		Dice:          models.DiceLog{},
	}

	statePath := filepath.Join(s.CaseDir(caseID), stateDir)
	if err = ReadJSON(filepath.Join(statePath, investigationFile), &c.Investigation); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		c.Investigation = NewInvestigation(backbone, time.Now().UTC())
	}
	if err = ReadJSON(filepath.Join(statePath, trialFile), &c.Trial); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		c.Trial = models.Trial{}
	}
	if err = ReadJSON(filepath.Join(statePath, diceFile), &c.Dice); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		c.Dice = models.DiceLog{}
	}

	if err = s.Validate(c); err != nil {
		return nil, err
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "case loaded", slog.String("case_id", caseID))

	return c, nil
}

// Save atomically replaces the case's mutable state documents.
func (s *Store) Save(ctx context.Context, c *models.Case) error {
	c.Investigation.UpdatedAt = time.Now().UTC()

	statePath := filepath.Join(s.CaseDir(c.ID), stateDir)
	if err := WriteJSON(filepath.Join(statePath, investigationFile), c.Investigation); err != nil {
		return err
	}
	if err := WriteJSON(filepath.Join(statePath, trialFile), c.Trial); err != nil {
		return err
	}
	if err := WriteJSON(filepath.Join(statePath, diceFile), c.Dice); err != nil {
		return err
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "case saved", slog.String("case_id", c.ID))

	return nil
}

func (s *Store) loadBackbone(caseID string) (models.Backbone, error) {
	var backbone models.Backbone

	path := filepath.Join(s.CaseDir(caseID), backboneFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return backbone, errors.Wrap(ErrNotFound, "load backbone", slog.String("case_id", caseID))
		}
		return backbone, errors.Wrap(err, "read backbone", slog.String("path", path))
	}

	if err = yaml.Unmarshal(data, &backbone); err != nil {
		return backbone, errors.Wrap(ErrInvalidDocument, "parse backbone",
			slog.String("path", path),
			slog.String("parse_error", err.Error()),
		)
	}
	if err = s.validateBackbone(backbone); err != nil {
		return backbone, err
	}

	return backbone, nil
}

func (s *Store) validateBackbone(backbone models.Backbone) error {
	if err := s.validate.Struct(backbone); err != nil {
		return errors.Wrap(ErrInvalidDocument, "validate backbone", slog.String("detail", err.Error()))
	}

	seen := make(map[string]bool, len(backbone.Gates))
	for _, gate := range backbone.Gates {
		if seen[gate.Name] {
			return errors.Wrap(ErrInvalidDocument, "validate backbone",
				slog.String("detail", "duplicate gate name"),
				slog.String("gate", gate.Name),
			)
		}
		seen[gate.Name] = true
	}

	return nil
}

// Validate checks the case's documents against their schemas and the ledger
// uniqueness invariants. Load runs it on every read; restore runs it before
// replacing state with a save artifact.
func (s *Store) Validate(c *models.Case) error {
	if err := s.validate.Struct(c.Investigation); err != nil {
		return errors.Wrap(ErrInvalidDocument, "validate investigation document",
			slog.String("case_id", c.ID),
			slog.String("detail", err.Error()),
		)
	}
	if c.Trial.Examination != nil {
		if err := s.validate.Struct(c.Trial); err != nil {
			return errors.Wrap(ErrInvalidDocument, "validate trial document",
				slog.String("case_id", c.ID),
				slog.String("detail", err.Error()),
			)
		}
	}

	// Ledger names are unique within a case.
	names := make(map[string]bool, len(c.Investigation.Evidence))
	for _, evidence := range c.Investigation.Evidence {
		if names[evidence.Name] {
			return errors.Wrap(ErrInvalidDocument, "validate evidence ledger",
				slog.String("case_id", c.ID),
				slog.String("evidence", evidence.Name),
			)
		}
		names[evidence.Name] = true
	}
	names = make(map[string]bool, len(c.Investigation.Characters))
	for _, character := range c.Investigation.Characters {
		if names[character.Name] {
			return errors.Wrap(ErrInvalidDocument, "validate character ledger",
				slog.String("case_id", c.ID),
				slog.String("character", character.Name),
			)
		}
		names[character.Name] = true
	}

	return nil
}
