// Command smoketest drives a full case lifecycle against a real on-disk
// store: scaffold, investigate, win a cross-examination, then save and
// restore. Run it after a deploy to confirm the binary and its case format
// still agree.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/docket/internal/casefile"
	"github.com/myrjola/docket/internal/dice"
	"github.com/myrjola/docket/internal/engine"
	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/logging"
	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/namegen"
	"github.com/myrjola/docket/internal/saves"
)

var errUnexpected = errors.NewSentinel("smoke test found unexpected state")

func TestInvestigation(eng *engine.Engine, caseID string) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	c, err := eng.NewCase(ctx, caseID, models.Backbone{
		Title:     "Smoke Over the Docks",
		Tier:      2,
		Locations: []string{"warehouse", "pier"},
	})
	if err != nil {
		return errors.Wrap(err, "scaffold case")
	}
	if c.Investigation.Phase != models.PhaseInvestigation {
		return errors.Wrap(errUnexpected, "tier 2 case should open in investigation",
			slog.String("phase", string(c.Investigation.Phase)))
	}

	if _, err = eng.StartGate(ctx, caseID, "investigation_day"); err != nil {
		return errors.Wrap(err, "start gate")
	}
	if _, err = eng.AddEvidence(ctx, caseID, "muddy boots", "fresh pier mud on polished boots"); err != nil {
		return errors.Wrap(err, "add evidence")
	}
	if _, err = eng.Interview(ctx, caseID, "Harbourmaster", "the night shift"); err != nil {
		return errors.Wrap(err, "record interview")
	}
	if _, err = eng.GenerateCharacter(ctx, caseID, "witness", ""); err != nil {
		return errors.Wrap(err, "generate character")
	}
	if _, err = eng.Check(ctx, caseID, engine.CheckParams{
		Action:     "search the warehouse",
		Difficulty: "moderate",
		Evidence:   1,
	}); err != nil {
		return errors.Wrap(err, "action check")
	}

	result, err := eng.CompleteGate(ctx, caseID, "investigation_day")
	if err != nil {
		return errors.Wrap(err, "complete gate")
	}
	if !result.PhaseChanged || result.Phase != models.PhaseTrial {
		return errors.Wrap(errUnexpected, "completing the only investigation gate should open the trial",
			slog.String("phase", string(result.Phase)))
	}
	return nil
}

func TestTrial(eng *engine.Engine, caseID string) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	_, err := eng.ExamBegin(ctx, caseID, "Deckhand", []models.BackboneStatement{
		{Text: "I spent the whole night in the galley."},
		{Text: "I never set foot on the pier.", Contradiction: "muddy boots"},
		{Text: "The captain can vouch for me."},
	})
	if err != nil {
		return errors.Wrap(err, "begin cross-examination")
	}
	if _, err = eng.ExamPress(ctx, caseID, "A"); err != nil {
		return errors.Wrap(err, "press statement")
	}

	result, err := eng.ExamPresent(ctx, caseID, "B", "muddy boots")
	if err != nil {
		return errors.Wrap(err, "present evidence")
	}
	if !result.Victory {
		return errors.Wrap(errUnexpected, "exposing the only contradiction should win the examination",
			slog.String("status", string(result.Status)))
	}
	return nil
}

func TestPersistence(eng *engine.Engine, caseID string) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	before, err := eng.Status(ctx, caseID)
	if err != nil {
		return errors.Wrap(err, "status before save")
	}
	if _, err = eng.Save(ctx, caseID, "checkpoint"); err != nil {
		return errors.Wrap(err, "create save")
	}
	if _, err = eng.AddNote(ctx, caseID, "scratch note that the restore should erase"); err != nil {
		return errors.Wrap(err, "add note")
	}
	if _, err = eng.Restore(ctx, caseID, "checkpoint"); err != nil {
		return errors.Wrap(err, "restore save")
	}

	after, err := eng.Status(ctx, caseID)
	if err != nil {
		return errors.Wrap(err, "status after restore")
	}
	if after.NoteCount != before.NoteCount {
		return errors.Wrap(errUnexpected, "restore should roll the notes back",
			slog.Int("before", before.NoteCount), slog.Int("after", after.NoteCount))
	}

	artifacts, err := eng.ListSaves(ctx, caseID)
	if err != nil {
		return errors.Wrap(err, "list saves")
	}
	var sawBackup bool
	for _, artifact := range artifacts {
		if artifact.Label == saves.BackupLabel {
			sawBackup = true
		}
	}
	if !sawBackup {
		return errors.Wrap(errUnexpected, "restore should leave a backup artifact",
			slog.Int("artifacts", len(artifacts)))
	}

	if _, _, err = eng.Snapshot(ctx, caseID, []string{"who tracked the mud aboard"}, "press the deckhand"); err != nil {
		return errors.Wrap(err, "write narrative snapshot")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) > 2 { //nolint:mnd // the cases directory is the only optional argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest [cases-dir]")
		os.Exit(1)
	}

	var (
		dir string
		err error
	)
	if len(os.Args) == 2 { //nolint:mnd // see above.
		dir = os.Args[1]
	} else if dir, err = os.MkdirTemp("", "docket-smoketest"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating scratch directory", errors.SlogError(err))
		os.Exit(1)
	}
	ctx = logging.WithAttrs(ctx, slog.String("cases_dir", dir))

	// A fresh case ID per run keeps reruns against a persistent directory
	// from tripping the duplicate-case guard.
	caseID := fmt.Sprintf("smoke-%d", time.Now().Unix())
	eng := engine.New(casefile.NewStore(dir, logger), dice.NewRoller(nil), namegen.New(0), logger)

	if err = TestInvestigation(eng, caseID); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing investigation", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestTrial(eng, caseID); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing trial", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestPersistence(eng, caseID); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing persistence", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
