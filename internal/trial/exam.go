// Package trial runs cross-examinations: pressing testimony, presenting
// contradicting evidence, penalty tracking, and victory detection. At most
// one examination is active per case.
package trial

import (
	"log/slog"
	"strings"
	"time"

	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/ledger"
	"github.com/myrjola/docket/internal/models"
)

var (
	ErrExamActive       = errors.NewSentinel("a cross-examination is already active")
	ErrNoExam           = errors.NewSentinel("no cross-examination in progress")
	ErrExamOver         = errors.NewSentinel("the cross-examination has ended")
	ErrUnknownWitness   = errors.NewSentinel("witness has no authored testimony")
	ErrNoContradiction  = errors.NewSentinel("testimony needs at least one statement with a contradiction binding")
	ErrUnknownStatement = errors.NewSentinel("unknown statement label")
	ErrExhausted        = errors.NewSentinel("cross-examination exhausted by penalties")
)

// MaxPenalties ends the examination in defeat when reached.
const MaxPenalties = 5

// Begin opens a cross-examination of a witness. Statements may be supplied
// by the narrator; when none are given the witness's authored testimony from
// the backbone is used. Statement labels are assigned A, B, C, ... in order.
func Begin(
	tr *models.Trial,
	backbone models.Backbone,
	witness string,
	statements []models.BackboneStatement,
	now time.Time,
) (*models.Examination, error) {
	witness = strings.TrimSpace(witness)

	if tr.Examination != nil && tr.Examination.Status == models.ExamStatusActive {
		return nil, errors.Wrap(ErrExamActive, "begin cross-examination",
			slog.String("witness", witness),
			slog.String("active_witness", tr.Examination.Witness),
		)
	}

	if len(statements) == 0 {
		authored := backbone.Witness(witness)
		if authored == nil {
			return nil, errors.Wrap(ErrUnknownWitness, "begin cross-examination",
				slog.String("witness", witness),
				slog.String("detail", "supply statements or author the witness in the case backbone"),
			)
		}
		statements = authored.Statements
	}

	labeled := make([]models.Statement, len(statements))
	hasContradiction := false
	for i, statement := range statements {
		labeled[i] = models.Statement{
			Label:         statementLabel(i),
			Text:          statement.Text,
			Contradiction: statement.Contradiction,
		}
		if statement.Contradiction != "" {
			hasContradiction = true
		}
	}
	if !hasContradiction {
		return nil, errors.Wrap(ErrNoContradiction, "begin cross-examination",
			slog.String("witness", witness))
	}

	if tr.Examination != nil {
		tr.Finished = append(tr.Finished, *tr.Examination)
	}
	tr.Examination = &models.Examination{
		Witness:    witness,
		Status:     models.ExamStatusActive,
		Statements: labeled,
		StartedAt:  now,
	}
	logEvent(tr, witness, "begin", strings.Join(tr.Examination.Labels(), ", "), now)

	return tr.Examination, nil
}

// Press marks a statement as pressed. Pressing is informational: it never
// changes penalties or exposure and may be repeated freely. Every press is
// logged.
func Press(tr *models.Trial, label string, now time.Time) (*models.Statement, error) {
	exam, err := activeExam(tr, "press statement")
	if err != nil {
		return nil, err
	}

	statement, err := findStatement(exam, label, "press statement")
	if err != nil {
		return nil, err
	}

	statement.Pressed = true
	logEvent(tr, exam.Witness, "press", statement.Label, now)

	return statement, nil
}

// PresentResult describes the effect of presenting evidence at a statement.
type PresentResult struct {
	Statement       *models.Statement `json:"statement"`
	Evidence        string            `json:"evidence"`
	Correct         bool              `json:"correct"`
	AlreadyExposed  bool              `json:"already_exposed"`
	Penalties       int               `json:"penalties"`
	PenaltiesLeft   int               `json:"penalties_left"`
	Status          models.ExamStatus `json:"status"`
	Victory         bool              `json:"victory"`
	Exhausted       bool              `json:"exhausted"`
	ExposedCritical int               `json:"exposed_critical"`
	TotalCritical   int               `json:"total_critical"`
}

// Present confronts a statement with evidence from the ledger. The bound
// contradiction exposes the statement; anything else costs a penalty.
// Presenting at an already-exposed statement is a logged no-op. Reaching
// MaxPenalties ends the examination in exhaustion; exposing every critical
// statement ends it in victory.
func Present(
	tr *models.Trial,
	inv *models.Investigation,
	label, evidenceName string,
	now time.Time,
) (*PresentResult, error) {
	exam, err := activeExam(tr, "present evidence")
	if err != nil {
		return nil, err
	}

	statement, err := findStatement(exam, label, "present evidence")
	if err != nil {
		return nil, err
	}

	evidenceName = strings.TrimSpace(evidenceName)
	if inv.FindEvidence(evidenceName) == nil {
		return nil, errors.Wrap(ledger.ErrEvidenceNotFound, "present evidence",
			slog.String("evidence", evidenceName),
			slog.String("statement", statement.Label),
		)
	}

	result := &PresentResult{
		Statement: statement,
		Evidence:  evidenceName,
		Status:    exam.Status,
	}

	switch {
	case statement.Critical() && statement.Contradiction == evidenceName && statement.Exposed:
		// Repeat presentation of the right evidence changes nothing.
		result.Correct = true
		result.AlreadyExposed = true
		logEvent(tr, exam.Witness, "present", statement.Label+" already exposed", now)

	case statement.Critical() && statement.Contradiction == evidenceName:
		statement.Exposed = true
		result.Correct = true
		logEvent(tr, exam.Witness, "present", statement.Label+" exposed by "+evidenceName, now)

		exposed, total := exam.ExposedCritical()
		if exposed == total {
			endedAt := now
			exam.Status = models.ExamStatusVictory
			exam.EndedAt = &endedAt
			result.Victory = true
			logEvent(tr, exam.Witness, "victory", "", now)
		}

	default:
		exam.Penalties++
		logEvent(tr, exam.Witness, "penalty", statement.Label+" vs "+evidenceName, now)

		if exam.Penalties >= MaxPenalties {
			endedAt := now
			exam.Status = models.ExamStatusExhausted
			exam.EndedAt = &endedAt
			result.Exhausted = true
			logEvent(tr, exam.Witness, "exhausted", "", now)
		}
	}

	result.Penalties = exam.Penalties
	result.PenaltiesLeft = MaxPenalties - exam.Penalties
	result.Status = exam.Status
	result.ExposedCritical, result.TotalCritical = exam.ExposedCritical()

	return result, nil
}

// Report summarizes the current examination for victory checks.
type Report struct {
	Witness         string             `json:"witness"`
	Status          models.ExamStatus  `json:"status"`
	ExposedCritical int                `json:"exposed_critical"`
	TotalCritical   int                `json:"total_critical"`
	Pressed         int                `json:"pressed"`
	Penalties       int                `json:"penalties"`
	PenaltiesLeft   int                `json:"penalties_left"`
	Statements      []models.Statement `json:"statements"`
}

// Check reports progress of the current examination, active or finished.
func Check(tr *models.Trial) (*Report, error) {
	if tr.Examination == nil {
		return nil, errors.Wrap(ErrNoExam, "check cross-examination")
	}
	exam := tr.Examination

	pressed := 0
	for i := range exam.Statements {
		if exam.Statements[i].Pressed {
			pressed++
		}
	}
	exposed, total := exam.ExposedCritical()

	return &Report{
		Witness:         exam.Witness,
		Status:          exam.Status,
		ExposedCritical: exposed,
		TotalCritical:   total,
		Pressed:         pressed,
		Penalties:       exam.Penalties,
		PenaltiesLeft:   MaxPenalties - exam.Penalties,
		Statements:      exam.Statements,
	}, nil
}

// End abandons the active examination without a verdict.
func End(tr *models.Trial, now time.Time) (*models.Examination, error) {
	exam, err := activeExam(tr, "end cross-examination")
	if err != nil {
		return nil, err
	}

	endedAt := now
	exam.Status = models.ExamStatusAbandoned
	exam.EndedAt = &endedAt
	logEvent(tr, exam.Witness, "end", "", now)

	return exam, nil
}

func activeExam(tr *models.Trial, op string) (*models.Examination, error) {
	if tr.Examination == nil {
		return nil, errors.Wrap(ErrNoExam, op)
	}
	if tr.Examination.Status != models.ExamStatusActive {
		if tr.Examination.Status == models.ExamStatusExhausted {
			return nil, errors.Wrap(ErrExhausted, op,
				slog.String("witness", tr.Examination.Witness),
				slog.String("detail", "restore a save point to retry"),
			)
		}
		return nil, errors.Wrap(ErrExamOver, op,
			slog.String("witness", tr.Examination.Witness),
			slog.String("status", string(tr.Examination.Status)),
		)
	}
	return tr.Examination, nil
}

func findStatement(exam *models.Examination, label, op string) (*models.Statement, error) {
	statement := exam.Statement(strings.ToUpper(strings.TrimSpace(label)))
	if statement == nil {
		return nil, errors.Wrap(ErrUnknownStatement, op,
			slog.String("label", label),
			slog.String("valid_labels", strings.Join(exam.Labels(), ", ")),
		)
	}
	return statement, nil
}

func logEvent(tr *models.Trial, witness, action, detail string, now time.Time) {
	tr.Testimony = append(tr.Testimony, models.TestimonyEvent{
		Witness: witness,
		Action:  action,
		Detail:  detail,
		At:      now,
	})
}

func statementLabel(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(letters) {
		return string(letters[i])
	}
	return string(letters[i/len(letters)-1]) + string(letters[i%len(letters)])
}
