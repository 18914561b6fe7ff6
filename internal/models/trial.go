package models

import "time"

// ExamStatus is the lifecycle state of a cross-examination.
type ExamStatus string

const (
	ExamStatusActive    ExamStatus = "active"
	ExamStatusVictory   ExamStatus = "victory"
	ExamStatusExhausted ExamStatus = "exhausted"
	ExamStatusAbandoned ExamStatus = "abandoned"
)

// Trial is the authoritative mutable document for courtroom state: the
// active cross-examination, finished examinations, and the testimony log.
type Trial struct {
	Examination *Examination     `json:"examination,omitempty"`
	Finished    []Examination    `json:"finished,omitempty"`
	Testimony   []TestimonyEvent `json:"testimony,omitempty"`
}

// Examination is one cross-examination of a witness. At most one examination
// is active per case at any time.
type Examination struct {
	Witness    string      `json:"witness" validate:"required"`
	Status     ExamStatus  `json:"status" validate:"required,oneof=active victory exhausted abandoned"`
	Statements []Statement `json:"statements" validate:"required,min=1,dive"`
	Penalties  int         `json:"penalties" validate:"min=0"`
	StartedAt  time.Time   `json:"started_at"`
	EndedAt    *time.Time  `json:"ended_at,omitempty"`
}

// Statement is one line of testimony. A statement carrying a contradiction
// binding is critical: exposing every critical statement wins the
// examination. Filler statements have no binding and can only be pressed.
type Statement struct {
	Label         string `json:"label" validate:"required"`
	Text          string `json:"text" validate:"required"`
	Contradiction string `json:"contradiction,omitempty"`
	Pressed       bool   `json:"pressed"`
	Exposed       bool   `json:"exposed"`
}

// TestimonyEvent is one entry in the append-only courtroom log.
type TestimonyEvent struct {
	Witness string    `json:"witness"`
	Action  string    `json:"action"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// Critical reports whether the statement carries a contradiction binding.
func (s *Statement) Critical() bool {
	return s.Contradiction != ""
}

// Statement returns the statement with the given label or nil when the label
// is unknown.
func (e *Examination) Statement(label string) *Statement {
	for i := range e.Statements {
		if e.Statements[i].Label == label {
			return &e.Statements[i]
		}
	}
	return nil
}

// Labels returns the statement labels in testimony order.
func (e *Examination) Labels() []string {
	labels := make([]string, len(e.Statements))
	for i := range e.Statements {
		labels[i] = e.Statements[i].Label
	}
	return labels
}

// ExposedCritical counts exposed and total critical statements.
func (e *Examination) ExposedCritical() (exposed, total int) {
	for i := range e.Statements {
		if !e.Statements[i].Critical() {
			continue
		}
		total++
		if e.Statements[i].Exposed {
			exposed++
		}
	}
	return exposed, total
}
