package mcpserver

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/trial"
)

type StatementInput struct {
	Text          string `json:"text" jsonschema:"one line of testimony"`
	Contradiction string `json:"contradiction,omitempty" jsonschema:"evidence name that exposes this statement; empty for filler"`
}

type BeginExamInput struct {
	CaseID     string           `json:"case_id" jsonschema:"case identifier"`
	Witness    string           `json:"witness" jsonschema:"witness to examine"`
	Statements []StatementInput `json:"statements,omitempty" jsonschema:"testimony to examine; omit to load the witness's authored statements"`
}

type ExamOutput struct {
	Examination models.Examination `json:"examination"`
}

type PressStatementInput struct {
	CaseID    string `json:"case_id" jsonschema:"case identifier"`
	Statement string `json:"statement" jsonschema:"statement label, e.g. A"`
}

type StatementOutput struct {
	Statement models.Statement `json:"statement"`
}

type PresentEvidenceInput struct {
	CaseID    string `json:"case_id" jsonschema:"case identifier"`
	Statement string `json:"statement" jsonschema:"statement label, e.g. A"`
	Evidence  string `json:"evidence" jsonschema:"name of discovered evidence to present"`
}

type PresentEvidenceOutput struct {
	Statement       models.Statement  `json:"statement"`
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

type ExamReportOutput struct {
	Witness         string             `json:"witness"`
	Status          models.ExamStatus  `json:"status"`
	ExposedCritical int                `json:"exposed_critical"`
	TotalCritical   int                `json:"total_critical"`
	Pressed         int                `json:"pressed"`
	Penalties       int                `json:"penalties"`
	PenaltiesLeft   int                `json:"penalties_left"`
	Statements      []models.Statement `json:"statements"`
}

func (s *Server) handleBeginExam(ctx context.Context, req *sdk.CallToolRequest, input BeginExamInput) (*sdk.CallToolResult, ExamOutput, error) {
	statements := make([]models.BackboneStatement, 0, len(input.Statements))
	for _, statement := range input.Statements {
		statements = append(statements, models.BackboneStatement{
			Text:          statement.Text,
			Contradiction: statement.Contradiction,
		})
	}

	exam, err := s.eng.ExamBegin(ctx, input.CaseID, input.Witness, statements)
	if err != nil {
		return nil, ExamOutput{}, err
	}
	return nil, ExamOutput{Examination: *exam}, nil
}

func (s *Server) handlePressStatement(ctx context.Context, req *sdk.CallToolRequest, input PressStatementInput) (*sdk.CallToolResult, StatementOutput, error) {
	statement, err := s.eng.ExamPress(ctx, input.CaseID, input.Statement)
	if err != nil {
		return nil, StatementOutput{}, err
	}
	return nil, StatementOutput{Statement: *statement}, nil
}

func (s *Server) handlePresentEvidence(ctx context.Context, req *sdk.CallToolRequest, input PresentEvidenceInput) (*sdk.CallToolResult, PresentEvidenceOutput, error) {
	result, err := s.eng.ExamPresent(ctx, input.CaseID, input.Statement, input.Evidence)
	if err != nil {
		return nil, PresentEvidenceOutput{}, err
	}
	return nil, PresentEvidenceOutput{
		Statement:       *result.Statement,
		Evidence:        result.Evidence,
		Correct:         result.Correct,
		AlreadyExposed:  result.AlreadyExposed,
		Penalties:       result.Penalties,
		PenaltiesLeft:   result.PenaltiesLeft,
		Status:          result.Status,
		Victory:         result.Victory,
		Exhausted:       result.Exhausted,
		ExposedCritical: result.ExposedCritical,
		TotalCritical:   result.TotalCritical,
	}, nil
}

func (s *Server) handleCheckVictory(ctx context.Context, req *sdk.CallToolRequest, input CaseInput) (*sdk.CallToolResult, ExamReportOutput, error) {
	report, err := s.eng.ExamStatus(ctx, input.CaseID)
	if err != nil {
		return nil, ExamReportOutput{}, err
	}
	return nil, *examReportOutput(report), nil
}

func (s *Server) handleEndExam(ctx context.Context, req *sdk.CallToolRequest, input CaseInput) (*sdk.CallToolResult, ExamOutput, error) {
	exam, err := s.eng.ExamEnd(ctx, input.CaseID)
	if err != nil {
		return nil, ExamOutput{}, err
	}
	return nil, ExamOutput{Examination: *exam}, nil
}

func examReportOutput(report *trial.Report) *ExamReportOutput {
	if report == nil {
		return nil
	}
	return &ExamReportOutput{
		Witness:         report.Witness,
		Status:          report.Status,
		ExposedCritical: report.ExposedCritical,
		TotalCritical:   report.TotalCritical,
		Pressed:         report.Pressed,
		Penalties:       report.Penalties,
		PenaltiesLeft:   report.PenaltiesLeft,
		Statements:      report.Statements,
	}
}
