package mcpserver

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myrjola/docket/internal/engine"
	"github.com/myrjola/docket/internal/models"
)

type CreateCaseInput struct {
	CaseID    string   `json:"case_id" jsonschema:"unique case identifier"`
	Title     string   `json:"title,omitempty" jsonschema:"case title, defaults to the case identifier"`
	Tier      int      `json:"tier" jsonschema:"case length: 1 single trial, 2 one investigation day, 3 full arc"`
	Locations []string `json:"locations,omitempty" jsonschema:"allowed locations, empty permits movement anywhere"`
}

type CaseOutput struct {
	CaseID   string        `json:"case_id"`
	Title    string        `json:"title"`
	Tier     int           `json:"tier"`
	Phase    models.Phase  `json:"phase"`
	Location string        `json:"location,omitempty"`
	Gates    []models.Gate `json:"gates"`
}

type StatusOutput struct {
	CaseID                 string            `json:"case_id"`
	Title                  string            `json:"title"`
	Tier                   int               `json:"tier"`
	Phase                  models.Phase      `json:"phase"`
	Location               string            `json:"location,omitempty"`
	Gates                  []models.Gate     `json:"gates"`
	ActiveGate             string            `json:"active_gate,omitempty"`
	CompletedInvestigation int               `json:"completed_investigation"`
	TrialTrigger           int               `json:"trial_trigger"`
	EvidenceCount          int               `json:"evidence_count"`
	CharacterCount         int               `json:"character_count"`
	NoteCount              int               `json:"note_count"`
	RollCount              int               `json:"roll_count"`
	Examination            *ExamReportOutput `json:"examination,omitempty"`
}

type SummaryOutput struct {
	Status     StatusOutput       `json:"status"`
	Evidence   []models.Evidence  `json:"evidence,omitempty"`
	Characters []models.Character `json:"characters,omitempty"`
	Notes      []models.Note      `json:"notes,omitempty"`
}

type ResumeOutput struct {
	Snapshot        models.Snapshot         `json:"snapshot"`
	Examination     *ExamReportOutput       `json:"examination,omitempty"`
	RecentRolls     []models.Roll           `json:"recent_rolls,omitempty"`
	RecentTestimony []models.TestimonyEvent `json:"recent_testimony,omitempty"`
}

func (s *Server) handleCreateCase(ctx context.Context, req *sdk.CallToolRequest, input CreateCaseInput) (*sdk.CallToolResult, CaseOutput, error) {
	c, err := s.eng.NewCase(ctx, input.CaseID, models.Backbone{
		Title:     input.Title,
		Tier:      input.Tier,
		Locations: input.Locations,
	})
	if err != nil {
		return nil, CaseOutput{}, err
	}
	return nil, caseOutput(c), nil
}

func (s *Server) handleCaseStatus(ctx context.Context, req *sdk.CallToolRequest, input CaseInput) (*sdk.CallToolResult, StatusOutput, error) {
	status, err := s.eng.Status(ctx, input.CaseID)
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, statusOutput(status), nil
}

func (s *Server) handleCaseSummary(ctx context.Context, req *sdk.CallToolRequest, input CaseInput) (*sdk.CallToolResult, SummaryOutput, error) {
	summary, err := s.eng.Summary(ctx, input.CaseID)
	if err != nil {
		return nil, SummaryOutput{}, err
	}
	return nil, SummaryOutput{
		Status:     statusOutput(&summary.Status),
		Evidence:   summary.Evidence,
		Characters: summary.Characters,
		Notes:      summary.Notes,
	}, nil
}

func (s *Server) handleResumeContext(ctx context.Context, req *sdk.CallToolRequest, input CaseInput) (*sdk.CallToolResult, ResumeOutput, error) {
	resume, err := s.eng.Resume(ctx, input.CaseID)
	if err != nil {
		return nil, ResumeOutput{}, err
	}
	return nil, ResumeOutput{
		Snapshot:        resume.Snapshot,
		Examination:     examReportOutput(resume.Examination),
		RecentRolls:     resume.RecentRolls,
		RecentTestimony: resume.RecentTestimony,
	}, nil
}

func (s *Server) handleResolveCase(ctx context.Context, req *sdk.CallToolRequest, input CaseInput) (*sdk.CallToolResult, CaseOutput, error) {
	c, err := s.eng.Resolve(ctx, input.CaseID)
	if err != nil {
		return nil, CaseOutput{}, err
	}
	return nil, caseOutput(c), nil
}

func caseOutput(c *models.Case) CaseOutput {
	return CaseOutput{
		CaseID:   c.ID,
		Title:    c.Backbone.Title,
		Tier:     c.Backbone.Tier,
		Phase:    c.Investigation.Phase,
		Location: c.Investigation.Location,
		Gates:    c.Investigation.Gates,
	}
}

func statusOutput(status *engine.Status) StatusOutput {
	return StatusOutput{
		CaseID:                 status.CaseID,
		Title:                  status.Title,
		Tier:                   status.Tier,
		Phase:                  status.Phase,
		Location:               status.Location,
		Gates:                  status.Gates,
		ActiveGate:             status.ActiveGate,
		CompletedInvestigation: status.CompletedInvestigation,
		TrialTrigger:           status.TrialTrigger,
		EvidenceCount:          status.EvidenceCount,
		CharacterCount:         status.CharacterCount,
		NoteCount:              status.NoteCount,
		RollCount:              status.RollCount,
		Examination:            examReportOutput(status.Examination),
	}
}
