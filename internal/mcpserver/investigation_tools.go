package mcpserver

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myrjola/docket/internal/models"
)

type StartGateInput struct {
	CaseID string `json:"case_id" jsonschema:"case identifier"`
	Gate   string `json:"gate" jsonschema:"gate name"`
}

type CompleteGateInput struct {
	CaseID string `json:"case_id" jsonschema:"case identifier"`
	Gate   string `json:"gate" jsonschema:"gate name"`
}

type GateOutput struct {
	Gate models.Gate `json:"gate"`
}

type CompleteGateOutput struct {
	Gate                   models.Gate  `json:"gate"`
	Phase                  models.Phase `json:"phase"`
	PhaseChanged           bool         `json:"phase_changed"`
	CompletedInvestigation int          `json:"completed_investigation"`
	TrialTrigger           int          `json:"trial_trigger"`
	SnapshotPath           string       `json:"snapshot_path,omitempty"`
}

type AddEvidenceInput struct {
	CaseID      string `json:"case_id" jsonschema:"case identifier"`
	Name        string `json:"name" jsonschema:"evidence name, unique within the case"`
	Description string `json:"description,omitempty" jsonschema:"what the evidence is and why it matters"`
}

type EvidenceOutput struct {
	Evidence models.Evidence `json:"evidence"`
}

type ListEvidenceOutput struct {
	Evidence []models.Evidence `json:"evidence"`
}

type RecordInterviewInput struct {
	CaseID    string `json:"case_id" jsonschema:"case identifier"`
	Character string `json:"character" jsonschema:"character name, created on first reference"`
	Topic     string `json:"topic,omitempty" jsonschema:"what the interview covered"`
}

type AdjustTrustInput struct {
	CaseID    string `json:"case_id" jsonschema:"case identifier"`
	Character string `json:"character" jsonschema:"character name, created on first reference"`
	Delta     int    `json:"delta" jsonschema:"signed trust change"`
}

type CharacterOutput struct {
	Character models.Character `json:"character"`
}

type AddNoteInput struct {
	CaseID string `json:"case_id" jsonschema:"case identifier"`
	Text   string `json:"text" jsonschema:"note text"`
}

type NoteOutput struct {
	Note models.Note `json:"note"`
}

type MoveLocationInput struct {
	CaseID   string `json:"case_id" jsonschema:"case identifier"`
	Location string `json:"location" jsonschema:"destination; must be on the case's location list when one is authored"`
}

type MoveLocationOutput struct {
	Location string `json:"location"`
}

func (s *Server) handleStartGate(ctx context.Context, req *sdk.CallToolRequest, input StartGateInput) (*sdk.CallToolResult, GateOutput, error) {
	gate, err := s.eng.StartGate(ctx, input.CaseID, input.Gate)
	if err != nil {
		return nil, GateOutput{}, err
	}
	return nil, GateOutput{Gate: *gate}, nil
}

func (s *Server) handleCompleteGate(ctx context.Context, req *sdk.CallToolRequest, input CompleteGateInput) (*sdk.CallToolResult, CompleteGateOutput, error) {
	result, err := s.eng.CompleteGate(ctx, input.CaseID, input.Gate)
	if err != nil {
		return nil, CompleteGateOutput{}, err
	}
	return nil, CompleteGateOutput{
		Gate:                   *result.Gate,
		Phase:                  result.Phase,
		PhaseChanged:           result.PhaseChanged,
		CompletedInvestigation: result.CompletedInvestigation,
		TrialTrigger:           result.TrialTrigger,
		SnapshotPath:           result.SnapshotPath,
	}, nil
}

func (s *Server) handleAddEvidence(ctx context.Context, req *sdk.CallToolRequest, input AddEvidenceInput) (*sdk.CallToolResult, EvidenceOutput, error) {
	evidence, err := s.eng.AddEvidence(ctx, input.CaseID, input.Name, input.Description)
	if err != nil {
		return nil, EvidenceOutput{}, err
	}
	return nil, EvidenceOutput{Evidence: *evidence}, nil
}

func (s *Server) handleListEvidence(ctx context.Context, req *sdk.CallToolRequest, input CaseInput) (*sdk.CallToolResult, ListEvidenceOutput, error) {
	evidence, err := s.eng.Evidence(ctx, input.CaseID)
	if err != nil {
		return nil, ListEvidenceOutput{}, err
	}
	return nil, ListEvidenceOutput{Evidence: evidence}, nil
}

func (s *Server) handleRecordInterview(ctx context.Context, req *sdk.CallToolRequest, input RecordInterviewInput) (*sdk.CallToolResult, CharacterOutput, error) {
	character, err := s.eng.Interview(ctx, input.CaseID, input.Character, input.Topic)
	if err != nil {
		return nil, CharacterOutput{}, err
	}
	return nil, CharacterOutput{Character: *character}, nil
}

func (s *Server) handleAdjustTrust(ctx context.Context, req *sdk.CallToolRequest, input AdjustTrustInput) (*sdk.CallToolResult, CharacterOutput, error) {
	character, err := s.eng.AdjustTrust(ctx, input.CaseID, input.Character, input.Delta)
	if err != nil {
		return nil, CharacterOutput{}, err
	}
	return nil, CharacterOutput{Character: *character}, nil
}

func (s *Server) handleAddNote(ctx context.Context, req *sdk.CallToolRequest, input AddNoteInput) (*sdk.CallToolResult, NoteOutput, error) {
	note, err := s.eng.AddNote(ctx, input.CaseID, input.Text)
	if err != nil {
		return nil, NoteOutput{}, err
	}
	return nil, NoteOutput{Note: *note}, nil
}

func (s *Server) handleMoveLocation(ctx context.Context, req *sdk.CallToolRequest, input MoveLocationInput) (*sdk.CallToolResult, MoveLocationOutput, error) {
	location, err := s.eng.Move(ctx, input.CaseID, input.Location)
	if err != nil {
		return nil, MoveLocationOutput{}, err
	}
	return nil, MoveLocationOutput{Location: location}, nil
}
