package mcpserver

import (
	"context"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myrjola/docket/internal/models"
)

type CreateSaveInput struct {
	CaseID string `json:"case_id" jsonschema:"case identifier"`
	Label  string `json:"label" jsonschema:"descriptive label; every save makes a new artifact"`
}

type RestoreSaveInput struct {
	CaseID string `json:"case_id" jsonschema:"case identifier"`
	Label  string `json:"label" jsonschema:"label whose most recent artifact to restore"`
}

type CleanupSavesInput struct {
	CaseID string `json:"case_id" jsonschema:"case identifier"`
	Keep   int    `json:"keep" jsonschema:"number of most recent artifacts to retain"`
}

type SnapshotInput struct {
	CaseID   string   `json:"case_id" jsonschema:"case identifier"`
	Threads  []string `json:"threads,omitempty" jsonschema:"unresolved narrative threads; omitted threads are derived from case state"`
	Strategy string   `json:"strategy,omitempty" jsonschema:"trial strategy note"`
}

// SaveRef identifies a save artifact without its full state payload.
type SaveRef struct {
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Phase      models.Phase `json:"phase"`
	ActiveGate string       `json:"active_gate,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

type CreateSaveOutput struct {
	Save SaveRef `json:"save"`
}

type RestoreSaveOutput struct {
	Restored SaveRef `json:"restored"`
	Backup   SaveRef `json:"backup"`
}

type ListSavesOutput struct {
	Saves []SaveRef `json:"saves"`
}

type CleanupSavesOutput struct {
	Removed []string `json:"removed,omitempty"`
}

type SnapshotOutput struct {
	Snapshot models.Snapshot `json:"snapshot"`
	Path     string          `json:"path"`
}

func (s *Server) handleCreateSave(ctx context.Context, req *sdk.CallToolRequest, input CreateSaveInput) (*sdk.CallToolResult, CreateSaveOutput, error) {
	artifact, err := s.eng.Save(ctx, input.CaseID, input.Label)
	if err != nil {
		return nil, CreateSaveOutput{}, err
	}
	return nil, CreateSaveOutput{Save: saveRef(artifact)}, nil
}

func (s *Server) handleRestoreSave(ctx context.Context, req *sdk.CallToolRequest, input RestoreSaveInput) (*sdk.CallToolResult, RestoreSaveOutput, error) {
	result, err := s.eng.Restore(ctx, input.CaseID, input.Label)
	if err != nil {
		return nil, RestoreSaveOutput{}, err
	}
	return nil, RestoreSaveOutput{
		Restored: saveRef(result.Artifact),
		Backup:   saveRef(result.Backup),
	}, nil
}

func (s *Server) handleListSaves(ctx context.Context, req *sdk.CallToolRequest, input CaseInput) (*sdk.CallToolResult, ListSavesOutput, error) {
	artifacts, err := s.eng.ListSaves(ctx, input.CaseID)
	if err != nil {
		return nil, ListSavesOutput{}, err
	}

	saves := make([]SaveRef, 0, len(artifacts))
	for i := range artifacts {
		saves = append(saves, saveRef(&artifacts[i]))
	}
	return nil, ListSavesOutput{Saves: saves}, nil
}

func (s *Server) handleCleanupSaves(ctx context.Context, req *sdk.CallToolRequest, input CleanupSavesInput) (*sdk.CallToolResult, CleanupSavesOutput, error) {
	removed, err := s.eng.CleanupSaves(ctx, input.CaseID, input.Keep)
	if err != nil {
		return nil, CleanupSavesOutput{}, err
	}
	return nil, CleanupSavesOutput{Removed: removed}, nil
}

func (s *Server) handleNarrativeSnapshot(ctx context.Context, req *sdk.CallToolRequest, input SnapshotInput) (*sdk.CallToolResult, SnapshotOutput, error) {
	snapshot, path, err := s.eng.Snapshot(ctx, input.CaseID, input.Threads, input.Strategy)
	if err != nil {
		return nil, SnapshotOutput{}, err
	}
	return nil, SnapshotOutput{Snapshot: snapshot, Path: path}, nil
}

func saveRef(artifact *models.SaveArtifact) SaveRef {
	return SaveRef{
		ID:         artifact.ID,
		Label:      artifact.Label,
		Phase:      artifact.Phase,
		ActiveGate: artifact.ActiveGate,
		CreatedAt:  artifact.CreatedAt,
	}
}
