package mcpserver

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myrjola/docket/internal/classify"
)

type GenerateCharacterInput struct {
	CaseID   string `json:"case_id" jsonschema:"case identifier"`
	RoleHint string `json:"role_hint" jsonschema:"narrative role, e.g. witness or prosecutor; fixed at creation"`
	Relative string `json:"relative,omitempty" jsonschema:"existing character the new one is related to; they share a surname"`
}

type RevealClassificationInput struct {
	CaseID              string `json:"case_id" jsonschema:"case identifier"`
	Character           string `json:"character" jsonschema:"character whose hidden role to disclose"`
	AcknowledgeSpoilers bool   `json:"acknowledge_spoilers" jsonschema:"must be true; disclosure is audited on the case"`
}

type ClassificationStatsInput struct {
	CaseID              string `json:"case_id" jsonschema:"case identifier"`
	AcknowledgeSpoilers bool   `json:"acknowledge_spoilers,omitempty" jsonschema:"disclose identities; every disclosure is audited"`
}

type RevealOutput struct {
	Character   string  `json:"character"`
	RoleHint    string  `json:"role_hint,omitempty"`
	Tier        int     `json:"tier"`
	Role        string  `json:"role"`
	Culprit     bool    `json:"culprit"`
	Probability float64 `json:"probability"`
}

type ClassificationStatsOutput struct {
	Tier            int            `json:"tier"`
	TotalCharacters int            `json:"total_characters"`
	ExpectedRate    float64        `json:"expected_rate"`
	Revealed        bool           `json:"revealed"`
	Culprits        int            `json:"culprits"`
	RedHerrings     int            `json:"red_herrings"`
	Outcomes        []RevealOutput `json:"outcomes,omitempty"`
}

func (s *Server) handleGenerateCharacter(ctx context.Context, req *sdk.CallToolRequest, input GenerateCharacterInput) (*sdk.CallToolResult, CharacterOutput, error) {
	character, err := s.eng.GenerateCharacter(ctx, input.CaseID, input.RoleHint, input.Relative)
	if err != nil {
		return nil, CharacterOutput{}, err
	}
	return nil, CharacterOutput{Character: *character}, nil
}

func (s *Server) handleRevealClassification(ctx context.Context, req *sdk.CallToolRequest, input RevealClassificationInput) (*sdk.CallToolResult, RevealOutput, error) {
	outcome, err := s.eng.Reveal(ctx, input.CaseID, input.Character, input.AcknowledgeSpoilers)
	if err != nil {
		return nil, RevealOutput{}, err
	}
	return nil, revealOutput(*outcome), nil
}

func (s *Server) handleClassificationStats(ctx context.Context, req *sdk.CallToolRequest, input ClassificationStatsInput) (*sdk.CallToolResult, ClassificationStatsOutput, error) {
	stats, err := s.eng.Stats(ctx, input.CaseID, input.AcknowledgeSpoilers)
	if err != nil {
		return nil, ClassificationStatsOutput{}, err
	}

	output := ClassificationStatsOutput{
		Tier:            stats.Tier,
		TotalCharacters: stats.TotalCharacters,
		ExpectedRate:    stats.ExpectedRate,
		Revealed:        stats.Revealed,
		Culprits:        stats.Culprits,
		RedHerrings:     stats.RedHerrings,
	}
	for _, outcome := range stats.Outcomes {
		output.Outcomes = append(output.Outcomes, revealOutput(outcome))
	}
	return nil, output, nil
}

func revealOutput(outcome classify.Outcome) RevealOutput {
	return RevealOutput{
		Character:   outcome.Name,
		RoleHint:    outcome.RoleHint,
		Tier:        outcome.Tier,
		Role:        outcome.Role(),
		Culprit:     outcome.Culprit,
		Probability: outcome.Probability,
	}
}
