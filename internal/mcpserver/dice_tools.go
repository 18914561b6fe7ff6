package mcpserver

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myrjola/docket/internal/engine"
	"github.com/myrjola/docket/internal/models"
)

type RollDiceInput struct {
	CaseID      string `json:"case_id" jsonschema:"case identifier"`
	Modifier    int    `json:"modifier,omitempty" jsonschema:"flat modifier added to the natural d20"`
	Description string `json:"description,omitempty" jsonschema:"what the roll decides"`
}

type ActionCheckInput struct {
	CaseID     string `json:"case_id" jsonschema:"case identifier"`
	Action     string `json:"action" jsonschema:"what the player is attempting"`
	Difficulty string `json:"difficulty,omitempty" jsonschema:"trivial, easy, moderate, hard, very_hard, or nearly_impossible"`
	Evidence   int    `json:"evidence,omitempty" jsonschema:"supporting evidence count, capped at three"`
	TrustOf    string `json:"trust_of,omitempty" jsonschema:"character whose ledger trust feeds the check"`
	Trust      int    `json:"trust,omitempty" jsonschema:"direct trust value, ignored when trust_of is set"`
	Extra      int    `json:"extra,omitempty" jsonschema:"situational modifier"`
	TargetDC   *int   `json:"target_dc,omitempty" jsonschema:"difficulty class for a pass or fail verdict with margin"`
}

type RollOutput struct {
	Roll models.Roll `json:"roll"`
}

func (s *Server) handleRollDice(ctx context.Context, req *sdk.CallToolRequest, input RollDiceInput) (*sdk.CallToolResult, RollOutput, error) {
	roll, err := s.eng.Roll(ctx, input.CaseID, input.Modifier, input.Description)
	if err != nil {
		return nil, RollOutput{}, err
	}
	return nil, RollOutput{Roll: roll}, nil
}

func (s *Server) handleActionCheck(ctx context.Context, req *sdk.CallToolRequest, input ActionCheckInput) (*sdk.CallToolResult, RollOutput, error) {
	roll, err := s.eng.Check(ctx, input.CaseID, engine.CheckParams{
		Action:     input.Action,
		Difficulty: input.Difficulty,
		Evidence:   input.Evidence,
		TrustOf:    input.TrustOf,
		Trust:      input.Trust,
		Extra:      input.Extra,
		TargetDC:   input.TargetDC,
	})
	if err != nil {
		return nil, RollOutput{}, err
	}
	return nil, RollOutput{Roll: roll}, nil
}
