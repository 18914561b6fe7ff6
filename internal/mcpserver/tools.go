package mcpserver

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// CaseInput is the input of every tool that needs nothing beyond the case.
type CaseInput struct {
	CaseID string `json:"case_id" jsonschema:"case identifier"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "create_case",
		Description: "Scaffold a new case with its tier's gate structure",
	}, s.handleCreateCase)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "case_status",
		Description: "Report phase, gates, and counters for a case",
	}, s.handleCaseStatus)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "case_summary",
		Description: "Full case digest: status plus evidence, characters, and notes",
	}, s.handleCaseSummary)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "resume_context",
		Description: "Rebuild narrator context after a conversation reset",
	}, s.handleResumeContext)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "resolve_case",
		Description: "Close a case whose trial has concluded",
	}, s.handleResolveCase)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "start_gate",
		Description: "Move a pending story gate to in progress",
	}, s.handleStartGate)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "complete_gate",
		Description: "Complete a story gate and emit a narrative snapshot",
	}, s.handleCompleteGate)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "add_evidence",
		Description: "Record a discovered piece of evidence",
	}, s.handleAddEvidence)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_evidence",
		Description: "List discovered evidence in discovery order",
	}, s.handleListEvidence)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "record_interview",
		Description: "Append to a character's interview history",
	}, s.handleRecordInterview)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "adjust_trust",
		Description: "Shift a character's trust by a signed delta",
	}, s.handleAdjustTrust)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "add_note",
		Description: "Record a free-text investigation note",
	}, s.handleAddNote)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "move_location",
		Description: "Change the investigation's current location",
	}, s.handleMoveLocation)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "roll_dice",
		Description: "Resolve a d20 roll with a flat modifier",
	}, s.handleRollDice)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "action_check",
		Description: "Resolve a d20 action check from difficulty, evidence, and trust",
	}, s.handleActionCheck)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "generate_character",
		Description: "Create a fully profiled character without disclosing their hidden role",
	}, s.handleGenerateCharacter)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "reveal_classification",
		Description: "Disclose a character's hidden role; requires the spoiler acknowledgement and is audited",
	}, s.handleRevealClassification)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "classification_stats",
		Description: "Hidden-role distribution of the cast; identities require the spoiler acknowledgement",
	}, s.handleClassificationStats)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "begin_cross_examination",
		Description: "Open a cross-examination of a witness",
	}, s.handleBeginExam)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "press_statement",
		Description: "Press a testimony statement for elaboration, at no risk",
	}, s.handlePressStatement)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "present_evidence",
		Description: "Confront a testimony statement with evidence; wrong evidence costs a penalty",
	}, s.handlePresentEvidence)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "check_victory",
		Description: "Report cross-examination progress and terminal state",
	}, s.handleCheckVictory)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "end_cross_examination",
		Description: "Abandon the active cross-examination without a verdict",
	}, s.handleEndExam)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "create_save",
		Description: "Capture the case state in a new labeled save artifact",
	}, s.handleCreateSave)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "restore_save",
		Description: "Roll the case back to the most recent save artifact with a label",
	}, s.handleRestoreSave)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_saves",
		Description: "List save artifacts, newest first",
	}, s.handleListSaves)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "cleanup_saves",
		Description: "Delete the oldest save artifacts beyond a keep count",
	}, s.handleCleanupSaves)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "narrative_snapshot",
		Description: "Emit a narrative snapshot with narrator-supplied threads and strategy",
	}, s.handleNarrativeSnapshot)
}
