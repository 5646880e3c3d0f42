package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	gamedomain "github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/game/service"
)

// StartAdventureInput represents the MCP tool input for creating a session.
type StartAdventureInput struct {
	AdventureID   string         `json:"adventure_id" jsonschema:"adventure template identifier"`
	CharacterName string         `json:"character_name,omitempty" jsonschema:"player character name stored in custom data"`
	RollStats     bool           `json:"roll_stats,omitempty" jsonschema:"roll 4d6-drop-lowest for every stat instead of template defaults"`
	CustomStats   map[string]int `json:"custom_stats,omitempty" jsonschema:"explicit stat overrides, clamped to each stat's bounds"`
}

// StartAdventureTool defines the MCP tool schema for creating a session.
func StartAdventureTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "start_adventure",
		Description: "Creates a new game session from an adventure template, materializing starting stats, hit points, currency, clock, and the opening story with word-list placeholders substituted.",
	}
}

// StartAdventureHandler executes a start_adventure request.
func StartAdventureHandler(engine *service.Engine) mcp.ToolHandlerFor[StartAdventureInput, service.StartAdventureResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StartAdventureInput) (*mcp.CallToolResult, service.StartAdventureResult, error) {
		result, err := engine.StartAdventure(ctx, service.StartAdventureRequest{
			AdventureID:   input.AdventureID,
			CharacterName: input.CharacterName,
			RollStats:     input.RollStats,
			CustomStats:   input.CustomStats,
		})
		if err != nil {
			return nil, service.StartAdventureResult{}, err
		}
		return nil, result, nil
	}
}

// SessionInput represents the MCP tool input for operations that only need a
// session identifier.
type SessionInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
}

// ContinueAdventureTool defines the MCP tool schema for resuming a session.
func ContinueAdventureTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "continue_adventure",
		Description: "Resumes an existing session: bumps its last-played time and returns current state, the template prompt, recent actions, and the latest summary.",
	}
}

// ContinueAdventureHandler executes a continue_adventure request.
func ContinueAdventureHandler(engine *service.Engine) mcp.ToolHandlerFor[SessionInput, service.ContinueAdventureResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, service.ContinueAdventureResult, error) {
		result, err := engine.ContinueAdventure(ctx, input.SessionID)
		if err != nil {
			return nil, service.ContinueAdventureResult{}, err
		}
		return nil, result, nil
	}
}

// ListSessionsInput represents the MCP tool input for listing sessions.
type ListSessionsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum sessions to return, most recently played first (default 20)"`
}

// ListSessionsResult represents the MCP tool output for listing sessions.
type ListSessionsResult struct {
	Sessions []gamedomain.GameSession `json:"sessions"`
}

// ListSessionsTool defines the MCP tool schema for listing sessions.
func ListSessionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_sessions",
		Description: "Lists game sessions ordered by most recently played.",
	}
}

// ListSessionsHandler executes a list_sessions request.
func ListSessionsHandler(engine *service.Engine) mcp.ToolHandlerFor[ListSessionsInput, ListSessionsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListSessionsInput) (*mcp.CallToolResult, ListSessionsResult, error) {
		sessions, err := engine.ListSessions(ctx, input.Limit)
		if err != nil {
			return nil, ListSessionsResult{}, err
		}
		return nil, ListSessionsResult{Sessions: sessions}, nil
	}
}

// ListAdventuresInput represents the MCP tool input for listing adventures.
type ListAdventuresInput struct{}

// ListAdventuresResult represents the MCP tool output for listing adventures.
type ListAdventuresResult struct {
	Adventures []gamedomain.Adventure `json:"adventures"`
}

// ListAdventuresTool defines the MCP tool schema for listing adventures.
func ListAdventuresTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_adventures",
		Description: "Lists every available adventure template.",
	}
}

// ListAdventuresHandler executes a list_adventures request.
func ListAdventuresHandler(engine *service.Engine) mcp.ToolHandlerFor[ListAdventuresInput, ListAdventuresResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListAdventuresInput) (*mcp.CallToolResult, ListAdventuresResult, error) {
		adventures, err := engine.ListAdventures(ctx)
		if err != nil {
			return nil, ListAdventuresResult{}, err
		}
		return nil, ListAdventuresResult{Adventures: adventures}, nil
	}
}

// GetStateResult represents the MCP tool output for reading player state.
type GetStateResult struct {
	State gamedomain.PlayerState `json:"state"`
}

// GetStateTool defines the MCP tool schema for reading player state.
func GetStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_state",
		Description: "Returns the session's current player state without mutating anything.",
	}
}

// GetStateHandler executes a get_state request.
func GetStateHandler(engine *service.Engine) mcp.ToolHandlerFor[SessionInput, GetStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, GetStateResult, error) {
		state, err := engine.State(ctx, input.SessionID)
		if err != nil {
			return nil, GetStateResult{}, err
		}
		return nil, GetStateResult{State: state}, nil
	}
}

// GetSessionInfoInput represents the MCP tool input for the full session view.
type GetSessionInfoInput struct {
	SessionID       string `json:"session_id" jsonschema:"game session identifier"`
	IncludeMemories bool   `json:"include_memories,omitempty" jsonschema:"attach each character's most relevant memories"`
	MemoryLimit     int    `json:"memory_limit,omitempty" jsonschema:"memories per character when included (default 10)"`
}

// GetSessionInfoTool defines the MCP tool schema for the full session view.
func GetSessionInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_session_info",
		Description: "Returns the session state plus its characters, optionally with each character's top memories ordered by importance then recency.",
	}
}

// GetSessionInfoHandler executes a get_session_info request.
func GetSessionInfoHandler(engine *service.Engine) mcp.ToolHandlerFor[GetSessionInfoInput, service.SessionInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetSessionInfoInput) (*mcp.CallToolResult, service.SessionInfo, error) {
		info, err := engine.GetSessionInfo(ctx, input.SessionID, input.IncludeMemories, input.MemoryLimit)
		if err != nil {
			return nil, service.SessionInfo{}, err
		}
		return nil, info, nil
	}
}

// GetHistoryInput represents the MCP tool input for reading action history.
type GetHistoryInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum records to return, newest first (default 20)"`
}

// GetHistoryResult represents the MCP tool output for reading action history.
type GetHistoryResult struct {
	Actions []gamedomain.ActionRecord `json:"actions"`
}

// GetHistoryTool defines the MCP tool schema for reading action history.
func GetHistoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_history",
		Description: "Returns the session's action history, newest first.",
	}
}

// GetHistoryHandler executes a get_history request.
func GetHistoryHandler(engine *service.Engine) mcp.ToolHandlerFor[GetHistoryInput, GetHistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetHistoryInput) (*mcp.CallToolResult, GetHistoryResult, error) {
		actions, err := engine.History(ctx, input.SessionID, input.Limit)
		if err != nil {
			return nil, GetHistoryResult{}, err
		}
		return nil, GetHistoryResult{Actions: actions}, nil
	}
}

// SummarizeProgressInput represents the MCP tool input for storing a recap.
type SummarizeProgressInput struct {
	SessionID        string   `json:"session_id" jsonschema:"game session identifier"`
	Summary          string   `json:"summary" jsonschema:"narrative recap of the play session"`
	KeyEvents        []string `json:"key_events,omitempty" jsonschema:"notable events worth remembering"`
	CharacterChanges []string `json:"character_changes,omitempty" jsonschema:"how characters changed during the session"`
}

// SummarizeProgressTool defines the MCP tool schema for storing a recap.
func SummarizeProgressTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "summarize_progress",
		Description: "Stores a narrator-authored summary of the play session for later recall.",
	}
}

// SummarizeProgressHandler executes a summarize_progress request.
func SummarizeProgressHandler(engine *service.Engine) mcp.ToolHandlerFor[SummarizeProgressInput, gamedomain.SessionSummary] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SummarizeProgressInput) (*mcp.CallToolResult, gamedomain.SessionSummary, error) {
		summary, err := engine.SummarizeProgress(ctx, input.SessionID, input.Summary, input.KeyEvents, input.CharacterChanges)
		if err != nil {
			return nil, gamedomain.SessionSummary{}, err
		}
		return nil, summary, nil
	}
}

// GetAdventureSummaryResult represents the MCP tool output for stored recaps.
type GetAdventureSummaryResult struct {
	Summaries []gamedomain.SessionSummary `json:"summaries"`
}

// GetAdventureSummaryTool defines the MCP tool schema for stored recaps.
func GetAdventureSummaryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_adventure_summary",
		Description: "Returns every stored session summary in chronological order.",
	}
}

// GetAdventureSummaryHandler executes a get_adventure_summary request.
func GetAdventureSummaryHandler(engine *service.Engine) mcp.ToolHandlerFor[SessionInput, GetAdventureSummaryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, GetAdventureSummaryResult, error) {
		summaries, err := engine.AdventureSummary(ctx, input.SessionID)
		if err != nil {
			return nil, GetAdventureSummaryResult{}, err
		}
		return nil, GetAdventureSummaryResult{Summaries: summaries}, nil
	}
}

// RandomizeWordInput represents the MCP tool input for drawing a random word.
type RandomizeWordInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
	WordList  string `json:"word_list" jsonschema:"name of the adventure word list to draw from"`
	Category  string `json:"category,omitempty" jsonschema:"category within the word list; omit to draw from all categories"`
	Hint      string `json:"hint,omitempty" jsonschema:"what the word is for, folded into the fallback prompt"`
}

// RandomizeWordTool defines the MCP tool schema for drawing a random word.
func RandomizeWordTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "randomize_word",
		Description: "Draws a random word from the adventure's word lists, or returns a generation prompt when no matching list exists.",
	}
}

// RandomizeWordHandler executes a randomize_word request.
func RandomizeWordHandler(engine *service.Engine) mcp.ToolHandlerFor[RandomizeWordInput, service.RandomWordResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RandomizeWordInput) (*mcp.CallToolResult, service.RandomWordResult, error) {
		result, err := engine.RandomizeWord(ctx, input.SessionID, input.WordList, input.Category, input.Hint)
		if err != nil {
			return nil, service.RandomWordResult{}, err
		}
		return nil, result, nil
	}
}
