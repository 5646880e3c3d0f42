package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	gamedomain "github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/game/service"
)

// RecordEventInput represents the MCP tool input for recording a world event.
type RecordEventInput struct {
	SessionID   string   `json:"session_id" jsonschema:"game session identifier"`
	Description string   `json:"description" jsonschema:"what happened"`
	Location    string   `json:"location,omitempty" jsonschema:"where it happened; defaults to the player's current location"`
	Importance  int      `json:"importance,omitempty" jsonschema:"memory importance from 1 to 10 (default 1)"`
	Tags        []string `json:"tags,omitempty" jsonschema:"free-form tags stored with each witness memory"`
}

// RecordEventTool defines the MCP tool schema for recording a world event.
func RecordEventTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "record_event",
		Description: "Records a world event. Every character at the event location witnesses it and gains an observation memory; characters elsewhere learn nothing.",
	}
}

// RecordEventHandler executes a record_event request.
func RecordEventHandler(engine *service.Engine) mcp.ToolHandlerFor[RecordEventInput, service.EventResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RecordEventInput) (*mcp.CallToolResult, service.EventResult, error) {
		result, err := engine.RecordEvent(ctx, input.SessionID, input.Description, input.Location, input.Importance, input.Tags)
		if err != nil {
			return nil, service.EventResult{}, err
		}
		return nil, result, nil
	}
}

// AddCharacterMemoryInput represents the MCP tool input for a direct memory.
type AddCharacterMemoryInput struct {
	SessionID     string   `json:"session_id" jsonschema:"game session identifier"`
	CharacterName string   `json:"character_name" jsonschema:"character name, matched case-insensitively"`
	Description   string   `json:"description" jsonschema:"what the character remembers"`
	Type          string   `json:"type,omitempty" jsonschema:"one of observation, interaction, rumor (default rumor)"`
	Importance    int      `json:"importance,omitempty" jsonschema:"memory importance from 1 to 10 (default 1)"`
	Tags          []string `json:"tags,omitempty" jsonschema:"free-form tags stored with the memory"`
}

// AddCharacterMemoryTool defines the MCP tool schema for a direct memory.
func AddCharacterMemoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_character_memory",
		Description: "Gives one character a memory directly, for things they heard or experienced off-screen. Memories beyond the cap evict the least important oldest entry.",
	}
}

// AddCharacterMemoryHandler executes an add_character_memory request.
func AddCharacterMemoryHandler(engine *service.Engine) mcp.ToolHandlerFor[AddCharacterMemoryInput, service.MemoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddCharacterMemoryInput) (*mcp.CallToolResult, service.MemoryResult, error) {
		result, err := engine.AddCharacterMemory(ctx, input.SessionID, input.CharacterName, input.Description, input.Type, input.Importance, input.Tags)
		if err != nil {
			return nil, service.MemoryResult{}, err
		}
		return nil, result, nil
	}
}

// GetCharacterMemoriesInput represents the MCP tool input for memory retrieval.
type GetCharacterMemoriesInput struct {
	SessionID     string `json:"session_id" jsonschema:"game session identifier"`
	CharacterName string `json:"character_name" jsonschema:"character name, matched case-insensitively"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum memories to return (default 10)"`
}

// GetCharacterMemoriesResult represents the MCP tool output for memory retrieval.
type GetCharacterMemoriesResult struct {
	CharacterName string              `json:"character_name"`
	Memories      []gamedomain.Memory `json:"memories"`
}

// GetCharacterMemoriesTool defines the MCP tool schema for memory retrieval.
func GetCharacterMemoriesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_character_memories",
		Description: "Returns a character's most relevant memories, ordered by importance then recency.",
	}
}

// GetCharacterMemoriesHandler executes a get_character_memories request.
func GetCharacterMemoriesHandler(engine *service.Engine) mcp.ToolHandlerFor[GetCharacterMemoriesInput, GetCharacterMemoriesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetCharacterMemoriesInput) (*mcp.CallToolResult, GetCharacterMemoriesResult, error) {
		memories, err := engine.CharacterMemories(ctx, input.SessionID, input.CharacterName, input.Limit)
		if err != nil {
			return nil, GetCharacterMemoriesResult{}, err
		}
		return nil, GetCharacterMemoriesResult{CharacterName: input.CharacterName, Memories: memories}, nil
	}
}
