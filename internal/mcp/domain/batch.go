package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hollowvale/adventure-engine/internal/game/service"
)

// BatchCommandInput is one command inside an execute_batch request.
type BatchCommandInput struct {
	Tool string         `json:"tool" jsonschema:"name of the mutating tool to invoke"`
	Args map[string]any `json:"args,omitempty" jsonschema:"arguments for the tool; session_id is injected from the batch when absent"`
}

// ExecuteBatchInput represents the MCP tool input for a command batch.
type ExecuteBatchInput struct {
	SessionID string              `json:"session_id" jsonschema:"game session identifier applied to every command lacking its own"`
	Commands  []BatchCommandInput `json:"commands" jsonschema:"commands executed in order; a failure is recorded and the batch continues"`
}

// ExecuteBatchResult represents the MCP tool output for a command batch.
type ExecuteBatchResult struct {
	Results []service.BatchItemResult `json:"results"`
}

// ExecuteBatchTool defines the MCP tool schema for a command batch.
func ExecuteBatchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "execute_batch",
		Description: "Executes a sequence of mutating tool calls in order. Each command's result or error is recorded by index; failures never abort the batch and nothing is rolled back. Listing tools and execute_batch itself are not batchable.",
	}
}

// ExecuteBatchHandler executes an execute_batch request.
func ExecuteBatchHandler(engine *service.Engine) mcp.ToolHandlerFor[ExecuteBatchInput, ExecuteBatchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteBatchInput) (*mcp.CallToolResult, ExecuteBatchResult, error) {
		commands := make([]service.BatchCommand, 0, len(input.Commands))
		for _, command := range input.Commands {
			commands = append(commands, service.BatchCommand{Tool: command.Tool, Args: command.Args})
		}
		results, err := engine.ExecuteBatch(ctx, input.SessionID, commands)
		if err != nil {
			return nil, ExecuteBatchResult{}, err
		}
		return nil, ExecuteBatchResult{Results: results}, nil
	}
}
