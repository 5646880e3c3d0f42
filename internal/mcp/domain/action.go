// Package domain defines the MCP tool schemas and handlers for the adventure
// engine. Each tool pairs an Input struct carrying the JSON schema with a
// handler that delegates to the resolution engine and returns the engine's
// result type directly.
package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hollowvale/adventure-engine/internal/game/service"
)

// TakeActionInput represents the MCP tool input for resolving a player action.
type TakeActionInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
	Action    string `json:"action" jsonschema:"free-form description of what the player attempts"`
	Stat      string `json:"stat,omitempty" jsonschema:"stat to check the action against; omit for automatic success"`
	DC        int    `json:"dc,omitempty" jsonschema:"difficulty class for the check (default 10)"`
}

// TakeActionTool defines the MCP tool schema for resolving a player action.
func TakeActionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "take_action",
		Description: "Resolves a player action, rolling a d20 stat check when a stat is named. Successful actions award score and every action is appended to the session history.",
	}
}

// TakeActionHandler executes a take_action request.
func TakeActionHandler(engine *service.Engine) mcp.ToolHandlerFor[TakeActionInput, service.ActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TakeActionInput) (*mcp.CallToolResult, service.ActionResult, error) {
		result, err := engine.TakeAction(ctx, input.SessionID, input.Action, input.Stat, input.DC)
		if err != nil {
			return nil, service.ActionResult{}, err
		}
		return nil, result, nil
	}
}

// CombatRoundInput represents the MCP tool input for resolving one attack.
type CombatRoundInput struct {
	SessionID  string `json:"session_id" jsonschema:"game session identifier"`
	TargetName string `json:"target_name" jsonschema:"name of the attack target"`
	AttackStat string `json:"attack_stat,omitempty" jsonschema:"stat used for the attack roll (default strength)"`
	TargetAC   int    `json:"target_ac,omitempty" jsonschema:"armor class to beat (default 12)"`
	DamageDice string `json:"damage_dice,omitempty" jsonschema:"damage expression such as 1d6 or 2d8+3 (default 1d6)"`
}

// CombatRoundTool defines the MCP tool schema for resolving one attack.
func CombatRoundTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "combat_round",
		Description: "Resolves one attack roll against a target and reports damage on a hit. Never mutates hit points; apply consequences with modify_state.",
	}
}

// CombatRoundHandler executes a combat_round request.
func CombatRoundHandler(engine *service.Engine) mcp.ToolHandlerFor[CombatRoundInput, service.CombatResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CombatRoundInput) (*mcp.CallToolResult, service.CombatResult, error) {
		result, err := engine.CombatRound(ctx, input.SessionID, input.TargetName, input.AttackStat, input.TargetAC, input.DamageDice)
		if err != nil {
			return nil, service.CombatResult{}, err
		}
		return nil, result, nil
	}
}

// ModifyStateInput represents the MCP tool input for a direct state mutation.
type ModifyStateInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
	Action    string `json:"action" jsonschema:"what to change: hp, stat, score, or location"`
	Value     any    `json:"value" jsonschema:"signed delta for hp/stat/score (numeric or numeric string), or the new location string"`
	Stat      string `json:"stat,omitempty" jsonschema:"stat name, required when action is stat"`
	Reason    string `json:"reason,omitempty" jsonschema:"narrative reason recorded with the change"`
}

// ModifyStateTool defines the MCP tool schema for a direct state mutation.
func ModifyStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "modify_state",
		Description: "Applies a clamped mutation to the player state: hp (bounded by max_hp), a named stat (bounded by its definition), score (unbounded), or location.",
	}
}

// ModifyStateHandler executes a modify_state request.
func ModifyStateHandler(engine *service.Engine) mcp.ToolHandlerFor[ModifyStateInput, service.StateChange] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ModifyStateInput) (*mcp.CallToolResult, service.StateChange, error) {
		result, err := engine.ModifyState(ctx, input.SessionID, input.Action, input.Value, input.Stat, input.Reason)
		if err != nil {
			return nil, service.StateChange{}, err
		}
		return nil, result, nil
	}
}

// EvalScriptInput represents the MCP tool input for running a Lua snippet.
type EvalScriptInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
	Script    string `json:"script" jsonschema:"Lua source; the mutable player state is bound to the global state table and dice helpers to the dice table"`
}

// EvalScriptTool defines the MCP tool schema for running a Lua snippet.
func EvalScriptTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "eval_script",
		Description: "Runs a Lua script against the session's player state. Mutations to the state table persist after a successful run; a script error leaves the session untouched.",
	}
}

// EvalScriptHandler executes an eval_script request.
func EvalScriptHandler(engine *service.Engine) mcp.ToolHandlerFor[EvalScriptInput, service.ScriptResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EvalScriptInput) (*mcp.CallToolResult, service.ScriptResult, error) {
		result, err := engine.EvalScript(ctx, input.SessionID, input.Script)
		if err != nil {
			return nil, service.ScriptResult{}, err
		}
		return nil, result, nil
	}
}
