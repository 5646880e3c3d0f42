package service

import (
	"context"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
)

// BatchCommand is one entry in an ExecuteBatch request: a tool name from the
// batch allow-list and its loosely-typed arguments.
type BatchCommand struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// BatchItemResult captures one command's outcome. A failed item carries the
// error message and code; its index always matches its position in the
// request.
type BatchItemResult struct {
	Index   int    `json:"index"`
	Tool    string `json:"tool"`
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// batchHandlers is the fixed allow-list of tools a batch may dispatch to:
// mutating operations only, never read-only listing tools and never the
// batch itself, which prevents recursion.
var batchHandlers = map[string]func(*Engine, context.Context, string, map[string]any) (any, error){
	"take_action":           (*Engine).batchTakeAction,
	"combat_round":          (*Engine).batchCombatRound,
	"modify_state":          (*Engine).batchModifyState,
	"manage_inventory":      (*Engine).batchManageInventory,
	"update_quest":          (*Engine).batchUpdateQuest,
	"interact_npc":          (*Engine).batchInteractNPC,
	"manage_faction":        (*Engine).batchManageFaction,
	"manage_economy":        (*Engine).batchManageEconomy,
	"manage_time":           (*Engine).batchManageTime,
	"manage_status_effects": (*Engine).batchManageStatusEffects,
	"record_event":          (*Engine).batchRecordEvent,
	"add_character_memory":  (*Engine).batchAddCharacterMemory,
	"create_character":      (*Engine).batchCreateCharacter,
	"update_character":      (*Engine).batchUpdateCharacter,
	"create_location":       (*Engine).batchCreateLocation,
	"update_location":       (*Engine).batchUpdateLocation,
	"create_item":           (*Engine).batchCreateItem,
	"update_item":           (*Engine).batchUpdateItem,
}

// ExecuteBatch runs commands in order, dispatching each to the allow-list.
// The batch session id is injected into items that do not carry their own.
// Items are isolated: a failure is captured in that item's result and the
// sequence continues; nothing is rolled back. A later item reads the
// already-persisted effects of earlier ones.
func (e *Engine) ExecuteBatch(ctx context.Context, sessionID string, commands []BatchCommand) ([]BatchItemResult, error) {
	if len(commands) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "batch requires at least one command")
	}

	results := make([]BatchItemResult, 0, len(commands))
	for i, command := range commands {
		item := BatchItemResult{Index: i, Tool: command.Tool}

		handler, ok := batchHandlers[command.Tool]
		if !ok {
			err := apperrors.New(apperrors.CodeInvalidArgument,
				"tool %q is not batchable", command.Tool)
			item.Error = err.Error()
			item.Code = string(apperrors.GetCode(err))
			results = append(results, item)
			continue
		}

		itemSession := argString(command.Args, "session_id")
		if itemSession == "" {
			itemSession = sessionID
		}

		result, err := handler(e, ctx, itemSession, command.Args)
		if err != nil {
			item.Error = err.Error()
			item.Code = string(apperrors.GetCode(err))
		} else {
			item.Success = true
			item.Result = result
		}
		results = append(results, item)
	}
	return results, nil
}

func (e *Engine) batchTakeAction(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.TakeAction(ctx, sessionID,
		argString(args, "action"),
		argString(args, "stat"),
		argInt(args, "difficulty"))
}

func (e *Engine) batchCombatRound(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.CombatRound(ctx, sessionID,
		argString(args, "target"),
		argString(args, "attack_stat"),
		argInt(args, "target_ac"),
		argString(args, "damage_dice"))
}

func (e *Engine) batchModifyState(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.ModifyState(ctx, sessionID,
		argString(args, "action"),
		args["value"],
		argString(args, "stat_name"),
		argString(args, "reason"))
}

func (e *Engine) batchManageInventory(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.ManageInventory(ctx, sessionID,
		argString(args, "action"),
		argString(args, "item_name"),
		argString(args, "description"),
		argInt(args, "quantity"),
		argMap(args, "properties"))
}

func (e *Engine) batchUpdateQuest(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.UpdateQuest(ctx, sessionID, QuestUpdate{
		QuestID:           argString(args, "quest_id"),
		Title:             argString(args, "title"),
		Description:       argString(args, "description"),
		Status:            argString(args, "status"),
		AddObjective:      argString(args, "add_objective"),
		CompleteObjective: argString(args, "complete_objective"),
		Rewards:           argMap(args, "rewards"),
	})
}

func (e *Engine) batchInteractNPC(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.InteractNPC(ctx, sessionID,
		argString(args, "npc_name"),
		argInt(args, "sentiment_change"))
}

func (e *Engine) batchManageFaction(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.ManageFaction(ctx, sessionID, FactionRequest{
		Action:           argString(args, "action"),
		FactionName:      argString(args, "faction_name"),
		Description:      argString(args, "description"),
		ReputationChange: argInt(args, "reputation_change"),
		Properties:       argMap(args, "properties"),
	})
}

func (e *Engine) batchManageEconomy(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.ManageEconomy(ctx, sessionID, EconomyRequest{
		Action:     argString(args, "action"),
		Amount:     argInt(args, "amount"),
		ItemID:     argString(args, "item_id"),
		ToLocation: argString(args, "to_location"),
	})
}

func (e *Engine) batchManageTime(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.ManageTime(ctx, sessionID,
		argString(args, "action"),
		argInt(args, "hours"))
}

func (e *Engine) batchManageStatusEffects(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	req := EffectRequest{
		Action:      argString(args, "action"),
		EffectID:    argString(args, "effect_id"),
		Name:        argString(args, "name"),
		Description: argString(args, "description"),
		Properties:  argMap(args, "properties"),
	}
	if _, ok := args["duration"]; ok {
		duration := argInt(args, "duration")
		req.Duration = &duration
	}
	return e.ManageStatusEffects(ctx, sessionID, req)
}

func (e *Engine) batchRecordEvent(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.RecordEvent(ctx, sessionID,
		argString(args, "description"),
		argString(args, "location"),
		argInt(args, "importance"),
		argStrings(args, "tags"))
}

func (e *Engine) batchAddCharacterMemory(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.AddCharacterMemory(ctx, sessionID,
		argString(args, "character_name"),
		argString(args, "description"),
		argString(args, "memory_type"),
		argInt(args, "importance"),
		argStrings(args, "tags"))
}

func (e *Engine) batchCreateCharacter(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.CreateCharacter(ctx, sessionID, CharacterInput{
		Name:        argString(args, "name"),
		Description: argString(args, "description"),
		Location:    argString(args, "location"),
		Stats:       argIntMap(args, "stats"),
		Properties:  argMap(args, "properties"),
	})
}

func (e *Engine) batchUpdateCharacter(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.UpdateCharacter(ctx, sessionID, argString(args, "character_id"), CharacterInput{
		Name:        argString(args, "name"),
		Description: argString(args, "description"),
		Location:    argString(args, "location"),
		Stats:       argIntMap(args, "stats"),
		Properties:  argMap(args, "properties"),
	})
}

func (e *Engine) batchCreateLocation(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.CreateLocation(ctx, sessionID, LocationInput{
		Name:        argString(args, "name"),
		Description: argString(args, "description"),
		ConnectedTo: argStrings(args, "connected_to"),
		Properties:  argMap(args, "properties"),
	})
}

func (e *Engine) batchUpdateLocation(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	return e.UpdateLocation(ctx, sessionID, argString(args, "location_id"), LocationInput{
		Name:        argString(args, "name"),
		Description: argString(args, "description"),
		ConnectedTo: argStrings(args, "connected_to"),
		Properties:  argMap(args, "properties"),
	})
}

func (e *Engine) batchCreateItem(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	input := ItemInput{
		Name:        argString(args, "name"),
		Description: argString(args, "description"),
		Properties:  argMap(args, "properties"),
	}
	if location := argString(args, "location"); location != "" {
		input.Location = &location
	}
	return e.CreateItem(ctx, sessionID, input)
}

func (e *Engine) batchUpdateItem(ctx context.Context, sessionID string, args map[string]any) (any, error) {
	input := ItemInput{
		Name:        argString(args, "name"),
		Description: argString(args, "description"),
		Properties:  argMap(args, "properties"),
	}
	if location := argString(args, "location"); location != "" {
		input.Location = &location
	}
	return e.UpdateItem(ctx, sessionID, argString(args, "item_id"), input)
}

// Batch args arrive as JSON-decoded values: strings, float64 numbers, and
// generic maps and slices. These helpers pull typed values out, zero when
// absent or mistyped.

func argString(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}

func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func argMap(args map[string]any, key string) map[string]any {
	value, _ := args[key].(map[string]any)
	return value
}

func argStrings(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, entry := range v {
			if s, ok := entry.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

func argIntMap(args map[string]any, key string) map[string]int {
	raw, ok := args[key].(map[string]any)
	if !ok {
		if typed, ok := args[key].(map[string]int); ok {
			return typed
		}
		return nil
	}
	result := make(map[string]int, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case int:
			result[name] = v
		case float64:
			result[name] = int(v)
		}
	}
	return result
}
