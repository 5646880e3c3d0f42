package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hollowvale/adventure-engine/internal/game/service"
)

// ManageInventoryInput represents the MCP tool input for inventory operations.
type ManageInventoryInput struct {
	SessionID   string         `json:"session_id" jsonschema:"game session identifier"`
	Action      string         `json:"action" jsonschema:"one of add, remove, update, check, list, use"`
	ItemName    string         `json:"item_name,omitempty" jsonschema:"inventory item name; required for everything but list"`
	Description string         `json:"description,omitempty" jsonschema:"item description for add/update"`
	Quantity    int            `json:"quantity,omitempty" jsonschema:"quantity to add or remove (default 1)"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"item properties to merge, such as consumable"`
}

// ManageInventoryTool defines the MCP tool schema for inventory operations.
func ManageInventoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "manage_inventory",
		Description: "Manages the player's inventory: add merges stacks by name, remove drops a stack at zero, use consumes one of a consumable or bumps use_count otherwise, check and list are read-only.",
	}
}

// ManageInventoryHandler executes a manage_inventory request.
func ManageInventoryHandler(engine *service.Engine) mcp.ToolHandlerFor[ManageInventoryInput, service.InventoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ManageInventoryInput) (*mcp.CallToolResult, service.InventoryResult, error) {
		result, err := engine.ManageInventory(ctx, input.SessionID, input.Action, input.ItemName, input.Description, input.Quantity, input.Properties)
		if err != nil {
			return nil, service.InventoryResult{}, err
		}
		return nil, result, nil
	}
}

// UpdateQuestInput represents the MCP tool input for quest mutations.
type UpdateQuestInput struct {
	SessionID         string         `json:"session_id" jsonschema:"game session identifier"`
	QuestID           string         `json:"quest_id,omitempty" jsonschema:"quest identifier; omit with a title to create a new quest"`
	Title             string         `json:"title,omitempty" jsonschema:"quest title; required when creating"`
	Description       string         `json:"description,omitempty" jsonschema:"quest description"`
	Status            string         `json:"status,omitempty" jsonschema:"one of active, completed, failed, abandoned"`
	AddObjective      string         `json:"add_objective,omitempty" jsonschema:"objective text to append"`
	CompleteObjective string         `json:"complete_objective,omitempty" jsonschema:"objective text to mark completed (idempotent)"`
	Rewards           map[string]any `json:"rewards,omitempty" jsonschema:"reward metadata stored with the quest"`
}

// UpdateQuestTool defines the MCP tool schema for quest mutations.
func UpdateQuestTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_quest",
		Description: "Creates or updates a quest. A missing quest id with a title creates a new active quest; objective completion is idempotent.",
	}
}

// UpdateQuestHandler executes an update_quest request.
func UpdateQuestHandler(engine *service.Engine) mcp.ToolHandlerFor[UpdateQuestInput, service.QuestResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateQuestInput) (*mcp.CallToolResult, service.QuestResult, error) {
		result, err := engine.UpdateQuest(ctx, input.SessionID, service.QuestUpdate{
			QuestID:           input.QuestID,
			Title:             input.Title,
			Description:       input.Description,
			Status:            input.Status,
			AddObjective:      input.AddObjective,
			CompleteObjective: input.CompleteObjective,
			Rewards:           input.Rewards,
		})
		if err != nil {
			return nil, service.QuestResult{}, err
		}
		return nil, result, nil
	}
}

// InteractNPCInput represents the MCP tool input for relationship changes.
type InteractNPCInput struct {
	SessionID       string `json:"session_id" jsonschema:"game session identifier"`
	NPCName         string `json:"npc_name" jsonschema:"name the relationship is tracked under"`
	SentimentChange int    `json:"sentiment_change" jsonschema:"signed sentiment delta, clamped to keep the value within [-100,100]"`
}

// InteractNPCTool defines the MCP tool schema for relationship changes.
func InteractNPCTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "interact_npc",
		Description: "Applies a sentiment change toward an NPC and returns the new value with its relationship label (Nemesis through Ally).",
	}
}

// InteractNPCHandler executes an interact_npc request.
func InteractNPCHandler(engine *service.Engine) mcp.ToolHandlerFor[InteractNPCInput, service.InteractionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InteractNPCInput) (*mcp.CallToolResult, service.InteractionResult, error) {
		result, err := engine.InteractNPC(ctx, input.SessionID, input.NPCName, input.SentimentChange)
		if err != nil {
			return nil, service.InteractionResult{}, err
		}
		return nil, result, nil
	}
}

// ManageFactionInput represents the MCP tool input for faction operations.
type ManageFactionInput struct {
	SessionID        string         `json:"session_id" jsonschema:"game session identifier"`
	Action           string         `json:"action" jsonschema:"one of create, update_reputation, get, list"`
	FactionName      string         `json:"faction_name,omitempty" jsonschema:"faction name, matched case-insensitively"`
	Description      string         `json:"description,omitempty" jsonschema:"faction description for create"`
	ReputationChange int            `json:"reputation_change,omitempty" jsonschema:"signed reputation delta for update_reputation"`
	Properties       map[string]any `json:"properties,omitempty" jsonschema:"faction properties for create"`
}

// ManageFactionTool defines the MCP tool schema for faction operations.
func ManageFactionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "manage_faction",
		Description: "Manages session factions: create, adjust reputation within [-100,100] with a seven-tier standing label, get, or list. Requires the adventure's factions feature.",
	}
}

// ManageFactionHandler executes a manage_faction request.
func ManageFactionHandler(engine *service.Engine) mcp.ToolHandlerFor[ManageFactionInput, service.FactionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ManageFactionInput) (*mcp.CallToolResult, service.FactionResult, error) {
		result, err := engine.ManageFaction(ctx, input.SessionID, service.FactionRequest{
			Action:           input.Action,
			FactionName:      input.FactionName,
			Description:      input.Description,
			ReputationChange: input.ReputationChange,
			Properties:       input.Properties,
		})
		if err != nil {
			return nil, service.FactionResult{}, err
		}
		return nil, result, nil
	}
}

// ManageEconomyInput represents the MCP tool input for economy operations.
type ManageEconomyInput struct {
	SessionID  string `json:"session_id" jsonschema:"game session identifier"`
	Action     string `json:"action" jsonschema:"one of add_currency, remove_currency, buy_item, sell_item, transfer_item"`
	Amount     int    `json:"amount,omitempty" jsonschema:"currency amount; for buy_item an explicit price overriding the item's price property"`
	ItemID     string `json:"item_id,omitempty" jsonschema:"world item id for buy/transfer, inventory item id for sell"`
	ToLocation string `json:"to_location,omitempty" jsonschema:"destination location for transfer_item"`
}

// ManageEconomyTool defines the MCP tool schema for economy operations.
func ManageEconomyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "manage_economy",
		Description: "Manages the player's currency and trade: add or remove funds (removal fails without deducting when funds are short), buy a world item into the inventory, sell an inventory item by id, or move a world item. Requires the adventure's currency feature.",
	}
}

// ManageEconomyHandler executes a manage_economy request.
func ManageEconomyHandler(engine *service.Engine) mcp.ToolHandlerFor[ManageEconomyInput, service.EconomyResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ManageEconomyInput) (*mcp.CallToolResult, service.EconomyResult, error) {
		result, err := engine.ManageEconomy(ctx, input.SessionID, service.EconomyRequest{
			Action:     input.Action,
			Amount:     input.Amount,
			ItemID:     input.ItemID,
			ToLocation: input.ToLocation,
		})
		if err != nil {
			return nil, service.EconomyResult{}, err
		}
		return nil, result, nil
	}
}

// ManageTimeInput represents the MCP tool input for clock operations.
type ManageTimeInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
	Action    string `json:"action" jsonschema:"one of advance, set, get"`
	Hours     int    `json:"hours,omitempty" jsonschema:"hours to advance, or the hour to set"`
}

// ManageTimeTool defines the MCP tool schema for clock operations.
func ManageTimeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "manage_time",
		Description: "Manages the in-game clock: advance rolls the day forward on overflow, set takes the hour mod 24 without changing the day, get is a pure read. Requires the adventure's time-tracking feature.",
	}
}

// ManageTimeHandler executes a manage_time request.
func ManageTimeHandler(engine *service.Engine) mcp.ToolHandlerFor[ManageTimeInput, service.TimeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ManageTimeInput) (*mcp.CallToolResult, service.TimeResult, error) {
		result, err := engine.ManageTime(ctx, input.SessionID, input.Action, input.Hours)
		if err != nil {
			return nil, service.TimeResult{}, err
		}
		return nil, result, nil
	}
}

// ManageStatusEffectsInput represents the MCP tool input for status effects.
type ManageStatusEffectsInput struct {
	SessionID   string         `json:"session_id" jsonschema:"game session identifier"`
	Action      string         `json:"action" jsonschema:"one of add, update, remove, list"`
	EffectID    string         `json:"effect_id,omitempty" jsonschema:"status effect identifier for update/remove"`
	Name        string         `json:"name,omitempty" jsonschema:"effect name for add"`
	Description string         `json:"description,omitempty" jsonschema:"effect description"`
	Duration    *int           `json:"duration,omitempty" jsonschema:"-1 permanent, 0 expired, >0 remaining uses; omitted on update leaves it unchanged"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"effect properties"`
}

// ManageStatusEffectsTool defines the MCP tool schema for status effects.
func ManageStatusEffectsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "manage_status_effects",
		Description: "Manages status effects on the player. Durations never tick down automatically; list returns active effects only. Requires the adventure's status-effects feature.",
	}
}

// ManageStatusEffectsHandler executes a manage_status_effects request.
func ManageStatusEffectsHandler(engine *service.Engine) mcp.ToolHandlerFor[ManageStatusEffectsInput, service.EffectResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ManageStatusEffectsInput) (*mcp.CallToolResult, service.EffectResult, error) {
		result, err := engine.ManageStatusEffects(ctx, input.SessionID, service.EffectRequest{
			Action:      input.Action,
			EffectID:    input.EffectID,
			Name:        input.Name,
			Description: input.Description,
			Duration:    input.Duration,
			Properties:  input.Properties,
		})
		if err != nil {
			return nil, service.EffectResult{}, err
		}
		return nil, result, nil
	}
}
