package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	gamedomain "github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/game/service"
)

// CreateCharacterInput represents the MCP tool input for adding an NPC.
type CreateCharacterInput struct {
	SessionID   string         `json:"session_id" jsonschema:"game session identifier"`
	Name        string         `json:"name" jsonschema:"character name"`
	Description string         `json:"description,omitempty" jsonschema:"character description"`
	Location    string         `json:"location,omitempty" jsonschema:"where the character currently is"`
	Stats       map[string]int `json:"stats,omitempty" jsonschema:"character stat block"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"open character metadata"`
}

// CreateCharacterTool defines the MCP tool schema for adding an NPC.
func CreateCharacterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_character",
		Description: "Adds a non-player character to the session's world.",
	}
}

// CreateCharacterHandler executes a create_character request.
func CreateCharacterHandler(engine *service.Engine) mcp.ToolHandlerFor[CreateCharacterInput, gamedomain.Character] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateCharacterInput) (*mcp.CallToolResult, gamedomain.Character, error) {
		character, err := engine.CreateCharacter(ctx, input.SessionID, service.CharacterInput{
			Name:        input.Name,
			Description: input.Description,
			Location:    input.Location,
			Stats:       input.Stats,
			Properties:  input.Properties,
		})
		if err != nil {
			return nil, gamedomain.Character{}, err
		}
		return nil, character, nil
	}
}

// UpdateCharacterInput represents the MCP tool input for editing an NPC.
// Empty fields are left unchanged; stats and properties merge by key.
type UpdateCharacterInput struct {
	SessionID   string         `json:"session_id" jsonschema:"game session identifier"`
	CharacterID string         `json:"character_id" jsonschema:"character identifier"`
	Name        string         `json:"name,omitempty" jsonschema:"new name"`
	Description string         `json:"description,omitempty" jsonschema:"new description"`
	Location    string         `json:"location,omitempty" jsonschema:"new location"`
	Stats       map[string]int `json:"stats,omitempty" jsonschema:"stat values to merge"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"properties to merge"`
}

// UpdateCharacterTool defines the MCP tool schema for editing an NPC.
func UpdateCharacterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_character",
		Description: "Updates a character. Omitted fields are left unchanged; stats and properties merge key by key.",
	}
}

// UpdateCharacterHandler executes an update_character request.
func UpdateCharacterHandler(engine *service.Engine) mcp.ToolHandlerFor[UpdateCharacterInput, gamedomain.Character] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateCharacterInput) (*mcp.CallToolResult, gamedomain.Character, error) {
		character, err := engine.UpdateCharacter(ctx, input.SessionID, input.CharacterID, service.CharacterInput{
			Name:        input.Name,
			Description: input.Description,
			Location:    input.Location,
			Stats:       input.Stats,
			Properties:  input.Properties,
		})
		if err != nil {
			return nil, gamedomain.Character{}, err
		}
		return nil, character, nil
	}
}

// GetCharacterInput represents the MCP tool input for reading one character.
type GetCharacterInput struct {
	SessionID   string `json:"session_id" jsonschema:"game session identifier"`
	CharacterID string `json:"character_id" jsonschema:"character identifier"`
}

// GetCharacterTool defines the MCP tool schema for reading one character.
func GetCharacterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_character",
		Description: "Returns one character by id.",
	}
}

// GetCharacterHandler executes a get_character request.
func GetCharacterHandler(engine *service.Engine) mcp.ToolHandlerFor[GetCharacterInput, gamedomain.Character] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetCharacterInput) (*mcp.CallToolResult, gamedomain.Character, error) {
		character, err := engine.Character(ctx, input.SessionID, input.CharacterID)
		if err != nil {
			return nil, gamedomain.Character{}, err
		}
		return nil, character, nil
	}
}

// ListCharactersInput represents the MCP tool input for listing characters.
type ListCharactersInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
	Location  string `json:"location,omitempty" jsonschema:"only characters at this exact location"`
}

// ListCharactersResult represents the MCP tool output for listing characters.
type ListCharactersResult struct {
	Characters []gamedomain.Character `json:"characters"`
}

// ListCharactersTool defines the MCP tool schema for listing characters.
func ListCharactersTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_characters",
		Description: "Lists the session's characters, optionally filtered to one location.",
	}
}

// ListCharactersHandler executes a list_characters request.
func ListCharactersHandler(engine *service.Engine) mcp.ToolHandlerFor[ListCharactersInput, ListCharactersResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListCharactersInput) (*mcp.CallToolResult, ListCharactersResult, error) {
		characters, err := engine.Characters(ctx, input.SessionID, input.Location)
		if err != nil {
			return nil, ListCharactersResult{}, err
		}
		return nil, ListCharactersResult{Characters: characters}, nil
	}
}

// CreateLocationInput represents the MCP tool input for adding a place.
type CreateLocationInput struct {
	SessionID   string         `json:"session_id" jsonschema:"game session identifier"`
	Name        string         `json:"name" jsonschema:"location name"`
	Description string         `json:"description,omitempty" jsonschema:"location description"`
	ConnectedTo []string       `json:"connected_to,omitempty" jsonschema:"names of adjacent locations"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"open location metadata"`
}

// CreateLocationTool defines the MCP tool schema for adding a place.
func CreateLocationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_location",
		Description: "Adds a location to the session's world.",
	}
}

// CreateLocationHandler executes a create_location request.
func CreateLocationHandler(engine *service.Engine) mcp.ToolHandlerFor[CreateLocationInput, gamedomain.Location] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateLocationInput) (*mcp.CallToolResult, gamedomain.Location, error) {
		location, err := engine.CreateLocation(ctx, input.SessionID, service.LocationInput{
			Name:        input.Name,
			Description: input.Description,
			ConnectedTo: input.ConnectedTo,
			Properties:  input.Properties,
		})
		if err != nil {
			return nil, gamedomain.Location{}, err
		}
		return nil, location, nil
	}
}

// UpdateLocationInput represents the MCP tool input for editing a place.
type UpdateLocationInput struct {
	SessionID   string         `json:"session_id" jsonschema:"game session identifier"`
	LocationID  string         `json:"location_id" jsonschema:"location identifier"`
	Name        string         `json:"name,omitempty" jsonschema:"new name"`
	Description string         `json:"description,omitempty" jsonschema:"new description"`
	ConnectedTo []string       `json:"connected_to,omitempty" jsonschema:"replacement adjacency list"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"properties to merge"`
}

// UpdateLocationTool defines the MCP tool schema for editing a place.
func UpdateLocationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_location",
		Description: "Updates a location. Omitted fields are left unchanged; connected_to replaces the whole list when provided.",
	}
}

// UpdateLocationHandler executes an update_location request.
func UpdateLocationHandler(engine *service.Engine) mcp.ToolHandlerFor[UpdateLocationInput, gamedomain.Location] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateLocationInput) (*mcp.CallToolResult, gamedomain.Location, error) {
		location, err := engine.UpdateLocation(ctx, input.SessionID, input.LocationID, service.LocationInput{
			Name:        input.Name,
			Description: input.Description,
			ConnectedTo: input.ConnectedTo,
			Properties:  input.Properties,
		})
		if err != nil {
			return nil, gamedomain.Location{}, err
		}
		return nil, location, nil
	}
}

// GetLocationInput represents the MCP tool input for reading one location.
type GetLocationInput struct {
	SessionID  string `json:"session_id" jsonschema:"game session identifier"`
	LocationID string `json:"location_id" jsonschema:"location identifier"`
}

// GetLocationTool defines the MCP tool schema for reading one location.
func GetLocationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_location",
		Description: "Returns one location by id.",
	}
}

// GetLocationHandler executes a get_location request.
func GetLocationHandler(engine *service.Engine) mcp.ToolHandlerFor[GetLocationInput, gamedomain.Location] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetLocationInput) (*mcp.CallToolResult, gamedomain.Location, error) {
		location, err := engine.Location(ctx, input.SessionID, input.LocationID)
		if err != nil {
			return nil, gamedomain.Location{}, err
		}
		return nil, location, nil
	}
}

// ListLocationsResult represents the MCP tool output for listing locations.
type ListLocationsResult struct {
	Locations []gamedomain.Location `json:"locations"`
}

// ListLocationsTool defines the MCP tool schema for listing locations.
func ListLocationsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_locations",
		Description: "Lists every location in the session's world.",
	}
}

// ListLocationsHandler executes a list_locations request.
func ListLocationsHandler(engine *service.Engine) mcp.ToolHandlerFor[SessionInput, ListLocationsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, ListLocationsResult, error) {
		locations, err := engine.Locations(ctx, input.SessionID)
		if err != nil {
			return nil, ListLocationsResult{}, err
		}
		return nil, ListLocationsResult{Locations: locations}, nil
	}
}

// CreateItemInput represents the MCP tool input for adding a world object.
type CreateItemInput struct {
	SessionID   string         `json:"session_id" jsonschema:"game session identifier"`
	Name        string         `json:"name" jsonschema:"item name"`
	Description string         `json:"description,omitempty" jsonschema:"item description"`
	Location    *string        `json:"location,omitempty" jsonschema:"where the item sits in the world; null means it is held in the inventory"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"open item metadata, such as price"`
}

// CreateItemTool defines the MCP tool schema for adding a world object.
func CreateItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_item",
		Description: "Adds an item to the session's world.",
	}
}

// CreateItemHandler executes a create_item request.
func CreateItemHandler(engine *service.Engine) mcp.ToolHandlerFor[CreateItemInput, gamedomain.Item] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateItemInput) (*mcp.CallToolResult, gamedomain.Item, error) {
		item, err := engine.CreateItem(ctx, input.SessionID, service.ItemInput{
			Name:        input.Name,
			Description: input.Description,
			Location:    input.Location,
			Properties:  input.Properties,
		})
		if err != nil {
			return nil, gamedomain.Item{}, err
		}
		return nil, item, nil
	}
}

// UpdateItemInput represents the MCP tool input for editing a world object.
type UpdateItemInput struct {
	SessionID   string         `json:"session_id" jsonschema:"game session identifier"`
	ItemID      string         `json:"item_id" jsonschema:"item identifier"`
	Name        string         `json:"name,omitempty" jsonschema:"new name"`
	Description string         `json:"description,omitempty" jsonschema:"new description"`
	Location    *string        `json:"location,omitempty" jsonschema:"new location when provided"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"properties to merge"`
}

// UpdateItemTool defines the MCP tool schema for editing a world object.
func UpdateItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_item",
		Description: "Updates a world item. Omitted fields are left unchanged.",
	}
}

// UpdateItemHandler executes an update_item request.
func UpdateItemHandler(engine *service.Engine) mcp.ToolHandlerFor[UpdateItemInput, gamedomain.Item] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateItemInput) (*mcp.CallToolResult, gamedomain.Item, error) {
		item, err := engine.UpdateItem(ctx, input.SessionID, input.ItemID, service.ItemInput{
			Name:        input.Name,
			Description: input.Description,
			Location:    input.Location,
			Properties:  input.Properties,
		})
		if err != nil {
			return nil, gamedomain.Item{}, err
		}
		return nil, item, nil
	}
}

// GetItemInput represents the MCP tool input for reading one item.
type GetItemInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
	ItemID    string `json:"item_id" jsonschema:"item identifier"`
}

// GetItemTool defines the MCP tool schema for reading one item.
func GetItemTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_item",
		Description: "Returns one world item by id.",
	}
}

// GetItemHandler executes a get_item request.
func GetItemHandler(engine *service.Engine) mcp.ToolHandlerFor[GetItemInput, gamedomain.Item] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetItemInput) (*mcp.CallToolResult, gamedomain.Item, error) {
		item, err := engine.Item(ctx, input.SessionID, input.ItemID)
		if err != nil {
			return nil, gamedomain.Item{}, err
		}
		return nil, item, nil
	}
}

// ListItemsInput represents the MCP tool input for listing world items.
type ListItemsInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier"`
	Location  string `json:"location,omitempty" jsonschema:"only items at this exact location"`
}

// ListItemsResult represents the MCP tool output for listing world items.
type ListItemsResult struct {
	Items []gamedomain.Item `json:"items"`
}

// ListItemsTool defines the MCP tool schema for listing world items.
func ListItemsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_items",
		Description: "Lists the session's world items, optionally filtered to one location.",
	}
}

// ListItemsHandler executes a list_items request.
func ListItemsHandler(engine *service.Engine) mcp.ToolHandlerFor[ListItemsInput, ListItemsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListItemsInput) (*mcp.CallToolResult, ListItemsResult, error) {
		items, err := engine.Items(ctx, input.SessionID, input.Location)
		if err != nil {
			return nil, ListItemsResult{}, err
		}
		return nil, ListItemsResult{Items: items}, nil
	}
}
