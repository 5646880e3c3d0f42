package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// CharacterInput carries the mutable fields of a character create or update.
// Empty fields are left untouched on update.
type CharacterInput struct {
	Name        string
	Description string
	Location    string
	Stats       map[string]int
	Properties  map[string]any
}

// CreateCharacter adds an NPC to a session.
func (e *Engine) CreateCharacter(ctx context.Context, sessionID string, input CharacterInput) (domain.Character, error) {
	if input.Name == "" {
		return domain.Character{}, apperrors.New(apperrors.CodeInvalidArgument, "character name is required")
	}
	if _, err := e.session(ctx, sessionID); err != nil {
		return domain.Character{}, err
	}

	characterID, err := e.generateID()
	if err != nil {
		return domain.Character{}, err
	}
	character := domain.Character{
		ID:          characterID,
		SessionID:   sessionID,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		Stats:       input.Stats,
		Properties:  input.Properties,
		Memories:    []domain.Memory{},
		CreatedAt:   e.clock(),
	}
	if character.Stats == nil {
		character.Stats = map[string]int{}
	}
	if character.Properties == nil {
		character.Properties = map[string]any{}
	}
	if err := e.store.PutCharacter(ctx, character); err != nil {
		return domain.Character{}, fmt.Errorf("persist character: %w", err)
	}
	return character, nil
}

// UpdateCharacter patches an NPC: non-empty fields overwrite, stats and
// properties merge key by key.
func (e *Engine) UpdateCharacter(ctx context.Context, sessionID, characterID string, input CharacterInput) (domain.Character, error) {
	character, err := e.characterByID(ctx, sessionID, characterID)
	if err != nil {
		return domain.Character{}, err
	}

	if input.Name != "" {
		character.Name = input.Name
	}
	if input.Description != "" {
		character.Description = input.Description
	}
	if input.Location != "" {
		character.Location = input.Location
	}
	for name, value := range input.Stats {
		if character.Stats == nil {
			character.Stats = map[string]int{}
		}
		character.Stats[name] = value
	}
	for key, value := range input.Properties {
		if character.Properties == nil {
			character.Properties = map[string]any{}
		}
		character.Properties[key] = value
	}

	if err := e.store.PutCharacter(ctx, character); err != nil {
		return domain.Character{}, fmt.Errorf("persist character: %w", err)
	}
	return character, nil
}

// Character returns an NPC by id within a session.
func (e *Engine) Character(ctx context.Context, sessionID, characterID string) (domain.Character, error) {
	return e.characterByID(ctx, sessionID, characterID)
}

// Characters lists a session's NPCs, optionally filtered by location.
func (e *Engine) Characters(ctx context.Context, sessionID, location string) ([]domain.Character, error) {
	if _, err := e.session(ctx, sessionID); err != nil {
		return nil, err
	}
	characters, err := e.store.ListCharacters(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	if location == "" {
		return characters, nil
	}
	return domain.Witnesses(characters, location), nil
}

func (e *Engine) characterByID(ctx context.Context, sessionID, characterID string) (domain.Character, error) {
	if characterID == "" {
		return domain.Character{}, apperrors.New(apperrors.CodeInvalidArgument, "character id is required")
	}
	character, err := e.store.GetCharacter(ctx, characterID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Character{}, apperrors.New(apperrors.CodeCharacterNotFound,
				"character %q not found", characterID)
		}
		return domain.Character{}, fmt.Errorf("load character: %w", err)
	}
	if character.SessionID != sessionID {
		return domain.Character{}, apperrors.New(apperrors.CodeCharacterNotFound,
			"character %q not found", characterID)
	}
	return character, nil
}

// LocationInput carries the mutable fields of a location create or update.
type LocationInput struct {
	Name        string
	Description string
	ConnectedTo []string
	Properties  map[string]any
}

// CreateLocation adds a place to a session's world.
func (e *Engine) CreateLocation(ctx context.Context, sessionID string, input LocationInput) (domain.Location, error) {
	if input.Name == "" {
		return domain.Location{}, apperrors.New(apperrors.CodeInvalidArgument, "location name is required")
	}
	if _, err := e.session(ctx, sessionID); err != nil {
		return domain.Location{}, err
	}

	locationID, err := e.generateID()
	if err != nil {
		return domain.Location{}, err
	}
	location := domain.Location{
		ID:          locationID,
		SessionID:   sessionID,
		Name:        input.Name,
		Description: input.Description,
		ConnectedTo: input.ConnectedTo,
		Properties:  input.Properties,
		CreatedAt:   e.clock(),
	}
	if location.ConnectedTo == nil {
		location.ConnectedTo = []string{}
	}
	if location.Properties == nil {
		location.Properties = map[string]any{}
	}
	if err := e.store.PutLocation(ctx, location); err != nil {
		return domain.Location{}, fmt.Errorf("persist location: %w", err)
	}
	return location, nil
}

// UpdateLocation patches a location: non-empty fields overwrite, connections
// replace wholesale, properties merge key by key.
func (e *Engine) UpdateLocation(ctx context.Context, sessionID, locationID string, input LocationInput) (domain.Location, error) {
	location, err := e.locationByID(ctx, sessionID, locationID)
	if err != nil {
		return domain.Location{}, err
	}

	if input.Name != "" {
		location.Name = input.Name
	}
	if input.Description != "" {
		location.Description = input.Description
	}
	if input.ConnectedTo != nil {
		location.ConnectedTo = input.ConnectedTo
	}
	for key, value := range input.Properties {
		if location.Properties == nil {
			location.Properties = map[string]any{}
		}
		location.Properties[key] = value
	}

	if err := e.store.PutLocation(ctx, location); err != nil {
		return domain.Location{}, fmt.Errorf("persist location: %w", err)
	}
	return location, nil
}

// Location returns a place by id within a session.
func (e *Engine) Location(ctx context.Context, sessionID, locationID string) (domain.Location, error) {
	return e.locationByID(ctx, sessionID, locationID)
}

// Locations lists a session's places.
func (e *Engine) Locations(ctx context.Context, sessionID string) ([]domain.Location, error) {
	if _, err := e.session(ctx, sessionID); err != nil {
		return nil, err
	}
	locations, err := e.store.ListLocations(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

func (e *Engine) locationByID(ctx context.Context, sessionID, locationID string) (domain.Location, error) {
	if locationID == "" {
		return domain.Location{}, apperrors.New(apperrors.CodeInvalidArgument, "location id is required")
	}
	location, err := e.store.GetLocation(ctx, locationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Location{}, apperrors.New(apperrors.CodeLocationNotFound,
				"location %q not found", locationID)
		}
		return domain.Location{}, fmt.Errorf("load location: %w", err)
	}
	if location.SessionID != sessionID {
		return domain.Location{}, apperrors.New(apperrors.CodeLocationNotFound,
			"location %q not found", locationID)
	}
	return location, nil
}

// ItemInput carries the mutable fields of a world-item create or update. A
// nil Location on create places the item directly in the inventory space
// (unowned by any place).
type ItemInput struct {
	Name        string
	Description string
	Location    *string
	Properties  map[string]any
}

// CreateItem adds a world object to a session.
func (e *Engine) CreateItem(ctx context.Context, sessionID string, input ItemInput) (domain.Item, error) {
	if input.Name == "" {
		return domain.Item{}, apperrors.New(apperrors.CodeInvalidArgument, "item name is required")
	}
	if _, err := e.session(ctx, sessionID); err != nil {
		return domain.Item{}, err
	}

	itemID, err := e.generateID()
	if err != nil {
		return domain.Item{}, err
	}
	item := domain.Item{
		ID:          itemID,
		SessionID:   sessionID,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		Properties:  input.Properties,
		CreatedAt:   e.clock(),
	}
	if item.Properties == nil {
		item.Properties = map[string]any{}
	}
	if err := e.store.PutItem(ctx, item); err != nil {
		return domain.Item{}, fmt.Errorf("persist item: %w", err)
	}
	return item, nil
}

// UpdateItem patches a world item: non-empty fields overwrite, a non-nil
// location replaces, properties merge key by key.
func (e *Engine) UpdateItem(ctx context.Context, sessionID, itemID string, input ItemInput) (domain.Item, error) {
	item, err := e.worldItem(ctx, sessionID, itemID)
	if err != nil {
		return domain.Item{}, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Location != nil {
		item.Location = input.Location
	}
	for key, value := range input.Properties {
		if item.Properties == nil {
			item.Properties = map[string]any{}
		}
		item.Properties[key] = value
	}

	if err := e.store.PutItem(ctx, item); err != nil {
		return domain.Item{}, fmt.Errorf("persist item: %w", err)
	}
	return item, nil
}

// Item returns a world object by id within a session.
func (e *Engine) Item(ctx context.Context, sessionID, itemID string) (domain.Item, error) {
	return e.worldItem(ctx, sessionID, itemID)
}

// Items lists a session's world objects, optionally filtered by location.
func (e *Engine) Items(ctx context.Context, sessionID, location string) ([]domain.Item, error) {
	if _, err := e.session(ctx, sessionID); err != nil {
		return nil, err
	}
	items, err := e.store.ListItems(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if location == "" {
		return items, nil
	}
	var filtered []domain.Item
	for _, item := range items {
		if item.Location != nil && *item.Location == location {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}
