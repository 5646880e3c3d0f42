package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

const defaultMemoryLimit = 10

// EventResult reports a recorded world event and who observed it.
type EventResult struct {
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Witnesses   []string `json:"witnesses"`
}

// RecordEvent records a world event. Every character whose location exactly
// equals the event location witnesses it and gains an observation memory;
// the location defaults to the player's current one. Each witness's memory
// list decays independently after the insert.
func (e *Engine) RecordEvent(ctx context.Context, sessionID, description, location string, importance int, tags []string) (EventResult, error) {
	if description == "" {
		return EventResult{}, apperrors.New(apperrors.CodeInvalidArgument, "event description is required")
	}
	session, err := e.session(ctx, sessionID)
	if err != nil {
		return EventResult{}, err
	}
	if location == "" {
		location = session.State.Location
	}
	if importance <= 0 {
		importance = 1
	}

	characters, err := e.store.ListCharacters(ctx, sessionID)
	if err != nil {
		return EventResult{}, fmt.Errorf("list characters: %w", err)
	}

	result := EventResult{Description: description, Location: location}
	for _, witness := range domain.Witnesses(characters, location) {
		memoryID, err := e.generateID()
		if err != nil {
			return EventResult{}, err
		}
		witness.AddMemory(domain.Memory{
			ID:          memoryID,
			Description: description,
			Timestamp:   e.clock(),
			Type:        domain.MemoryObservation,
			Importance:  importance,
			Tags:        tags,
		})
		if err := e.store.PutCharacter(ctx, witness); err != nil {
			return EventResult{}, fmt.Errorf("persist witness %q: %w", witness.Name, err)
		}
		result.Witnesses = append(result.Witnesses, witness.Name)
	}
	return result, nil
}

// MemoryResult reports a memory given to one character.
type MemoryResult struct {
	CharacterName string        `json:"character_name"`
	Memory        domain.Memory `json:"memory"`
	MemoryCount   int           `json:"memory_count"`
}

// AddCharacterMemory gives one character a memory directly, matched by
// case-insensitive exact name. The default type is rumor.
func (e *Engine) AddCharacterMemory(ctx context.Context, sessionID, characterName, description, memoryType string, importance int, tags []string) (MemoryResult, error) {
	if description == "" {
		return MemoryResult{}, apperrors.New(apperrors.CodeInvalidArgument, "memory description is required")
	}
	if memoryType == "" {
		memoryType = domain.MemoryRumor
	}
	switch memoryType {
	case domain.MemoryObservation, domain.MemoryInteraction, domain.MemoryRumor:
	default:
		return MemoryResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"unknown memory type %q", memoryType)
	}
	if importance <= 0 {
		importance = 1
	}

	character, err := e.characterByName(ctx, sessionID, characterName)
	if err != nil {
		return MemoryResult{}, err
	}

	memoryID, err := e.generateID()
	if err != nil {
		return MemoryResult{}, err
	}
	memory := domain.Memory{
		ID:          memoryID,
		Description: description,
		Timestamp:   e.clock(),
		Type:        memoryType,
		Importance:  importance,
		Tags:        tags,
	}
	character.AddMemory(memory)
	if err := e.store.PutCharacter(ctx, character); err != nil {
		return MemoryResult{}, fmt.Errorf("persist character: %w", err)
	}

	return MemoryResult{
		CharacterName: character.Name,
		Memory:        memory,
		MemoryCount:   len(character.Memories),
	}, nil
}

// CharacterMemories retrieves a character's memories ordered by importance
// then recency, most important first. The default limit is 10.
func (e *Engine) CharacterMemories(ctx context.Context, sessionID, characterName string, limit int) ([]domain.Memory, error) {
	if limit <= 0 {
		limit = defaultMemoryLimit
	}
	character, err := e.characterByName(ctx, sessionID, characterName)
	if err != nil {
		return nil, err
	}
	return character.TopMemories(limit), nil
}

// characterByName resolves a character within a session by case-insensitive
// exact name match.
func (e *Engine) characterByName(ctx context.Context, sessionID, name string) (domain.Character, error) {
	if name == "" {
		return domain.Character{}, apperrors.New(apperrors.CodeInvalidArgument, "character name is required")
	}
	if _, err := e.session(ctx, sessionID); err != nil {
		return domain.Character{}, err
	}
	characters, err := e.store.ListCharacters(ctx, sessionID)
	if err != nil {
		return domain.Character{}, fmt.Errorf("list characters: %w", err)
	}
	for _, character := range characters {
		if strings.EqualFold(character.Name, name) {
			return character, nil
		}
	}
	return domain.Character{}, apperrors.New(apperrors.CodeCharacterNotFound,
		"character %q not found", name)
}
