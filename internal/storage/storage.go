// Package storage defines the persistence contracts consumed by the game
// engine. Implementations must persist every field losslessly, including
// nested maps and sequences; Put is an upsert and Get reports a missing
// record with ErrNotFound rather than inventing zero values.
package storage

import (
	"context"
	"errors"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// AdventureStore persists adventure templates.
type AdventureStore interface {
	PutAdventure(ctx context.Context, adventure domain.Adventure) error
	GetAdventure(ctx context.Context, id string) (domain.Adventure, error)
	ListAdventures(ctx context.Context) ([]domain.Adventure, error)
}

// SessionStore persists game sessions and their player state.
type SessionStore interface {
	PutSession(ctx context.Context, session domain.GameSession) error
	GetSession(ctx context.Context, id string) (domain.GameSession, error)
	ListSessions(ctx context.Context, limit int) ([]domain.GameSession, error)
	DeleteSession(ctx context.Context, id string) error
}

// CharacterStore persists session-scoped NPCs including their memories.
type CharacterStore interface {
	PutCharacter(ctx context.Context, character domain.Character) error
	GetCharacter(ctx context.Context, id string) (domain.Character, error)
	ListCharacters(ctx context.Context, sessionID string) ([]domain.Character, error)
	DeleteCharacter(ctx context.Context, id string) error
}

// LocationStore persists session-scoped locations.
type LocationStore interface {
	PutLocation(ctx context.Context, location domain.Location) error
	GetLocation(ctx context.Context, id string) (domain.Location, error)
	ListLocations(ctx context.Context, sessionID string) ([]domain.Location, error)
	DeleteLocation(ctx context.Context, id string) error
}

// ItemStore persists session-scoped world items.
type ItemStore interface {
	PutItem(ctx context.Context, item domain.Item) error
	GetItem(ctx context.Context, id string) (domain.Item, error)
	ListItems(ctx context.Context, sessionID string) ([]domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// FactionStore persists session-scoped factions.
type FactionStore interface {
	PutFaction(ctx context.Context, faction domain.Faction) error
	GetFaction(ctx context.Context, id string) (domain.Faction, error)
	ListFactions(ctx context.Context, sessionID string) ([]domain.Faction, error)
	DeleteFaction(ctx context.Context, id string) error
}

// StatusEffectStore persists session-scoped status effects.
type StatusEffectStore interface {
	PutStatusEffect(ctx context.Context, effect domain.StatusEffect) error
	GetStatusEffect(ctx context.Context, id string) (domain.StatusEffect, error)
	ListStatusEffects(ctx context.Context, sessionID string) ([]domain.StatusEffect, error)
	DeleteStatusEffect(ctx context.Context, id string) error
}

// ActionHistoryStore persists the append-only action history per session.
type ActionHistoryStore interface {
	AppendAction(ctx context.Context, record domain.ActionRecord) error
	ListActions(ctx context.Context, sessionID string, limit int) ([]domain.ActionRecord, error)
}

// SummaryStore persists narrator-authored session summaries.
type SummaryStore interface {
	PutSummary(ctx context.Context, summary domain.SessionSummary) error
	ListSummaries(ctx context.Context, sessionID string) ([]domain.SessionSummary, error)
}

// Store aggregates every entity store behind one handle.
type Store interface {
	AdventureStore
	SessionStore
	CharacterStore
	LocationStore
	ItemStore
	FactionStore
	StatusEffectStore
	ActionHistoryStore
	SummaryStore

	Close() error
}
