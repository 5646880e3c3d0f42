package service

import (
	"context"
	"sort"

	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// memStore is an in-memory storage.Store for engine tests.
type memStore struct {
	adventures map[string]domain.Adventure
	sessions   map[string]domain.GameSession
	characters map[string]domain.Character
	locations  map[string]domain.Location
	items      map[string]domain.Item
	factions   map[string]domain.Faction
	effects    map[string]domain.StatusEffect
	actions    []domain.ActionRecord
	summaries  []domain.SessionSummary
}

func newMemStore() *memStore {
	return &memStore{
		adventures: map[string]domain.Adventure{},
		sessions:   map[string]domain.GameSession{},
		characters: map[string]domain.Character{},
		locations:  map[string]domain.Location{},
		items:      map[string]domain.Item{},
		factions:   map[string]domain.Faction{},
		effects:    map[string]domain.StatusEffect{},
	}
}

func (m *memStore) PutAdventure(_ context.Context, adventure domain.Adventure) error {
	m.adventures[adventure.ID] = adventure
	return nil
}

func (m *memStore) GetAdventure(_ context.Context, id string) (domain.Adventure, error) {
	adventure, ok := m.adventures[id]
	if !ok {
		return domain.Adventure{}, storage.ErrNotFound
	}
	return adventure, nil
}

func (m *memStore) ListAdventures(_ context.Context) ([]domain.Adventure, error) {
	var adventures []domain.Adventure
	for _, adventure := range m.adventures {
		adventures = append(adventures, adventure)
	}
	sort.Slice(adventures, func(i, j int) bool { return adventures[i].Title < adventures[j].Title })
	return adventures, nil
}

func (m *memStore) PutSession(_ context.Context, session domain.GameSession) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *memStore) GetSession(_ context.Context, id string) (domain.GameSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return domain.GameSession{}, storage.ErrNotFound
	}
	return session, nil
}

func (m *memStore) ListSessions(_ context.Context, limit int) ([]domain.GameSession, error) {
	var sessions []domain.GameSession
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastPlayed.After(sessions[j].LastPlayed)
	})
	if limit > 0 && limit < len(sessions) {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (m *memStore) DeleteSession(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memStore) PutCharacter(_ context.Context, character domain.Character) error {
	m.characters[character.ID] = character
	return nil
}

func (m *memStore) GetCharacter(_ context.Context, id string) (domain.Character, error) {
	character, ok := m.characters[id]
	if !ok {
		return domain.Character{}, storage.ErrNotFound
	}
	return character, nil
}

func (m *memStore) ListCharacters(_ context.Context, sessionID string) ([]domain.Character, error) {
	var characters []domain.Character
	for _, character := range m.characters {
		if character.SessionID == sessionID {
			characters = append(characters, character)
		}
	}
	sort.Slice(characters, func(i, j int) bool { return characters[i].Name < characters[j].Name })
	return characters, nil
}

func (m *memStore) DeleteCharacter(_ context.Context, id string) error {
	if _, ok := m.characters[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.characters, id)
	return nil
}

func (m *memStore) PutLocation(_ context.Context, location domain.Location) error {
	m.locations[location.ID] = location
	return nil
}

func (m *memStore) GetLocation(_ context.Context, id string) (domain.Location, error) {
	location, ok := m.locations[id]
	if !ok {
		return domain.Location{}, storage.ErrNotFound
	}
	return location, nil
}

func (m *memStore) ListLocations(_ context.Context, sessionID string) ([]domain.Location, error) {
	var locations []domain.Location
	for _, location := range m.locations {
		if location.SessionID == sessionID {
			locations = append(locations, location)
		}
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

func (m *memStore) DeleteLocation(_ context.Context, id string) error {
	if _, ok := m.locations[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.locations, id)
	return nil
}

func (m *memStore) PutItem(_ context.Context, item domain.Item) error {
	m.items[item.ID] = item
	return nil
}

func (m *memStore) GetItem(_ context.Context, id string) (domain.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return domain.Item{}, storage.ErrNotFound
	}
	return item, nil
}

func (m *memStore) ListItems(_ context.Context, sessionID string) ([]domain.Item, error) {
	var items []domain.Item
	for _, item := range m.items {
		if item.SessionID == sessionID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (m *memStore) DeleteItem(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memStore) PutFaction(_ context.Context, faction domain.Faction) error {
	m.factions[faction.ID] = faction
	return nil
}

func (m *memStore) GetFaction(_ context.Context, id string) (domain.Faction, error) {
	faction, ok := m.factions[id]
	if !ok {
		return domain.Faction{}, storage.ErrNotFound
	}
	return faction, nil
}

func (m *memStore) ListFactions(_ context.Context, sessionID string) ([]domain.Faction, error) {
	var factions []domain.Faction
	for _, faction := range m.factions {
		if faction.SessionID == sessionID {
			factions = append(factions, faction)
		}
	}
	sort.Slice(factions, func(i, j int) bool { return factions[i].Name < factions[j].Name })
	return factions, nil
}

func (m *memStore) DeleteFaction(_ context.Context, id string) error {
	if _, ok := m.factions[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.factions, id)
	return nil
}

func (m *memStore) PutStatusEffect(_ context.Context, effect domain.StatusEffect) error {
	m.effects[effect.ID] = effect
	return nil
}

func (m *memStore) GetStatusEffect(_ context.Context, id string) (domain.StatusEffect, error) {
	effect, ok := m.effects[id]
	if !ok {
		return domain.StatusEffect{}, storage.ErrNotFound
	}
	return effect, nil
}

func (m *memStore) ListStatusEffects(_ context.Context, sessionID string) ([]domain.StatusEffect, error) {
	var effects []domain.StatusEffect
	for _, effect := range m.effects {
		if effect.SessionID == sessionID {
			effects = append(effects, effect)
		}
	}
	sort.Slice(effects, func(i, j int) bool { return effects[i].CreatedAt.Before(effects[j].CreatedAt) })
	return effects, nil
}

func (m *memStore) DeleteStatusEffect(_ context.Context, id string) error {
	if _, ok := m.effects[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.effects, id)
	return nil
}

func (m *memStore) AppendAction(_ context.Context, record domain.ActionRecord) error {
	m.actions = append(m.actions, record)
	return nil
}

func (m *memStore) ListActions(_ context.Context, sessionID string, limit int) ([]domain.ActionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []domain.ActionRecord
	for i := len(m.actions) - 1; i >= 0 && len(records) < limit; i-- {
		if m.actions[i].SessionID == sessionID {
			records = append(records, m.actions[i])
		}
	}
	return records, nil
}

func (m *memStore) PutSummary(_ context.Context, summary domain.SessionSummary) error {
	m.summaries = append(m.summaries, summary)
	return nil
}

func (m *memStore) ListSummaries(_ context.Context, sessionID string) ([]domain.SessionSummary, error) {
	var summaries []domain.SessionSummary
	for _, summary := range m.summaries {
		if summary.SessionID == sessionID {
			summaries = append(summaries, summary)
		}
	}
	return summaries, nil
}

func (m *memStore) Close() error { return nil }
