package service

import (
	"context"
	"fmt"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/game/randomizer"
)

const recentHistoryLimit = 5

// StartAdventureRequest carries the parameters for creating a session.
// RollStats replaces every stat default with a 4d6-drop-lowest roll clamped
// to the stat's bounds; CustomStats override individual stats afterwards,
// also clamped.
type StartAdventureRequest struct {
	AdventureID   string
	CharacterName string
	RollStats     bool
	CustomStats   map[string]int
}

// StartAdventureResult reports a freshly created session.
type StartAdventureResult struct {
	Session        domain.GameSession `json:"session"`
	AdventureTitle string             `json:"adventure_title"`
	Prompt         string             `json:"prompt,omitempty"`
	Story          string             `json:"story"`
}

// StartAdventure instantiates a new session from an adventure template.
// Word-list placeholders in the initial location and story are substituted
// before the session is persisted.
func (e *Engine) StartAdventure(ctx context.Context, req StartAdventureRequest) (StartAdventureResult, error) {
	adventure, err := e.adventure(ctx, req.AdventureID)
	if err != nil {
		return StartAdventureResult{}, err
	}

	sessionID, err := e.generateID()
	if err != nil {
		return StartAdventureResult{}, err
	}
	state := domain.NewPlayerState(sessionID, adventure)

	if req.RollStats {
		for _, def := range adventure.Stats {
			rolled := e.roller.RollAbilityScore()
			state.Stats[def.Name] = domain.ClampAdd(rolled, 0, def.MinValue, def.MaxValue).New
		}
	}
	for name, value := range req.CustomStats {
		canonical, ok := domain.ResolveStatName(state.Stats, name)
		if !ok {
			return StartAdventureResult{}, apperrors.New(apperrors.CodeUnknownStat,
				"stat %q not defined by adventure %q", name, adventure.Title)
		}
		lower, upper := domain.StatBounds(adventure, canonical)
		state.Stats[canonical] = domain.ClampAdd(value, 0, lower, upper).New
	}
	if req.CharacterName != "" {
		state.CustomData["character_name"] = req.CharacterName
	}

	state.Location = randomizer.ProcessTemplate(e.rng, adventure.InitialLocation, adventure)
	story := randomizer.ProcessTemplate(e.rng, adventure.InitialStory, adventure)

	now := e.clock()
	session := domain.GameSession{
		ID:          sessionID,
		AdventureID: adventure.ID,
		CreatedAt:   now,
		LastPlayed:  now,
		State:       state,
	}
	if err := e.store.PutSession(ctx, session); err != nil {
		return StartAdventureResult{}, fmt.Errorf("persist session: %w", err)
	}
	if err := e.seedFactions(ctx, sessionID, adventure); err != nil {
		return StartAdventureResult{}, err
	}

	return StartAdventureResult{
		Session:        session,
		AdventureTitle: adventure.Title,
		Prompt:         adventure.Prompt,
		Story:          story,
	}, nil
}

// seedFactions materializes the template's faction definitions as session
// factions. Skipped entirely when the factions feature is off.
func (e *Engine) seedFactions(ctx context.Context, sessionID string, adventure domain.Adventure) error {
	if !adventure.Features.Factions {
		return nil
	}
	for _, def := range adventure.Factions {
		factionID, err := e.generateID()
		if err != nil {
			return err
		}
		faction := domain.Faction{
			ID:          factionID,
			SessionID:   sessionID,
			Name:        def.Name,
			Description: def.Description,
			Reputation:  def.InitialReputation,
			Properties:  map[string]any{},
			CreatedAt:   e.clock(),
		}
		if err := e.store.PutFaction(ctx, faction); err != nil {
			return fmt.Errorf("seed faction %q: %w", def.Name, err)
		}
	}
	return nil
}

// ContinueAdventureResult reports what a narrator needs to resume play:
// state, template prompt, recent actions, and the latest summary if any.
type ContinueAdventureResult struct {
	Session        domain.GameSession     `json:"session"`
	AdventureTitle string                 `json:"adventure_title"`
	Prompt         string                 `json:"prompt,omitempty"`
	RecentActions  []domain.ActionRecord  `json:"recent_actions,omitempty"`
	LatestSummary  *domain.SessionSummary `json:"latest_summary,omitempty"`
}

// ContinueAdventure resumes an existing session, bumping its last-played
// time.
func (e *Engine) ContinueAdventure(ctx context.Context, sessionID string) (ContinueAdventureResult, error) {
	session, adventure, err := e.sessionWithAdventure(ctx, sessionID)
	if err != nil {
		return ContinueAdventureResult{}, err
	}

	actions, err := e.store.ListActions(ctx, sessionID, recentHistoryLimit)
	if err != nil {
		return ContinueAdventureResult{}, fmt.Errorf("list actions: %w", err)
	}
	summaries, err := e.store.ListSummaries(ctx, sessionID)
	if err != nil {
		return ContinueAdventureResult{}, fmt.Errorf("list summaries: %w", err)
	}

	if err := e.saveSession(ctx, &session); err != nil {
		return ContinueAdventureResult{}, err
	}

	result := ContinueAdventureResult{
		Session:        session,
		AdventureTitle: adventure.Title,
		Prompt:         adventure.Prompt,
		RecentActions:  actions,
	}
	if len(summaries) > 0 {
		latest := summaries[len(summaries)-1]
		result.LatestSummary = &latest
	}
	return result, nil
}

// ListSessions returns the most recently played sessions.
func (e *Engine) ListSessions(ctx context.Context, limit int) ([]domain.GameSession, error) {
	sessions, err := e.store.ListSessions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// ListAdventures returns every adventure template.
func (e *Engine) ListAdventures(ctx context.Context) ([]domain.Adventure, error) {
	adventures, err := e.store.ListAdventures(ctx)
	if err != nil {
		return nil, fmt.Errorf("list adventures: %w", err)
	}
	return adventures, nil
}

// State returns a session's current player state.
func (e *Engine) State(ctx context.Context, sessionID string) (domain.PlayerState, error) {
	session, err := e.session(ctx, sessionID)
	if err != nil {
		return domain.PlayerState{}, err
	}
	return session.State, nil
}

// CharacterInfo pairs a character with its most relevant memories.
type CharacterInfo struct {
	Character domain.Character `json:"character"`
	Memories  []domain.Memory  `json:"memories,omitempty"`
}

// SessionInfo is the full picture of a session: state, template, and the
// session's characters with optional memory retrieval.
type SessionInfo struct {
	Session        domain.GameSession `json:"session"`
	AdventureTitle string             `json:"adventure_title"`
	Characters     []CharacterInfo    `json:"characters,omitempty"`
}

// GetSessionInfo returns session state plus its characters. When
// includeMemories is set, each character carries its top memories ordered by
// importance then recency.
func (e *Engine) GetSessionInfo(ctx context.Context, sessionID string, includeMemories bool, memoryLimit int) (SessionInfo, error) {
	session, adventure, err := e.sessionWithAdventure(ctx, sessionID)
	if err != nil {
		return SessionInfo{}, err
	}
	characters, err := e.store.ListCharacters(ctx, sessionID)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("list characters: %w", err)
	}
	if memoryLimit <= 0 {
		memoryLimit = defaultMemoryLimit
	}

	info := SessionInfo{Session: session, AdventureTitle: adventure.Title}
	for _, character := range characters {
		entry := CharacterInfo{Character: character}
		if includeMemories {
			entry.Memories = character.TopMemories(memoryLimit)
		}
		info.Characters = append(info.Characters, entry)
	}
	return info, nil
}

// History returns a session's most recent action records, newest first.
func (e *Engine) History(ctx context.Context, sessionID string, limit int) ([]domain.ActionRecord, error) {
	if _, err := e.session(ctx, sessionID); err != nil {
		return nil, err
	}
	actions, err := e.store.ListActions(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	return actions, nil
}

// SummarizeProgress stores a narrator-authored recap of the play session.
func (e *Engine) SummarizeProgress(ctx context.Context, sessionID, summary string, keyEvents, characterChanges []string) (domain.SessionSummary, error) {
	if summary == "" {
		return domain.SessionSummary{}, apperrors.New(apperrors.CodeInvalidArgument, "summary text is required")
	}
	if _, err := e.session(ctx, sessionID); err != nil {
		return domain.SessionSummary{}, err
	}

	summaryID, err := e.generateID()
	if err != nil {
		return domain.SessionSummary{}, err
	}
	record := domain.SessionSummary{
		ID:               summaryID,
		SessionID:        sessionID,
		Summary:          summary,
		KeyEvents:        keyEvents,
		CharacterChanges: characterChanges,
		CreatedAt:        e.clock(),
	}
	if err := e.store.PutSummary(ctx, record); err != nil {
		return domain.SessionSummary{}, fmt.Errorf("persist summary: %w", err)
	}
	return record, nil
}

// AdventureSummary returns every stored summary for a session in
// chronological order.
func (e *Engine) AdventureSummary(ctx context.Context, sessionID string) ([]domain.SessionSummary, error) {
	if _, err := e.session(ctx, sessionID); err != nil {
		return nil, err
	}
	summaries, err := e.store.ListSummaries(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return summaries, nil
}

// RandomWordResult reports a word drawn from an adventure's word lists, or a
// prompt asking the narrator to invent one when no list matches.
type RandomWordResult struct {
	Word   string `json:"word,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// RandomizeWord draws a random word from the session's adventure word
// lists. The hint describes what the word is for and is folded into the
// fallback prompt.
func (e *Engine) RandomizeWord(ctx context.Context, sessionID, wordList, category, hint string) (RandomWordResult, error) {
	_, adventure, err := e.sessionWithAdventure(ctx, sessionID)
	if err != nil {
		return RandomWordResult{}, err
	}
	if wordList == "" {
		return RandomWordResult{}, apperrors.New(apperrors.CodeInvalidArgument, "word list name is required")
	}

	if word, ok := randomizer.RandomWord(e.rng, adventure, wordList, category); ok {
		return RandomWordResult{Word: word}, nil
	}
	return RandomWordResult{Prompt: randomizer.WordPrompt(wordList, category, hint)}, nil
}
