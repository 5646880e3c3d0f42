package service

import (
	"context"
	"testing"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

func TestStartAdventureMaterializesDefaults(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()
	if err := store.PutAdventure(ctx, testAdventure()); err != nil {
		t.Fatalf("seed adventure: %v", err)
	}

	result, err := e.StartAdventure(ctx, StartAdventureRequest{
		AdventureID:   "adv-1",
		CharacterName: "Wren",
	})
	if err != nil {
		t.Fatalf("start adventure: %v", err)
	}

	state := result.Session.State
	if state.HP != 20 || state.MaxHP != 20 {
		t.Errorf("hp = %d/%d, want starting 20/20", state.HP, state.MaxHP)
	}
	if state.Stats["strength"] != 10 || state.Stats["cunning"] != 12 {
		t.Errorf("stats = %v, want template defaults", state.Stats)
	}
	if state.Location != "Mistgate" {
		t.Errorf("location = %q, want Mistgate", state.Location)
	}
	if state.GameTime != 8 || state.GameDay != 1 {
		t.Errorf("clock = hour %d day %d, want hour 8 day 1", state.GameTime, state.GameDay)
	}
	if state.Currency != 10 {
		t.Errorf("currency = %d, want starting 10", state.Currency)
	}
	if state.CustomData["character_name"] != "Wren" {
		t.Errorf("custom data = %v, want character name stored", state.CustomData)
	}
	if result.Story != "The gates creak open." {
		t.Errorf("story = %q, want the template story", result.Story)
	}

	if _, err := store.GetSession(ctx, result.Session.ID); err != nil {
		t.Errorf("session not persisted: %v", err)
	}
}

func TestStartAdventureSeedsTemplateFactions(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	adventure := testAdventure()
	adventure.Factions = []domain.FactionDefinition{
		{Name: "Tide Wardens", Description: "keepers of the harbor", InitialReputation: 20},
		{Name: "Mist Cult", InitialReputation: -40},
	}
	if err := store.PutAdventure(ctx, adventure); err != nil {
		t.Fatalf("seed adventure: %v", err)
	}

	result, err := e.StartAdventure(ctx, StartAdventureRequest{AdventureID: "adv-1"})
	if err != nil {
		t.Fatalf("start adventure: %v", err)
	}

	factions, err := store.ListFactions(ctx, result.Session.ID)
	if err != nil {
		t.Fatalf("list factions: %v", err)
	}
	if len(factions) != 2 {
		t.Fatalf("factions = %d, want both template factions seeded", len(factions))
	}
	byName := map[string]domain.Faction{}
	for _, faction := range factions {
		byName[faction.Name] = faction
	}
	if byName["Tide Wardens"].Reputation != 20 || byName["Tide Wardens"].Description != "keepers of the harbor" {
		t.Errorf("Tide Wardens = %+v, want template reputation and description", byName["Tide Wardens"])
	}
	if byName["Mist Cult"].Reputation != -40 {
		t.Errorf("Mist Cult reputation = %d, want -40", byName["Mist Cult"].Reputation)
	}
}

func TestStartAdventureSkipsFactionsWhenFeatureOff(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	adventure := testAdventure()
	adventure.Features.Factions = false
	adventure.Factions = []domain.FactionDefinition{{Name: "Tide Wardens"}}
	if err := store.PutAdventure(ctx, adventure); err != nil {
		t.Fatalf("seed adventure: %v", err)
	}

	result, err := e.StartAdventure(ctx, StartAdventureRequest{AdventureID: "adv-1"})
	if err != nil {
		t.Fatalf("start adventure: %v", err)
	}
	factions, err := store.ListFactions(ctx, result.Session.ID)
	if err != nil {
		t.Fatalf("list factions: %v", err)
	}
	if len(factions) != 0 {
		t.Errorf("factions = %+v, want none with the feature off", factions)
	}
}

func TestStartAdventureRolledAndCustomStatsStayBounded(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()
	if err := store.PutAdventure(ctx, testAdventure()); err != nil {
		t.Fatalf("seed adventure: %v", err)
	}

	result, err := e.StartAdventure(ctx, StartAdventureRequest{
		AdventureID: "adv-1",
		RollStats:   true,
		CustomStats: map[string]int{"Cunning": 99},
	})
	if err != nil {
		t.Fatalf("start adventure: %v", err)
	}

	state := result.Session.State
	if state.Stats["strength"] < 1 || state.Stats["strength"] > 18 {
		t.Errorf("rolled strength = %d, want within [1,18]", state.Stats["strength"])
	}
	if state.Stats["cunning"] != 20 {
		t.Errorf("cunning = %d, want custom 99 clamped to 20", state.Stats["cunning"])
	}

	_, err = e.StartAdventure(ctx, StartAdventureRequest{
		AdventureID: "adv-1",
		CustomStats: map[string]int{"luck": 5},
	})
	wantCode(t, err, apperrors.CodeUnknownStat)
}

func TestStartAdventureSubstitutesWordLists(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	adventure := testAdventure()
	adventure.WordLists = []domain.WordList{
		{Name: "villages", Categories: map[string][]string{"coastal": {"Saltmere"}}},
	}
	adventure.InitialLocation = "{villages.coastal}"
	adventure.InitialStory = "You wake in {villages.coastal}, near {nowhere}."
	if err := store.PutAdventure(ctx, adventure); err != nil {
		t.Fatalf("seed adventure: %v", err)
	}

	result, err := e.StartAdventure(ctx, StartAdventureRequest{AdventureID: "adv-1"})
	if err != nil {
		t.Fatalf("start adventure: %v", err)
	}
	if result.Session.State.Location != "Saltmere" {
		t.Errorf("location = %q, want substituted Saltmere", result.Session.State.Location)
	}
	// Unknown placeholders are left verbatim.
	if result.Story != "You wake in Saltmere, near {nowhere}." {
		t.Errorf("story = %q, want partial substitution", result.Story)
	}
}

func TestStartAdventureUnknownTemplate(t *testing.T) {
	e, _ := newTestEngine()

	_, err := e.StartAdventure(context.Background(), StartAdventureRequest{AdventureID: "missing"})
	wantCode(t, err, apperrors.CodeAdventureNotFound)
}

func TestContinueAdventureBumpsLastPlayed(t *testing.T) {
	e, store := newTestEngine()
	session := seedSession(t, e, store)
	ctx := context.Background()

	if _, err := e.TakeAction(ctx, "sess-1", "look around", "", 0); err != nil {
		t.Fatalf("take action: %v", err)
	}
	if _, err := e.SummarizeProgress(ctx, "sess-1", "Arrived at Mistgate.",
		[]string{"arrival"}, nil); err != nil {
		t.Fatalf("summarize: %v", err)
	}

	result, err := e.ContinueAdventure(ctx, "sess-1")
	if err != nil {
		t.Fatalf("continue adventure: %v", err)
	}
	if !result.Session.LastPlayed.After(session.LastPlayed) {
		t.Error("last played not bumped")
	}
	if result.AdventureTitle != "The Hollow Vale" {
		t.Errorf("title = %q, want The Hollow Vale", result.AdventureTitle)
	}
	if len(result.RecentActions) != 1 {
		t.Errorf("recent actions = %d, want 1", len(result.RecentActions))
	}
	if result.LatestSummary == nil || result.LatestSummary.Summary != "Arrived at Mistgate." {
		t.Errorf("latest summary = %+v, want the stored recap", result.LatestSummary)
	}
}

func TestGetSessionInfoIncludesMemories(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	seedCharacter(t, store, "npc-1", "Harrow", "Mistgate")
	ctx := context.Background()

	if _, err := e.AddCharacterMemory(ctx, "sess-1", "Harrow", "saw the player", domain.MemoryObservation, 3, nil); err != nil {
		t.Fatalf("add memory: %v", err)
	}

	info, err := e.GetSessionInfo(ctx, "sess-1", true, 0)
	if err != nil {
		t.Fatalf("get session info: %v", err)
	}
	if len(info.Characters) != 1 {
		t.Fatalf("characters = %d, want 1", len(info.Characters))
	}
	if len(info.Characters[0].Memories) != 1 {
		t.Errorf("memories = %d, want 1 included", len(info.Characters[0].Memories))
	}

	bare, err := e.GetSessionInfo(ctx, "sess-1", false, 0)
	if err != nil {
		t.Fatalf("get session info without memories: %v", err)
	}
	if len(bare.Characters[0].Memories) != 0 {
		t.Error("memories included despite includeMemories=false")
	}
}

func TestRandomizeWordFallsBackToPrompt(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	adventure := testAdventure()
	adventure.WordLists = []domain.WordList{
		{Name: "villains", Categories: map[string][]string{"bandits": {"Harrow"}}},
	}
	if err := store.PutAdventure(ctx, adventure); err != nil {
		t.Fatalf("seed adventure: %v", err)
	}
	session := domain.GameSession{ID: "sess-1", AdventureID: "adv-1", State: domain.NewPlayerState("sess-1", adventure)}
	if err := store.PutSession(ctx, session); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	result, err := e.RandomizeWord(ctx, "sess-1", "villains", "bandits", "")
	if err != nil {
		t.Fatalf("randomize word: %v", err)
	}
	if result.Word != "Harrow" {
		t.Errorf("word = %q, want Harrow", result.Word)
	}

	result, err = e.RandomizeWord(ctx, "sess-1", "taverns", "", "harbor district")
	if err != nil {
		t.Fatalf("randomize missing list: %v", err)
	}
	if result.Word != "" || result.Prompt == "" {
		t.Errorf("result = %+v, want a generation prompt for the missing list", result)
	}
}

func TestWorldEntityCRUDScopedToSession(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	ctx := context.Background()

	character, err := e.CreateCharacter(ctx, "sess-1", CharacterInput{
		Name:     "Harrow",
		Location: "Mistgate",
		Stats:    map[string]int{"strength": 14},
	})
	if err != nil {
		t.Fatalf("create character: %v", err)
	}

	updated, err := e.UpdateCharacter(ctx, "sess-1", character.ID, CharacterInput{
		Location: "The Docks",
		Stats:    map[string]int{"cunning": 9},
	})
	if err != nil {
		t.Fatalf("update character: %v", err)
	}
	if updated.Location != "The Docks" {
		t.Errorf("location = %q, want The Docks", updated.Location)
	}
	if updated.Stats["strength"] != 14 || updated.Stats["cunning"] != 9 {
		t.Errorf("stats = %v, want merged", updated.Stats)
	}

	location, err := e.CreateLocation(ctx, "sess-1", LocationInput{
		Name:        "The Docks",
		ConnectedTo: []string{"Mistgate"},
	})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	if _, err := e.Location(ctx, "sess-1", location.ID); err != nil {
		t.Errorf("get location: %v", err)
	}
	// A location is invisible from another session's scope.
	_, err = e.Location(ctx, "other-session", location.ID)
	wantCode(t, err, apperrors.CodeLocationNotFound)

	dock := "The Docks"
	item, err := e.CreateItem(ctx, "sess-1", ItemInput{Name: "crate", Location: &dock})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	docked, err := e.Items(ctx, "sess-1", "The Docks")
	if err != nil {
		t.Fatalf("list items at dock: %v", err)
	}
	if len(docked) != 1 || docked[0].ID != item.ID {
		t.Errorf("dock items = %+v, want just the crate", docked)
	}
	elsewhere, err := e.Items(ctx, "sess-1", "The Keep")
	if err != nil {
		t.Fatalf("list items elsewhere: %v", err)
	}
	if len(elsewhere) != 0 {
		t.Errorf("keep items = %+v, want none", elsewhere)
	}

	present, err := e.Characters(ctx, "sess-1", "The Docks")
	if err != nil {
		t.Fatalf("list characters at dock: %v", err)
	}
	if len(present) != 1 || present[0].Name != "Harrow" {
		t.Errorf("dock characters = %+v, want Harrow", present)
	}
}
