// Package domain defines the entities and pure rules of the adventure
// engine: player state, world entities, clamped numeric mutation, quest and
// relationship bookkeeping, and the NPC memory model.
package domain

import "time"

// StatDefinition describes one character stat available in an adventure.
type StatDefinition struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultValue int    `json:"default_value"`
	MinValue     int    `json:"min_value"`
	MaxValue     int    `json:"max_value"`
}

// WordList is a collection of predefined words for dynamic content generation.
type WordList struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Categories  map[string][]string `json:"categories"`
}

// Features toggles optional rule subsystems per adventure.
type Features struct {
	StatusEffects bool `json:"status_effects"`
	TimeTracking  bool `json:"time_tracking"`
	Factions      bool `json:"factions"`
	Currency      bool `json:"currency"`
}

// TimeConfig seeds the in-game clock for new sessions.
type TimeConfig struct {
	StartHour int `json:"start_hour"`
	StartDay  int `json:"start_day"`
}

// CurrencyConfig seeds the economy for new sessions.
type CurrencyConfig struct {
	Name           string `json:"name"`
	StartingAmount int    `json:"starting_amount"`
}

// FactionDefinition seeds a faction when a session starts.
type FactionDefinition struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	InitialReputation int    `json:"initial_reputation"`
}

// Adventure is an immutable template from which sessions are instantiated.
type Adventure struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Prompt          string              `json:"prompt"`
	Stats           []StatDefinition    `json:"stats"`
	StartingHP      int                 `json:"starting_hp"`
	WordLists       []WordList          `json:"word_lists"`
	InitialLocation string              `json:"initial_location"`
	InitialStory    string              `json:"initial_story"`
	Features        Features            `json:"features"`
	TimeConfig      TimeConfig          `json:"time_config"`
	CurrencyConfig  CurrencyConfig      `json:"currency_config"`
	Factions        []FactionDefinition `json:"factions"`
}

// InventoryItem is one stack of items in a player's inventory. Names are
// unique within a session's inventory.
type InventoryItem struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Quantity    int            `json:"quantity"`
	Properties  map[string]any `json:"properties"`
}

// Quest statuses.
const (
	QuestActive    = "active"
	QuestCompleted = "completed"
	QuestFailed    = "failed"
)

// QuestStatus tracks one quest within a session.
type QuestStatus struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Status              string         `json:"status"`
	Objectives          []string       `json:"objectives"`
	CompletedObjectives []string       `json:"completed_objectives"`
	Rewards             map[string]any `json:"rewards"`
}

// Memory types.
const (
	MemoryObservation = "observation"
	MemoryInteraction = "interaction"
	MemoryRumor       = "rumor"
)

// MemoryCap bounds how many memories a character retains before decay evicts
// the least important, oldest entry.
const MemoryCap = 50

// Memory is one remembered event, owned exclusively by its character.
type Memory struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	Timestamp       time.Time `json:"timestamp"`
	Type            string    `json:"type"`
	Importance      int       `json:"importance"`
	Tags            []string  `json:"tags"`
	RelatedEntities []string  `json:"related_entities"`
}

// Character is a session-scoped NPC.
type Character struct {
	ID          string         `json:"id"`
	SessionID   string         `json:"session_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Stats       map[string]int `json:"stats"`
	Properties  map[string]any `json:"properties"`
	Memories    []Memory       `json:"memories"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Location is a session-scoped place in the game world.
type Location struct {
	ID          string         `json:"id"`
	SessionID   string         `json:"session_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ConnectedTo []string       `json:"connected_to"`
	Properties  map[string]any `json:"properties"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Item is a session-scoped world object. A nil Location means the item sits
// in the player's inventory rather than in the world.
type Item struct {
	ID          string         `json:"id"`
	SessionID   string         `json:"session_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Location    *string        `json:"location"`
	Properties  map[string]any `json:"properties"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Faction is a session-scoped organization with a reputation standing.
type Faction struct {
	ID          string         `json:"id"`
	SessionID   string         `json:"session_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Reputation  int            `json:"reputation"`
	Properties  map[string]any `json:"properties"`
	CreatedAt   time.Time      `json:"created_at"`
}

// StatusEffect duration sentinels. Positive values count remaining turns;
// the engine never decrements them automatically.
const (
	DurationPermanent = -1
	DurationExpired   = 0
)

// StatusEffect is a session-scoped condition on the player.
type StatusEffect struct {
	ID          string         `json:"id"`
	SessionID   string         `json:"session_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Duration    int            `json:"duration"`
	Properties  map[string]any `json:"properties"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Active reports whether the effect still applies.
func (e StatusEffect) Active() bool {
	return e.Duration != DurationExpired
}

// PlayerState is the mutable state of one session's player.
type PlayerState struct {
	SessionID     string          `json:"session_id"`
	HP            int             `json:"hp"`
	MaxHP         int             `json:"max_hp"`
	Score         int             `json:"score"`
	Location      string          `json:"location"`
	Stats         map[string]int  `json:"stats"`
	Inventory     []InventoryItem `json:"inventory"`
	Quests        []QuestStatus   `json:"quests"`
	Relationships map[string]int  `json:"relationships"`
	CustomData    map[string]any  `json:"custom_data"`
	Currency      int             `json:"currency"`
	GameTime      int             `json:"game_time"`
	GameDay       int             `json:"game_day"`
}

// GameSession is one player's ongoing playthrough of an adventure.
type GameSession struct {
	ID          string      `json:"id"`
	AdventureID string      `json:"adventure_id"`
	CreatedAt   time.Time   `json:"created_at"`
	LastPlayed  time.Time   `json:"last_played"`
	State       PlayerState `json:"state"`
}

// ActionRecord is one immutable entry in a session's action history.
type ActionRecord struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	ActionText  string    `json:"action_text"`
	StatUsed    string    `json:"stat_used,omitempty"`
	Roll        *Roll     `json:"roll,omitempty"`
	Outcome     string    `json:"outcome"`
	ScoreChange int       `json:"score_change"`
	Timestamp   time.Time `json:"timestamp"`
}

// Roll captures a resolved d20 check for the action history.
type Roll struct {
	Roll     int    `json:"roll"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
	DC       int    `json:"dc"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
}

// SessionSummary is a narrator-authored recap of a play session.
type SessionSummary struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"session_id"`
	Summary          string    `json:"summary"`
	KeyEvents        []string  `json:"key_events"`
	CharacterChanges []string  `json:"character_changes"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewPlayerState materializes a fresh player state from an adventure
// template: stat defaults, starting HP, initial location, time and currency
// seeds.
func NewPlayerState(sessionID string, adventure Adventure) PlayerState {
	stats := make(map[string]int, len(adventure.Stats))
	for _, def := range adventure.Stats {
		stats[def.Name] = def.DefaultValue
	}

	maxHP := adventure.StartingHP
	if maxHP <= 0 {
		maxHP = defaultStartingHP
	}

	day := adventure.TimeConfig.StartDay
	if day < 1 {
		day = 1
	}
	hour := adventure.TimeConfig.StartHour
	if hour < 0 || hour >= hoursPerDay {
		hour = 0
	}

	return PlayerState{
		SessionID:     sessionID,
		HP:            maxHP,
		MaxHP:         maxHP,
		Location:      adventure.InitialLocation,
		Stats:         stats,
		Inventory:     []InventoryItem{},
		Quests:        []QuestStatus{},
		Relationships: map[string]int{},
		CustomData:    map[string]any{},
		Currency:      adventure.CurrencyConfig.StartingAmount,
		GameTime:      hour,
		GameDay:       day,
	}
}

const defaultStartingHP = 20
