package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

// Faction actions accepted by ManageFaction.
const (
	FactionActionCreate           = "create"
	FactionActionUpdateReputation = "update_reputation"
	FactionActionGet              = "get"
	FactionActionList             = "list"
)

// FactionRequest carries the parameters of a faction operation. FactionName
// matches case-insensitively against existing factions for lookups.
type FactionRequest struct {
	Action           string
	FactionName      string
	Description      string
	ReputationChange int
	Properties       map[string]any
}

// FactionResult reports a faction operation.
type FactionResult struct {
	Action   string              `json:"action"`
	Faction  *domain.Faction     `json:"faction,omitempty"`
	Factions []domain.Faction    `json:"factions,omitempty"`
	Change   *domain.ClampResult `json:"change,omitempty"`
	Standing string              `json:"standing,omitempty"`
}

// ManageFaction applies a faction operation. The whole category is gated by
// the adventure's factions feature flag, checked before any mutation.
func (e *Engine) ManageFaction(ctx context.Context, sessionID string, req FactionRequest) (FactionResult, error) {
	session, adventure, err := e.sessionWithAdventure(ctx, sessionID)
	if err != nil {
		return FactionResult{}, err
	}
	if err := requireFeature(adventure, featureFactions); err != nil {
		return FactionResult{}, err
	}

	result := FactionResult{Action: req.Action}
	switch req.Action {
	case FactionActionCreate:
		if req.FactionName == "" {
			return FactionResult{}, apperrors.New(apperrors.CodeInvalidArgument,
				"faction name is required")
		}
		factionID, err := e.generateID()
		if err != nil {
			return FactionResult{}, err
		}
		faction := domain.Faction{
			ID:          factionID,
			SessionID:   session.ID,
			Name:        req.FactionName,
			Description: req.Description,
			Reputation:  req.ReputationChange,
			Properties:  req.Properties,
			CreatedAt:   e.clock(),
		}
		if faction.Properties == nil {
			faction.Properties = map[string]any{}
		}
		if err := e.store.PutFaction(ctx, faction); err != nil {
			return FactionResult{}, fmt.Errorf("persist faction: %w", err)
		}
		result.Faction = &faction
		result.Standing = domain.FactionStanding(faction.Reputation)

	case FactionActionUpdateReputation:
		faction, err := e.findFaction(ctx, session.ID, req.FactionName)
		if err != nil {
			return FactionResult{}, err
		}
		change := domain.ClampAdd(faction.Reputation, req.ReputationChange,
			domain.ReputationMin, domain.ReputationMax)
		faction.Reputation = change.New
		if err := e.store.PutFaction(ctx, faction); err != nil {
			return FactionResult{}, fmt.Errorf("persist faction: %w", err)
		}
		result.Faction = &faction
		result.Change = &change
		result.Standing = domain.FactionStanding(faction.Reputation)

	case FactionActionGet:
		faction, err := e.findFaction(ctx, session.ID, req.FactionName)
		if err != nil {
			return FactionResult{}, err
		}
		result.Faction = &faction
		result.Standing = domain.FactionStanding(faction.Reputation)

	case FactionActionList:
		factions, err := e.store.ListFactions(ctx, session.ID)
		if err != nil {
			return FactionResult{}, fmt.Errorf("list factions: %w", err)
		}
		result.Factions = factions

	default:
		return FactionResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"unknown faction action %q", req.Action)
	}

	return result, nil
}

// findFaction resolves a faction by case-insensitive name within a session.
func (e *Engine) findFaction(ctx context.Context, sessionID, name string) (domain.Faction, error) {
	if name == "" {
		return domain.Faction{}, apperrors.New(apperrors.CodeInvalidArgument, "faction name is required")
	}
	factions, err := e.store.ListFactions(ctx, sessionID)
	if err != nil {
		return domain.Faction{}, fmt.Errorf("list factions: %w", err)
	}
	for _, faction := range factions {
		if strings.EqualFold(faction.Name, name) {
			return faction, nil
		}
	}
	return domain.Faction{}, apperrors.New(apperrors.CodeFactionNotFound,
		"faction %q not found", name)
}
