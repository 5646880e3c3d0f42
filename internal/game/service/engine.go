// Package service implements the resolution engine: every state-mutating
// operation a narrator can invoke against a session, plus the batch
// orchestrator that sequences them. Each operation is a read-modify-write
// cycle against the entity store; persistence always receives whole
// entities, never partial writes.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/dice"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/platform/id"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// Engine applies narrator actions to session state. It performs no internal
// parallelism; the transport is expected to serialize mutations per session.
type Engine struct {
	store       storage.Store
	roller      *dice.Roller
	rng         *rand.Rand
	clock       func() time.Time
	idGenerator func() (string, error)
}

// New creates an Engine with production dependencies: a wall-clock seeded
// roller and random ids.
func New(store storage.Store) *Engine {
	seed := time.Now().UnixNano()
	return &Engine{
		store:       store,
		roller:      dice.NewRoller(seed),
		rng:         rand.New(rand.NewSource(seed)),
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// session loads a game session, mapping an absent record to SessionNotFound.
func (e *Engine) session(ctx context.Context, sessionID string) (domain.GameSession, error) {
	if sessionID == "" {
		return domain.GameSession{}, apperrors.New(apperrors.CodeInvalidArgument, "session id is required")
	}
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.GameSession{}, apperrors.New(apperrors.CodeSessionNotFound, "session %q not found", sessionID)
		}
		return domain.GameSession{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

// adventure loads an adventure template, mapping an absent record to
// AdventureNotFound.
func (e *Engine) adventure(ctx context.Context, adventureID string) (domain.Adventure, error) {
	adventure, err := e.store.GetAdventure(ctx, adventureID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Adventure{}, apperrors.New(apperrors.CodeAdventureNotFound, "adventure %q not found", adventureID)
		}
		return domain.Adventure{}, fmt.Errorf("load adventure: %w", err)
	}
	return adventure, nil
}

// sessionWithAdventure loads a session and its adventure template together,
// for operations that need feature flags or stat definitions.
func (e *Engine) sessionWithAdventure(ctx context.Context, sessionID string) (domain.GameSession, domain.Adventure, error) {
	session, err := e.session(ctx, sessionID)
	if err != nil {
		return domain.GameSession{}, domain.Adventure{}, err
	}
	adventure, err := e.adventure(ctx, session.AdventureID)
	if err != nil {
		return domain.GameSession{}, domain.Adventure{}, err
	}
	return session, adventure, nil
}

// saveSession persists the whole session after a mutation, stamping the
// last-played time.
func (e *Engine) saveSession(ctx context.Context, session *domain.GameSession) error {
	session.LastPlayed = e.clock()
	if err := e.store.PutSession(ctx, *session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// generateID produces a new entity id.
func (e *Engine) generateID() (string, error) {
	newID, err := e.idGenerator()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return newID, nil
}

// Feature names for gated operation categories.
const (
	featureStatusEffects = "status_effects"
	featureTimeTracking  = "time_tracking"
	featureFactions      = "factions"
	featureCurrency      = "currency"
)

// requireFeature rejects a gated operation before any mutation when the
// adventure has the relevant feature flag off.
func requireFeature(adventure domain.Adventure, feature string) error {
	enabled := false
	switch feature {
	case featureStatusEffects:
		enabled = adventure.Features.StatusEffects
	case featureTimeTracking:
		enabled = adventure.Features.TimeTracking
	case featureFactions:
		enabled = adventure.Features.Factions
	case featureCurrency:
		enabled = adventure.Features.Currency
	}
	if !enabled {
		return apperrors.New(apperrors.CodeFeatureDisabled,
			"the %s feature is not enabled for this adventure", feature)
	}
	return nil
}
