package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/storage"
)

// Status-effect actions accepted by ManageStatusEffects.
const (
	EffectActionAdd    = "add"
	EffectActionUpdate = "update"
	EffectActionRemove = "remove"
	EffectActionList   = "list"
)

// EffectRequest carries the parameters of a status-effect operation.
// Duration follows the sentinel convention: -1 permanent, 0 expired,
// positive for remaining turns. A nil Duration on update leaves it alone.
type EffectRequest struct {
	Action      string
	EffectID    string
	Name        string
	Description string
	Duration    *int
	Properties  map[string]any
}

// EffectResult reports a status-effect operation. List returns active
// effects only; expired ones stay stored but are filtered out.
type EffectResult struct {
	Action  string                `json:"action"`
	Effect  *domain.StatusEffect  `json:"effect,omitempty"`
	Effects []domain.StatusEffect `json:"effects,omitempty"`
}

// ManageStatusEffects applies a status-effect operation. The category is
// gated by the adventure's status-effects feature flag. Durations are never
// decremented automatically; only an explicit update changes them.
func (e *Engine) ManageStatusEffects(ctx context.Context, sessionID string, req EffectRequest) (EffectResult, error) {
	session, adventure, err := e.sessionWithAdventure(ctx, sessionID)
	if err != nil {
		return EffectResult{}, err
	}
	if err := requireFeature(adventure, featureStatusEffects); err != nil {
		return EffectResult{}, err
	}

	result := EffectResult{Action: req.Action}
	switch req.Action {
	case EffectActionAdd:
		if req.Name == "" {
			return EffectResult{}, apperrors.New(apperrors.CodeInvalidArgument,
				"effect name is required")
		}
		effectID, err := e.generateID()
		if err != nil {
			return EffectResult{}, err
		}
		duration := domain.DurationPermanent
		if req.Duration != nil {
			duration = *req.Duration
		}
		effect := domain.StatusEffect{
			ID:          effectID,
			SessionID:   session.ID,
			Name:        req.Name,
			Description: req.Description,
			Duration:    duration,
			Properties:  req.Properties,
			CreatedAt:   e.clock(),
		}
		if effect.Properties == nil {
			effect.Properties = map[string]any{}
		}
		if err := e.store.PutStatusEffect(ctx, effect); err != nil {
			return EffectResult{}, fmt.Errorf("persist status effect: %w", err)
		}
		result.Effect = &effect

	case EffectActionUpdate:
		effect, err := e.statusEffect(ctx, session.ID, req.EffectID)
		if err != nil {
			return EffectResult{}, err
		}
		if req.Name != "" {
			effect.Name = req.Name
		}
		if req.Description != "" {
			effect.Description = req.Description
		}
		if req.Duration != nil {
			effect.Duration = *req.Duration
		}
		for key, value := range req.Properties {
			if effect.Properties == nil {
				effect.Properties = map[string]any{}
			}
			effect.Properties[key] = value
		}
		if err := e.store.PutStatusEffect(ctx, effect); err != nil {
			return EffectResult{}, fmt.Errorf("persist status effect: %w", err)
		}
		result.Effect = &effect

	case EffectActionRemove:
		effect, err := e.statusEffect(ctx, session.ID, req.EffectID)
		if err != nil {
			return EffectResult{}, err
		}
		if err := e.store.DeleteStatusEffect(ctx, effect.ID); err != nil {
			return EffectResult{}, fmt.Errorf("delete status effect: %w", err)
		}
		result.Effect = &effect

	case EffectActionList:
		effects, err := e.store.ListStatusEffects(ctx, session.ID)
		if err != nil {
			return EffectResult{}, fmt.Errorf("list status effects: %w", err)
		}
		active := make([]domain.StatusEffect, 0, len(effects))
		for _, effect := range effects {
			if effect.Active() {
				active = append(active, effect)
			}
		}
		result.Effects = active

	default:
		return EffectResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"unknown status effect action %q", req.Action)
	}

	return result, nil
}

// statusEffect loads a status effect and verifies it belongs to the session.
func (e *Engine) statusEffect(ctx context.Context, sessionID, effectID string) (domain.StatusEffect, error) {
	if effectID == "" {
		return domain.StatusEffect{}, apperrors.New(apperrors.CodeInvalidArgument, "effect id is required")
	}
	effect, err := e.store.GetStatusEffect(ctx, effectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.StatusEffect{}, apperrors.New(apperrors.CodeStatusEffectNotFound,
				"status effect %q not found", effectID)
		}
		return domain.StatusEffect{}, fmt.Errorf("load status effect: %w", err)
	}
	if effect.SessionID != sessionID {
		return domain.StatusEffect{}, apperrors.New(apperrors.CodeStatusEffectNotFound,
			"status effect %q not found", effectID)
	}
	return effect, nil
}
