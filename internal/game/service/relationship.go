package service

import (
	"context"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

// InteractionResult reports a relationship change with an NPC.
type InteractionResult struct {
	NPCName string             `json:"npc_name"`
	Change  domain.ClampResult `json:"change"`
	Label   string             `json:"label"`
}

// InteractNPC applies a sentiment delta toward an NPC, clamped to
// [-100,100], and derives the categorical relationship label from the new
// value.
func (e *Engine) InteractNPC(ctx context.Context, sessionID, npcName string, sentimentChange int) (InteractionResult, error) {
	if npcName == "" {
		return InteractionResult{}, apperrors.New(apperrors.CodeInvalidArgument, "npc name is required")
	}
	session, err := e.session(ctx, sessionID)
	if err != nil {
		return InteractionResult{}, err
	}

	change := session.State.AdjustRelationship(npcName, sentimentChange)
	result := InteractionResult{
		NPCName: npcName,
		Change:  change,
		Label:   domain.RelationshipLabel(change.New),
	}
	if err := e.saveSession(ctx, &session); err != nil {
		return InteractionResult{}, err
	}
	return result, nil
}
