package service

import (
	"context"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

// QuestUpdate carries the mutable fields of an UpdateQuest request. Empty
// fields are left untouched on an existing quest.
type QuestUpdate struct {
	QuestID           string
	Title             string
	Description       string
	Status            string
	AddObjective      string
	CompleteObjective string
	Rewards           map[string]any
}

// QuestResult reports a quest mutation.
type QuestResult struct {
	Quest              domain.QuestStatus `json:"quest"`
	Created            bool               `json:"created"`
	ObjectiveCompleted bool               `json:"objective_completed,omitempty"`
}

// UpdateQuest creates or mutates a quest. A missing quest id with a title
// creates a new active quest; without a title the update fails with
// QuestNotFound. Objective completion is idempotent.
func (e *Engine) UpdateQuest(ctx context.Context, sessionID string, update QuestUpdate) (QuestResult, error) {
	session, err := e.session(ctx, sessionID)
	if err != nil {
		return QuestResult{}, err
	}
	if update.Status != "" && !domain.ValidQuestStatus(update.Status) {
		return QuestResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"unknown quest status %q", update.Status)
	}

	result := QuestResult{}
	quest := session.State.FindQuest(update.QuestID)
	if quest == nil {
		if update.Title == "" {
			return QuestResult{}, apperrors.New(apperrors.CodeQuestNotFound,
				"quest %q not found and no title supplied to create one", update.QuestID)
		}
		questID := update.QuestID
		if questID == "" {
			questID, err = e.generateID()
			if err != nil {
				return QuestResult{}, err
			}
		}
		created := domain.QuestStatus{
			ID:                  questID,
			Title:               update.Title,
			Description:         update.Description,
			Status:              domain.QuestActive,
			Objectives:          []string{},
			CompletedObjectives: []string{},
			Rewards:             update.Rewards,
		}
		if update.AddObjective != "" {
			created.AddObjective(update.AddObjective)
		}
		session.State.Quests = append(session.State.Quests, created)
		quest = &session.State.Quests[len(session.State.Quests)-1]
		result.Created = true
	} else {
		if update.Title != "" {
			quest.Title = update.Title
		}
		if update.Description != "" {
			quest.Description = update.Description
		}
		if update.Status != "" {
			quest.Status = update.Status
		}
		if update.Rewards != nil {
			quest.Rewards = update.Rewards
		}
		if update.AddObjective != "" {
			quest.AddObjective(update.AddObjective)
		}
	}

	if update.CompleteObjective != "" {
		result.ObjectiveCompleted = quest.CompleteObjective(update.CompleteObjective)
	}

	result.Quest = *quest
	if err := e.saveSession(ctx, &session); err != nil {
		return QuestResult{}, err
	}
	return result, nil
}
