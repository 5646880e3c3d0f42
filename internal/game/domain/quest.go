package domain

// ValidQuestStatus reports whether the given status is one of the known
// quest states.
func ValidQuestStatus(status string) bool {
	switch status {
	case QuestActive, QuestCompleted, QuestFailed:
		return true
	}
	return false
}

// FindQuest returns a pointer into the session's quest list by id.
func (s *PlayerState) FindQuest(questID string) *QuestStatus {
	for i := range s.Quests {
		if s.Quests[i].ID == questID {
			return &s.Quests[i]
		}
	}
	return nil
}

// AddObjective appends an objective unconditionally.
func (q *QuestStatus) AddObjective(objective string) {
	q.Objectives = append(q.Objectives, objective)
}

// CompleteObjective marks an objective complete. Completion is idempotent:
// completing an already-completed objective is a no-op, and only objectives
// present in the quest's objective list can be completed. Returns whether
// the completion list changed.
func (q *QuestStatus) CompleteObjective(objective string) bool {
	known := false
	for _, o := range q.Objectives {
		if o == objective {
			known = true
			break
		}
	}
	if !known {
		return false
	}
	for _, done := range q.CompletedObjectives {
		if done == objective {
			return false
		}
	}
	q.CompletedObjectives = append(q.CompletedObjectives, objective)
	return true
}
