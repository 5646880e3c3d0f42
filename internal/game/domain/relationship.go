package domain

// AdjustRelationship applies a sentiment delta for an NPC, clamped to
// [-100,100], creating the relationship at zero if absent.
func (s *PlayerState) AdjustRelationship(npcName string, change int) ClampResult {
	if s.Relationships == nil {
		s.Relationships = map[string]int{}
	}
	result := ClampAdd(s.Relationships[npcName], change, ReputationMin, ReputationMax)
	s.Relationships[npcName] = result.New
	return result
}

// RelationshipLabel derives a categorical label from a sentiment value. The
// bands are evaluated independently so later checks override earlier ones:
// a value above 80 passes both the Friendly and Ally checks and lands on
// Ally.
func RelationshipLabel(value int) string {
	label := "Neutral"
	if value > 50 {
		label = "Friendly"
	}
	if value > 80 {
		label = "Ally"
	}
	if value < -50 {
		label = "Hostile"
	}
	if value < -80 {
		label = "Nemesis"
	}
	return label
}

// FactionStanding derives the seven-tier standing label from a reputation
// value.
func FactionStanding(reputation int) string {
	switch {
	case reputation > 80:
		return "Revered"
	case reputation > 50:
		return "Honored"
	case reputation > 20:
		return "Friendly"
	case reputation >= -20:
		return "Neutral"
	case reputation >= -50:
		return "Unfriendly"
	case reputation >= -80:
		return "Hostile"
	default:
		return "Hated"
	}
}
