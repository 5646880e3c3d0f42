package service

import (
	"context"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

// Time actions accepted by ManageTime.
const (
	TimeActionAdvance = "advance"
	TimeActionSet     = "set"
	TimeActionGet     = "get"
)

// TimeResult reports the in-game clock after a time operation.
type TimeResult struct {
	Action    string              `json:"action"`
	Time      int                 `json:"time"`
	Day       int                 `json:"day"`
	TimeOfDay string              `json:"time_of_day"`
	Advance   *domain.TimeAdvance `json:"advance,omitempty"`
}

// ManageTime advances, sets, or reads the in-game clock. The category is
// gated by the adventure's time-tracking feature flag. Advancing rolls the
// day forward when the hour overflows; setting takes the hour mod 24 and
// never changes the day.
func (e *Engine) ManageTime(ctx context.Context, sessionID, action string, hours int) (TimeResult, error) {
	session, adventure, err := e.sessionWithAdventure(ctx, sessionID)
	if err != nil {
		return TimeResult{}, err
	}
	if err := requireFeature(adventure, featureTimeTracking); err != nil {
		return TimeResult{}, err
	}

	result := TimeResult{Action: action}
	switch action {
	case TimeActionAdvance:
		if hours < 0 {
			return TimeResult{}, apperrors.New(apperrors.CodeInvalidArgument,
				"hours must not be negative")
		}
		advance := session.State.AdvanceTime(hours)
		result.Advance = &advance
	case TimeActionSet:
		session.State.SetTime(hours)
	case TimeActionGet:
		result.Time = session.State.GameTime
		result.Day = session.State.GameDay
		result.TimeOfDay = domain.TimeOfDay(session.State.GameTime)
		return result, nil
	default:
		return TimeResult{}, apperrors.New(apperrors.CodeInvalidArgument,
			"unknown time action %q", action)
	}

	if err := e.saveSession(ctx, &session); err != nil {
		return TimeResult{}, err
	}
	result.Time = session.State.GameTime
	result.Day = session.State.GameDay
	result.TimeOfDay = domain.TimeOfDay(session.State.GameTime)
	return result, nil
}
