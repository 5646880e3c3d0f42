package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/dice"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

const (
	successScoreDelta = 10
	defaultTargetAC   = 12
	defaultDamageDice = "1d6"
)

// ActionResult reports a resolved player action.
type ActionResult struct {
	ActionText  string       `json:"action_text"`
	Success     bool         `json:"success"`
	Outcome     string       `json:"outcome"`
	StatUsed    string       `json:"stat_used,omitempty"`
	Roll        *domain.Roll `json:"roll,omitempty"`
	ScoreChange int          `json:"score_change"`
	Score       int          `json:"score"`
}

// TakeAction resolves a player action. A named stat triggers a d20 stat
// check against the difficulty class; without one the action succeeds
// unconditionally. Success awards a fixed score delta, and every action is
// appended to the immutable history.
func (e *Engine) TakeAction(ctx context.Context, sessionID, actionText, statName string, dc int) (ActionResult, error) {
	session, err := e.session(ctx, sessionID)
	if err != nil {
		return ActionResult{}, err
	}
	if dc <= 0 {
		dc = dice.DefaultDC
	}

	result := ActionResult{ActionText: actionText, Success: true}
	if statName != "" {
		canonical, ok := domain.ResolveStatName(session.State.Stats, statName)
		if !ok {
			return ActionResult{}, apperrors.New(apperrors.CodeUnknownStat,
				"stat %q not found in session", statName)
		}
		check, err := e.roller.StatCheck(session.State.Stats[canonical], dc, false, false)
		if err != nil {
			return ActionResult{}, err
		}
		result.StatUsed = canonical
		result.Success = check.Success
		result.Roll = &domain.Roll{
			Roll:     check.Roll,
			Modifier: check.Modifier,
			Total:    check.Total,
			DC:       check.DC,
			Success:  check.Success,
			Message:  check.Message,
		}
	}

	result.Outcome = "failure"
	if result.Success {
		result.Outcome = "success"
		result.ScoreChange = successScoreDelta
	}
	session.State.Score += result.ScoreChange
	result.Score = session.State.Score

	recordID, err := e.generateID()
	if err != nil {
		return ActionResult{}, err
	}
	record := domain.ActionRecord{
		ID:          recordID,
		SessionID:   sessionID,
		ActionText:  actionText,
		StatUsed:    result.StatUsed,
		Roll:        result.Roll,
		Outcome:     result.Outcome,
		ScoreChange: result.ScoreChange,
		Timestamp:   e.clock(),
	}
	if err := e.store.AppendAction(ctx, record); err != nil {
		return ActionResult{}, fmt.Errorf("append action record: %w", err)
	}

	if err := e.saveSession(ctx, &session); err != nil {
		return ActionResult{}, err
	}
	return result, nil
}

// CombatResult reports one attack resolution. Damage is computed but never
// applied: the narrator decides the counter-attack and applies HP changes
// through a follow-up state mutation, so a round is not assumed to complete
// atomically.
type CombatResult struct {
	TargetName string      `json:"target_name"`
	AttackStat string      `json:"attack_stat"`
	Hit        bool        `json:"hit"`
	Roll       domain.Roll `json:"roll"`
	Damage     int         `json:"damage"`
	DamageDice string      `json:"damage_dice"`
}

// CombatRound resolves an attack against a target armor class using the
// named stat. On a hit the damage dice are rolled; on a miss damage is zero.
func (e *Engine) CombatRound(ctx context.Context, sessionID, targetName, attackStat string, targetAC int, damageDice string) (CombatResult, error) {
	session, err := e.session(ctx, sessionID)
	if err != nil {
		return CombatResult{}, err
	}
	if targetAC <= 0 {
		targetAC = defaultTargetAC
	}
	if damageDice == "" {
		damageDice = defaultDamageDice
	}

	spec, err := dice.ParseDamage(damageDice)
	if err != nil {
		return CombatResult{}, apperrors.Wrap(apperrors.CodeInvalidArgument, err,
			"invalid damage dice %q", damageDice)
	}

	canonical, ok := domain.ResolveStatName(session.State.Stats, attackStat)
	if !ok {
		return CombatResult{}, apperrors.New(apperrors.CodeUnknownStat,
			"stat %q not found in session", attackStat)
	}
	check, err := e.roller.StatCheck(session.State.Stats[canonical], targetAC, false, false)
	if err != nil {
		return CombatResult{}, err
	}

	result := CombatResult{
		TargetName: targetName,
		AttackStat: canonical,
		Hit:        check.Success,
		DamageDice: damageDice,
		Roll: domain.Roll{
			Roll:     check.Roll,
			Modifier: check.Modifier,
			Total:    check.Total,
			DC:       check.DC,
			Success:  check.Success,
			Message:  check.Message,
		},
	}
	if check.Success {
		result.Damage = e.roller.RollDamage(spec)
	}
	return result, nil
}

// State mutation actions accepted by ModifyState.
const (
	StateActionHP       = "hp"
	StateActionStat     = "stat"
	StateActionScore    = "score"
	StateActionLocation = "location"
)

// StateChange reports a state mutation applied through ModifyState.
type StateChange struct {
	Action      string              `json:"action"`
	Stat        string              `json:"stat,omitempty"`
	Change      *domain.ClampResult `json:"change,omitempty"`
	OldLocation string              `json:"old_location,omitempty"`
	NewLocation string              `json:"new_location,omitempty"`
	Reason      string              `json:"reason,omitempty"`
}

// ModifyState is the single authoritative entry point for mutating hp, a
// stat, the score, or the player location. Numeric values arriving as
// strings are coerced when syntactically valid.
func (e *Engine) ModifyState(ctx context.Context, sessionID, action string, value any, statName, reason string) (StateChange, error) {
	session, adventure, err := e.sessionWithAdventure(ctx, sessionID)
	if err != nil {
		return StateChange{}, err
	}

	change := StateChange{Action: action, Reason: reason}
	switch action {
	case StateActionHP:
		delta, err := coerceInt(value, action)
		if err != nil {
			return StateChange{}, err
		}
		result := domain.ClampAdd(session.State.HP, delta, 0, session.State.MaxHP)
		session.State.HP = result.New
		change.Change = &result

	case StateActionStat:
		if statName == "" {
			return StateChange{}, apperrors.New(apperrors.CodeInvalidArgument,
				"stat name is required for stat action")
		}
		delta, err := coerceInt(value, action)
		if err != nil {
			return StateChange{}, err
		}
		canonical, ok := domain.ResolveStatName(session.State.Stats, statName)
		if !ok {
			return StateChange{}, apperrors.New(apperrors.CodeUnknownStat,
				"stat %q not found in session", statName)
		}
		lower, upper := domain.StatBounds(adventure, canonical)
		result := domain.ClampAdd(session.State.Stats[canonical], delta, lower, upper)
		session.State.Stats[canonical] = result.New
		change.Stat = canonical
		change.Change = &result

	case StateActionScore:
		delta, err := coerceInt(value, action)
		if err != nil {
			return StateChange{}, err
		}
		// Score is unbounded, so the applied delta always equals the request.
		result := domain.ClampResult{
			Old:       session.State.Score,
			New:       session.State.Score + delta,
			Requested: delta,
			Applied:   delta,
		}
		session.State.Score = result.New
		change.Change = &result

	case StateActionLocation:
		location, ok := value.(string)
		if !ok {
			return StateChange{}, apperrors.New(apperrors.CodeInvalidArgument,
				"value must be a string for location action")
		}
		change.OldLocation = session.State.Location
		change.NewLocation = location
		session.State.Location = location

	default:
		return StateChange{}, apperrors.New(apperrors.CodeInvalidArgument,
			"unknown state action %q", action)
	}

	if err := e.saveSession(ctx, &session); err != nil {
		return StateChange{}, err
	}
	return change, nil
}

// coerceInt converts a loosely-typed value to an integer. String values are
// parsed; anything else non-integral fails with InvalidArgument.
func coerceInt(value any, action string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, apperrors.New(apperrors.CodeInvalidArgument,
				"value must be an integer for %s action", action)
		}
		return parsed, nil
	}
	return 0, apperrors.New(apperrors.CodeInvalidArgument,
		"value must be an integer for %s action", action)
}
