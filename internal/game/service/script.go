package service

import (
	"context"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
	"github.com/hollowvale/adventure-engine/internal/game/script"
)

// ScriptResult reports an executed script: its return value, whether the
// state changed, and the state after the run.
type ScriptResult struct {
	Value   any                `json:"value,omitempty"`
	Changed bool               `json:"changed"`
	State   domain.PlayerState `json:"state"`
}

// EvalScript runs a Lua snippet against the session's player state and
// persists the mutated state. A script error leaves the session untouched.
func (e *Engine) EvalScript(ctx context.Context, sessionID, source string) (ScriptResult, error) {
	if source == "" {
		return ScriptResult{}, apperrors.New(apperrors.CodeInvalidArgument, "script source is required")
	}
	session, err := e.session(ctx, sessionID)
	if err != nil {
		return ScriptResult{}, err
	}

	result, err := script.Run(&session.State, e.roller, source)
	if err != nil {
		return ScriptResult{}, apperrors.Wrap(apperrors.CodeInvalidArgument, err, "script failed")
	}

	if result.Changed {
		if err := e.saveSession(ctx, &session); err != nil {
			return ScriptResult{}, err
		}
	}
	return ScriptResult{Value: result.Value, Changed: result.Changed, State: session.State}, nil
}
