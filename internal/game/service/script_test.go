package service

import (
	"context"
	"testing"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
)

func TestEvalScriptPersistsMutations(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	ctx := context.Background()

	result, err := e.EvalScript(ctx, "sess-1", `
		state.score = state.score + 15
		state.custom.blessed = true
	`)
	if err != nil {
		t.Fatalf("eval script: %v", err)
	}
	if !result.Changed {
		t.Error("changed = false, want true")
	}
	if result.State.Score != 15 {
		t.Errorf("score = %d, want 15", result.State.Score)
	}

	session, _ := store.GetSession(ctx, "sess-1")
	if session.State.Score != 15 {
		t.Errorf("persisted score = %d, want 15", session.State.Score)
	}
	if session.State.CustomData["blessed"] != true {
		t.Errorf("custom data = %v, want blessed flag persisted", session.State.CustomData)
	}
}

func TestEvalScriptPersistsCustomOnlyMutation(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	ctx := context.Background()

	result, err := e.EvalScript(ctx, "sess-1", `state.custom.visited_shrine = true`)
	if err != nil {
		t.Fatalf("eval script: %v", err)
	}
	if !result.Changed {
		t.Error("changed = false, want true when only custom data mutates")
	}

	session, _ := store.GetSession(ctx, "sess-1")
	if session.State.CustomData["visited_shrine"] != true {
		t.Errorf("custom data = %v, want visited_shrine persisted", session.State.CustomData)
	}
}

func TestEvalScriptFailureDoesNotPersist(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	ctx := context.Background()

	_, err := e.EvalScript(ctx, "sess-1", `state.score = 99 error("boom")`)
	wantCode(t, err, apperrors.CodeInvalidArgument)

	session, _ := store.GetSession(ctx, "sess-1")
	if session.State.Score != 0 {
		t.Errorf("score = %d, want unchanged 0", session.State.Score)
	}

	_, err = e.EvalScript(ctx, "sess-1", "")
	wantCode(t, err, apperrors.CodeInvalidArgument)

	_, err = e.EvalScript(ctx, "missing", `return 1`)
	wantCode(t, err, apperrors.CodeSessionNotFound)
}
