// Package service tests the MCP server wiring end to end over in-memory
// transports.
package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	gamedomain "github.com/hollowvale/adventure-engine/internal/game/domain"
	gameservice "github.com/hollowvale/adventure-engine/internal/game/service"
	mcpdomain "github.com/hollowvale/adventure-engine/internal/mcp/domain"
	"github.com/hollowvale/adventure-engine/internal/storage/sqlite"
)

// newTestEngine builds an engine over a throwaway SQLite store seeded with
// one adventure template.
func newTestEngine(t *testing.T) *gameservice.Engine {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "engine.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	adventure := gamedomain.Adventure{
		ID:          "adv-1",
		Title:       "The Hollow Vale",
		Description: "A fog-bound valley full of secrets.",
		Stats: []gamedomain.StatDefinition{
			{Name: "strength", DefaultValue: 10, MinValue: 1, MaxValue: 18},
		},
		StartingHP:      20,
		InitialLocation: "Mistgate",
		InitialStory:    "The gates creak open.",
	}
	if err := store.PutAdventure(context.Background(), adventure); err != nil {
		t.Fatalf("seed adventure: %v", err)
	}

	return gameservice.New(store)
}

// connectClient serves the MCP server over an in-memory transport and
// returns a connected client session.
func connectClient(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	// Stop the server before closing the client session, otherwise the
	// server sees a closed pipe instead of a clean cancellation.
	t.Cleanup(func() {
		cancel()
		_ = session.Close()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return session
}

// decodeStructuredContent round-trips a tool's structured output into a
// typed value.
func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}

// TestNewRequiresEngine ensures New rejects a missing engine.
func TestNewRequiresEngine(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil engine")
	}
}

// TestServeRequiresConfiguredServer ensures Serve returns an error when
// unconfigured.
func TestServeRequiresConfiguredServer(t *testing.T) {
	tests := []struct {
		name   string
		server *Server
	}{
		{name: "nil server", server: nil},
		{name: "missing mcp server", server: &Server{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.server.Serve(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

// TestRunRejectsUnknownTransport ensures Run validates the transport kind.
func TestRunRejectsUnknownTransport(t *testing.T) {
	engine := newTestEngine(t)
	if err := Run(context.Background(), engine, Config{Transport: "carrier-pigeon"}); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

// TestStartAdventureToolRoundTrip ensures a tool call flows through the MCP
// server into the engine and back.
func TestStartAdventureToolRoundTrip(t *testing.T) {
	server, err := New(newTestEngine(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session := connectClient(t, server)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "start_adventure",
		Arguments: map[string]any{
			"adventure_id":   "adv-1",
			"character_name": "Wren",
		},
	})
	if err != nil {
		t.Fatalf("call start_adventure: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatalf("start_adventure failed: %+v", result)
	}

	output := decodeStructuredContent[gameservice.StartAdventureResult](t, result.StructuredContent)
	if output.Session.ID == "" {
		t.Fatal("start_adventure returned empty session id")
	}
	if output.AdventureTitle != "The Hollow Vale" {
		t.Fatalf("expected adventure title, got %q", output.AdventureTitle)
	}
	if output.Session.State.HP != 20 {
		t.Fatalf("expected starting hp 20, got %d", output.Session.State.HP)
	}

	stateResult, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_state",
		Arguments: map[string]any{"session_id": output.Session.ID},
	})
	if err != nil {
		t.Fatalf("call get_state: %v", err)
	}
	if stateResult == nil || stateResult.IsError {
		t.Fatalf("get_state failed: %+v", stateResult)
	}
	state := decodeStructuredContent[mcpdomain.GetStateResult](t, stateResult.StructuredContent)
	if state.State.Location != "Mistgate" {
		t.Fatalf("expected location Mistgate, got %q", state.State.Location)
	}
}

// TestToolErrorsSurfaceAsToolResults ensures engine errors become tool error
// results rather than protocol failures.
func TestToolErrorsSurfaceAsToolResults(t *testing.T) {
	server, err := New(newTestEngine(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session := connectClient(t, server)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_state",
		Arguments: map[string]any{"session_id": "missing"},
	})
	if err != nil {
		t.Fatalf("call get_state: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatalf("expected tool error result, got %+v", result)
	}
}

// TestListToolsExposesEverySurface spot-checks the registered tool catalog.
func TestListToolsExposesEverySurface(t *testing.T) {
	server, err := New(newTestEngine(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	session := connectClient(t, server)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}

	registered := map[string]bool{}
	for _, tool := range tools.Tools {
		registered[tool.Name] = true
	}
	for _, name := range []string{
		"start_adventure", "continue_adventure", "take_action", "combat_round",
		"modify_state", "manage_inventory", "update_quest", "interact_npc",
		"manage_faction", "manage_economy", "manage_time", "manage_status_effects",
		"record_event", "add_character_memory", "get_character_memories",
		"create_character", "create_location", "create_item", "execute_batch",
		"eval_script", "randomize_word", "get_session_info", "get_history",
	} {
		if !registered[name] {
			t.Errorf("tool %s not registered", name)
		}
	}
}
