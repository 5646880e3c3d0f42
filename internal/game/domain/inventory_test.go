package domain

import "testing"

func TestAddInventoryItemMergesByName(t *testing.T) {
	state := PlayerState{}
	state.AddInventoryItem(InventoryItem{ID: "i1", Name: "torch", Quantity: 2})
	state.AddInventoryItem(InventoryItem{ID: "i2", Name: "torch", Quantity: 3})

	if len(state.Inventory) != 1 {
		t.Fatalf("expected one stack, got %d", len(state.Inventory))
	}
	if state.Inventory[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", state.Inventory[0].Quantity)
	}
}

func TestAddInventoryItemMergesByIDBeforeName(t *testing.T) {
	state := PlayerState{}
	state.AddInventoryItem(InventoryItem{ID: "i1", Name: "rope", Quantity: 2})
	// Same id, renamed item: still the same stack.
	merged := state.AddInventoryItem(InventoryItem{ID: "i1", Name: "sturdy rope", Quantity: 1})

	if len(state.Inventory) != 1 {
		t.Fatalf("expected one stack, got %d", len(state.Inventory))
	}
	if merged.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", merged.Quantity)
	}
}

func TestRemoveInventoryItemDropsEmptyStack(t *testing.T) {
	state := PlayerState{}
	state.AddInventoryItem(InventoryItem{Name: "potion", Quantity: 2})

	removed, ok := state.RemoveInventoryItem("potion", 1)
	if !ok || removed != 1 {
		t.Fatalf("expected removal of 1, got %d ok=%v", removed, ok)
	}
	if state.Inventory[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", state.Inventory[0].Quantity)
	}

	// Removing more than held drops the stack entirely.
	removed, ok = state.RemoveInventoryItem("potion", 5)
	if !ok || removed != 1 {
		t.Fatalf("expected removal of remaining 1, got %d ok=%v", removed, ok)
	}
	if len(state.Inventory) != 0 {
		t.Fatalf("expected empty inventory, got %d stacks", len(state.Inventory))
	}
}

func TestRemoveInventoryItemMissing(t *testing.T) {
	state := PlayerState{}
	if _, ok := state.RemoveInventoryItem("ghost", 1); ok {
		t.Fatal("expected miss for absent item")
	}
}

func TestConsumableFlag(t *testing.T) {
	item := InventoryItem{Properties: map[string]any{"consumable": true}}
	if !item.Consumable() {
		t.Fatal("expected consumable")
	}
	item = InventoryItem{Properties: map[string]any{"consumable": "true"}}
	if !item.Consumable() {
		t.Fatal("expected string flag to count")
	}
	item = InventoryItem{}
	if item.Consumable() {
		t.Fatal("expected non-consumable by default")
	}
}

func TestQuestObjectiveCompletionIdempotent(t *testing.T) {
	quest := QuestStatus{
		ID:         "q1",
		Status:     QuestActive,
		Objectives: []string{"find the key"},
	}

	if !quest.CompleteObjective("find the key") {
		t.Fatal("first completion should change state")
	}
	if quest.CompleteObjective("find the key") {
		t.Fatal("second completion must be a no-op")
	}
	if len(quest.CompletedObjectives) != 1 {
		t.Fatalf("expected exactly one completion, got %d", len(quest.CompletedObjectives))
	}

	if quest.CompleteObjective("unknown objective") {
		t.Fatal("unknown objectives cannot be completed")
	}
}

func TestNewPlayerStateFromTemplate(t *testing.T) {
	adventure := Adventure{
		ID:         "adv1",
		StartingHP: 30,
		Stats: []StatDefinition{
			{Name: "Strength", DefaultValue: 10, MinValue: 0, MaxValue: 20},
			{Name: "Wits", DefaultValue: 12, MinValue: 0, MaxValue: 20},
		},
		InitialLocation: "Harbor",
		TimeConfig:      TimeConfig{StartHour: 8, StartDay: 1},
		CurrencyConfig:  CurrencyConfig{Name: "coins", StartingAmount: 25},
	}

	state := NewPlayerState("sess1", adventure)
	if state.HP != 30 || state.MaxHP != 30 {
		t.Fatalf("expected hp 30/30, got %d/%d", state.HP, state.MaxHP)
	}
	if state.Stats["Wits"] != 12 {
		t.Fatalf("expected Wits 12, got %d", state.Stats["Wits"])
	}
	if state.Location != "Harbor" {
		t.Fatalf("expected Harbor, got %q", state.Location)
	}
	if state.Currency != 25 {
		t.Fatalf("expected 25 currency, got %d", state.Currency)
	}
	if state.GameTime != 8 || state.GameDay != 1 {
		t.Fatalf("expected 08:00 day 1, got %d:00 day %d", state.GameTime, state.GameDay)
	}
}
