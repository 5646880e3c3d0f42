package service

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/hollowvale/adventure-engine/internal/errors"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

// seedGatedSession stores a session whose adventure has every optional
// feature turned off.
func seedGatedSession(t *testing.T, store *memStore) {
	t.Helper()
	ctx := context.Background()
	adventure := testAdventure()
	adventure.Features = domain.Features{}
	if err := store.PutAdventure(ctx, adventure); err != nil {
		t.Fatalf("seed adventure: %v", err)
	}
	session := domain.GameSession{
		ID:          "sess-1",
		AdventureID: adventure.ID,
		State:       domain.NewPlayerState("sess-1", adventure),
	}
	if err := store.PutSession(ctx, session); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func TestFeatureGatesRejectBeforeMutation(t *testing.T) {
	e, store := newTestEngine()
	seedGatedSession(t, store)
	ctx := context.Background()

	_, err := e.ManageFaction(ctx, "sess-1", FactionRequest{Action: FactionActionCreate, FactionName: "Court"})
	wantCode(t, err, apperrors.CodeFeatureDisabled)

	_, err = e.ManageEconomy(ctx, "sess-1", EconomyRequest{Action: EconomyActionAddCurrency, Amount: 5})
	wantCode(t, err, apperrors.CodeFeatureDisabled)

	_, err = e.ManageTime(ctx, "sess-1", TimeActionAdvance, 2)
	wantCode(t, err, apperrors.CodeFeatureDisabled)

	_, err = e.ManageStatusEffects(ctx, "sess-1", EffectRequest{Action: EffectActionAdd, Name: "poisoned"})
	wantCode(t, err, apperrors.CodeFeatureDisabled)
}

func TestManageFactionReputation(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	ctx := context.Background()

	created, err := e.ManageFaction(ctx, "sess-1", FactionRequest{
		Action:      FactionActionCreate,
		FactionName: "Veiled Court",
		Description: "Shadowy rulers",
	})
	if err != nil {
		t.Fatalf("create faction: %v", err)
	}
	if created.Standing != "Neutral" {
		t.Errorf("initial standing = %q, want Neutral", created.Standing)
	}

	// Case-insensitive lookup, clamped change, seven-tier label.
	updated, err := e.ManageFaction(ctx, "sess-1", FactionRequest{
		Action:           FactionActionUpdateReputation,
		FactionName:      "veiled court",
		ReputationChange: 85,
	})
	if err != nil {
		t.Fatalf("update reputation: %v", err)
	}
	if updated.Faction.Reputation != 85 || updated.Standing != "Revered" {
		t.Errorf("reputation = %d standing = %q, want 85 Revered", updated.Faction.Reputation, updated.Standing)
	}

	updated, err = e.ManageFaction(ctx, "sess-1", FactionRequest{
		Action:           FactionActionUpdateReputation,
		FactionName:      "Veiled Court",
		ReputationChange: 50,
	})
	if err != nil {
		t.Fatalf("update past bound: %v", err)
	}
	if updated.Faction.Reputation != 100 || updated.Change.Applied != 15 {
		t.Errorf("change = %+v, want clamp at 100 applying 15", updated.Change)
	}

	_, err = e.ManageFaction(ctx, "sess-1", FactionRequest{
		Action:      FactionActionUpdateReputation,
		FactionName: "Riverfolk",
	})
	wantCode(t, err, apperrors.CodeFactionNotFound)
}

func TestManageEconomyCurrency(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store) // starting balance 10
	ctx := context.Background()

	_, err := e.ManageEconomy(ctx, "sess-1", EconomyRequest{
		Action: EconomyActionRemoveCurrency,
		Amount: 50,
	})
	wantCode(t, err, apperrors.CodeInsufficientFunds)

	session, _ := store.GetSession(ctx, "sess-1")
	if session.State.Currency != 10 {
		t.Fatalf("balance = %d after failed removal, want unchanged 10", session.State.Currency)
	}

	result, err := e.ManageEconomy(ctx, "sess-1", EconomyRequest{
		Action: EconomyActionAddCurrency,
		Amount: 30,
	})
	if err != nil {
		t.Fatalf("add currency: %v", err)
	}
	if result.Balance != 40 || result.CurrencyName != "marks" {
		t.Errorf("result = %+v, want balance 40 in marks", result)
	}

	result, err = e.ManageEconomy(ctx, "sess-1", EconomyRequest{
		Action: EconomyActionRemoveCurrency,
		Amount: 15,
	})
	if err != nil {
		t.Fatalf("remove currency: %v", err)
	}
	if result.Balance != 25 {
		t.Errorf("balance = %d, want 25", result.Balance)
	}
}

func TestBuyItemIsADestructiveTransfer(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	ctx := context.Background()

	shop := "Mistgate Market"
	item := domain.Item{
		ID:         "item-1",
		SessionID:  "sess-1",
		Name:       "iron key",
		Location:   &shop,
		Properties: map[string]any{"price": float64(4)},
		CreatedAt:  time.Now(),
	}
	if err := store.PutItem(ctx, item); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	result, err := e.ManageEconomy(ctx, "sess-1", EconomyRequest{
		Action: EconomyActionBuyItem,
		ItemID: "item-1",
	})
	if err != nil {
		t.Fatalf("buy item: %v", err)
	}
	if result.Balance != 6 || result.Change != -4 {
		t.Errorf("result = %+v, want balance 6 after paying 4", result)
	}
	if result.Acquired == nil || result.Acquired.Name != "iron key" {
		t.Fatalf("acquired = %+v, want the iron key", result.Acquired)
	}

	// The world record is gone, the inventory holds the item.
	if _, err := store.GetItem(ctx, "item-1"); err == nil {
		t.Error("world item still exists after purchase, want it deleted")
	}
	session, _ := store.GetSession(ctx, "sess-1")
	if session.State.FindInventoryItem("iron key") == nil {
		t.Error("iron key missing from inventory after purchase")
	}

	// Buying again fails: the item no longer exists.
	_, err = e.ManageEconomy(ctx, "sess-1", EconomyRequest{
		Action: EconomyActionBuyItem,
		ItemID: "item-1",
	})
	wantCode(t, err, apperrors.CodeItemNotFound)
}

func TestBuyItemRequiresWorldLocation(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	ctx := context.Background()

	if err := store.PutItem(ctx, domain.Item{
		ID:        "item-1",
		SessionID: "sess-1",
		Name:      "bread",
	}); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	_, err := e.ManageEconomy(ctx, "sess-1", EconomyRequest{
		Action: EconomyActionBuyItem,
		ItemID: "item-1",
	})
	wantCode(t, err, apperrors.CodeInvalidArgument)
}

func TestSellItemMatchesByID(t *testing.T) {
	e, store := newTestEngine()
	session := seedSession(t, e, store)
	ctx := context.Background()

	session.State.Inventory = []domain.InventoryItem{
		{ID: "inv-1", Name: "gem", Quantity: 2, Properties: map[string]any{"price": float64(7)}},
	}
	if err := store.PutSession(ctx, session); err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	result, err := e.ManageEconomy(ctx, "sess-1", EconomyRequest{
		Action: EconomyActionSellItem,
		ItemID: "inv-1",
	})
	if err != nil {
		t.Fatalf("sell item: %v", err)
	}
	if result.Balance != 17 || result.Change != 7 {
		t.Errorf("result = %+v, want balance 17 after selling for 7", result)
	}

	stored, _ := store.GetSession(ctx, "sess-1")
	if gem := stored.State.FindInventoryItem("gem"); gem == nil || gem.Quantity != 1 {
		t.Errorf("gem after sale = %+v, want quantity 1", gem)
	}

	_, err = e.ManageEconomy(ctx, "sess-1", EconomyRequest{
		Action: EconomyActionSellItem,
		ItemID: "gem", // a name, not an id
	})
	wantCode(t, err, apperrors.CodeItemNotFound)
}

func TestTransferItemMovesWithoutPayment(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	ctx := context.Background()

	market := "Mistgate Market"
	if err := store.PutItem(ctx, domain.Item{
		ID:        "item-1",
		SessionID: "sess-1",
		Name:      "crate",
		Location:  &market,
	}); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	result, err := e.ManageEconomy(ctx, "sess-1", EconomyRequest{
		Action:     EconomyActionTransferItem,
		ItemID:     "item-1",
		ToLocation: "The Docks",
	})
	if err != nil {
		t.Fatalf("transfer item: %v", err)
	}
	if result.Balance != 10 {
		t.Errorf("balance = %d, want untouched 10", result.Balance)
	}
	if result.Item == nil || result.Item.Location == nil || *result.Item.Location != "The Docks" {
		t.Errorf("item = %+v, want relocated to The Docks", result.Item)
	}
}

func TestManageTimeAdvanceRollsDays(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store) // starts at hour 8, day 1
	ctx := context.Background()

	result, err := e.ManageTime(ctx, "sess-1", TimeActionAdvance, 52)
	if err != nil {
		t.Fatalf("advance time: %v", err)
	}
	if result.Time != 12 || result.Day != 3 {
		t.Errorf("clock = hour %d day %d, want hour 12 day 3", result.Time, result.Day)
	}
	if result.TimeOfDay != "afternoon" {
		t.Errorf("time of day = %q, want afternoon", result.TimeOfDay)
	}

	// Setting never changes the day.
	result, err = e.ManageTime(ctx, "sess-1", TimeActionSet, 27)
	if err != nil {
		t.Fatalf("set time: %v", err)
	}
	if result.Time != 3 || result.Day != 3 {
		t.Errorf("clock = hour %d day %d, want hour 3 day 3", result.Time, result.Day)
	}
	if result.TimeOfDay != "night" {
		t.Errorf("time of day = %q, want night", result.TimeOfDay)
	}

	result, err = e.ManageTime(ctx, "sess-1", TimeActionGet, 0)
	if err != nil {
		t.Fatalf("get time: %v", err)
	}
	if result.Time != 3 || result.Day != 3 {
		t.Errorf("get = hour %d day %d, want hour 3 day 3", result.Time, result.Day)
	}
}

func TestManageStatusEffectsLifecycle(t *testing.T) {
	e, store := newTestEngine()
	seedSession(t, e, store)
	ctx := context.Background()

	turns := 3
	added, err := e.ManageStatusEffects(ctx, "sess-1", EffectRequest{
		Action:   EffectActionAdd,
		Name:     "poisoned",
		Duration: &turns,
	})
	if err != nil {
		t.Fatalf("add effect: %v", err)
	}

	// Expire it explicitly; it stays stored but drops out of the listing.
	expired := 0
	if _, err := e.ManageStatusEffects(ctx, "sess-1", EffectRequest{
		Action:   EffectActionUpdate,
		EffectID: added.Effect.ID,
		Duration: &expired,
	}); err != nil {
		t.Fatalf("expire effect: %v", err)
	}

	if _, err := e.ManageStatusEffects(ctx, "sess-1", EffectRequest{
		Action: EffectActionAdd,
		Name:   "blessed",
	}); err != nil {
		t.Fatalf("add permanent effect: %v", err)
	}

	listed, err := e.ManageStatusEffects(ctx, "sess-1", EffectRequest{Action: EffectActionList})
	if err != nil {
		t.Fatalf("list effects: %v", err)
	}
	if len(listed.Effects) != 1 || listed.Effects[0].Name != "blessed" {
		t.Errorf("active effects = %+v, want only blessed", listed.Effects)
	}
	if len(store.effects) != 2 {
		t.Errorf("stored effects = %d, want both kept", len(store.effects))
	}

	if _, err := e.ManageStatusEffects(ctx, "sess-1", EffectRequest{
		Action:   EffectActionRemove,
		EffectID: added.Effect.ID,
	}); err != nil {
		t.Fatalf("remove effect: %v", err)
	}
	_, err = e.ManageStatusEffects(ctx, "sess-1", EffectRequest{
		Action:   EffectActionRemove,
		EffectID: added.Effect.ID,
	})
	wantCode(t, err, apperrors.CodeStatusEffectNotFound)
}
