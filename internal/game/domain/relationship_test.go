package domain

import "testing"

func TestRelationshipLabelBands(t *testing.T) {
	tcs := []struct {
		value int
		want  string
	}{
		{81, "Ally"},
		{60, "Friendly"},
		{50, "Neutral"},
		{0, "Neutral"},
		{-50, "Neutral"},
		{-60, "Hostile"},
		{-81, "Nemesis"},
		{100, "Ally"},
		{-100, "Nemesis"},
	}
	for _, tc := range tcs {
		if got := RelationshipLabel(tc.value); got != tc.want {
			t.Fatalf("RelationshipLabel(%d) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestAdjustRelationshipClamps(t *testing.T) {
	state := PlayerState{}

	result := state.AdjustRelationship("Mira", 90)
	if result.New != 90 {
		t.Fatalf("expected 90, got %d", result.New)
	}

	result = state.AdjustRelationship("Mira", 50)
	if result.New != 100 {
		t.Fatalf("expected clamp at 100, got %d", result.New)
	}
	if result.Applied != 10 {
		t.Fatalf("expected applied delta 10, got %d", result.Applied)
	}
}

func TestFactionStandingTiers(t *testing.T) {
	tcs := []struct {
		reputation int
		want       string
	}{
		{100, "Revered"}, {81, "Revered"}, {80, "Honored"}, {51, "Honored"},
		{50, "Friendly"}, {21, "Friendly"}, {20, "Neutral"}, {0, "Neutral"},
		{-20, "Neutral"}, {-21, "Unfriendly"}, {-50, "Unfriendly"},
		{-51, "Hostile"}, {-80, "Hostile"}, {-81, "Hated"}, {-100, "Hated"},
	}
	for _, tc := range tcs {
		if got := FactionStanding(tc.reputation); got != tc.want {
			t.Fatalf("FactionStanding(%d) = %q, want %q", tc.reputation, got, tc.want)
		}
	}
}
