package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestAddMemoryDecaysOldestLowImportance(t *testing.T) {
	char := Character{ID: "c1", Name: "OldGuy"}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 55; i++ {
		char.AddMemory(Memory{
			ID:          fmt.Sprintf("m%d", i),
			Description: fmt.Sprintf("Event %d", i),
			Timestamp:   base.Add(time.Duration(i) * time.Second),
			Type:        MemoryObservation,
			Importance:  1,
		})
	}

	if len(char.Memories) != MemoryCap {
		t.Fatalf("expected %d memories, got %d", MemoryCap, len(char.Memories))
	}

	held := make(map[string]bool)
	for _, m := range char.Memories {
		held[m.Description] = true
	}
	for i := 0; i < 5; i++ {
		if held[fmt.Sprintf("Event %d", i)] {
			t.Fatalf("Event %d should have decayed", i)
		}
	}
	if !held["Event 5"] || !held["Event 54"] {
		t.Fatal("expected Event 5 and Event 54 to survive")
	}
}

func TestAddMemoryDecayPrefersLowImportance(t *testing.T) {
	char := Character{}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Fill to the cap with important memories, then one trivial memory.
	for i := 0; i < MemoryCap; i++ {
		char.AddMemory(Memory{
			Description: fmt.Sprintf("important %d", i),
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Importance:  5,
		})
	}
	char.AddMemory(Memory{Description: "trivia", Timestamp: base.Add(time.Hour), Importance: 1})

	// The trivial memory ranks below every important one and is evicted
	// despite being the newest.
	for _, m := range char.Memories {
		if m.Description == "trivia" {
			t.Fatal("expected the low-importance memory to decay first")
		}
	}
	if len(char.Memories) != MemoryCap {
		t.Fatalf("expected %d memories, got %d", MemoryCap, len(char.Memories))
	}
}

func TestAddMemoryDecayIdenticalTimestamps(t *testing.T) {
	char := Character{}
	stamp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Same importance and timestamp for every memory: insertion order must
	// decide, evicting the earliest insert per overflow.
	for i := 0; i < 55; i++ {
		char.AddMemory(Memory{Description: fmt.Sprintf("Event %d", i), Timestamp: stamp, Importance: 1})
	}

	if char.Memories[0].Description != "Event 5" {
		t.Fatalf("expected Event 5 first, got %q", char.Memories[0].Description)
	}
	if char.Memories[len(char.Memories)-1].Description != "Event 54" {
		t.Fatalf("expected Event 54 last, got %q", char.Memories[len(char.Memories)-1].Description)
	}
}

func TestTopMemoriesOrdersByImportanceThenRecency(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	char := Character{}
	char.AddMemory(Memory{Description: "A", Timestamp: base, Importance: 1})
	char.AddMemory(Memory{Description: "B", Timestamp: base.Add(time.Minute), Importance: 5})
	char.AddMemory(Memory{Description: "C", Timestamp: base.Add(2 * time.Minute), Importance: 3})

	top := char.TopMemories(10)
	if len(top) != 3 {
		t.Fatalf("expected 3 memories, got %d", len(top))
	}
	want := []string{"B", "C", "A"}
	for i, m := range top {
		if m.Description != want[i] {
			t.Fatalf("position %d = %q, want %q", i, m.Description, want[i])
		}
	}
}

func TestTopMemoriesTiesBreakByRecency(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	char := Character{}
	char.AddMemory(Memory{Description: "old", Timestamp: base, Importance: 4})
	char.AddMemory(Memory{Description: "new", Timestamp: base.Add(time.Hour), Importance: 4})

	top := char.TopMemories(2)
	if top[0].Description != "new" || top[1].Description != "old" {
		t.Fatalf("expected recency to break ties, got %q then %q", top[0].Description, top[1].Description)
	}
}

func TestTopMemoriesLimit(t *testing.T) {
	char := Character{}
	for i := 0; i < 20; i++ {
		char.AddMemory(Memory{Description: fmt.Sprintf("m%d", i), Importance: i})
	}
	if got := len(char.TopMemories(10)); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := len(char.TopMemories(0)); got != 0 {
		t.Fatalf("expected none for limit 0, got %d", got)
	}
}

func TestWitnessesExactLocationMatch(t *testing.T) {
	chars := []Character{
		{Name: "Witness", Location: "Town Square"},
		{Name: "Absent", Location: "Forest"},
		{Name: "Nearby", Location: "town square"},
	}

	present := Witnesses(chars, "Town Square")
	if len(present) != 1 {
		t.Fatalf("expected exactly one witness, got %d", len(present))
	}
	if present[0].Name != "Witness" {
		t.Fatalf("expected Witness, got %q", present[0].Name)
	}
}
