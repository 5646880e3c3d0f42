package domain

import "sort"

// AddMemory appends a memory and applies decay. Decay is a one-at-a-time
// eviction: after every insert, if the character holds more than MemoryCap
// memories, the single lowest-ranked entry (lowest importance, ties broken
// by oldest timestamp, then by insertion order) is dropped. The cap is soft:
// a burst of inserts triggers one eviction pass per insert, so the surviving
// set depends on insertion order, not just the final importance
// distribution.
func (c *Character) AddMemory(memory Memory) {
	c.Memories = append(c.Memories, memory)
	c.decayMemories()
}

func (c *Character) decayMemories() {
	if len(c.Memories) <= MemoryCap {
		return
	}

	lowest := 0
	for i := 1; i < len(c.Memories); i++ {
		if memoryRanksBelow(c.Memories[i], c.Memories[lowest]) {
			lowest = i
		}
	}
	c.Memories = append(c.Memories[:lowest], c.Memories[lowest+1:]...)
}

// memoryRanksBelow reports whether a ranks strictly below b for eviction:
// lower importance first, then older timestamp. Insertion order breaks full
// ties because the scan keeps the earliest candidate.
func memoryRanksBelow(a, b Memory) bool {
	if a.Importance != b.Importance {
		return a.Importance < b.Importance
	}
	return a.Timestamp.Before(b.Timestamp)
}

// TopMemories returns up to limit memories ordered descending by
// (importance, timestamp): the most important first, ties broken by
// recency, with later insertions winning exact-timestamp ties. The
// character's stored order is left untouched.
func (c *Character) TopMemories(limit int) []Memory {
	if limit <= 0 {
		return nil
	}

	indexes := make([]int, len(c.Memories))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(x, y int) bool {
		a, b := c.Memories[indexes[x]], c.Memories[indexes[y]]
		if a.Importance != b.Importance {
			return a.Importance > b.Importance
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return indexes[x] > indexes[y]
	})

	if limit > len(indexes) {
		limit = len(indexes)
	}
	result := make([]Memory, 0, limit)
	for _, idx := range indexes[:limit] {
		result = append(result, c.Memories[idx])
	}
	return result
}

// Witnesses filters characters to those whose location exactly equals the
// event location.
func Witnesses(characters []Character, location string) []Character {
	var present []Character
	for _, c := range characters {
		if c.Location == location {
			present = append(present, c)
		}
	}
	return present
}
