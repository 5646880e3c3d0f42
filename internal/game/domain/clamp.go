package domain

import "strings"

// Default bounds for stats that have no matching StatDefinition.
const (
	DefaultStatMin = 0
	DefaultStatMax = 20
)

// Relationship and faction reputation share the same closed bound.
const (
	ReputationMin = -100
	ReputationMax = 100
)

const hoursPerDay = 24

// ClampResult reports a bounded mutation: the value before and after, and
// the delta that was actually applied, which may be smaller in magnitude
// than the requested delta when the bound cut it short.
type ClampResult struct {
	Old       int `json:"old_value"`
	New       int `json:"new_value"`
	Requested int `json:"requested_change"`
	Applied   int `json:"actual_change"`
}

// ClampAdd applies delta to value constrained to [lower, upper].
func ClampAdd(value, delta, lower, upper int) ClampResult {
	next := value + delta
	if next < lower {
		next = lower
	}
	if next > upper {
		next = upper
	}
	return ClampResult{Old: value, New: next, Requested: delta, Applied: next - value}
}

// StatBounds resolves the bounds for a stat name against an adventure's
// stat definitions, falling back to the default [0,20] when absent.
func StatBounds(adventure Adventure, statName string) (lower, upper int) {
	for _, def := range adventure.Stats {
		if strings.EqualFold(def.Name, statName) {
			return def.MinValue, def.MaxValue
		}
	}
	return DefaultStatMin, DefaultStatMax
}

// ResolveStatName finds the canonical stored key for a stat using a
// case-insensitive compare. Stat names arrive from an external narrator and
// are matched once here before any mutation.
func ResolveStatName(stats map[string]int, name string) (string, bool) {
	if _, ok := stats[name]; ok {
		return name, true
	}
	for key := range stats {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

// StatModifier derives the d20 check modifier from a stat value using the
// standard ability curve: floor((stat-10)/2), rounding toward negative
// infinity so stat 8 gives -1 and stat 15 gives +2.
func StatModifier(statValue int) int {
	diff := statValue - 10
	if diff >= 0 {
		return diff / 2
	}
	return -((-diff + 1) / 2)
}

// TimeAdvance reports an in-game clock move.
type TimeAdvance struct {
	OldTime int `json:"old_time"`
	NewTime int `json:"new_time"`
	OldDay  int `json:"old_day"`
	NewDay  int `json:"new_day"`
	Hours   int `json:"hours_advanced"`
}

// AdvanceTime adds hours to the clock, rolling the day forward while the
// hour overflows. Multi-day advances in one call are supported.
func (s *PlayerState) AdvanceTime(hours int) TimeAdvance {
	adv := TimeAdvance{OldTime: s.GameTime, OldDay: s.GameDay, Hours: hours}
	s.GameTime += hours
	for s.GameTime >= hoursPerDay {
		s.GameTime -= hoursPerDay
		s.GameDay++
	}
	adv.NewTime = s.GameTime
	adv.NewDay = s.GameDay
	return adv
}

// SetTime sets the clock directly to value mod 24. The day never changes.
func (s *PlayerState) SetTime(hour int) {
	hour %= hoursPerDay
	if hour < 0 {
		hour += hoursPerDay
	}
	s.GameTime = hour
}

// TimeOfDay labels an hour for the narrator.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 18:
		return "afternoon"
	case hour >= 18 && hour < 20:
		return "evening"
	default:
		return "night"
	}
}
