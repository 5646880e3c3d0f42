// Package errors provides structured, machine-readable error handling for
// engine operations. Every request-level failure carries a Code the caller
// can branch on without string matching.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unexpected internal fault.
	CodeUnknown Code = "UNKNOWN"

	// Missing-entity errors
	CodeSessionNotFound      Code = "SESSION_NOT_FOUND"
	CodeAdventureNotFound    Code = "ADVENTURE_NOT_FOUND"
	CodeCharacterNotFound    Code = "CHARACTER_NOT_FOUND"
	CodeItemNotFound         Code = "ITEM_NOT_FOUND"
	CodeLocationNotFound     Code = "LOCATION_NOT_FOUND"
	CodeFactionNotFound      Code = "FACTION_NOT_FOUND"
	CodeQuestNotFound        Code = "QUEST_NOT_FOUND"
	CodeStatusEffectNotFound Code = "STATUS_EFFECT_NOT_FOUND"

	// Validation errors
	CodeUnknownStat     Code = "UNKNOWN_STAT"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Precondition errors
	CodeFeatureDisabled   Code = "FEATURE_DISABLED"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
)

// NotFound reports whether the code identifies a missing entity.
func (c Code) NotFound() bool {
	switch c {
	case CodeSessionNotFound,
		CodeAdventureNotFound,
		CodeCharacterNotFound,
		CodeItemNotFound,
		CodeLocationNotFound,
		CodeFactionNotFound,
		CodeQuestNotFound,
		CodeStatusEffectNotFound:
		return true
	default:
		return false
	}
}
