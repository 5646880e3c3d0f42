// Package dice implements d20 check resolution and damage rolls for the
// adventure engine.
package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"time"
)

// ErrAdvantageConflict indicates advantage and disadvantage were requested
// for the same roll.
var ErrAdvantageConflict = errors.New("cannot have both advantage and disadvantage")

// ErrInvalidDamageSpec indicates a damage dice expression could not be parsed.
var ErrInvalidDamageSpec = errors.New("damage dice must match NdS[+B] with positive dice and sides")

const (
	d20Sides = 20
	// DefaultDC is the difficulty class used when a caller does not name one.
	DefaultDC = 10
)

// CheckResult captures a resolved d20 check.
//
// Message is the narrator-facing trace. It states the raw roll, the signed
// modifier, the DC, the total, and the advantage mode if any, and is stable
// for a given seed so tests can assert it byte for byte.
type CheckResult struct {
	Roll         int    `json:"roll"`
	Modifier     int    `json:"modifier"`
	Total        int    `json:"total"`
	DC           int    `json:"dc"`
	Success      bool   `json:"success"`
	Advantage    bool   `json:"advantage,omitempty"`
	Disadvantage bool   `json:"disadvantage,omitempty"`
	Message      string `json:"message"`
}

// Roller performs random rolls from a single RNG stream.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a deterministic roller from a seed.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededRoller creates a roller seeded from the wall clock, for
// production use where reproducibility is not needed.
func NewTimeSeededRoller() *Roller {
	return NewRoller(time.Now().UnixNano())
}

// RollCheck performs a d20 check against a difficulty class. Advantage
// draws two dice and keeps the higher; disadvantage keeps the lower.
// Requesting both fails with ErrAdvantageConflict.
func (r *Roller) RollCheck(modifier, dc int, advantage, disadvantage bool) (CheckResult, error) {
	if advantage && disadvantage {
		return CheckResult{}, ErrAdvantageConflict
	}

	var roll int
	switch {
	case advantage:
		first, second := r.die(d20Sides), r.die(d20Sides)
		roll = max(first, second)
	case disadvantage:
		first, second := r.die(d20Sides), r.die(d20Sides)
		roll = min(first, second)
	default:
		roll = r.die(d20Sides)
	}

	total := roll + modifier
	success := total >= dc

	message := fmt.Sprintf("d20%+d vs DC%d: rolled %d, total %d", modifier, dc, roll, total)
	if advantage {
		message += " (advantage)"
	} else if disadvantage {
		message += " (disadvantage)"
	}

	return CheckResult{
		Roll:         roll,
		Modifier:     modifier,
		Total:        total,
		DC:           dc,
		Success:      success,
		Advantage:    advantage,
		Disadvantage: disadvantage,
		Message:      message,
	}, nil
}

// StatCheck derives the modifier from a stat value using the standard
// ability curve, floor((stat-10)/2), and delegates to RollCheck.
func (r *Roller) StatCheck(statValue, dc int, advantage, disadvantage bool) (CheckResult, error) {
	return r.RollCheck(statModifier(statValue), dc, advantage, disadvantage)
}

// statModifier floors toward negative infinity: stat 8 gives -1, stat 15
// gives +2.
func statModifier(statValue int) int {
	diff := statValue - 10
	if diff >= 0 {
		return diff / 2
	}
	return -((-diff + 1) / 2)
}

// DamageSpec is a parsed NdS[+B] damage expression.
type DamageSpec struct {
	Count int
	Sides int
	Bonus int
}

var damagePattern = regexp.MustCompile(`^(\d+)d(\d+)(?:\+(\d+))?$`)

// ParseDamage parses an expression such as "1d6" or "2d8+3".
func ParseDamage(expr string) (DamageSpec, error) {
	groups := damagePattern.FindStringSubmatch(expr)
	if groups == nil {
		return DamageSpec{}, fmt.Errorf("%w: %q", ErrInvalidDamageSpec, expr)
	}

	count, err := strconv.Atoi(groups[1])
	if err != nil {
		return DamageSpec{}, fmt.Errorf("%w: %q", ErrInvalidDamageSpec, expr)
	}
	sides, err := strconv.Atoi(groups[2])
	if err != nil {
		return DamageSpec{}, fmt.Errorf("%w: %q", ErrInvalidDamageSpec, expr)
	}
	bonus := 0
	if groups[3] != "" {
		bonus, err = strconv.Atoi(groups[3])
		if err != nil {
			return DamageSpec{}, fmt.Errorf("%w: %q", ErrInvalidDamageSpec, expr)
		}
	}
	if count <= 0 || sides <= 0 {
		return DamageSpec{}, fmt.Errorf("%w: %q", ErrInvalidDamageSpec, expr)
	}

	return DamageSpec{Count: count, Sides: sides, Bonus: bonus}, nil
}

// RollDamage sums Count uniform draws in [1,Sides] plus the flat bonus.
func (r *Roller) RollDamage(spec DamageSpec) int {
	total := spec.Bonus
	for i := 0; i < spec.Count; i++ {
		total += r.die(spec.Sides)
	}
	return total
}

// RollAbilityScore rolls 4d6 and drops the lowest die, the standard
// tabletop method for generating a starting stat.
func (r *Roller) RollAbilityScore() int {
	lowest := 0
	total := 0
	for i := 0; i < 4; i++ {
		value := r.die(6)
		total += value
		if i == 0 || value < lowest {
			lowest = value
		}
	}
	return total - lowest
}

// die rolls one die with the provided number of sides.
func (r *Roller) die(sides int) int {
	return r.rng.Intn(sides) + 1
}
