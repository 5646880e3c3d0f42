// Package script runs narrator-authored Lua snippets against a session's
// player state. The state is exposed as a global table, mutated in place by
// the script, and read back after a successful run; dice helpers are
// registered so scripts can roll without reimplementing the engine's rules.
package script

import (
	"fmt"
	"math"
	"reflect"

	lua "github.com/Shopify/go-lua"

	"github.com/hollowvale/adventure-engine/internal/game/dice"
	"github.com/hollowvale/adventure-engine/internal/game/domain"
)

// Result reports a script run: the script's return value, converted to
// plain Go values, and whether it mutated the state table.
type Result struct {
	Value   any  `json:"value,omitempty"`
	Changed bool `json:"changed"`
}

// Run executes Lua source with the player state bound to the global `state`
// table and dice helpers bound to `dice`. On success the state table is read
// back into the provided PlayerState. A script error leaves the state
// untouched.
func Run(state *domain.PlayerState, roller *dice.Roller, source string) (Result, error) {
	if state == nil {
		return Result{}, fmt.Errorf("player state is required")
	}

	vm := lua.NewState()
	lua.OpenLibraries(vm)

	pushPlayerState(vm, *state)
	vm.SetGlobal("state")
	registerDiceHelpers(vm, roller)

	if err := lua.DoString(vm, source); err != nil {
		return Result{}, fmt.Errorf("run script: %w", err)
	}

	result := Result{}
	if vm.Top() > 0 {
		result.Value = luaToGo(vm, -1)
		vm.SetTop(0)
	}

	vm.Global("state")
	updated, err := readPlayerState(vm, -1, *state)
	vm.Pop(1)
	if err != nil {
		return Result{}, err
	}
	result.Changed = !statesEqual(*state, updated)
	*state = updated
	return result, nil
}

// pushPlayerState pushes the mutable state fields as a Lua table.
func pushPlayerState(vm *lua.State, state domain.PlayerState) {
	vm.NewTable()
	vm.PushInteger(state.HP)
	vm.SetField(-2, "hp")
	vm.PushInteger(state.MaxHP)
	vm.SetField(-2, "max_hp")
	vm.PushInteger(state.Score)
	vm.SetField(-2, "score")
	vm.PushString(state.Location)
	vm.SetField(-2, "location")
	vm.PushInteger(state.Currency)
	vm.SetField(-2, "currency")
	vm.PushInteger(state.GameTime)
	vm.SetField(-2, "game_time")
	vm.PushInteger(state.GameDay)
	vm.SetField(-2, "game_day")

	vm.NewTable()
	for name, value := range state.Stats {
		vm.PushInteger(value)
		vm.SetField(-2, name)
	}
	vm.SetField(-2, "stats")

	pushGoValue(vm, mapToAny(state.CustomData))
	vm.SetField(-2, "custom")
}

// readPlayerState reads the state table back, keeping HP within its bounds
// and the clock within a day. Fields a script removed fall back to their
// previous values.
func readPlayerState(vm *lua.State, index int, previous domain.PlayerState) (domain.PlayerState, error) {
	if vm.TypeOf(index) != lua.TypeTable {
		return domain.PlayerState{}, fmt.Errorf("script replaced the state table with a non-table value")
	}
	table := tableToMap(vm, index)

	next := previous
	next.HP = intField(table, "hp", previous.HP)
	next.MaxHP = intField(table, "max_hp", previous.MaxHP)
	next.Score = intField(table, "score", previous.Score)
	next.Currency = intField(table, "currency", previous.Currency)
	next.GameDay = intField(table, "game_day", previous.GameDay)
	if location, ok := table["location"].(string); ok {
		next.Location = location
	}

	if next.MaxHP < 1 {
		next.MaxHP = previous.MaxHP
	}
	hp := domain.ClampAdd(0, next.HP, 0, next.MaxHP)
	next.HP = hp.New
	next.GameTime = intField(table, "game_time", previous.GameTime) % 24
	if next.GameTime < 0 {
		next.GameTime += 24
	}

	if stats, ok := table["stats"].(map[string]any); ok {
		rebuilt := make(map[string]int, len(stats))
		for name, value := range stats {
			switch v := value.(type) {
			case int:
				rebuilt[name] = v
			case float64:
				rebuilt[name] = int(v)
			}
		}
		next.Stats = rebuilt
	}
	if custom, ok := table["custom"].(map[string]any); ok {
		next.CustomData = custom
	}
	return next, nil
}

// registerDiceHelpers binds a `dice` global with d(sides) and
// check(modifier, dc) functions backed by the engine's roller.
func registerDiceHelpers(vm *lua.State, roller *dice.Roller) {
	helpers := []lua.RegistryFunction{
		{Name: "d", Function: func(vm *lua.State) int {
			sides := lua.CheckInteger(vm, 1)
			if sides < 1 {
				lua.ArgumentError(vm, 1, "sides must be positive")
				return 0
			}
			spec := dice.DamageSpec{Count: 1, Sides: sides}
			vm.PushInteger(roller.RollDamage(spec))
			return 1
		}},
		{Name: "check", Function: func(vm *lua.State) int {
			modifier := lua.CheckInteger(vm, 1)
			dc := lua.OptInteger(vm, 2, dice.DefaultDC)
			check, err := roller.RollCheck(modifier, dc, false, false)
			if err != nil {
				lua.Errorf(vm, "%s", err.Error())
				return 0
			}
			vm.NewTable()
			vm.PushInteger(check.Roll)
			vm.SetField(-2, "roll")
			vm.PushInteger(check.Total)
			vm.SetField(-2, "total")
			vm.PushBoolean(check.Success)
			vm.SetField(-2, "success")
			vm.PushString(check.Message)
			vm.SetField(-2, "message")
			return 1
		}},
	}
	vm.NewTable()
	lua.SetFunctions(vm, helpers, 0)
	vm.SetGlobal("dice")
}

func intField(table map[string]any, key string, fallback int) int {
	switch v := table[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

func mapToAny(value map[string]any) any {
	if value == nil {
		return map[string]any{}
	}
	return value
}

// pushGoValue pushes a JSON-like Go value onto the Lua stack.
func pushGoValue(vm *lua.State, value any) {
	switch v := value.(type) {
	case nil:
		vm.PushNil()
	case bool:
		vm.PushBoolean(v)
	case int:
		vm.PushInteger(v)
	case int64:
		vm.PushInteger(int(v))
	case float64:
		vm.PushNumber(v)
	case string:
		vm.PushString(v)
	case []any:
		vm.NewTable()
		for i, entry := range v {
			pushGoValue(vm, entry)
			vm.RawSetInt(-2, i+1)
		}
	case map[string]any:
		vm.NewTable()
		for key, entry := range v {
			pushGoValue(vm, entry)
			vm.SetField(-2, key)
		}
	default:
		vm.PushString(fmt.Sprintf("%v", v))
	}
}

func tableToMap(vm *lua.State, index int) map[string]any {
	output := map[string]any{}
	if vm.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = vm.AbsIndex(index)
	vm.PushNil()
	for vm.Next(index) {
		if vm.TypeOf(-2) == lua.TypeString {
			key, _ := vm.ToString(-2)
			output[key] = luaToGo(vm, -1)
		}
		vm.Pop(1)
	}
	return output
}

func luaToGo(vm *lua.State, index int) any {
	switch vm.TypeOf(index) {
	case lua.TypeString:
		value, _ := vm.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := vm.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return vm.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(vm, index)
	default:
		return nil
	}
}

// tableToGo converts a table to a slice when its keys form the contiguous
// range 1..n, and to a string-keyed map otherwise.
func tableToGo(vm *lua.State, index int) any {
	index = vm.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	vm.PushNil()
	for vm.Next(index) {
		if isArray {
			if vm.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := vm.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		vm.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			vm.RawGetInt(index, i)
			result = append(result, luaToGo(vm, -1))
			vm.Pop(1)
		}
		return result
	}

	return tableToMap(vm, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}

// statesEqual compares the script-visible fields of two states.
func statesEqual(a, b domain.PlayerState) bool {
	if a.HP != b.HP || a.MaxHP != b.MaxHP || a.Score != b.Score ||
		a.Location != b.Location || a.Currency != b.Currency ||
		a.GameTime != b.GameTime || a.GameDay != b.GameDay {
		return false
	}
	if len(a.Stats) != len(b.Stats) {
		return false
	}
	for name, value := range a.Stats {
		if b.Stats[name] != value {
			return false
		}
	}
	return customEqual(a.CustomData, b.CustomData)
}

// customEqual treats nil and empty custom data as the same thing, since the
// Lua round-trip always yields a table.
func customEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
