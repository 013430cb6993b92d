package ai_test

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/siomorehead/Fighter-Robot/internal/game/ai"
	"github.com/siomorehead/Fighter-Robot/internal/game/grid"
)

type fakeSelf struct {
	id      int
	pos     grid.Coord
	heading grid.Heading
	moves   int
	attack  int
}

func (f *fakeSelf) ID() int                { return f.id }
func (f *fakeSelf) Position() grid.Coord   { return f.pos }
func (f *fakeSelf) Heading() grid.Heading  { return f.heading }
func (f *fakeSelf) MoveAllowance() int     { return f.moves }
func (f *fakeSelf) AttackPower() int       { return f.attack }

// mockScriptCaller always returns the given value for any hook call.
type mockScriptCaller struct {
	returnVal lua.LValue
	calls     int
}

func (m *mockScriptCaller) CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.calls++
	if m.returnVal == nil {
		return lua.LNil, nil
	}
	return m.returnVal, nil
}

var testRules = ai.Rules{Bounds: grid.Bounds{Width: 20, Height: 12}, MovesEnergyCost: 5}

func stalker() *ai.Variant {
	return &ai.Variant{
		ID:                 "stalker",
		Body:               ai.BodyStats{Attack: 5, Defense: 4, Moves: 1},
		LowHealth:          15,
		LowEnergy:          25,
		Retreat:            ai.RetreatRandom,
		EnergyLimitedMoves: true,
		Weights: ai.ModeWeights{
			Pursue:   ai.Weights{Health: 0.2, Distance: 0.1, Offense: 0.2, Defense: 0.4, Mobility: 0.1},
			Conserve: ai.Weights{Health: 0.1, Distance: 0.3, Offense: 0.3, Defense: 0.2, Mobility: 0.1},
		},
	}
}

func healthDistance(wHealth, wDist float64) *ai.Variant {
	return &ai.Variant{
		ID:        "hd",
		Body:      ai.BodyStats{Attack: 4, Defense: 5, Moves: 1},
		LowHealth: 40,
		LowEnergy: 30,
		Retreat:   ai.RetreatFixed,
		Weights: ai.ModeWeights{
			Pursue:   ai.Weights{Health: wHealth, Distance: wDist},
			Conserve: ai.Weights{Health: 0.2, Distance: 0.8},
		},
	}
}
