package arena

import (
	"github.com/siomorehead/Fighter-Robot/internal/game/ai"
	"github.com/siomorehead/Fighter-Robot/internal/game/combat"
	"github.com/siomorehead/Fighter-Robot/internal/game/grid"
)

// Robot is the arena's body for one agent. It implements ai.Self and ai.Mover.
type Robot struct {
	id      int
	variant *ai.Variant
	pos     grid.Coord
	heading grid.Heading
	health  int
	energy  int
	bounds  grid.Bounds
	agent   *ai.Agent
}

// ID implements ai.Self.
func (r *Robot) ID() int { return r.id }

// Position implements ai.Self.
func (r *Robot) Position() grid.Coord { return r.pos }

// Heading implements ai.Self.
func (r *Robot) Heading() grid.Heading { return r.heading }

// MoveAllowance implements ai.Self.
func (r *Robot) MoveAllowance() int { return r.variant.Body.Moves }

// AttackPower implements ai.Self.
func (r *Robot) AttackPower() int { return r.variant.Body.Attack }

// Turn implements ai.Mover.
func (r *Robot) Turn(t grid.Turn) { r.heading = r.heading.Rotate(t) }

// Move implements ai.Mover. The robot stops at the arena wall.
func (r *Robot) Move(n int) {
	for i := 0; i < n && r.FrontIsClear(); i++ {
		r.pos = r.ahead()
	}
}

// FrontIsClear implements ai.Mover.
func (r *Robot) FrontIsClear() bool {
	return r.bounds.Contains(r.ahead())
}

func (r *Robot) ahead() grid.Coord {
	d := r.heading.Delta()
	return grid.Coord{Col: r.pos.Col + d.Col, Row: r.pos.Row + d.Row}
}

// Variant returns the robot's personality id.
func (r *Robot) Variant() string { return r.variant.ID }

// Health returns the robot's remaining health, never negative.
func (r *Robot) Health() int { return max(r.health, 0) }

// Energy returns the robot's current energy.
func (r *Robot) Energy() int { return r.energy }

// Alive reports whether the robot can still act.
func (r *Robot) Alive() bool { return r.health > 0 }

// Label returns the agent's display label.
func (r *Robot) Label() string { return r.agent.Label() }

// Agent exposes the robot's decision engine.
func (r *Robot) Agent() *ai.Agent { return r.agent }

func (r *Robot) snapshot() ai.Snapshot {
	return ai.Snapshot{ID: r.id, Pos: r.pos, Health: r.Health()}
}

func (r *Robot) combatant() *combat.Combatant {
	return &combat.Combatant{
		ID:      r.id,
		Health:  r.Health(),
		Attack:  r.variant.Body.Attack,
		Defense: r.variant.Body.Defense,
	}
}
