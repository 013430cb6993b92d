// Package ai implements the per-turn decision engine for arena fighters.
//
// Each turn an Agent picks an operating Mode, refreshes its beliefs about
// rival capabilities, ranks rivals under mode-specific weights, and plans a
// budget-limited move toward the chosen rival (or away from everyone when
// retreating). Combat is only requested when the planned destination lands
// exactly on the target's cell.
package ai

import (
	"errors"
	"fmt"

	"github.com/siomorehead/Fighter-Robot/internal/game/grid"
)

// ErrContractViolation is wrapped by every error caused by malformed host input.
var ErrContractViolation = errors.New("host contract violation")

// NoTarget is the TargetID of a decision that requests no combat.
const NoTarget = -1

// Mode is the agent's behavioral posture for one turn.
type Mode int

const (
	Pursue Mode = iota
	Retreat
	Conserve
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case Pursue:
		return "pursue"
	case Retreat:
		return "retreat"
	case Conserve:
		return "conserve"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Snapshot is one turn's observed truth about a single rival.
type Snapshot struct {
	ID     int
	Pos    grid.Coord
	Health int
}

// TurnDecision is the engine's only output each turn.
type TurnDecision struct {
	Dest        grid.Coord
	TargetID    int
	AttackPower int
	// Legs is the path to Dest, one straight run per leg.
	Legs []Leg
	// Turns holds the facing change issued before each leg, starting from the
	// robot's current heading.
	Turns []grid.Turn
}

// HasTarget reports whether the decision requests combat.
func (d TurnDecision) HasTarget() bool {
	return d.TargetID != NoTarget
}

// BattleResult is the host's report of one resolved engagement.
type BattleResult struct {
	HealthLost      int
	RivalID         int
	RivalHealthLost int
	RoundsFought    int
}

// Self exposes the read-only facts the host keeps about the agent's own robot.
type Self interface {
	ID() int
	Position() grid.Coord
	Heading() grid.Heading
	MoveAllowance() int
	AttackPower() int
}

// Rules are the arena constants an agent plans against.
type Rules struct {
	Bounds          grid.Bounds
	MovesEnergyCost int
}

// AgentState is the agent's private mutable state.
//
// Invariant: Health never increases.
type AgentState struct {
	Health     int
	Energy     int
	Mode       Mode
	ModeStreak int
	// Engaging is true when the previous decision requested combat, and
	// Target names the rival it was requested against.
	Engaging bool
	Target   int
}
