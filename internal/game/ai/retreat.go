package ai

import (
	"fmt"

	"github.com/siomorehead/Fighter-Robot/internal/game/dice"
	"github.com/siomorehead/Fighter-Robot/internal/game/grid"
)

// RetreatStyle selects what a Retreat-mode turn does.
type RetreatStyle string

const (
	// RetreatRandom moves a uniformly drawn distance in [0, budget].
	RetreatRandom RetreatStyle = "random"
	// RetreatFixed always moves the full budget.
	RetreatFixed RetreatStyle = "fixed"
	// RetreatHold stays put.
	RetreatHold RetreatStyle = "hold"
	// RetreatNone keeps fighting, ranking rivals with the retreat weights.
	RetreatNone RetreatStyle = "none"
)

// Validate rejects unknown styles.
func (s RetreatStyle) Validate() error {
	switch s {
	case RetreatRandom, RetreatFixed, RetreatHold, RetreatNone:
		return nil
	}
	return fmt.Errorf("unknown retreat style %q", s)
}

// RetreatPlanner picks an evasive move in a random cardinal direction.
type RetreatPlanner struct {
	src   dice.Source
	style RetreatStyle
}

// NewRetreatPlanner creates a planner.
//
// Precondition: src must not be nil.
func NewRetreatPlanner(src dice.Source, style RetreatStyle) *RetreatPlanner {
	if src == nil {
		panic("ai.NewRetreatPlanner: src must not be nil")
	}
	return &RetreatPlanner{src: src, style: style}
}

// Plan draws a direction and distance and clamps the result to bounds.
//
// Postcondition: bounds.Contains(Dest) whenever bounds.Contains(from);
// Manhattan(from, Dest) <= max(budget, 0).
func (p *RetreatPlanner) Plan(from grid.Coord, budget int, bounds grid.Bounds) MovePlan {
	if budget <= 0 || p.style == RetreatHold || p.style == RetreatNone {
		return Hold(from)
	}

	budget = min(budget, max(bounds.Width, bounds.Height))
	distance := budget
	if p.style == RetreatRandom {
		distance = p.src.Intn(budget + 1)
	}
	h := grid.Heading(p.src.Intn(4))

	d := h.Delta()
	dest := bounds.Clamp(grid.Coord{Col: from.Col + d.Col*distance, Row: from.Row + d.Row*distance})
	plan := MovePlan{From: from, Dest: dest}
	if n := grid.Manhattan(from, dest); n > 0 {
		plan.Legs = []Leg{{Heading: h, Distance: n}}
	}
	return plan
}
