package ai

import "github.com/siomorehead/Fighter-Robot/internal/game/grid"

// Leg is one straight run of a planned move.
type Leg struct {
	Heading  grid.Heading
	Distance int
}

// MovePlan is a destination plus the straight legs that reach it, in order.
type MovePlan struct {
	From grid.Coord
	Dest grid.Coord
	Legs []Leg
}

// Length returns the Manhattan length of the plan.
func (p MovePlan) Length() int {
	return grid.Manhattan(p.From, p.Dest)
}

// Hold returns a plan that stays on from.
func Hold(from grid.Coord) MovePlan {
	return MovePlan{From: from, Dest: from}
}

// Budget returns how many cells may be travelled this turn. Energy-limited
// budgets are additionally capped at energy/movesEnergyCost.
//
// Postcondition: 0 <= result <= max(allowance, 0).
func Budget(allowance, energy, movesEnergyCost int, energyLimited bool) int {
	b := max(allowance, 0)
	if energyLimited && movesEnergyCost > 0 {
		b = min(b, max(energy, 0)/movesEnergyCost)
	}
	return b
}

// PlanApproach walks greedily toward target: the column gap first, then
// whatever budget remains on the row gap. Obstacles are not considered.
//
// Postcondition: Manhattan(from, Dest) <= max(budget, 0); bounds.Contains(Dest)
// whenever bounds.Contains(from).
func PlanApproach(from, target grid.Coord, budget int, bounds grid.Bounds) MovePlan {
	if budget <= 0 {
		return Hold(from)
	}
	target = bounds.Clamp(target)
	plan := MovePlan{From: from, Dest: from}

	colStep := min(budget, abs(target.Col-from.Col))
	if colStep > 0 {
		h := grid.East
		if target.Col < from.Col {
			h = grid.West
		}
		plan.Dest.Col += sign(target.Col-from.Col) * colStep
		plan.Legs = append(plan.Legs, Leg{Heading: h, Distance: colStep})
		budget -= colStep
	}

	rowStep := min(budget, abs(target.Row-from.Row))
	if rowStep > 0 {
		h := grid.South
		if target.Row < from.Row {
			h = grid.North
		}
		plan.Dest.Row += sign(target.Row-from.Row) * rowStep
		plan.Legs = append(plan.Legs, Leg{Heading: h, Distance: rowStep})
	}
	return plan
}

// Finalize returns the target id to emit: target.ID only if the plan ends
// exactly on the target's cell, NoTarget otherwise.
func Finalize(plan MovePlan, target Snapshot) int {
	if plan.Dest != target.Pos {
		return NoTarget
	}
	return target.ID
}

// Turns lists the facing change needed before each leg, starting from start.
//
// Postcondition: len(result) == len(legs); each entry is a single minimal turn.
func Turns(start grid.Heading, legs []Leg) []grid.Turn {
	turns := make([]grid.Turn, 0, len(legs))
	h := start
	for _, leg := range legs {
		t := grid.TurnTo(h, leg.Heading)
		turns = append(turns, t)
		h = h.Rotate(t)
	}
	return turns
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
