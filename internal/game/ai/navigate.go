package ai

import "github.com/siomorehead/Fighter-Robot/internal/game/grid"

// Mover is the host's movement primitive set for the agent's own robot.
type Mover interface {
	Position() grid.Coord
	Heading() grid.Heading
	Turn(t grid.Turn)
	Move(n int)
	FrontIsClear() bool
}

// Navigate drives m along legs: before each leg it issues the single minimal
// turn onto the leg's heading, then moves the leg's distance. Every leg after
// the first runs only if the way ahead is clear. The host is responsible for
// rejecting blocked steps.
//
// Postcondition: returns the turns issued, in order, omitting NoTurn.
func Navigate(m Mover, legs []Leg) []grid.Turn {
	var issued []grid.Turn
	for i, t := range Turns(m.Heading(), legs) {
		if t != grid.NoTurn {
			m.Turn(t)
			issued = append(issued, t)
		}
		if i > 0 && !m.FrontIsClear() {
			break
		}
		m.Move(legs[i].Distance)
	}
	return issued
}
