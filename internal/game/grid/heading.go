package grid

import "fmt"

// Heading is one of the four cardinal directions, ordered clockwise.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// String returns the lowercase direction name.
func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("heading(%d)", int(h))
	}
}

// Delta returns the single-step displacement for h.
func (h Heading) Delta() Coord {
	switch h {
	case North:
		return Coord{Row: -1}
	case East:
		return Coord{Col: 1}
	case South:
		return Coord{Row: 1}
	default:
		return Coord{Col: -1}
	}
}

// Rotate applies turn t to h.
func (h Heading) Rotate(t Turn) Heading {
	return Heading((int(h) + int(t)) % 4)
}

// Turn is a relative facing change. Its value is the number of clockwise
// quarter turns it represents.
type Turn int

const (
	NoTurn     Turn = 0
	TurnRight  Turn = 1
	TurnAround Turn = 2
	TurnLeft   Turn = 3
)

// String returns a short name for the turn.
func (t Turn) String() string {
	switch t {
	case NoTurn:
		return "none"
	case TurnRight:
		return "right"
	case TurnAround:
		return "around"
	case TurnLeft:
		return "left"
	default:
		return fmt.Sprintf("turn(%d)", int(t))
	}
}

// TurnTo returns the single turn that takes from to want.
//
// Postcondition: from.Rotate(TurnTo(from, want)) == want.
func TurnTo(from, want Heading) Turn {
	return Turn(((int(want)-int(from))%4 + 4) % 4)
}
