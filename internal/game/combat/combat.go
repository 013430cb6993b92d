// Package combat resolves fights between two co-located robots.
package combat

// Outcome is the 4-tier attack result.
type Outcome int

const (
	CritSuccess Outcome = iota
	Success
	Failure
	CritFailure
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case CritSuccess:
		return "critical success"
	case Success:
		return "success"
	case Failure:
		return "failure"
	case CritFailure:
		return "critical failure"
	default:
		return "unknown"
	}
}

// BaseAC is the armor class of a robot with zero defense.
const BaseAC = 10

// Combatant is one side of a fight.
type Combatant struct {
	ID      int
	Health  int
	Attack  int
	Defense int
}

// AC returns BaseAC plus the combatant's defense.
func (c *Combatant) AC() int {
	return BaseAC + c.Defense
}

// IsDead reports whether the combatant has no health left.
func (c *Combatant) IsDead() bool {
	return c.Health <= 0
}

// ApplyDamage reduces Health by amount, flooring at zero.
// Precondition: amount must be >= 0.
// Postcondition: Health >= 0.
func (c *Combatant) ApplyDamage(amount int) {
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
}

// OutcomeFor determines the 4-tier attack outcome for a given roll vs AC.
// Postcondition: Returns one of CritSuccess, Success, Failure, CritFailure.
func OutcomeFor(roll, ac int) Outcome {
	switch {
	case roll >= ac+10:
		return CritSuccess
	case roll >= ac:
		return Success
	case roll >= ac-10:
		return Failure
	default:
		return CritFailure
	}
}
