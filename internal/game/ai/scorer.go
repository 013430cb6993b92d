package ai

import "github.com/siomorehead/Fighter-Robot/internal/game/grid"

// DistanceHorizon is the Manhattan distance at which proximity stops mattering.
const DistanceHorizon = 30.0

// Weights are the relative importance of each scoring term. They need not sum
// to 1. A positive Mobility weight rewards agile rivals; flip the sign to
// penalize them instead.
type Weights struct {
	Health    float64 `yaml:"health"`
	Distance  float64 `yaml:"distance"`
	Offense   float64 `yaml:"offense"`
	Defense   float64 `yaml:"defense"`
	Mobility  float64 `yaml:"mobility"`
	Advantage float64 `yaml:"advantage"`
}

// Eligible reports whether r may be scored at all: not the agent itself and
// still alive.
func Eligible(selfID int, r Snapshot) bool {
	return r.ID != selfID && r.Health > 0
}

// Score rates how desirable r is as a target from self. Higher is better.
//
//	normHealth   = 100 - health
//	normDistance = 100 - min(100, dist/30*100)
//	statTerm     = 100 * (wOff*(6-off)/6 + wDef*(6-def)/6 + wMob*mob/6)
//
// Postcondition: deterministic for fixed inputs.
func Score(self grid.Coord, r Snapshot, est Estimate, w Weights) float64 {
	normHealth := 100 - float64(r.Health)
	dist := float64(grid.Manhattan(self, r.Pos))
	normDistance := 100 - min(100, dist/DistanceHorizon*100)
	statTerm := 100 * (w.Offense*float64(StatMax-est.Offense)/StatMax +
		w.Defense*float64(StatMax-est.Defense)/StatMax +
		w.Mobility*float64(est.Mobility)/StatMax)

	score := w.Health*normHealth + w.Distance*normDistance + statTerm
	if w.Advantage != 0 {
		score += w.Advantage * est.Advantage()
	}
	return score
}
