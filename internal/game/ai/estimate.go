package ai

import (
	"fmt"

	"github.com/siomorehead/Fighter-Robot/internal/game/grid"
)

const (
	// StatMax is the largest value any single capability may take.
	StatMax = 6
	// StatBudget is the total every robot distributes across its three stats.
	StatBudget = 10
	// DefenseReliableAt is the offense+mobility sum from which defense can be
	// derived from the budget.
	DefenseReliableAt = 4
	// NeutralAdvantage is reported when no fight history supports a ratio.
	NeutralAdvantage = 5.0
)

// Estimate is the agent's evolving belief about one rival.
//
// Invariant: Offense, Defense, Mobility in [0, StatMax]; Offense+Mobility <= StatBudget.
// Invariant: Offense never decreases.
type Estimate struct {
	Offense  int
	Defense  int
	Mobility int
	// HealthLostAgainst is the agent's own health lost fighting this rival.
	HealthLostAgainst int
	// HealthInflicted is the health this rival lost fighting the agent.
	HealthInflicted int
	Last            grid.Coord
	seen            bool
}

// RecordFight folds one combat outcome into the estimate. Offense only moves
// when the agent started the fight, since then the rounds fought reflect how
// long the rival was willing to stand and trade.
func (e *Estimate) RecordFight(healthLost, healthInflicted, rounds int, initiated bool) {
	e.HealthLostAgainst += healthLost
	e.HealthInflicted += healthInflicted
	if initiated && rounds > e.Offense {
		e.Offense = min(rounds, StatMax)
	}
	e.reconcile()
}

// Observe records the rival's position for this turn. Displacement since the
// previous observation is a lower bound on mobility. The first observation
// only establishes the baseline.
func (e *Estimate) Observe(pos grid.Coord) {
	if e.seen {
		if d := grid.Manhattan(e.Last, pos); d > e.Mobility {
			e.Mobility = d
		}
	}
	e.Last = pos
	e.seen = true
	e.reconcile()
}

// reconcile enforces the stat invariants. An out-of-range or over-budget
// mobility is treated as noise and reset to 0.
func (e *Estimate) reconcile() {
	if e.Mobility < 0 || e.Mobility > StatMax || e.Offense+e.Mobility > StatBudget {
		e.Mobility = 0
	}
	if e.Offense+e.Mobility >= DefenseReliableAt {
		e.Defense = max(0, min(StatMax, StatBudget-e.Offense-e.Mobility))
	}
}

// Advantage returns 100 * (inflicted/lost) / (inflicted+lost), or
// NeutralAdvantage when there is no history or no health was lost against
// the rival.
func (e Estimate) Advantage() float64 {
	total := e.HealthInflicted + e.HealthLostAgainst
	if total <= 0 || e.HealthLostAgainst == 0 {
		return NeutralAdvantage
	}
	ratio := float64(e.HealthInflicted) / float64(e.HealthLostAgainst)
	return 100 * ratio / float64(total)
}

// Estimator owns one Estimate per rival for the whole match.
type Estimator struct {
	byID map[int]*Estimate
}

// NewEstimator creates zeroed estimates for rival slots 0..slots-1.
func NewEstimator(slots int) *Estimator {
	e := &Estimator{byID: make(map[int]*Estimate, slots)}
	for id := 0; id < slots; id++ {
		e.byID[id] = &Estimate{}
	}
	return e
}

// Get returns a copy of the estimate for id.
func (e *Estimator) Get(id int) (Estimate, bool) {
	est, ok := e.byID[id]
	if !ok {
		return Estimate{}, false
	}
	return *est, true
}

// Observe refreshes positions from this turn's snapshots, skipping selfID.
// Rivals the estimator has not seen before get a fresh slot.
func (e *Estimator) Observe(selfID int, snaps []Snapshot) {
	for _, s := range snaps {
		if s.ID == selfID {
			continue
		}
		est, ok := e.byID[s.ID]
		if !ok {
			est = &Estimate{}
			e.byID[s.ID] = est
		}
		est.Observe(s.Pos)
	}
}

// RecordFight applies r to the rival it names.
//
// Postcondition: returns an error wrapping ErrContractViolation for an unknown rival.
func (e *Estimator) RecordFight(r BattleResult, initiated bool) error {
	est, ok := e.byID[r.RivalID]
	if !ok {
		return fmt.Errorf("ai.Estimator: battle result for unknown rival %d: %w", r.RivalID, ErrContractViolation)
	}
	est.RecordFight(r.HealthLost, r.RivalHealthLost, r.RoundsFought, initiated)
	return nil
}
