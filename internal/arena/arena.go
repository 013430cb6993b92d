// Package arena is a reference host for the fighter decision engine: a grid
// world with a turn scheduler, energy bookkeeping, and dice-based fights
// between co-located robots.
package arena

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/siomorehead/Fighter-Robot/internal/config"
	"github.com/siomorehead/Fighter-Robot/internal/game/ai"
	"github.com/siomorehead/Fighter-Robot/internal/game/combat"
	"github.com/siomorehead/Fighter-Robot/internal/game/dice"
	"github.com/siomorehead/Fighter-Robot/internal/game/grid"
	"github.com/siomorehead/Fighter-Robot/internal/observability"
	"github.com/siomorehead/Fighter-Robot/internal/scripting"
)

// Standing is one robot's line in the final results.
type Standing struct {
	ID      int
	Variant string
	Health  int
	Energy  int
	Alive   bool
	Label   string
}

// Result summarizes a finished match.
type Result struct {
	MatchID uuid.UUID
	Turns   int
	// Winner is the id of the sole survivor, or ai.NoTarget when the match
	// ran out of turns with several robots standing, or nobody survived.
	Winner    int
	Standings []Standing
}

// Arena owns every robot and runs the match.
//
// Arena is not safe for concurrent use.
type Arena struct {
	id     uuid.UUID
	cfg    config.ArenaConfig
	rules  ai.Rules
	damage dice.Expression
	roller *dice.Roller
	robots []*Robot
	turn   int
	logger *zap.Logger
}

// New builds an arena with one robot per roster entry, ids in roster order,
// placed on distinct random cells with random headings.
//
// Precondition: roller and logger must be non-nil. scripts may be nil.
// Postcondition: returns error if the roster is empty, the damage expression
// is invalid, or the arena has fewer cells than robots.
func New(cfg config.ArenaConfig, roster []*ai.Variant, roller *dice.Roller, scripts ai.ScriptCaller, logger *zap.Logger) (*Arena, error) {
	if roller == nil || logger == nil {
		panic("arena.New: roller and logger must not be nil")
	}
	if len(roster) == 0 {
		return nil, errors.New("arena.New: roster must not be empty")
	}
	bounds := grid.Bounds{Width: cfg.Width, Height: cfg.Height}
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("arena.New: %w", err)
	}
	if cells := cfg.Width * cfg.Height; cells < len(roster) {
		return nil, fmt.Errorf("arena.New: %d robots do not fit in %d cells", len(roster), cells)
	}
	damage, err := dice.Parse(cfg.Damage)
	if err != nil {
		return nil, fmt.Errorf("arena.New: damage: %w", err)
	}

	id := uuid.New()
	a := &Arena{
		id:     id,
		cfg:    cfg,
		rules:  ai.Rules{Bounds: bounds, MovesEnergyCost: cfg.MovesEnergyCost},
		damage: damage,
		roller: roller,
		logger: observability.MatchLogger(logger, id, cfg.Seed),
	}

	taken := make(map[grid.Coord]bool, len(roster))
	for i, v := range roster {
		if v == nil {
			return nil, fmt.Errorf("arena.New: roster[%d] is nil", i)
		}
		pos := a.freeCell(taken)
		taken[pos] = true
		r := &Robot{
			id:      i,
			variant: v,
			pos:     pos,
			heading: grid.Heading(roller.Intn(4)),
			health:  cfg.StartHealth,
			energy:  cfg.MaxEnergy,
			bounds:  bounds,
		}
		rl := observability.RobotLogger(a.logger, i, v.ID)
		policy := ai.NewWeightedPolicy(v, a.rules, roller, scripts, rl)
		r.agent = ai.NewAgent(r, policy, a.rules, cfg.StartHealth, len(roster), rl)
		a.robots = append(a.robots, r)
	}
	return a, nil
}

func (a *Arena) freeCell(taken map[grid.Coord]bool) grid.Coord {
	for {
		c := grid.Coord{Col: a.roller.Intn(a.cfg.Width), Row: a.roller.Intn(a.cfg.Height)}
		if !taken[c] {
			return c
		}
	}
}

// ID returns the match id.
func (a *Arena) ID() uuid.UUID { return a.id }

// Turn returns the number of completed turns.
func (a *Arena) Turn() int { return a.turn }

// Robot returns the robot with the given id.
func (a *Arena) Robot(id int) (*Robot, bool) {
	if id < 0 || id >= len(a.robots) {
		return nil, false
	}
	return a.robots[id], true
}

// Place moves a robot before the match starts.
//
// Postcondition: returns error if id is unknown, c is outside the arena, or
// the match has already started.
func (a *Arena) Place(id int, c grid.Coord, h grid.Heading) error {
	if a.turn > 0 {
		return errors.New("arena.Place: match already started")
	}
	r, ok := a.Robot(id)
	if !ok {
		return fmt.Errorf("arena.Place: unknown robot %d", id)
	}
	if !a.rules.Bounds.Contains(c) {
		return fmt.Errorf("arena.Place: %s outside arena", c)
	}
	r.pos, r.heading = c, h
	return nil
}

// RobotInfo reports a robot's public state for Lua score hooks.
func (a *Arena) RobotInfo(id int) *scripting.RobotInfo {
	r, ok := a.Robot(id)
	if !ok {
		return nil
	}
	return &scripting.RobotInfo{
		ID:      r.id,
		Variant: r.Variant(),
		Health:  r.Health(),
		Col:     r.pos.Col,
		Row:     r.pos.Row,
	}
}

// Alive returns the number of robots still standing.
func (a *Arena) Alive() int {
	n := 0
	for _, r := range a.robots {
		if r.Alive() {
			n++
		}
	}
	return n
}

// Over reports whether the match has ended.
func (a *Arena) Over() bool {
	return a.Alive() <= 1 || a.turn >= a.cfg.MaxTurns
}

// Step runs one turn: every living robot, in id order, recharges, decides,
// moves, and fights if it reached its target.
func (a *Arena) Step() {
	a.turn++
	for _, r := range a.robots {
		if !r.Alive() {
			continue
		}
		a.act(r)
	}
}

func (a *Arena) act(r *Robot) {
	r.energy = min(a.cfg.MaxEnergy, r.energy+a.cfg.EnergyRegen)

	snaps := make([]ai.Snapshot, 0, len(a.robots)-1)
	for _, o := range a.robots {
		if o != r {
			snaps = append(snaps, o.snapshot())
		}
	}

	d, err := r.Agent().TakeTurn(r.energy, snaps)
	if err != nil {
		a.logger.Warn("decision rejected", zap.Int("robot", r.id), zap.Error(err))
		return
	}

	from := r.pos
	ai.Navigate(r, d.Legs)
	if r.pos != d.Dest {
		a.logger.Debug("move cut short", zap.Int("robot", r.id), zap.Stringer("pos", r.pos), zap.Stringer("dest", d.Dest))
	}
	r.energy = max(0, r.energy-grid.Manhattan(from, r.pos)*a.cfg.MovesEnergyCost)

	if !d.HasTarget() {
		return
	}
	t, ok := a.Robot(d.TargetID)
	if !ok || !t.Alive() || t.pos != r.pos {
		return
	}
	if r.energy < a.cfg.AttackEnergyCost {
		a.logger.Debug("too tired to attack", zap.Int("robot", r.id), zap.Int("energy", r.energy))
		return
	}
	r.energy -= a.cfg.AttackEnergyCost
	a.fight(r, t)
}

func (a *Arena) fight(r, t *Robot) {
	attacker, defender := r.combatant(), t.combatant()
	res := combat.Fight(attacker, defender, a.damage, a.roller)
	r.health, t.health = attacker.Health, defender.Health

	a.logger.Info("fight",
		zap.String("fight", uuid.NewString()),
		zap.Int("turn", a.turn),
		zap.Int("attacker", r.id),
		zap.Int("defender", t.id),
		zap.Int("rounds", res.Rounds),
		zap.Int("attacker_lost", res.InitiatorLost),
		zap.Int("defender_lost", res.DefenderLost),
	)
	for i, atk := range res.Attacks {
		a.logger.Debug("attack",
			zap.Int("turn", a.turn),
			zap.Int("round", i/2+1),
			zap.Int("attacker", atk.AttackerID),
			zap.Int("target", atk.TargetID),
			zap.Int("roll", atk.AttackTotal),
			zap.Stringer("outcome", atk.Outcome),
			zap.Int("damage", atk.EffectiveDamage()),
		)
	}

	a.report(r, ai.BattleResult{
		HealthLost:      res.InitiatorLost,
		RivalID:         t.id,
		RivalHealthLost: res.DefenderLost,
		RoundsFought:    res.Rounds,
	})
	a.report(t, ai.BattleResult{
		HealthLost:      res.DefenderLost,
		RivalID:         r.id,
		RivalHealthLost: res.InitiatorLost,
		RoundsFought:    res.Rounds,
	})

	for _, x := range []*Robot{r, t} {
		if !x.Alive() {
			a.logger.Info("robot eliminated",
				zap.Int("robot", x.id),
				zap.String("variant", x.Variant()),
				zap.Int("turn", a.turn),
			)
		}
	}
}

func (a *Arena) report(r *Robot, br ai.BattleResult) {
	if err := r.Agent().OnBattleResult(br); err != nil {
		a.logger.Warn("battle result rejected", zap.Int("robot", r.id), zap.Error(err))
	}
}

// Run steps the match until it is over or ctx is cancelled.
//
// Postcondition: on cancellation returns the standings so far and ctx.Err().
func (a *Arena) Run(ctx context.Context) (Result, error) {
	a.logger.Info("match started",
		zap.Int("robots", len(a.robots)),
		zap.Int("width", a.cfg.Width),
		zap.Int("height", a.cfg.Height),
	)
	for !a.Over() {
		if err := ctx.Err(); err != nil {
			return a.Result(), err
		}
		a.Step()
	}
	res := a.Result()
	a.logger.Info("match finished",
		zap.Int("turns", res.Turns),
		zap.Int("winner", res.Winner),
		zap.Int("survivors", a.Alive()),
	)
	return res, nil
}

// Result returns the current standings: survivors first, then by remaining
// health, then by id.
func (a *Arena) Result() Result {
	standings := make([]Standing, 0, len(a.robots))
	for _, r := range a.robots {
		standings = append(standings, Standing{
			ID:      r.id,
			Variant: r.Variant(),
			Health:  r.Health(),
			Energy:  r.Energy(),
			Alive:   r.Alive(),
			Label:   r.Label(),
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		si, sj := standings[i], standings[j]
		if si.Alive != sj.Alive {
			return si.Alive
		}
		if si.Health != sj.Health {
			return si.Health > sj.Health
		}
		return si.ID < sj.ID
	})

	winner := ai.NoTarget
	if a.Alive() == 1 {
		winner = standings[0].ID
	}
	return Result{MatchID: a.id, Turns: a.turn, Winner: winner, Standings: standings}
}
