package ai

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/siomorehead/Fighter-Robot/internal/game/grid"
)

// Agent is one fighter's decision engine. It owns its state and rival
// estimates exclusively.
//
// Agent is not safe for concurrent use; the host must serialize calls.
type Agent struct {
	self      Self
	policy    Policy
	rules     Rules
	state     AgentState
	estimator *Estimator
	logger    *zap.Logger
	turn      int
}

// NewAgent creates an Agent with full health and zeroed estimates for rival
// slots 0..rivalSlots-1.
//
// Precondition: self and policy must not be nil; health > 0. logger may be nil.
func NewAgent(self Self, policy Policy, rules Rules, health, rivalSlots int, logger *zap.Logger) *Agent {
	if self == nil || policy == nil {
		panic("ai.NewAgent: self and policy must not be nil")
	}
	if health <= 0 {
		panic("ai.NewAgent: health must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		self:      self,
		policy:    policy,
		rules:     rules,
		state:     AgentState{Health: health, Energy: 100, Target: NoTarget},
		estimator: NewEstimator(rivalSlots),
		logger:    logger.With(zap.Int("agent", self.ID())),
	}
}

// State returns a copy of the agent's private state.
func (a *Agent) State() AgentState {
	return a.state
}

// Estimate returns the agent's current belief about rival id.
func (a *Agent) Estimate(id int) (Estimate, bool) {
	return a.estimator.Get(id)
}

// Label is the display string for the robot.
func (a *Agent) Label() string {
	if a.state.Health > 0 {
		return fmt.Sprintf("%d: %d", a.self.ID(), a.state.Health)
	}
	return fmt.Sprintf("%d: defeated", a.self.ID())
}

// TakeTurn produces this turn's decision from the host-supplied energy level
// and rival snapshots.
//
// Postcondition: on error the decision holds position with no target, the
// error wraps ErrContractViolation, and only the engagement is cleared.
// A non-NoTarget TargetID implies Dest equals that rival's position.
func (a *Agent) TakeTurn(energy int, opponents []Snapshot) (TurnDecision, error) {
	a.turn++
	a.state.Engaging, a.state.Target = false, NoTarget
	pos := a.self.Position()
	hold := TurnDecision{Dest: pos, TargetID: NoTarget, AttackPower: a.self.AttackPower()}

	if err := a.validate(energy, pos, opponents); err != nil {
		return hold, err
	}

	a.state.Energy = energy
	mode := a.policy.ComputeMode(&a.state)
	a.estimator.Observe(a.self.ID(), opponents)

	req := MoveRequest{
		Mode:      mode,
		From:      pos,
		Allowance: a.self.MoveAllowance(),
		Energy:    energy,
	}

	decision := hold
	var target Snapshot
	if a.policy.Engages(mode) {
		ranked := Rank(a.self.ID(), opponents, func(r Snapshot) float64 {
			est, _ := a.estimator.Get(r.ID)
			return a.policy.ScoreRival(pos, r, est, mode)
		})
		if t, ok := SelectTarget(ranked); ok {
			target = t
			req.Target, req.HasTarget = t.Pos, true
		}
	}

	plan := a.policy.PlanMovement(req)
	decision.Dest = plan.Dest
	decision.Legs = plan.Legs
	decision.Turns = Turns(a.self.Heading(), plan.Legs)
	if req.HasTarget {
		decision.TargetID = Finalize(plan, target)
	}
	a.state.Engaging = decision.HasTarget()
	a.state.Target = decision.TargetID

	a.logger.Debug("turn decision",
		zap.Int("turn", a.turn),
		zap.Stringer("mode", mode),
		zap.Int("streak", a.state.ModeStreak),
		zap.Int("energy", energy),
		zap.Bool("has_target", req.HasTarget),
		zap.Int("target", decision.TargetID),
		zap.Stringer("dest", decision.Dest),
		zap.Int("legs", len(decision.Legs)),
	)
	return decision, nil
}

// OnBattleResult folds one resolved engagement into the agent's health and
// its estimate of the rival. The fight counts as initiated only when the rival
// is the one the agent's last decision targeted.
//
// Postcondition: returns an error wrapping ErrContractViolation for negative
// values or an unknown rival; state is unchanged in that case.
func (a *Agent) OnBattleResult(r BattleResult) error {
	if r.HealthLost < 0 || r.RivalHealthLost < 0 || r.RoundsFought < 0 {
		return fmt.Errorf("ai.Agent: negative battle result %+v: %w", r, ErrContractViolation)
	}
	if r.RivalID == a.self.ID() {
		return fmt.Errorf("ai.Agent: battle result against self: %w", ErrContractViolation)
	}
	initiated := a.state.Engaging && r.RivalID == a.state.Target
	if err := a.estimator.RecordFight(r, initiated); err != nil {
		return err
	}
	a.state.Health -= r.HealthLost

	a.logger.Debug("battle result",
		zap.Int("rival", r.RivalID),
		zap.Int("health_lost", r.HealthLost),
		zap.Int("rival_health_lost", r.RivalHealthLost),
		zap.Int("rounds", r.RoundsFought),
		zap.Int("health", a.state.Health),
		zap.Bool("initiated", initiated),
	)
	return nil
}

func (a *Agent) validate(energy int, pos grid.Coord, opponents []Snapshot) error {
	if energy < 0 || energy > 100 {
		return fmt.Errorf("ai.Agent: energy %d outside [0,100]: %w", energy, ErrContractViolation)
	}
	if !a.rules.Bounds.Contains(pos) {
		return fmt.Errorf("ai.Agent: own position %s outside arena: %w", pos, ErrContractViolation)
	}
	seen := make(map[int]struct{}, len(opponents))
	for _, o := range opponents {
		if o.Health < 0 {
			return fmt.Errorf("ai.Agent: rival %d has negative health %d: %w", o.ID, o.Health, ErrContractViolation)
		}
		if !a.rules.Bounds.Contains(o.Pos) {
			return fmt.Errorf("ai.Agent: rival %d at %s outside arena: %w", o.ID, o.Pos, ErrContractViolation)
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("ai.Agent: duplicate snapshot for rival %d: %w", o.ID, ErrContractViolation)
		}
		seen[o.ID] = struct{}{}
	}
	return nil
}
