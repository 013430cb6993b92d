package ai

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/siomorehead/Fighter-Robot/internal/game/dice"
	"github.com/siomorehead/Fighter-Robot/internal/game/grid"
)

// Policy is the pluggable part of an agent.
type Policy interface {
	// ComputeMode picks this turn's mode and advances the streak in st.
	ComputeMode(st *AgentState) Mode
	// Engages reports whether the agent selects a target while in m.
	Engages(m Mode) bool
	// ScoreRival rates r as a target from self while in m.
	ScoreRival(self grid.Coord, r Snapshot, est Estimate, m Mode) float64
	// PlanMovement produces this turn's destination.
	PlanMovement(req MoveRequest) MovePlan
}

// MoveRequest carries everything a Policy needs to plan one move.
type MoveRequest struct {
	Mode      Mode
	From      grid.Coord
	Target    grid.Coord
	HasTarget bool
	Allowance int
	Energy    int
}

// ScriptCaller evaluates Lua score hooks.
type ScriptCaller interface {
	// CallHook calls a named Lua function in scope's VM.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error)
}

// WeightedPolicy is the shared policy behind every Variant.
type WeightedPolicy struct {
	variant *Variant
	rules   Rules
	retreat *RetreatPlanner
	caller  ScriptCaller
	logger  *zap.Logger
}

// NewWeightedPolicy builds the policy for v.
//
// Precondition: v and src must not be nil. caller may be nil, which disables
// score hooks; logger may be nil.
func NewWeightedPolicy(v *Variant, rules Rules, src dice.Source, caller ScriptCaller, logger *zap.Logger) *WeightedPolicy {
	if v == nil {
		panic("ai.NewWeightedPolicy: variant must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeightedPolicy{
		variant: v,
		rules:   rules,
		retreat: NewRetreatPlanner(src, v.Retreat),
		caller:  caller,
		logger:  logger,
	}
}

// Variant returns the personality this policy was built from.
func (p *WeightedPolicy) Variant() *Variant {
	return p.variant
}

// ComputeMode implements Policy.
func (p *WeightedPolicy) ComputeMode(st *AgentState) Mode {
	return p.variant.Thresholds().Next(st)
}

// Engages implements Policy.
func (p *WeightedPolicy) Engages(m Mode) bool {
	if p.variant.Passive {
		return false
	}
	return m != Retreat || p.variant.Retreat == RetreatNone
}

// ScoreRival implements Policy.
func (p *WeightedPolicy) ScoreRival(self grid.Coord, r Snapshot, est Estimate, m Mode) float64 {
	score := Score(self, r, est, p.variant.Weights.For(m))
	if p.caller == nil || p.variant.ScoreHook == "" {
		return score
	}
	val, err := p.caller.CallHook(p.variant.ID, p.variant.ScoreHook,
		lua.LNumber(r.ID),
		lua.LNumber(r.Health),
		lua.LNumber(grid.Manhattan(self, r.Pos)),
		lua.LString(m.String()),
	)
	if err != nil {
		p.logger.Warn("score hook failed",
			zap.String("variant", p.variant.ID),
			zap.String("hook", p.variant.ScoreHook),
			zap.Error(err),
		)
		return score
	}
	if n, ok := val.(lua.LNumber); ok {
		score += float64(n)
	}
	return score
}

// PlanMovement implements Policy.
func (p *WeightedPolicy) PlanMovement(req MoveRequest) MovePlan {
	if p.variant.Passive {
		return Hold(req.From)
	}
	limited := p.variant.EnergyLimitedMoves || req.Mode != Pursue
	budget := Budget(req.Allowance, req.Energy, p.rules.MovesEnergyCost, limited)

	if req.Mode == Retreat && p.variant.Retreat != RetreatNone {
		return p.retreat.Plan(req.From, budget, p.rules.Bounds)
	}
	if !req.HasTarget {
		return Hold(req.From)
	}
	return PlanApproach(req.From, req.Target, budget, p.rules.Bounds)
}
