package arena_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/siomorehead/Fighter-Robot/internal/arena"
	"github.com/siomorehead/Fighter-Robot/internal/config"
	"github.com/siomorehead/Fighter-Robot/internal/game/ai"
	"github.com/siomorehead/Fighter-Robot/internal/game/dice"
	"github.com/siomorehead/Fighter-Robot/internal/game/grid"
)

func testConfig() config.ArenaConfig {
	return config.ArenaConfig{
		Width:            12,
		Height:           8,
		StartHealth:      100,
		MaxEnergy:        100,
		EnergyRegen:      10,
		MovesEnergyCost:  5,
		AttackEnergyCost: 5,
		MaxTurns:         60,
		Damage:           "1d6",
	}
}

func dummy() *ai.Variant {
	return &ai.Variant{
		ID:      "dummy",
		Body:    ai.BodyStats{Attack: 2, Defense: 6, Moves: 2},
		Retreat: ai.RetreatHold,
		Passive: true,
	}
}

func hunter() *ai.Variant {
	return &ai.Variant{
		ID:        "hunter",
		Body:      ai.BodyStats{Attack: 4, Defense: 5, Moves: 1},
		LowHealth: 40,
		LowEnergy: 30,
		Retreat:   ai.RetreatFixed,
		Weights: ai.ModeWeights{
			Pursue:   ai.Weights{Health: 0.6, Distance: 0.4},
			Conserve: ai.Weights{Health: 0.2, Distance: 0.8},
		},
	}
}

func stalker() *ai.Variant {
	return &ai.Variant{
		ID:                 "stalker",
		Body:               ai.BodyStats{Attack: 5, Defense: 4, Moves: 1},
		LowHealth:          15,
		LowEnergy:          25,
		Retreat:            ai.RetreatRandom,
		EnergyLimitedMoves: true,
		Weights: ai.ModeWeights{
			Pursue:   ai.Weights{Health: 0.2, Distance: 0.1, Offense: 0.2, Defense: 0.4, Mobility: 0.1},
			Conserve: ai.Weights{Health: 0.1, Distance: 0.3, Offense: 0.3, Defense: 0.2, Mobility: 0.1},
		},
	}
}

func brawler() *ai.Variant {
	return &ai.Variant{
		ID:      "brawler",
		Body:    ai.BodyStats{Attack: 6, Defense: 1, Moves: 3},
		Retreat: ai.RetreatNone,
		Weights: ai.ModeWeights{
			Pursue:   ai.Weights{Health: 1},
			Conserve: ai.Weights{Health: 1},
			Retreat:  ai.Weights{Health: 1},
		},
	}
}

type tb interface {
	require.TestingT
	Helper()
}

func newArena(t tb, cfg config.ArenaConfig, seed int64, roster ...*ai.Variant) (*arena.Arena, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
	a, err := arena.New(cfg, roster, roller, nil, logger)
	require.NoError(t, err)
	return a, logs
}

func TestNew_Rejects(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewSeededSource(1), zap.NewNop())

	_, err := arena.New(testConfig(), nil, roller, nil, zap.NewNop())
	assert.Error(t, err, "empty roster")

	tiny := testConfig()
	tiny.Width, tiny.Height = 1, 1
	_, err = arena.New(tiny, []*ai.Variant{dummy(), dummy()}, roller, nil, zap.NewNop())
	assert.Error(t, err, "too small")

	bad := testConfig()
	bad.Damage = "lots"
	_, err = arena.New(bad, []*ai.Variant{dummy(), dummy()}, roller, nil, zap.NewNop())
	assert.Error(t, err, "bad damage")

	_, err = arena.New(testConfig(), []*ai.Variant{dummy(), nil}, roller, nil, zap.NewNop())
	assert.Error(t, err, "nil variant")

	assert.Panics(t, func() { _, _ = arena.New(testConfig(), []*ai.Variant{dummy()}, nil, nil, zap.NewNop()) })
}

func TestNew_DistinctStartCells(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 2, 2
	a, _ := newArena(t, cfg, 5, dummy(), dummy(), dummy(), dummy())
	seen := map[grid.Coord]bool{}
	for id := 0; id < 4; id++ {
		r, ok := a.Robot(id)
		require.True(t, ok)
		assert.False(t, seen[r.Position()], "cell %s reused", r.Position())
		seen[r.Position()] = true
	}
}

func TestPlace(t *testing.T) {
	a, _ := newArena(t, testConfig(), 1, dummy(), dummy())
	assert.NoError(t, a.Place(0, grid.Coord{Col: 3, Row: 3}, grid.East))
	assert.Error(t, a.Place(5, grid.Coord{}, grid.East))
	assert.Error(t, a.Place(0, grid.Coord{Col: 12}, grid.East))

	r, _ := a.Robot(0)
	assert.Equal(t, grid.Coord{Col: 3, Row: 3}, r.Position())
	assert.Equal(t, grid.East, r.Heading())

	a.Step()
	assert.Error(t, a.Place(0, grid.Coord{}, grid.North), "after start")
}

func TestStep_HunterReachesAndFights(t *testing.T) {
	a, logs := newArena(t, testConfig(), 3, hunter(), dummy())
	require.NoError(t, a.Place(0, grid.Coord{Col: 0, Row: 0}, grid.North))
	require.NoError(t, a.Place(1, grid.Coord{Col: 1, Row: 0}, grid.South))

	a.Step()

	h, _ := a.Robot(0)
	assert.Equal(t, grid.Coord{Col: 1, Row: 0}, h.Position())
	assert.Equal(t, grid.East, h.Heading())
	assert.Equal(t, 90, h.Energy(), "one cell plus one attack")

	fights := logs.FilterMessage("fight").All()
	require.Len(t, fights, 1)
	rounds := fights[0].ContextMap()["rounds"].(int64)
	assert.GreaterOrEqual(t, rounds, int64(1))
	assert.LessOrEqual(t, rounds, int64(2), "dummy stands at most its attack stat")

	attacks := logs.FilterMessage("attack").All()
	require.NotEmpty(t, attacks)
	assert.LessOrEqual(t, len(attacks), 2*int(rounds))
	assert.Equal(t, int64(0), attacks[0].ContextMap()["attacker"], "initiator strikes first")

	decisions := logs.FilterMessage("turn decision").FilterField(zap.Int("robot", 0)).All()
	require.Len(t, decisions, 1)
	assert.Equal(t, "hunter", decisions[0].ContextMap()["variant"])
	assert.Equal(t, a.ID().String(), decisions[0].ContextMap()["match"])

	est, ok := h.Agent().Estimate(1)
	require.True(t, ok)
	assert.Equal(t, int(rounds), est.Offense, "initiator learns offense from rounds")

	d, _ := a.Robot(1)
	assert.Equal(t, d.Health(), d.Agent().State().Health, "host and agent agree on health")
	assert.Equal(t, h.Health(), h.Agent().State().Health)
}

func TestRun_PassiveMatchTimesOut(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTurns = 15
	a, logs := newArena(t, cfg, 9, dummy(), dummy(), dummy())

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, res.Turns)
	assert.Equal(t, ai.NoTarget, res.Winner)
	assert.Empty(t, logs.FilterMessage("fight").All())
	require.Len(t, res.Standings, 3)
	for i, s := range res.Standings {
		assert.Equal(t, i, s.ID, "ties broken by id")
		assert.Equal(t, 100, s.Health)
		assert.Equal(t, 100, s.Energy)
		assert.True(t, s.Alive)
		assert.Equal(t, "dummy", s.Variant)
	}
	assert.Len(t, logs.FilterMessage("match finished").All(), 1)
}

func TestRun_SameSeedSameOutcome(t *testing.T) {
	roster := func() []*ai.Variant { return []*ai.Variant{stalker(), hunter(), brawler(), dummy()} }
	a1, _ := newArena(t, testConfig(), 42, roster()...)
	a2, _ := newArena(t, testConfig(), 42, roster()...)

	r1, err := a1.Run(context.Background())
	require.NoError(t, err)
	r2, err := a2.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, r1.MatchID, r2.MatchID)
	assert.Equal(t, r1.Turns, r2.Turns)
	assert.Equal(t, r1.Winner, r2.Winner)
	assert.Equal(t, r1.Standings, r2.Standings)
}

func TestRun_Cancelled(t *testing.T) {
	a, _ := newArena(t, testConfig(), 1, hunter(), dummy())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := a.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Turns)
}

func TestResult_StandingsOrder(t *testing.T) {
	a, _ := newArena(t, testConfig(), 11, brawler(), brawler(), stalker(), hunter())
	res, err := a.Run(context.Background())
	require.NoError(t, err)

	for i := 1; i < len(res.Standings); i++ {
		prev, cur := res.Standings[i-1], res.Standings[i]
		if prev.Alive != cur.Alive {
			assert.True(t, prev.Alive)
			continue
		}
		assert.GreaterOrEqual(t, prev.Health, cur.Health)
	}
	if res.Winner != ai.NoTarget {
		assert.Equal(t, res.Winner, res.Standings[0].ID)
		assert.Equal(t, 1, a.Alive())
	}
	for _, s := range res.Standings {
		if !s.Alive {
			assert.Contains(t, s.Label, "defeated")
		}
	}
}

func TestRobotInfo(t *testing.T) {
	a, _ := newArena(t, testConfig(), 1, hunter(), dummy())
	require.NoError(t, a.Place(1, grid.Coord{Col: 4, Row: 2}, grid.North))
	info := a.RobotInfo(1)
	require.NotNil(t, info)
	assert.Equal(t, "dummy", info.Variant)
	assert.Equal(t, 100, info.Health)
	assert.Equal(t, 4, info.Col)
	assert.Equal(t, 2, info.Row)
	assert.Nil(t, a.RobotInfo(7))
}

func TestProperty_Step_KeepsRobotsLegal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := testConfig()
		cfg.Width = rapid.IntRange(2, 10).Draw(rt, "width")
		cfg.Height = rapid.IntRange(2, 10).Draw(rt, "height")
		roster := []*ai.Variant{stalker(), hunter(), brawler(), dummy()}
		a, _ := newArena(rt, cfg, rapid.Int64().Draw(rt, "seed"), roster...)
		bounds := grid.Bounds{Width: cfg.Width, Height: cfg.Height}

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps && !a.Over(); i++ {
			a.Step()
			for id := range roster {
				r, _ := a.Robot(id)
				if !bounds.Contains(r.Position()) {
					rt.Fatalf("robot %d at %s outside arena", id, r.Position())
				}
				if r.Health() < 0 || r.Energy() < 0 || r.Energy() > cfg.MaxEnergy {
					rt.Fatalf("robot %d health %d energy %d", id, r.Health(), r.Energy())
				}
			}
		}
	})
}

// repoRoot walks up from the test's working directory to find the module root.
func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	root := wd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatalf("could not find repo root from %s", wd)
		}
		root = parent
	}
}

func TestShippedVariants_PlayAMatch(t *testing.T) {
	variants, err := ai.LoadVariants(filepath.Join(repoRoot(t), "content", "variants"))
	require.NoError(t, err)
	reg := ai.NewRegistry()
	for _, v := range variants {
		require.NoError(t, reg.Register(v))
	}
	assert.Equal(t, []string{"dummy", "hunter", "skirmisher", "stalker", "weakest"}, reg.IDs())

	var roster []*ai.Variant
	for _, id := range reg.IDs() {
		v, _ := reg.VariantFor(id)
		roster = append(roster, v)
	}
	a, _ := newArena(t, testConfig(), 7, roster...)
	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Turns, testConfig().MaxTurns)
	assert.Len(t, res.Standings, 5)
}
