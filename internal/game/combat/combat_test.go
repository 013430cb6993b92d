package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/siomorehead/Fighter-Robot/internal/game/combat"
	"github.com/siomorehead/Fighter-Robot/internal/game/dice"
)

func TestCombatant_ApplyDamage(t *testing.T) {
	c := combat.Combatant{ID: 1, Health: 18}
	c.ApplyDamage(5)
	assert.Equal(t, 13, c.Health)
	c.ApplyDamage(20)
	assert.Equal(t, 0, c.Health)
	assert.True(t, c.IsDead())
}

func TestCombatant_AC(t *testing.T) {
	c := combat.Combatant{Defense: 4}
	assert.Equal(t, 14, c.AC())
}

func TestOutcomeFor(t *testing.T) {
	tests := []struct {
		roll int
		ac   int
		want combat.Outcome
	}{
		{30, 15, combat.CritSuccess},
		{25, 15, combat.CritSuccess},
		{20, 15, combat.Success},
		{15, 15, combat.Success},
		{10, 15, combat.Failure},
		{5, 15, combat.Failure},
		{4, 15, combat.CritFailure},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, combat.OutcomeFor(tc.roll, tc.ac), "roll=%d ac=%d", tc.roll, tc.ac)
	}
}

func TestAttackResult_EffectiveDamage(t *testing.T) {
	assert.Equal(t, 8, combat.AttackResult{Outcome: combat.CritSuccess, BaseDamage: 4}.EffectiveDamage())
	assert.Equal(t, 4, combat.AttackResult{Outcome: combat.Success, BaseDamage: 4}.EffectiveDamage())
	assert.Equal(t, 0, combat.AttackResult{Outcome: combat.Failure, BaseDamage: 4}.EffectiveDamage())
	assert.Equal(t, 0, combat.AttackResult{Outcome: combat.CritFailure, BaseDamage: 4}.EffectiveDamage())
}

func TestResolveAttack_UsesSource(t *testing.T) {
	// d20 draws 9 -> 10, damage 1d6 draws 3 -> 4.
	src := &dice.FixedSource{Values: []int{9, 3}}
	atk := &combat.Combatant{ID: 1, Attack: 5}
	tgt := &combat.Combatant{ID: 2, Defense: 4}
	r := combat.ResolveAttack(atk, tgt, dice.MustParse("1d6"), src)
	assert.Equal(t, 10, r.AttackRoll)
	assert.Equal(t, 15, r.AttackTotal)
	assert.Equal(t, combat.Success, r.Outcome)
	assert.Equal(t, 4, r.EffectiveDamage())
}

func TestFight_DefenderAttackBoundsRounds(t *testing.T) {
	// Every draw is 0: d20 -> 1, 1d6 -> 1. Nobody hits against AC >= 10 with attack < 9.
	src := &dice.FixedSource{Values: []int{0}}
	a := &combat.Combatant{ID: 1, Health: 50, Attack: 4, Defense: 5}
	d := &combat.Combatant{ID: 2, Health: 50, Attack: 3, Defense: 5}
	res := combat.Fight(a, d, dice.MustParse("1d6"), src)
	assert.Equal(t, 3, res.Rounds)
	assert.Len(t, res.Attacks, 6)
	assert.Zero(t, res.InitiatorLost)
	assert.Zero(t, res.DefenderLost)
}

func TestFight_EndsOnDeath(t *testing.T) {
	// d20 19 -> 20: always at least a success.
	src := &dice.FixedSource{Values: []int{19}}
	a := &combat.Combatant{ID: 1, Health: 50, Attack: 5}
	d := &combat.Combatant{ID: 2, Health: 3, Attack: 6}
	res := combat.Fight(a, d, dice.MustParse("1d6+5"), src)
	require.Equal(t, 1, res.Rounds)
	assert.True(t, d.IsDead())
	assert.Equal(t, 3, res.DefenderLost)
	assert.Len(t, res.Attacks, 1, "dead defender does not strike back")
}

func TestProperty_Fight_Accounting(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		src := dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))
		a := &combat.Combatant{
			ID: 1, Health: rapid.IntRange(1, 100).Draw(rt, "ah"),
			Attack: rapid.IntRange(0, 6).Draw(rt, "aa"), Defense: rapid.IntRange(0, 6).Draw(rt, "ad"),
		}
		d := &combat.Combatant{
			ID: 2, Health: rapid.IntRange(1, 100).Draw(rt, "dh"),
			Attack: rapid.IntRange(0, 6).Draw(rt, "da"), Defense: rapid.IntRange(0, 6).Draw(rt, "dd"),
		}
		startA, startD := a.Health, d.Health
		res := combat.Fight(a, d, dice.MustParse("2d6"), src)

		if res.Rounds < 1 || res.Rounds > max(1, d.Attack) {
			rt.Fatalf("rounds %d outside [1, %d]", res.Rounds, max(1, d.Attack))
		}
		if a.Health < 0 || d.Health < 0 {
			rt.Fatalf("negative health: %d %d", a.Health, d.Health)
		}
		if startA-a.Health != res.InitiatorLost || startD-d.Health != res.DefenderLost {
			rt.Fatalf("loss accounting mismatch: %+v", res)
		}
	})
}
