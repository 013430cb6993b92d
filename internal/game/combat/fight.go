package combat

import "github.com/siomorehead/Fighter-Robot/internal/game/dice"

// FightResult summarizes one engagement.
type FightResult struct {
	Rounds int
	// InitiatorLost and DefenderLost are the health each side actually lost.
	InitiatorLost int
	DefenderLost  int
	Attacks       []AttackResult
}

// Fight resolves an engagement round by round. The initiator strikes first in
// every round. The defender stands for at most max(1, defender.Attack) rounds,
// so the length of a fight reveals how aggressive the defender is. The fight
// ends early when either side dies.
//
// Precondition: both combatants alive; src non-nil.
// Postcondition: both Health values are >= 0; Rounds >= 1.
func Fight(initiator, defender *Combatant, damage dice.Expression, src dice.Source) FightResult {
	startI, startD := initiator.Health, defender.Health
	limit := max(1, defender.Attack)

	var res FightResult
	for res.Rounds < limit && !initiator.IsDead() && !defender.IsDead() {
		res.Rounds++
		for _, pair := range [2][2]*Combatant{{initiator, defender}, {defender, initiator}} {
			atk, tgt := pair[0], pair[1]
			if atk.IsDead() {
				break
			}
			r := ResolveAttack(atk, tgt, damage, src)
			tgt.ApplyDamage(r.EffectiveDamage())
			res.Attacks = append(res.Attacks, r)
		}
	}
	res.InitiatorLost = startI - initiator.Health
	res.DefenderLost = startD - defender.Health
	return res
}
