package combat

import "github.com/siomorehead/Fighter-Robot/internal/game/dice"

// AttackResult holds the outcome of a single attack.
type AttackResult struct {
	AttackerID int
	TargetID   int
	// AttackRoll is the raw d20 result before modifiers.
	AttackRoll int
	// AttackTotal is d20 + attacker's attack stat.
	AttackTotal int
	Outcome     Outcome
	// BaseDamage is the damage expression's total before the outcome multiplier.
	BaseDamage int
}

// EffectiveDamage returns the damage dealt after applying the outcome multiplier.
//
// Postcondition: Returns >= 0.
func (r AttackResult) EffectiveDamage() int {
	switch r.Outcome {
	case CritSuccess:
		return r.BaseDamage * 2
	case Success:
		return r.BaseDamage
	default:
		return 0
	}
}

// ResolveAttack rolls d20 + attack vs the target's AC, then rolls damage.
//
// Precondition: attacker and target must be non-nil; src must be non-nil.
func ResolveAttack(attacker, target *Combatant, damage dice.Expression, src dice.Source) AttackResult {
	d20 := src.Intn(20) + 1
	total := d20 + attacker.Attack
	dmg := dice.Roll(damage, src).Total()
	if dmg < 0 {
		dmg = 0
	}
	return AttackResult{
		AttackerID:  attacker.ID,
		TargetID:    target.ID,
		AttackRoll:  d20,
		AttackTotal: total,
		Outcome:     OutcomeFor(total, target.AC()),
		BaseDamage:  dmg,
	}
}
