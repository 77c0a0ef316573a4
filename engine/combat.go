package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/dragonsquest/engine/effects"
	"github.com/nathoo/dragonsquest/engine/parser"
	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// Combat menu choices.
const (
	actionAttack = "1"
	actionPotion = "2"
	actionFlee   = "3"
)

// PlayerAttack rolls the player's damage: uniform [AttackMin, AttackMax]
// plus the equipped weapon's value.
func PlayerAttack(p types.Player, rules types.CombatRules, rng *RNG) int {
	damage := rng.IntRange(rules.AttackMin, rules.AttackMax)
	if p.Equipped != nil {
		damage += p.Equipped.Value
	}
	return damage
}

// EnemyAttack rolls an enemy's damage: uniform [EnemyMinDamage, MaxDamage].
func EnemyAttack(enemy types.Enemy, rules types.CombatRules, rng *RNG) int {
	return rng.IntRange(rules.EnemyMinDamage, enemy.MaxDamage)
}

// AttemptFlee reports whether a flee attempt succeeds.
func AttemptFlee(rules types.CombatRules, rng *RNG) bool {
	return rng.Chance(rules.FleeChance)
}

// Reward rolls the gold granted for a won fight.
func Reward(rules types.CombatRules, rng *RNG) int {
	return rng.IntRange(rules.RewardMin, rules.RewardMax)
}

// stepCombat resolves one combat round. Input other than a menu choice is
// ignored and the round is shown again.
func (e *Engine) stepCombat(result *types.Result, input string) {
	rules := e.Defs.Game.Combat
	c := &e.State.Combat

	switch strings.TrimSpace(input) {
	case actionAttack:
		damage := PlayerAttack(e.State.Player, rules, e.RNG)
		c.Enemy.Health -= damage
		result.Output = append(result.Output, fmt.Sprintf("You deal %d damage to the %s!", damage, c.Enemy.Name))
		if c.Enemy.Health <= 0 {
			result.Output = append(result.Output, fmt.Sprintf("The %s has been defeated!", c.Enemy.Name))
			reward := Reward(rules, e.RNG)
			e.endCombat(result, types.CombatPlayerWon, types.Effect{
				Type: effects.GainGold, Params: map[string]any{"amount": reward},
			})
			return
		}

	case actionPotion:
		if len(state.Potions(e.State)) == 0 {
			result.Output = append(result.Output, message(ErrNoPotions))
			return
		}
		e.State.Mode = types.ModePotion
		return

	case actionFlee:
		if AttemptFlee(rules, e.RNG) {
			result.Output = append(result.Output, "You fled from the battle!")
			e.endCombat(result, types.CombatPlayerFled)
			return
		}
		result.Output = append(result.Output, "You failed to flee!")

	default:
		return
	}

	e.enemyTurn(result)
}

// stepPotion handles the potion picker. An invalid pick returns to the
// combat menu without costing a round.
func (e *Engine) stepPotion(result *types.Result, input string) {
	e.State.Mode = types.ModeCombat

	idx, ok := parser.Index(input, len(state.Potions(e.State)))
	if !ok {
		result.Output = append(result.Output, message(ErrInvalidSelection))
		return
	}

	potion, _ := state.UsePotion(e.State, idx)
	p := e.State.Player
	result.Output = append(result.Output, fmt.Sprintf("You drink the %s. Health: %d/%d", potion.Name, p.Health, p.MaxHealth))
	result.Events = append(result.Events, types.Event{
		Type: "potion_used",
		Data: map[string]any{"item": potion.ID, "health": p.Health},
	})

	e.enemyTurn(result)
}

// enemyTurn lets a living enemy strike back and checks for defeat.
func (e *Engine) enemyTurn(result *types.Result) {
	c := &e.State.Combat
	if !c.Active || c.Enemy.Health <= 0 {
		return
	}

	damage := EnemyAttack(c.Enemy, e.Defs.Game.Combat, e.RNG)
	health := state.Damage(e.State, damage)
	result.Output = append(result.Output, fmt.Sprintf("The %s deals %d damage to you!", c.Enemy.Name, damage))
	c.Round++

	if health <= 0 {
		result.Output = append(result.Output, "You have been defeated...", "GAME OVER")
		e.endCombat(result, types.CombatPlayerDefeated)
	}
}

// endCombat applies any extra effects, closes the encounter, and declares
// victory when the final fight was won.
func (e *Engine) endCombat(result *types.Result, status types.CombatStatus, extra ...types.Effect) {
	final := e.State.Combat.Final
	effs := append(extra, types.Effect{
		Type: effects.EndCombat, Params: map[string]any{"status": status},
	})
	if status == types.CombatPlayerWon && final {
		effs = append(effs, types.Effect{Type: effects.Victory})
	}
	e.apply(result, effs)
}
