package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/dragonsquest/engine/effects"
	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// startFight opens an encounter without going through a location.
func startFight(t *testing.T, e *Engine, enemyID string, final bool) {
	t.Helper()
	var r types.Result
	e.apply(&r, []types.Effect{{
		Type:   effects.StartCombat,
		Params: map[string]any{"enemy": enemyID, "final": final},
	}})
	require.Equal(t, types.ModeCombat, e.State.Mode)
}

func TestPlayerAttack_Range(t *testing.T) {
	rules := testDefs().Game.Combat
	rng := NewRNG(42)
	sword := testDefs().Items["steel_sword"]

	unarmed := types.Player{}
	armed := types.Player{Equipped: &sword}
	for i := 0; i < 1000; i++ {
		d := PlayerAttack(unarmed, rules, rng)
		require.GreaterOrEqual(t, d, 10)
		require.LessOrEqual(t, d, 20)

		d = PlayerAttack(armed, rules, rng)
		require.GreaterOrEqual(t, d, 25)
		require.LessOrEqual(t, d, 35)
	}
}

func TestEnemyAttack_Range(t *testing.T) {
	defs := testDefs()
	rules := defs.Game.Combat
	rng := NewRNG(7)

	tests := []struct {
		enemy string
		max   int
	}{
		{"goblin", 10},
		{"wolf", 15},
		{"dragon", 25},
	}
	for _, tt := range tests {
		t.Run(tt.enemy, func(t *testing.T) {
			seen := map[int]bool{}
			for i := 0; i < 2000; i++ {
				d := EnemyAttack(defs.Enemies[tt.enemy], rules, rng)
				require.GreaterOrEqual(t, d, 5)
				require.LessOrEqual(t, d, tt.max)
				seen[d] = true
			}
			assert.True(t, seen[5], "minimum damage should be reachable")
			assert.True(t, seen[tt.max], "maximum damage should be reachable")
		})
	}
}

func TestReward_Range(t *testing.T) {
	rules := testDefs().Game.Combat
	rng := NewRNG(3)
	for i := 0; i < 1000; i++ {
		r := Reward(rules, rng)
		require.GreaterOrEqual(t, r, 20)
		require.LessOrEqual(t, r, 50)
	}
}

func TestAttemptFlee_Probability(t *testing.T) {
	rules := testDefs().Game.Combat
	rng := NewRNG(11)

	const trials = 10000
	fled := 0
	for i := 0; i < trials; i++ {
		if AttemptFlee(rules, rng) {
			fled++
		}
	}
	ratio := float64(fled) / trials
	assert.InDelta(t, 0.5, ratio, 0.03)
}

func TestCombat_AttackKillsWithoutCounter(t *testing.T) {
	// Attack offset 10 -> 20 damage, reward offset 0 -> 20 gold.
	e := newTestEngine(scripted([]int{10, 0}, nil))
	state.Equip(e.State, e.Defs.Items["steel_sword"])
	startFight(t, e, "goblin", false)

	r := e.Step("1")

	assert.Contains(t, r.Output, "You deal 35 damage to the Goblin!")
	assert.Contains(t, r.Output, "The Goblin has been defeated!")
	assert.Contains(t, r.Output, "You gained 20 gold!")
	assert.Equal(t, 70, e.State.Player.Gold)
	assert.Equal(t, 100, e.State.Player.Health)
	assert.Equal(t, types.CombatPlayerWon, e.State.LastCombat)
	assert.Equal(t, types.ModeExplore, e.State.Mode)
	assert.False(t, e.State.Combat.Active)
	assert.Equal(t, types.OutcomeContinue, r.Outcome)
	assert.EqualValues(t, 2, e.RNG.Position())
}

func TestCombat_AttackThenEnemyStrikes(t *testing.T) {
	// Attack offset 0 -> 10 damage, enemy offset 3 -> 8 damage.
	e := newTestEngine(scripted([]int{0, 3}, nil))
	startFight(t, e, "goblin", false)

	r := e.Step("1")

	assert.Equal(t, 20, e.State.Combat.Enemy.Health)
	assert.Equal(t, 92, e.State.Player.Health)
	assert.Contains(t, r.Output, "The Goblin deals 8 damage to you!")
	assert.Equal(t, types.ModeCombat, e.State.Mode)
	assert.Equal(t, 1, e.State.Combat.Round)
}

func TestCombat_FleeSuccess(t *testing.T) {
	e := newTestEngine(scripted(nil, []float64{0.2}))
	startFight(t, e, "wolf", false)

	r := e.Step("3")

	assert.Contains(t, r.Output, "You fled from the battle!")
	assert.Equal(t, types.CombatPlayerFled, e.State.LastCombat)
	assert.Equal(t, 100, e.State.Player.Health, "no enemy attack after a successful flee")
	assert.Equal(t, types.ModeExplore, e.State.Mode)
	assert.EqualValues(t, 1, e.RNG.Position())
}

func TestCombat_FleeFailure(t *testing.T) {
	// Flee roll 0.7 fails; enemy offset 5 -> 10 damage.
	e := newTestEngine(scripted([]int{5}, []float64{0.7}))
	startFight(t, e, "goblin", false)

	r := e.Step("3")

	assert.Contains(t, r.Output, "You failed to flee!")
	assert.Equal(t, 90, e.State.Player.Health)
	assert.Equal(t, types.ModeCombat, e.State.Mode)
}

func TestCombat_FleeProbabilityThroughEngine(t *testing.T) {
	rng := NewRNG(99)

	const trials = 4000
	fled := 0
	for i := 0; i < trials; i++ {
		e := New(testDefs(), rng)
		startFight(t, e, "goblin", false)
		e.Step("3")
		if e.State.LastCombat == types.CombatPlayerFled {
			fled++
			require.Equal(t, 100, e.State.Player.Health)
		} else {
			require.Less(t, e.State.Player.Health, 100)
		}
	}
	assert.InDelta(t, 0.5, float64(fled)/trials, 0.04)
}

func TestCombat_NoPotions(t *testing.T) {
	e := newTestEngine(scripted(nil, nil))
	startFight(t, e, "goblin", false)

	r := e.Step("2")

	assert.Equal(t, []string{"You have no potions!"}, r.Output)
	assert.Equal(t, types.ModeCombat, e.State.Mode)
	assert.Equal(t, 100, e.State.Player.Health)
	assert.EqualValues(t, 0, e.RNG.Position())
}

func TestCombat_DrinkPotion(t *testing.T) {
	// Enemy offset 0 -> 5 damage after drinking.
	e := newTestEngine(scripted([]int{0}, nil))
	state.AddItem(e.State, e.Defs.Items["healing_potion"])
	e.State.Player.Health = 50
	startFight(t, e, "goblin", false)

	e.Step("2")
	require.Equal(t, types.ModePotion, e.State.Mode)
	assert.Contains(t, e.Prompt(), "1. Healing Potion (+30 HP)")

	r := e.Step("1")

	assert.Contains(t, r.Output, "You drink the Healing Potion. Health: 80/100")
	assert.Equal(t, 75, e.State.Player.Health)
	assert.Empty(t, state.Potions(e.State))
	assert.Equal(t, types.ModeCombat, e.State.Mode)
}

func TestCombat_PotionHealingCapped(t *testing.T) {
	e := newTestEngine(scripted([]int{0}, nil))
	state.AddItem(e.State, e.Defs.Items["healing_potion"])
	state.AddItem(e.State, e.Defs.Items["healing_potion"])
	e.State.Player.Health = 90
	startFight(t, e, "goblin", false)

	e.Step("2")
	r := e.Step("2")

	assert.Contains(t, r.Output, "You drink the Healing Potion. Health: 100/100")
	assert.Len(t, state.Potions(e.State), 1, "only one potion is consumed")
}

func TestCombat_InvalidPotionPick(t *testing.T) {
	for _, input := range []string{"9", "0", "abc", ""} {
		t.Run(input, func(t *testing.T) {
			e := newTestEngine(scripted(nil, nil))
			state.AddItem(e.State, e.Defs.Items["healing_potion"])
			startFight(t, e, "goblin", false)

			e.Step("2")
			r := e.Step(input)

			assert.Equal(t, []string{"Invalid choice!"}, r.Output)
			assert.Equal(t, types.ModeCombat, e.State.Mode)
			assert.Len(t, state.Potions(e.State), 1)
			assert.Equal(t, 100, e.State.Player.Health)
			assert.EqualValues(t, 0, e.RNG.Position())
		})
	}
}

func TestCombat_StrayInputIgnored(t *testing.T) {
	e := newTestEngine(scripted(nil, nil))
	startFight(t, e, "goblin", false)

	r := e.Step("dance")

	assert.Empty(t, r.Output)
	assert.Equal(t, types.ModeCombat, e.State.Mode)
	assert.Equal(t, 30, e.State.Combat.Enemy.Health)
	assert.EqualValues(t, 0, e.RNG.Position())
}

func TestCombat_Defeat(t *testing.T) {
	// Attack offset 0 -> 10 damage, enemy offset 0 -> 5 damage.
	e := newTestEngine(scripted([]int{0, 0}, nil))
	e.State.Player.Health = 5
	startFight(t, e, "goblin", false)

	r := e.Step("1")

	assert.Contains(t, r.Output, "You have been defeated...")
	assert.Equal(t, types.OutcomeLost, r.Outcome)
	assert.Equal(t, types.CombatPlayerDefeated, e.State.LastCombat)
	assert.NotEqual(t, types.CombatPlayerWon, e.State.LastCombat)
	assert.Equal(t, 0, e.State.Player.Health)

	r = e.Step("1")
	assert.Equal(t, []string{"The game is over."}, r.Output)
	assert.Nil(t, e.Prompt())
}

func TestCombat_BossWinIsVictory(t *testing.T) {
	e := newTestEngine(scripted([]int{0, 0}, nil))
	state.Equip(e.State, e.Defs.Items["dragonslayer"])
	startFight(t, e, "dragon", true)
	e.State.Combat.Enemy.Health = 50

	r := e.Step("1")

	assert.Equal(t, types.OutcomeWon, r.Outcome)
	assert.Contains(t, r.Output, "=== VICTORY! ===")
	assert.Contains(t, r.Output, "Treasure acquired: 1000 gold")
	assert.Equal(t, types.CombatPlayerWon, e.State.LastCombat)
}

func TestCombat_EncounterDoesNotMutateCatalog(t *testing.T) {
	e := newTestEngine(scripted([]int{10, 0}, nil))
	startFight(t, e, "goblin", false)

	e.Step("1")

	assert.Equal(t, 10, e.State.Combat.Enemy.Health)
	assert.Equal(t, 30, e.Defs.Enemies["goblin"].Health)

	startFight(t, e, "goblin", false)
	assert.Equal(t, 30, e.State.Combat.Enemy.Health)
}
