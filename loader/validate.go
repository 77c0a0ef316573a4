package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// ValidationError collects every validation error found in the content.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) add(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// knownLocations are the ids the engine has arrival handlers for.
var knownLocations = func() map[types.LocationID]bool {
	m := map[types.LocationID]bool{}
	for _, id := range types.Locations {
		m[id] = true
	}
	return m
}()

// validate checks the compiled defs for referential integrity and
// consistency. Warnings are returned separately and never fail the load.
func validate(defs *state.Defs) ([]string, error) {
	ve := &ValidationError{}
	var warnings []string
	game := defs.Game

	if game.Title == "" {
		ve.add("Game.title is required")
	}
	if game.MaxHealth <= 0 {
		ve.add("Game.player.health must be positive, got %d", game.MaxHealth)
	}
	if game.StartGold < 0 {
		ve.add("Game.player.gold must not be negative, got %d", game.StartGold)
	}

	// Start location exists.
	if game.Start == "" {
		ve.add("Game.start is required")
	} else if _, ok := defs.Locations[game.Start]; !ok {
		ve.add("start location %q not found in defined locations", game.Start)
	}

	// Locations: known ids, no dangling option edges, retreat among options.
	for _, id := range sortedLocationIDs(defs) {
		loc := defs.Locations[id]
		if !knownLocations[id] {
			ve.add("location %q is not a known location id", id)
		}
		if len(loc.Options) == 0 {
			ve.add("location %q has no options", id)
		}
		for _, opt := range loc.Options {
			if _, ok := defs.Locations[opt]; !ok {
				ve.add("location %q option points to undefined location %q", id, opt)
			}
		}
		if loc.Retreat != "" && !containsLocation(loc.Options, loc.Retreat) {
			ve.add("location %q retreat %q is not one of its options", id, loc.Retreat)
		}
	}
	if _, ok := defs.Locations[types.LocationDragonLair]; ok && defs.Locations[types.LocationDragonLair].Retreat == "" {
		ve.add("location %q must define a retreat", types.LocationDragonLair)
	}

	// Item references.
	checkItem(defs, ve, "starter_weapon", game.StarterWeapon, types.ItemWeapon)
	checkItem(defs, ve, "legendary", game.LegendaryItem, types.ItemWeapon)
	checkItem(defs, ve, "shop.item", game.ShopItem, types.ItemPotion)
	checkItem(defs, ve, "cave_item", game.CaveItem, "")
	if game.ShopPrice <= 0 {
		ve.add("Game.shop.price must be positive, got %d", game.ShopPrice)
	}
	for _, id := range sortedKeys(defs.Items) {
		item := defs.Items[id]
		if item.Name == "" {
			ve.add("item %q has no name", id)
		}
		if item.Value < 0 {
			ve.add("item %q has negative value %d", id, item.Value)
		}
	}

	// Enemy references.
	if _, ok := defs.Enemies[game.Boss]; !ok {
		ve.add("Game.boss references undefined enemy %q", game.Boss)
	}
	if len(game.ForestEnemies) == 0 {
		ve.add("Game.forest.enemies must list at least one enemy")
	}
	for _, id := range game.ForestEnemies {
		if _, ok := defs.Enemies[id]; !ok {
			ve.add("Game.forest.enemies references undefined enemy %q", id)
		}
	}

	// Probabilities and ranges.
	rules := game.Combat
	checkChance(ve, "Game.forest.encounter_chance", game.EncounterChance)
	checkChance(ve, "Game.combat.flee_chance", rules.FleeChance)
	if rules.AttackMin <= 0 || rules.AttackMin > rules.AttackMax {
		ve.add("Game.combat.attack range {%d, %d} is invalid", rules.AttackMin, rules.AttackMax)
	}
	if rules.RewardMin < 0 || rules.RewardMin > rules.RewardMax {
		ve.add("Game.combat.reward range {%d, %d} is invalid", rules.RewardMin, rules.RewardMax)
	}
	if rules.EnemyMinDamage < 0 {
		ve.add("Game.combat.enemy_min_damage must not be negative, got %d", rules.EnemyMinDamage)
	}
	for _, id := range sortedKeys(defs.Enemies) {
		enemy := defs.Enemies[id]
		if enemy.Health <= 0 {
			ve.add("enemy %q health must be positive, got %d", id, enemy.Health)
		}
		if enemy.MaxDamage < rules.EnemyMinDamage {
			ve.add("enemy %q damage %d is below the enemy minimum damage %d", id, enemy.MaxDamage, rules.EnemyMinDamage)
		}
	}

	// Warnings: content the engine cannot reach.
	if game.Start != "" {
		reached := reachable(defs, game.Start)
		for _, id := range sortedLocationIDs(defs) {
			if !reached[id] {
				warnings = append(warnings, fmt.Sprintf("location %q is unreachable from %q", id, game.Start))
			}
		}
	}
	if tavern, ok := defs.Locations[types.LocationTavern]; ok && len(tavern.Rumors) == 0 {
		warnings = append(warnings, fmt.Sprintf("location %q has no rumors", types.LocationTavern))
	}

	if len(ve.Errors) > 0 {
		return warnings, ve
	}
	return warnings, nil
}

func checkItem(defs *state.Defs, ve *ValidationError, field, id string, kind types.ItemKind) {
	item, ok := defs.Items[id]
	if !ok {
		ve.add("Game.%s references undefined item %q", field, id)
		return
	}
	if kind != "" && item.Kind != kind {
		ve.add("Game.%s item %q must be a %s, got %s", field, id, kind, item.Kind)
	}
}

func checkChance(ve *ValidationError, field string, p float64) {
	if p < 0 || p > 1 {
		ve.add("%s must be within [0, 1], got %g", field, p)
	}
}

func containsLocation(ids []types.LocationID, id types.LocationID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// reachable walks option edges from start.
func reachable(defs *state.Defs, start types.LocationID) map[types.LocationID]bool {
	seen := map[types.LocationID]bool{start: true}
	queue := []types.LocationID{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range defs.Locations[id].Options {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

func sortedLocationIDs(defs *state.Defs) []types.LocationID {
	ids := make([]types.LocationID, 0, len(defs.Locations))
	for id := range defs.Locations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
