package engine

import (
	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// scriptedSource replays fixed draws. Intn values are offsets into the
// requested range and are clamped to n-1. An exhausted source returns 0 for
// Intn and 0.99 for Float64, so chances fail by default.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func scripted(ints []int, floats []float64) *RNG {
	return NewRNGFromSource(&scriptedSource{ints: ints, floats: floats})
}

// testDefs mirrors the shipped content.
func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title:           "Dragon's Quest",
			Intro:           "The kingdom needs a hero to defeat the Ancient Dragon!",
			Start:           types.LocationVillage,
			MaxHealth:       100,
			StartGold:       50,
			StarterWeapon:   "steel_sword",
			ShopItem:        "healing_potion",
			ShopPrice:       30,
			CaveItem:        "ancient_key",
			LegendaryItem:   "dragonslayer",
			Boss:            "dragon",
			ForestEnemies:   []string{"goblin", "wolf"},
			EncounterChance: 0.6,
			TreasureGold:    1000,
			Combat: types.CombatRules{
				AttackMin:      10,
				AttackMax:      20,
				EnemyMinDamage: 5,
				RewardMin:      20,
				RewardMax:      50,
				FleeChance:     0.5,
			},
		},
		Locations: map[types.LocationID]types.LocationDef{
			types.LocationVillage: {
				ID: types.LocationVillage, Name: "Village",
				Description: "A peaceful village with thatched roofs.",
				Options:     []types.LocationID{types.LocationForest, types.LocationShop, types.LocationTavern},
			},
			types.LocationForest: {
				ID: types.LocationForest, Name: "Forest",
				Description: "A dark forest full of mysteries.",
				Options:     []types.LocationID{types.LocationVillage, types.LocationCave, types.LocationLake},
			},
			types.LocationShop: {
				ID: types.LocationShop, Name: "Shop",
				Description: "Merlin's magic shop.",
				Options:     []types.LocationID{types.LocationVillage},
			},
			types.LocationTavern: {
				ID: types.LocationTavern, Name: "Tavern",
				Description: "A smoky tavern.",
				Options:     []types.LocationID{types.LocationVillage},
				Rumors:      []string{"They say the dragon sleeps by day.", "A blade of legend lies lost."},
			},
			types.LocationCave: {
				ID: types.LocationCave, Name: "Cave",
				Description: "A cave that echoes with strange sounds.",
				Options:     []types.LocationID{types.LocationForest, types.LocationDragonLair},
			},
			types.LocationLake: {
				ID: types.LocationLake, Name: "Lake",
				Description: "A crystal-clear lake.",
				Options:     []types.LocationID{types.LocationForest},
			},
			types.LocationDragonLair: {
				ID: types.LocationDragonLair, Name: "Dragon's Lair",
				Description: "The lair of the Ancient Dragon.",
				Options:     []types.LocationID{types.LocationCave},
				Retreat:     types.LocationCave,
			},
		},
		Items: map[string]types.Item{
			"steel_sword":    {ID: "steel_sword", Name: "Steel Sword", Description: "A reliable sword", Value: 15, Kind: types.ItemWeapon},
			"healing_potion": {ID: "healing_potion", Name: "Healing Potion", Description: "Restores 30 HP", Value: 30, Kind: types.ItemPotion},
			"ancient_key":    {ID: "ancient_key", Name: "Ancient Key", Description: "A mysterious key", Kind: types.ItemKey},
			"dragonslayer":   {ID: "dragonslayer", Name: "Dragonslayer Sword", Description: "Legendary sword", Value: 40, Kind: types.ItemWeapon},
		},
		Enemies: map[string]types.Enemy{
			"goblin": {ID: "goblin", Name: "Goblin", Health: 30, MaxDamage: 10},
			"wolf":   {ID: "wolf", Name: "Wild Wolf", Health: 25, MaxDamage: 15},
			"dragon": {ID: "dragon", Name: "Ancient Dragon", Health: 100, MaxDamage: 25},
		},
	}
}

// newTestEngine creates an engine with a named player over testDefs.
func newTestEngine(rng *RNG) *Engine {
	e := New(testDefs(), rng)
	e.Begin("Aria")
	return e
}
