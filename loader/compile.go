// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// rawDef holds a Name "id" { ... } table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
	where string // chunk position, e.g. "world.lua:3:"
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if tbl == nil {
		return ""
	}
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	if tbl == nil {
		return 0
	}
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if tbl == nil {
		return nil
	}
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns the string entries of an array field, in order.
func getStrings(tbl *lua.LTable, key string) []string {
	arr := getTable(tbl, key)
	if arr == nil {
		return nil
	}
	var out []string
	for i := 1; i <= arr.MaxN(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// getRange reads a two-element array { min, max }.
func getRange(tbl *lua.LTable, key string) (int, int) {
	arr := getTable(tbl, key)
	if arr == nil {
		return 0, 0
	}
	lo, _ := arr.RawGetInt(1).(lua.LNumber)
	hi, _ := arr.RawGetInt(2).(lua.LNumber)
	return int(lo), int(hi)
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Locations: map[types.LocationID]types.LocationDef{},
		Items:     map[string]types.Item{},
		Enemies:   map[string]types.Enemy{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.locations {
		id := types.LocationID(raw.id)
		if _, dup := defs.Locations[id]; dup {
			return nil, fmt.Errorf("%s duplicate location %q", raw.where, raw.id)
		}
		defs.Locations[id] = compileLocation(raw)
	}

	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.id]; dup {
			return nil, fmt.Errorf("%s duplicate item %q", raw.where, raw.id)
		}
		item, err := compileItem(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling item %s: %w", raw.id, err)
		}
		defs.Items[raw.id] = item
	}

	for _, raw := range coll.enemies {
		if _, dup := defs.Enemies[raw.id]; dup {
			return nil, fmt.Errorf("%s duplicate enemy %q", raw.where, raw.id)
		}
		defs.Enemies[raw.id] = compileEnemy(raw)
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	player := getTable(tbl, "player")
	shop := getTable(tbl, "shop")
	forest := getTable(tbl, "forest")
	combat := getTable(tbl, "combat")

	game := types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Intro:   getString(tbl, "intro"),
		Start:   types.LocationID(getString(tbl, "start")),

		MaxHealth: getInt(player, "health"),
		StartGold: getInt(player, "gold"),

		StarterWeapon:   getString(tbl, "starter_weapon"),
		ShopItem:        getString(shop, "item"),
		ShopPrice:       getInt(shop, "price"),
		CaveItem:        getString(tbl, "cave_item"),
		LegendaryItem:   getString(tbl, "legendary"),
		Boss:            getString(tbl, "boss"),
		ForestEnemies:   getStrings(forest, "enemies"),
		EncounterChance: getNumber(forest, "encounter_chance"),
		TreasureGold:    getInt(tbl, "treasure"),
	}

	game.Combat.AttackMin, game.Combat.AttackMax = getRange(combat, "attack")
	game.Combat.RewardMin, game.Combat.RewardMax = getRange(combat, "reward")
	game.Combat.EnemyMinDamage = getInt(combat, "enemy_min_damage")
	game.Combat.FleeChance = getNumber(combat, "flee_chance")

	return game
}

func compileLocation(raw rawDef) types.LocationDef {
	tbl := raw.table
	loc := types.LocationDef{
		ID:          types.LocationID(raw.id),
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Retreat:     types.LocationID(getString(tbl, "retreat")),
		Rumors:      getStrings(tbl, "rumors"),
	}
	for _, opt := range getStrings(tbl, "options") {
		loc.Options = append(loc.Options, types.LocationID(opt))
	}
	return loc
}

func compileItem(raw rawDef) (types.Item, error) {
	tbl := raw.table
	kind := types.ItemKind(getString(tbl, "kind"))
	switch kind {
	case types.ItemWeapon, types.ItemPotion, types.ItemKey:
	default:
		return types.Item{}, fmt.Errorf("%s unknown item kind %q", raw.where, kind)
	}
	return types.Item{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Value:       getInt(tbl, "value"),
		Kind:        kind,
	}, nil
}

func compileEnemy(raw rawDef) types.Enemy {
	tbl := raw.table
	return types.Enemy{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Health:      getInt(tbl, "health"),
		MaxDamage:   getInt(tbl, "damage"),
	}
}

// sortedLuaFiles returns .lua file names with game.lua first
// and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
