// Package state manages the mutable game state and lookups with override
// layering (runtime state overrides base definitions).
package state

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/dragonsquest/types"
)

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game      types.GameDef
	Locations map[types.LocationID]types.LocationDef
	Items     map[string]types.Item
	Enemies   map[string]types.Enemy
}

// NewState creates a fresh game state from definitions.
func NewState(defs *Defs) *types.State {
	return &types.State{
		Player: types.Player{
			Health:    defs.Game.MaxHealth,
			MaxHealth: defs.Game.MaxHealth,
			Gold:      defs.Game.StartGold,
			Inventory: []types.Item{},
			Location:  defs.Game.Start,
		},
		Options:    map[types.LocationID][]types.LocationID{},
		Mode:       types.ModeExplore,
		Outcome:    types.OutcomeContinue,
		CommandLog: []string{},
	}
}

// AddItem appends a copy of item to the inventory. Duplicates are allowed.
func AddItem(s *types.State, item types.Item) {
	s.Player.Inventory = append(s.Player.Inventory, item)
}

// RemoveItem removes the first inventory entry equal to item.
// Returns false if no entry matched.
func RemoveItem(s *types.State, item types.Item) bool {
	for i, it := range s.Player.Inventory {
		if it == item {
			s.Player.Inventory = append(s.Player.Inventory[:i], s.Player.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// HasItemNamed reports whether the inventory holds an item with exactly this name.
func HasItemNamed(s *types.State, name string) bool {
	for _, it := range s.Player.Inventory {
		if it.Name == name {
			return true
		}
	}
	return false
}

// Equip sets the equipped weapon, replacing whatever was equipped.
func Equip(s *types.State, item types.Item) {
	equipped := item
	s.Player.Equipped = &equipped
}

// Potions returns the potions in the inventory, in inventory order.
func Potions(s *types.State) []types.Item {
	var potions []types.Item
	for _, it := range s.Player.Inventory {
		if it.Kind == types.ItemPotion {
			potions = append(potions, it)
		}
	}
	return potions
}

// UsePotion drinks the potion at index (0-based into Potions). Health is
// capped at MaxHealth and one matching potion leaves the inventory.
// Returns the potion and false with no state change if the index is invalid.
func UsePotion(s *types.State, index int) (types.Item, bool) {
	potions := Potions(s)
	if index < 0 || index >= len(potions) {
		return types.Item{}, false
	}
	potion := potions[index]
	Heal(s, potion.Value)
	RemoveItem(s, potion)
	return potion, true
}

// Heal raises health by amount, capped at MaxHealth. Returns the new health.
func Heal(s *types.State, amount int) int {
	s.Player.Health += amount
	if s.Player.Health > s.Player.MaxHealth {
		s.Player.Health = s.Player.MaxHealth
	}
	return s.Player.Health
}

// Damage lowers health by amount. The result is not clamped; callers check <= 0.
func Damage(s *types.State, amount int) int {
	s.Player.Health -= amount
	return s.Player.Health
}

// RestoreHealth sets health to MaxHealth.
func RestoreHealth(s *types.State) {
	s.Player.Health = s.Player.MaxHealth
}

// InCombat returns true if an encounter is active.
func InCombat(s *types.State) bool {
	return s.Combat.Active
}

// LocationOptions returns the effective options for a location. A runtime
// override, if present, replaces the base options. The slice is a copy.
func LocationOptions(s *types.State, defs *Defs, id types.LocationID) []types.LocationID {
	if opts, ok := s.Options[id]; ok {
		return append([]types.LocationID(nil), opts...)
	}
	loc, ok := defs.Locations[id]
	if !ok {
		return nil
	}
	return append([]types.LocationID(nil), loc.Options...)
}

// SetLocationOptions overrides a location's options for the rest of the session.
func SetLocationOptions(s *types.State, id types.LocationID, opts []types.LocationID) {
	if s.Options == nil {
		s.Options = map[types.LocationID][]types.LocationID{}
	}
	s.Options[id] = append([]types.LocationID(nil), opts...)
}

// NewEncounter returns a fresh copy of an enemy template at full health.
func NewEncounter(defs *Defs, enemyID string) (types.Enemy, bool) {
	tmpl, ok := defs.Enemies[enemyID]
	if !ok {
		return types.Enemy{}, false
	}
	return tmpl, true
}

// LocationName returns the display name of a location. Locations without a
// name fall back to a title-cased ID: "dragon_lair" -> "Dragon Lair".
func LocationName(defs *Defs, id types.LocationID) string {
	if loc, ok := defs.Locations[id]; ok && loc.Name != "" {
		return loc.Name
	}
	words := strings.ReplaceAll(string(id), "_", " ")
	return cases.Title(language.English).String(words)
}
