package engine

import (
	"fmt"

	"github.com/nathoo/dragonsquest/engine/effects"
	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// arrivalHandler decides what happens when the player arrives somewhere.
// Handlers may draw from the RNG but never mutate state directly.
type arrivalHandler func(e *Engine) []types.Effect

var arrivalHandlers = map[types.LocationID]arrivalHandler{
	types.LocationVillage:    arriveVillage,
	types.LocationShop:       arriveShop,
	types.LocationTavern:     arriveTavern,
	types.LocationForest:     arriveForest,
	types.LocationCave:       arriveCave,
	types.LocationLake:       arriveLake,
	types.LocationDragonLair: arriveDragonLair,
}

func arriveVillage(e *Engine) []types.Effect {
	weapon := e.Defs.Game.StarterWeapon
	return []types.Effect{
		say(fmt.Sprintf("An old sage hands you a %s!", e.Defs.Items[weapon].Name)),
		{Type: effects.GiveItem, Params: map[string]any{"item": weapon}},
		{Type: effects.EquipItem, Params: map[string]any{"item": weapon}},
	}
}

func arriveShop(e *Engine) []types.Effect {
	return []types.Effect{
		say("Welcome to Merlin's shop!"),
		{Type: effects.OpenShop},
	}
}

func arriveTavern(e *Engine) []types.Effect {
	rumors := e.Defs.Locations[types.LocationTavern].Rumors
	if len(rumors) == 0 {
		return nil
	}
	return []types.Effect{say(rumors[e.RNG.Pick(len(rumors))])}
}

func arriveForest(e *Engine) []types.Effect {
	game := e.Defs.Game
	if len(game.ForestEnemies) == 0 || !e.RNG.Chance(game.EncounterChance) {
		return nil
	}
	enemy := game.ForestEnemies[e.RNG.Pick(len(game.ForestEnemies))]
	return []types.Effect{
		{Type: effects.StartCombat, Params: map[string]any{"enemy": enemy}},
	}
}

func arriveCave(e *Engine) []types.Effect {
	item := e.Defs.Game.CaveItem
	return []types.Effect{
		say(fmt.Sprintf("You found something: %s!", e.Defs.Items[item].Name)),
		{Type: effects.GiveItem, Params: map[string]any{"item": item}},
	}
}

func arriveLake(e *Engine) []types.Effect {
	return []types.Effect{
		say("The magical waters restore your health!"),
		{Type: effects.RestoreHealth},
	}
}

func arriveDragonLair(e *Engine) []types.Effect {
	game := e.Defs.Game
	legendary := e.Defs.Items[game.LegendaryItem].Name
	effs := []types.Effect{say("TREASURE FOUND! But the dragon guards it fiercely!")}

	if state.HasItemNamed(e.State, legendary) {
		return append(effs,
			say(fmt.Sprintf("You carry the %s! You can face the dragon!", legendary)),
			types.Effect{Type: effects.StartCombat, Params: map[string]any{"enemy": game.Boss, "final": true}},
		)
	}

	retreat := e.Defs.Locations[types.LocationDragonLair].Retreat
	return append(effs,
		say(fmt.Sprintf("You need the %s!", legendary)),
		say("The dragon is too strong! Flee while you can!"),
		types.Effect{Type: effects.PruneOptions, Params: map[string]any{
			"location": types.LocationDragonLair,
			"keep":     []types.LocationID{retreat},
		}},
	)
}
