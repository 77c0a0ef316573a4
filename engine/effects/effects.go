// Package effects implements centralized state mutation via the Apply function.
// Every effect type is one atomic operation. No decisions in effects.
package effects

import (
	"fmt"

	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// Effect types.
const (
	Say           = "say"
	MovePlayer    = "move_player"
	GiveItem      = "give_item"
	EquipItem     = "equip"
	RestoreHealth = "restore_health"
	SpendGold     = "spend_gold"
	GainGold      = "gain_gold"
	OpenShop      = "open_shop"
	CloseShop     = "close_shop"
	StartCombat   = "start_combat"
	EndCombat     = "end_combat"
	PruneOptions  = "prune_options"
	Victory       = "victory"
)

// Apply applies a list of effects to the game state, mutating it.
// Returns events emitted and output text collected.
func Apply(s *types.State, defs *state.Defs, effects []types.Effect) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, eff := range effects {
		switch eff.Type {
		case Say:
			text, _ := eff.Params["text"].(string)
			output = append(output, text)

		case MovePlayer:
			loc := toLocation(eff.Params["location"])
			s.Player.Location = loc
			events = append(events, types.Event{
				Type: "location_entered",
				Data: map[string]any{"location": string(loc)},
			})

		case GiveItem:
			itemID, _ := eff.Params["item"].(string)
			item, ok := defs.Items[itemID]
			if !ok {
				continue
			}
			state.AddItem(s, item)
			output = append(output, fmt.Sprintf("%s added to your inventory!", item.Name))
			events = append(events, types.Event{
				Type: "item_added",
				Data: map[string]any{"item": itemID},
			})

		case EquipItem:
			itemID, _ := eff.Params["item"].(string)
			item, ok := defs.Items[itemID]
			if !ok || item.Kind != types.ItemWeapon {
				continue
			}
			state.Equip(s, item)
			output = append(output, fmt.Sprintf("You equip the %s.", item.Name))
			events = append(events, types.Event{
				Type: "item_equipped",
				Data: map[string]any{"item": itemID},
			})

		case RestoreHealth:
			state.RestoreHealth(s)
			output = append(output, fmt.Sprintf("Health restored: %d", s.Player.Health))
			events = append(events, types.Event{
				Type: "health_restored",
				Data: map[string]any{"health": s.Player.Health},
			})

		case SpendGold:
			amount := toInt(eff.Params["amount"])
			s.Player.Gold -= amount
			events = append(events, types.Event{
				Type: "gold_spent",
				Data: map[string]any{"amount": amount, "gold": s.Player.Gold},
			})

		case GainGold:
			amount := toInt(eff.Params["amount"])
			s.Player.Gold += amount
			output = append(output, fmt.Sprintf("You gained %d gold!", amount))
			events = append(events, types.Event{
				Type: "gold_gained",
				Data: map[string]any{"amount": amount, "gold": s.Player.Gold},
			})

		case OpenShop:
			s.Mode = types.ModeShop

		case CloseShop:
			s.Mode = types.ModeExplore

		case StartCombat:
			enemyID, _ := eff.Params["enemy"].(string)
			final, _ := eff.Params["final"].(bool)
			enemy, ok := state.NewEncounter(defs, enemyID)
			if !ok {
				continue
			}
			s.Combat = types.CombatState{Active: true, Enemy: enemy, Final: final}
			s.LastCombat = types.CombatOngoing
			s.Mode = types.ModeCombat
			output = append(output, fmt.Sprintf("ENCOUNTER: %s appears!", enemy.Name))
			if enemy.Description != "" {
				output = append(output, enemy.Description)
			}
			events = append(events, types.Event{
				Type: "combat_started",
				Data: map[string]any{"enemy": enemyID, "final": final},
			})

		case EndCombat:
			status, _ := eff.Params["status"].(types.CombatStatus)
			enemyID := s.Combat.Enemy.ID // capture before clearing
			s.Combat = types.CombatState{}
			s.LastCombat = status
			s.Mode = types.ModeExplore
			if status == types.CombatPlayerDefeated {
				s.Outcome = types.OutcomeLost
			}
			events = append(events, types.Event{
				Type: "combat_ended",
				Data: map[string]any{"enemy": enemyID, "status": statusName(status)},
			})

		case PruneOptions:
			loc := toLocation(eff.Params["location"])
			keep, _ := eff.Params["keep"].([]types.LocationID)
			state.SetLocationOptions(s, loc, keep)
			events = append(events, types.Event{
				Type: "options_pruned",
				Data: map[string]any{"location": string(loc), "keep": len(keep)},
			})

		case Victory:
			s.Outcome = types.OutcomeWon
			output = append(output, victoryText(defs)...)
			events = append(events, types.Event{
				Type: "victory",
				Data: map[string]any{"player": s.Player.Name},
			})

		default:
			// Unknown effect types are ignored.
		}
	}

	return events, output
}

func victoryText(defs *state.Defs) []string {
	return []string{
		"=== VICTORY! ===",
		"The dragon has been defeated!",
		"Congratulations, hero! The kingdom is saved!",
		fmt.Sprintf("Treasure acquired: %d gold", defs.Game.TreasureGold),
		"Eternal fame is yours!",
	}
}

func statusName(status types.CombatStatus) string {
	switch status {
	case types.CombatPlayerWon:
		return "won"
	case types.CombatPlayerFled:
		return "fled"
	case types.CombatPlayerDefeated:
		return "defeated"
	default:
		return "ongoing"
	}
}

func toLocation(v any) types.LocationID {
	switch l := v.(type) {
	case types.LocationID:
		return l
	case string:
		return types.LocationID(l)
	default:
		return ""
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
