// Package engine provides the Step() orchestrator that wires together
// parsing, location events, combat, effects, and events into a single turn.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/dragonsquest/engine/effects"
	"github.com/nathoo/dragonsquest/engine/events"
	"github.com/nathoo/dragonsquest/engine/parser"
	"github.com/nathoo/dragonsquest/engine/resolve"
	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// Engine holds the game definitions and mutable state.
type Engine struct {
	Defs  *state.Defs
	State *types.State
	RNG   *RNG
	Log   *slog.Logger
}

// New creates a new engine from definitions. All randomness is drawn from rng.
func New(defs *state.Defs, rng *RNG) *Engine {
	s := state.NewState(defs)
	s.RNGSeed = rng.Seed()
	return &Engine{
		Defs:  defs,
		State: s,
		RNG:   rng,
		Log:   slog.Default(),
	}
}

// Begin names the player and returns the opening narration.
func (e *Engine) Begin(name string) types.Result {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Adventurer"
	}
	e.State.Player.Name = name
	e.Log.Info("session started", "player", name, "seed", e.State.RNGSeed)

	result := types.Result{Outcome: e.State.Outcome}
	result.Output = append(result.Output, fmt.Sprintf("%s, your epic journey begins now!", name))
	if e.Defs.Game.Intro != "" {
		result.Output = append(result.Output, e.Defs.Game.Intro)
	}
	return result
}

// Step processes one line of player input and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 0. Game over: block all gameplay input.
	if e.State.Outcome != types.OutcomeContinue {
		result.Output = append(result.Output, message(ErrGameOver))
		result.Outcome = e.State.Outcome
		return result
	}

	// 1. Log the command.
	e.State.CommandLog = append(e.State.CommandLog, input)

	// 2. Dispatch on what the engine is waiting for.
	switch e.State.Mode {
	case types.ModeCombat:
		e.stepCombat(&result, input)
	case types.ModePotion:
		e.stepPotion(&result, input)
	case types.ModeShop:
		e.stepShop(&result, input)
	default:
		e.stepExplore(&result, input)
	}

	// 3. Record events.
	events.Log(e.Log, e.State.TurnCount, result.Events)

	// 4. Track RNG position.
	e.State.RNGPosition = e.RNG.Position()

	// 5. Increment turn count.
	e.State.TurnCount++

	result.Outcome = e.State.Outcome
	if result.Outcome != types.OutcomeContinue {
		e.Log.Info("session ended", "outcome", outcomeName(result.Outcome), "turns", e.State.TurnCount)
	}
	return result
}

// Enter moves the player to a location and runs its arrival event. Every
// arrival re-triggers the event; there is no visited flag.
func (e *Engine) Enter(dest types.LocationID) types.Result {
	var result types.Result
	e.enter(&result, dest)
	events.Log(e.Log, e.State.TurnCount, result.Events)
	result.Outcome = e.State.Outcome
	return result
}

func (e *Engine) enter(result *types.Result, dest types.LocationID) {
	effs := []types.Effect{
		{Type: effects.MovePlayer, Params: map[string]any{"location": dest}},
	}
	if loc, ok := e.Defs.Locations[dest]; ok && loc.Description != "" {
		effs = append(effs, say(loc.Description))
	}
	e.apply(result, effs)

	if handler, ok := arrivalHandlers[dest]; ok {
		e.apply(result, handler(e))
	}
}

// stepExplore handles the main menu: movement, inventory, help, and quit.
func (e *Engine) stepExplore(result *types.Result, input string) {
	cmd := parser.Parse(input)

	switch cmd.Kind {
	case types.CommandEmpty:
		result.Output = append(result.Output, message(ErrUnrecognizedCommand))

	case types.CommandQuit:
		e.State.Outcome = types.OutcomeQuit
		result.Output = append(result.Output, "Until next time, adventurer!")

	case types.CommandInventory:
		result.Output = append(result.Output, e.Inventory()...)

	case types.CommandHelp:
		result.Output = append(result.Output, helpText...)

	case types.CommandChoice:
		options := state.LocationOptions(e.State, e.Defs, e.State.Player.Location)
		if cmd.Choice < 1 || cmd.Choice > len(options) {
			result.Output = append(result.Output, message(ErrInvalidSelection))
			return
		}
		e.enter(result, options[cmd.Choice-1])

	case types.CommandWord:
		dest, err := resolve.Destination(e.State, e.Defs, cmd.Word)
		if err != nil {
			var nf *resolve.NotFoundError
			if errors.As(err, &nf) && !e.isLocationName(cmd.Word) {
				err = ErrUnrecognizedCommand
			}
			result.Output = append(result.Output, message(err))
			return
		}
		e.enter(result, dest)
	}
}

// stepShop handles the single shop prompt. Any answer leaves the shop.
func (e *Engine) stepShop(result *types.Result, input string) {
	if strings.TrimSpace(input) != "1" {
		e.apply(result, []types.Effect{{Type: effects.CloseShop}})
		return
	}

	price := e.Defs.Game.ShopPrice
	if e.State.Player.Gold < price {
		result.Output = append(result.Output, message(ErrInsufficientGold))
		e.apply(result, []types.Effect{{Type: effects.CloseShop}})
		return
	}

	e.apply(result, []types.Effect{
		{Type: effects.SpendGold, Params: map[string]any{"amount": price}},
		{Type: effects.GiveItem, Params: map[string]any{"item": e.Defs.Game.ShopItem}},
		{Type: effects.CloseShop},
	})
}

// apply runs effects and folds their events and output into result.
func (e *Engine) apply(result *types.Result, effs []types.Effect) {
	if len(effs) == 0 {
		return
	}
	evts, output := effects.Apply(e.State, e.Defs, effs)
	result.Effects = append(result.Effects, effs...)
	result.Events = append(result.Events, evts...)
	result.Output = append(result.Output, output...)
}

// Prompt returns the menu for whatever input the engine is waiting for.
// Returns nil once the session has ended.
func (e *Engine) Prompt() []string {
	if e.State.Outcome != types.OutcomeContinue {
		return nil
	}

	p := e.State.Player
	switch e.State.Mode {
	case types.ModeShop:
		item := e.Defs.Items[e.Defs.Game.ShopItem]
		return []string{
			fmt.Sprintf("1. Buy %s - %d gold", item.Name, e.Defs.Game.ShopPrice),
			"2. Leave",
		}

	case types.ModeCombat:
		enemy := e.State.Combat.Enemy
		return []string{
			fmt.Sprintf("Your health: %d | %s: %d", p.Health, enemy.Name, enemy.Health),
			"1. Attack",
			"2. Use potion",
			"3. Flee",
		}

	case types.ModePotion:
		lines := []string{"Choose a potion:"}
		for i, potion := range state.Potions(e.State) {
			lines = append(lines, fmt.Sprintf("%d. %s (+%d HP)", i+1, potion.Name, potion.Value))
		}
		return lines

	default:
		lines := []string{
			fmt.Sprintf("Location: %s", shout(state.LocationName(e.Defs, p.Location))),
			fmt.Sprintf("Health: %d | Gold: %d", p.Health, p.Gold),
			"",
			"Where do you want to go?",
		}
		for i, id := range state.LocationOptions(e.State, e.Defs, p.Location) {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, shout(state.LocationName(e.Defs, id))))
		}
		return append(lines, "I. Inventory", "Q. Quit")
	}
}

// Inventory returns the inventory screen.
func (e *Engine) Inventory() []string {
	p := e.State.Player
	lines := []string{
		fmt.Sprintf("=== INVENTORY OF %s ===", shout(p.Name)),
		fmt.Sprintf("Health: %d/%d", max(p.Health, 0), p.MaxHealth),
		fmt.Sprintf("Gold: %d", p.Gold),
		"Items:",
	}
	if len(p.Inventory) == 0 {
		return append(lines, "  (nothing)")
	}
	equippedMarked := false
	for i, item := range p.Inventory {
		line := fmt.Sprintf("  %d. %s - %s", i+1, item.Name, item.Description)
		if !equippedMarked && p.Equipped != nil && item == *p.Equipped {
			line += " (equipped)"
			equippedMarked = true
		}
		lines = append(lines, line)
	}
	return lines
}

// Snapshot returns a debug dump of the current state.
func (e *Engine) Snapshot() []string {
	s := e.State
	names := make([]string, 0, len(s.Player.Inventory))
	for _, item := range s.Player.Inventory {
		names = append(names, item.Name)
	}
	lines := []string{
		fmt.Sprintf("Turn: %d", s.TurnCount),
		fmt.Sprintf("Location: %s", s.Player.Location),
		fmt.Sprintf("Mode: %s", s.Mode),
		fmt.Sprintf("Health: %d/%d", s.Player.Health, s.Player.MaxHealth),
		fmt.Sprintf("Gold: %d", s.Player.Gold),
		fmt.Sprintf("Inventory: [%s]", strings.Join(names, ", ")),
		fmt.Sprintf("RNG: seed %d, position %d", s.RNGSeed, e.RNG.Position()),
	}
	if s.Player.Equipped != nil {
		lines = append(lines, fmt.Sprintf("Equipped: %s", s.Player.Equipped.Name))
	}
	if len(s.Options) > 0 {
		lines = append(lines, fmt.Sprintf("Option overrides: %v", s.Options))
	}
	return lines
}

// isLocationName reports whether word names any defined location, reachable or not.
func (e *Engine) isLocationName(word string) bool {
	word = strings.TrimPrefix(word, "the ")
	for id := range e.Defs.Locations {
		if string(id) == word || strings.ToLower(state.LocationName(e.Defs, id)) == word {
			return true
		}
	}
	return false
}

var helpText = []string{
	"Commands:",
	"  1..N          Travel to the numbered destination",
	"  <place>       Travel by name (e.g. forest)",
	"  I             Show inventory",
	"  Q             Quit the game",
	"In combat: 1 attack, 2 use potion, 3 flee.",
}

// shout upper-cases menu headings with full Unicode case mapping
// ("Straße" -> "STRASSE").
func shout(s string) string {
	return cases.Upper(language.English).String(s)
}

func say(text string) types.Effect {
	return types.Effect{Type: effects.Say, Params: map[string]any{"text": text}}
}

func outcomeName(o types.Outcome) string {
	switch o {
	case types.OutcomeWon:
		return "won"
	case types.OutcomeLost:
		return "lost"
	case types.OutcomeQuit:
		return "quit"
	default:
		return "continue"
	}
}
