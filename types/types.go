// Package types defines the shared data structures for the Dragon's Quest engine.
// This package contains only type definitions and constants, no logic.
package types

// CommandKind classifies a parsed line of player input.
type CommandKind int

const (
	CommandEmpty CommandKind = iota
	CommandChoice
	CommandInventory
	CommandQuit
	CommandHelp
	CommandWord
)

// Command is the parsed representation of a player's menu input.
type Command struct {
	Kind   CommandKind
	Choice int    // 1-based menu number for CommandChoice
	Word   string // lowercased free text for CommandWord
}

// ItemKind classifies an item for gameplay purposes.
type ItemKind string

const (
	ItemWeapon ItemKind = "weapon"
	ItemPotion ItemKind = "potion"
	ItemKey    ItemKind = "key"
)

// Item is a catalog entry. Inventories hold copies.
type Item struct {
	ID          string
	Name        string
	Description string
	Value       int // weapon damage bonus, potion healing, 0 for keys
	Kind        ItemKind
}

// Enemy is a combat template from the catalog. Encounters work on a copy.
type Enemy struct {
	ID          string
	Name        string
	Description string
	Health      int
	MaxDamage   int
}

// LocationID identifies a location in the world graph.
type LocationID string

const (
	LocationVillage    LocationID = "village"
	LocationShop       LocationID = "loja"
	LocationTavern     LocationID = "taverna"
	LocationForest     LocationID = "floresta"
	LocationCave       LocationID = "caverna"
	LocationLake       LocationID = "lago"
	LocationDragonLair LocationID = "dragon_lair"
)

// Locations lists every location the engine knows how to handle.
var Locations = []LocationID{
	LocationVillage,
	LocationShop,
	LocationTavern,
	LocationForest,
	LocationCave,
	LocationLake,
	LocationDragonLair,
}

// LocationDef is the base definition of a location.
type LocationDef struct {
	ID          LocationID
	Name        string
	Description string
	Options     []LocationID // ordered, shown as menu entries 1..N
	Retreat     LocationID   // the edge kept when the location is sealed off
	Rumors      []string
}

// CombatRules holds the numeric ranges used by the combat resolver.
type CombatRules struct {
	AttackMin      int
	AttackMax      int
	EnemyMinDamage int
	RewardMin      int
	RewardMax      int
	FleeChance     float64
}

// GameDef holds game metadata and the catalog references used by location events.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
	Start   LocationID

	MaxHealth int
	StartGold int

	StarterWeapon   string   // item ID granted in the village
	ShopItem        string   // item ID sold in the shop
	ShopPrice       int
	CaveItem        string   // item ID found in the cave
	LegendaryItem   string   // item ID required to face the boss
	Boss            string   // enemy ID fought in the lair
	ForestEnemies   []string // enemy IDs for random encounters
	EncounterChance float64
	TreasureGold    int

	Combat CombatRules
}

// Player holds the player's runtime state.
type Player struct {
	Name      string
	Health    int
	MaxHealth int
	Gold      int
	Inventory []Item
	Equipped  *Item
	Location  LocationID
}

// Mode is the kind of input the engine is waiting for.
type Mode string

const (
	ModeExplore Mode = "explore"
	ModeShop    Mode = "shop"
	ModeCombat  Mode = "combat"
	ModePotion  Mode = "potion"
)

// CombatStatus is the state of an encounter.
type CombatStatus int

const (
	CombatOngoing CombatStatus = iota
	CombatPlayerWon
	CombatPlayerFled
	CombatPlayerDefeated
)

// CombatState tracks the active encounter.
type CombatState struct {
	Active bool
	Enemy  Enemy // per-encounter copy, mutated during the fight
	Final  bool  // true for the boss fight; winning it ends the game
	Round  int
}

// Outcome is the session result propagated through the game loop.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeQuit
)

// State is the complete mutable game state.
type State struct {
	Player      Player
	Options     map[LocationID][]LocationID // runtime overrides of location options
	Mode        Mode
	Combat      CombatState
	LastCombat  CombatStatus
	Outcome     Outcome
	TurnCount   int
	RNGSeed     int64
	RNGPosition int64
	CommandLog  []string
}

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// Event is emitted after effects are applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
	Outcome Outcome
}
