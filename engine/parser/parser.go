// Package parser converts menu input into Command structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/dragonsquest/types"
)

var commandAliases = map[string]types.CommandKind{
	"i":         types.CommandInventory,
	"inv":       types.CommandInventory,
	"inventory": types.CommandInventory,

	"q":    types.CommandQuit,
	"quit": types.CommandQuit,
	"exit": types.CommandQuit,

	"h":    types.CommandHelp,
	"?":    types.CommandHelp,
	"help": types.CommandHelp,
}

// Movement prefixes stripped before a destination name, longest first.
var movePrefixes = []string{
	"go to ",
	"travel to ",
	"walk to ",
	"go ",
	"walk ",
	"travel ",
}

// Parse converts a line of input into a Command.
func Parse(input string) types.Command {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return types.Command{Kind: types.CommandEmpty}
	}

	if kind, ok := commandAliases[s]; ok {
		return types.Command{Kind: kind}
	}

	if isDigits(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			// Too large to be a menu entry.
			n = 0
		}
		return types.Command{Kind: types.CommandChoice, Choice: n}
	}

	for _, prefix := range movePrefixes {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	return types.Command{Kind: types.CommandWord, Word: strings.Join(strings.Fields(s), " ")}
}

// Index converts a 1-based menu selection into a 0-based index into a list
// of n entries. Returns false for non-numeric or out-of-range input.
func Index(input string, n int) (int, bool) {
	s := strings.TrimSpace(input)
	if !isDigits(s) {
		return 0, false
	}
	choice, err := strconv.Atoi(s)
	if err != nil || choice < 1 || choice > n {
		return 0, false
	}
	return choice - 1, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
