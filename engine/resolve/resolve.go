// Package resolve maps destination names typed by the player to location IDs.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// AmbiguityError indicates multiple destinations matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no reachable destination matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you can't go to %q from here", e.Name)
}

// Destination resolves a name against the options of the player's current
// location. Exact ID or display-name matches win over prefix matches.
func Destination(s *types.State, defs *state.Defs, name string) (types.LocationID, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "the ")
	if name == "" {
		return "", &NotFoundError{Name: name}
	}

	options := state.LocationOptions(s, defs, s.Player.Location)

	// 1. Exact ID or display name.
	for _, id := range options {
		if string(id) == name || strings.ToLower(state.LocationName(defs, id)) == name {
			return id, nil
		}
	}

	// 2. Prefix of ID or any word of the display name.
	var matches []types.LocationID
	for _, id := range options {
		if matchesPrefix(defs, id, name) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: name}
	case 1:
		return matches[0], nil
	default:
		candidates := make([]string, 0, len(matches))
		for _, id := range matches {
			candidates = append(candidates, state.LocationName(defs, id))
		}
		return "", &AmbiguityError{Name: name, Candidates: candidates}
	}
}

// matchesPrefix checks if name is a prefix of the location ID, the display
// name, or one of the display name's words.
func matchesPrefix(defs *state.Defs, id types.LocationID, name string) bool {
	if strings.HasPrefix(string(id), name) {
		return true
	}
	display := strings.ToLower(state.LocationName(defs, id))
	if strings.HasPrefix(display, name) {
		return true
	}
	for _, word := range strings.Fields(display) {
		if strings.HasPrefix(word, name) {
			return true
		}
	}
	return false
}
