package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/dragonsquest/engine/resolve"
)

// Recoverable input errors. None of them are fatal; the player is re-prompted.
var (
	ErrInvalidSelection    = errors.New("invalid selection")
	ErrUnrecognizedCommand = errors.New("unrecognized command")
	ErrInsufficientGold    = errors.New("insufficient gold")
	ErrNoPotions           = errors.New("no potions")
	ErrGameOver            = errors.New("game over")
)

// message converts an error into the line shown to the player.
func message(err error) string {
	var nf *resolve.NotFoundError
	var ae *resolve.AmbiguityError
	switch {
	case errors.Is(err, ErrInvalidSelection):
		return "Invalid choice!"
	case errors.Is(err, ErrUnrecognizedCommand):
		return "Unrecognized command! Type ? for help."
	case errors.Is(err, ErrInsufficientGold):
		return "You don't have enough gold."
	case errors.Is(err, ErrNoPotions):
		return "You have no potions!"
	case errors.Is(err, ErrGameOver):
		return "The game is over."
	case errors.As(err, &nf):
		return "You can't get there from here."
	case errors.As(err, &ae):
		return fmt.Sprintf("Did you mean %s?", strings.Join(ae.Candidates, " or "))
	default:
		return "Something went wrong."
	}
}
