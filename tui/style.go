package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusDanger = lipgloss.NewStyle().
				Background(lipgloss.Color("52")).
				Foreground(lipgloss.Color("230")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleMenu = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindHeading
	kindMenu
	kindCombat
	kindReward
	kindSystem
	kindError
	kindTrace
	kindInput
)

var errorPrefixes = []string{
	"Invalid choice!",
	"Unrecognized command!",
	"You can't",
	"You don't have",
	"You have no",
	"You need the",
	"Did you mean",
	"The game is over.",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case hasAnyPrefix(line, errorPrefixes):
		return kindError
	case strings.HasPrefix(line, "==="),
		strings.HasPrefix(line, "Location:"),
		line == "GAME OVER":
		return kindHeading
	case isMenuLine(line):
		return kindMenu
	case strings.HasPrefix(line, "ENCOUNTER"),
		strings.Contains(line, " damage to "),
		strings.Contains(line, "defeated"),
		strings.HasPrefix(line, "You failed to flee"):
		return kindCombat
	case strings.HasPrefix(line, "You gained"),
		strings.Contains(line, "added to your inventory"),
		strings.HasPrefix(line, "TREASURE"),
		strings.HasPrefix(line, "You found"):
		return kindReward
	default:
		return kindNarrative
	}
}

// isMenuLine reports whether line is a menu entry like "1. FOREST" or "Q. Quit".
func isMenuLine(line string) bool {
	dot := strings.Index(line, ". ")
	if dot < 1 {
		return false
	}
	key := line[:dot]
	if key == "I" || key == "Q" {
		return true
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// styleFor returns the style used for a narrative line of the given kind.
func styleFor(kind lineKind) lipgloss.Style {
	switch kind {
	case kindHeading:
		return styleHeading
	case kindMenu:
		return styleMenu
	case kindCombat:
		return styleCombat
	case kindReward:
		return styleReward
	case kindSystem:
		return styleSystem
	case kindError:
		return styleError
	case kindTrace:
		return styleTrace
	case kindInput:
		return stylePlayerInput
	default:
		return styleNarrative
	}
}

// styledPlayerInput renders the echoed player input in green with "> " prefix.
func styledPlayerInput(input string) string {
	return stylePlayerInput.Render("> " + input)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
