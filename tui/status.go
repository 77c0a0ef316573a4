package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/types"
)

// renderStatusBar produces a full-width inverted status line showing the
// current location, health, gold, inventory and turn count. During a fight
// the enemy replaces the location and the bar turns red.
func (m Model) renderStatusBar() string {
	s := m.engine.State
	p := s.Player

	where := state.LocationName(m.engine.Defs, p.Location)
	style := styleStatusBar
	if state.InCombat(s) {
		where = fmt.Sprintf("%s vs %s (%d)", where, s.Combat.Enemy.Name, s.Combat.Enemy.Health)
		style = styleStatusDanger
	}

	left := fmt.Sprintf(" %s | HP %d/%d | Gold %d", where, max(p.Health, 0), p.MaxHealth, p.Gold)
	right := fmt.Sprintf("T:%d ", s.TurnCount)

	// Show inventory items if they fit, otherwise just count.
	if n := len(p.Inventory); n > 0 {
		candidate := fmt.Sprintf("Inv: %s | T:%d ", inventoryNames(p.Inventory), s.TurnCount)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", n, s.TurnCount)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return style.Width(m.width).Render(bar)
}

func inventoryNames(items []types.Item) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}
