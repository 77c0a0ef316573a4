// Package tui provides a Bubble Tea terminal UI for Dragon's Quest.
package tui

// History keeps recently entered commands for Up/Down recall. While the
// player browses, the half-typed line they left is kept as a draft and
// handed back when they step past the newest entry.
type History struct {
	lines []string
	limit int
	pos   int // len(lines) when not browsing
	draft string
}

// NewHistory creates a history that remembers at most limit commands.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{lines: make([]string, 0, limit), limit: limit}
}

// Push records a command and stops browsing. Blank lines and repeats of the
// newest entry are not recorded.
func (h *History) Push(cmd string) {
	defer h.Reset()
	if cmd == "" {
		return
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == cmd {
		return
	}
	if len(h.lines) == h.limit {
		copy(h.lines, h.lines[1:])
		h.lines = h.lines[:len(h.lines)-1]
	}
	h.lines = append(h.lines, cmd)
}

// Older moves one entry back and returns it. draft is the current input
// line; it is saved when browsing starts. The oldest entry is sticky.
func (h *History) Older(draft string) (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if !h.Browsing() {
		h.draft = draft
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.lines[h.pos], true
}

// Newer moves one entry forward. Stepping past the newest entry ends
// browsing and returns the saved draft with ok false.
func (h *History) Newer() (string, bool) {
	if !h.Browsing() {
		return h.draft, false
	}
	h.pos++
	if h.pos == len(h.lines) {
		return h.draft, false
	}
	return h.lines[h.pos], true
}

// Browsing reports whether the cursor is on a past entry.
func (h *History) Browsing() bool {
	return h.pos < len(h.lines)
}

// Reset stops browsing and forgets the draft.
func (h *History) Reset() {
	h.pos = len(h.lines)
	h.draft = ""
}

// Len returns the number of remembered commands.
func (h *History) Len() int {
	return len(h.lines)
}
