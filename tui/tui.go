package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/dragonsquest/cli"
	"github.com/nathoo/dragonsquest/engine"
	"github.com/nathoo/dragonsquest/types"
)

// ErrInterrupted is returned by Run when the player pressed Ctrl-C or the
// context was cancelled before the game ended.
var ErrInterrupted = errors.New("game interrupted")

// entry is one unstyled transcript line. Lines are kept raw so the
// transcript can be re-wrapped when the terminal is resized.
type entry struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the Dragon's Quest TUI.
type Model struct {
	engine *engine.Engine
	title  string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	transcript []entry

	width       int
	height      int
	ready       bool
	trace       bool
	named       bool // the first submitted line is the player's name
	ended       bool // the session reached a terminal outcome
	quitting    bool
	interrupted bool
	failure     any // recovered panic from an engine call
	lastCmd     string
}

// outputMsg carries a block of transcript lines into the Update loop.
type outputMsg struct {
	echo   string // player input shown above the block, if any
	lines  []string
	system bool // meta-command output, shown bracketed
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, title string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "your name"
	ti.CharLimit = 64
	ti.PromptStyle = styleInputPrompt
	ti.Focus()

	return Model{
		engine:  eng,
		title:   title,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and blocks until the player leaves.
// Signals are left to ctx: cancelling it ends the session with
// ErrInterrupted. A failed turn returns an error wrapping cli.ErrUnexpected.
func Run(ctx context.Context, eng *engine.Engine, title string) error {
	p := tea.NewProgram(New(eng, title),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)
	final, err := p.Run()
	m, _ := final.(Model)

	err = exitError(err, m)
	if m.failure != nil {
		// The alt screen is gone; repeat the failure on the normal terminal.
		fmt.Println(cli.UnexpectedLine(m.failure))
	}
	return err
}

// exitError maps how the program ended to the error Run reports.
func exitError(err error, final Model) error {
	switch {
	case errors.Is(err, tea.ErrProgramPanic):
		return fmt.Errorf("%w: %w", cli.ErrUnexpected, err)
	case errors.Is(err, tea.ErrInterrupted), errors.Is(err, tea.ErrProgramKilled):
		return ErrInterrupted
	case err != nil:
		return err
	case final.failure != nil:
		return fmt.Errorf("%w: %v", cli.ErrUnexpected, final.failure)
	case final.interrupted:
		return ErrInterrupted
	}
	return nil
}

// Init shows the banner and asks for the player's name.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.banner)
}

func (m Model) banner() tea.Msg {
	title := strings.ToUpper(m.title)
	if title == "" {
		title = "DRAGON'S QUEST"
	}
	return outputMsg{lines: []string{
		"=== " + title + " ===",
		"Welcome, adventurer!",
		"",
		"What is your name?",
	}}
}

// Update handles key presses, resizes and transcript output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	case outputMsg:
		m = m.write(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize fits the viewport above the status bar and input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-2, 1)

	if m.ready {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	} else {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	}
	m.render()
}

// handleKey consumes the keys the model owns. Anything else goes to the
// text input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.interrupted = !m.ended
		return m, tea.Quit, true

	case "enter":
		m, cmd := m.submit()
		return m, cmd, true

	case "up":
		if line, ok := m.history.Older(m.input.Value()); ok {
			m.setInput(line)
		}
		return m, nil, true

	case "down":
		if m.history.Browsing() {
			line, _ := m.history.Newer()
			m.setInput(line)
		}
		return m, nil, true

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

func (m *Model) setInput(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
}

// submit processes the line in the input box.
func (m Model) submit() (Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()

	switch {
	case m.ended:
		m.quitting = true
		return m, tea.Quit

	case !m.named:
		m.named = true
		m.input.Placeholder = ""
		result, ok := m.safely(func() types.Result { return m.engine.Begin(line) })
		if !ok {
			return m.fail(line), nil
		}
		m = m.write(outputMsg{echo: line, lines: result.Output})
		return m.next(result), nil
	}

	m.history.Push(line)

	if strings.HasPrefix(line, "/") {
		out, quit := m.handleMeta(line)
		m = m.write(outputMsg{echo: line, lines: out, system: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	cmd := line
	if l := strings.ToLower(line); l == "again" || l == "g" {
		if m.lastCmd == "" {
			return m.write(outputMsg{echo: line, lines: []string{"Nothing to repeat."}, system: true}), nil
		}
		cmd = m.lastCmd
	}
	if cmd != "" {
		m.lastCmd = cmd
	}

	result, ok := m.safely(func() types.Result { return m.engine.Step(cmd) })
	if !ok {
		return m.fail(line), nil
	}
	lines := result.Output
	if m.trace {
		lines = append(lines, cli.TraceLines(result)...)
	}
	m = m.write(outputMsg{echo: line, lines: lines})
	return m.next(result), nil
}

// safely runs one engine call. A panic is logged and recorded as the
// session's failure instead of reaching the Bubble Tea runtime.
func (m *Model) safely(call func() types.Result) (result types.Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.engine.Log.Error("game loop failed", "panic", r)
			m.failure = r
			ok = false
		}
	}()
	return call(), true
}

// fail ends the session after a recovered failure.
func (m Model) fail(echo string) Model {
	m.ended = true
	return m.write(outputMsg{echo: echo, lines: []string{
		cli.UnexpectedLine(m.failure),
		"Press Enter to exit.",
	}, system: true})
}

// next shows the following menu, or the exit hint once the game is over.
func (m Model) next(result types.Result) Model {
	if result.Outcome != types.OutcomeContinue {
		m.ended = true
		return m.write(outputMsg{lines: []string{"Press Enter to exit."}, system: true})
	}
	return m.write(outputMsg{lines: m.engine.Prompt()})
}

// write appends a block to the transcript, followed by a blank separator.
func (m Model) write(msg outputMsg) Model {
	if msg.echo != "" {
		m.transcript = append(m.transcript, entry{text: msg.echo, kind: kindInput})
	}
	for _, line := range msg.lines {
		kind := kindSystem
		if !msg.system {
			kind = classifyLine(line)
		}
		m.transcript = append(m.transcript, entry{text: line, kind: kind})
	}
	m.transcript = append(m.transcript, entry{})

	m.render()
	return m
}

// render re-wraps the transcript at the current width into the viewport.
func (m *Model) render() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)

	out := make([]string, 0, len(m.transcript))
	for _, e := range m.transcript {
		out = append(out, e.render(width))
	}
	m.viewport.SetContent(strings.Join(out, "\n"))
	m.viewport.GotoBottom()
}

func (e entry) render(width int) string {
	if e.text == "" && e.kind != kindInput {
		return ""
	}
	switch e.kind {
	case kindInput:
		return styledPlayerInput(wordwrap.String(e.text, width-2))
	case kindSystem:
		if strings.HasPrefix(e.text, "[") {
			return styleSystem.Render(wordwrap.String(e.text, width))
		}
		return styledSystemMsg(wordwrap.String(e.text, width-2))
	}
	return styleFor(e.kind).Render(wordwrap.String(e.text, width))
}

// View renders the viewport, the status bar and the input line. The status
// bar appears once the player has a name.
func (m Model) View() string {
	switch {
	case m.quitting:
		return ""
	case !m.ready:
		return "Loading..."
	case !m.named:
		return m.viewport.View() + "\n\n" + m.input.View()
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta runs a slash command. quit reports whether the program should exit.
func (m *Model) handleMeta(line string) (out []string, quit bool) {
	name := strings.ToLower(strings.Fields(line)[0])

	switch name {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true
	case "/help":
		return append(append([]string{}, cli.HelpLines...), "", "PgUp/PgDn scroll, Up/Down recall commands"), false
	case "/state":
		return m.engine.Snapshot(), false
	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false
	}
	return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", name)}, false
}

// viewportKeyMap scrolls by page only. Up and Down recall history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
