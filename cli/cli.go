// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for Dragon's Quest.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/nathoo/dragonsquest/types"
)

// ErrUnexpected wraps a failure recovered from the game loop.
var ErrUnexpected = errors.New("unexpected error")

// Farewell is printed when the session is interrupted.
const Farewell = "Game interrupted. See you soon!"

// UnexpectedLine is what the player sees after a recovered failure.
func UnexpectedLine(r any) string {
	return fmt.Sprintf("Unexpected error: %v", r)
}

// Game is the engine surface the terminal drives. *engine.Engine satisfies it.
type Game interface {
	Begin(name string) types.Result
	Step(input string) types.Result
	Prompt() []string
	Snapshot() []string
}

// CLI handles terminal interaction with the player.
type CLI struct {
	Game      Game
	Title     string
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool          // echo each input line after the prompt (for script playback)
	TypeDelay time.Duration // per-character delay for narrative output
	Log       *slog.Logger
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given game on stdin/stdout.
func New(game Game, title string) *CLI {
	return &CLI{
		Game:  game,
		Title: title,
		In:    os.Stdin,
		Out:   os.Stdout,
		Log:   slog.Default(),
	}
}

// Run starts the game loop: banner, name prompt, then prompt -> input ->
// dispatch -> output until the session ends, input runs out, or ctx is
// cancelled. A panic inside the loop is recovered and returned wrapped in
// ErrUnexpected.
func (c *CLI) Run(ctx context.Context) (err error) {
	if c.Log == nil {
		c.Log = slog.Default()
	}
	defer func() {
		if r := recover(); r != nil {
			c.Log.Error("game loop failed", "panic", r)
			c.printLine("")
			c.printLine(UnexpectedLine(r))
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()

	done := make(chan struct{})
	defer close(done)
	lines := readLines(c.In, done)

	c.printBanner()
	c.print("What is your name? ")
	name, ok, interrupted := c.readLine(ctx, lines)
	if interrupted {
		c.farewell()
		return nil
	}
	if !ok {
		return nil
	}
	if c.EchoInput {
		c.printLine(name)
	}
	result := c.Game.Begin(name)
	c.printResult(result)

	for {
		if result.Outcome != types.OutcomeContinue {
			return nil
		}

		c.printLine("")
		for _, line := range c.Game.Prompt() {
			c.printLine(line)
		}
		c.print("> ")

		input, ok, interrupted := c.readLine(ctx, lines)
		if interrupted {
			c.farewell()
			return nil
		}
		if !ok {
			return nil
		}
		input = strings.TrimSpace(input)
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return nil // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printSystem("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else if input != "" {
			c.lastCmd = input
		}

		result = c.Game.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// readLines feeds input lines to a channel until EOF or done closes.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}

// readLine waits for the next line. ok is false once input is exhausted.
func (c *CLI) readLine(ctx context.Context, lines <-chan string) (line string, ok, interrupted bool) {
	select {
	case <-ctx.Done():
		return "", false, true
	case line, ok = <-lines:
		return line, ok, false
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.ToLower(strings.Fields(input)[0])

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		for _, line := range c.Game.Snapshot() {
			c.printSystem(line)
		}

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// HelpLines lists the meta and game commands both front ends accept.
var HelpLines = []string{
	"System:",
	"  /quit         Exit game",
	"  /help         Show this help",
	"  /state        Debug: dump current state",
	"  /trace        Toggle debug trace output",
	"",
	"Game commands:",
	"  1..N          Choose a numbered option",
	"  <place>       Travel by name (e.g. forest)",
	"  i             Show inventory",
	"  q             Quit the game",
	"  again (g)     Repeat your last command",
}

func (c *CLI) cmdHelp() {
	for _, line := range HelpLines {
		c.printLine(line)
	}
}

func (c *CLI) printBanner() {
	title := strings.ToUpper(c.Title)
	if title == "" {
		title = "DRAGON'S QUEST"
	}
	bar := strings.Repeat("=", len(title)+8)
	c.printLine(bar)
	c.printLine("    " + title)
	c.printLine(bar)
	c.printLine("Welcome, adventurer!")
}

func (c *CLI) farewell() {
	c.printLine("")
	c.printLine(Farewell)
}

// TraceLines renders the effects and events of a step for /trace.
func TraceLines(result types.Result) []string {
	var lines []string
	if len(result.Effects) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s", e.Type))
		}
	}
	return lines
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range TraceLines(result) {
		c.printLine(line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.typeLine(line)
	}
}

// typeLine prints narrative text, one character at a time when TypeDelay is set.
func (c *CLI) typeLine(text string) {
	if c.TypeDelay <= 0 {
		c.printLine(text)
		return
	}
	for _, r := range text {
		fmt.Fprint(c.Out, string(r))
		time.Sleep(c.TypeDelay)
	}
	fmt.Fprintln(c.Out)
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
