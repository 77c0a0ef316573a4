// Dragon's Quest is a menu-driven text adventure played in the terminal.
// Usage: dragonsquest [--version] [--plain] [--script <file>] [--trace] [--seed N] [--content DIR]
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/nathoo/dragonsquest/cli"
	"github.com/nathoo/dragonsquest/config"
	"github.com/nathoo/dragonsquest/content"
	"github.com/nathoo/dragonsquest/engine"
	"github.com/nathoo/dragonsquest/engine/state"
	"github.com/nathoo/dragonsquest/loader"
	"github.com/nathoo/dragonsquest/logger"
	"github.com/nathoo/dragonsquest/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: dragonsquest [--version] [--plain] [--script <file>] [--trace] [--seed N] [--content DIR]"

type options struct {
	plain      bool
	trace      bool
	seed       int64
	seedSet    bool
	contentDir string
	scriptFile string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, done, err := parseArgs(args)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.seedSet {
		cfg.Seed = opts.seed
	}
	if opts.contentDir != "" {
		cfg.ContentDir = opts.contentDir
	}

	log, closeLog, err := logger.Setup(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log, sessionID := logger.WithSession(log)

	defs, err := loadContent(cfg.ContentDir)
	if err != nil {
		logger.WithError(log, err).Error("loading content failed")
		return fmt.Errorf("loading game: %w", err)
	}

	seed := cfg.SeedOrClock()
	eng := engine.New(defs, engine.NewRNG(seed))
	eng.Log = log
	log.Info("starting", "version", version, "seed", seed, "session_id", sessionID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Script mode: read commands from a file, force plain, echo commands.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c := newCLI(eng, defs, cfg, log, opts.trace)
		c.In = f
		c.EchoInput = true
		return playCLI(ctx, c, log)
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if opts.plain || !isTerminal() {
		return playCLI(ctx, newCLI(eng, defs, cfg, log, opts.trace), log)
	}

	return finish(tui.Run(ctx, eng, defs.Game.Title), log)
}

// finish turns how the TUI ended into the process result. An interrupt
// says goodbye; a recovered failure was already shown, so it is only logged.
func finish(err error, log *slog.Logger) error {
	switch {
	case errors.Is(err, tui.ErrInterrupted):
		fmt.Println(cli.Farewell)
		return nil
	case errors.Is(err, cli.ErrUnexpected):
		logger.WithError(log, err).Error("session aborted")
		return nil
	}
	return err
}

// parseArgs reads command-line flags. done is true when the invocation was
// fully handled (e.g. --version).
func parseArgs(args []string) (opts options, done bool, err error) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("dragonsquest %s (commit %s, built %s)\n", version, commit, date)
			return opts, true, nil
		case "--help", "-h":
			fmt.Println(usage)
			return opts, true, nil
		case "--plain":
			opts.plain = true
		case "--trace":
			opts.trace = true
		case "--script", "--seed", "--content":
			if i+1 >= len(args) {
				return opts, false, fmt.Errorf("%s requires a value\n%s", args[i], usage)
			}
			i++
			switch args[i-1] {
			case "--script":
				opts.scriptFile = args[i]
			case "--content":
				opts.contentDir = args[i]
			case "--seed":
				opts.seed, err = strconv.ParseInt(args[i], 10, 64)
				if err != nil {
					return opts, false, fmt.Errorf("invalid --seed %q: %w", args[i], err)
				}
				opts.seedSet = true
			}
		default:
			return opts, false, fmt.Errorf("unknown argument %q\n%s", args[i], usage)
		}
	}
	return opts, false, nil
}

// loadContent compiles the Lua content from dir, or the embedded content
// when dir is empty.
func loadContent(dir string) (*state.Defs, error) {
	if dir != "" {
		return loader.Load(dir)
	}
	return loader.LoadFS(content.FS)
}

func newCLI(eng *engine.Engine, defs *state.Defs, cfg *config.Config, log *slog.Logger, trace bool) *cli.CLI {
	c := cli.New(eng, defs.Game.Title)
	c.Trace = trace
	c.TypeDelay = cfg.TypeDelay
	c.Log = log
	return c
}

// playCLI runs the plain loop. A recovered failure has already been
// reported to the player, so it only reaches the log.
func playCLI(ctx context.Context, c *cli.CLI, log *slog.Logger) error {
	if err := c.Run(ctx); err != nil {
		if errors.Is(err, cli.ErrUnexpected) {
			logger.WithError(log, err).Error("session aborted")
			return nil
		}
		return err
	}
	return nil
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
