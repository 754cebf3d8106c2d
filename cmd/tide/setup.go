package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/stem-the-tide/internal/config"
	"github.com/vovakirdan/stem-the-tide/internal/engine"
	"github.com/vovakirdan/stem-the-tide/internal/game"
	"github.com/vovakirdan/stem-the-tide/internal/levels"
	"github.com/vovakirdan/stem-the-tide/internal/storage"
)

// newLogger creates a logger at the --log-level verbosity.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// fileLogger logs to ~/.tide/tide.log so full-screen runs are not torn by
// log output. Falls back to discarding when the file cannot be opened.
func fileLogger() (*log.Logger, func(), error) {
	noop := func() {}
	var w io.Writer = io.Discard
	closeFn := noop

	if dir := config.UserDir(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "tide.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger, err := newLogger(w, "tide")
	if err != nil {
		closeFn()
		return nil, noop, err
	}
	return logger, closeFn, nil
}

// setup is the configuration and level set every command starts from.
type setup struct {
	cfg    config.TideConfig
	levels []engine.Level
}

// loadSetup reads the config, applies --difficulty and loads the levels.
func loadSetup() (setup, error) {
	cfg, err := config.LoadTide(flagConfig)
	if err != nil {
		return setup{}, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return setup{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	lvls, err := levels.Open(flagLevelsDir, cfg.Geometry())
	if err != nil {
		return setup{}, err
	}
	if len(lvls) == 0 {
		return setup{}, engine.ErrNoLevels
	}
	return setup{cfg: cfg, levels: lvls}, nil
}

// gameOptions builds the game template for a run.
func (s setup) gameOptions(logger *log.Logger) game.Options {
	return game.Options{
		Levels:     s.levels,
		Engine:     s.cfg.EngineOptions(),
		ShowShadow: s.cfg.Display.ShowShadow,
		Logger:     logger,
	}
}

// findLevel resolves a level by ID or 1-based number.
func (s setup) findLevel(arg string) (int, error) {
	for i, lvl := range s.levels {
		if lvl.ID == arg {
			return i, nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err == nil && fmt.Sprint(n) == arg {
		if n >= 1 && n <= len(s.levels) {
			return n - 1, nil
		}
		return 0, fmt.Errorf("level %d out of range 1..%d", n, len(s.levels))
	}
	return 0, fmt.Errorf("unknown level %q, run 'tide levels' to list them", arg)
}

// openStore opens the results database. Failure is logged and play goes on
// without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
