// Package game adapts the flood engine to the platform's tick-driven game
// contract: it maps input actions to engine commands, feeds a fixed time step,
// renders snapshots into a screen buffer and reports level outcomes.
package game

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stem-the-tide/internal/core"
	"github.com/vovakirdan/stem-the-tide/internal/engine"
)

// ID is the identifier used for results and logging.
const ID = "tide"

// Banner durations, in wall time.
const clearedBannerFor = 2 * time.Second

// Options configures a game.
type Options struct {
	Levels     []engine.Level
	Engine     engine.Options
	StartLevel int  // 0-based index of the first level to play
	ShowShadow bool // Start with the shadow preview visible
	Logger     *log.Logger
}

// Game implements Stem the Tide on top of engine.Controller.
type Game struct {
	opts   Options
	logger *log.Logger

	ctrl *engine.Controller
	dt   time.Duration

	// Screen dimensions
	screenW int
	screenH int
	layout  layout

	showShadow bool
	paused     bool

	// Remaining wall time for the "level cleared" banner
	clearedBanner time.Duration
	lastCleared   string
}

// New creates a game. Fails if there are no levels to play.
func New(opts Options) (*Game, error) {
	if len(opts.Levels) == 0 {
		return nil, errors.New("game: no levels to play")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{opts: opts, logger: logger}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Stem the Tide"
}

// Reset starts a new run at the configured start level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	g.dt = time.Second / time.Duration(cfg.TickRate)
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	ctrl, err := engine.NewController(g.opts.Levels, g.opts.Engine)
	if err != nil {
		// New guarantees at least one level.
		panic(err)
	}
	ctrl.LoadLevel(g.opts.StartLevel)
	g.ctrl = ctrl

	g.showShadow = g.opts.ShowShadow
	g.paused = false
	g.clearedBanner = 0
	g.lastCleared = ""

	lvl := ctrl.Level()
	g.logger.Debug("run started", "level", lvl.ID, "levels", ctrl.LevelCount(), "dt", g.dt)
}

// Resize adapts the layout to new screen dimensions without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	opts := g.opts.Engine
	if opts.Width <= 0 || opts.Height <= 0 {
		def := engine.DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	g.layout = computeLayout(w, h, opts.Width, opts.Height)
}

// Controller exposes the engine for inspection.
func (g *Game) Controller() *engine.Controller {
	return g.ctrl
}

// ShadowVisible reports whether the shadow preview is drawn.
func (g *Game) ShadowVisible() bool {
	return g.showShadow
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionToggleShadow) {
		g.showShadow = !g.showShadow
	}

	for _, c := range in.Clicks {
		g.click(c)
	}
	for _, a := range in.Order {
		if cmd, ok := commandFor(a); ok {
			g.ctrl.Apply(cmd)
		}
	}

	if g.clearedBanner > 0 {
		g.clearedBanner -= g.dt
	}

	var result core.StepResult
	if rep, ok := g.ctrl.Tick(g.dt); ok {
		result.Outcomes = append(result.Outcomes, g.outcome(rep))
	}
	result.State = g.State()
	return result
}

// commandFor maps a movement or control action to an engine command.
func commandFor(a core.Action) (engine.Command, bool) {
	switch a {
	case core.ActionUp:
		return engine.MoveSelected(engine.DirUp), true
	case core.ActionDown:
		return engine.MoveSelected(engine.DirDown), true
	case core.ActionLeft:
		return engine.MoveSelected(engine.DirLeft), true
	case core.ActionRight:
		return engine.MoveSelected(engine.DirRight), true
	case core.ActionStart:
		return engine.StartFlood(), true
	case core.ActionReset:
		return engine.Reset(), true
	case core.ActionSelectNext:
		return engine.SelectNext(), true
	}
	return engine.Command{}, false
}

// click selects the barrier under a screen position. A half-block cell covers
// two grid rows; the upper one wins when both hold a barrier.
func (g *Game) click(p core.Point) {
	gx, gy, ok := g.layout.toGrid(p.X, p.Y)
	if !ok {
		return
	}
	reg := g.ctrl.Barriers()
	if reg.BarrierAt(gx, gy) == engine.NoSelection && gy+1 < g.ctrl.Grid().H {
		gy++
	}
	g.ctrl.Apply(engine.SelectBarrierAt(gx, gy))
}

func (g *Game) outcome(rep engine.Report) core.Outcome {
	if rep.Cleared {
		g.clearedBanner = clearedBannerFor
		g.lastCleared = g.opts.Levels[rep.Index].Name
		g.logger.Info("level cleared", "level", rep.LevelID, "ticks", rep.Ticks, "moves", rep.Moves)
		if g.ctrl.Status() == engine.StatusRunComplete {
			g.logger.Info("run complete", "levels", g.ctrl.LevelCount())
		}
	} else {
		g.logger.Info("level breached", "level", rep.LevelID, "ticks", rep.Ticks, "moves", rep.Moves)
	}
	return core.Outcome{
		LevelID: rep.LevelID,
		Cleared: rep.Cleared,
		Ticks:   rep.Ticks,
		Moves:   rep.Moves,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Level:       g.ctrl.LevelIndex() + 1,
		TotalLevels: g.ctrl.LevelCount(),
		Status:      g.ctrl.Status().String(),
		GameOver:    g.ctrl.Status() == engine.StatusRunComplete,
		Paused:      g.paused,
	}
}
