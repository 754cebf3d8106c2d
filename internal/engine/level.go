package engine

import (
	"errors"
	"time"
)

// ErrNoLevels is returned when a controller is created without levels.
var ErrNoLevels = errors.New("engine: no levels to play")

// Level is the initial configuration of one stage.
type Level struct {
	ID       string
	Name     string
	Hint     string
	Zones    []PriorityZone
	Barriers []Barrier
	Source   Source
}

// Status is the controller's view of the run.
type Status uint8

const (
	StatusIdle Status = iota
	StatusFlooding
	StatusBreached
	StatusRunComplete
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusFlooding:
		return "flooding"
	case StatusBreached:
		return "breached"
	case StatusRunComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Options configures a controller.
type Options struct {
	Width, Height int
	Border        int

	// RowInterval is the flood pace when Pace is nil.
	RowInterval time.Duration

	// Pace, if set, returns the row interval for a level index.
	Pace func(level, total int) time.Duration
}

// DefaultOptions returns the 64×64 grid with a 3-cell metadata border.
func DefaultOptions() Options {
	return Options{
		Width:       64,
		Height:      64,
		Border:      3,
		RowInterval: DefaultRowInterval,
	}
}

// Report describes a finished level attempt.
type Report struct {
	LevelID string
	Index   int
	Cleared bool
	Ticks   int
	Moves   int
}

// Controller owns the level sequence and the simulation of the current level.
// It is not safe for concurrent use; one goroutine drives it tick by tick.
type Controller struct {
	opts   Options
	levels []Level
	index  int

	grid     *Grid
	barriers *Registry
	flood    *Flood
	status   Status
	ticks    int
}

// NewController creates a controller and loads the first level.
func NewController(levels []Level, opts Options) (*Controller, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	def := DefaultOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.Border < 0 {
		opts.Border = def.Border
	}
	c := &Controller{
		opts:   opts,
		levels: levels,
		grid:   NewGrid(opts.Width, opts.Height, opts.Border),
	}
	c.load(0)
	return c, nil
}

// LoadLevel jumps to level i, clamped to the valid range.
func (c *Controller) LoadLevel(i int) {
	c.load(max(0, min(i, len(c.levels)-1)))
}

// load replaces grid content, zones and barriers with level i's initial state.
func (c *Controller) load(i int) {
	c.index = i
	lvl := c.levels[i]

	c.grid.Fill(CellEmpty)
	c.drawProgress(false)
	c.seedSource(lvl.Source)
	for _, z := range lvl.Zones {
		c.grid.WriteRect(z.Rect(), CellPriorityDry)
	}
	c.barriers = NewRegistry(c.grid, lvl.Barriers)
	c.flood = NewFlood(c.grid, c.barriers, lvl.Zones, lvl.Source, c.interval(i))
	c.status = StatusIdle
	c.ticks = 0
}

func (c *Controller) interval(i int) time.Duration {
	if c.opts.Pace != nil {
		return c.opts.Pace(i, len(c.levels))
	}
	return c.opts.RowInterval
}

// seedSource marks the source row as tide across the playable columns.
func (c *Controller) seedSource(src Source) {
	if src.Row < 0 || src.Row >= c.grid.H {
		return
	}
	for x := c.grid.Border; x < c.grid.W-c.grid.Border; x++ {
		c.grid.Set(x, src.Row, CellTide)
	}
}

// drawProgress paints the metadata border and the level indicators.
// Indicators sit one cell apart, centred on the middle border row, and never
// reach the corner columns.
func (c *Controller) drawProgress(allPassed bool) {
	g := c.grid
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.IsPlayable(x, y) {
				g.Set(x, y, CellMetaEdge)
			}
		}
	}
	if g.Border == 0 {
		return
	}

	total := len(c.levels)
	row := g.Border / 2
	start := g.W/2 - (2*total-1)/2
	for i := 0; i < total; i++ {
		x := start + 2*i
		if x < g.Border || x >= g.W-g.Border {
			continue
		}
		switch {
		case allPassed || i < c.index:
			g.Set(x, row, CellLevelPassed)
		case i == c.index:
			g.Set(x, row, CellLevelCurrent)
		default:
			g.Set(x, row, CellLevelFuture)
		}
	}
}

// Apply executes a command. Returns true if the command asks to quit.
// Commands that do not fit the current status are ignored.
func (c *Controller) Apply(cmd Command) bool {
	switch cmd.Kind {
	case CmdQuit:
		return true
	case CmdReset:
		c.Reset()
	case CmdStartFlood:
		if c.status == StatusIdle && c.flood.Start() {
			c.status = StatusFlooding
		}
	case CmdSelectBarrierAt:
		if c.canEdit() {
			c.barriers.SelectAt(cmd.X, cmd.Y)
		}
	case CmdSelectNext:
		if c.canEdit() {
			c.barriers.SelectNext()
		}
	case CmdMoveSelected:
		if c.canEdit() {
			c.barriers.MoveSelected(cmd.Dir)
		}
	}
	return false
}

// canEdit reports whether barrier input is accepted.
// Barriers stay movable while the tide runs.
func (c *Controller) canEdit() bool {
	return c.status == StatusIdle || c.status == StatusFlooding
}

// Reset halts any flood and reloads the current level from its initial layout.
func (c *Controller) Reset() {
	c.flood.Stop()
	c.load(c.index)
}

// Tick advances the simulation by dt. When a level attempt ends, the report
// is returned with ok set.
func (c *Controller) Tick(dt time.Duration) (rep Report, ok bool) {
	if c.status != StatusFlooding {
		return Report{}, false
	}
	c.ticks++

	switch c.flood.Tick(dt) {
	case EventBreached:
		c.status = StatusBreached
		return c.report(false), true
	case EventComplete:
		rep = c.report(true)
		c.advance()
		return rep, true
	}
	return Report{}, false
}

func (c *Controller) report(cleared bool) Report {
	return Report{
		LevelID: c.levels[c.index].ID,
		Index:   c.index,
		Cleared: cleared,
		Ticks:   c.ticks,
		Moves:   c.barriers.Moves(),
	}
}

// advance loads the next level, or finishes the run after the last one.
func (c *Controller) advance() {
	if c.index+1 < len(c.levels) {
		c.load(c.index + 1)
		return
	}
	c.barriers.ClearSelection()
	c.drawProgress(true)
	c.status = StatusRunComplete
}

// Status returns the run status.
func (c *Controller) Status() Status {
	return c.status
}

// LevelIndex returns the 0-based index of the current level.
func (c *Controller) LevelIndex() int {
	return c.index
}

// LevelCount returns the number of levels in the run.
func (c *Controller) LevelCount() int {
	return len(c.levels)
}

// Level returns the current level definition.
func (c *Controller) Level() Level {
	return c.levels[c.index]
}

// Grid returns the live grid. Callers must not modify it.
func (c *Controller) Grid() *Grid {
	return c.grid
}

// Barriers returns the registry of the current level.
func (c *Controller) Barriers() *Registry {
	return c.barriers
}

// Flood returns the flood of the current level.
func (c *Controller) Flood() *Flood {
	return c.flood
}
