package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/stem-the-tide/internal/engine"
)

// DefaultMaxTicks bounds a headless run.
const DefaultMaxTicks = 100_000

// Move shifts one barrier by (DX, DY) cells before the tide is released.
type Move struct {
	Barrier int
	DX, DY  int
}

// ParseMove parses "i:dx,dy", e.g. "0:14,25".
func ParseMove(s string) (Move, error) {
	var m Move
	if _, err := fmt.Sscanf(s, "%d:%d,%d", &m.Barrier, &m.DX, &m.DY); err != nil {
		return Move{}, fmt.Errorf("invalid move %q, want i:dx,dy: %w", s, err)
	}
	return m, nil
}

// SimOptions configures a headless run.
type SimOptions struct {
	Engine     engine.Options
	TickRate   int
	MaxTicks   int
	Moves      []Move
	ShowShadow bool // overlay the final shadow on the snapshot
}

// SimResult is the end state of a headless run.
type SimResult struct {
	Report   engine.Report
	Finished bool // false if MaxTicks ran out first
	Snapshot engine.Snapshot
}

// Simulate plays one level without a terminal: it applies the moves, releases
// the tide and ticks at a fixed step until the attempt ends.
func Simulate(lvl engine.Level, opts SimOptions) (SimResult, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultMaxTicks
	}

	ctrl, err := engine.NewController([]engine.Level{lvl}, opts.Engine)
	if err != nil {
		return SimResult{}, err
	}
	for _, m := range opts.Moves {
		if err := applyMove(ctrl, m); err != nil {
			return SimResult{}, err
		}
	}

	ctrl.Apply(engine.StartFlood())
	if ctrl.Status() != engine.StatusFlooding {
		return SimResult{}, errors.New("simulate: the tide did not start")
	}

	dt := time.Second / time.Duration(opts.TickRate)
	var res SimResult
	for i := 0; i < opts.MaxTicks; i++ {
		if rep, ok := ctrl.Tick(dt); ok {
			res.Report = rep
			res.Finished = true
			break
		}
	}
	res.Snapshot = ctrl.Snapshot(opts.ShowShadow)
	return res, nil
}

// applyMove selects a barrier and steps it one cell at a time.
func applyMove(ctrl *engine.Controller, m Move) error {
	reg := ctrl.Barriers()
	if m.Barrier < 0 || m.Barrier >= reg.Len() {
		return fmt.Errorf("simulate: no barrier %d (level has %d)", m.Barrier, reg.Len())
	}
	if reg.Selected() != m.Barrier {
		r := reg.Barrier(m.Barrier).Rect
		ctrl.Apply(engine.SelectBarrierAt(r.X, r.Y))
	}

	step := func(n int, pos, neg engine.Dir) error {
		d := pos
		if n < 0 {
			d, n = neg, -n
		}
		for ; n > 0; n-- {
			before := reg.Barrier(m.Barrier).Rect
			ctrl.Apply(engine.MoveSelected(d))
			if reg.Barrier(m.Barrier).Rect == before {
				return fmt.Errorf("simulate: barrier %d blocked at (%d,%d) moving %s", m.Barrier, before.X, before.Y, d)
			}
		}
		return nil
	}
	if err := step(m.DX, engine.DirRight, engine.DirLeft); err != nil {
		return err
	}
	return step(m.DY, engine.DirDown, engine.DirUp)
}
