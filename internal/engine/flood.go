package engine

import "time"

// DefaultRowInterval is how long the tide takes to advance one row.
const DefaultRowInterval = 100 * time.Millisecond

// Phase is the state of the flood state machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseFlooding
	PhaseBreached
	PhaseComplete
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFlooding:
		return "flooding"
	case PhaseBreached:
		return "breached"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event reports what a flood tick did.
type Event uint8

const (
	EventNone Event = iota
	EventRowFilled
	EventBreached
	EventComplete
)

// Flood advances the tide one row at a time across the grid.
//
// Tick order while flooding:
//  1. Breach check: tide inside any priority zone ends the flood as Breached.
//  2. Accumulate elapsed time; once a full row interval has passed, either
//     finish (row pointer at the bottom border) or fill the current row.
//  3. After a fill, breach check again so the wetting row is reported in the
//     same tick.
type Flood struct {
	grid     *Grid
	barriers *Registry
	zones    []PriorityZone
	source   Source
	interval time.Duration

	phase   Phase
	row     int
	elapsed time.Duration
	filled  int

	shadow    ShadowSet
	shadowRev uint64
	hasShadow bool
}

// NewFlood creates an idle flood over grid.
func NewFlood(grid *Grid, barriers *Registry, zones []PriorityZone, source Source, interval time.Duration) *Flood {
	if interval <= 0 {
		interval = DefaultRowInterval
	}
	return &Flood{
		grid:     grid,
		barriers: barriers,
		zones:    zones,
		source:   source,
		interval: interval,
		row:      source.Row + 1,
	}
}

// Phase returns the current phase.
func (f *Flood) Phase() Phase {
	return f.phase
}

// Row returns the row the next fill will write.
func (f *Flood) Row() int {
	return f.row
}

// Interval returns the per-row interval.
func (f *Flood) Interval() time.Duration {
	return f.interval
}

// Filled returns how many cells the flood has turned to tide.
func (f *Flood) Filled() int {
	return f.filled
}

// lastRow is the first row of the bottom metadata border.
func (f *Flood) lastRow() int {
	return f.grid.H - f.grid.Border
}

// Start releases the tide. Only an idle flood can start.
func (f *Flood) Start() bool {
	if f.phase != PhaseIdle {
		return false
	}
	f.phase = PhaseFlooding
	f.row = f.source.Row + 1
	f.elapsed = 0
	f.recast()
	return true
}

// Stop halts the flood and discards row and timer progress.
// Cells already filled stay filled; reloading the level reverts them.
func (f *Flood) Stop() {
	f.phase = PhaseIdle
	f.row = f.source.Row + 1
	f.elapsed = 0
}

// Shadow returns the shadow set for the current barrier geometry,
// recomputing it if barriers changed since the last cast.
func (f *Flood) Shadow() ShadowSet {
	if !f.hasShadow || f.shadowRev != f.barriers.Revision() {
		f.recast()
	}
	return f.shadow
}

func (f *Flood) recast() {
	f.shadow = CastShadows(f.barriers.Barriers(), f.grid.W, f.grid.H)
	f.shadowRev = f.barriers.Revision()
	f.hasShadow = true
}

// Tick advances the flood by dt. Returns the most significant event.
func (f *Flood) Tick(dt time.Duration) Event {
	if f.phase != PhaseFlooding {
		return EventNone
	}

	if f.Breached() {
		f.breach()
		return EventBreached
	}

	f.elapsed += dt
	if f.elapsed < f.interval {
		return EventNone
	}
	f.elapsed = 0

	if f.row >= f.lastRow() {
		f.phase = PhaseComplete
		return EventComplete
	}

	f.fillRow()
	if f.Breached() {
		f.breach()
		return EventBreached
	}
	return EventRowFilled
}

// fillRow turns every eligible, unshadowed playable cell of the current row
// into tide and moves the row pointer down.
func (f *Flood) fillRow() {
	shadow := f.Shadow()
	y := f.row
	if y >= f.grid.Border {
		for x := f.grid.Border; x < f.grid.W-f.grid.Border; x++ {
			if !floodable(f.grid.Get(x, y)) || shadow.Contains(x, y) {
				continue
			}
			f.grid.Set(x, y, CellTide)
			f.filled++
		}
	}
	f.row++
}

// floodable reports whether the tide may enter a cell in state s.
// Dry priority ground is reachable; that is how a zone gets breached.
func floodable(s CellState) bool {
	return s == CellEmpty || s == CellPriorityDry
}

// Breached reports whether tide has reached any priority zone.
func (f *Flood) Breached() bool {
	for _, z := range f.zones {
		r := z.Rect()
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				if f.grid.Get(x, y) == CellTide {
					return true
				}
			}
		}
	}
	return false
}

func (f *Flood) breach() {
	for _, z := range f.zones {
		f.grid.WriteRect(z.Rect(), CellPriorityWet)
	}
	f.phase = PhaseBreached
}
