package engine

import "github.com/vovakirdan/stem-the-tide/internal/core"

// Strength determines how quickly a barrier's shadow closes in.
type Strength uint8

const (
	StrengthStrong Strength = iota
	StrengthWeak
)

// String returns the string representation of a strength.
func (s Strength) String() string {
	switch s {
	case StrengthStrong:
		return "strong"
	case StrengthWeak:
		return "weak"
	default:
		return "unknown"
	}
}

// ParseStrength converts a string to a Strength.
// Returns StrengthStrong and false if the string is not recognized.
func ParseStrength(s string) (Strength, bool) {
	switch s {
	case "strong", "":
		return StrengthStrong, true
	case "weak":
		return StrengthWeak, true
	default:
		return StrengthStrong, false
	}
}

// Barrier is a rectangular obstacle the player can move.
type Barrier struct {
	Rect     core.Rect
	Strength Strength
	Active   bool
}

// NewBarrier creates an inactive barrier.
func NewBarrier(x, y, w, h int, strength Strength) Barrier {
	return Barrier{Rect: core.NewRect(x, y, w, h), Strength: strength}
}

// DisplayState returns the cell state the barrier is drawn with.
func (b Barrier) DisplayState() CellState {
	switch {
	case b.Strength == StrengthWeak && b.Active:
		return CellWeakBarrierActive
	case b.Strength == StrengthWeak:
		return CellWeakBarrierInactive
	case b.Active:
		return CellBarrierActive
	default:
		return CellBarrierInactive
	}
}

// NoSelection is the selected index when no barrier is active.
const NoSelection = -1

// Registry owns the barriers of a level and keeps their footprints drawn on
// the grid. At most one barrier is active (selected) at a time.
type Registry struct {
	grid     *Grid
	barriers []Barrier
	selected int
	revision uint64
	moves    int
}

// NewRegistry copies barriers and draws them on grid in their
// inactive state. Layouts are validated by the level loader beforehand.
func NewRegistry(grid *Grid, barriers []Barrier) *Registry {
	r := &Registry{
		grid:     grid,
		barriers: make([]Barrier, len(barriers)),
		selected: NoSelection,
	}
	for i, b := range barriers {
		b.Active = false
		r.barriers[i] = b
		r.Place(b, b.DisplayState())
	}
	return r
}

// Len returns the number of barriers.
func (r *Registry) Len() int {
	return len(r.barriers)
}

// Barrier returns a copy of barrier i.
func (r *Registry) Barrier(i int) Barrier {
	return r.barriers[i]
}

// Barriers returns a copy of all barriers.
func (r *Registry) Barriers() []Barrier {
	out := make([]Barrier, len(r.barriers))
	copy(out, r.barriers)
	return out
}

// Selected returns the index of the active barrier, or NoSelection.
func (r *Registry) Selected() int {
	return r.selected
}

// Revision increases every time barrier geometry changes.
// A shadow cast at an older revision is stale.
func (r *Registry) Revision() uint64 {
	return r.revision
}

// Moves returns the number of successful moves made.
func (r *Registry) Moves() int {
	return r.moves
}

// IsValidPlacement reports whether rect may hold barrier self: it must lie
// inside the playable area and every covered cell must be empty or already
// covered by self. Pass NoSelection for a barrier not yet on the grid.
func (r *Registry) IsValidPlacement(rect core.Rect, self int) bool {
	if rect.Empty() || !rect.Within(r.grid.Playable()) {
		return false
	}
	var own core.Rect
	if self >= 0 && self < len(r.barriers) {
		own = r.barriers[self].Rect
	}
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			if r.grid.Get(x, y) == CellEmpty {
				continue
			}
			if own.Contains(x, y) {
				continue
			}
			return false
		}
	}
	return true
}

// Place draws b's footprint with state s. Geometry is not changed.
func (r *Registry) Place(b Barrier, s CellState) {
	r.grid.WriteRect(b.Rect, s)
}

// Move shifts barrier i by (dx, dy). Invalid moves leave everything untouched
// and return false. The barrier keeps its selection state.
func (r *Registry) Move(i, dx, dy int) bool {
	if i < 0 || i >= len(r.barriers) {
		return false
	}
	b := r.barriers[i]
	next := b.Rect.Translate(dx, dy)
	if !r.IsValidPlacement(next, i) {
		return false
	}

	r.grid.WriteRect(b.Rect, CellEmpty)
	b.Rect = next
	b.Active = r.selected == i
	r.barriers[i] = b
	r.Place(b, b.DisplayState())

	r.revision++
	r.moves++
	return true
}

// MoveSelected moves the active barrier one cell in direction d.
// Does nothing when no barrier is selected.
func (r *Registry) MoveSelected(d Dir) bool {
	if r.selected == NoSelection {
		return false
	}
	dx, dy := d.Delta()
	return r.Move(r.selected, dx, dy)
}

// ToggleSelection activates barrier i, deactivating any other. Selecting the
// active barrier deselects it.
func (r *Registry) ToggleSelection(i int) {
	if i < 0 || i >= len(r.barriers) {
		return
	}
	if r.selected == i {
		r.setActive(i, false)
		r.selected = NoSelection
		r.revision++
		return
	}
	if r.selected != NoSelection {
		r.setActive(r.selected, false)
	}
	r.setActive(i, true)
	r.selected = i
	r.revision++
}

// SelectAt toggles the barrier covering cell (x, y).
// Returns false if no barrier covers it.
func (r *Registry) SelectAt(x, y int) bool {
	i := r.BarrierAt(x, y)
	if i == NoSelection {
		return false
	}
	r.ToggleSelection(i)
	return true
}

// SelectNext activates the barrier after the current one, wrapping around.
func (r *Registry) SelectNext() {
	if len(r.barriers) == 0 {
		return
	}
	next := 0
	if r.selected != NoSelection {
		next = (r.selected + 1) % len(r.barriers)
	}
	if next == r.selected {
		return
	}
	r.ToggleSelection(next)
}

// BarrierAt returns the index of the barrier covering (x, y), or NoSelection.
func (r *Registry) BarrierAt(x, y int) int {
	for i, b := range r.barriers {
		if b.Rect.Contains(x, y) {
			return i
		}
	}
	return NoSelection
}

// ClearSelection deactivates the selected barrier, if any.
func (r *Registry) ClearSelection() {
	if r.selected != NoSelection {
		r.ToggleSelection(r.selected)
	}
}

func (r *Registry) setActive(i int, active bool) {
	b := r.barriers[i]
	b.Active = active
	r.barriers[i] = b
	r.Place(b, b.DisplayState())
}
