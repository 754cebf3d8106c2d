package engine

import (
	"fmt"
	"hash/fnv"
)

// Snapshot is a read-only view of the controller for renderers.
type Snapshot struct {
	W, H   int
	Border int
	Cells  []CellState

	LevelIndex int
	LevelCount int
	LevelID    string
	LevelName  string
	Hint       string

	Status   Status
	Phase    Phase
	FloodRow int
	Selected int
	Moves    int
	Barriers []Barrier
}

// At returns the state of cell (x, y), or CellMetaEdge off the grid.
func (s Snapshot) At(x, y int) CellState {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return CellMetaEdge
	}
	return s.Cells[y*s.W+x]
}

// Snapshot captures the current state. With showShadow set, empty cells the
// flood would skip are reported as CellShadow.
func (c *Controller) Snapshot(showShadow bool) Snapshot {
	cells := make([]CellState, len(c.grid.cells))
	copy(cells, c.grid.cells)

	if showShadow && c.status != StatusRunComplete {
		shadow := c.flood.Shadow()
		for i, s := range cells {
			if s == CellEmpty && shadow.Contains(i%c.grid.W, i/c.grid.W) {
				cells[i] = CellShadow
			}
		}
	}

	lvl := c.levels[c.index]
	return Snapshot{
		W:          c.grid.W,
		H:          c.grid.H,
		Border:     c.grid.Border,
		Cells:      cells,
		LevelIndex: c.index,
		LevelCount: len(c.levels),
		LevelID:    lvl.ID,
		LevelName:  lvl.Name,
		Hint:       lvl.Hint,
		Status:     c.status,
		Phase:      c.flood.Phase(),
		FloodRow:   c.flood.Row(),
		Selected:   c.barriers.Selected(),
		Moves:      c.barriers.Moves(),
		Barriers:   c.barriers.Barriers(),
	}
}

// Hash returns a fingerprint of the simulation state, used to check determinism.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte{byte(s.W), byte(s.H), byte(s.Border)})
	cells := make([]byte, len(s.Cells))
	for i, c := range s.Cells {
		cells[i] = byte(c)
	}
	_, _ = h.Write(cells)

	fmt.Fprintf(h, ";L:%d/%d;S:%d;P:%d;R:%d;", s.LevelIndex, s.LevelCount, s.Status, s.Phase, s.FloodRow)
	for _, b := range s.Barriers {
		fmt.Fprintf(h, "%d:%d:%d:%d:%d:%v,", b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, b.Strength, b.Active)
	}
	return h.Sum64()
}
