// Package engine provides the flood propagation and shadow-casting simulation
// for Stem the Tide. The package is UI-agnostic and deterministic: it owns the
// cell grid, the barriers placed on it, the advancing tide and the level
// progression, and never touches a terminal or a clock.
package engine

import (
	"fmt"

	"github.com/vovakirdan/stem-the-tide/internal/core"
)

// CellState is the single state held by a grid cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellPriorityDry
	CellTide
	CellBarrierInactive
	CellBarrierActive
	CellShadow
	CellMetaEdge
	CellLevelPassed
	CellLevelCurrent
	CellLevelFuture
	CellPriorityWet
	CellWeakBarrierInactive
	CellWeakBarrierActive
)

// String returns the name of the state.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellPriorityDry:
		return "priority"
	case CellTide:
		return "tide"
	case CellBarrierInactive:
		return "barrier"
	case CellBarrierActive:
		return "barrier-active"
	case CellShadow:
		return "shadow"
	case CellMetaEdge:
		return "meta"
	case CellLevelPassed:
		return "level-passed"
	case CellLevelCurrent:
		return "level-current"
	case CellLevelFuture:
		return "level-future"
	case CellPriorityWet:
		return "priority-wet"
	case CellWeakBarrierInactive:
		return "weak-barrier"
	case CellWeakBarrierActive:
		return "weak-barrier-active"
	default:
		return "unknown"
	}
}

// IsBarrier reports whether the state belongs to any barrier.
func (s CellState) IsBarrier() bool {
	switch s {
	case CellBarrierInactive, CellBarrierActive, CellWeakBarrierInactive, CellWeakBarrierActive:
		return true
	}
	return false
}

// ColorUnknown is returned by Classify for states outside the known set.
const ColorUnknown = core.ColorMagenta

// Classify maps a cell state to its display color.
// Unknown states fall back to ColorUnknown so rendering degrades instead of failing.
func Classify(s CellState) core.Color {
	switch s {
	case CellEmpty, CellShadow:
		return core.ColorNight
	case CellPriorityDry:
		return core.ColorBrightWhite
	case CellTide:
		return core.ColorTide
	case CellBarrierInactive:
		return core.ColorGray
	case CellBarrierActive, CellWeakBarrierActive, CellLevelPassed:
		return core.ColorBrightGreen
	case CellMetaEdge:
		return core.ColorDarkGray
	case CellLevelCurrent:
		return core.ColorBrightYellow
	case CellLevelFuture, CellPriorityWet:
		return core.ColorBrightRed
	case CellWeakBarrierInactive:
		return core.ColorBrown
	default:
		return ColorUnknown
	}
}

// Grid is the mutable cell-state buffer.
// Cells are stored in row-major order: index = y*W + x.
// A band of Border cells on every edge is reserved for metadata and is never
// part of the playable area.
type Grid struct {
	W, H   int
	Border int
	cells  []CellState
}

// NewGrid allocates an all-empty grid.
func NewGrid(w, h, border int) *Grid {
	return &Grid{
		W:      w,
		H:      h,
		Border: border,
		cells:  make([]CellState, w*h),
	}
}

// index converts a coordinate to a flat array index.
// Out-of-range coordinates are a programming error.
func (g *Grid) index(x, y int) int {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d grid", x, y, g.W, g.H))
	}
	return y*g.W + x
}

// Get returns the state of cell (x, y).
func (g *Grid) Get(x, y int) CellState {
	return g.cells[g.index(x, y)]
}

// Set overwrites cell (x, y).
func (g *Grid) Set(x, y int, s CellState) {
	g.cells[g.index(x, y)] = s
}

// WriteRect overwrites every cell of r with s. The caller validates r.
func (g *Grid) WriteRect(r core.Rect, s CellState) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			g.Set(x, y, s)
		}
	}
}

// Fill overwrites the whole grid with s.
func (g *Grid) Fill(s CellState) {
	for i := range g.cells {
		g.cells[i] = s
	}
}

// Bounds returns the rectangle covering the whole grid.
func (g *Grid) Bounds() core.Rect {
	return core.NewRect(0, 0, g.W, g.H)
}

// Playable returns the rectangle inside the metadata border.
func (g *Grid) Playable() core.Rect {
	return g.Bounds().Inset(g.Border)
}

// IsPlayable reports whether (x, y) lies inside the metadata border.
func (g *Grid) IsPlayable(x, y int) bool {
	return g.Playable().Contains(x, y)
}

// Count returns the number of cells in state s.
func (g *Grid) Count(s CellState) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{W: g.W, H: g.H, Border: g.Border, cells: cells}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H || g.Border != other.Border {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []CellState {
	start := g.index(0, y)
	row := make([]CellState, g.W)
	copy(row, g.cells[start:start+g.W])
	return row
}
