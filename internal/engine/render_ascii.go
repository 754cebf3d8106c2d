package engine

import (
	"fmt"
	"strings"
)

// Glyph returns the ASCII character for a cell state.
func (s CellState) Glyph() rune {
	switch s {
	case CellEmpty:
		return '.'
	case CellPriorityDry:
		return 'P'
	case CellPriorityWet:
		return 'X'
	case CellTide:
		return '~'
	case CellBarrierInactive:
		return '#'
	case CellBarrierActive:
		return '@'
	case CellWeakBarrierInactive:
		return '='
	case CellWeakBarrierActive:
		return '%'
	case CellShadow:
		return ':'
	case CellMetaEdge:
		return ' '
	case CellLevelPassed:
		return '+'
	case CellLevelCurrent:
		return '*'
	case CellLevelFuture:
		return 'o'
	default:
		return '?'
	}
}

// RenderASCII creates an ASCII representation of a snapshot.
// This is used for the headless simulator and for debugging.
//
// Format:
//   - Header with level, status and flood row
//   - One line per grid row, one glyph per cell (see CellState.Glyph)
func RenderASCII(s Snapshot) string {
	var sb strings.Builder
	sb.Grow((s.W + 1) * (s.H + 2))

	fmt.Fprintf(&sb, "Level %d/%d %s | %s | row %d | moves %d\n",
		s.LevelIndex+1, s.LevelCount, s.LevelID, s.Status, s.FloodRow, s.Moves)
	sb.WriteString(strings.Repeat("-", s.W) + "\n")

	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			sb.WriteRune(s.At(x, y).Glyph())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
