package engine

import "github.com/vovakirdan/stem-the-tide/internal/core"

// Dir represents an axis-aligned movement direction.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// PriorityZone is a square region that must stay free of tide.
type PriorityZone struct {
	X, Y int
	Size int
}

// Rect returns the zone footprint.
func (z PriorityZone) Rect() core.Rect {
	return core.NewRect(z.X, z.Y, z.Size, z.Size)
}

// Edge names the side of the grid the tide enters from.
type Edge uint8

const (
	EdgeTop Edge = iota
)

// String returns the string representation of an edge.
func (e Edge) String() string {
	if e == EdgeTop {
		return "top"
	}
	return "unknown"
}

// Source describes where the tide starts. Row is seeded with tide across the
// playable columns on load; the flood advances from the row below it.
type Source struct {
	Edge Edge
	Row  int
}

// CommandKind identifies an input command.
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdStartFlood
	CmdReset
	CmdSelectBarrierAt
	CmdSelectNext
	CmdMoveSelected
	CmdQuit
)

// Command is a pre-validated input for the controller.
type Command struct {
	Kind CommandKind
	X, Y int // grid cell for CmdSelectBarrierAt
	Dir  Dir // for CmdMoveSelected
}

// StartFlood returns a command releasing the tide.
func StartFlood() Command { return Command{Kind: CmdStartFlood} }

// Reset returns a command reloading the current level.
func Reset() Command { return Command{Kind: CmdReset} }

// SelectBarrierAt returns a command toggling the barrier at cell (x, y).
func SelectBarrierAt(x, y int) Command { return Command{Kind: CmdSelectBarrierAt, X: x, Y: y} }

// SelectNext returns a command cycling the barrier selection.
func SelectNext() Command { return Command{Kind: CmdSelectNext} }

// MoveSelected returns a command moving the active barrier one cell.
func MoveSelected(d Dir) Command { return Command{Kind: CmdMoveSelected, Dir: d} }

// Quit returns a command ending the session.
func Quit() Command { return Command{Kind: CmdQuit} }
