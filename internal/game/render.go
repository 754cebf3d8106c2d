package game

import (
	"fmt"

	"github.com/vovakirdan/stem-the-tide/internal/core"
	"github.com/vovakirdan/stem-the-tide/internal/engine"
)

// Rows reserved around the grid.
const (
	hudRows     = 1
	captionRows = 2
)

// layout places the half-block grid on the screen.
// Each screen row shows two grid rows: the upper as foreground of '▀', the
// lower as its background.
type layout struct {
	x0, y0 int
	w, h   int // grid size in cells
	fits   bool
}

func computeLayout(screenW, screenH, gridW, gridH int) layout {
	rows := (gridH + 1) / 2
	l := layout{w: gridW, h: gridH}
	if screenW < gridW || screenH < rows+hudRows+captionRows {
		return l
	}
	l.fits = true
	l.x0 = (screenW - gridW) / 2
	l.y0 = hudRows + (screenH-hudRows-captionRows-rows)/2
	return l
}

// toGrid converts a screen position to the upper grid cell it shows.
func (l layout) toGrid(sx, sy int) (gx, gy int, ok bool) {
	if !l.fits {
		return 0, 0, false
	}
	gx = sx - l.x0
	gy = (sy - l.y0) * 2
	if gx < 0 || gx >= l.w || sy < l.y0 || gy >= l.h {
		return 0, 0, false
	}
	return gx, gy, true
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.ctrl.Snapshot(g.showShadow)

	g.renderHUD(dst, snap)

	if !g.layout.fits {
		rows := (snap.H + 1) / 2
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorBrightYellow)
		dst.DrawTextCentered(dst.Height()/2+1,
			fmt.Sprintf("Need %dx%d, resize to continue", snap.W, rows+hudRows+captionRows), core.ColorGray)
		return
	}

	g.renderGrid(dst, snap)
	g.renderCaption(dst, snap)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot) {
	hud := fmt.Sprintf(" Stem the Tide | Level %d/%d: %s | Moves: %d | Tide: %s",
		snap.LevelIndex+1, snap.LevelCount, snap.LevelName, snap.Moves, snap.Phase)
	if g.showShadow {
		hud += " | Shadow"
	}
	dst.DrawTextWithColor(0, 0, hud, core.ColorCyan)
}

// renderGrid draws the cells as colored half blocks.
func (g *Game) renderGrid(dst *core.Screen, snap engine.Snapshot) {
	for y := 0; y < snap.H; y += 2 {
		sy := g.layout.y0 + y/2
		for x := 0; x < snap.W; x++ {
			cell := core.Cell{Rune: '▀', Fg: cellColor(snap.At(x, y))}
			if y+1 < snap.H {
				cell.Bg = cellColor(snap.At(x, y+1))
			}
			dst.SetCell(g.layout.x0+x, sy, cell)
		}
	}
}

// cellColor is engine.Classify with a visible tint for the shadow preview,
// which the engine colors like empty ground.
func cellColor(s engine.CellState) core.Color {
	if s == engine.CellShadow {
		return core.ColorShade
	}
	return engine.Classify(s)
}

// renderCaption draws the status banner below the grid.
func (g *Game) renderCaption(dst *core.Screen, snap engine.Snapshot) {
	y := g.layout.y0 + (snap.H+1)/2
	title, color := g.caption(snap)
	dst.DrawTextCentered(y, title, color)
	if snap.Hint != "" && snap.Status == engine.StatusIdle {
		dst.DrawTextCentered(y+1, snap.Hint, core.ColorGray)
	}
}

// caption returns the banner text for the current status.
func (g *Game) caption(snap engine.Snapshot) (string, core.Color) {
	switch {
	case g.paused:
		return "Paused. Press P to continue", core.ColorBrightYellow
	case snap.Status == engine.StatusRunComplete:
		return "Every shelter held. All levels complete!", core.ColorBrightGreen
	case snap.Status == engine.StatusBreached:
		return fmt.Sprintf("Level %d breached! Press R to try again", snap.LevelIndex+1), core.ColorBrightRed
	case snap.Status == engine.StatusFlooding:
		return "The tide is rising...", core.ColorTide
	case g.clearedBanner > 0:
		return fmt.Sprintf("%s cleared! Level %d: press SPACE to start the flood", g.lastCleared, snap.LevelIndex+1),
			core.ColorBrightGreen
	default:
		return fmt.Sprintf("Level %d: press SPACE to start the flood", snap.LevelIndex+1), core.ColorWhite
	}
}
