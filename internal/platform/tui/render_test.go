package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/stem-the-tide/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "plain")
	s.DrawTextWithColor(0, 1, "tide", core.ColorTide)
	s.SetCell(0, 2, core.Cell{Rune: '▀', Fg: core.ColorNight, Bg: core.ColorShade})

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "plain") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "tide") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "▀") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestPaletteCoversGameColors(t *testing.T) {
	for c := core.ColorRed; c <= core.ColorShade; c++ {
		if _, ok := palette[c]; !ok {
			t.Errorf("color %d has no palette entry", c)
		}
	}
}
