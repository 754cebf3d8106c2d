package engine

import (
	"testing"

	"github.com/vovakirdan/stem-the-tide/internal/core"
)

func TestGridPlayable(t *testing.T) {
	g := NewGrid(64, 64, 3)

	p := g.Playable()
	if p != core.NewRect(3, 3, 58, 58) {
		t.Fatalf("Playable() = %+v, want (3,3,58,58)", p)
	}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"origin", 0, 0, false},
		{"first playable", 3, 3, true},
		{"last playable", 60, 60, true},
		{"right border", 61, 30, false},
		{"bottom border", 30, 61, false},
		{"top border row", 30, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsPlayable(tt.x, tt.y); got != tt.want {
				t.Errorf("IsPlayable(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestGridWriteRectAndCount(t *testing.T) {
	g := NewGrid(10, 10, 1)
	g.WriteRect(core.NewRect(2, 2, 3, 2), CellTide)

	if got := g.Count(CellTide); got != 6 {
		t.Errorf("Count(Tide) = %d, want 6", got)
	}
	if g.Get(4, 3) != CellTide {
		t.Error("expected (4,3) to be tide")
	}
	if g.Get(5, 3) != CellEmpty {
		t.Error("expected (5,3) to stay empty")
	}

	row := g.Row(2)
	if len(row) != 10 || row[2] != CellTide || row[1] != CellEmpty {
		t.Errorf("Row(2) = %v", row)
	}
}

func TestGridCloneEqual(t *testing.T) {
	g := NewGrid(8, 8, 1)
	g.Set(3, 3, CellPriorityDry)

	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone should equal original")
	}

	c.Set(3, 3, CellTide)
	if g.Equal(c) {
		t.Error("modifying clone should not affect original")
	}
	if g.Get(3, 3) != CellPriorityDry {
		t.Error("original cell changed through clone")
	}
}

func TestGridOutOfRangePanics(t *testing.T) {
	g := NewGrid(4, 4, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range access")
		}
	}()
	g.Get(4, 0)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		state CellState
		want  core.Color
	}{
		{CellEmpty, core.ColorNight},
		{CellTide, core.ColorTide},
		{CellPriorityDry, core.ColorBrightWhite},
		{CellPriorityWet, core.ColorBrightRed},
		{CellBarrierInactive, core.ColorGray},
		{CellWeakBarrierInactive, core.ColorBrown},
		{CellLevelCurrent, core.ColorBrightYellow},
		{CellState(200), ColorUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := Classify(tt.state); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestCellStateIsBarrier(t *testing.T) {
	for s := CellEmpty; s <= CellWeakBarrierActive; s++ {
		want := s == CellBarrierInactive || s == CellBarrierActive ||
			s == CellWeakBarrierInactive || s == CellWeakBarrierActive
		if got := s.IsBarrier(); got != want {
			t.Errorf("%v.IsBarrier() = %v, want %v", s, got, want)
		}
	}
}
