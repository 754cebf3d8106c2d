package engine

import (
	"testing"

	"github.com/vovakirdan/stem-the-tide/internal/core"
)

// newTestRegistry builds a 64×64 grid with one zone and two barriers.
func newTestRegistry() (*Grid, *Registry) {
	g := NewGrid(64, 64, 3)
	g.WriteRect(PriorityZone{X: 30, Y: 51, Size: 4}.Rect(), CellPriorityDry)
	r := NewRegistry(g, []Barrier{
		NewBarrier(10, 20, 16, 3, StrengthStrong),
		NewBarrier(45, 25, 12, 3, StrengthWeak),
	})
	return g, r
}

func TestRegistryDrawsInactive(t *testing.T) {
	g, r := newTestRegistry()

	if got := g.Count(CellBarrierInactive); got != 16*3 {
		t.Errorf("strong inactive cells = %d, want %d", got, 16*3)
	}
	if got := g.Count(CellWeakBarrierInactive); got != 12*3 {
		t.Errorf("weak inactive cells = %d, want %d", got, 12*3)
	}
	if r.Selected() != NoSelection {
		t.Errorf("Selected() = %d, want NoSelection", r.Selected())
	}
}

func TestIsValidPlacementOwnPosition(t *testing.T) {
	_, r := newTestRegistry()
	for i := 0; i < r.Len(); i++ {
		if !r.IsValidPlacement(r.Barrier(i).Rect, i) {
			t.Errorf("barrier %d: own position rejected", i)
		}
	}
}

func TestIsValidPlacement(t *testing.T) {
	_, r := newTestRegistry()

	tests := []struct {
		name string
		rect core.Rect
		self int
		want bool
	}{
		{"shift by one", core.NewRect(11, 20, 16, 3), 0, true},
		{"into border", core.NewRect(2, 20, 16, 3), 0, false},
		{"past bottom", core.NewRect(10, 59, 16, 3), 0, false},
		{"onto zone", core.NewRect(25, 50, 16, 3), 0, false},
		{"onto other barrier", core.NewRect(40, 24, 16, 3), 0, false},
		{"new barrier on empty ground", core.NewRect(5, 40, 4, 2), NoSelection, true},
		{"new barrier on existing one", core.NewRect(10, 20, 2, 2), NoSelection, false},
		{"empty rect", core.NewRect(5, 40, 0, 2), NoSelection, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsValidPlacement(tt.rect, tt.self); got != tt.want {
				t.Errorf("IsValidPlacement(%+v, %d) = %v, want %v", tt.rect, tt.self, got, tt.want)
			}
		})
	}
}

func TestMoveRedrawsFootprint(t *testing.T) {
	g, r := newTestRegistry()
	r.ToggleSelection(0)
	rev := r.Revision()

	if !r.MoveSelected(DirRight) {
		t.Fatal("move right should succeed")
	}
	b := r.Barrier(0)
	if b.Rect.X != 11 || !b.Active {
		t.Errorf("barrier after move = %+v", b)
	}
	if g.Get(10, 20) != CellEmpty {
		t.Error("vacated column should be empty")
	}
	if g.Get(26, 22) != CellBarrierActive {
		t.Error("new column should hold the active barrier")
	}
	if g.Count(CellBarrierActive) != 16*3 {
		t.Errorf("active cells = %d, want %d", g.Count(CellBarrierActive), 16*3)
	}
	if r.Revision() <= rev {
		t.Error("revision should increase after a move")
	}
	if r.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", r.Moves())
	}
}

func TestMoveRejectedLeavesStateUntouched(t *testing.T) {
	g, r := newTestRegistry()
	r.ToggleSelection(1)

	// Weak barrier at x=45..56; four steps right reaches the border at 61.
	for i := 0; i < 4; i++ {
		if !r.MoveSelected(DirRight) {
			t.Fatalf("step %d should succeed", i)
		}
	}
	before := g.Clone()
	rev := r.Revision()

	if r.MoveSelected(DirRight) {
		t.Fatal("move into the border should fail")
	}
	if !g.Equal(before) {
		t.Error("grid changed after rejected move")
	}
	if r.Revision() != rev {
		t.Error("revision changed after rejected move")
	}
	if r.Moves() != 4 {
		t.Errorf("Moves() = %d, want 4", r.Moves())
	}
}

func TestMoveUnselectedKeepsSingleActive(t *testing.T) {
	g, r := newTestRegistry()
	r.ToggleSelection(0)

	if !r.Move(1, 1, 0) {
		t.Fatal("move of the weak barrier should succeed")
	}
	if r.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", r.Selected())
	}
	if r.Barrier(1).Active {
		t.Error("moved barrier should stay inactive")
	}
	if g.Get(46, 26) != CellWeakBarrierInactive {
		t.Errorf("moved barrier drawn as %v", g.Get(46, 26))
	}
	active := 0
	for _, b := range r.Barriers() {
		if b.Active {
			active++
		}
	}
	if active != 1 {
		t.Errorf("active barriers = %d, want 1", active)
	}
}

func TestMoveWithoutSelection(t *testing.T) {
	g, r := newTestRegistry()
	before := g.Clone()

	if r.MoveSelected(DirDown) {
		t.Error("move without selection should be ignored")
	}
	if !g.Equal(before) {
		t.Error("grid changed")
	}
}

func TestToggleSelection(t *testing.T) {
	g, r := newTestRegistry()

	if !r.SelectAt(12, 21) {
		t.Fatal("SelectAt on strong barrier should hit")
	}
	if r.Selected() != 0 || g.Get(12, 21) != CellBarrierActive {
		t.Fatal("strong barrier should be active")
	}

	r.SelectAt(50, 26)
	if r.Selected() != 1 {
		t.Fatalf("Selected() = %d, want 1", r.Selected())
	}
	if g.Get(12, 21) != CellBarrierInactive {
		t.Error("previous selection should be deactivated")
	}
	if g.Get(50, 26) != CellWeakBarrierActive {
		t.Error("weak barrier should be drawn active")
	}

	r.SelectAt(50, 26)
	if r.Selected() != NoSelection {
		t.Error("selecting the active barrier again should deselect it")
	}

	if r.SelectAt(5, 5) {
		t.Error("SelectAt on empty ground should miss")
	}
}

func TestSelectNextWraps(t *testing.T) {
	_, r := newTestRegistry()

	want := []int{0, 1, 0}
	for i, w := range want {
		r.SelectNext()
		if r.Selected() != w {
			t.Errorf("step %d: Selected() = %d, want %d", i, r.Selected(), w)
		}
	}

	r.ClearSelection()
	if r.Selected() != NoSelection {
		t.Error("ClearSelection should leave nothing selected")
	}
}

func TestParseStrength(t *testing.T) {
	tests := []struct {
		in   string
		want Strength
		ok   bool
	}{
		{"strong", StrengthStrong, true},
		{"", StrengthStrong, true},
		{"weak", StrengthWeak, true},
		{"granite", StrengthStrong, false},
	}
	for _, tt := range tests {
		got, ok := ParseStrength(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseStrength(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
