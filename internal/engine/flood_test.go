package engine

import (
	"testing"
	"time"
)

const testInterval = 100 * time.Millisecond

// newTestFlood builds a 64×64 grid with a seeded source row, the given zones
// and barriers.
func newTestFlood(zones []PriorityZone, barriers []Barrier) (*Grid, *Registry, *Flood) {
	g := NewGrid(64, 64, 3)
	for x := 3; x < 61; x++ {
		g.Set(x, 0, CellTide)
	}
	for _, z := range zones {
		g.WriteRect(z.Rect(), CellPriorityDry)
	}
	r := NewRegistry(g, barriers)
	f := NewFlood(g, r, zones, Source{Edge: EdgeTop, Row: 0}, testInterval)
	return g, r, f
}

// runFlood ticks f one interval at a time until it leaves PhaseFlooding.
func runFlood(t *testing.T, f *Flood) Event {
	t.Helper()
	for i := 0; i < 200; i++ {
		ev := f.Tick(testInterval)
		if ev == EventBreached || ev == EventComplete {
			return ev
		}
	}
	t.Fatal("flood did not finish within 200 ticks")
	return EventNone
}

func TestFloodStartOnlyFromIdle(t *testing.T) {
	_, _, f := newTestFlood(nil, nil)

	if f.Tick(testInterval) != EventNone {
		t.Error("idle flood should not advance")
	}
	if !f.Start() {
		t.Fatal("Start() from idle should succeed")
	}
	if f.Start() {
		t.Error("Start() while flooding should be ignored")
	}
	if f.Phase() != PhaseFlooding {
		t.Errorf("Phase() = %v, want flooding", f.Phase())
	}
}

func TestFloodAccumulatesTime(t *testing.T) {
	_, _, f := newTestFlood(nil, nil)
	f.Start()

	if ev := f.Tick(40 * time.Millisecond); ev != EventNone {
		t.Errorf("first partial tick = %v, want none", ev)
	}
	if ev := f.Tick(40 * time.Millisecond); ev != EventNone {
		t.Errorf("second partial tick = %v, want none", ev)
	}
	if f.Row() != 1 {
		t.Fatalf("Row() = %d before a full interval, want 1", f.Row())
	}
	if ev := f.Tick(40 * time.Millisecond); ev != EventRowFilled {
		t.Errorf("third tick = %v, want row filled", ev)
	}
	if f.Row() != 2 {
		t.Errorf("Row() = %d, want 2", f.Row())
	}
}

func TestFloodFillsEveryPlayableCell(t *testing.T) {
	g, _, f := newTestFlood(nil, nil)
	f.Start()

	if ev := runFlood(t, f); ev != EventComplete {
		t.Fatalf("event = %v, want complete", ev)
	}
	if f.Phase() != PhaseComplete {
		t.Errorf("Phase() = %v, want complete", f.Phase())
	}

	for y := 3; y < 61; y++ {
		for x := 3; x < 61; x++ {
			if g.Get(x, y) != CellTide {
				t.Fatalf("cell (%d,%d) = %v, want tide", x, y, g.Get(x, y))
			}
		}
	}
	if g.Get(30, 1) != CellEmpty || g.Get(30, 62) != CellEmpty {
		t.Error("flood wrote into the metadata border")
	}
	if f.Filled() != 58*58 {
		t.Errorf("Filled() = %d, want %d", f.Filled(), 58*58)
	}
}

func TestFloodBreachesUnprotectedZone(t *testing.T) {
	zones := []PriorityZone{{X: 30, Y: 51, Size: 4}}
	g, _, f := newTestFlood(zones, nil)
	f.Start()

	if ev := runFlood(t, f); ev != EventBreached {
		t.Fatalf("event = %v, want breached", ev)
	}
	if f.Row() != 52 {
		t.Errorf("Row() = %d, want 52 (breach reported in the filling tick)", f.Row())
	}
	if got := g.Count(CellPriorityWet); got != 16 {
		t.Errorf("wet zone cells = %d, want 16", got)
	}

	before := g.Clone()
	for i := 0; i < 10; i++ {
		if ev := f.Tick(testInterval); ev != EventNone {
			t.Fatalf("tick after breach = %v, want none", ev)
		}
	}
	if !g.Equal(before) || f.Row() != 52 {
		t.Error("flood advanced after breach")
	}
	if f.Start() {
		t.Error("Start() after breach should be ignored")
	}
}

func TestFloodDefaultBarrierDoesNotProtect(t *testing.T) {
	zones := []PriorityZone{{X: 30, Y: 51, Size: 4}}
	g, _, f := newTestFlood(zones, []Barrier{NewBarrier(10, 20, 16, 3, StrengthStrong)})
	f.Start()

	if ev := runFlood(t, f); ev != EventBreached {
		t.Fatalf("event = %v, want breached", ev)
	}
	if g.Get(11, 23) != CellEmpty {
		t.Error("shadowed cell (11,23) should stay dry")
	}
	if g.Get(10, 23) != CellTide {
		t.Error("unshadowed cell (10,23) should be tide")
	}
}

func TestFloodBarrierProtectsZone(t *testing.T) {
	zones := []PriorityZone{{X: 30, Y: 51, Size: 4}}
	g, _, f := newTestFlood(zones, []Barrier{NewBarrier(24, 40, 16, 3, StrengthStrong)})
	f.Start()

	if ev := runFlood(t, f); ev != EventComplete {
		t.Fatalf("event = %v, want complete", ev)
	}
	if got := g.Count(CellPriorityDry); got != 16 {
		t.Errorf("dry zone cells = %d, want 16", got)
	}
	if g.Count(CellPriorityWet) != 0 {
		t.Error("no zone cell should be wet")
	}
}

func TestFloodShadowFollowsBarrierMoves(t *testing.T) {
	_, r, f := newTestFlood(nil, []Barrier{NewBarrier(10, 20, 16, 3, StrengthStrong)})

	if !f.Shadow().Contains(11, 23) {
		t.Fatal("initial shadow should cover (11,23)")
	}

	r.ToggleSelection(0)
	r.MoveSelected(DirDown)

	s := f.Shadow()
	if s.Contains(11, 23) {
		t.Error("shadow should be recast after the barrier moved")
	}
	if !s.Contains(11, 24) {
		t.Error("recast shadow should start below the moved barrier")
	}
}

func TestFloodStop(t *testing.T) {
	_, _, f := newTestFlood(nil, nil)
	f.Start()
	f.Tick(testInterval)
	f.Tick(testInterval / 2)

	f.Stop()
	if f.Phase() != PhaseIdle || f.Row() != 1 {
		t.Errorf("after Stop: phase %v row %d, want idle row 1", f.Phase(), f.Row())
	}
	if !f.Start() {
		t.Error("Start() after Stop should succeed")
	}
}
