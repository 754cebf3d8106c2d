package game

import (
	"strings"
	"testing"

	"github.com/vovakirdan/stem-the-tide/internal/core"
	"github.com/vovakirdan/stem-the-tide/internal/engine"
)

func testLevels() []engine.Level {
	src := engine.Source{Edge: engine.EdgeTop, Row: 0}
	return []engine.Level{
		{
			ID:       "open",
			Name:     "Open water",
			Hint:     "Nothing to protect yet.",
			Barriers: []engine.Barrier{engine.NewBarrier(10, 20, 16, 3, engine.StrengthStrong)},
			Source:   src,
		},
		{
			ID:       "shelter",
			Name:     "Shelter",
			Zones:    []engine.PriorityZone{{X: 30, Y: 51, Size: 4}},
			Barriers: []engine.Barrier{engine.NewBarrier(10, 20, 16, 3, engine.StrengthStrong)},
			Source:   src,
		},
	}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(Options{Levels: testLevels(), Engine: engine.DefaultOptions()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	g.Reset(core.DefaultConfig())
	return g
}

// runUntilOutcome steps with empty input until a level ends.
func runUntilOutcome(t *testing.T, g *Game) core.Outcome {
	t.Helper()
	in := core.NewInputFrame()
	for i := 0; i < 5000; i++ {
		res := g.Step(in)
		if len(res.Outcomes) > 0 {
			return res.Outcomes[0]
		}
	}
	t.Fatal("no outcome within 5000 steps")
	return core.Outcome{}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestNewRequiresLevels(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New() without levels should fail")
	}
}

func TestStepReportsOutcomes(t *testing.T) {
	g := newTestGame(t)

	g.Step(frame(core.ActionStart))
	out := runUntilOutcome(t, g)
	if !out.Cleared || out.LevelID != "open" {
		t.Fatalf("first outcome = %+v, want open cleared", out)
	}
	if st := g.State(); st.Level != 2 || st.TotalLevels != 2 || st.GameOver {
		t.Fatalf("state after first level = %+v", st)
	}

	g.Step(frame(core.ActionStart))
	out = runUntilOutcome(t, g)
	if out.Cleared || out.LevelID != "shelter" {
		t.Fatalf("second outcome = %+v, want shelter breached", out)
	}
	if st := g.State(); st.Status != "breached" {
		t.Errorf("Status = %q, want breached", st.Status)
	}
}

func TestKeysMoveSelectedBarrier(t *testing.T) {
	g := newTestGame(t)

	g.Step(frame(core.ActionSelectNext, core.ActionRight, core.ActionRight, core.ActionDown))

	b := g.Controller().Barriers().Barrier(0)
	if b.Rect.X != 12 || b.Rect.Y != 21 || !b.Active {
		t.Errorf("barrier = %+v, want (12,21) active", b)
	}
	if g.Controller().Barriers().Moves() != 3 {
		t.Errorf("Moves() = %d, want 3", g.Controller().Barriers().Moves())
	}
}

func TestClickSelectsBarrier(t *testing.T) {
	g := newTestGame(t)

	// 80x40 screen: grid origin at (8,3), one screen row per two grid rows.
	in := core.NewInputFrame()
	in.Click(8+12, 3+10)
	g.Step(in)
	if got := g.Controller().Barriers().Selected(); got != 0 {
		t.Fatalf("Selected() = %d after click on barrier, want 0", got)
	}

	in = core.NewInputFrame()
	in.Click(2, 2)
	g.Step(in)
	if got := g.Controller().Barriers().Selected(); got != 0 {
		t.Errorf("click outside the grid changed selection to %d", got)
	}

	in = core.NewInputFrame()
	in.Click(8+12, 3+10)
	g.Step(in)
	if got := g.Controller().Barriers().Selected(); got != engine.NoSelection {
		t.Errorf("second click should deselect, got %d", got)
	}
}

func TestClickLowerHalfBlock(t *testing.T) {
	lvl := testLevels()[0]
	lvl.Barriers = []engine.Barrier{engine.NewBarrier(10, 21, 16, 3, engine.StrengthWeak)}
	g, err := New(Options{Levels: []engine.Level{lvl}, Engine: engine.DefaultOptions()})
	if err != nil {
		t.Fatal(err)
	}

	// Screen row 13 shows grid rows 20 (empty) and 21 (barrier).
	in := core.NewInputFrame()
	in.Click(8+12, 3+10)
	g.Step(in)
	if g.Controller().Barriers().Selected() != 0 {
		t.Error("click on the lower half should select the barrier")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionStart))

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	row := g.Controller().Flood().Row()
	for i := 0; i < 100; i++ {
		g.Step(frame(core.ActionSelectNext))
	}
	if g.Controller().Flood().Row() != row {
		t.Error("flood advanced while paused")
	}
	if g.Controller().Barriers().Selected() != engine.NoSelection {
		t.Error("input applied while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestResetActionReloadsLevel(t *testing.T) {
	g := newTestGame(t)
	initial := g.Controller().Grid().Clone()

	g.Step(frame(core.ActionSelectNext, core.ActionDown, core.ActionStart))
	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Step(frame(core.ActionReset))

	if !g.Controller().Grid().Equal(initial) {
		t.Error("reset should restore the initial grid")
	}
}

func TestToggleShadow(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 40)

	g.Step(frame(core.ActionToggleShadow))
	if !g.ShadowVisible() {
		t.Fatal("shadow preview should be on")
	}
	g.Render(screen)

	// Grid cell (12,24) is inside the wedge: upper half of screen row 15.
	cell := screen.GetCell(8+12, 3+12)
	if cell.Fg != core.ColorShade {
		t.Errorf("shadowed cell Fg = %v", cell.Fg)
	}
	if !strings.Contains(screen.Row(0), "Shadow") {
		t.Error("HUD should mention the shadow preview")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	g := newTestGame(t)
	g.Controller().LoadLevel(1)
	screen := core.NewScreen(80, 40)
	g.Render(screen)

	// Zone at (30,51): screen row 3+25 shows grid rows 50 (empty) and 51 (zone).
	cell := screen.GetCell(8+30, 3+25)
	if cell.Rune != '▀' {
		t.Fatalf("rune = %q, want half block", cell.Rune)
	}
	if cell.Fg != engine.Classify(engine.CellEmpty) || cell.Bg != engine.Classify(engine.CellPriorityDry) {
		t.Errorf("cell = %+v, want empty over priority", cell)
	}

	if !strings.Contains(screen.Row(0), "Level 2/2: Shelter") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "press SPACE to start the flood") {
		t.Error("idle caption missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t)
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60})

	screen := core.NewScreen(40, 20)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected a resize message")
	}

	in := core.NewInputFrame()
	in.Click(5, 5)
	g.Step(in)
	if g.Controller().Barriers().Selected() != engine.NoSelection {
		t.Error("clicks should be ignored without a layout")
	}
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		action core.Action
		kind   engine.CommandKind
		ok     bool
	}{
		{core.ActionUp, engine.CmdMoveSelected, true},
		{core.ActionLeft, engine.CmdMoveSelected, true},
		{core.ActionStart, engine.CmdStartFlood, true},
		{core.ActionReset, engine.CmdReset, true},
		{core.ActionSelectNext, engine.CmdSelectNext, true},
		{core.ActionPause, engine.CmdNone, false},
		{core.ActionQuit, engine.CmdNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			cmd, ok := commandFor(tt.action)
			if ok != tt.ok || cmd.Kind != tt.kind {
				t.Errorf("commandFor(%v) = %v, %v", tt.action, cmd.Kind, ok)
			}
		})
	}
}
