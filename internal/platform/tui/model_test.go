package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stem-the-tide/internal/core"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	resets   int
	w, h     int
	steps    []core.InputFrame
	outcomes []core.Outcome // returned by the next Step
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.w, g.h = cfg.ScreenW, cfg.ScreenH
}

func (g *fakeGame) Resize(w, h int) { g.w, g.h = w, h }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	res := core.StepResult{Outcomes: g.outcomes}
	g.outcomes = nil
	return res
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake game")
}

func (g *fakeGame) State() core.GameState { return core.GameState{} }

type fakeSaver struct {
	saved []string
	err   error
}

func (s *fakeSaver) SaveResult(levelID string, cleared bool, ticks, moves int) (int64, error) {
	s.saved = append(s.saved, levelID)
	return int64(len(s.saved)), s.err
}

func newTestModel(g *fakeGame, opts ModelOptions) Model {
	if opts.Config.ScreenW == 0 {
		opts.Config = core.DefaultConfig()
	}
	m := NewModel(g, opts)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelInitResetsGame(t *testing.T) {
	g := &fakeGame{}
	newTestModel(g, ModelOptions{})
	if g.resets != 1 || g.w != 80 || g.h != 40 {
		t.Errorf("after Init: resets=%d size=%dx%d", g.resets, g.w, g.h)
	}
}

func TestModelKeysReachNextTick(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, ModelOptions{})

	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	if len(g.steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(g.steps))
	}
	in := g.steps[0]
	want := []core.Action{core.ActionRight, core.ActionRight, core.ActionSelectNext}
	if len(in.Order) != len(want) {
		t.Fatalf("Order = %v, want %v", in.Order, want)
	}
	for i := range want {
		if in.Order[i] != want[i] {
			t.Errorf("Order[%d] = %v, want %v", i, in.Order[i], want[i])
		}
	}

	m, _ = update(t, m, TickMsg{})
	if !g.steps[1].Empty() {
		t.Error("input should be cleared after a tick")
	}
}

func TestModelMouseClick(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, ModelOptions{})

	m, _ = update(t, m, tea.MouseMsg{X: 12, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionMotion})
	update(t, m, TickMsg{})

	clicks := g.steps[0].Clicks
	if len(clicks) != 1 || clicks[0] != (core.Point{X: 12, Y: 7}) {
		t.Errorf("Clicks = %v, want one at (12,7)", clicks)
	}
}

func TestModelSavesOutcomes(t *testing.T) {
	g := &fakeGame{}
	saver := &fakeSaver{err: errors.New("disk full")}
	m := newTestModel(g, ModelOptions{Store: saver})

	g.outcomes = []core.Outcome{{LevelID: "a", Cleared: true}, {LevelID: "b"}}
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("a failed save should not stop the loop")
	}
	if len(saver.saved) != 2 || saver.saved[0] != "a" || saver.saved[1] != "b" {
		t.Errorf("saved = %v", saver.saved)
	}
}

func TestModelQuitAndBack(t *testing.T) {
	g := &fakeGame{}

	m := newTestModel(g, ModelOptions{})
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}

	m = newTestModel(g, ModelOptions{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.IsQuitting() {
		t.Error("esc should quit a standalone game")
	}

	m = newTestModel(g, ModelOptions{Embedded: true})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.IsQuitting() || !m.Back() {
		t.Error("esc should go back in an embedded game")
	}
	steps := len(g.steps)
	_, cmd = update(t, m, TickMsg{})
	if cmd != nil || len(g.steps) != steps {
		t.Error("ticks should stop after going back")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, ModelOptions{ShowHelp: true})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 50})
	if g.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", g.resets)
	}
	if g.w != 100 || g.h != 49 {
		t.Errorf("game size = %dx%d, want 100x49 (one help row)", g.w, g.h)
	}

	view := m.View()
	if !strings.Contains(view, "fake game") {
		t.Error("view should contain the game")
	}
	if !strings.Contains(view, "select barrier") {
		t.Error("view should contain the help bar")
	}

	m, _ = update(t, m, runeKey('?'))
	if g.h >= 49 {
		t.Errorf("full help should take more rows, game height = %d", g.h)
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	g := &fakeGame{}
	m := newTestModel(g, ModelOptions{ScreenshotDir: dir})

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "fake_") {
		t.Fatalf("entries = %v", entries)
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "fake game") {
		t.Errorf("screenshot = %q", string(data)[:20])
	}
}
