package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stem-the-tide/internal/engine"
	"github.com/vovakirdan/stem-the-tide/internal/storage"
)

func namedLevels() []engine.Level {
	return []engine.Level{
		{ID: "01-basic-diversion", Name: "Basic Diversion", Hint: "Move the wall."},
		{ID: "02-weak-vs-strong", Name: "Weak vs Strong"},
	}
}

func TestByLevelRows(t *testing.T) {
	played := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	stats := map[string]*storage.LevelStats{
		"01-basic-diversion": {LevelID: "01-basic-diversion", Attempts: 4, Clears: 1, BestMoves: 9, LastPlayed: played},
		"99-custom":          {LevelID: "99-custom", Attempts: 1},
	}

	rows := ByLevelRows(stats, namedLevels())
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	first := rows[0]
	if first[0] != "Basic Diversion" || first[1] != "4" || first[2] != "1" || first[3] != "25%" || first[4] != "9" {
		t.Errorf("rows[0] = %v", first)
	}
	if first[5] != "Mar 04 10:30" {
		t.Errorf("last played = %q", first[5])
	}
	if rows[1][0] != "Weak vs Strong" || rows[1][1] != "0" || rows[1][4] != "-" {
		t.Errorf("unplayed row = %v", rows[1])
	}
	if rows[2][0] != "99-custom" {
		t.Errorf("unknown level should be listed last by id, got %v", rows[2])
	}
}

func TestRecentRows(t *testing.T) {
	when := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	rows := RecentRows([]storage.Result{
		{LevelID: "a", Outcome: storage.OutcomeBreached, Ticks: 300, Moves: 2, CreatedAt: when},
	})
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	want := []string{"a", "breached", "300", "2", "Jan 02 03:04"}
	for i, w := range want {
		if rows[0][i] != w {
			t.Errorf("col %d = %q, want %q", i, rows[0][i], w)
		}
	}
}

func TestResultsModelWithStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	store.SaveResult("01-basic-diversion", true, 370, 12)
	store.SaveResult("01-basic-diversion", false, 300, 1)
	store.SaveResult("02-weak-vs-strong", false, 290, 4)

	m := NewResultsModel(store, namedLevels(), 100, 30)
	if m.CurrentView() != ViewByLevel || len(m.Rows()) != 2 {
		t.Fatalf("by-level rows = %d", len(m.Rows()))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ResultsModel)
	if m.CurrentView() != ViewRecent || len(m.Rows()) != 3 {
		t.Fatalf("recent rows = %d", len(m.Rows()))
	}
	if !strings.Contains(m.View(), "Recent attempts") {
		t.Error("title should name the view")
	}

	next, _ = m.Update(runeKey('q'))
	if next.(ResultsModel).View() != "" {
		t.Error("quitting screen should render nothing")
	}
}

type brokenSource struct{}

func (brokenSource) AllLevelStats() (map[string]*storage.LevelStats, error) {
	return nil, errors.New("database is locked")
}

func (brokenSource) RecentResults(int) ([]storage.Result, error) {
	return nil, errors.New("database is locked")
}

func TestResultsModelShowsErrors(t *testing.T) {
	m := NewResultsModel(brokenSource{}, namedLevels(), 100, 30)
	if !strings.Contains(m.View(), "database is locked") {
		t.Error("load error should be shown")
	}

	empty := NewResultsModel(nil, nil, 100, 30)
	if !strings.Contains(empty.View(), "No attempts recorded yet") {
		t.Error("empty results message missing")
	}
}
