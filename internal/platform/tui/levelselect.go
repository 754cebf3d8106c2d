package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stem-the-tide/internal/engine"
	"github.com/vovakirdan/stem-the-tide/internal/storage"
)

// StatsSource provides per-level history for the picker.
type StatsSource interface {
	AllLevelStats() (map[string]*storage.LevelStats, error)
}

// LevelPickerModel lets the player choose the level a run starts at.
type LevelPickerModel struct {
	levels       []engine.Level
	stats        map[string]*storage.LevelStats
	cursor       int
	width        int
	height       int
	scrollOffset int
	theme        Theme
	chosen       bool
	quitting     bool
}

// NewLevelPickerModel creates a picker over the given levels.
// stats may be nil.
func NewLevelPickerModel(levels []engine.Level, stats StatsSource, width, height int) LevelPickerModel {
	m := LevelPickerModel{
		levels: levels,
		width:  width,
		height: height,
		theme:  DefaultTheme(),
	}
	if stats != nil {
		// Missing history only hides the markers.
		if all, err := stats.AllLevelStats(); err == nil {
			m.stats = all
		}
	}
	return m
}

// Init initializes the model.
func (m LevelPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
	}
	return m, nil
}

func (m LevelPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LevelPickerModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll keeps the cursor on screen.
func (m *LevelPickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level list.
func (m LevelPickerModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("S T E M   T H E   T I D E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Description.Render("Choose where the run starts:"), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(m.theme.Empty.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.levels))
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := m.theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.ItemActive
		}
		line := style.Render(fmt.Sprintf("%s%2d. %s", cursor, i+1, m.levels[i].Name)) + m.marker(m.levels[i].ID)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < len(m.levels) {
		b.WriteString(centerText(m.theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	if m.cursor < len(m.levels) && m.levels[m.cursor].Hint != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Description.Render(m.levels[m.cursor].Hint), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Play  |  Esc/Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// marker shows the level's history: best clear or attempts so far.
func (m LevelPickerModel) marker(id string) string {
	st, ok := m.stats[id]
	if !ok || st.Attempts == 0 {
		return ""
	}
	if st.Clears > 0 {
		return m.theme.Cleared.Render(fmt.Sprintf("  ✓ best %d moves", st.BestMoves))
	}
	return m.theme.Breached.Render(fmt.Sprintf("  ✗ %d tries", st.Attempts))
}

// Selected returns the chosen level index, or -1 while still choosing.
func (m LevelPickerModel) Selected() int {
	if !m.chosen {
		return -1
	}
	return m.cursor
}

// IsQuitting returns true if the user left without choosing.
func (m LevelPickerModel) IsQuitting() bool {
	return m.quitting
}

// RunLevelPicker shows the picker and returns the chosen index, or -1.
func RunLevelPicker(levels []engine.Level, stats StatsSource, width, height int) (int, error) {
	p := tea.NewProgram(
		NewLevelPickerModel(levels, stats, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return -1, err
	}
	m, ok := final.(LevelPickerModel)
	if !ok {
		return -1, nil
	}
	return m.Selected(), nil
}
