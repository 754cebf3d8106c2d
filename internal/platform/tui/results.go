package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stem-the-tide/internal/engine"
	"github.com/vovakirdan/stem-the-tide/internal/storage"
)

const maxRecent = 100

// ResultsSource is the read side of the results store.
type ResultsSource interface {
	StatsSource
	RecentResults(limit int) ([]storage.Result, error)
}

// ResultsView selects what the results table shows.
type ResultsView int

const (
	ViewByLevel ResultsView = iota
	ViewRecent
)

func (v ResultsView) String() string {
	if v == ViewRecent {
		return "Recent attempts"
	}
	return "By level"
}

// ResultsKeyMap defines the key bindings for the results screen.
type ResultsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	View key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.View, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.View, k.Quit}}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		View: key.NewBinding(
			key.WithKeys("tab", "left", "right"),
			key.WithHelp("tab", "switch view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for the results screen.
type ResultsModel struct {
	source   ResultsSource
	levels   []engine.Level
	view     ResultsView
	table    table.Model
	help     help.Model
	keys     ResultsKeyMap
	theme    Theme
	width    int
	height   int
	rows     []table.Row
	err      error
	quitting bool
}

// NewResultsModel creates a results screen. levels supplies names and order;
// played levels missing from it are listed after, by id.
func NewResultsModel(source ResultsSource, levels []engine.Level, width, height int) ResultsModel {
	m := ResultsModel{
		source: source,
		levels: levels,
		help:   help.New(),
		keys:   DefaultResultsKeyMap(),
		theme:  DefaultTheme(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// ByLevelRows builds one row per level: name, attempts, clears, clear rate,
// best moves, last played.
func ByLevelRows(stats map[string]*storage.LevelStats, levels []engine.Level) []table.Row {
	seen := make(map[string]bool, len(levels))
	rows := make([]table.Row, 0, len(stats))

	add := func(id, name string) {
		st, ok := stats[id]
		if !ok {
			st = &storage.LevelStats{LevelID: id}
		}
		best, last := "-", "-"
		if st.Clears > 0 {
			best = fmt.Sprintf("%d", st.BestMoves)
		}
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("Jan 02 15:04")
		}
		rows = append(rows, table.Row{
			name,
			fmt.Sprintf("%d", st.Attempts),
			fmt.Sprintf("%d", st.Clears),
			fmt.Sprintf("%.0f%%", st.ClearRate()*100),
			best,
			last,
		})
	}

	for _, lvl := range levels {
		seen[lvl.ID] = true
		add(lvl.ID, lvl.Name)
	}

	var extra []string
	for id := range stats {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		add(id, id)
	}
	return rows
}

// RecentRows builds one row per attempt, newest first.
func RecentRows(results []storage.Result) []table.Row {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		rows[i] = table.Row{
			r.LevelID,
			r.Outcome,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Moves),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// reload fetches rows for the current view and rebuilds the table.
func (m *ResultsModel) reload() {
	m.err = nil
	m.rows = nil
	if m.source != nil {
		switch m.view {
		case ViewRecent:
			results, err := m.source.RecentResults(maxRecent)
			m.err = err
			m.rows = RecentRows(results)
		default:
			stats, err := m.source.AllLevelStats()
			m.err = err
			if err == nil {
				m.rows = ByLevelRows(stats, m.levels)
			}
		}
	}
	m.table = m.createTable()
}

// createTable creates the table for the current view and width.
func (m ResultsModel) createTable() table.Model {
	var columns []table.Column
	if m.view == ViewRecent {
		columns = []table.Column{
			{Title: "Level", Width: 22},
			{Title: "Outcome", Width: 9},
			{Title: "Ticks", Width: 7},
			{Title: "Moves", Width: 6},
			{Title: "When", Width: 14},
		}
	} else {
		columns = []table.Column{
			{Title: "Level", Width: 22},
			{Title: "Tries", Width: 6},
			{Title: "Clears", Width: 7},
			{Title: "Rate", Width: 5},
			{Title: "Best", Width: 5},
			{Title: "Last played", Width: 14},
		}
	}

	// Give the first column whatever the terminal has to spare.
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[0].Width += min(spare, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("25")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results screen.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("RESULTS - "+m.view.String()), m.width))
	b.WriteString("\n\n")

	var content string
	switch {
	case m.err != nil:
		content = m.theme.Empty.Render("Could not load results:\n" + m.err.Error())
	case len(m.rows) == 0:
		content = m.theme.Empty.Render("No attempts recorded yet.\nRelease the tide to get started!")
	default:
		content = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.theme.Border.Render(content)))
	b.WriteString("\n")
	b.WriteString(m.theme.Controls.Render(m.help.View(m.keys)))
	return b.String()
}

// CurrentView returns the view being shown.
func (m ResultsModel) CurrentView() ResultsView {
	return m.view
}

// Rows returns the rows shown for the current view.
func (m ResultsModel) Rows() []table.Row {
	return m.rows
}

// RunResults shows the results screen until the user quits.
func RunResults(source ResultsSource, levels []engine.Level, width, height int) error {
	p := tea.NewProgram(
		NewResultsModel(source, levels, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
