package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stem-the-tide/internal/core"
)

// Game is the contract the terminal loop drives.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Resize(w, h int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// ResultSaver persists level outcomes.
type ResultSaver interface {
	SaveResult(levelID string, cleared bool, ticks, moves int) (int64, error)
}

// ModelOptions configures a Model.
type ModelOptions struct {
	Config core.RuntimeConfig
	Store  ResultSaver // nil disables result saving
	Logger *log.Logger

	// ShowHelp draws the key help bar under the game.
	ShowHelp bool

	// Embedded models report Back instead of quitting on Esc, so a parent
	// model can return to its level picker.
	Embedded bool

	// ScreenshotDir receives ctrl+s dumps. Empty disables screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game   Game
	screen *core.Screen
	opts   ModelOptions
	logger *log.Logger

	keys     KeyMap
	help     help.Model
	config   core.RuntimeConfig
	input    core.InputFrame
	state    core.GameState
	quitting bool
	back     bool
}

// NewModel creates a model for the given game.
func NewModel(game Game, opts ModelOptions) Model {
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:   game,
		opts:   opts,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   h,
		config: cfg,
		input:  core.NewInputFrame(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.gameHeight())
	return m
}

// Init starts a new run and the tick loop.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = m.gameHeight()
	m.game.Reset(cfg)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.input.Click(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.opts.Embedded {
			m.back = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	default:
		m.input.Set(action)
	}
	return m, nil
}

// resize fits the game to the space left above the help bar.
// The run itself is kept.
func (m *Model) resize() {
	h := m.gameHeight()
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

func (m Model) gameHeight() int {
	h := m.config.ScreenH - m.helpHeight()
	if h < 0 {
		h = 0
	}
	return h
}

func (m Model) helpHeight() int {
	if !m.opts.ShowHelp {
		return 0
	}
	return lipgloss.Height(m.help.View(m.keys))
}

// handleTick runs one simulation step with the input gathered since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.back || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.input)
	m.state = result.State
	for _, out := range result.Outcomes {
		m.saveOutcome(out)
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveOutcome records a level result. Failures are logged and play goes on.
func (m Model) saveOutcome(out core.Outcome) {
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveResult(out.LevelID, out.Cleared, out.Ticks, out.Moves); err != nil {
		m.logger.Warn("could not save result", "level", out.LevelID, "error", err)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.opts.ShowHelp {
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Back returns true if the user asked to leave the game.
func (m Model) Back() bool {
	return m.back
}

// Run starts the Bubble Tea program for a single game.
func Run(game Game, opts ModelOptions) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
