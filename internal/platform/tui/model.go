package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/games/annihilator"
	"github.com/vovakirdan/concrete-annihilator/internal/registry"
	"github.com/vovakirdan/concrete-annihilator/internal/storage"
)

// statusFor is how long a status message stays on the bottom line.
const statusFor = 3 * time.Second

// modal is implemented by games that expose their display mode.
type modal interface {
	Mode() annihilator.Mode
}

// snapshotter is implemented by games that can dump their state.
type snapshotter interface {
	Snapshot() annihilator.Snapshot
}

// runReporter is implemented by games that summarise a lost run.
type runReporter interface {
	LastRun() annihilator.RunSummary
}

// Option customises a Model.
type Option func(*Model)

// WithLogger sets the logger for storage and dump problems.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithDumpDir sets where ctrl+s writes state dumps.
func WithDumpDir(dir string) Option {
	return func(m *Model) { m.dumpDir = dir }
}

// WithBackToMenu lets Back leave the game from its title and loss screens.
func WithBackToMenu() Option {
	return func(m *Model) { m.allowBack = true }
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	store   *storage.Store
	config  core.RuntimeConfig
	keys    GameKeyMap
	logger  *log.Logger
	dumpDir string

	frame       core.InputFrame
	state       core.GameState
	status      string
	statusUntil time.Time

	allowBack  bool
	backToMenu bool
	quitting   bool
	saved      bool // whether the current game over has been stored
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		config:  cfg,
		keys:    DefaultGameKeyMap(),
		logger:  log.Default(),
		dumpDir: defaultDumpDir(),
		frame:   core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func defaultDumpDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".annihilator", "dumps")
	}
	return filepath.Join(home, ".annihilator", "dumps")
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The arena is resolution independent; only the viewport changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions are collected into the frame
// and applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dump):
		m.dump()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionBack && m.allowBack && m.canLeave() {
		m.backToMenu = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.frame.Set(action)
	}
	return m, nil
}

// canLeave reports whether the game sits on a screen Back may leave.
func (m Model) canLeave() bool {
	g, ok := m.game.(modal)
	if !ok {
		return m.state.GameOver
	}
	mode := g.Mode()
	return mode == annihilator.ModeMenu || mode == annihilator.ModeLoss
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.frame)
	m.state = result.State
	m.frame.Clear()

	switch {
	case m.state.GameOver && !m.saved:
		m.saveRun()
		m.saved = true
	case !m.state.GameOver:
		m.saved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the finished run. Storage problems are logged, the game
// goes on.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}

	if r, ok := m.game.(runReporter); ok {
		run := r.LastRun()
		_, err := m.store.SaveRun(storage.RunRecord{
			GameID:   m.game.ID(),
			Wave:     run.Wave,
			Damage:   run.Stats.Damage,
			BallSize: run.Stats.BallSize,
			MaxBalls: run.Stats.MaxBalls,
			Seed:     run.Seed,
		})
		if err != nil {
			m.logger.Warn("could not save run", "game", m.game.ID(), "err", err)
		}
		return
	}

	if m.state.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.state.Score); err != nil {
			m.logger.Warn("could not save score", "game", m.game.ID(), "err", err)
		}
	}
}

// dump writes the current screen as text and, when the game supports it,
// a msgpack snapshot next to it.
func (m *Model) dump() {
	if err := os.MkdirAll(m.dumpDir, 0o755); err != nil {
		m.setStatus("dump failed: " + err.Error())
		return
	}

	base := filepath.Join(m.dumpDir, fmt.Sprintf("%s_%s", m.game.ID(), time.Now().Format("20060102_150405")))

	m.game.Render(m.screen)
	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		m.setStatus("dump failed: " + err.Error())
		return
	}

	if g, ok := m.game.(snapshotter); ok {
		data, err := g.Snapshot().MarshalBinary()
		if err == nil {
			err = os.WriteFile(base+".msgpack", data, 0o600)
		}
		if err != nil {
			m.setStatus("dump failed: " + err.Error())
			return
		}
	}
	m.setStatus("saved " + base)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(statusFor)
	m.logger.Info(s)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && time.Now().Before(m.statusUntil) {
		m.screen.DrawTextColored(0, m.screen.Height()-1, m.status, core.ColorBrightGreen)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the mode picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
