package tui

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetromino/internal/audio"
	"github.com/vovakirdan/tui-tetromino/internal/core"
)

// footerHeight is the number of rows below the game reserved for key help.
const footerHeight = 1

// DefaultHoldWindow is how long a movement key counts as held after its last
// key event.
const DefaultHoldWindow = 120 * time.Millisecond

// Game is the contract between the platform and a game.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(input core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new screen size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// Options configure a Model.
type Options struct {
	Config     core.RuntimeConfig
	Player     audio.Player
	Logger     *log.Logger
	HoldWindow time.Duration
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	interval   time.Duration
	keys       KeyMap
	help       help.Model
	held       *HeldKeys
	player     audio.Player
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	started    bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, opts Options) Model {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenH = max(0, cfg.ScreenH-footerHeight)

	player := opts.Player
	if player == nil {
		player = audio.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	window := opts.HoldWindow
	if window <= 0 {
		window = DefaultHoldWindow
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		interval:   frameInterval(cfg.TickRate),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		held:       NewHeldKeys(window),
		player:     player,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.game.Reset(cfg)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.started {
		m.started = true
		m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)
		m.startMusic()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case action == core.ActionNone:
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	case Holdable(action):
		// Auto-repeat events only keep the hold alive; the game repeats the move itself.
		if m.held.Press(action, m.lastTick) {
			m.inputFrame.Set(action)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(0, msg.Height-footerHeight)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.lastTick = now
	if !m.started {
		return m, tickCmd(m.interval)
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = now.UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.held.Reset()
		m.inputFrame.Clear()
		m.logger.Info("game restarted", "seed", m.config.Seed)
		m.startMusic()
		return m, tickCmd(m.interval)
	}

	for _, a := range m.held.Expire(now) {
		m.inputFrame.Release(a)
	}
	m.inputFrame.Now = now

	wasPaused := m.gameState.Paused
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.report(wasPaused, result)

	m.inputFrame.Clear()
	return m, tickCmd(m.interval)
}

// report logs and plays sounds for the frame's events.
func (m Model) report(wasPaused bool, result core.StepResult) {
	ev := result.Events
	switch {
	case result.State.Paused && !wasPaused:
		m.logger.Info("paused", "score", result.State.Score)
		m.player.PauseMusic(true)
	case !result.State.Paused && wasPaused:
		m.logger.Info("resumed")
		m.player.PauseMusic(false)
	}
	if ev.LinesCleared > 0 {
		m.logger.Debug("lines cleared",
			"lines", ev.LinesCleared,
			"score", result.State.Score,
			"level", result.State.Level,
		)
	}
	if ev.GameOver {
		m.logger.Info("game over", "score", result.State.Score, "level", result.State.Level)
		m.player.StopMusic()
	}
	for _, c := range audio.CuesFor(ev) {
		m.player.Play(c)
	}
}

// startMusic plays the song picked by the current seed.
func (m Model) startMusic() {
	song := audio.SongFor(m.config.Seed)
	m.logger.Debug("music", "song", song)
	m.player.StartMusic(song)
}

// Started reports whether the player has left the title screen.
func (m Model) Started() bool {
	return m.started
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.started {
		return RenderTitle(m.config.ScreenW, m.config.ScreenH+footerHeight, m.game.Title())
	}

	m.game.Render(m.screen)
	footer := m.help.View(m.keys)

	// The full help is taller than the footer; it covers the bottom rows.
	rows := strings.Split(RenderScreen(m.screen), "\n")
	if extra := strings.Count(footer, "\n") + 1 - footerHeight; extra > 0 {
		rows = rows[:max(0, len(rows)-extra)]
	}
	return strings.Join(append(rows, footerStyle.Render(footer)), "\n")
}

// Run starts the Bubble Tea program for the game and blocks until it exits.
func Run(game Game, opts Options) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
