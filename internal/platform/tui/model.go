package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/leaderboard"
	"github.com/vovakirdan/tui-pairs/internal/registry"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

// screen identifies the view the app is showing.
type screen int

const (
	screenStart screen = iota
	screenGame
	screenResults
)

const (
	toastDuration = 3 * time.Second
	nameLimit     = 24
)

// Options configures the app model.
type Options struct {
	Store    *storage.Store    // Local run log, may be nil
	Board    leaderboard.Board // Shared leaderboard, nil uses the local run log
	Settings config.PairsConfig
	Logger   *log.Logger
	Player   string // Name prefilled on the start screen
	Mode     string // Mode selected on the start screen
}

// leaderboardMsg carries the result of a leaderboard fetch.
type leaderboardMsg struct {
	entries []leaderboard.Entry
	err     error
}

// submittedMsg carries the result of a score submission.
type submittedMsg struct {
	err error
}

// toastExpiredMsg clears the toast it was scheduled for.
type toastExpiredMsg struct {
	id int
}

// Model is the Bubble Tea model for a pairs session: the start screen,
// the game itself and the results screen.
type Model struct {
	opts   Options
	config core.RuntimeConfig
	logger *log.Logger

	screen    screen
	modes     []registry.GameInfo
	modeIdx   int
	nameInput textinput.Model

	game       registry.Game
	canvas     *core.Screen
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	run        int  // Incremented per started game; older ticks are dropped
	recorded   bool // Whether the finished run has been saved and submitted
	result     core.RunResult
	hasResult  bool

	entries      []leaderboard.Entry
	boardLoading bool
	table        table.Model

	toast   string
	toastID int

	keys     AppKeyMap
	help     help.Model
	quitting bool
}

// NewModel creates the app model.
func NewModel(cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if len(opts.Settings.Faces) == 0 {
		opts.Settings = config.DefaultPairsConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = nameLimit
	ti.Width = nameLimit
	ti.SetValue(opts.Player)
	ti.Focus()

	m := Model{
		opts:       opts,
		config:     cfg,
		logger:     logger,
		modes:      registry.List(),
		nameInput:  ti,
		canvas:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		keys:       DefaultAppKeyMap(),
		help:       help.New(),
	}
	for i, g := range m.modes {
		if g.ID == opts.Mode {
			m.modeIdx = i
		}
	}
	m.table = newLeaderboardTable(m.tableHeight())
	m.boardLoading = m.board() != nil

	return m
}

// Init focuses the name field and loads the leaderboard.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchLeaderboard())
}

// modeID returns the selected mode.
func (m Model) modeID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.modeIdx].ID
}

// board returns the leaderboard for the selected mode, or nil when there
// is none.
func (m Model) board() leaderboard.Board {
	if m.opts.Board != nil {
		return m.opts.Board
	}
	if m.opts.Store != nil {
		return m.opts.Store.Board(m.modeID())
	}
	return nil
}

func (m Model) tableHeight() int {
	return min(m.opts.Settings.Leaderboard.Top, 10) + 1
}

// fetchLeaderboard loads the top entries in the background.
func (m Model) fetchLeaderboard() tea.Cmd {
	board := m.board()
	if board == nil {
		return nil
	}
	top := m.opts.Settings.Leaderboard.Top
	timeout := m.opts.Settings.LeaderboardTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := board.Top(ctx, top)
		return leaderboardMsg{entries: entries, err: err}
	}
}

// submitRun sends a finished run to the leaderboard in the background.
func (m Model) submitRun(res core.RunResult) tea.Cmd {
	board := m.board()
	if board == nil {
		return nil
	}
	rec := leaderboard.FromRun(res)
	timeout := m.opts.Settings.LeaderboardTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return submittedMsg{err: board.Submit(ctx, rec)}
	}
}

// saveLocal keeps a copy of a run in the local log when scores go to a
// shared board.
func (m Model) saveLocal(res core.RunResult) {
	if m.opts.Board == nil || m.opts.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := m.opts.Store.Board(res.Mode).Submit(ctx, leaderboard.FromRun(res)); err != nil {
		m.logger.Warn("could not save run locally", "error", err)
	}
}

// showToast shows a status message for toastDuration. A newer toast
// replaces the text and its timeout.
func (m *Model) showToast(text string) tea.Cmd {
	m.toastID++
	m.toast = text
	id := m.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.screen {
		case screenGame:
			return m.handleGameKey(msg)
		case screenResults:
			return m.handleResultsKey(msg)
		default:
			return m.handleStartKey(msg)
		}

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Run != m.run || m.game == nil {
			return m, nil
		}
		return m.handleTick()

	case leaderboardMsg:
		return m.handleLeaderboard(msg)

	case submittedMsg:
		if msg.err != nil {
			m.logger.Warn("could not submit score", "error", msg.err)
			cmd := m.showToast("Could not submit score")
			return m, cmd
		}
		m.boardLoading = true
		toast := m.showToast("Score submitted")
		return m, tea.Batch(toast, m.fetchLeaderboard())

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil
	}

	if m.screen == screenStart {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleLeaderboard stores fetched entries. A malformed response reads as
// an empty board, anything else is reported.
func (m Model) handleLeaderboard(msg leaderboardMsg) (tea.Model, tea.Cmd) {
	m.boardLoading = false
	m.entries = msg.entries
	m.table.SetRows(entryRows(m.entries))
	m.table.GotoTop()

	if msg.err == nil {
		return m, nil
	}
	m.logger.Warn("could not load leaderboard", "error", msg.err)
	if errors.Is(msg.err, leaderboard.ErrMalformedResponse) {
		return m, nil
	}
	cmd := m.showToast("Could not load leaderboard")
	return m, cmd
}

// handleStartKey processes keys on the start screen.
func (m Model) handleStartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c" || msg.String() == "esc":
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		return m.startGame()

	case key.Matches(msg, m.keys.NextMode):
		return m.selectMode(m.modeIdx + 1)

	case key.Matches(msg, m.keys.PrevMode):
		return m.selectMode(m.modeIdx - 1)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// selectMode switches the selected mode and reloads its board when the
// local run log serves it.
func (m Model) selectMode(idx int) (tea.Model, tea.Cmd) {
	if len(m.modes) == 0 {
		return m, nil
	}
	m.modeIdx = (idx + len(m.modes)) % len(m.modes)
	if m.opts.Board != nil {
		return m, nil
	}
	m.boardLoading = m.board() != nil
	return m, m.fetchLeaderboard()
}

// startGame begins a run for the entered name. An empty name only
// prompts for one.
func (m Model) startGame() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		cmd := m.showToast("Please enter your name first")
		return m, cmd
	}
	if len(m.modes) == 0 {
		cmd := m.showToast("No game modes available")
		return m, cmd
	}

	game, err := registry.Create(m.modeID())
	if err != nil {
		m.logger.Error("cannot create game", "mode", m.modeID(), "error", err)
		cmd := m.showToast("Cannot start game")
		return m, cmd
	}

	cfg := m.config
	cfg.Player = name
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	game.Reset(cfg)

	m.config.Player = name
	m.game = game
	m.gameState = game.State()
	m.recorded = false
	m.hasResult = false
	m.inputFrame.Clear()
	m.run++
	m.screen = screenGame
	m.nameInput.Blur()

	m.logger.Debug("game started", "mode", game.ID(), "player", name)
	return m, tickCmd(m.config.TickRate, m.run)
}

// backToStart abandons the current game and shows the start screen.
func (m Model) backToStart() (tea.Model, tea.Cmd) {
	m.game = nil
	m.run++
	m.screen = screenStart
	m.inputFrame.Clear()
	m.boardLoading = m.board() != nil
	focus := m.nameInput.Focus()
	return m, tea.Batch(focus, m.fetchLeaderboard())
}

// handleGameKey processes keys while a game is on screen.
func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Scores) && m.gameState.GameOver {
		m.screen = screenResults
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		return m.backToStart()
	}
	return m, nil
}

// handleResultsKey processes keys on the results screen.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		return m.backToStart()

	case key.Matches(msg, m.keys.Replay):
		// The game restarts on the next tick and keeps the player name
		m.inputFrame.Set(core.ActionRestart)
		m.screen = screenGame
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.canvas.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if m.game == nil {
		return m, nil
	}
	if r, ok := m.game.(interface{ Resize(w, h int) }); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	// R on a finished run starts a new one inside the game
	if wasOver && !m.gameState.GameOver {
		m.recorded = false
		m.hasResult = false
		m.screen = screenGame
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.run)}

	// Record the run once
	if m.gameState.GameOver && !m.recorded {
		m.recorded = true
		if res, ok := m.game.Result(); ok {
			m.result, m.hasResult = res, true
			m.logger.Info("run finished",
				"mode", res.Mode, "player", res.Player, "outcome", res.Outcome(),
				"turns", res.Turns, "time", res.Time)
			m.saveLocal(res)
			if cmd := m.submitRun(res); cmd != nil {
				m.boardLoading = true
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.viewGame()
	case screenResults:
		return m.viewResults()
	default:
		return m.viewStart()
	}
}

// viewGame renders the game with the toast over its instruction line.
func (m Model) viewGame() string {
	m.game.Render(m.canvas)
	if m.toast != "" && m.canvas.Height() >= 2 {
		y := m.canvas.Height() - 2
		m.canvas.DrawRect(core.NewRect(0, y, m.canvas.Width(), 1), ' ', core.ColorDefault)
		m.canvas.DrawTextCentered(y, m.toast, core.ColorSky)
	}
	return RenderScreen(m.canvas)
}

// Run starts the Bubble Tea program with a new app model.
func Run(cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
