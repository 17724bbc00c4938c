package pairs

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/registry"
)

// Registered mode IDs.
const (
	IDClassic = "pairs"
	IDTimed   = "pairs_timed"
)

// DefaultPlayer is used when a run is reset without a player name.
const DefaultPlayer = "Unknown"

const statusDuration = time.Second

// Package-level settings shared by every game instance.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultPairsConfig()
	logger     = log.New(io.Discard)
)

// Configure sets the configuration used by games created after the call.
func Configure(cfg config.PairsConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// Settings returns the current configuration.
func Settings() config.PairsConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// SetLogger sets the logger handed to new controllers.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	logger = l
}

func currentLogger() *log.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return logger
}

// Game adapts a Controller to the platform game loop: it maps input to
// cursor moves and flips, advances virtual time by one tick per Step,
// and draws the board.
type Game struct {
	timed bool
	cfg   config.PairsConfig

	ctrl   *Controller
	events EventQueue
	rng    *rand.Rand

	tick     uint64
	tickRate int
	tickDur  time.Duration
	played   time.Duration // Virtual time handed to the controller so far
	cursor   int
	grid     core.Grid

	screenW  int
	screenH  int
	tooSmall bool

	status       string
	statusTask   Handle
	confetti     *Confetti
	confettiTask Handle
	announced    bool // Win/lose overlay visible
}

// New creates a classic game with a count-up clock.
func New() *Game {
	return &Game{}
}

// NewTimed creates a game with a countdown clock.
func NewTimed() *Game {
	return &Game{timed: true}
}

func init() {
	registry.Register(IDClassic, "Match every pair within the turn limit", func() registry.Game {
		return New()
	})
	registry.Register(IDTimed, "Match every pair before the countdown ends", func() registry.Game {
		return NewTimed()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.timed {
		return IDTimed
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.timed {
		return "Pairs (Timed)"
	}
	return "Pairs"
}

// Reset deals a new deck and starts a run for cfg.Player.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = Settings()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickRate = tickRate
	g.tickDur = time.Second / time.Duration(tickRate)
	g.tick = 0
	g.played = 0

	g.events = EventQueue{}
	g.ctrl = NewController(Options{
		Faces:         Faces(g.cfg.Faces),
		Budget:        g.budget(),
		MismatchDelay: g.cfg.MismatchDelay(),
		MinSettle:     g.tickDur,
		Mode:          g.ID(),
		Rand:          g.rng,
		Logger:        currentLogger(),
	}, &g.events)

	player := cfg.Player
	if err := g.ctrl.Start(player); err != nil {
		player = DefaultPlayer
		if err := g.ctrl.Start(player); err != nil {
			currentLogger().Error("start failed", "player", player, "err", err)
		}
	}

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.layout()
	g.newRun()
}

// Resize adapts the layout to a new screen size without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.layout()
}

func (g *Game) budget() Budget {
	mode, err := ParseClockMode(g.cfg.Timer.Mode)
	if err != nil {
		mode = ClockUp
	}
	if g.timed {
		mode = ClockDown
	}
	return Budget{
		TurnLimit: g.cfg.TurnLimit,
		Clock:     mode,
		Duration:  g.cfg.TimerDuration(),
	}
}

// newRun clears per-run presentation state.
func (g *Game) newRun() {
	g.cursor = 0
	g.status = ""
	g.statusTask = Handle{}
	g.confetti = nil
	g.confettiTask = Handle{}
	g.announced = false
	g.events.Drain()
}

// layout picks a near-square grid for the deck.
func (g *Game) layout() {
	n := len(g.ctrl.Deck())
	g.grid = core.SquareGrid(n, cardWidth, cardHeight, cardGap)

	gridW, gridH := g.grid.Size()
	g.tooSmall = g.screenW < gridW+2 || g.screenH < gridH+hudHeight+footerHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if g.ctrl.Outcome().Terminal() {
		if in.Has(core.ActionRestart) {
			if err := g.ctrl.Restart(); err == nil {
				g.newRun()
			}
		}
	} else {
		g.handleInput(in)
	}

	g.advanceClock()
	g.handleEvents()

	if g.confetti != nil {
		g.confetti.Update(g.tickDur)
	}

	return core.StepResult{State: g.State()}
}

// advanceClock moves the controller to tick/tickRate seconds. Computing
// from the tick count keeps 60 ticks at 60 Hz equal to exactly one second.
func (g *Game) advanceClock() {
	now := time.Duration(g.tick) * time.Second / time.Duration(g.tickRate)
	g.ctrl.Advance(now - g.played)
	g.played = now
}

func (g *Game) handleInput(in core.InputFrame) {
	dc, dr := 0, 0
	switch {
	case in.Has(core.ActionLeft):
		dc = -1
	case in.Has(core.ActionRight):
		dc = 1
	case in.Has(core.ActionUp):
		dr = -1
	case in.Has(core.ActionDown):
		dr = 1
	}
	g.cursor = g.grid.Move(g.cursor, dc, dr, len(g.ctrl.Deck()))

	if in.Has(core.ActionConfirm) {
		g.ctrl.Flip(g.cursor)
	}
}

func (g *Game) handleEvents() {
	for _, e := range g.events.Drain() {
		switch ev := e.(type) {
		case CardMatched:
			g.flash("Match!")
		case CardsReset:
			if ev.Indices != nil {
				g.flash("No match")
			}
		case GameWon:
			g.ctrl.Scheduler().After(max(g.cfg.MatchDelay(), g.tickDur), func() {
				g.announced = true
				g.startConfetti()
			})
		case GameLost:
			g.announced = true
		}
	}
}

// flash shows a short status line in the HUD. A newer message replaces
// the older one and restarts its timeout.
func (g *Game) flash(msg string) {
	sched := g.ctrl.Scheduler()
	sched.Cancel(g.statusTask)
	g.status = msg
	g.statusTask = sched.After(statusDuration, func() {
		g.status = ""
	})
}

func (g *Game) startConfetti() {
	if g.confetti != nil || g.cfg.Confetti.Pieces <= 0 {
		return
	}
	g.confetti = NewConfetti(g.rng, g.screenW, g.screenH, g.cfg.Confetti.Pieces)
	g.confettiTask = g.ctrl.Scheduler().After(g.cfg.ConfettiDuration(), func() {
		g.confetti = nil
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	o := g.ctrl.Outcome()
	return core.GameState{
		Score:    g.ctrl.Matched() / 2,
		GameOver: o.Terminal(),
		Won:      o == Won,
		Paused:   g.tooSmall,
	}
}

// Result returns the finished run.
func (g *Game) Result() (core.RunResult, bool) {
	return g.ctrl.Result()
}

// Controller returns the session controller.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD Move | Space Flip | R Restart | Tab Scores | B Back | Q Quit"
}
