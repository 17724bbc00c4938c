package pairs

import (
	"errors"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

// Errors returned by the controller.
var (
	ErrEmptyPlayerName = errors.New("pairs: player name is required")
	ErrNotStarted      = errors.New("pairs: game has not been started")
)

// Options configures a Controller.
type Options struct {
	Faces         []FaceID
	Budget        Budget
	MismatchDelay time.Duration // Lock after a mismatch before the cards turn back
	MinSettle     time.Duration // Lower bound for the mismatch delay, usually one tick
	Mode          string        // Recorded in results
	Rand          *rand.Rand
	Logger        *log.Logger
}

// Controller owns one play session: the deck, the pending selection,
// the budgets and the scheduled tasks. Every mutation goes through
// Start, Flip, Restart or Advance and is reported to the EventSink.
// A Controller is not safe for concurrent use.
type Controller struct {
	opts   Options
	rng    *rand.Rand
	sched  *Scheduler
	sink   EventSink
	logger *log.Logger
	state  *outcomeMachine

	player  string
	started bool

	deck    []Card
	pending []int
	locked  bool
	turns   int
	elapsed int

	clock  Handle
	settle Handle

	result    core.RunResult
	hasResult bool
}

// NewController creates a controller. A nil sink discards events.
func NewController(opts Options, sink EventSink) *Controller {
	if sink == nil {
		sink = discardSink{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Controller{
		opts:   opts,
		rng:    rng,
		sched:  NewScheduler(),
		sink:   sink,
		logger: logger,
	}
	c.state = newOutcomeMachine(func(from, to Outcome) {
		c.logger.Debug("outcome changed", "from", from, "to", to, "player", c.player, "turns", c.turns)
	})
	return c
}

// Start begins a run for the named player. An empty name is rejected
// without changing any state.
func (c *Controller) Start(player string) error {
	player = strings.TrimSpace(player)
	if player == "" {
		return ErrEmptyPlayerName
	}
	c.player = player
	return c.newRun()
}

// Restart deals a fresh deck for the same player and starts the clock over.
func (c *Controller) Restart() error {
	if !c.started {
		return ErrNotStarted
	}
	return c.newRun()
}

func (c *Controller) newRun() error {
	c.sched.CancelAll()
	c.clock = Handle{}
	c.settle = Handle{}

	if c.state.Current().Terminal() {
		if err := c.state.Transition(InProgress); err != nil {
			return err
		}
	}

	c.deck = BuildDeck(c.opts.Faces, c.rng)
	c.pending = c.pending[:0]
	c.locked = false
	c.turns = 0
	c.elapsed = 0
	c.result = core.RunResult{}
	c.hasResult = false
	c.started = true

	c.logger.Debug("run started", "player", c.player, "mode", c.opts.Mode, "cards", len(c.deck))

	c.sink.Emit(CardsReset{})
	c.sink.Emit(TurnsChanged{Turns: 0})
	c.sink.Emit(TimeChanged{Seconds: 0, Display: c.Display()})

	c.clock = c.sched.Every(time.Second, c.tick)
	return nil
}

// Flip turns the card at index i face up. It returns false and changes
// nothing when the flip is not allowed: before Start, after the run is
// over, while the board is locked, or for a card that is already face up.
func (c *Controller) Flip(i int) bool {
	if !c.started || c.state.Current().Terminal() || c.locked {
		return false
	}
	if i < 0 || i >= len(c.deck) || c.deck[i].State != StateHidden {
		return false
	}

	c.deck[i].State = StateRevealed
	c.pending = append(c.pending, i)
	c.sink.Emit(CardRevealed{Index: i, Face: c.deck[i].Face})

	if len(c.pending) == 2 {
		c.resolve()
	}
	return true
}

func (c *Controller) resolve() {
	a, b := c.pending[0], c.pending[1]
	c.locked = true

	if c.deck[a].Face == c.deck[b].Face {
		c.deck[a].State = StateMatched
		c.deck[b].State = StateMatched
		c.pending = c.pending[:0]
		c.sink.Emit(CardMatched{First: a, Second: b, Face: c.deck[a].Face})
		c.unlock()
		c.evaluate()
		return
	}

	c.turns++
	c.sink.Emit(TurnsChanged{Turns: c.turns})
	c.settle = c.sched.After(c.settleDelay(c.opts.MismatchDelay), func() {
		c.deck[a].State = StateHidden
		c.deck[b].State = StateHidden
		c.pending = c.pending[:0]
		c.sink.Emit(CardsReset{Indices: []int{a, b}})
		c.unlock()

		if c.opts.Budget.TurnsExhausted(c.turns) {
			c.evaluate()
		}
	})
}

func (c *Controller) unlock() {
	c.locked = false
	c.settle = Handle{}
}

func (c *Controller) settleDelay(d time.Duration) time.Duration {
	return max(d, c.opts.MinSettle, time.Millisecond)
}

// tick runs once per second of play.
func (c *Controller) tick() {
	c.elapsed++
	c.sink.Emit(TimeChanged{Seconds: c.elapsed, Display: c.Display()})

	if c.opts.Budget.TimeExhausted(c.elapsed) {
		c.evaluate()
	}
}

// evaluate ends the run if the board is complete or a budget is spent.
// Returns true if the run ended.
func (c *Controller) evaluate() bool {
	switch Evaluate(c.Matched() == len(c.deck), c.opts.Budget.Exceeded(c.turns, c.elapsed)) {
	case Won:
		c.finish(Won)
		return true
	case Lost:
		c.finish(Lost)
		return true
	default:
		return false
	}
}

func (c *Controller) finish(o Outcome) {
	c.sched.CancelAll()
	c.clock = Handle{}
	c.settle = Handle{}
	c.locked = false

	if err := c.state.Transition(o); err != nil {
		c.logger.Error("outcome transition failed", "err", err)
		return
	}

	c.result = core.RunResult{
		Player:  c.player,
		Mode:    c.opts.Mode,
		Turns:   c.turns,
		Time:    c.Display(),
		Seconds: c.elapsed,
		Won:     o == Won,
	}
	c.hasResult = true

	c.logger.Info("run finished",
		"player", c.player, "outcome", o, "turns", c.turns, "time", c.result.Time)

	if o == Won {
		c.sink.Emit(GameWon{Result: c.result})
	} else {
		c.sink.Emit(GameLost{Result: c.result})
	}
}

// Advance moves the session clock forward, firing due settle and clock tasks.
func (c *Controller) Advance(dt time.Duration) {
	c.sched.Advance(dt)
}

// Player returns the current player name.
func (c *Controller) Player() string { return c.player }

// Started reports whether Start has succeeded.
func (c *Controller) Started() bool { return c.started }

// Outcome returns the state of the current run.
func (c *Controller) Outcome() Outcome { return c.state.Current() }

// Turns returns the mismatches in the current run.
func (c *Controller) Turns() int { return c.turns }

// Elapsed returns the seconds played in the current run.
func (c *Controller) Elapsed() int { return c.elapsed }

// Locked reports whether flips are currently rejected by a settle delay.
func (c *Controller) Locked() bool { return c.locked }

// ClockRunning reports whether the run clock is ticking.
func (c *Controller) ClockRunning() bool { return c.sched.Active(c.clock) }

// Settling reports whether a settle delay is pending.
func (c *Controller) Settling() bool { return c.sched.Active(c.settle) }

// Budget returns the run limits.
func (c *Controller) Budget() Budget { return c.opts.Budget }

// Display returns the clock as shown to the player.
func (c *Controller) Display() string {
	return c.opts.Budget.Display(c.elapsed)
}

// Deck returns a copy of the cards.
func (c *Controller) Deck() []Card {
	out := make([]Card, len(c.deck))
	copy(out, c.deck)
	return out
}

// Card returns the card at index i.
func (c *Controller) Card(i int) (Card, bool) {
	if i < 0 || i >= len(c.deck) {
		return Card{}, false
	}
	return c.deck[i], true
}

// Pending returns the indices of revealed cards awaiting comparison.
func (c *Controller) Pending() []int {
	out := make([]int, len(c.pending))
	copy(out, c.pending)
	return out
}

// Matched returns the number of matched cards.
func (c *Controller) Matched() int {
	n := 0
	for _, card := range c.deck {
		if card.State == StateMatched {
			n++
		}
	}
	return n
}

// Result returns the finished run. The boolean is false while in progress.
func (c *Controller) Result() (core.RunResult, bool) {
	return c.result, c.hasResult
}

// Scheduler exposes the session scheduler for cosmetic tasks that must
// stop with the session.
func (c *Controller) Scheduler() *Scheduler { return c.sched }
