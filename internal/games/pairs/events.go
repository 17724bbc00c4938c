package pairs

import "github.com/vovakirdan/tui-pairs/internal/core"

// Event is a render intent emitted by the controller.
type Event interface {
	// Kind returns a short event name for logs.
	Kind() string
}

// CardRevealed is emitted when a hidden card is turned face up.
type CardRevealed struct {
	Index int
	Face  FaceID
}

// CardMatched is emitted when two revealed cards share a face.
type CardMatched struct {
	First, Second int
	Face          FaceID
}

// CardsReset is emitted when cards are turned face down.
// A nil Indices means the whole board was dealt again.
type CardsReset struct {
	Indices []int
}

// TurnsChanged is emitted when the turn counter changes.
type TurnsChanged struct {
	Turns int
}

// TimeChanged is emitted on every clock tick.
type TimeChanged struct {
	Seconds int    // Elapsed seconds
	Display string // Clock as shown to the player
}

// GameWon is emitted once when the last pair is matched.
type GameWon struct {
	Result core.RunResult
}

// GameLost is emitted once when a budget runs out.
type GameLost struct {
	Result core.RunResult
}

func (CardRevealed) Kind() string { return "card_revealed" }
func (CardMatched) Kind() string  { return "card_matched" }
func (CardsReset) Kind() string   { return "cards_reset" }
func (TurnsChanged) Kind() string { return "turns_changed" }
func (TimeChanged) Kind() string  { return "time_changed" }
func (GameWon) Kind() string      { return "game_won" }
func (GameLost) Kind() string     { return "game_lost" }

// EventSink receives controller events.
type EventSink interface {
	Emit(e Event)
}

// EventFunc adapts a function to an EventSink.
type EventFunc func(e Event)

// Emit calls f(e).
func (f EventFunc) Emit(e Event) {
	f(e)
}

// EventQueue buffers events until drained.
type EventQueue struct {
	events []Event
}

// Emit appends e to the queue.
func (q *EventQueue) Emit(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of buffered events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns the buffered events and empties the queue.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

type discardSink struct{}

func (discardSink) Emit(Event) {}
