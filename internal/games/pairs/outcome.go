package pairs

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Outcome is the state of a run.
type Outcome int

const (
	InProgress Outcome = iota
	Won
	Lost
)

// String returns the state name used by the outcome machine.
func (o Outcome) String() string {
	switch o {
	case Won:
		return stateWon
	case Lost:
		return stateLost
	default:
		return stateInProgress
	}
}

// Terminal reports whether the run is over.
func (o Outcome) Terminal() bool {
	return o == Won || o == Lost
}

const (
	stateInProgress = "in_progress"
	stateWon        = "won"
	stateLost       = "lost"

	eventWin     = "win"
	eventLose    = "lose"
	eventRestart = "restart"
)

// Evaluate decides the outcome of a run from its board and budget.
// A full board wins even when the budget ran out on the same action.
func Evaluate(allMatched, budgetExceeded bool) Outcome {
	switch {
	case allMatched:
		return Won
	case budgetExceeded:
		return Lost
	default:
		return InProgress
	}
}

// outcomeMachine guards outcome transitions: a terminal run only leaves
// its state through restart.
type outcomeMachine struct {
	fsm *fsm.FSM
}

func newOutcomeMachine(onEnter func(from, to Outcome)) *outcomeMachine {
	callbacks := fsm.Callbacks{}
	if onEnter != nil {
		callbacks["enter_state"] = func(_ context.Context, e *fsm.Event) {
			onEnter(parseOutcome(e.Src), parseOutcome(e.Dst))
		}
	}

	return &outcomeMachine{
		fsm: fsm.NewFSM(
			stateInProgress,
			fsm.Events{
				{Name: eventWin, Src: []string{stateInProgress}, Dst: stateWon},
				{Name: eventLose, Src: []string{stateInProgress}, Dst: stateLost},
				{Name: eventRestart, Src: []string{stateWon, stateLost}, Dst: stateInProgress},
			},
			callbacks,
		),
	}
}

// Current returns the current outcome.
func (m *outcomeMachine) Current() Outcome {
	return parseOutcome(m.fsm.Current())
}

// Transition moves to the target outcome.
func (m *outcomeMachine) Transition(to Outcome) error {
	var event string
	switch to {
	case Won:
		event = eventWin
	case Lost:
		event = eventLose
	default:
		event = eventRestart
	}
	if err := m.fsm.Event(context.Background(), event); err != nil {
		return fmt.Errorf("pairs: outcome %s -> %s: %w", m.Current(), to, err)
	}
	return nil
}

func parseOutcome(state string) Outcome {
	switch state {
	case stateWon:
		return Won
	case stateLost:
		return Lost
	default:
		return InProgress
	}
}
