// Package frontend models the interactive form: the explicit request object built
// from form values and the state machine driving one user session.
package frontend

import (
	"errors"
	"fmt"
)

// State is a step of the interactive flow.
type State int

// States of the interactive flow.
const (
	Idle State = iota
	Composing
	Generating
	Displaying
	FeedbackCapture
	Regenerating
)

var stateNames = map[State]string{
	Idle:            "idle",
	Composing:       "composing",
	Generating:      "generating",
	Displaying:      "displaying",
	FeedbackCapture: "feedback_capture",
	Regenerating:    "regenerating",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event is a user action or a pipeline outcome.
type Event int

// Events accepted by Machine.Fire.
const (
	Select Event = iota
	Generate
	Complete
	Fail
	ThumbsUp
	ThumbsDown
	SubmitFeedback
)

var eventNames = map[Event]string{
	Select:         "select",
	Generate:       "generate",
	Complete:       "complete",
	Fail:           "fail",
	ThumbsUp:       "thumbs_up",
	ThumbsDown:     "thumbs_down",
	SubmitFeedback: "submit_feedback",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// ErrInvalidTransition is returned when an event is not accepted in the current state.
var ErrInvalidTransition = errors.New("invalid transition")

// transitions lists, per state, the accepted events and their target state.
// A failed generation returns to the form; a failed regeneration keeps the last result.
var transitions = map[State]map[Event]State{
	Idle: {
		Select:   Composing,
		Generate: Generating,
	},
	Composing: {
		Select:   Composing,
		Generate: Generating,
	},
	Generating: {
		Complete: Displaying,
		Fail:     Composing,
	},
	Displaying: {
		Select:     Composing,
		Generate:   Generating,
		ThumbsUp:   Displaying,
		ThumbsDown: FeedbackCapture,
	},
	FeedbackCapture: {
		Select:         Composing,
		Generate:       Generating,
		ThumbsUp:       Displaying,
		SubmitFeedback: Regenerating,
	},
	Regenerating: {
		Complete: Displaying,
		Fail:     Displaying,
	},
}

// Machine tracks the state of one session. The zero value is Idle.
// It is not safe for concurrent use; each session owns its machine.
type Machine struct {
	state State
}

// NewMachine returns a machine positioned at state.
func NewMachine(state State) *Machine {
	return &Machine{state: state}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Can reports whether ev is accepted in the current state.
func (m *Machine) Can(ev Event) bool {
	_, ok := transitions[m.state][ev]
	return ok
}

// Fire applies ev. The state is unchanged when the transition is invalid.
func (m *Machine) Fire(ev Event) error {
	next, ok := transitions[m.state][ev]
	if !ok {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, ev, m.state)
	}
	m.state = next
	return nil
}

// Busy reports whether a generation call is outstanding.
func (m *Machine) Busy() bool {
	return m.state == Generating || m.state == Regenerating
}
