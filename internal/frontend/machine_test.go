package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine(Idle)

	steps := []struct {
		event Event
		want  State
	}{
		{Select, Composing},
		{Generate, Generating},
		{Complete, Displaying},
		{ThumbsDown, FeedbackCapture},
		{SubmitFeedback, Regenerating},
		{Complete, Displaying},
		{ThumbsUp, Displaying},
	}

	for _, step := range steps {
		require.NoError(t, m.Fire(step.event), "event %s", step.event)
		assert.Equal(t, step.want, m.State(), "after %s", step.event)
	}
}

func TestMachine_Failures(t *testing.T) {
	m := NewMachine(Composing)
	require.NoError(t, m.Fire(Generate))
	require.NoError(t, m.Fire(Fail))
	assert.Equal(t, Composing, m.State(), "failed generation returns to the form")

	m = NewMachine(FeedbackCapture)
	require.NoError(t, m.Fire(SubmitFeedback))
	require.NoError(t, m.Fire(Fail))
	assert.Equal(t, Displaying, m.State(), "failed regeneration keeps the last result")
}

func TestMachine_InvalidTransitions(t *testing.T) {
	tests := []struct {
		state State
		event Event
	}{
		{Idle, Complete},
		{Idle, ThumbsDown},
		{Composing, SubmitFeedback},
		{Generating, Generate},
		{Generating, Select},
		{Displaying, SubmitFeedback},
		{Displaying, Complete},
		{Regenerating, ThumbsUp},
	}

	for _, tt := range tests {
		t.Run(tt.state.String()+"/"+tt.event.String(), func(t *testing.T) {
			m := NewMachine(tt.state)
			assert.False(t, m.Can(tt.event))
			err := m.Fire(tt.event)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.state, m.State(), "state unchanged")
		})
	}
}

func TestMachine_ZeroValueIsIdle(t *testing.T) {
	var m Machine
	assert.Equal(t, Idle, m.State())
	assert.True(t, m.Can(Select))
}

func TestMachine_Busy(t *testing.T) {
	assert.True(t, NewMachine(Generating).Busy())
	assert.True(t, NewMachine(Regenerating).Busy())
	assert.False(t, NewMachine(Displaying).Busy())
}

func TestStateAndEventNames(t *testing.T) {
	assert.Equal(t, "feedback_capture", FeedbackCapture.String())
	assert.Equal(t, "submit_feedback", SubmitFeedback.String())
	assert.Equal(t, "state(42)", State(42).String())
	assert.Equal(t, "event(42)", Event(42).String())
}
