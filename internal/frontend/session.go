package frontend

import (
	"context"
	"errors"

	"github.com/jonathan/ad-generator/internal/types"
)

// Generator is the pipeline as seen by a session.
type Generator interface {
	Generate(ctx context.Context, req types.AdvertisementRequest) (*types.AdvertisementResult, error)
	Regenerate(ctx context.Context, req types.AdvertisementRequest, feedback types.FeedbackEvent) (*types.AdvertisementResult, error)
}

// Notices shown after feedback.
const (
	NoticeThanks         = "Thanks for your feedback!"
	NoticeFeedbackThanks = "Thanks for your feedback and input!"
)

// Session is one pass through the form: the widget values, the machine, and
// whatever the page shows next.
type Session struct {
	Form    FormState
	Kind    types.Kind
	Result  *types.AdvertisementResult
	Err     error
	Notice  string
	machine *Machine
}

// NewSession starts a session at Idle.
func NewSession(form FormState) *Session {
	return &Session{Form: form, machine: NewMachine(Idle)}
}

// ResumeSession restores a session that is displaying result.
func ResumeSession(form FormState, kind types.Kind, result *types.AdvertisementResult) *Session {
	return &Session{Form: form, Kind: kind, Result: result, machine: NewMachine(Displaying)}
}

// State returns the current state of the session.
func (s *Session) State() State {
	return s.machine.State()
}

// Select records new widget values.
func (s *Session) Select(form FormState) error {
	if err := s.machine.Fire(Select); err != nil {
		return err
	}
	s.Form = form
	return nil
}

// Generate runs one blocking generation for kind. A pipeline failure is kept in
// s.Err for display and returned.
func (s *Session) Generate(ctx context.Context, gen Generator, kind types.Kind) error {
	if err := s.machine.Fire(Generate); err != nil {
		return err
	}
	s.Kind = kind
	s.Notice = ""

	result, err := gen.Generate(ctx, s.Form.Request(kind))
	return s.finish(result, err)
}

// ThumbsUp acknowledges the displayed result.
func (s *Session) ThumbsUp() error {
	if err := s.machine.Fire(ThumbsUp); err != nil {
		return err
	}
	s.Notice = NoticeThanks
	return nil
}

// ThumbsDown opens the feedback box.
func (s *Session) ThumbsDown() error {
	return s.machine.Fire(ThumbsDown)
}

// SubmitFeedback regenerates the displayed kind with comment folded into the prompt.
func (s *Session) SubmitFeedback(ctx context.Context, gen Generator, comment string) error {
	if err := s.machine.Fire(SubmitFeedback); err != nil {
		return err
	}

	feedback := types.FeedbackEvent{Sentiment: types.SentimentNegative, Comment: comment}
	result, err := gen.Regenerate(ctx, s.Form.Request(s.Kind), feedback)
	if err := s.finish(result, err); err != nil {
		return err
	}
	s.Notice = NoticeFeedbackThanks
	return nil
}

// Feedback applies a thumbs reaction and, for negative feedback with a comment,
// submits it in one step.
func (s *Session) Feedback(ctx context.Context, gen Generator, feedback types.FeedbackEvent) error {
	if err := feedback.Validate(); err != nil {
		return err
	}
	if feedback.Sentiment == types.SentimentPositive {
		return s.ThumbsUp()
	}
	if s.State() != FeedbackCapture {
		if err := s.ThumbsDown(); err != nil {
			return err
		}
	}
	if !feedback.Actionable() {
		return nil
	}
	return s.SubmitFeedback(ctx, gen, feedback.Comment)
}

func (s *Session) finish(result *types.AdvertisementResult, err error) error {
	if err != nil {
		s.Err = err
		if fireErr := s.machine.Fire(Fail); fireErr != nil {
			return errors.Join(err, fireErr)
		}
		return err
	}
	s.Err = nil
	s.Result = result
	return s.machine.Fire(Complete)
}
