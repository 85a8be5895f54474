package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ad-generator/internal/frontend"
	"github.com/jonathan/ad-generator/internal/types"
)

// AdvertisementBody is the request body for POST /api/advertisements.
// Enum fields are parsed leniently so "fr" or "friendly" are accepted.
type AdvertisementBody struct {
	Kind      string `json:"kind"`
	Program   string `json:"program"`
	Language  string `json:"language"`
	Tone      string `json:"tone"`
	Prompt    string `json:"prompt,omitempty"`
	MinLength int    `json:"min_length"`
	MaxLength int    `json:"max_length"`
}

// FeedbackBody is the request body for POST /api/advertisements/feedback.
type FeedbackBody struct {
	Request  AdvertisementBody `json:"request"`
	Feedback struct {
		Sentiment string `json:"sentiment"`
		Comment   string `json:"comment,omitempty"`
	} `json:"feedback"`
}

// FeedbackResponse reports what happened to a feedback submission.
type FeedbackResponse struct {
	Status string                     `json:"status"`
	Notice string                     `json:"notice,omitempty"`
	Result *types.AdvertisementResult `json:"result,omitempty"`
}

// Feedback response statuses.
const (
	FeedbackAcknowledged    = "acknowledged"
	FeedbackAwaitingComment = "awaiting_comment"
	FeedbackRegenerated     = "regenerated"
)

// OptionsResponse lists the choices offered by the form.
type OptionsResponse struct {
	Kinds      []types.Kind     `json:"kinds"`
	Languages  []types.Language `json:"languages"`
	Tones      []types.Tone     `json:"tones"`
	Lengths    []int            `json:"lengths"`
	Defaults   defaultsResponse `json:"defaults"`
	PromptHint string           `json:"prompt_hint"`
}

type defaultsResponse struct {
	Language  types.Language `json:"language"`
	Program   string         `json:"program"`
	Tone      types.Tone     `json:"tone"`
	MinLength int            `json:"min_length"`
	MaxLength int            `json:"max_length"`
}

// toRequest normalizes the body into a validated-shape request.
func (b AdvertisementBody) toRequest() (types.AdvertisementRequest, error) {
	kind, err := types.ParseKind(b.Kind)
	if err != nil {
		return types.AdvertisementRequest{}, err
	}
	language, err := types.ParseLanguage(b.Language)
	if err != nil {
		return types.AdvertisementRequest{}, err
	}
	tone, err := types.ParseTone(b.Tone)
	if err != nil {
		return types.AdvertisementRequest{}, err
	}

	minLength, maxLength := b.MinLength, b.MaxLength
	if minLength == 0 && maxLength == 0 {
		minLength, maxLength = types.DefaultMinLength, types.DefaultMaxLength
	}

	return types.AdvertisementRequest{
		Kind:         kind,
		ProgramTitle: b.Program,
		Language:     language,
		Tone:         tone,
		UserPrompt:   b.Prompt,
		MinLength:    minLength,
		MaxLength:    maxLength,
	}, nil
}

// handlePrograms lists catalog titles
func (s *Server) handlePrograms(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"programs": s.gen.Programs()})
}

// handleOptions lists the form choices and their defaults
func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	form := frontend.DefaultFormState(s.gen.Programs())
	s.jsonResponse(w, http.StatusOK, OptionsResponse{
		Kinds:     types.Kinds(),
		Languages: types.Languages(),
		Tones:     types.Tones(),
		Lengths:   types.LengthOptions(),
		Defaults: defaultsResponse{
			Language:  form.Language,
			Program:   form.Program,
			Tone:      form.Tone,
			MinLength: form.MinLength,
			MaxLength: form.MaxLength,
		},
		PromptHint: frontend.PromptHint,
	})
}

// handleCreateAdvertisement generates one advertisement
func (s *Server) handleCreateAdvertisement(w http.ResponseWriter, r *http.Request) {
	var body AdvertisementBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := body.toRequest()
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.logger.Warn("generation failed", zap.String("program", req.ProgramTitle), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), publicMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusCreated, result)
}

// handleAdvertisementFeedback applies feedback to a previously generated advertisement
func (s *Server) handleAdvertisementFeedback(w http.ResponseWriter, r *http.Request) {
	var body FeedbackBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := body.Request.toRequest()
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	sentiment, err := types.ParseSentiment(body.Feedback.Sentiment)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	feedback := types.FeedbackEvent{Sentiment: sentiment, Comment: strings.TrimSpace(body.Feedback.Comment)}

	switch {
	case sentiment == types.SentimentPositive:
		s.jsonResponse(w, http.StatusOK, FeedbackResponse{Status: FeedbackAcknowledged, Notice: frontend.NoticeThanks})
		return
	case !feedback.Actionable():
		s.jsonResponse(w, http.StatusOK, FeedbackResponse{Status: FeedbackAwaitingComment})
		return
	}

	result, err := s.gen.Regenerate(r.Context(), req, feedback)
	if err != nil {
		s.logger.Warn("regeneration failed", zap.String("program", req.ProgramTitle), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), publicMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, FeedbackResponse{
		Status: FeedbackRegenerated,
		Notice: frontend.NoticeFeedbackThanks,
		Result: result,
	})
}
