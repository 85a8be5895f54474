package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/ad-generator/internal/frontend"
	"github.com/jonathan/ad-generator/internal/llm"
	"github.com/jonathan/ad-generator/internal/pipeline"
	"github.com/jonathan/ad-generator/internal/translation"
	"github.com/jonathan/ad-generator/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *types.ValidationError
		unknownProgram *pipeline.UnknownProgramError
		generationErr  *llm.GenerationError
		translationErr *translation.Error
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.Is(err, pipeline.ErrFeedbackNotActionable):
		return http.StatusBadRequest
	case errors.As(err, &unknownProgram):
		return http.StatusNotFound
	case errors.Is(err, frontend.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, llm.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &generationErr), errors.As(err, &translationErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the message shown to users for err.
func publicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal error while generating the advertisement"
	}
	return err.Error()
}
