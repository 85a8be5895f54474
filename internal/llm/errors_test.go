package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		err      error
		expected error
	}{
		{"unauthorized", http.StatusUnauthorized, errors.New("invalid key"), ErrAuthFailed},
		{"forbidden", http.StatusForbidden, errors.New("denied"), ErrAuthFailed},
		{"rate limit", http.StatusTooManyRequests, errors.New("slow down"), ErrRateLimit},
		{"quota", http.StatusTooManyRequests, errors.New("You exceeded your current quota"), ErrQuotaExceeded},
		{"payment required", http.StatusPaymentRequired, errors.New("billing"), ErrQuotaExceeded},
		{"gateway timeout", http.StatusGatewayTimeout, errors.New("upstream"), ErrTimeout},
		{"deadline", 0, fmt.Errorf("call: %w", context.DeadlineExceeded), ErrTimeout},
		{"bad request", http.StatusBadRequest, errors.New("bad model"), ErrBadRequest},
		{"server error", http.StatusInternalServerError, errors.New("boom"), nil},
		{"unknown", 0, errors.New("network"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classify(tt.status, tt.err))
		})
	}
}

func TestGenerationError_Unwrap(t *testing.T) {
	cause := errors.New("401 from provider")
	err := newGenerationError("completion request failed", http.StatusUnauthorized, cause)

	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrRateLimit)

	var genErr *GenerationError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &genErr))
	assert.Contains(t, err.Error(), "authentication failed")
	assert.Contains(t, err.Error(), "401 from provider")
}

func TestGenerationError_Unclassified(t *testing.T) {
	err := &GenerationError{Message: "no text"}
	assert.Equal(t, "generation failed: no text", err.Error())
	assert.Empty(t, err.Unwrap())
}
