package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors classifying generation failures. They are reported, never retried.
var (
	// ErrAuthFailed indicates the API credential was rejected.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrQuotaExceeded indicates the account quota or billing limit was reached.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrRateLimit indicates the provider throttled the request.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrTimeout indicates the request did not complete in time.
	ErrTimeout = errors.New("request timeout")
	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")
	// ErrEmptyResponse indicates the provider answered without any text.
	ErrEmptyResponse = errors.New("empty response")
)

// GenerationError represents a failed call to the text-generation service
type GenerationError struct {
	Message string
	Kind    error // one of the sentinels above, or nil when unclassified
	Cause   error
}

func (e *GenerationError) Error() string {
	var sb strings.Builder
	sb.WriteString("generation failed: ")
	sb.WriteString(e.Message)
	if e.Kind != nil {
		sb.WriteString(fmt.Sprintf(" (%v)", e.Kind))
	}
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return sb.String()
}

// Unwrap exposes both the classification sentinel and the provider error to errors.Is/As.
func (e *GenerationError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// newGenerationError builds a GenerationError, classifying cause by HTTP status when known.
func newGenerationError(message string, status int, cause error) *GenerationError {
	return &GenerationError{
		Message: message,
		Kind:    classify(status, cause),
		Cause:   cause,
	}
}

// classify maps an HTTP status (0 when unknown) and error to a sentinel.
func classify(status int, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrAuthFailed
	case status == http.StatusTooManyRequests:
		if err != nil && strings.Contains(strings.ToLower(err.Error()), "quota") {
			return ErrQuotaExceeded
		}
		return ErrRateLimit
	case status == http.StatusPaymentRequired:
		return ErrQuotaExceeded
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrTimeout
	case status >= 400 && status < 500:
		return ErrBadRequest
	}
	return nil
}
