// Package translation translates program descriptions before they are embedded
// in non-English prompts.
package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/ad-generator/internal/composing"
	"github.com/jonathan/ad-generator/internal/llm"
	"github.com/jonathan/ad-generator/internal/types"
)

// Provider names accepted in configuration.
const (
	ProviderHTTP = "http"
	ProviderLLM  = "llm"
	ProviderNone = "none"
)

// DefaultEndpoint is the public LibreTranslate instance.
const DefaultEndpoint = "https://libretranslate.com/translate"

// DefaultTimeout bounds a single translation request.
const DefaultTimeout = 20 * time.Second

// Translator converts text into the target language.
type Translator interface {
	Translate(ctx context.Context, text string, target types.Language) (string, error)
}

// Error represents a failed translation
type Error struct {
	Target  types.Language
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translation to %s failed: %s: %v", e.Target, e.Message, e.Cause)
	}
	return fmt.Sprintf("translation to %s failed: %s", e.Target, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config selects and configures a translator.
type Config struct {
	Provider string
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// New builds the translator named by cfg.Provider. The llm provider needs client.
func New(cfg Config, client llm.Client) (Translator, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderHTTP, "":
		return NewHTTPTranslator(cfg), nil
	case ProviderLLM:
		if client == nil {
			return nil, fmt.Errorf("llm translation requires a generation client")
		}
		return &LLMTranslator{Client: client}, nil
	case ProviderNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("translation provider %q not supported", cfg.Provider)
	}
}

// Noop returns text unchanged.
type Noop struct{}

// Translate returns text as-is.
func (Noop) Translate(_ context.Context, text string, _ types.Language) (string, error) {
	return text, nil
}

// HTTPTranslator calls a LibreTranslate-compatible endpoint.
type HTTPTranslator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPTranslator creates a translator for cfg.Endpoint (DefaultEndpoint when empty).
func NewHTTPTranslator(cfg Config) *HTTPTranslator {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPTranslator{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate sends text to the endpoint with automatic source detection.
func (t *HTTPTranslator) Translate(ctx context.Context, text string, target types.Language) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: "auto",
		Target: target.Tag().String(),
		Format: "text",
		APIKey: t.apiKey,
	})
	if err != nil {
		return "", &Error{Target: target, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Target: target, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &Error{Target: target, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &Error{Target: target, Message: "failed to read response", Cause: err}
	}

	var out translateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &Error{Target: target, Message: fmt.Sprintf("HTTP status %d: invalid response body", resp.StatusCode), Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = "unexpected response"
		}
		return "", &Error{Target: target, Message: fmt.Sprintf("HTTP status %d: %s", resp.StatusCode, msg)}
	}
	if out.TranslatedText == "" {
		return "", &Error{Target: target, Message: "empty translation"}
	}

	return out.TranslatedText, nil
}

// LLMTranslator translates through the generation client.
type LLMTranslator struct {
	Client    llm.Client
	MaxTokens int // zero means 1024
}

// Translate asks the model for a French rendering of text.
func (t *LLMTranslator) Translate(ctx context.Context, text string, target types.Language) (string, error) {
	if target != types.French {
		return "", &Error{Target: target, Message: "only French is supported by the llm translator"}
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	maxTokens := t.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	out, err := t.Client.Generate(ctx, composing.ComposeTranslation(text), llm.Options{MaxTokens: maxTokens})
	if err != nil {
		return "", &Error{Target: target, Message: "generation failed", Cause: err}
	}
	if out == "" {
		return "", &Error{Target: target, Message: "empty translation"}
	}
	return out, nil
}
