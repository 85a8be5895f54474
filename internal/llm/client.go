package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Options controls a single generation call
type Options struct {
	// MaxTokens bounds the output. Callers pass the requested maximum content
	// length directly; it is an approximation, not a token-accurate conversion.
	MaxTokens int
	// Temperature is the sampling temperature; zero means DefaultTemperature.
	Temperature float32
}

// Client is an abstraction over LLM providers
type Client interface {
	// Generate sends prompt and returns the generated text. One blocking call, no retries.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	// Model returns the model name used by the client
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(config)
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config)
	default:
		return nil, fmt.Errorf("llm provider %q not supported", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Generate generates text content with the configured model
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	model := c.client.GenerativeModel(c.config.ModelName())
	model.SetTemperature(temperature(opts, c.config))
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens)) //nolint:gosec // bounded by request validation
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		status := 0
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			status = apiErr.Code
		}
		return "", newGenerationError("failed to generate content", status, err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &GenerationError{Message: err.Error(), Kind: ErrEmptyResponse}
	}
	return CleanCompletion(text), nil
}

// Model returns the model name
func (c *GeminiClient) Model() string {
	return c.config.ModelName()
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// temperature resolves the sampling temperature: call options, then config, then default.
func temperature(opts Options, config *Config) float32 {
	if opts.Temperature > 0 {
		return opts.Temperature
	}
	if config != nil && config.Temperature > 0 {
		return config.Temperature
	}
	return DefaultTemperature
}
