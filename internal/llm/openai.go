package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client with the OpenAI text completions endpoint.
// BaseURL may point to any OpenAI-compatible gateway.
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI completions client
func NewOpenAIClient(config *Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Generate sends prompt to the completions endpoint and returns the first choice.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	req := openai.CompletionRequest{
		Model:       c.config.ModelName(),
		Prompt:      prompt,
		MaxTokens:   opts.MaxTokens,
		Temperature: temperature(opts, c.config),
	}

	resp, err := c.client.CreateCompletion(ctx, req)
	if err != nil {
		return "", newGenerationError("completion request failed", statusOf(err), err)
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Message: "openai returned no choices", Kind: ErrEmptyResponse}
	}

	return CleanCompletion(resp.Choices[0].Text), nil
}

// Model returns the model name
func (c *OpenAIClient) Model() string {
	return c.config.ModelName()
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (c *OpenAIClient) Close() error {
	return nil
}

// statusOf extracts the HTTP status code from go-openai errors.
func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
