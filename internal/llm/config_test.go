package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.0-flash", config.ModelName())
	assert.Equal(t, float32(0.5), config.Temperature)
}

func TestDefaultOpenAIConfig(t *testing.T) {
	config := DefaultOpenAIConfig()

	assert.Equal(t, ProviderOpenAI, config.Provider)
	assert.Equal(t, "gpt-3.5-turbo-instruct", config.ModelName())
	assert.Equal(t, DefaultTemperature, config.Temperature)
}

func TestModelName_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected string
	}{
		{"explicit model", Config{Provider: ProviderOpenAI, Model: "davinci-002"}, "davinci-002"},
		{"openai default", Config{Provider: ProviderOpenAI}, DefaultOpenAIModel},
		{"gemini default", Config{Provider: ProviderGemini}, DefaultGeminiModel},
		{"empty provider", Config{}, DefaultGeminiModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.ModelName())
		})
	}
}

func TestWithModel(t *testing.T) {
	original := DefaultConfig()
	modified := original.WithModel("custom-model")

	assert.Equal(t, "custom-model", modified.ModelName())
	assert.Equal(t, DefaultGeminiModel, original.ModelName(), "original must be unchanged")
}

func TestWithAPIKey(t *testing.T) {
	original := DefaultOpenAIConfig()
	modified := original.WithAPIKey("sk-test")

	assert.Equal(t, "sk-test", modified.APIKey)
	assert.Empty(t, original.APIKey)
}

func TestTemperature_Resolution(t *testing.T) {
	assert.Equal(t, float32(0.9), temperature(Options{Temperature: 0.9}, &Config{Temperature: 0.2}))
	assert.Equal(t, float32(0.2), temperature(Options{}, &Config{Temperature: 0.2}))
	assert.Equal(t, DefaultTemperature, temperature(Options{}, &Config{}))
	assert.Equal(t, DefaultTemperature, temperature(Options{}, nil))
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), DefaultGeminiConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")

	_, err = NewClient(context.Background(), DefaultOpenAIConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "anthropic", APIKey: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestNewClient_OpenAI(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultOpenAIConfig().WithAPIKey("sk-test"))
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Equal(t, DefaultOpenAIModel, client.Model())
}
