// Package llm provides centralized LLM configuration and client abstractions.
// The generation client is selected by provider so the rest of the program never
// depends on a specific SDK.
package llm

// DefaultTemperature is the sampling temperature used for advertisement generation.
const DefaultTemperature float32 = 0.5

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI text completion provider (also used for compatible gateways)
	ProviderOpenAI Provider = "openai"
)

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-3.5-turbo-instruct"
)

// Config holds the generation client configuration
type Config struct {
	Provider    Provider
	Model       string
	APIKey      string
	BaseURL     string // Optional override for OpenAI-compatible endpoints
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultGeminiModel,
		Temperature: DefaultTemperature,
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		Model:       DefaultOpenAIModel,
		Temperature: DefaultTemperature,
	}
}

// ModelName returns the configured model, falling back to the provider default.
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	default:
		return DefaultGeminiModel
	}
}

// WithModel returns a copy of the Config using model
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	newConfig.Model = model
	return &newConfig
}

// WithAPIKey returns a copy of the Config using apiKey
func (c *Config) WithAPIKey(apiKey string) *Config {
	newConfig := *c
	newConfig.APIKey = apiKey
	return &newConfig
}
