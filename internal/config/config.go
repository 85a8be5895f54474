// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/ad-generator/internal/llm"
	"github.com/jonathan/ad-generator/internal/schemas"
	"github.com/jonathan/ad-generator/internal/translation"
	"gopkg.in/yaml.v3"
)

// Default values applied by Defaults.
const (
	DefaultCatalog = "course.csv"
	DefaultPort    = 8080
)

// Environment variables read by ApplyEnv.
const (
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvCatalog         = "AD_CATALOG"
	EnvTranslateURL    = "TRANSLATE_URL"
	EnvTranslateAPIKey = "TRANSLATE_API_KEY"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	Catalog     string            `json:"catalog,omitempty" yaml:"catalog,omitempty"`           // CSV path, CSV URL or postgres:// URL
	DatabaseURL string            `json:"database_url,omitempty" yaml:"database_url,omitempty"` // used when catalog is unset
	LLM         LLMConfig         `json:"llm,omitempty" yaml:"llm,omitempty"`
	Translation TranslationConfig `json:"translation,omitempty" yaml:"translation,omitempty"`
	Port        int               `json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Verbose     bool              `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// LLMConfig selects the text-generation provider.
type LLMConfig struct {
	Provider    string  `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=gemini openai"`
	Model       string  `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	Temperature float32 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"gte=0,lte=2"`
}

// TranslationConfig selects the translation provider used for French output.
type TranslationConfig struct {
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=http llm none"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,url"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Timeout  string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // Go duration, e.g. "20s"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Catalog: DefaultCatalog,
		LLM: LLMConfig{
			Provider:    string(llm.ProviderGemini),
			Temperature: llm.DefaultTemperature,
		},
		Translation: TranslationConfig{
			Provider: translation.ProviderHTTP,
			Endpoint: translation.DefaultEndpoint,
			Timeout:  translation.DefaultTimeout.String(),
		},
		Port: DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON or YAML file (chosen by extension)
// and checks it against the embedded JSON Schema.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data, strings.ToLower(filepath.Ext(path)))
}

// Parse decodes configuration data. ext selects the format (".yaml"/".yml" or JSON otherwise).
func Parse(data []byte, ext string) (*Config, error) {
	if ext != ".yaml" && ext != ".yml" {
		return decode(data)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	document, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config YAML: %w", err)
	}
	return decode(document)
}

func decode(document []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(document, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := schemas.ValidateConfig(document); err != nil {
		return nil, fmt.Errorf("config does not match schema: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Translation.Timeout != "" {
		d, err := time.ParseDuration(c.Translation.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("config error: 'translation.timeout' must be a positive duration, got %q", c.Translation.Timeout)
		}
	}

	if c.Catalog != "" && !isRemote(c.Catalog) {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}

	return nil
}

// ApplyEnv overlays values from the environment. Set variables win over file values.
func (c *Config) ApplyEnv() {
	c.applyEnv(os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvCatalog); v != "" {
		c.Catalog = v
	}
	if v := getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv(EnvTranslateURL); v != "" {
		c.Translation.Endpoint = v
	}
	if v := getenv(EnvTranslateAPIKey); v != "" {
		c.Translation.APIKey = v
	}

	key := EnvGeminiAPIKey
	if c.LLM.Provider == string(llm.ProviderOpenAI) {
		key = EnvOpenAIAPIKey
	}
	if v := getenv(key); v != "" {
		c.LLM.APIKey = v
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// Catalog falls back to the database before the default CSV
	if result.Catalog == "" {
		if result.DatabaseURL != "" {
			result.Catalog = result.DatabaseURL
		} else {
			result.Catalog = defaults.Catalog
		}
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.LLM.Provider == "" {
		result.LLM.Provider = defaults.LLM.Provider
	}
	if result.LLM.Model == "" {
		result.LLM.Model = defaults.LLM.Model
	}
	if result.LLM.APIKey == "" {
		result.LLM.APIKey = defaults.LLM.APIKey
	}
	if result.LLM.BaseURL == "" {
		result.LLM.BaseURL = defaults.LLM.BaseURL
	}
	if result.LLM.Temperature == 0 {
		result.LLM.Temperature = defaults.LLM.Temperature
	}

	if result.Translation.Provider == "" {
		result.Translation.Provider = defaults.Translation.Provider
	}
	if result.Translation.Endpoint == "" {
		result.Translation.Endpoint = defaults.Translation.Endpoint
	}
	if result.Translation.APIKey == "" {
		result.Translation.APIKey = defaults.Translation.APIKey
	}
	if result.Translation.Timeout == "" {
		result.Translation.Timeout = defaults.Translation.Timeout
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// LLMClientConfig converts the llm section for llm.NewClient.
func (c *Config) LLMClientConfig() *llm.Config {
	return &llm.Config{
		Provider:    llm.Provider(c.LLM.Provider),
		Model:       c.LLM.Model,
		APIKey:      c.LLM.APIKey,
		BaseURL:     c.LLM.BaseURL,
		Temperature: c.LLM.Temperature,
	}
}

// TranslatorConfig converts the translation section for translation.New.
func (c *Config) TranslatorConfig() translation.Config {
	timeout, _ := time.ParseDuration(c.Translation.Timeout)
	return translation.Config{
		Provider: c.Translation.Provider,
		Endpoint: c.Translation.Endpoint,
		APIKey:   c.Translation.APIKey,
		Timeout:  timeout,
	}
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	for _, prefix := range []string{"http://", "https://", "postgres://", "postgresql://"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
