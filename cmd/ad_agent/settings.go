package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ad-generator/internal/catalog"
	"github.com/jonathan/ad-generator/internal/config"
	"github.com/jonathan/ad-generator/internal/llm"
	"github.com/jonathan/ad-generator/internal/pipeline"
	"github.com/jonathan/ad-generator/internal/translation"
)

var (
	catalogSource string
	databaseURL   string
	llmProvider   string
	llmModel      string
	llmAPIKey     string
	translateVia  string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&catalogSource, "catalog", "", "Program catalog: CSV path, CSV URL or postgres:// URL (default course.csv)")
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	flags.StringVar(&llmProvider, "provider", "", "Text-generation provider: gemini or openai")
	flags.StringVar(&llmModel, "model", "", "Model name (provider default when empty)")
	flags.StringVar(&llmAPIKey, "api-key", "", "API key (overrides GEMINI_API_KEY / OPENAI_API_KEY)")
	flags.StringVar(&translateVia, "translator", "", "Translation provider for French output: http, llm or none")
}

// resolveConfig builds the effective configuration: defaults < file < env < flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if verbose {
			_, _ = fmt.Fprintf(os.Stderr, "Loaded config from: %s\n", configPath)
		}
	}

	// Provider must be known before ApplyEnv picks the matching API key variable
	if cmd.Flags().Changed("provider") {
		cfg.LLM.Provider = llmProvider
	}
	cfg.ApplyEnv()

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog = catalogSource
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model = llmModel
	}
	if cmd.Flags().Changed("api-key") {
		cfg.LLM.APIKey = llmAPIKey
	}
	if cmd.Flags().Changed("translator") {
		cfg.Translation.Provider = translateVia
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadCatalog loads the configured program catalog.
func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", zap.Int("programs", cat.Len()))
	return cat, nil
}

// buildGenerator wires catalog, generation client and translator into a pipeline.
// The returned cleanup closes the generation client.
func buildGenerator(ctx context.Context, cfg config.Config, onProgress pipeline.ProgressCallback) (*pipeline.Generator, func(), error) {
	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	client, err := llm.NewClient(ctx, cfg.LLMClientConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close generation client", zap.Error(err))
		}
	}

	translator, err := translation.New(cfg.TranslatorConfig(), client)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create translator: %w", err)
	}

	gen, err := pipeline.New(pipeline.Deps{
		Catalog:     cat,
		LLM:         client,
		Translator:  translator,
		Temperature: cfg.LLM.Temperature,
		Logger:      logger,
		OnProgress:  onProgress,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Debug("generator ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", client.Model()),
		zap.String("translator", cfg.Translation.Provider))
	return gen, cleanup, nil
}
