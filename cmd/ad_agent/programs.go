package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ad-generator/internal/config"
	"github.com/jonathan/ad-generator/internal/db"
	"github.com/jonathan/ad-generator/internal/observability"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List the program titles in the catalog",
	RunE:  runPrograms,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the catalog into the Postgres programs table",
	Long: `Reads the catalog given by --catalog (CSV file or CSV URL) and upserts every
program into the programs table of the database given by --db-url or DATABASE_URL.
The table is created when missing.`,
	RunE: runImport,
}

func init() {
	programsCmd.AddCommand(importCmd)
	rootCmd.AddCommand(programsCmd)
}

func runPrograms(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintPrograms(cat.Titles())
	}
	for _, title := range cat.Titles() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), title)
	}
	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	if db.IsDatabaseURL(cfg.Catalog) && !cmd.Flags().Changed("catalog") {
		cfg.Catalog = config.DefaultCatalog
	}
	if db.IsDatabaseURL(cfg.Catalog) {
		return fmt.Errorf("--catalog must name a CSV file or URL to import from, got a database URL")
	}

	ctx := cmd.Context()
	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	n, err := database.UpsertPrograms(ctx, cat.Records())
	if err != nil {
		return err
	}

	logger.Info("catalog imported", zap.Int("programs", n))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d programs\n", n)
	return nil
}
