package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ad-generator/internal/server"
)

var (
	servePort        int
	serveAllowOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web front end",
	Long:  `Start an HTTP server with the advertisement form at / and a JSON API under /api.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveAllowOrigin, "allow-origin", "*", "Value of Access-Control-Allow-Origin")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	gen, cleanup, err := buildGenerator(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		AllowOrigin: serveAllowOrigin,
	}, gen, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving advertisement generator",
		zap.Int("port", cfg.Port),
		zap.Int("programs", len(gen.Programs())))
	return srv.Run(ctx)
}
