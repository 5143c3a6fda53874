package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/config"
	"github.com/jonathan/resume-match/internal/db"
	"github.com/jonathan/resume-match/internal/logger"
	"github.com/jonathan/resume-match/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running and retrieving match analyses.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	cfg := loaded.MergeWithDefaults(config.Config{Port: servePort})

	log, err := logger.New(true, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	runner, cleanup, err := buildRunner(ctx, &cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	var store server.AnalysisStore
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(context.Background()); err != nil {
			return err
		}
		store = database
	}

	srv := server.New(server.Config{
		Port:      cfg.Port,
		JWTSecret: cfg.JWTSecret,
	}, runner, store, log)

	return srv.Start()
}
