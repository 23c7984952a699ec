package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weightlens/weightlens/internal/config"
	"github.com/weightlens/weightlens/internal/handlers"
	"github.com/weightlens/weightlens/internal/logging"
	"github.com/weightlens/weightlens/internal/router"
	"github.com/weightlens/weightlens/internal/services"
	"github.com/weightlens/weightlens/internal/source"
	"github.com/weightlens/weightlens/internal/stats"
	"github.com/weightlens/weightlens/internal/store"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	handlers.Version = Version
	logger.Info("Dashboard service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Fatal("Failed to prepare data directories", "error", err)
	}

	// Goal store (memory or redis)
	goalStore, err := store.NewGoalStore(cfg.Store)
	if err != nil {
		logger.Fatal("Failed to initialize goal store", "error", err)
	}
	defer func() { _ = goalStore.Close() }()
	logger.Info("Goal store initialized", "type", cfg.Store.Type)

	// Observation source (file or http)
	src, err := source.New(cfg.Source, logger)
	if err != nil {
		logger.Fatal("Failed to initialize observation source", "error", err)
	}

	service := services.NewAnalysisService(logger, src, goalStore,
		stats.NewProvider(), cfg.ToPipelineConfig(), cfg.ToSnapshotParams())

	// Warm the dataset. A failed initial load is not fatal: the API
	// stays up and data can arrive via import or reload.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Source.FetchTimeout+10*time.Second)
		if n, err := service.LoadFromSource(ctx); err != nil {
			logger.Warn("Initial dataset load failed", "error", err)
		} else {
			logger.Info("Initial dataset loaded", "records", n)
		}
		cancel()
	}

	// Log authentication status
	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	// Initialize router
	app := router.New(logger, service, *cfg)

	// Start server in goroutine
	go func() {
		addr := cfg.GetServerAddress()
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
