// Package main provides the REST server for ShopAI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopai/shopai-go/internal/config"
	"github.com/shopai/shopai-go/internal/gateway"
	"github.com/shopai/shopai-go/internal/llm"
	"github.com/shopai/shopai-go/internal/metrics"
	"github.com/shopai/shopai-go/internal/server"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logging: text to stderr, JSON to file
	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	slog.SetDefault(logger)
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	slog.Info("starting shopai-server", "port", cfg.ServerPort, "provider", cfg.Provider)

	// Build the AI gateways
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	searchModel, err := llm.NewModel(ctx, cfg, cfg.SearchModel)
	if err != nil {
		cancel()
		slog.Error("failed to create search model", "error", err)
		os.Exit(1)
	}
	compareModel, err := llm.NewModel(ctx, cfg, cfg.CompareModel)
	cancel()
	if err != nil {
		slog.Error("failed to create compare model", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()
	search := gateway.NewSearchGateway(searchModel, logger, collector)
	compare := gateway.NewComparisonGateway(compareModel, logger, collector)

	srv := server.New(search, compare, logger, collector)
	defer srv.Close()

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      srv.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second, // Long for AI responses
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("REST API available", "url", fmt.Sprintf("http://localhost:%s/api/", cfg.ServerPort))
		slog.Info("health check available", "url", fmt.Sprintf("http://localhost:%s/health", cfg.ServerPort))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
