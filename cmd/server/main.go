package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/api"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/cart"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/catalog"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/checkout"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/config"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/orders"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/repository/postgres"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/session"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting checkout API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db, logger)

	// Wire the checkout core
	cartStore := cart.NewStore(logger)
	sessions := session.NewStore(cfg.SessionFile, logger)
	ordersClient := orders.NewClient(cfg.StoreAPI.BaseURL, sessions, logger)
	contentClient := catalog.NewClient(cfg.StoreAPI.BaseURL, sessions, logger)
	orchestrator := checkout.NewOrchestrator(cartStore, ordersClient, repos, logger)

	// Initialize router
	router := api.NewRouter(cfg, cartStore, orchestrator, contentClient, repos, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Abandon any in-flight submission; the request may still complete
	// server-side but nothing will consume its result
	orchestrator.Abandon()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
