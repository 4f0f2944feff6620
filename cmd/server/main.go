package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/api"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/config"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/logging"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/notify"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository/memory"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository/mongodb"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

func main() {
	envFile := flag.String("env-file", "", "optional env file loaded before configuration")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("Failed to load env file %s: %v", *envFile, err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting SS Fresh API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("store", cfg.Store.Driver),
	)

	// Initialize store
	var repos *repository.Repositories
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("Using the in-memory store; data is lost on restart")
		repos = memory.NewRepositories(memory.NewStore(), logger)
	default:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
		client, db, err := mongodb.NewConnection(ctx, cfg.Store)
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				logger.Warn("Failed to disconnect from database", zap.Error(err))
			}
		}()

		indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := mongodb.EnsureIndexes(indexCtx, db, logger); err != nil {
			logger.Fatal("Failed to ensure indexes", zap.Error(err))
		}
		indexCancel()

		repos = mongodb.NewRepositories(db, logger)
	}

	// Notifications run off the request path
	dispatcher := notify.NewDispatcher(notify.NewNotifiers(cfg.Notify, logger), cfg.Notify.QueueSize, cfg.Notify.Timeout, logger)

	services := service.NewServices(cfg, repos, dispatcher, logger)
	router := api.NewRouter(cfg, repos, services, logger)

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Deliver whatever notifications are still queued
	if err := dispatcher.Close(ctx); err != nil {
		logger.Warn("Notification queue not fully drained", zap.Error(err))
	}

	logger.Info("Server exited")
}
