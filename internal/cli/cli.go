// Package cli holds the setup shared by the command-line tools.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/config"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/logging"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository/mongodb"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

// Env is a connected tool environment
type Env struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *mongo.Database
	Repos    *repository.Repositories
	Services *service.Services

	client *mongo.Client
}

// Open loads envFile (when set) and the configuration, then connects to MongoDB.
func Open(ctx context.Context, envFile string) (*Env, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Store.Driver != config.StoreDriverMongo {
		return nil, fmt.Errorf("command-line tools need STORE_DRIVER=%s, got %q", config.StoreDriverMongo, cfg.Store.Driver)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	client, db, err := mongodb.NewConnection(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos := mongodb.NewRepositories(db, logger)
	return &Env{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Repos:    repos,
		Services: service.NewServices(cfg, repos, nil, logger),
		client:   client,
	}, nil
}

var exit = os.Exit

// Close disconnects from the database and flushes the logger
func (e *Env) Close() {
	if e.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.client.Disconnect(ctx)
		e.client = nil
	}
	if e.Logger != nil {
		_ = e.Logger.Sync()
	}
}

// Fatal closes the environment, prints the message and exits. Use it instead of
// the package-level Fatal once Open has succeeded.
func (e *Env) Fatal(format string, args ...interface{}) {
	e.Close()
	Fatal(format, args...)
}

// Fatal prints err and exits
func Fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exit(1)
}
