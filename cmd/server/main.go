// Package main implements the entry point for the items API server: a CRUD
// service for item resources backed by MongoDB.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/phrazzld/items-api/internal/config"
	"github.com/phrazzld/items-api/internal/platform/logger"
	mongoplatform "github.com/phrazzld/items-api/internal/platform/mongo"
)

// connectTimeout bounds the initial MongoDB connection attempt.
const connectTimeout = 10 * time.Second

// main initializes configuration, logging, the database connection, and the
// application's dependencies, then runs the HTTP server until shutdown.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run wires the application together. Split from main so initialization
// failures propagate as errors.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Name)

	ctx := context.Background()

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongoplatform.Connect(connectCtx, cfg.Database, appLogger)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, client)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
