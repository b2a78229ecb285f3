package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/items-api/internal/config"
	"github.com/phrazzld/items-api/internal/events"
	"github.com/phrazzld/items-api/internal/platform/geo"
	mongoplatform "github.com/phrazzld/items-api/internal/platform/mongo"
	"github.com/phrazzld/items-api/internal/service"
	"github.com/phrazzld/items-api/internal/store"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	client *mongo.Client

	// Stores (using interfaces for proper abstraction)
	itemStore store.ItemStore

	// Service interfaces
	itemService service.ItemService

	// Event system
	eventEmitter events.EventEmitter
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// the database client that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	client *mongo.Client,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		client: client,
	}

	// Initialize the item store and its indexes
	itemStore := mongoplatform.NewMongoItemStore(client.Database(cfg.Database.Name), logger)
	if err := itemStore.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure item indexes: %w", err)
	}
	app.itemStore = itemStore

	// Initialize the event emitter and register startup subscribers
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingEventHandler(logger))
	app.eventEmitter = emitter

	// Initialize the zipcode resolver
	zipResolver := geo.NewClient(cfg.Geo, logger)

	// Initialize the item service
	itemService, err := service.NewItemService(
		app.itemStore,
		zipResolver,
		app.eventEmitter,
		cfg.Geo,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create item service: %w", err)
	}
	app.itemService = itemService

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.client != nil {
		if err := app.client.Disconnect(ctx); err != nil {
			app.logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
