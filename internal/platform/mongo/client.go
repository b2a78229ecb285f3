// Package mongo implements the store interfaces against MongoDB using the
// official driver.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/items-api/internal/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Connect establishes a MongoDB connection from the database configuration
// and verifies it with a ping. The caller owns the returned client and must
// disconnect it on shutdown.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Best-effort teardown of the half-open client.
		if derr := client.Disconnect(ctx); derr != nil {
			logger.Warn("failed to disconnect after ping failure", "error", derr)
		}
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB", "database", cfg.Name)
	return client, nil
}
