package store

import (
	"context"

	"github.com/phrazzld/items-api/internal/domain"
)

// ItemStore defines the interface for item data persistence.
type ItemStore interface {
	// Create saves a new item and fills in its generated ID and timestamps.
	Create(ctx context.Context, item *domain.Item) error

	// List retrieves all items, newest first.
	List(ctx context.Context) ([]domain.Item, error)

	// GetByID retrieves an item by its hex ID.
	// Returns ErrItemNotFound if no item exists with the given ID and
	// ErrInvalidItemID if the ID is not well-formed.
	GetByID(ctx context.Context, id string) (*domain.Item, error)

	// Update applies a partial update to the item with the given hex ID.
	// The fields map uses snake_case keys matching the stored document.
	// Returns ErrItemNotFound if no item exists with the given ID.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes the item with the given hex ID.
	// Returns ErrItemNotFound if no item exists with the given ID.
	Delete(ctx context.Context, id string) error
}
