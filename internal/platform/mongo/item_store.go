package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/items-api/internal/domain"
	"github.com/phrazzld/items-api/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// itemsCollection is the name of the MongoDB collection holding items.
const itemsCollection = "items"

// MongoItemStore implements the store.ItemStore interface over a MongoDB
// collection.
type MongoItemStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// Ensure MongoItemStore implements store.ItemStore at compile time.
var _ store.ItemStore = (*MongoItemStore)(nil)

// NewMongoItemStore creates a new MongoItemStore using the given database.
func NewMongoItemStore(db *mongo.Database, logger *slog.Logger) *MongoItemStore {
	return &MongoItemStore{
		coll:   db.Collection(itemsCollection),
		logger: logger.With("component", "mongo_item_store"),
	}
}

// EnsureIndexes creates the collection's secondary indexes. Index creation
// is idempotent, so this runs unconditionally at startup.
func (s *MongoItemStore) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "postcode", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	if _, err := s.coll.Indexes().CreateMany(ctx, models); err != nil {
		return store.NewStoreError("item", "ensure_indexes", "failed to create indexes", err)
	}

	s.logger.Debug("item collection indexes ensured", "index_count", len(models))
	return nil
}

// Create inserts a new item document, setting its timestamps and filling in
// the generated ID on success.
func (s *MongoItemStore) Create(ctx context.Context, item *domain.Item) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return store.NewStoreError("item", "create", "failed to insert document", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return store.NewStoreError("item", "create", "unexpected inserted ID type", nil)
	}
	item.ID = id

	s.logger.Debug("item created", "item_id", id.Hex())
	return nil
}

// List returns all items, newest first.
func (s *MongoItemStore) List(ctx context.Context) ([]domain.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, store.NewStoreError("item", "list", "failed to query documents", err)
	}

	items := []domain.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, store.NewStoreError("item", "list", "failed to decode documents", err)
	}

	return items, nil
}

// GetByID fetches an item by its hex ID.
func (s *MongoItemStore) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidItemID
	}

	var item domain.Item
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrItemNotFound
		}
		return nil, store.NewStoreError("item", "get", "failed to fetch document", err)
	}

	return &item, nil
}

// Update applies the given snake_case field values to the item and bumps
// updated_at.
func (s *MongoItemStore) Update(ctx context.Context, id string, fields map[string]any) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidItemID
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return store.NewStoreError("item", "update", "failed to update document", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrItemNotFound
	}

	s.logger.Debug("item updated", "item_id", id, "field_count", len(fields))
	return nil
}

// Delete removes the item with the given hex ID.
func (s *MongoItemStore) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidItemID
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return store.NewStoreError("item", "delete", "failed to delete document", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrItemNotFound
	}

	s.logger.Debug("item deleted", "item_id", id)
	return nil
}
