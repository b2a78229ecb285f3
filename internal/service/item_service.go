package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/items-api/internal/casing"
	"github.com/phrazzld/items-api/internal/config"
	"github.com/phrazzld/items-api/internal/domain"
	"github.com/phrazzld/items-api/internal/events"
	"github.com/phrazzld/items-api/internal/platform/geo"
	"github.com/phrazzld/items-api/internal/store"
)

// mutableItemFields are the snake_case keys a partial update may touch.
// Postcode and the geo fields derived from it are immutable after creation.
var mutableItemFields = map[string]bool{
	"name":       true,
	"title":      true,
	"users":      true,
	"start_date": true,
}

// ItemService provides item CRUD operations with business-rule enforcement.
type ItemService interface {
	// CreateItem validates the item, resolves its postcode to coordinates,
	// persists it, and emits an item.created event.
	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)

	// ListItems returns all items.
	ListItems(ctx context.Context) ([]domain.Item, error)

	// GetItem returns the item with the given ID.
	GetItem(ctx context.Context, id string) (*domain.Item, error)

	// UpdateItem applies a partial update. The fields map carries the
	// camelCase keys of the request body; unknown and immutable fields are
	// ignored. Emits an item.updated event on success.
	UpdateItem(ctx context.Context, id string, fields map[string]any) (*domain.Item, error)

	// DeleteItem removes the item and emits an item.deleted event.
	DeleteItem(ctx context.Context, id string) error
}

// Common sentinel errors for ItemService.
var (
	// ErrItemNotFound indicates that the item does not exist.
	ErrItemNotFound = errors.New("item not found")
)

// ItemServiceError wraps errors from the item service with context.
type ItemServiceError struct {
	// Operation is the operation that failed (e.g., "create_item")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ItemServiceError.
func (e *ItemServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("item service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("item service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ItemServiceError) Unwrap() error {
	return e.Err
}

// NewItemServiceError creates a new ItemServiceError.
// It returns known sentinel errors directly without wrapping.
func NewItemServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrItemNotFound) {
		return ErrItemNotFound
	}
	if store.IsNotFoundError(err) {
		return ErrItemNotFound
	}

	return &ItemServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// itemServiceImpl implements the ItemService interface
type itemServiceImpl struct {
	itemStore    store.ItemStore
	zipResolver  geo.ZipcodeResolver
	eventEmitter events.EventEmitter
	geoCfg       config.GeoConfig
	logger       *slog.Logger
	now          func() time.Time
}

// NewItemService creates a new ItemService.
// It returns an error if any of the required dependencies are nil.
func NewItemService(
	itemStore store.ItemStore,
	zipResolver geo.ZipcodeResolver,
	eventEmitter events.EventEmitter,
	geoCfg config.GeoConfig,
	logger *slog.Logger,
) (ItemService, error) {
	if itemStore == nil {
		return nil, &ItemServiceError{
			Operation: "create_service",
			Message:   "itemStore cannot be nil",
		}
	}
	if zipResolver == nil {
		return nil, &ItemServiceError{
			Operation: "create_service",
			Message:   "zipResolver cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &ItemServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &itemServiceImpl{
		itemStore:    itemStore,
		zipResolver:  zipResolver,
		eventEmitter: eventEmitter,
		geoCfg:       geoCfg,
		logger:       logger.With("component", "item_service"),
		now:          func() time.Time { return time.Now().UTC() },
	}, nil
}

// itemEventPayload is the payload carried by item mutation events.
type itemEventPayload struct {
	ItemID string       `json:"item_id"`
	Item   *domain.Item `json:"item,omitempty"`
}

// CreateItem validates and persists a new item, deriving its coordinates and
// direction from the postcode.
func (s *itemServiceImpl) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := item.ValidateNew(s.now()); err != nil {
		s.logger.Warn("item validation failed", "error", err)
		return nil, err
	}

	location, err := s.zipResolver.Lookup(ctx, item.Postcode)
	if err != nil {
		if errors.Is(err, geo.ErrPostcodeNotFound) {
			s.logger.Warn("postcode not recognized", "postcode", item.Postcode)
			return nil, domain.FieldErrors{"postcode": "invalid or unrecognized postcode"}
		}
		s.logger.Error("zipcode lookup failed",
			"error", err,
			"postcode", item.Postcode)
		return nil, NewItemServiceError("create_item", "failed to resolve postcode", err)
	}

	item.Latitude = location.Latitude
	item.Longitude = location.Longitude
	item.DirectionFromNewYork = domain.CalculateDirection(
		location.Latitude,
		location.Longitude,
		s.geoCfg.NYLatitude,
		s.geoCfg.NYLongitude,
	)

	if err := s.itemStore.Create(ctx, item); err != nil {
		s.logger.Error("failed to create item", "error", err)
		return nil, NewItemServiceError("create_item", "failed to save item", err)
	}

	s.logger.Info("item created",
		"item_id", item.ID.Hex(),
		"direction", item.DirectionFromNewYork)

	s.emitItemEvent(ctx, events.EventItemCreated, item)

	return item, nil
}

// ListItems returns all items.
func (s *itemServiceImpl) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.itemStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list items", "error", err)
		return nil, NewItemServiceError("list_items", "failed to list items", err)
	}
	return items, nil
}

// GetItem returns the item with the given ID.
func (s *itemServiceImpl) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.itemStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("item not found", "item_id", id)
			return nil, ErrItemNotFound
		}
		s.logger.Error("failed to retrieve item", "error", err, "item_id", id)
		return nil, NewItemServiceError("get_item", "failed to retrieve item", err)
	}
	return item, nil
}

// UpdateItem applies a partial update after translating the incoming
// camelCase keys to the internal snake_case form and enforcing the merge
// rules against the stored item.
func (s *itemServiceImpl) UpdateItem(
	ctx context.Context,
	id string,
	fields map[string]any,
) (*domain.Item, error) {
	snake := casing.SnakeCaseKeys(fields)

	update := make(map[string]any, len(snake))
	for k, v := range snake {
		if mutableItemFields[k] && v != nil {
			update[k] = v
		}
	}

	if len(update) == 0 {
		s.logger.Warn("no updatable fields in request", "item_id", id)
		return nil, domain.FieldErrors{"_": "no updatable fields provided"}
	}

	existing, err := s.itemStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("item not found for update", "item_id", id)
			return nil, ErrItemNotFound
		}
		s.logger.Error("failed to retrieve item for update", "error", err, "item_id", id)
		return nil, NewItemServiceError("update_item", "failed to retrieve item", err)
	}

	typed, ferrs := coerceUpdateFields(update)
	if len(ferrs) > 0 {
		s.logger.Warn("item update validation failed", "item_id", id, "error", ferrs)
		return nil, ferrs
	}

	if err := validateUpdate(typed, existing, s.now()); err != nil {
		s.logger.Warn("item update validation failed", "item_id", id, "error", err)
		return nil, err
	}

	if err := s.itemStore.Update(ctx, id, typed); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("failed to update item", "error", err, "item_id", id)
		return nil, NewItemServiceError("update_item", "failed to update item", err)
	}

	updated, err := s.itemStore.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to reload updated item", "error", err, "item_id", id)
		return nil, NewItemServiceError("update_item", "failed to reload item", err)
	}

	s.logger.Info("item updated", "item_id", id)

	s.emitItemEvent(ctx, events.EventItemUpdated, updated)

	return updated, nil
}

// DeleteItem removes an item. The item's last state is carried on the
// item.deleted event.
func (s *itemServiceImpl) DeleteItem(ctx context.Context, id string) error {
	item, err := s.itemStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("item not found for deletion", "item_id", id)
			return ErrItemNotFound
		}
		s.logger.Error("failed to retrieve item for deletion", "error", err, "item_id", id)
		return NewItemServiceError("delete_item", "failed to retrieve item", err)
	}

	if err := s.itemStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return ErrItemNotFound
		}
		s.logger.Error("failed to delete item", "error", err, "item_id", id)
		return NewItemServiceError("delete_item", "failed to delete item", err)
	}

	s.logger.Info("item deleted", "item_id", id)

	s.emitItemEvent(ctx, events.EventItemDeleted, item)

	return nil
}

// emitItemEvent publishes an item mutation event. Emission failures are
// logged but never fail the request; the mutation has already been committed.
func (s *itemServiceImpl) emitItemEvent(ctx context.Context, eventType string, item *domain.Item) {
	event, err := events.NewItemEvent(eventType, itemEventPayload{
		ItemID: item.ID.Hex(),
		Item:   item,
	})
	if err != nil {
		s.logger.Error("failed to create item event",
			"error", err,
			"event_type", eventType,
			"item_id", item.ID.Hex())
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit item event",
			"error", err,
			"event_type", eventType,
			"event_id", event.ID,
			"item_id", item.ID.Hex())
	}
}

// coerceUpdateFields converts the JSON-decoded update values to their typed
// forms, collecting a field error for anything with the wrong shape.
func coerceUpdateFields(update map[string]any) (map[string]any, domain.FieldErrors) {
	typed := make(map[string]any, len(update))
	ferrs := domain.FieldErrors{}

	for k, v := range update {
		switch k {
		case "name", "title":
			s, ok := v.(string)
			if !ok {
				ferrs[k] = "must be a string"
				continue
			}
			typed[k] = s
		case "users":
			raw, ok := v.([]any)
			if !ok {
				ferrs[k] = "must be a list of strings"
				continue
			}
			users := make([]string, 0, len(raw))
			for _, u := range raw {
				s, ok := u.(string)
				if !ok {
					ferrs[k] = "must be a list of strings"
					break
				}
				users = append(users, s)
			}
			if _, bad := ferrs[k]; !bad {
				typed[k] = users
			}
		case "start_date":
			s, ok := v.(string)
			if !ok {
				ferrs[k] = "must be an RFC 3339 timestamp"
				continue
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				ferrs[k] = "must be an RFC 3339 timestamp"
				continue
			}
			typed[k] = t.UTC()
		}
	}

	return typed, ferrs
}

// validateUpdate enforces the partial-update business rules. Name/users
// cross checks use the incoming value when present and the stored value
// otherwise.
func validateUpdate(typed map[string]any, existing *domain.Item, now time.Time) error {
	ferrs := domain.FieldErrors{}

	name, hasName := typed["name"].(string)
	users, hasUsers := typed["users"].([]string)

	if hasName {
		if name == "" {
			ferrs["name"] = "name cannot be empty"
		} else if len(name) > domain.MaxNameLength {
			ferrs["name"] = fmt.Sprintf("name must be at most %d characters", domain.MaxNameLength)
		}
	}

	if hasUsers {
		for idx, u := range users {
			if len(u) > domain.MaxUserLength {
				ferrs[fmt.Sprintf("users[%d]", idx)] = fmt.Sprintf(
					"user name %q exceeds %d characters", u, domain.MaxUserLength)
			}
		}
	}

	if title, ok := typed["title"].(string); ok && len(title) > domain.MaxTitleLength {
		ferrs["title"] = fmt.Sprintf("title must be at most %d characters", domain.MaxTitleLength)
	}

	// The name must stay consistent with the users list whichever side of
	// the pair this update touches.
	switch {
	case hasName && hasUsers:
		if !domain.NameInUsers(name, users) {
			ferrs["name"] = "name must be included in the users list"
		}
	case hasName:
		if !domain.NameInUsers(name, existing.Users) {
			ferrs["name"] = "name must be included in the users list"
		}
	case hasUsers:
		if !domain.NameInUsers(existing.Name, users) {
			ferrs["users"] = "users list must include the item name"
		}
	}

	if startDate, ok := typed["start_date"].(time.Time); ok {
		if !domain.ValidStartDate(startDate, now) {
			ferrs["start_date"] = "start date must be at least 1 week after the creation date"
		}
	}

	if len(ferrs) > 0 {
		return ferrs
	}
	return nil
}
