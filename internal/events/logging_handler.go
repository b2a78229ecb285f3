package events

import (
	"context"
	"log/slog"
)

// LoggingEventHandler is an EventHandler that records every item mutation in
// the application log. It is registered at startup and stands in for the
// heavier side effects (notifications, cache invalidation, search indexing)
// a production deployment would hang off these events.
type LoggingEventHandler struct {
	logger *slog.Logger
}

// NewLoggingEventHandler creates a LoggingEventHandler writing to the given logger.
func NewLoggingEventHandler(logger *slog.Logger) *LoggingEventHandler {
	return &LoggingEventHandler{
		logger: logger.With("component", "logging_event_handler"),
	}
}

// HandleEvent logs the event's type and item ID. It never fails.
func (h *LoggingEventHandler) HandleEvent(ctx context.Context, event *ItemEvent) error {
	var payload struct {
		ItemID string `json:"item_id"`
	}
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Warn("event payload missing item ID",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return nil
	}

	h.logger.Info("item event",
		"event_id", event.ID,
		"event_type", event.Type,
		"item_id", payload.ItemID)
	return nil
}
