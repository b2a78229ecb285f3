package api

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/items-api/internal/api/shared"
	"github.com/phrazzld/items-api/internal/domain"
	"github.com/phrazzld/items-api/internal/redact"
	"github.com/phrazzld/items-api/internal/service"
)

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	itemService service.ItemService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}

	v := validator.New()
	// Report validation failures under the json tag name so clients see the
	// camelCase keys they sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ItemHandler{
		itemService: itemService,
		validator:   v,
		logger:      logger.With(slog.String("component", "item_handler")),
	}
}

// CreateItem handles POST /items requests.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("create item validation failed", slog.String("error", redact.Error(err)))
		shared.RespondWithValidationError(w, r, validatorFields(err))
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), req.toDomain())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.logger.Debug("item created", slog.String("item_id", item.ID.Hex()))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item))
}

// ListItems handles GET /items requests.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.ListItems(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, itemToResponse(&items[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetItem handles GET /items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.itemService.GetItem(r.Context(), id)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// UpdateItem handles PATCH /items/{id} requests. The body is decoded as a
// free-form key map so absent fields and null fields can be told apart from
// zero values.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fields map[string]any
	if err := shared.DecodeJSON(r, &fields); err != nil {
		h.logger.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("item_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := h.itemService.UpdateItem(r.Context(), id, fields)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.logger.Debug("item updated", slog.String("item_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /items/{id} requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.itemService.DeleteItem(r.Context(), id); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.logger.Debug("item deleted", slog.String("item_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Item deleted successfully"})
}

// respondWithServiceError translates a service error into the right HTTP
// response: field errors become 422 with a field map, everything else goes
// through the status/message mapping with redacted logging.
func (h *ItemHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ferrs domain.FieldErrors
	if errors.As(err, &ferrs) {
		shared.RespondWithValidationError(w, r, ValidationFields(ferrs))
		return
	}

	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// validatorFields converts validator.ValidationErrors into the client-facing
// field map. Field names are already camelCase thanks to the json tag name
// function registered on the validator.
func validatorFields(err error) map[string]string {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["_"] = "invalid request"
		return fields
	}

	for _, fe := range verrs {
		fields[fe.Field()] = validationTagMessage(fe.Tag())
	}
	return fields
}

// validationTagMessage maps validation tags to user-friendly error messages.
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
