package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/items-api/internal/casing"
	"github.com/phrazzld/items-api/internal/domain"
	"github.com/phrazzld/items-api/internal/service"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var ferrs domain.FieldErrors
	switch {
	case errors.As(err, &ferrs):
		return http.StatusUnprocessableEntity

	case errors.Is(err, service.ErrItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	default:
		return "An unexpected error occurred"
	}
}

// ValidationFields converts a domain.FieldErrors value to the camelCase
// field map sent to clients. The domain reports snake_case keys; the HTTP
// boundary speaks camelCase only.
func ValidationFields(ferrs domain.FieldErrors) map[string]string {
	fields := make(map[string]string, len(ferrs))
	for k, v := range ferrs {
		fields[casing.ToCamel(k)] = v
	}
	return fields
}
