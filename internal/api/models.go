package api

import (
	"time"

	"github.com/phrazzld/items-api/internal/domain"
)

// CreateItemRequest represents the request body for creating a new item.
// All keys at the HTTP boundary are camelCase.
type CreateItemRequest struct {
	Name      string    `json:"name"      validate:"required,max=50"`
	Postcode  string    `json:"postcode"  validate:"required"`
	Title     string    `json:"title"     validate:"omitempty,max=100"`
	Users     []string  `json:"users"     validate:"required,min=1,dive,max=50"`
	StartDate time.Time `json:"startDate" validate:"required"`
}

// ItemResponse represents the response data for an item.
type ItemResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Postcode             string    `json:"postcode"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	DirectionFromNewYork string    `json:"directionFromNewYork"`
	Title                string    `json:"title,omitempty"`
	Users                []string  `json:"users"`
	StartDate            time.Time `json:"startDate"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// MessageResponse is the body for operations that return only a confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// toDomain builds the domain entity from the request. Derived fields are
// left zero; the service fills them in.
func (r *CreateItemRequest) toDomain() *domain.Item {
	return &domain.Item{
		Name:      r.Name,
		Postcode:  r.Postcode,
		Title:     r.Title,
		Users:     r.Users,
		StartDate: r.StartDate.UTC(),
	}
}

// itemToResponse converts a domain.Item to an ItemResponse.
func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:                   item.ID.Hex(),
		Name:                 item.Name,
		Postcode:             item.Postcode,
		Latitude:             item.Latitude,
		Longitude:            item.Longitude,
		DirectionFromNewYork: string(item.DirectionFromNewYork),
		Title:                item.Title,
		Users:                item.Users,
		StartDate:            item.StartDate,
		CreatedAt:            item.CreatedAt,
		UpdatedAt:            item.UpdatedAt,
	}
}
