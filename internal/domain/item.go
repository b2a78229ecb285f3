package domain

import (
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Direction represents the compass quadrant of an item's location relative
// to New York.
type Direction string

// Possible direction values.
const (
	DirectionNortheast Direction = "NE"
	DirectionNorthwest Direction = "NW"
	DirectionSoutheast Direction = "SE"
	DirectionSouthwest Direction = "SW"
)

// Field length limits for Item.
const (
	MaxNameLength  = 50
	MaxTitleLength = 100
	MaxUserLength  = 50
)

// MinStartDateLead is the minimum interval between now and an item's start date.
const MinStartDateLead = 7 * 24 * time.Hour

// usPostcodeRegex matches US postal codes: 5 digits, optionally followed by
// a dash and 4 digits.
var usPostcodeRegex = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Item is the sole domain entity: a document record describing a named item
// tied to a US location. Latitude, longitude, and the direction from New York
// are derived from the postcode at creation time and never updated afterward.
// Field keys are snake_case both internally and in the store.
type Item struct {
	ID                   bson.ObjectID `bson:"_id,omitempty"         json:"id"`
	Name                 string        `bson:"name"                  json:"name"`
	Postcode             string        `bson:"postcode"              json:"postcode"`
	Latitude             float64       `bson:"latitude"              json:"latitude"`
	Longitude            float64       `bson:"longitude"             json:"longitude"`
	DirectionFromNewYork Direction     `bson:"direction_from_new_york" json:"direction_from_new_york"`
	Title                string        `bson:"title,omitempty"       json:"title"`
	Users                []string      `bson:"users"                 json:"users"`
	StartDate            time.Time     `bson:"start_date"            json:"start_date"`
	CreatedAt            time.Time     `bson:"created_at"            json:"created_at"`
	UpdatedAt            time.Time     `bson:"updated_at"            json:"updated_at"`
}

// FieldErrors maps offending field names to human-readable messages. It is
// the error type surfaced to clients as an unprocessable-entity response.
type FieldErrors map[string]string

// Error implements the error interface for FieldErrors.
func (e FieldErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e))
}

// ValidPostcode reports whether s is a well-formed US postal code.
func ValidPostcode(s string) bool {
	return usPostcodeRegex.MatchString(s)
}

// ValidStartDate reports whether t is at least one week after now.
func ValidStartDate(t, now time.Time) bool {
	return !t.Before(now.Add(MinStartDateLead))
}

// NameInUsers reports whether name appears in the users list.
func NameInUsers(name string, users []string) bool {
	for _, u := range users {
		if u == name {
			return true
		}
	}
	return false
}

// CalculateDirection returns the compass quadrant of (lat, lon) relative to
// the reference point (refLat, refLon). Points on a reference axis count as
// north or east, matching the original behavior.
func CalculateDirection(lat, lon, refLat, refLon float64) Direction {
	if lat >= refLat {
		if lon >= refLon {
			return DirectionNortheast
		}
		return DirectionNorthwest
	}
	if lon >= refLon {
		return DirectionSoutheast
	}
	return DirectionSouthwest
}

// ValidateNew checks the user-supplied fields of an item about to be created.
// Derived fields (coordinates, direction) are not checked here because they
// are set by the service after the zip lookup. Returns FieldErrors listing
// every offending field, or nil when the item is valid.
func (i *Item) ValidateNew(now time.Time) error {
	errs := FieldErrors{}

	if i.Name == "" {
		errs["name"] = "name is required"
	} else if len(i.Name) > MaxNameLength {
		errs["name"] = fmt.Sprintf("name must be at most %d characters", MaxNameLength)
	}

	if i.Postcode == "" {
		errs["postcode"] = "postcode is required"
	} else if !ValidPostcode(i.Postcode) {
		errs["postcode"] = "invalid US postcode format"
	}

	if len(i.Users) == 0 {
		errs["users"] = "users list is required"
	} else {
		for idx, u := range i.Users {
			if len(u) > MaxUserLength {
				errs[fmt.Sprintf("users[%d]", idx)] = fmt.Sprintf(
					"user name %q exceeds %d characters", u, MaxUserLength)
			}
		}
	}

	if i.StartDate.IsZero() {
		errs["start_date"] = "start date is required"
	} else if !ValidStartDate(i.StartDate, now) {
		errs["start_date"] = "start date must be at least 1 week after the creation date"
	}

	if i.Name != "" && len(i.Users) > 0 && !NameInUsers(i.Name, i.Users) {
		errs["name"] = "name must be included in the users list"
	}

	if len(i.Title) > MaxTitleLength {
		errs["title"] = fmt.Sprintf("title must be at most %d characters", MaxTitleLength)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
