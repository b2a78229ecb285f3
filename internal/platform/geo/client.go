// Package geo resolves US postal codes to coordinates using the public
// zippopotam.us API.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/items-api/internal/config"
)

// Package errors returned by Lookup.
var (
	// ErrPostcodeNotFound indicates the upstream API has no data for the
	// postcode. The postcode is well-formed but does not exist.
	ErrPostcodeNotFound = errors.New("postcode not found")

	// ErrLookupFailed indicates a transport or upstream failure; the caller
	// cannot tell whether the postcode exists.
	ErrLookupFailed = errors.New("zipcode lookup failed")
)

// Location holds the coordinates and place metadata for a postal code.
type Location struct {
	Latitude  float64
	Longitude float64
	PlaceName string
	State     string
}

// ZipcodeResolver looks up location data for a US postal code.
type ZipcodeResolver interface {
	Lookup(ctx context.Context, postcode string) (*Location, error)
}

// Client is a ZipcodeResolver backed by the zippopotam.us HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a zipcode lookup client from the geo configuration.
func NewClient(cfg config.GeoConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.ZipAPIBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With("component", "geo_client"),
	}
}

// zippopotamResponse mirrors the upstream payload. The API uses spaces in
// some of its JSON keys.
type zippopotamResponse struct {
	Places []struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
		PlaceName string `json:"place name"`
		State     string `json:"state"`
	} `json:"places"`
}

// Lookup fetches the location data for a US postcode.
// Returns ErrPostcodeNotFound when the upstream has no record for it.
func (c *Client) Lookup(ctx context.Context, postcode string) (*Location, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, postcode)
	c.logger.Debug("fetching zipcode data", "postcode", postcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrLookupFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", "error", cerr)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPostcodeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrLookupFailed, resp.StatusCode)
	}

	var body zippopotamResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrLookupFailed, err)
	}

	if len(body.Places) == 0 {
		return nil, ErrPostcodeNotFound
	}

	place := body.Places[0]
	lat, err := strconv.ParseFloat(place.Latitude, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude %q", ErrLookupFailed, place.Latitude)
	}
	lon, err := strconv.ParseFloat(place.Longitude, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude %q", ErrLookupFailed, place.Longitude)
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		PlaceName: place.PlaceName,
		State:     place.State,
	}, nil
}
