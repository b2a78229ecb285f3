package geo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/items-api/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(config.GeoConfig{ZipAPIBaseURL: server.URL}, logger)
}

func TestLookupSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/10001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"post code": "10001",
			"country": "United States",
			"places": [
				{
					"place name": "New York",
					"state": "New York",
					"latitude": "40.7484",
					"longitude": "-73.9967"
				}
			]
		}`))
	})

	loc, err := client.Lookup(context.Background(), "10001")

	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.InDelta(t, 40.7484, loc.Latitude, 0.0001)
	assert.InDelta(t, -73.9967, loc.Longitude, 0.0001)
	assert.Equal(t, "New York", loc.PlaceName)
	assert.Equal(t, "New York", loc.State)
}

func TestLookupNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	loc, err := client.Lookup(context.Background(), "00000")

	assert.Nil(t, loc)
	assert.ErrorIs(t, err, ErrPostcodeNotFound)
}

func TestLookupEmptyPlaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"places": []}`))
	})

	loc, err := client.Lookup(context.Background(), "99999")

	assert.Nil(t, loc)
	assert.ErrorIs(t, err, ErrPostcodeNotFound)
}

func TestLookupUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	loc, err := client.Lookup(context.Background(), "10001")

	assert.Nil(t, loc)
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestLookupMalformedCoordinates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"places": [{"place name": "Nowhere", "state": "XX", "latitude": "north", "longitude": "west"}]}`))
	})

	loc, err := client.Lookup(context.Background(), "10001")

	assert.Nil(t, loc)
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestLookupContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"places": []}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loc, err := client.Lookup(ctx, "10001")

	assert.Nil(t, loc)
	assert.ErrorIs(t, err, ErrLookupFailed)
}
