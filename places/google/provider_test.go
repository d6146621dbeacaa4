package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/places"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := places.NewConfig(places.WithAPIKey("test-key"), places.WithRateLimit(0))
	p, err := NewProvider(cfg, WithBaseURL(srv.URL))
	require.NoError(t, err)
	return p
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewProvider(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		_, err := NewProvider(places.NewConfig())
		assert.ErrorIs(t, err, places.ErrAPIKeyRequired)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		_, err := NewProvider(nil)
		assert.ErrorIs(t, err, places.ErrAPIKeyRequired)
	})

	t.Run("valid config", func(t *testing.T) {
		p, err := NewProvider(places.NewConfig(places.WithAPIKey("k")))
		require.NoError(t, err)
		assert.NoError(t, p.Close())
	})
}

func TestProvider_NearbySearch(t *testing.T) {
	var got url.Values
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/place/nearbysearch/json", r.URL.Path)
		got = r.URL.Query()
		writeJSON(t, w, map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{"place_id": "p1", "name": "City Pet Hospital", "types": []string{"veterinary_care"}, "rating": 4.7, "user_ratings_total": 156},
				{"place_id": "", "name": "No ID"},
				{"place_id": "p2", "name": "Paws"},
			},
		})
	})

	candidates, err := p.NearbySearch(context.Background(), places.NearbyRequest{
		Location: core.Coordinate{Lat: 22.3, Lng: 73.1},
		Radius:   10000,
		Keyword:  "veterinarian for dogs",
		Type:     "veterinary_care",
	})
	require.NoError(t, err)

	assert.Equal(t, "22.3,73.1", got.Get("location"))
	assert.Equal(t, "10000", got.Get("radius"))
	assert.Equal(t, "veterinarian for dogs", got.Get("keyword"))
	assert.Equal(t, "veterinary_care", got.Get("type"))
	assert.Equal(t, "test-key", got.Get("key"))

	require.Len(t, candidates, 2)
	assert.Equal(t, core.Candidate{
		PlaceID:     "p1",
		Name:        "City Pet Hospital",
		Types:       []string{"veterinary_care"},
		Rating:      4.7,
		RatingCount: 156,
	}, candidates[0])
	assert.Equal(t, "p2", candidates[1].PlaceID)
}

func TestProvider_NearbySearch_Statuses(t *testing.T) {
	t.Run("zero results", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"status": "ZERO_RESULTS", "results": []any{}})
		})
		candidates, err := p.NearbySearch(context.Background(), places.NearbyRequest{Keyword: "x"})
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("request denied", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"status": "REQUEST_DENIED", "error_message": "bad key"})
		})
		_, err := p.NearbySearch(context.Background(), places.NearbyRequest{Keyword: "x"})
		assert.ErrorIs(t, err, places.ErrRequestFailed)
	})

	t.Run("default radius", func(t *testing.T) {
		var radius string
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			radius = r.URL.Query().Get("radius")
			writeJSON(t, w, map[string]any{"status": "OK"})
		})
		_, err := p.NearbySearch(context.Background(), places.NearbyRequest{Keyword: "x"})
		require.NoError(t, err)
		assert.Equal(t, "10000", radius)
	})
}

func TestProvider_PlaceDetails(t *testing.T) {
	var got url.Values
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/place/details/json", r.URL.Path)
		got = r.URL.Query()
		writeJSON(t, w, map[string]any{
			"status": "OK",
			"result": map[string]any{
				"name":                       "City Pet Hospital",
				"formatted_address":          "123 Main Street",
				"vicinity":                   "Main Street",
				"geometry":                   map[string]any{"location": map[string]any{"lat": 22.3072, "lng": 73.1812}},
				"formatted_phone_number":     "098765 43210",
				"international_phone_number": "+91 98765 43210",
				"business_status":            "OPERATIONAL",
				"opening_hours":              map[string]any{"weekday_text": []string{"Monday: 9 AM – 7 PM"}},
				"photos":                     []map[string]any{{"photo_reference": "ref-1", "width": 800, "height": 600}},
				"types":                      []string{"veterinary_care"},
				"rating":                     4.5,
				"user_ratings_total":         98,
				"website":                    "https://example.com",
			},
		})
	})

	detail, err := p.PlaceDetails(context.Background(), "p1", places.DetailFields)
	require.NoError(t, err)

	assert.Equal(t, "p1", got.Get("placeid"))
	assert.Contains(t, got.Get("fields"), "international_phone_number")
	assert.Contains(t, got.Get("fields"), "opening_hours")

	assert.Equal(t, &core.PlaceDetail{
		PlaceID:            "p1",
		Name:               "City Pet Hospital",
		FormattedAddress:   "123 Main Street",
		Vicinity:           "Main Street",
		Location:           &core.Coordinate{Lat: 22.3072, Lng: 73.1812},
		FormattedPhone:     "098765 43210",
		InternationalPhone: "+91 98765 43210",
		BusinessStatus:     "OPERATIONAL",
		WeekdayText:        []string{"Monday: 9 AM – 7 PM"},
		Photos:             []core.Photo{{Reference: "ref-1", Width: 800, Height: 600}},
		Types:              []string{"veterinary_care"},
		Rating:             4.5,
		RatingCount:        98,
		Website:            "https://example.com",
	}, detail)
}

func TestProvider_PlaceDetails_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"status": "NOT_FOUND"})
		})
		_, err := p.PlaceDetails(context.Background(), "gone", places.DetailFields)
		assert.ErrorIs(t, err, places.ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, map[string]any{"status": "UNKNOWN_ERROR"})
		})
		_, err := p.PlaceDetails(context.Background(), "p1", places.DetailFields)
		assert.ErrorIs(t, err, places.ErrRequestFailed)
	})

	t.Run("unknown field", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not be sent")
		})
		_, err := p.PlaceDetails(context.Background(), "p1", []string{"shoe_size"})
		assert.ErrorIs(t, err, places.ErrRequestFailed)
	})
}

func TestProvider_PhotoURL(t *testing.T) {
	p, err := NewProvider(places.NewConfig(places.WithAPIKey("k")))
	require.NoError(t, err)

	raw := p.PhotoURL("ref/1", 400, 300)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "maps.googleapis.com", u.Host)
	assert.Equal(t, "/maps/api/place/photo", u.Path)
	assert.Equal(t, "400", u.Query().Get("maxwidth"))
	assert.Equal(t, "300", u.Query().Get("maxheight"))
	assert.Equal(t, "ref/1", u.Query().Get("photoreference"))
	assert.Equal(t, "k", u.Query().Get("key"))

	assert.Empty(t, p.PhotoURL("", 400, 300))
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.7, roundRating(4.7))
	assert.Equal(t, 0.0, roundRating(0))
	assert.Equal(t, 3.5, roundRating(3.5))
}
