package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/petplaces/catalog"
	"github.com/poiesic/petplaces/core"
	"github.com/poiesic/petplaces/geo"
	"github.com/poiesic/petplaces/places"
	"github.com/poiesic/petplaces/places/mock"
	"github.com/poiesic/petplaces/search"
)

func newTestServer(t *testing.T, provider places.Provider, opts ...search.Option) *httptest.Server {
	t.Helper()
	reg, err := catalog.Default()
	require.NoError(t, err)

	searcher, err := search.NewSearcher(reg, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(searcher.Release)

	srv, err := NewServer(searcher)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestNewServer(t *testing.T) {
	_, err := NewServer(nil)
	assert.Equal(t, ErrSearcherRequired, err)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	var body map[string]string
	status := getJSON(t, ts.URL+"/health", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestListCategories(t *testing.T) {
	ts := newTestServer(t, nil)

	var body []categoryView
	status := getJSON(t, ts.URL+"/api/categories", &body)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body, 10)
	assert.Equal(t, "cat_health", body[0].ID)
	for _, c := range body {
		if c.ID == "dog_services" {
			assert.Equal(t, "dog_services", c.Family)
			assert.Equal(t, 2, c.Offline)
		}
	}
}

func TestSearchResources(t *testing.T) {
	t.Run("offline when provider missing", func(t *testing.T) {
		ts := newTestServer(t, nil)

		var result search.Result
		status := getJSON(t, ts.URL+"/api/categories/cat_services/resources?lat=22.3&lng=73.1", &result)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, search.SourceOffline, result.Source)
		assert.Len(t, result.Resources, 2)
		assert.Equal(t, core.Coordinate{Lat: 22.3, Lng: 73.1}, result.Origin)
		assert.Equal(t, []string{search.AdvisoryProviderUnavailable}, result.Advisories)
	})

	t.Run("live results with query", func(t *testing.T) {
		provider := mock.NewMockProvider().
			WithCandidates("groomer", core.Candidate{PlaceID: "g", Name: "Silky Coat Grooming"}).
			WithDetail(&core.PlaceDetail{PlaceID: "g", Name: "Silky Coat Grooming", BusinessStatus: places.BusinessOperational})
		ts := newTestServer(t, provider)

		var result search.Result
		status := getJSON(t, ts.URL+"/api/categories/CAT_SERVICES/resources?lat=22.3&lng=73.1&q=groomer", &result)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, search.SourceLive, result.Source)
		require.Len(t, result.Resources, 1)
		assert.Equal(t, search.TypeCatGroomer, result.Resources[0].Type)
		assert.Equal(t, "groomer", provider.NearbyCalls()[0].Keyword)
	})

	t.Run("locator used without coordinates", func(t *testing.T) {
		here := core.Coordinate{Lat: 19.076, Lng: 72.8777}
		ts := newTestServer(t, nil, search.WithLocator(geo.Fixed(here)))

		var result search.Result
		status := getJSON(t, ts.URL+"/api/categories/dog_health/resources", &result)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, here, result.Origin)
	})

	t.Run("unknown category uses generic keyword", func(t *testing.T) {
		provider := mock.NewMockProvider()
		ts := newTestServer(t, provider)

		var result search.Result
		status := getJSON(t, ts.URL+"/api/categories/lizard_health/resources?lat=22.3&lng=73.1", &result)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "lizard_health", result.Category)
		assert.Equal(t, search.SourceOffline, result.Source)
		assert.NotNil(t, result.Resources)
		assert.Empty(t, result.Resources)
		calls := provider.NearbyCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, catalog.DefaultKeyword, calls[0].Keyword)
		assert.Equal(t, catalog.DefaultType, calls[0].Type)
	})

	bad := []string{"lat=abc&lng=1", "lat=10", "lat=95&lng=10"}
	for _, query := range bad {
		t.Run("bad coordinate "+query, func(t *testing.T) {
			ts := newTestServer(t, nil)

			var body map[string]string
			status := getJSON(t, ts.URL+"/api/categories/dog_health/resources?"+query, &body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandler_AccessLog(t *testing.T) {
	reg, err := catalog.Default()
	require.NoError(t, err)
	searcher, err := search.NewSearcher(reg, nil)
	require.NoError(t, err)
	defer searcher.Release()
	srv, err := NewServer(searcher)
	require.NoError(t, err)

	var log bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler(&log).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, log.String(), "GET /health")
}
