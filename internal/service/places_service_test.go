package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wanderplan/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPlacesService(nominatimURL, overpassURL string) *PlacesService {
	return NewPlacesService(&config.PlacesConfig{
		NominatimURL:    nominatimURL,
		OverpassURL:     overpassURL,
		GeocodeTimeout:  2 * time.Second,
		OverpassTimeout: 2 * time.Second,
	}, zap.NewNop())
}

func TestGeocodeParsesFirstResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Kyoto, Japan", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`[{
			"display_name": "Kyoto, Kyoto Prefecture, Japan",
			"lat": "35.0116",
			"lon": "135.7681",
			"address": {"country": "Japan", "city": "Kyoto"}
		}]`))
	}))
	defer server.Close()

	svc := testPlacesService(server.URL, server.URL)

	geo, err := svc.Geocode(context.Background(), "Kyoto, Japan")

	require.NoError(t, err)
	require.NotNil(t, geo)
	assert.Equal(t, "Kyoto, Kyoto Prefecture, Japan", geo.Name)
	assert.InDelta(t, 35.0116, geo.Lat, 0.0001)
	assert.InDelta(t, 135.7681, geo.Lon, 0.0001)
	assert.Equal(t, "Japan", geo.Country)
	assert.Equal(t, "Kyoto", geo.City)
}

func TestGeocodeFallsBackToTown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"display_name": "Hallstatt, Austria",
			"lat": "47.5622",
			"lon": "13.6493",
			"address": {"country": "Austria", "town": "Hallstatt"}
		}]`))
	}))
	defer server.Close()

	svc := testPlacesService(server.URL, server.URL)

	geo, err := svc.Geocode(context.Background(), "Hallstatt")

	require.NoError(t, err)
	require.NotNil(t, geo)
	assert.Equal(t, "Hallstatt", geo.City)
}

func TestGeocodeNoMatchReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := testPlacesService(server.URL, server.URL)

	geo, err := svc.Geocode(context.Background(), "xyzzy nowhere")

	require.NoError(t, err)
	assert.Nil(t, geo)
}

func TestNearbySkipsUnnamedElements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements": [
			{"id": 1, "lat": 35.01, "lon": 135.76, "tags": {"name": "Kinkaku-ji", "wikipedia": "en:Kinkaku-ji"}},
			{"id": 2, "lat": 35.02, "lon": 135.77, "tags": {}},
			{"id": 3, "center": {"lat": 35.03, "lon": 135.78}, "tags": {"name": "Nijo Castle"}}
		]}`))
	}))
	defer server.Close()

	svc := testPlacesService(server.URL, server.URL)

	places, err := svc.Nearby(context.Background(), 35.0116, 135.7681, "tourism", 3000)

	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Kinkaku-ji", places[0].Name)
	assert.Equal(t, "en:Kinkaku-ji", places[0].Wikipedia)
	// Ways carry their coordinates in the center object.
	assert.Equal(t, "Nijo Castle", places[1].Name)
	assert.InDelta(t, 35.03, places[1].Lat, 0.0001)
	assert.InDelta(t, 135.78, places[1].Lon, 0.0001)
}

func TestNearbyUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := testPlacesService(server.URL, server.URL)

	_, err := svc.Nearby(context.Background(), 35.0, 135.0, "food", 3000)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDestinationInfoNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := testPlacesService(server.URL, server.URL)

	_, err := svc.DestinationInfo(context.Background(), "xyzzy nowhere")

	require.ErrorIs(t, err, ErrDestinationNotFound)
}

func TestDestinationInfoAggregates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"display_name": "Lisbon, Portugal", "lat": "38.7223", "lon": "-9.1393", "address": {"country": "Portugal", "city": "Lisbon"}}]`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements": [{"id": 10, "lat": 38.72, "lon": -9.14, "tags": {"name": "Some Place"}}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := testPlacesService(server.URL, server.URL)

	info, err := svc.DestinationInfo(context.Background(), "Lisbon")

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", info.Destination.City)
	assert.Len(t, info.Attractions, 1)
	assert.Len(t, info.Restaurants, 1)
	assert.Len(t, info.Hotels, 1)
}
