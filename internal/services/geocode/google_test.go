package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"news-map/internal/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geocodeResponse(status string, coords ...[2]float64) map[string]any {
	results := make([]map[string]any, 0, len(coords))
	for _, c := range coords {
		results = append(results, map[string]any{
			"formatted_address": "somewhere",
			"geometry": map[string]any{
				"location": map[string]any{"lat": c[0], "lng": c[1]},
			},
		})
	}
	return map[string]any{"status": status, "results": results}
}

func newTestGoogle(t *testing.T, handler http.HandlerFunc) *GoogleClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGoogleClient("maps-key", srv.URL, srv.Client())
}

func TestGoogleGeocode_FirstResult(t *testing.T) {
	var gotAddress, gotKey string
	client := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		gotAddress = r.URL.Query().Get("address")
		gotKey = r.URL.Query().Get("key")
		json.NewEncoder(w).Encode(geocodeResponse("OK", [2]float64{45.4215, -75.6972}, [2]float64{1, 2}))
	})

	coords, err := client.Geocode(context.Background(), "Thunder Bay")
	require.NoError(t, err)

	assert.Equal(t, "Thunder Bay", gotAddress)
	assert.Equal(t, "maps-key", gotKey)
	assert.Equal(t, Coordinates{Latitude: 45.4215, Longitude: -75.6972}, coords)
}

func TestGoogleGeocode_Failures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus string
	}{
		{
			name: "zero results",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(geocodeResponse("ZERO_RESULTS"))
			},
			wantStatus: "ZERO_RESULTS",
		},
		{
			name: "ok status without results",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(geocodeResponse("OK"))
			},
			wantStatus: "OK",
		},
		{
			name: "request denied",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"status":        "REQUEST_DENIED",
					"error_message": "The provided API key is invalid.",
					"results":       []any{},
				})
			},
			wantStatus: "REQUEST_DENIED",
		},
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
			},
			wantStatus: "503 Service Unavailable",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			wantStatus: "INVALID_RESPONSE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestGoogle(t, tt.handler)

			_, err := client.Geocode(context.Background(), "Unknown")

			var geoErr *upstream.GeocodingError
			require.True(t, errors.As(err, &geoErr))
			assert.Equal(t, "Unknown", geoErr.Place)
			assert.Equal(t, tt.wantStatus, geoErr.Status)
		})
	}
}

func TestGoogleGeocode_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewGoogleClient("maps-key", srv.URL, nil).Geocode(context.Background(), "Ottawa")
	assert.True(t, upstream.IsTransport(err))
}
