package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"news-map/internal/services/upstream"
)

// GoogleClient queries the Google Maps Geocoding API.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGoogleClient(apiKey, baseURL string, httpClient *http.Client) *GoogleClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}

	return &GoogleClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode returns the first result for place. No country bias is applied.
func (c *GoogleClient) Geocode(ctx context.Context, place string) (Coordinates, error) {
	params := url.Values{}
	params.Set("address", place)
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + "/maps/api/geocode/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, upstream.Transport(upstream.ServiceGeocoding, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Coordinates{}, upstream.Transport(upstream.ServiceGeocoding, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return Coordinates{}, &upstream.GeocodingError{
			Place:   place,
			Status:  resp.Status,
			Message: strings.TrimSpace(string(body)),
		}
	}

	var payload googleResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Coordinates{}, &upstream.GeocodingError{
			Place:   place,
			Status:  "INVALID_RESPONSE",
			Message: err.Error(),
			Err:     err,
		}
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return Coordinates{}, &upstream.GeocodingError{
			Place:   place,
			Status:  payload.Status,
			Message: payload.ErrorMessage,
		}
	}

	loc := payload.Results[0].Geometry.Location
	return Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
