// Package geocode resolves place names to coordinates.
package geocode

import "context"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Geocoder returns the best-match coordinates for a place name. A failure
// means the place should be excluded, not that the caller should abort.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Coordinates, error)
}
