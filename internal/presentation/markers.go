// Package presentation turns enriched articles into map markers and renders
// the server-side map page.
package presentation

import (
	"math/rand/v2"

	"news-map/internal/services/news"
)

// maxOffset bounds the jitter added to each coordinate, in degrees.
const maxOffset = 1.0 / 6

// Marker is an enriched article positioned for display. Its coordinates are
// offset so articles about the same place do not hide each other.
type Marker struct {
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	URL       string  `json:"url"`
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewMarkers builds one marker per article with a fresh offset in
// [0, 1/6) on each axis. A nil rng uses the shared generator.
func NewMarkers(articles []news.EnrichedArticle, rng *rand.Rand) []Marker {
	offset := rand.Float64
	if rng != nil {
		offset = rng.Float64
	}

	markers := make([]Marker, 0, len(articles))
	for _, a := range articles {
		markers = append(markers, Marker{
			Title:     a.Title,
			Summary:   a.Summary,
			URL:       a.URL,
			Location:  a.Location,
			Latitude:  a.Latitude + offset()*maxOffset,
			Longitude: a.Longitude + offset()*maxOffset,
		})
	}
	return markers
}
