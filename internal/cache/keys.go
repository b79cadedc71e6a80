package cache

import (
	"fmt"
	"strings"
	"time"
)

const (
	GeocodeTTL = 24 * time.Hour
)

// GeocodeKey generates the Redis key for a geocoded place. Place names are
// matched case-insensitively with collapsed whitespace.
func GeocodeKey(place string) string {
	return fmt.Sprintf("newsmap:geo:place:%s", NormalizePlace(place))
}

// NormalizePlace lower-cases a place name and collapses runs of whitespace.
func NormalizePlace(place string) string {
	return strings.ToLower(strings.Join(strings.Fields(place), " "))
}
