package geocode

import (
	"context"
	"errors"
	"time"

	"news-map/internal/cache"

	"github.com/rs/zerolog/log"
)

// Store is the subset of cache.RedisCache used for geocode lookups.
type Store interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CachedGeocoder remembers successful lookups so repeated cities cost one
// upstream call per TTL. Failures are never cached, and cache errors fall
// through to the wrapped geocoder.
type CachedGeocoder struct {
	next  Geocoder
	store Store
	ttl   time.Duration
}

func NewCachedGeocoder(next Geocoder, store Store, ttl time.Duration) *CachedGeocoder {
	if ttl <= 0 {
		ttl = cache.GeocodeTTL
	}
	return &CachedGeocoder{next: next, store: store, ttl: ttl}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, place string) (Coordinates, error) {
	key := cache.GeocodeKey(place)

	var cached Coordinates
	err := g.store.GetJSON(ctx, key, &cached)
	switch {
	case err == nil:
		log.Debug().Str("place", place).Msg("Geocode cache hit")
		return cached, nil
	case !errors.Is(err, cache.ErrKeyNotFound):
		log.Warn().Err(err).Str("place", place).Msg("Geocode cache read failed")
	}

	coords, err := g.next.Geocode(ctx, place)
	if err != nil {
		return Coordinates{}, err
	}

	if err := g.store.Set(ctx, key, coords, g.ttl); err != nil {
		log.Warn().Err(err).Str("place", place).Msg("Geocode cache write failed")
	}

	return coords, nil
}
