// Package cache holds the Redis-backed cache for attraction search results.
// The catalog is read-only, so entries only ever age out; there is no
// invalidation path. Recommendations are never cached: they depend on the
// caller's live preference profile.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tripweaver/internal/trip"
)

const defaultTTL = 15 * time.Minute

// SearchCache wraps a Redis client with typed get/set for search results.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache constructs a SearchCache with a 15-minute TTL.
func NewSearchCache(client *redis.Client) *SearchCache {
	return &SearchCache{client: client, ttl: defaultTTL}
}

// key builds the Redis key for one (city, state, orderBy) search. City and
// state are lowercased so cache hits follow the same case-insensitive rule
// as the SQL match.
func key(city, state, orderBy string) string {
	primary, _ := trip.NormalizeOrderBy(orderBy)
	return "attractions:" + strings.ToLower(strings.TrimSpace(city)) +
		":" + strings.ToLower(strings.TrimSpace(state)) +
		":" + primary
}

// Get retrieves cached search results. Returns nil, nil on a miss.
func (c *SearchCache) Get(ctx context.Context, city, state, orderBy string) ([]trip.Attraction, error) {
	val, err := c.client.Get(ctx, key(city, state, orderBy)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for %s, %s: %w", city, state, err)
	}

	var results []trip.Attraction
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		return nil, fmt.Errorf("unmarshaling cached attractions for %s, %s: %w", city, state, err)
	}

	return results, nil
}

// Set stores search results with the configured TTL. Empty result sets are
// not cached; the handler treats them as not-found and they stay cheap to
// recompute.
func (c *SearchCache) Set(ctx context.Context, city, state, orderBy string, results []trip.Attraction) error {
	if len(results) == 0 {
		return nil
	}

	b, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling attractions for %s, %s: %w", city, state, err)
	}

	if err := c.client.Set(ctx, key(city, state, orderBy), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for %s, %s: %w", city, state, err)
	}

	return nil
}
