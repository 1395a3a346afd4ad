package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	listingCachePrefix = "listing:"
	defaultListingTTL  = 5 * time.Minute
)

// ListingCache caches listing detail payloads in Redis
type ListingCache struct {
	client *Client
	ttl    time.Duration
}

// NewListingCache creates a new listing cache
func NewListingCache(client *Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = defaultListingTTL
	}
	return &ListingCache{client: client, ttl: ttl}
}

func listingKey(kind domain.ListingKind, id uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", listingCachePrefix, kind, id.String())
}

// Get loads a cached listing into dest. It reports false on a cache miss.
func (c *ListingCache) Get(ctx context.Context, kind domain.ListingKind, id uuid.UUID, dest any) (bool, error) {
	data, err := c.client.rdb.Get(ctx, listingKey(kind, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached %s: %w", kind, err)
	}
	return true, nil
}

// Set caches a listing
func (c *ListingCache) Set(ctx context.Context, kind domain.ListingKind, id uuid.UUID, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}

	return c.client.rdb.Set(ctx, listingKey(kind, id), data, c.ttl).Err()
}

// Invalidate removes a cached listing
func (c *ListingCache) Invalidate(ctx context.Context, kind domain.ListingKind, id uuid.UUID) error {
	return c.client.rdb.Del(ctx, listingKey(kind, id)).Err()
}

// FlushAll removes all cached listings
func (c *ListingCache) FlushAll(ctx context.Context) (int64, error) {
	pattern := listingCachePrefix + "*"
	var cursor uint64
	var deleted int64

	for {
		keys, nextCursor, err := c.client.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			count, err := c.client.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete keys: %w", err)
			}
			deleted += count
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}
