package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

const DefaultTTL = 5 * time.Minute

// GenerationKey holds the listing generation of a location.
func GenerationKey(locationID uuid.UUID) string {
	return fmt.Sprintf("slots:%s:gen", locationID.String())
}

func SlotsKey(locationID uuid.UUID, generation int64) string {
	return fmt.Sprintf("slots:%s:%d", locationID.String(), generation)
}

// SlotCache stores slot listings per location as JSON in Redis. Listings are
// keyed by generation; invalidation increments the generation and leaves old
// listings to expire.
type SlotCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SlotCache{redis: client, ttl: ttl}
}

func (c *SlotCache) Generation(ctx context.Context, locationID uuid.UUID) (int64, error) {
	gen, err := c.redis.Get(ctx, GenerationKey(locationID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("SlotCache.Generation: %w", err)
	}
	return gen, nil
}

func (c *SlotCache) Get(ctx context.Context, locationID uuid.UUID, generation int64) ([]domain.Slot, bool, error) {
	data, err := c.redis.Get(ctx, SlotsKey(locationID, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("SlotCache.Get: %w", err)
	}

	var slots []domain.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false, fmt.Errorf("SlotCache.Get: decode: %w", err)
	}
	return slots, true, nil
}

func (c *SlotCache) Set(ctx context.Context, locationID uuid.UUID, generation int64, slots []domain.Slot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("SlotCache.Set: encode: %w", err)
	}
	if err := c.redis.Set(ctx, SlotsKey(locationID, generation), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("SlotCache.Set: %w", err)
	}
	return nil
}

func (c *SlotCache) Invalidate(ctx context.Context, locationIDs ...uuid.UUID) error {
	for _, id := range locationIDs {
		if err := c.redis.Incr(ctx, GenerationKey(id)).Err(); err != nil {
			return fmt.Errorf("SlotCache.Invalidate: %w", err)
		}
	}
	return nil
}
