// Package rediscache implements the availability snapshot cache on
// Redis. Entries are short-lived and purely advisory, so every error
// degrades to a cache miss at the call site.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sporthub/server/internal/port/outbound"
)

type availabilityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ outbound.AvailabilityCachePort = (*availabilityCache)(nil)

// NewAvailabilityCache creates a new availability snapshot cache.
func NewAvailabilityCache(client redis.UniversalClient, ttl time.Duration) outbound.AvailabilityCachePort {
	return &availabilityCache{client: client, ttl: ttl}
}

func snapshotKey(facilityID uuid.UUID, date string) string {
	return fmt.Sprintf("availability:%s:%s", facilityID, date)
}

func (c *availabilityCache) GetSnapshot(ctx context.Context, facilityID uuid.UUID, date string) ([]byte, error) {
	data, err := c.client.Get(ctx, snapshotKey(facilityID, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get availability snapshot: %w", err)
	}
	return data, nil
}

func (c *availabilityCache) SetSnapshot(ctx context.Context, facilityID uuid.UUID, date string, snapshot []byte) error {
	if err := c.client.Set(ctx, snapshotKey(facilityID, date), snapshot, c.ttl).Err(); err != nil {
		return fmt.Errorf("set availability snapshot: %w", err)
	}
	return nil
}

func (c *availabilityCache) Invalidate(ctx context.Context, facilityID uuid.UUID, date string) error {
	if err := c.client.Del(ctx, snapshotKey(facilityID, date)).Err(); err != nil {
		return fmt.Errorf("invalidate availability snapshot: %w", err)
	}
	return nil
}
