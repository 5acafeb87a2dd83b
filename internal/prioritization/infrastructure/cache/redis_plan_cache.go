// Package cache stores plan snapshots so the last generated plan can be read
// back without re-ranking.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

// RedisPlanCache implements domain.PlanCache on Redis. Snapshots are stored
// as JSON under domain.PlanCacheKey.
type RedisPlanCache struct {
	client *redis.Client
}

// NewRedisPlanCache creates a cache backed by client.
func NewRedisPlanCache(client *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{client: client}
}

// NewRedisClient parses url (redis://...) and returns a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Get returns the snapshot stored for userID and date.
func (c *RedisPlanCache) Get(ctx context.Context, userID uuid.UUID, date string) (*domain.PlanSnapshot, error) {
	raw, err := c.client.Get(ctx, domain.PlanCacheKey(userID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var snapshot domain.PlanSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("decode plan snapshot: %w", err)
	}
	return &snapshot, nil
}

// Put stores snapshot, replacing any earlier plan for the same day.
func (c *RedisPlanCache) Put(ctx context.Context, snapshot domain.PlanSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode plan snapshot: %w", err)
	}
	return c.client.Set(ctx, domain.PlanCacheKey(snapshot.UserID, snapshot.Date), raw, ttl).Err()
}

// Ping checks the connection.
func (c *RedisPlanCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *RedisPlanCache) Close() error {
	return c.client.Close()
}
