package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/datamark/backend/internal/domain/report"
	"github.com/datamark/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "dashboard:summary:"

// RedisSummaryCache implements SummaryCache using Redis. Summaries are
// stored as JSON, keyed per store, and dropped on every committed sale.
type RedisSummaryCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSummaryCache creates a Redis-backed summary cache
func NewRedisSummaryCache(cfg config.RedisConfig) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSummaryCache{
		client:    client,
		keyPrefix: summaryKeyPrefix,
	}, nil
}

// NewRedisSummaryCacheWithClient creates a cache with an existing Redis
// client, useful for testing or sharing a client across components.
func NewRedisSummaryCacheWithClient(client *redis.Client) *RedisSummaryCache {
	return &RedisSummaryCache{
		client:    client,
		keyPrefix: summaryKeyPrefix,
	}
}

// Get returns the cached summary for a store, or nil on a miss
func (c *RedisSummaryCache) Get(ctx context.Context, storeID uuid.UUID) (*report.DashboardSummary, error) {
	payload, err := c.client.Get(ctx, c.key(storeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read summary cache: %w", err)
	}

	var summary report.DashboardSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		// A corrupt entry behaves like a miss
		return nil, nil
	}
	return &summary, nil
}

// Set stores the summary for a store with the given TTL
func (c *RedisSummaryCache) Set(ctx context.Context, storeID uuid.UUID, summary *report.DashboardSummary, ttl time.Duration) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := c.client.Set(ctx, c.key(storeID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary for a store
func (c *RedisSummaryCache) Invalidate(ctx context.Context, storeID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(storeID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}

func (c *RedisSummaryCache) key(storeID uuid.UUID) string {
	return c.keyPrefix + storeID.String()
}

// Ensure RedisSummaryCache implements SummaryCache
var _ report.SummaryCache = (*RedisSummaryCache)(nil)
