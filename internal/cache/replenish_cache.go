// backend-go/internal/cache/replenish_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/config"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/replenish"
	"github.com/redis/go-redis/v9"
)

const replenishKeyPrefix = "replenish:result"

// ReplenishmentCache caches whole per-request result sets. Sound
// because the ledgers and graph never change after startup; a short
// TTL still bounds staleness across redeploys with fresh data.
type ReplenishmentCache interface {
	Get(ctx context.Context, req replenish.Request) ([]domain.ReplenishmentRow, bool, error)
	Set(ctx context.Context, req replenish.Request, rows []domain.ReplenishmentRow) error
}

type redisReplenishmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReplenishmentCache struct{}

func NewReplenishmentCache(cfg config.CacheConfig) (ReplenishmentCache, error) {
	if !cfg.Enabled {
		return &noopReplenishmentCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReplenishmentCache{client: client, ttl: ttl}, nil
}

func NewNoopReplenishmentCache() ReplenishmentCache {
	return &noopReplenishmentCache{}
}

func (c *redisReplenishmentCache) Get(ctx context.Context, req replenish.Request) ([]domain.ReplenishmentRow, bool, error) {
	payload, err := c.client.Get(ctx, buildReplenishKey(req)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rows []domain.ReplenishmentRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode replenishment cache: %w", err)
	}
	return rows, true, nil
}

func (c *redisReplenishmentCache) Set(ctx context.Context, req replenish.Request, rows []domain.ReplenishmentRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode replenishment cache: %w", err)
	}

	if err := c.client.Set(ctx, buildReplenishKey(req), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopReplenishmentCache) Get(ctx context.Context, req replenish.Request) ([]domain.ReplenishmentRow, bool, error) {
	return nil, false, nil
}

func (n *noopReplenishmentCache) Set(ctx context.Context, req replenish.Request, rows []domain.ReplenishmentRow) error {
	return nil
}

func buildReplenishKey(req replenish.Request) string {
	raw := fmt.Sprintf("variant=%s|id=%s|from_month=%d|month=%d",
		req.Variant, req.ID, req.FromMonth, req.LookbackMonths)
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", replenishKeyPrefix, hex.EncodeToString(sum[:]))
}
