package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	RedisStatsKeyPrefix = "stats:last:"

	defaultStatsTTL = 7 * 24 * time.Hour
)

// StatsCache stores the last successfully computed dashboard payload per
// scope so a failed refresh can fall back to it.
type StatsCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewStatsCache(redisClient *redis.Client, log *logrus.Logger) *StatsCache {
	return &StatsCache{
		redisClient: redisClient,
		log:         log,
		ttl:         defaultStatsTTL,
	}
}

func (c *StatsCache) Save(ctx context.Context, scope string, value any) error {
	if c.redisClient == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode stats for %s: %w", scope, err)
	}
	if err := c.redisClient.Set(ctx, RedisStatsKeyPrefix+scope, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("store stats for %s: %w", scope, err)
	}
	return nil
}

// Load decodes the last-known value into dest. It reports false when no
// value has been stored for scope.
func (c *StatsCache) Load(ctx context.Context, scope string, dest any) (bool, error) {
	if c.redisClient == nil {
		return false, nil
	}

	payload, err := c.redisClient.Get(ctx, RedisStatsKeyPrefix+scope).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load stats for %s: %w", scope, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode stats for %s: %w", scope, err)
	}
	return true, nil
}
