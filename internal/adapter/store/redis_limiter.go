package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// usageTTL keeps a day's counter around a little longer than the day itself.
const usageTTL = 48 * time.Hour

// RedisLimiter tracks tokens spent per user per UTC day.
type RedisLimiter struct {
	client *redis.Client
	limit  int // Max tokens allowed per day
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		now:    time.Now,
	}
}

func (r *RedisLimiter) key(userID string) string {
	return "usage:" + userID + ":" + r.now().UTC().Format("2006-01-02")
}

func (r *RedisLimiter) CheckLimit(ctx context.Context, userID string) (bool, error) {
	val, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil // No usage yet today
	}
	if err != nil {
		return false, fmt.Errorf("read usage: %w", err)
	}
	usage, err := strconv.Atoi(val)
	if err != nil {
		return false, fmt.Errorf("parse usage %q: %w", val, err)
	}
	return usage < r.limit, nil
}

func (r *RedisLimiter) Increment(ctx context.Context, userID string, tokens int) error {
	key := r.key(userID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrBy(ctx, key, int64(tokens))
		pipe.Expire(ctx, key, usageTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	return nil
}
