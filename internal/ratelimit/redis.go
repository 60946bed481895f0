package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiX07/email-service/internal/logger"
)

// RedisClient is the subset of redis.Cmdable used by RedisStore
type RedisClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisStore implements Store with INCR/EXPIRE so counters are shared by
// every gateway replica.
type RedisStore struct {
	client RedisClient
	prefix string
	log    *logger.Logger
}

// NewRedisStore creates a RedisStore
func NewRedisStore(client RedisClient, log *logger.Logger) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:", log: log.WithComponent("ratelimit")}
}

// noExpiry is what TTL reports for a key that exists without an expiry
const noExpiry = time.Duration(-1)

// Hit counts one request for key
func (s *RedisStore) Hit(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	k := s.prefix + key

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// Set expiry on first request
	if count == 1 {
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	ttl, err := s.client.TTL(ctx, k).Result()
	switch {
	case err != nil:
		// The window is left alone; only the retry hint falls back
		s.log.Warn().Err(err).Str("key", k).Msg("failed to read rate limit ttl")
		ttl = window
	case ttl == noExpiry:
		// A lost EXPIRE would otherwise pin the counter forever
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			s.log.Error().Err(err).Str("key", k).Msg("failed to repair rate limit expiry")
		}
		ttl = window
	case ttl < 0:
		ttl = window
	}

	return Result{
		Allowed:    int(count) <= limit,
		Limit:      limit,
		Count:      int(count),
		ResetAfter: ttl,
	}, nil
}
