package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiX07/email-service/internal/logger"
)

// fakeRedis mimics INCR/EXPIRE/TTL on a single-process map
type fakeRedis struct {
	counts    map[string]int64
	ttls      map[string]time.Duration
	incrErr   error
	ttlErr    error
	expireErr error
	expires   int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expires++
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) TTL(_ context.Context, key string) *redis.DurationCmd {
	if f.ttlErr != nil {
		return redis.NewDurationResult(0, f.ttlErr)
	}
	ttl, ok := f.ttls[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(ttl, nil)
}

func TestRedisStoreHit(t *testing.T) {
	ctx := context.Background()

	t.Run("sets expiry on first hit and rejects over limit", func(t *testing.T) {
		fake := newFakeRedis()
		s := NewRedisStore(fake, logger.Nop())

		res, err := s.Hit(ctx, "10.0.0.1", 2, 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 10*time.Minute, fake.ttls["ratelimit:10.0.0.1"])

		_, _ = s.Hit(ctx, "10.0.0.1", 2, 10*time.Minute)
		res, err = s.Hit(ctx, "10.0.0.1", 2, 10*time.Minute)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, 3, res.Count)
		assert.Equal(t, 10*time.Minute, res.ResetAfter)
	})

	t.Run("repairs a key that lost its expiry", func(t *testing.T) {
		fake := newFakeRedis()
		fake.counts["ratelimit:10.0.0.1"] = 5
		s := NewRedisStore(fake, logger.Nop())

		res, err := s.Hit(ctx, "10.0.0.1", 10, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, res.ResetAfter)
		assert.Equal(t, time.Minute, fake.ttls["ratelimit:10.0.0.1"])
	})

	t.Run("ttl read failure keeps the window", func(t *testing.T) {
		fake := newFakeRedis()
		fake.counts["ratelimit:10.0.0.1"] = 5
		fake.ttls["ratelimit:10.0.0.1"] = 30 * time.Second
		fake.ttlErr = errors.New("i/o timeout")
		s := NewRedisStore(fake, logger.Nop())

		res, err := s.Hit(ctx, "10.0.0.1", 10, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, res.ResetAfter)
		assert.Equal(t, 0, fake.expires)
		assert.Equal(t, 30*time.Second, fake.ttls["ratelimit:10.0.0.1"])
	})

	t.Run("failed repair still answers", func(t *testing.T) {
		fake := newFakeRedis()
		fake.counts["ratelimit:10.0.0.1"] = 5
		fake.expireErr = errors.New("READONLY")
		s := NewRedisStore(fake, logger.Nop())

		res, err := s.Hit(ctx, "10.0.0.1", 10, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, fake.expires)
	})

	t.Run("surfaces counter errors", func(t *testing.T) {
		fake := newFakeRedis()
		fake.incrErr = errors.New("connection refused")
		s := NewRedisStore(fake, logger.Nop())

		_, err := s.Hit(ctx, "10.0.0.1", 10, time.Minute)
		assert.ErrorContains(t, err, "connection refused")
	})
}
