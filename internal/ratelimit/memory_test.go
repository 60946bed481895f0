package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryStore(t *testing.T) (*MemoryStore, *time.Time) {
	t.Helper()
	s := NewMemoryStore(time.Hour)
	t.Cleanup(s.Stop)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestMemoryStoreHit(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects the request after the limit", func(t *testing.T) {
		s, _ := newTestMemoryStore(t)

		for i := 1; i <= 3; i++ {
			res, err := s.Hit(ctx, "10.0.0.1", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, res.Allowed, "request %d should be allowed", i)
			assert.Equal(t, 3-i, res.Remaining())
		}

		res, err := s.Hit(ctx, "10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining())
		assert.Equal(t, time.Minute, res.ResetAfter)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s, _ := newTestMemoryStore(t)

		for i := 0; i < 4; i++ {
			_, err := s.Hit(ctx, "10.0.0.1", 3, time.Minute)
			require.NoError(t, err)
		}

		res, err := s.Hit(ctx, "10.0.0.2", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, res.Count)
	})

	t.Run("window resets after expiry", func(t *testing.T) {
		s, now := newTestMemoryStore(t)

		for i := 0; i < 4; i++ {
			_, _ = s.Hit(ctx, "10.0.0.1", 3, time.Minute)
		}

		*now = now.Add(30 * time.Second)
		res, _ := s.Hit(ctx, "10.0.0.1", 3, time.Minute)
		assert.False(t, res.Allowed)
		assert.Equal(t, 30*time.Second, res.ResetAfter)

		*now = now.Add(30 * time.Second)
		res, _ = s.Hit(ctx, "10.0.0.1", 3, time.Minute)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, res.Count)
	})

	t.Run("concurrent hits are counted exactly", func(t *testing.T) {
		s, _ := newTestMemoryStore(t)

		var wg sync.WaitGroup
		allowed := make(chan bool, 50)
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, _ := s.Hit(ctx, "10.0.0.9", 10, time.Minute)
				allowed <- res.Allowed
			}()
		}
		wg.Wait()
		close(allowed)

		n := 0
		for ok := range allowed {
			if ok {
				n++
			}
		}
		assert.Equal(t, 10, n)
	})
}

func TestMemoryStoreSweep(t *testing.T) {
	s, now := newTestMemoryStore(t)
	ctx := context.Background()

	_, _ = s.Hit(ctx, "a", 1, time.Minute)
	_, _ = s.Hit(ctx, "b", 1, 2*time.Minute)
	require.Equal(t, 2, s.Len())

	*now = now.Add(90 * time.Second)
	s.sweep()

	assert.Equal(t, 1, s.Len())
}
