package ratelimit

import (
	"context"
	"sync"
	"time"
)

// window holds the counter for one key
type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore implements Store with a mutex-guarded map. Expired windows are
// replaced lazily on the next hit and swept periodically.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates a MemoryStore that sweeps stale windows every
// cleanupInterval. A zero interval defaults to one minute.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}

	s := &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
		done:    make(chan struct{}),
	}

	go s.cleanup(cleanupInterval)

	return s
}

// Hit counts one request for key
func (s *MemoryStore) Hit(_ context.Context, key string, limit int, win time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(win)}
		s.windows[key] = w
	}
	w.count++

	return Result{
		Allowed:    w.count <= limit,
		Limit:      limit,
		Count:      w.count,
		ResetAfter: w.resetAt.Sub(now),
	}, nil
}

// Len returns the number of tracked keys
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// Stop stops the cleanup goroutine
func (s *MemoryStore) Stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes windows that have already closed
func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
		}
	}
}
