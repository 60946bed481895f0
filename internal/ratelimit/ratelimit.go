// Package ratelimit provides fixed-window request counting keyed by caller
// address, backed by process memory or Redis.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of counting one request against a window
type Result struct {
	// Allowed is false once Count exceeds Limit
	Allowed bool
	Limit   int
	Count   int
	// ResetAfter is the time left until the current window closes
	ResetAfter time.Duration
}

// Remaining returns how many requests are left in the current window
func (r Result) Remaining() int {
	if r.Count >= r.Limit {
		return 0
	}
	return r.Limit - r.Count
}

// Store counts requests per key. Hit must increment and check atomically.
type Store interface {
	Hit(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}
