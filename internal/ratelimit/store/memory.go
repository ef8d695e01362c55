// Package store implements the sliding-window stores behind the rate limiter.
package store

import (
	"context"
	"math"
	"sync"
	"time"

	"talentry/internal/ratelimit"
)

// Memory tracks request windows in process memory. Budgets are per instance;
// multi-replica deployments share state through the Redis store instead.
type Memory struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

func NewMemory() *Memory {
	return &Memory{windows: make(map[string][]time.Time)}
}

// Allow prunes the key's window, then admits the request if the budget holds.
func (s *Memory) Allow(_ context.Context, key string, limit int, window time.Duration) (*ratelimit.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	kept := prune(s.windows[key], now.Add(-window))

	if len(kept) >= limit {
		s.windows[key] = kept
		resetAt := kept[0].Add(window)
		return &ratelimit.Result{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfter(now, resetAt),
		}, nil
	}

	kept = append(kept, now)
	s.windows[key] = kept
	return &ratelimit.Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(kept),
		ResetAt:   kept[0].Add(window),
	}, nil
}

// prune drops timestamps at or before the cutoff.
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	return stamps[i:]
}

// retryAfter rounds up to whole seconds; clients treat Retry-After: 0 as
// an invitation to hammer, so the floor is one second.
func retryAfter(now, resetAt time.Time) int {
	seconds := int(math.Ceil(resetAt.Sub(now).Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
