// Package ratelimit enforces per-client request budgets over a sliding
// window. Requests are bucketed by endpoint class and client IP; the window
// store is in-memory for a single replica or Redis when replicas share state.
package ratelimit

import (
	"context"
	"strings"
	"time"
)

// EndpointClass categorizes endpoints for differentiated rate limiting.
type EndpointClass string

const (
	// ClassRead covers the directory GET surface.
	ClassRead EndpointClass = "read"
	// ClassWrite covers every mutating route.
	ClassWrite EndpointClass = "write"
)

// Result reports the outcome of one budget check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds, only set when not allowed
}

// Store tracks request timestamps per key within a sliding window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// Key builds the window key for an endpoint class and client IP.
func Key(class EndpointClass, ip string) string {
	return "rl:" + string(class) + ":" + sanitizeSegment(ip)
}

// sanitizeSegment escapes the key delimiter in user-controlled segments so an
// identifier containing ':' (an IPv6 address, say) can never collide with an
// adjacent budget's key.
func sanitizeSegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
