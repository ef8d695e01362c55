package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"talentry/internal/ratelimit"
)

// Redis keeps sliding windows in sorted sets so every instance of the service
// counts against the same budget. Members are scored by arrival time in
// nanoseconds; pruning is a range delete on the score.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Allow records a hit and checks it against the budget in one atomic round
// trip. The hit is added before counting so concurrent requests serialize at
// the server and the budget can never be over-admitted; a denied hit removes
// itself again so denials do not eat into the window.
func (s *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (*ratelimit.Result, error) {
	now := time.Now()
	cutoff := now.Add(-window)
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.NewString()

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	card := pipe.ZCard(ctx, key)
	oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("check rate limit window: %w", err)
	}

	count := int(card.Val())
	resetAt := now.Add(window)
	if entries := oldest.Val(); len(entries) > 0 {
		resetAt = time.Unix(0, int64(entries[0].Score)).Add(window)
	}

	if count > limit {
		// Best effort: if the removal fails the member ages out with the window.
		s.client.ZRem(ctx, key, member)
		return &ratelimit.Result{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfter(resetAt, now),
		}, nil
	}

	return &ratelimit.Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count,
		ResetAt:   resetAt,
	}, nil
}
