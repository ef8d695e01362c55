package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"talentry/internal/matching/metrics"
	"talentry/internal/matching/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/circuit"
)

// Redis key prefix for cached matrix cells.
const cacheKeyPrefix = "match:"

// matrixStore is the store surface the cache decorates.
type matrixStore interface {
	Upsert(ctx context.Context, record *models.CompatibilityRecord) error
	FindByPair(ctx context.Context, talentID, opportunityID id.AccountID) (*models.CompatibilityRecord, error)
}

// Cache is a read-through cache over the matrix store. Lookups try Redis
// first and fall through to the primary on a miss; upserts write the primary
// and then refresh the cached cell. Redis trouble never fails a request: a
// circuit breaker takes the cache out of the path after repeated failures and
// puts it back after repeated successes.
type Cache struct {
	primary matrixStore
	client  *redis.Client
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger attaches a logger for cache degradation events.
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithMetrics attaches hit/miss counters.
func WithMetrics(m *metrics.Metrics) CacheOption {
	return func(c *Cache) {
		c.metrics = m
	}
}

// NewCache decorates primary with a Redis read-through cache. Cached cells
// expire after ttl so a stale cell can outlive its record by at most that long.
func NewCache(primary matrixStore, client *redis.Client, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		primary: primary,
		client:  client,
		ttl:     ttl,
		breaker: circuit.New("compatibility-cache"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Upsert writes the primary store first, then refreshes the cached cell.
// A failed cache refresh is recorded against the breaker but never surfaces.
func (c *Cache) Upsert(ctx context.Context, record *models.CompatibilityRecord) error {
	if err := c.primary.Upsert(ctx, record); err != nil {
		return err
	}
	c.populate(ctx, record)
	return nil
}

func (c *Cache) FindByPair(ctx context.Context, talentID, opportunityID id.AccountID) (*models.CompatibilityRecord, error) {
	if c.breaker.IsOpen() {
		return c.primary.FindByPair(ctx, talentID, opportunityID)
	}

	key := cacheKey(talentID, opportunityID)
	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.recordSuccess(ctx)
		c.metrics.IncrementCacheMiss()
	case err != nil:
		c.recordFailure(ctx, err)
	default:
		c.recordSuccess(ctx)
		var record models.CompatibilityRecord
		if jsonErr := json.Unmarshal(payload, &record); jsonErr == nil {
			c.metrics.IncrementCacheHit()
			return &record, nil
		}
		// A cell we cannot decode is treated as a miss and dropped.
		c.client.Del(ctx, key)
		c.metrics.IncrementCacheMiss()
	}

	record, err := c.primary.FindByPair(ctx, talentID, opportunityID)
	if err != nil {
		return nil, err
	}
	c.populate(ctx, record)
	return record, nil
}

func (c *Cache) populate(ctx context.Context, record *models.CompatibilityRecord) {
	if c.breaker.IsOpen() {
		return
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return
	}
	key := cacheKey(record.TalentID, record.OpportunityID)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.recordFailure(ctx, err)
		return
	}
	c.recordSuccess(ctx)
}

func (c *Cache) recordFailure(ctx context.Context, err error) {
	_, change := c.breaker.RecordFailure()
	if change.Opened && c.logger != nil {
		c.logger.WarnContext(ctx, "compatibility cache circuit opened, serving from primary store",
			"breaker", c.breaker.Name(),
			"error", err,
		)
	}
}

func (c *Cache) recordSuccess(ctx context.Context) {
	_, change := c.breaker.RecordSuccess()
	if change.Closed && c.logger != nil {
		c.logger.InfoContext(ctx, "compatibility cache circuit closed, cache back in the path",
			"breaker", c.breaker.Name(),
		)
	}
}

func cacheKey(talentID, opportunityID id.AccountID) string {
	return cacheKeyPrefix + talentID.String() + ":" + opportunityID.String()
}
