package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"talentry/internal/ratelimit"
)

const (
	testLimit  = 10
	testWindow = time.Minute
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) TestAllow() {
	s.Run("first request allowed", func() {
		result, err := s.store.Allow(s.ctx, "rl:write:first", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
	})

	s.Run("requests up to limit allowed", func() {
		var result *ratelimit.Result
		var err error
		for range testLimit {
			result, err = s.store.Allow(s.ctx, "rl:write:budget", testLimit, testWindow)
		}
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(0, result.Remaining)
	})

	s.Run("request over limit denied", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "rl:write:over", testLimit, testWindow)
			require.NoError(s.T(), err)
		}
		result, err := s.store.Allow(s.ctx, "rl:write:over", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(0, result.Remaining)
		s.GreaterOrEqual(result.RetryAfter, 1)
		s.True(result.ResetAt.After(time.Now()))
	})

	s.Run("denied request does not extend the window", func() {
		key := "rl:write:noextend"
		for range testLimit {
			_, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
			require.NoError(s.T(), err)
		}
		for range 5 {
			_, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
			require.NoError(s.T(), err)
		}

		s.store.mu.Lock()
		hits := len(s.store.windows[key])
		s.store.mu.Unlock()
		s.Equal(testLimit, hits)
	})

	s.Run("after window expires requests allowed", func() {
		key := "rl:write:reset"
		for range testLimit {
			_, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
			require.NoError(s.T(), err)
		}

		s.store.mu.Lock()
		s.store.windows[key] = nil
		s.store.mu.Unlock()

		result, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit-1, result.Remaining)
	})

	s.Run("keys budget independently", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "rl:write:10.0.0.1", testLimit, testWindow)
			require.NoError(s.T(), err)
		}

		result, err := s.store.Allow(s.ctx, "rl:write:10.0.0.2", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit-1, result.Remaining)
	})
}

func (s *MemoryStoreSuite) TestConcurrent() {
	limit := 100 // Different from testLimit for concurrency testing
	key := "rl:write:concurrent"
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for range 200 {
		wg.Go(func() {
			result, err := s.store.Allow(s.ctx, key, limit, testWindow)
			s.Require().NoError(err)
			if result.Allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		})
	}

	wg.Wait()
	s.Equal(limit, allowedCount)
}
