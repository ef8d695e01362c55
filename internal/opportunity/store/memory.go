// Package store persists opportunities. Memory backs tests and dev; Postgres
// is the production store. Both speak sentinel errors only.
package store

import (
	"context"
	"sync"

	"talentry/internal/opportunity/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
)

// Memory is the in-memory opportunity store. Values are copied on the way in
// and out so callers can never alias the stored record.
type Memory struct {
	mu       sync.RWMutex
	listings map[id.AccountID]models.Opportunity
}

func NewMemory() *Memory {
	return &Memory{listings: make(map[id.AccountID]models.Opportunity)}
}

func (s *Memory) CreateIfAbsent(_ context.Context, listing *models.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.listings[listing.AccountID]; exists {
		return sentinel.ErrConflict
	}
	s.listings[listing.AccountID] = cloneListing(listing)
	return nil
}

func (s *Memory) FindByAccount(_ context.Context, accountID id.AccountID) (*models.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, exists := s.listings[accountID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	copied := cloneListing(&stored)
	return &copied, nil
}

func (s *Memory) Update(_ context.Context, listing *models.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.listings[listing.AccountID]; !exists {
		return sentinel.ErrNotFound
	}
	s.listings[listing.AccountID] = cloneListing(listing)
	return nil
}

func (s *Memory) Delete(_ context.Context, accountID id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.listings[accountID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.listings, accountID)
	return nil
}

func cloneListing(o *models.Opportunity) models.Opportunity {
	copied := *o
	copied.Competencies = append([]string(nil), o.Competencies...)
	return copied
}
