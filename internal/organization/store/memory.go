// Package store persists organizations. Memory backs tests and dev; Postgres
// is the production store. Both speak sentinel errors only.
package store

import (
	"context"
	"sync"

	"talentry/internal/organization/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
)

// Memory is the in-memory organization store. Values are copied on the way in
// and out so callers can never alias the stored record.
type Memory struct {
	mu   sync.RWMutex
	orgs map[id.AccountID]models.Organization
}

func NewMemory() *Memory {
	return &Memory{orgs: make(map[id.AccountID]models.Organization)}
}

func (s *Memory) CreateIfAbsent(_ context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orgs[org.AccountID]; exists {
		return sentinel.ErrConflict
	}
	s.orgs[org.AccountID] = *org
	return nil
}

func (s *Memory) FindByAccount(_ context.Context, accountID id.AccountID) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, exists := s.orgs[accountID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	copied := stored
	return &copied, nil
}

func (s *Memory) Update(_ context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orgs[org.AccountID]; !exists {
		return sentinel.ErrNotFound
	}
	s.orgs[org.AccountID] = *org
	return nil
}

func (s *Memory) Delete(_ context.Context, accountID id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orgs[accountID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.orgs, accountID)
	return nil
}
