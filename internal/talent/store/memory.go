// Package store persists talent profiles. Memory backs tests and dev;
// Postgres is the production store. Both speak sentinel errors only.
package store

import (
	"context"
	"sync"

	"talentry/internal/talent/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
)

// Memory is the in-memory profile store. Values are copied on the way in and
// out so callers can never alias the stored record.
type Memory struct {
	mu       sync.RWMutex
	profiles map[id.AccountID]models.TalentProfile
}

func NewMemory() *Memory {
	return &Memory{profiles: make(map[id.AccountID]models.TalentProfile)}
}

func (s *Memory) CreateIfAbsent(_ context.Context, profile *models.TalentProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[profile.AccountID]; exists {
		return sentinel.ErrConflict
	}
	s.profiles[profile.AccountID] = cloneProfile(profile)
	return nil
}

func (s *Memory) FindByAccount(_ context.Context, accountID id.AccountID) (*models.TalentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, exists := s.profiles[accountID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	copied := cloneProfile(&stored)
	return &copied, nil
}

func (s *Memory) Update(_ context.Context, profile *models.TalentProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[profile.AccountID]; !exists {
		return sentinel.ErrNotFound
	}
	s.profiles[profile.AccountID] = cloneProfile(profile)
	return nil
}

func (s *Memory) Delete(_ context.Context, accountID id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[accountID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.profiles, accountID)
	return nil
}

func cloneProfile(p *models.TalentProfile) models.TalentProfile {
	copied := *p
	copied.Skills = append([]string(nil), p.Skills...)
	return copied
}
