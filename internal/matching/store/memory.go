// Package store persists the compatibility matrix. Memory backs tests and
// dev; Postgres is the production store. Both speak sentinel errors only.
package store

import (
	"context"
	"sync"

	"talentry/internal/matching/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
)

// pairKey identifies one matrix cell.
type pairKey struct {
	talent      id.AccountID
	opportunity id.AccountID
}

// Memory is the in-memory matrix store. Values are copied on the way in and
// out so callers can never alias the stored record.
type Memory struct {
	mu      sync.RWMutex
	records map[pairKey]models.CompatibilityRecord
}

func NewMemory() *Memory {
	return &Memory{records: make(map[pairKey]models.CompatibilityRecord)}
}

// Upsert writes the record for its pair, replacing any previous evaluation.
func (s *Memory) Upsert(_ context.Context, record *models.CompatibilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{talent: record.TalentID, opportunity: record.OpportunityID}
	s.records[key] = cloneRecord(record)
	return nil
}

func (s *Memory) FindByPair(_ context.Context, talentID, opportunityID id.AccountID) (*models.CompatibilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, exists := s.records[pairKey{talent: talentID, opportunity: opportunityID}]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	copied := cloneRecord(&stored)
	return &copied, nil
}

// cloneRecord keeps Criteria non-nil so an empty list stays an empty list.
func cloneRecord(r *models.CompatibilityRecord) models.CompatibilityRecord {
	copied := *r
	copied.Criteria = append([]string{}, r.Criteria...)
	return copied
}
