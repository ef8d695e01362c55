//go:build integration

package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"talentry/internal/opportunity/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
	"talentry/pkg/testutil/containers"
)

type OpportunityPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *Postgres
	ctx      context.Context
}

func TestOpportunityPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OpportunityPostgresSuite))
}

func (s *OpportunityPostgresSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *OpportunityPostgresSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "opportunities"))
}

func (s *OpportunityPostgresSuite) newListing() *models.Opportunity {
	now := time.Now().UTC().Truncate(time.Microsecond)
	listing, err := models.NewOpportunity(id.NewAccountID(), models.OpportunityDraft{
		Title:        "Backend Engineer",
		Description:  "Own the pipeline.",
		Location:     "Remote",
		Competencies: []string{"go", "kafka"},
		ExpiresAt:    now.Add(30 * 24 * time.Hour),
	}, now)
	s.Require().NoError(err)
	return listing
}

func (s *OpportunityPostgresSuite) TestCreateAndFind() {
	listing := s.newListing()
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, listing))

	found, err := s.store.FindByAccount(s.ctx, listing.AccountID)
	s.Require().NoError(err)
	s.Equal(listing.Title, found.Title)
	s.Equal(listing.Competencies, found.Competencies)
	s.Equal(models.StatusActive, found.Status)
	s.WithinDuration(listing.ExpiresAt, found.ExpiresAt, time.Millisecond)
}

func (s *OpportunityPostgresSuite) TestFindMissingReturnsNotFound() {
	_, err := s.store.FindByAccount(s.ctx, id.NewAccountID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *OpportunityPostgresSuite) TestDuplicateCreateReturnsConflict() {
	listing := s.newListing()
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, listing))

	err := s.store.CreateIfAbsent(s.ctx, listing)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *OpportunityPostgresSuite) TestUpdatePersistsChanges() {
	listing := s.newListing()
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, listing))

	listing.Status = models.StatusFilled
	listing.Competencies = []string{"rust"}
	listing.UpdatedAt = listing.UpdatedAt.Add(time.Hour)
	s.Require().NoError(s.store.Update(s.ctx, listing))

	found, err := s.store.FindByAccount(s.ctx, listing.AccountID)
	s.Require().NoError(err)
	s.Equal(models.StatusFilled, found.Status)
	s.Equal([]string{"rust"}, found.Competencies)
	// PublishedAt never moves.
	s.WithinDuration(listing.PublishedAt, found.PublishedAt, time.Millisecond)
}

func (s *OpportunityPostgresSuite) TestUpdateMissingReturnsNotFound() {
	err := s.store.Update(s.ctx, s.newListing())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *OpportunityPostgresSuite) TestDeleteIsPhysical() {
	listing := s.newListing()
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, listing))
	s.Require().NoError(s.store.Delete(s.ctx, listing.AccountID))

	_, err := s.store.FindByAccount(s.ctx, listing.AccountID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(s.ctx, listing.AccountID), sentinel.ErrNotFound)
}

// TestConcurrentPublish verifies exactly one of many racing publishes for the
// same account wins.
func (s *OpportunityPostgresSuite) TestConcurrentPublish() {
	const goroutines = 50
	accountID := id.NewAccountID()
	now := time.Now().UTC()

	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listing, err := models.NewOpportunity(accountID, models.OpportunityDraft{
				Title:        "Racer",
				Description:  "First one wins.",
				Location:     "Remote",
				Competencies: []string{"go"},
				ExpiresAt:    now.Add(time.Hour),
			}, now)
			if err != nil {
				return
			}
			switch err := s.store.CreateIfAbsent(s.ctx, listing); {
			case err == nil:
				created.Add(1)
			default:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), created.Load(), "exactly one publish should win")
	s.Equal(int32(goroutines-1), conflicts.Load())
}
