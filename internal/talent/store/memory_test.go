package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"talentry/internal/talent/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
)

type TalentStoreSuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
}

func (s *TalentStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestTalentStoreSuite(t *testing.T) {
	suite.Run(t, new(TalentStoreSuite))
}

func (s *TalentStoreSuite) newProfile() *models.TalentProfile {
	profile, err := models.NewTalentProfile(id.NewAccountID(), models.TalentDraft{
		DisplayName:     "Ada",
		Skills:          []string{"go", "postgres"},
		Location:        "Remote",
		Narrative:       "Engineer.",
		ExperienceLevel: "Senior",
	}, time.Now())
	s.Require().NoError(err)
	return profile
}

// TestCreationAndLookups verifies conditional create and retrieval.
func (s *TalentStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds profile by account", func() {
		profile := s.newProfile()
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, profile))

		found, err := s.store.FindByAccount(s.ctx, profile.AccountID)
		s.Require().NoError(err)
		s.Equal(profile.DisplayName, found.DisplayName)
		s.Equal(profile.Skills, found.Skills)
	})

	s.Run("returns ErrNotFound for unknown account", func() {
		_, err := s.store.FindByAccount(s.ctx, id.NewAccountID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects second profile for the same account", func() {
		profile := s.newProfile()
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, profile))

		err := s.store.CreateIfAbsent(s.ctx, profile)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("returned profile is a copy", func() {
		profile := s.newProfile()
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, profile))

		found, err := s.store.FindByAccount(s.ctx, profile.AccountID)
		s.Require().NoError(err)
		found.Skills[0] = "mutated"
		found.DisplayName = "mutated"

		again, err := s.store.FindByAccount(s.ctx, profile.AccountID)
		s.Require().NoError(err)
		s.Equal("go", again.Skills[0])
		s.Equal("Ada", again.DisplayName)
	})
}

// TestUpdates verifies persistence of profile changes.
func (s *TalentStoreSuite) TestUpdates() {
	s.Run("persists field changes", func() {
		profile := s.newProfile()
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, profile))

		profile.Availability = models.AvailabilityEngaged
		profile.Skills = []string{"kafka"}
		s.Require().NoError(s.store.Update(s.ctx, profile))

		found, err := s.store.FindByAccount(s.ctx, profile.AccountID)
		s.Require().NoError(err)
		s.Equal(models.AvailabilityEngaged, found.Availability)
		s.Equal([]string{"kafka"}, found.Skills)
	})

	s.Run("returns ErrNotFound for non-existent profile", func() {
		err := s.store.Update(s.ctx, s.newProfile())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestDelete verifies physical removal.
func (s *TalentStoreSuite) TestDelete() {
	s.Run("removes the profile", func() {
		profile := s.newProfile()
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, profile))

		s.Require().NoError(s.store.Delete(s.ctx, profile.AccountID))

		_, err := s.store.FindByAccount(s.ctx, profile.AccountID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound when nothing to delete", func() {
		err := s.store.Delete(s.ctx, id.NewAccountID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("account can re-establish after delete", func() {
		profile := s.newProfile()
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, profile))
		s.Require().NoError(s.store.Delete(s.ctx, profile.AccountID))

		s.NoError(s.store.CreateIfAbsent(s.ctx, profile))
	})
}
