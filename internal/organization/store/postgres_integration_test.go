//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"talentry/internal/organization/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
	"talentry/pkg/testutil/containers"
)

type OrganizationPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *Postgres
	ctx      context.Context
}

func TestOrganizationPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrganizationPostgresSuite))
}

func (s *OrganizationPostgresSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *OrganizationPostgresSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "organizations"))
}

func (s *OrganizationPostgresSuite) newOrganization() *models.Organization {
	now := time.Now().UTC().Truncate(time.Microsecond)
	org, err := models.NewOrganization(id.NewAccountID(), models.OrganizationDraft{
		Name:          "Acme Robotics",
		Industry:      "Manufacturing",
		Jurisdiction:  "DE",
		EstablishedAt: time.Date(2010, 3, 15, 0, 0, 0, 0, time.UTC),
		ContactEmail:  "ops@acme.example",
	}, now)
	s.Require().NoError(err)
	return org
}

func (s *OrganizationPostgresSuite) TestCreateAndFind() {
	org := s.newOrganization()
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, org))

	found, err := s.store.FindByAccount(s.ctx, org.AccountID)
	s.Require().NoError(err)
	s.Equal(org.Name, found.Name)
	s.Equal("Standard", found.Tier)
	s.Equal(models.VerificationUnverified, found.Verification)
	s.WithinDuration(org.EstablishedAt, found.EstablishedAt, time.Millisecond)
}

func (s *OrganizationPostgresSuite) TestDuplicateCreateReturnsConflict() {
	org := s.newOrganization()
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, org))

	err := s.store.CreateIfAbsent(s.ctx, org)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *OrganizationPostgresSuite) TestVerificationRoundTrips() {
	org := s.newOrganization()
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, org))

	s.Require().NoError(org.MarkVerified(time.Now().UTC()))
	s.Require().NoError(s.store.Update(s.ctx, org))

	found, err := s.store.FindByAccount(s.ctx, org.AccountID)
	s.Require().NoError(err)
	s.Equal(models.VerificationVerified, found.Verification)
}

func (s *OrganizationPostgresSuite) TestUpdateMissingReturnsNotFound() {
	err := s.store.Update(s.ctx, s.newOrganization())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *OrganizationPostgresSuite) TestDeleteIsPhysical() {
	org := s.newOrganization()
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, org))
	s.Require().NoError(s.store.Delete(s.ctx, org.AccountID))

	_, err := s.store.FindByAccount(s.ctx, org.AccountID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(s.ctx, org.AccountID), sentinel.ErrNotFound)
}
