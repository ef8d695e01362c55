//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"talentry/internal/audit"
	id "talentry/pkg/domain"
	"talentry/pkg/testutil/containers"
)

type AuditPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *Store
	ctx      context.Context
}

func TestAuditPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AuditPostgresSuite))
}

func (s *AuditPostgresSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = New(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *AuditPostgresSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "audit_events"))
}

func (s *AuditPostgresSuite) newEvent(accountID id.AccountID, action string, at time.Time) audit.Event {
	return audit.Event{
		Category:    audit.AuditEvent(action).Category(),
		Timestamp:   at,
		AccountID:   accountID,
		Subject:     accountID.String(),
		Action:      action,
		Reason:      "requested by owner",
		RequestID:   "req-" + action,
		ClientIP:    "203.0.113.7",
		DeviceLabel: "Firefox on Linux",
	}
}

func (s *AuditPostgresSuite) TestAppendAndList() {
	accountID := id.NewAccountID()
	at := time.Now().UTC().Truncate(time.Microsecond)
	event := s.newEvent(accountID, string(audit.EventTalentEstablished), at)

	s.Require().NoError(s.store.Append(s.ctx, event))

	events, err := s.store.ListByAccount(s.ctx, accountID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)

	got := events[0]
	s.Equal(audit.CategoryCompliance, got.Category)
	s.Equal(accountID, got.AccountID)
	s.Equal(event.Subject, got.Subject)
	s.Equal(event.Action, got.Action)
	s.Equal(event.Reason, got.Reason)
	s.Equal(event.RequestID, got.RequestID)
	s.Equal(event.ClientIP, got.ClientIP)
	s.Equal(event.DeviceLabel, got.DeviceLabel)
	s.WithinDuration(at, got.Timestamp, time.Millisecond)
}

func (s *AuditPostgresSuite) TestListOrdersByOccurrence() {
	accountID := id.NewAccountID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	// Append out of order; the trail reads back chronologically.
	s.Require().NoError(s.store.Append(s.ctx, s.newEvent(accountID, "second", base.Add(time.Minute))))
	s.Require().NoError(s.store.Append(s.ctx, s.newEvent(accountID, "third", base.Add(2*time.Minute))))
	s.Require().NoError(s.store.Append(s.ctx, s.newEvent(accountID, "first", base)))

	events, err := s.store.ListByAccount(s.ctx, accountID)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal("first", events[0].Action)
	s.Equal("second", events[1].Action)
	s.Equal("third", events[2].Action)
}

func (s *AuditPostgresSuite) TestListScopesToAccount() {
	alice := id.NewAccountID()
	bob := id.NewAccountID()
	now := time.Now().UTC()

	s.Require().NoError(s.store.Append(s.ctx, s.newEvent(alice, string(audit.EventTalentEstablished), now)))
	s.Require().NoError(s.store.Append(s.ctx, s.newEvent(bob, string(audit.EventOpportunityPublished), now)))

	events, err := s.store.ListByAccount(s.ctx, alice)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventTalentEstablished), events[0].Action)
}

func (s *AuditPostgresSuite) TestAnonymousEventHasNoAccount() {
	anonymous := audit.Event{
		Category:  audit.CategorySecurity,
		Timestamp: time.Now().UTC(),
		Subject:   "203.0.113.x",
		Action:    string(audit.EventRateLimitExceeded),
		ClientIP:  "203.0.113.99",
	}
	s.Require().NoError(s.store.Append(s.ctx, anonymous))

	// Anonymous rows never surface in an account's trail.
	events, err := s.store.ListByAccount(s.ctx, id.NewAccountID())
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *AuditPostgresSuite) TestListEmptyTrail() {
	events, err := s.store.ListByAccount(s.ctx, id.NewAccountID())
	s.Require().NoError(err)
	s.Empty(events)
}
