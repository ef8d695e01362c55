// Package registry exercises the API surface end to end: the full router,
// middleware chain, services, and stores wired the way main wires them,
// running on memory backends.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"talentry/internal/audit"
	auditmemory "talentry/internal/audit/store/memory"
	"talentry/internal/device"
	directoryhandler "talentry/internal/directory/handler"
	directoryservice "talentry/internal/directory/service"
	httpapi "talentry/internal/http"
	matchinghandler "talentry/internal/matching/handler"
	matchingservice "talentry/internal/matching/service"
	matchingstore "talentry/internal/matching/store"
	opportunityhandler "talentry/internal/opportunity/handler"
	opportunityservice "talentry/internal/opportunity/service"
	opportunitystore "talentry/internal/opportunity/store"
	organizationhandler "talentry/internal/organization/handler"
	organizationservice "talentry/internal/organization/service"
	organizationstore "talentry/internal/organization/store"
	"talentry/internal/platform/config"
	"talentry/internal/ratelimit"
	ratelimitstore "talentry/internal/ratelimit/store"
	talenthandler "talentry/internal/talent/handler"
	talentservice "talentry/internal/talent/service"
	talentstore "talentry/internal/talent/store"
	"talentry/internal/token"
	id "talentry/pkg/domain"
	"talentry/pkg/secrets"
	"talentry/pkg/testutil"
	"talentry/pkg/timesource"
)

const adminToken = "flow-admin-token"

type api struct {
	router chi.Router
	tokens *token.Service
	trail  *audit.Publisher
}

func newAPI(t *testing.T) *api {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := timesource.System{}

	talents := talentstore.NewMemory()
	listings := opportunitystore.NewMemory()
	orgs := organizationstore.NewMemory()
	matches := matchingstore.NewMemory()

	// Synchronous audit delivery so scenarios can assert the trail without
	// waiting on a background worker.
	trail := audit.NewPublisher(auditmemory.NewInMemoryStore(), audit.WithLogger(logger))

	talentSvc := talentservice.New(talents, clock,
		talentservice.WithLogger(logger),
		talentservice.WithAuditPublisher(trail),
	)
	opportunitySvc := opportunityservice.New(listings, clock,
		opportunityservice.WithLogger(logger),
		opportunityservice.WithAuditPublisher(trail),
	)
	organizationSvc := organizationservice.New(orgs, clock,
		organizationservice.WithLogger(logger),
		organizationservice.WithAuditPublisher(trail),
	)
	matchingSvc := matchingservice.New(matches, talents, listings, clock,
		matchingservice.WithLogger(logger),
		matchingservice.WithAuditPublisher(trail),
	)
	directorySvc := directoryservice.New(talents, listings, orgs, matches)

	tokens := token.NewService("flow-test-key", "talentry", "talentry-api")
	adminHash, err := secrets.Hash(adminToken)
	if err != nil {
		t.Fatalf("failed to hash admin token: %v", err)
	}

	router := httpapi.New(httpapi.Deps{
		Logger:         logger,
		Tokens:         tokens,
		Devices:        device.NewService(true),
		AdminTokenHash: adminHash,
		Limiter: ratelimit.NewMiddleware(ratelimitstore.NewMemory(),
			config.RateLimit{ReadLimit: 1000, WriteLimit: 1000, Window: time.Minute}, logger),

		Talent:       talenthandler.New(talentSvc, logger),
		Opportunity:  opportunityhandler.New(opportunitySvc, logger),
		Organization: organizationhandler.New(organizationSvc, logger),
		Matching:     matchinghandler.New(matchingSvc, logger),
		Directory:    directoryhandler.New(directorySvc, logger),
	})

	return &api{router: router, tokens: tokens, trail: trail}
}

func (a *api) bearerFor(t *testing.T, accountID id.AccountID) string {
	t.Helper()
	tok, err := a.tokens.GenerateAccessToken(accountID, "", time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return "Bearer " + tok
}

func (a *api) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *api) establishTalent(t *testing.T, account id.AccountID, skills []string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/talent", a.bearerFor(t, account), map[string]any{
		"display_name":     "Grace Hopper",
		"skills":           skills,
		"location":         "Arlington",
		"narrative":        "Compiler pioneer looking for systems work.",
		"experience_level": "senior",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 establishing talent, got %d: %s", rec.Code, rec.Body.String())
	}
}

func (a *api) publishOpportunity(t *testing.T, account id.AccountID, competencies []string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/opportunities", a.bearerFor(t, account), map[string]any{
		"title":        "Backend engineer",
		"description":  "Build the next generation of our registry.",
		"location":     "Remote",
		"competencies": competencies,
		"expires_at":   time.Now().Add(1000 * time.Second).UTC(),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 publishing opportunity, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCompatibilityEvaluationFlow(t *testing.T) {
	a := newAPI(t)
	talentAcc := id.NewAccountID()
	orgAcc := id.NewAccountID()
	evaluator := id.NewAccountID()

	testutil.Scenario(t, "a shared skill yields the baseline score", func(t *testing.T) {
		testutil.Given(t, "a talent profile listing rust and go", func(t *testing.T) {
			a.establishTalent(t, talentAcc, []string{"rust", "go"})
		})

		testutil.Given(t, "an opportunity seeking rust", func(t *testing.T) {
			a.publishOpportunity(t, orgAcc, []string{"rust"})
		})

		var evaluated matchinghandler.CompatibilityResponse
		testutil.When(t, "any participant evaluates the pair against skill-match", func(t *testing.T) {
			rec := a.do(t, http.MethodPost, "/matches/evaluate", a.bearerFor(t, evaluator), map[string]any{
				"talent_id":      talentAcc.String(),
				"opportunity_id": orgAcc.String(),
				"criteria":       []string{"skill-match"},
			})
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if err := json.NewDecoder(rec.Body).Decode(&evaluated); err != nil {
				t.Fatalf("failed to decode evaluation: %v", err)
			}
		})

		testutil.Then(t, "the record scores 75 with confidence 75", func(t *testing.T) {
			if evaluated.Score != 75 || evaluated.Confidence != 75 {
				t.Fatalf("expected 75/75, got score %d confidence %d", evaluated.Score, evaluated.Confidence)
			}

			rec := a.do(t, http.MethodGet, "/matches/"+talentAcc.String()+"/"+orgAcc.String(), a.bearerFor(t, evaluator), nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected the directory to serve the record, got %d", rec.Code)
			}
			var stored matchinghandler.CompatibilityResponse
			if err := json.NewDecoder(rec.Body).Decode(&stored); err != nil {
				t.Fatalf("failed to decode stored record: %v", err)
			}
			if stored.Score != 75 || stored.Confidence != 75 {
				t.Fatalf("expected the stored record at 75/75, got %d/%d", stored.Score, stored.Confidence)
			}
			if len(stored.Criteria) != 1 || stored.Criteria[0] != "skill-match" {
				t.Fatalf("expected criteria [skill-match], got %v", stored.Criteria)
			}
		})

		testutil.Then(t, "the audit trail attributes the evaluation to the caller", func(t *testing.T) {
			events, err := a.trail.List(context.Background(), evaluator)
			if err != nil {
				t.Fatalf("failed to list audit events: %v", err)
			}
			found := false
			for _, event := range events {
				if event.Action == string(audit.EventCompatibilityEvaluated) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a %s event for the evaluator, got %d other events",
					audit.EventCompatibilityEvaluated, len(events))
			}
		})
	})
}

func TestDeactivationFreesTheIdentity(t *testing.T) {
	a := newAPI(t)
	account := id.NewAccountID()

	testutil.Scenario(t, "a deactivated profile can be established again", func(t *testing.T) {
		testutil.Given(t, "an established talent profile", func(t *testing.T) {
			a.establishTalent(t, account, []string{"go"})
		})

		testutil.When(t, "the owner deactivates it", func(t *testing.T) {
			rec := a.do(t, http.MethodDelete, "/talent", a.bearerFor(t, account), nil)
			if rec.Code != http.StatusNoContent {
				t.Fatalf("expected status 204, got %d", rec.Code)
			}
		})

		testutil.Then(t, "the directory no longer serves it", func(t *testing.T) {
			rec := a.do(t, http.MethodGet, "/talent/"+account.String(), a.bearerFor(t, account), nil)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected status 404, got %d", rec.Code)
			}
		})

		testutil.Then(t, "the identity can establish a fresh profile", func(t *testing.T) {
			a.establishTalent(t, account, []string{"go", "sql"})
		})
	})
}

func TestOrganizationVerificationFlow(t *testing.T) {
	a := newAPI(t)
	account := id.NewAccountID()

	verify := func(t *testing.T) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/admin/organizations/"+account.String()+"/verification", nil)
		req.Header.Set("X-Admin-Token", adminToken)
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, req)
		return rec
	}

	testutil.Scenario(t, "verification is a one-way operator action", func(t *testing.T) {
		testutil.Given(t, "an established organization", func(t *testing.T) {
			rec := a.do(t, http.MethodPost, "/organizations", a.bearerFor(t, account), map[string]any{
				"name":           "Initech",
				"industry":       "Software",
				"jurisdiction":   "Delaware",
				"established_at": time.Date(2010, 4, 1, 0, 0, 0, 0, time.UTC),
				"contact_email":  "ops@initech.example",
			})
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
			}
		})

		testutil.When(t, "an operator verifies it", func(t *testing.T) {
			if rec := verify(t); rec.Code != http.StatusAccepted {
				t.Fatalf("expected status 202, got %d: %s", rec.Code, rec.Body.String())
			}
		})

		testutil.Then(t, "the directory shows the verified status", func(t *testing.T) {
			rec := a.do(t, http.MethodGet, "/organizations/"+account.String(), a.bearerFor(t, account), nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			var org organizationhandler.OrganizationResponse
			if err := json.NewDecoder(rec.Body).Decode(&org); err != nil {
				t.Fatalf("failed to decode organization: %v", err)
			}
			if org.Verification != "Verified" {
				t.Fatalf("expected verification Verified, got %q", org.Verification)
			}
		})

		testutil.Then(t, "verifying again is rejected", func(t *testing.T) {
			rec := verify(t)
			if rec.Code != http.StatusConflict {
				t.Fatalf("expected status 409, got %d", rec.Code)
			}
			var envelope struct {
				Error string `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
				t.Fatalf("failed to decode error envelope: %v", err)
			}
			if envelope.Error != "invalid_state" {
				t.Fatalf("expected error code invalid_state, got %q", envelope.Error)
			}
		})
	})
}

func TestUnknownPairEvaluatesToBaseline(t *testing.T) {
	a := newAPI(t)
	caller := id.NewAccountID()

	rec := a.do(t, http.MethodPost, "/matches/evaluate", a.bearerFor(t, caller), map[string]any{
		"talent_id":      id.NewAccountID().String(),
		"opportunity_id": id.NewAccountID().String(),
		"criteria":       []string{},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for an unregistered pair, got %d: %s", rec.Code, rec.Body.String())
	}

	var evaluated matchinghandler.CompatibilityResponse
	if err := json.NewDecoder(rec.Body).Decode(&evaluated); err != nil {
		t.Fatalf("failed to decode evaluation: %v", err)
	}
	if evaluated.Score != 75 || evaluated.Confidence != 75 {
		t.Fatalf("expected the baseline 75/75, got %d/%d", evaluated.Score, evaluated.Confidence)
	}
}
