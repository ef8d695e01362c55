package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"talentry/internal/device"
	directoryhandler "talentry/internal/directory/handler"
	directoryservice "talentry/internal/directory/service"
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
	"talentry/pkg/timesource"
)

const adminToken = "router-admin-token"

type routerEnv struct {
	router chi.Router
	tokens *token.Service
}

// buildEnv wires the whole stack on memory stores, the way main does against
// real backends.
func buildEnv(t *testing.T, rlCfg config.RateLimit, checks ...Check) *routerEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := timesource.System{}

	talents := talentstore.NewMemory()
	listings := opportunitystore.NewMemory()
	orgs := organizationstore.NewMemory()
	matches := matchingstore.NewMemory()

	tokens := token.NewService("router-test-key", "talentry", "talentry-api")
	adminHash, err := secrets.Hash(adminToken)
	if err != nil {
		t.Fatalf("failed to hash admin token: %v", err)
	}

	router := New(Deps{
		Logger:         logger,
		Tokens:         tokens,
		Devices:        device.NewService(true),
		AdminTokenHash: adminHash,
		Limiter:        ratelimit.NewMiddleware(ratelimitstore.NewMemory(), rlCfg, logger),

		Talent:       talenthandler.New(talentservice.New(talents, clock), logger),
		Opportunity:  opportunityhandler.New(opportunityservice.New(listings, clock), logger),
		Organization: organizationhandler.New(organizationservice.New(orgs, clock), logger),
		Matching:     matchinghandler.New(matchingservice.New(matches, talents, listings, clock), logger),
		Directory:    directoryhandler.New(directoryservice.New(talents, listings, orgs, matches), logger),

		Readiness: checks,
	})

	return &routerEnv{router: router, tokens: tokens}
}

func newRouterEnv(t *testing.T) *routerEnv {
	return buildEnv(t, config.RateLimit{ReadLimit: 100, WriteLimit: 100, Window: time.Minute})
}

func (e *routerEnv) bearerFor(t *testing.T, accountID id.AccountID) string {
	t.Helper()
	tok, err := e.tokens.GenerateAccessToken(accountID, "", time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return "Bearer " + tok
}

func (e *routerEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
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
	e.router.ServeHTTP(rec, req)
	return rec
}

func establishTalentBody() map[string]any {
	return map[string]any{
		"display_name":     "Ada Lovelace",
		"skills":           []string{"go", "rust"},
		"location":         "London",
		"narrative":        "Systems engineer with a focus on compilers.",
		"experience_level": "senior",
	}
}

func TestOperationalEndpoints(t *testing.T) {
	env := newRouterEnv(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := env.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected status 200, got %d", path, rec.Code)
		}
	}
}

func TestReadyzReportsFailingDependency(t *testing.T) {
	env := buildEnv(t,
		config.RateLimit{ReadLimit: 100, WriteLimit: 100, Window: time.Minute},
		Check{Name: "postgres", Probe: func(context.Context) error { return errors.New("connection refused") }},
	)

	rec := env.do(t, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode readyz body: %v", err)
	}
	if body["dependency"] != "postgres" {
		t.Fatalf("expected the failing dependency to be named, got %q", body["dependency"])
	}
}

func TestAPIRequiresBearerToken(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.do(t, http.MethodPost, "/talent", "", establishTalentBody())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("POST /talent without token: expected status 401, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/talent/"+id.NewAccountID().String(), "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("GET /talent without token: expected status 401, got %d", rec.Code)
	}
}

func TestEstablishAndLookupThroughFullChain(t *testing.T) {
	env := newRouterEnv(t)
	owner := id.NewAccountID()
	reader := id.NewAccountID()

	rec := env.do(t, http.MethodPost, "/talent", env.bearerFor(t, owner), establishTalentBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/talent/"+owner.String(), env.bearerFor(t, reader), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var profile talenthandler.TalentProfileResponse
	if err := json.NewDecoder(rec.Body).Decode(&profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.DisplayName != "Ada Lovelace" {
		t.Fatalf("expected the established profile back, got display_name %q", profile.DisplayName)
	}
	if profile.AccountID != owner.String() {
		t.Fatalf("expected account_id %s, got %s", owner, profile.AccountID)
	}
}

func TestWriteRejectsNonJSONBody(t *testing.T) {
	env := newRouterEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/talent", bytes.NewReader([]byte("display_name=Ada")))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Authorization", env.bearerFor(t, id.NewAccountID()))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected status 415, got %d", rec.Code)
	}
}

func TestAdminVerificationGuard(t *testing.T) {
	env := newRouterEnv(t)
	target := id.NewAccountID()
	path := "/admin/organizations/" + target.String() + "/verification"

	rec := env.do(t, http.MethodPost, path, "", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 without admin token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("X-Admin-Token", adminToken)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	// The guard passed; the target organization simply does not exist.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for a missing organization, got %d", rec.Code)
	}
}

func TestWriteBudgetExhaustionReturns429(t *testing.T) {
	env := buildEnv(t, config.RateLimit{ReadLimit: 100, WriteLimit: 2, Window: time.Minute})
	bearer := env.bearerFor(t, id.NewAccountID())

	rec := env.do(t, http.MethodPost, "/talent", bearer, establishTalentBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "2" {
		t.Fatalf("expected X-RateLimit-Limit 2, got %q", got)
	}

	// Second write consumes the budget even though it conflicts.
	rec = env.do(t, http.MethodPost, "/talent", bearer, establishTalentBody())
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/talent", bearer, establishTalentBody())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if envelope.Error != "rate_limited" {
		t.Fatalf("expected error code rate_limited, got %q", envelope.Error)
	}
}
