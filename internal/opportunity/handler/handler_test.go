package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"talentry/internal/opportunity/service"
	"talentry/internal/opportunity/store"
	id "talentry/pkg/domain"
	"talentry/pkg/testutil"
	"talentry/pkg/timesource"
)

var handlerNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestPublishRequiresAuthentication(t *testing.T) {
	router := newOpportunityRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/opportunities", bytes.NewReader(validPayload(t)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without authentication, got %d", rec.Code)
	}
}

func TestPublishOpportunity(t *testing.T) {
	router := newOpportunityRouter(t)
	accountID := id.NewAccountID()

	req := httptest.NewRequest(http.MethodPost, "/opportunities", bytes.NewReader(validPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithAccount(req, accountID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 publishing opportunity, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp OpportunityResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "Active" {
		t.Fatalf("expected status Active on publish, got %s", resp.Status)
	}
	if !resp.PublishedAt.Equal(handlerNow) {
		t.Fatalf("expected published_at stamped from the request clock, got %s", resp.PublishedAt)
	}
}

func TestPublishRejectsPastExpiration(t *testing.T) {
	router := newOpportunityRouter(t)

	payload := map[string]any{
		"title":        "Backend Engineer",
		"description":  "Own the pipeline.",
		"location":     "Remote",
		"competencies": []string{"go"},
		"expires_at":   handlerNow.Add(-time.Minute),
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/opportunities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithAccount(req, id.NewAccountID().String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for past expiration, got %d: %s", rec.Code, rec.Body.String())
	}

	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error != "validation" {
		t.Fatalf("expected validation error code, got %q", errResp.Error)
	}
}

func TestPublishAcceptsExpirationAtNow(t *testing.T) {
	router := newOpportunityRouter(t)

	payload := map[string]any{
		"title":        "Backend Engineer",
		"description":  "Own the pipeline.",
		"location":     "Remote",
		"competencies": []string{"go"},
		"expires_at":   handlerNow,
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/opportunities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithAccount(req, id.NewAccountID().String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for expiration equal to now, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDuplicatePublishReturnsConflict(t *testing.T) {
	router := newOpportunityRouter(t)
	accountID := id.NewAccountID()

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/opportunities", bytes.NewReader(validPayload(t)))
		req.Header.Set("Content-Type", "application/json")
		req = testutil.WithAccount(req, accountID.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("publish %d: expected %d, got %d", i, want, rec.Code)
		}
	}
}

func TestUpdateOpportunityStatus(t *testing.T) {
	router := newOpportunityRouter(t)
	accountID := id.NewAccountID()

	req := httptest.NewRequest(http.MethodPost, "/opportunities", bytes.NewReader(validPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithAccount(req, accountID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("publish failed: %d", rec.Code)
	}

	body, _ := json.Marshal(map[string]any{"status": "Filled"})
	req = httptest.NewRequest(http.MethodPut, "/opportunities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithAccount(req, accountID.String())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 updating status, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp OpportunityResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "Filled" {
		t.Fatalf("expected status Filled, got %s", resp.Status)
	}
	if resp.Title != "Backend Engineer" {
		t.Fatalf("expected title preserved on partial update, got %s", resp.Title)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	router := newOpportunityRouter(t)
	accountID := id.NewAccountID()

	body, _ := json.Marshal(map[string]any{"status": "Expired"})
	req := httptest.NewRequest(http.MethodPut, "/opportunities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithAccount(req, accountID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestUpdateMissingListingReturnsNotFound(t *testing.T) {
	router := newOpportunityRouter(t)

	body, _ := json.Marshal(map[string]any{"status": "Paused"})
	req := httptest.NewRequest(http.MethodPut, "/opportunities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithAccount(req, id.NewAccountID().String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 updating missing listing, got %d", rec.Code)
	}
}

func TestTerminateOpportunity(t *testing.T) {
	router := newOpportunityRouter(t)
	accountID := id.NewAccountID()

	req := httptest.NewRequest(http.MethodPost, "/opportunities", bytes.NewReader(validPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithAccount(req, accountID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("publish failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/opportunities", nil)
	req = testutil.WithAccount(req, accountID.String())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 terminating listing, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/opportunities", nil)
	req = testutil.WithAccount(req, accountID.String())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 terminating twice, got %d", rec.Code)
	}
}

func validPayload(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"title":        "Backend Engineer",
		"description":  "Own the ingestion pipeline.",
		"location":     "Remote",
		"competencies": []string{"go", "kafka"},
		"expires_at":   handlerNow.Add(30 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return body
}

func newOpportunityRouter(t *testing.T) http.Handler {
	t.Helper()
	listings := store.NewMemory()
	svc := service.New(listings, timesource.Fixed{At: handlerNow})
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}
