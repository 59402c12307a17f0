package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
	"github.com/geodonnees/admin-console/internal/infrastructure/config"
)

type stubUpstream struct{}

func (stubUpstream) ListDatasets(context.Context) ([]domain.Dataset, error) {
	return []domain.Dataset{{ID: 1, Title: "Pluviométrie Centre", Access: domain.AccessPublic}}, nil
}
func (stubUpstream) CountDatasets(context.Context) (int64, error) { return 1, nil }
func (stubUpstream) GetDataset(context.Context, int64) (*domain.Dataset, error) {
	return nil, domain.ErrDatasetNotFound
}
func (stubUpstream) SubmitDataset(context.Context, ports.DatasetSubmission) error { return nil }
func (stubUpstream) ListPayments(context.Context) ([]domain.Payment, error)       { return nil, nil }
func (stubUpstream) CountPayments(context.Context) (int64, error)                 { return 0, nil }
func (stubUpstream) PaymentStats(context.Context) ([]domain.MonthlyAmount, error) { return nil, nil }
func (stubUpstream) InitiatePayment(context.Context, ports.PaymentInitiation) (*ports.PaymentInitiationResult, error) {
	return &ports.PaymentInitiationResult{TransactionID: "tx", Status: domain.PaymentPending}, nil
}
func (stubUpstream) ListUsers(context.Context) ([]domain.User, error)         { return nil, nil }
func (stubUpstream) CountUsers(context.Context) (int64, error)                { return 0, nil }
func (stubUpstream) UserStats(context.Context) ([]domain.MonthlyCount, error) { return nil, nil }
func (stubUpstream) ListTypes(context.Context) ([]domain.DatasetType, error)  { return nil, nil }
func (stubUpstream) ListCountries(context.Context) ([]domain.Country, error)  { return nil, nil }
func (stubUpstream) ListRegions(context.Context) ([]domain.Region, error)     { return nil, nil }

func testRouter(t *testing.T) *Router {
	t.Helper()
	cfg := &config.Config{
		Port:     "8080",
		Env:      "test",
		LogLevel: "error",
		Session: config.SessionConfig{
			Secret:       "test-secret",
			TTL:          time.Hour,
			Username:     "admin",
			PasswordHash: "$2a$10$invalidhashfortestingonly",
		},
		Upstream: config.UpstreamConfig{BaseURL: "http://upstream.test", Timeout: time.Second},
	}
	r := NewRouter(cfg, stubUpstream{}, zerolog.Nop())
	t.Cleanup(r.Close)
	return r
}

func TestRouter_ProtectedScreenRedirectsWithoutSession(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/", "/donnees", "/paiement", "/utilisateurs"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.Echo.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: expected 303, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestRouter_PublicRoutesServeWithoutSession(t *testing.T) {
	r := testRouter(t)

	for path, want := range map[string]int{
		"/login":        http.StatusOK,
		"/health":       http.StatusOK,
		"/health/ready": http.StatusOK,
		"/metrics":      http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.Echo.ServeHTTP(rec, req)

		if rec.Code != want {
			t.Errorf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}
}

func TestRouter_LoginWithBadCredentialsIs401(t *testing.T) {
	r := testRouter(t)

	body := strings.NewReader(`{"username":"admin","password":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()
	r.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
