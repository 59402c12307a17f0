package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/geodonnees/admin-console/internal/core/domain"
)

func seededStats() *stubUpstream {
	up := newStubUpstream()
	up.users = make([]domain.User, 4)
	up.payments = make([]domain.Payment, 3)
	up.datasets = make([]domain.Dataset, 5)
	up.paymentSeries = []domain.MonthlyAmount{{Month: "2025-01", Amount: 1200}}
	up.userSeries = []domain.MonthlyCount{{Month: "2025-01", Count: 2}}
	return up
}

func TestDashboard_LoadAllStats(t *testing.T) {
	svc := NewDashboardService(seededStats(), zerolog.Nop())

	snap := svc.Load(context.Background())
	if snap.Degraded() {
		t.Fatalf("no call failed, snapshot degraded: %v", snap.Failed)
	}
	if snap.Users != 4 || snap.Payments != 3 || snap.Datasets != 5 {
		t.Errorf("counters wrong: %+v", snap)
	}
	if len(snap.PaymentSeries) != 1 || len(snap.UserSeries) != 1 {
		t.Errorf("series wrong: %+v", snap)
	}
}

func TestDashboard_PaymentSeriesFailureKeepsOtherWidgets(t *testing.T) {
	up := seededStats()
	up.failWith("payment_stats", errors.New("stat service down"))
	svc := NewDashboardService(up, zerolog.Nop())

	snap := svc.Load(context.Background())
	if !snap.Degraded() {
		t.Fatal("expected degraded snapshot")
	}
	if len(snap.Failed) != 1 || snap.Failed[0] != "payment_series" {
		t.Errorf("expected only payment_series to fail, got %v", snap.Failed)
	}
	// Succeeding counters still display.
	if snap.Users != 4 || snap.Payments != 3 || snap.Datasets != 5 {
		t.Errorf("surviving counters lost: %+v", snap)
	}
	if len(snap.PaymentSeries) != 0 {
		t.Errorf("failed series must stay empty, got %+v", snap.PaymentSeries)
	}
	if len(snap.UserSeries) != 1 {
		t.Errorf("user series must survive, got %+v", snap.UserSeries)
	}
}

func TestDashboard_AllCallsFailing(t *testing.T) {
	up := seededStats()
	down := errors.New("upstream down")
	for _, endpoint := range []string{"count_users", "count_payments", "count_datasets", "payment_stats", "user_stats"} {
		up.failWith(endpoint, down)
	}
	svc := NewDashboardService(up, zerolog.Nop())

	snap := svc.Load(context.Background())
	if len(snap.Failed) != 5 {
		t.Fatalf("expected 5 failures, got %v", snap.Failed)
	}
	// Failures are reported in a fixed order regardless of completion order.
	want := []string{"user_count", "payment_count", "dataset_count", "payment_series", "user_series"}
	for i, source := range want {
		if snap.Failed[i] != source {
			t.Errorf("failed[%d]: expected %s, got %s", i, source, snap.Failed[i])
		}
	}
	if snap.Users != 0 || snap.Datasets != 0 {
		t.Errorf("failed counters must stay zero: %+v", snap)
	}
}
