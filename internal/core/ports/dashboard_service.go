package ports

import (
	"context"

	"github.com/geodonnees/admin-console/internal/core/domain"
)

// DashboardSnapshot aggregates the five read-only stat calls. Widgets whose
// call failed keep their zero value and the source is recorded in Failed, so
// the remaining counters still display.
type DashboardSnapshot struct {
	Users    int64
	Payments int64
	Datasets int64

	PaymentSeries []domain.MonthlyAmount
	UserSeries    []domain.MonthlyCount

	// Failed lists the stat sources that errored, in a fixed order.
	Failed []string
}

// Degraded reports whether any of the aggregate calls failed.
func (s *DashboardSnapshot) Degraded() bool { return len(s.Failed) > 0 }

// DashboardService produces the overview screen's snapshot.
type DashboardService interface {
	// Load issues the five aggregate requests concurrently and joins on all
	// of them. It never returns an error: partial failures degrade the
	// snapshot instead of discarding the successful widgets.
	Load(ctx context.Context) *DashboardSnapshot
}
