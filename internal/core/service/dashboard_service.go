package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/geodonnees/admin-console/internal/core/ports"
)

// Stat source names, in the order they appear in DashboardSnapshot.Failed.
const (
	statUserCount     = "user_count"
	statPaymentCount  = "payment_count"
	statDatasetCount  = "dataset_count"
	statPaymentSeries = "payment_series"
	statUserSeries    = "user_series"
)

// DashboardService fetches the five aggregate stats for the overview screen.
type DashboardService struct {
	upstream ports.UpstreamAPI
	logger   zerolog.Logger
}

var _ ports.DashboardService = (*DashboardService)(nil)

func NewDashboardService(upstream ports.UpstreamAPI, logger zerolog.Logger) *DashboardService {
	return &DashboardService{upstream: upstream, logger: logger}
}

// Load issues the five requests concurrently and joins on all of them. A
// failing call only degrades its own widget; succeeding counters and series
// are always returned.
func (s *DashboardService) Load(ctx context.Context) *ports.DashboardSnapshot {
	snap := &ports.DashboardSnapshot{}

	sources := []string{statUserCount, statPaymentCount, statDatasetCount, statPaymentSeries, statUserSeries}
	failed := make([]bool, len(sources))
	var mu sync.Mutex
	fail := func(slot int, err error) {
		s.logger.Warn().Err(err).Str("source", sources[slot]).Msg("dashboard stat fetch failed")
		mu.Lock()
		failed[slot] = true
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.upstream.CountUsers(gctx)
		if err != nil {
			fail(0, err)
			return nil
		}
		snap.Users = n
		return nil
	})
	g.Go(func() error {
		n, err := s.upstream.CountPayments(gctx)
		if err != nil {
			fail(1, err)
			return nil
		}
		snap.Payments = n
		return nil
	})
	g.Go(func() error {
		n, err := s.upstream.CountDatasets(gctx)
		if err != nil {
			fail(2, err)
			return nil
		}
		snap.Datasets = n
		return nil
	})
	g.Go(func() error {
		series, err := s.upstream.PaymentStats(gctx)
		if err != nil {
			fail(3, err)
			return nil
		}
		snap.PaymentSeries = series
		return nil
	})
	g.Go(func() error {
		series, err := s.upstream.UserStats(gctx)
		if err != nil {
			fail(4, err)
			return nil
		}
		snap.UserSeries = series
		return nil
	})
	_ = g.Wait()

	for i, bad := range failed {
		if bad {
			snap.Failed = append(snap.Failed, sources[i])
		}
	}

	return snap
}
