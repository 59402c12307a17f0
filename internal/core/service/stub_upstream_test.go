package service

import (
	"context"
	"sync/atomic"

	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
)

// stubUpstream is an in-memory stand-in for the platform API. Each endpoint
// can be made to fail independently; call counts expose whether the network
// was touched at all.
type stubUpstream struct {
	datasets  []domain.Dataset
	payments  []domain.Payment
	users     []domain.User
	types     []domain.DatasetType
	countries []domain.Country
	regions   []domain.Region

	paymentSeries []domain.MonthlyAmount
	userSeries    []domain.MonthlyCount

	failing map[string]error

	calls      atomic.Int64
	lastSubmit *ports.DatasetSubmission
}

func newStubUpstream() *stubUpstream {
	return &stubUpstream{failing: make(map[string]error)}
}

func (s *stubUpstream) failWith(endpoint string, err error) { s.failing[endpoint] = err }

func (s *stubUpstream) check(endpoint string) error {
	s.calls.Add(1)
	return s.failing[endpoint]
}

func (s *stubUpstream) ListDatasets(context.Context) ([]domain.Dataset, error) {
	if err := s.check("list_datasets"); err != nil {
		return nil, err
	}
	return s.datasets, nil
}

func (s *stubUpstream) CountDatasets(context.Context) (int64, error) {
	if err := s.check("count_datasets"); err != nil {
		return 0, err
	}
	return int64(len(s.datasets)), nil
}

func (s *stubUpstream) GetDataset(_ context.Context, id int64) (*domain.Dataset, error) {
	if err := s.check("get_dataset"); err != nil {
		return nil, err
	}
	for _, d := range s.datasets {
		if d.ID == id {
			clone := d
			return &clone, nil
		}
	}
	return nil, domain.ErrDatasetNotFound
}

func (s *stubUpstream) SubmitDataset(_ context.Context, sub ports.DatasetSubmission) error {
	if err := s.check("submit_dataset"); err != nil {
		return err
	}
	clone := sub
	s.lastSubmit = &clone
	return nil
}

func (s *stubUpstream) ListPayments(context.Context) ([]domain.Payment, error) {
	if err := s.check("list_payments"); err != nil {
		return nil, err
	}
	return s.payments, nil
}

func (s *stubUpstream) CountPayments(context.Context) (int64, error) {
	if err := s.check("count_payments"); err != nil {
		return 0, err
	}
	return int64(len(s.payments)), nil
}

func (s *stubUpstream) PaymentStats(context.Context) ([]domain.MonthlyAmount, error) {
	if err := s.check("payment_stats"); err != nil {
		return nil, err
	}
	return s.paymentSeries, nil
}

func (s *stubUpstream) InitiatePayment(context.Context, ports.PaymentInitiation) (*ports.PaymentInitiationResult, error) {
	if err := s.check("initiate_payment"); err != nil {
		return nil, err
	}
	return &ports.PaymentInitiationResult{TransactionID: "TX-1", Status: domain.PaymentPending}, nil
}

func (s *stubUpstream) ListUsers(context.Context) ([]domain.User, error) {
	if err := s.check("list_users"); err != nil {
		return nil, err
	}
	return s.users, nil
}

func (s *stubUpstream) CountUsers(context.Context) (int64, error) {
	if err := s.check("count_users"); err != nil {
		return 0, err
	}
	return int64(len(s.users)), nil
}

func (s *stubUpstream) UserStats(context.Context) ([]domain.MonthlyCount, error) {
	if err := s.check("user_stats"); err != nil {
		return nil, err
	}
	return s.userSeries, nil
}

func (s *stubUpstream) ListTypes(context.Context) ([]domain.DatasetType, error) {
	if err := s.check("list_types"); err != nil {
		return nil, err
	}
	return s.types, nil
}

func (s *stubUpstream) ListCountries(context.Context) ([]domain.Country, error) {
	if err := s.check("list_countries"); err != nil {
		return nil, err
	}
	return s.countries, nil
}

func (s *stubUpstream) ListRegions(context.Context) ([]domain.Region, error) {
	if err := s.check("list_regions"); err != nil {
		return nil, err
	}
	return s.regions, nil
}
