package ports

import (
	"context"
	"time"

	"github.com/geodonnees/admin-console/internal/core/domain"
)

// Attachment is a binary file held locally until the form is submitted.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// DatasetSubmission is the fully validated payload sent to the upstream as a
// single multipart request. File and Thumbnail are optional.
type DatasetSubmission struct {
	ID          int64 // 0 on create, the record id on edit
	TypeID      int64
	Title       string
	Country     string
	Region      string
	Latitude    *float64
	Longitude   *float64
	Description string
	CollectedAt *time.Time // serialized as YYYY-MM-DD
	Access      domain.AccessLevel
	Meta        string
	File        *Attachment
	Thumbnail   *Attachment
}

// PaymentInitiation is the passthrough payload for starting a payment.
type PaymentInitiation struct {
	UserID       int64
	Subscription string
	Amount       float64
	Method       string
}

// PaymentInitiationResult is the upstream acknowledgement of an initiation.
type PaymentInitiationResult struct {
	TransactionID string
	Status        domain.PaymentStatus
}

// UpstreamAPI is the console's single collaborator: the platform REST API.
// One method per endpoint; every call targets the base address the client was
// constructed with. Errors (transport failure, non-2xx) are distinguishable
// from an empty result and always propagate to the caller.
type UpstreamAPI interface {
	ListDatasets(ctx context.Context) ([]domain.Dataset, error)
	CountDatasets(ctx context.Context) (int64, error)
	GetDataset(ctx context.Context, id int64) (*domain.Dataset, error)
	SubmitDataset(ctx context.Context, sub DatasetSubmission) error

	ListPayments(ctx context.Context) ([]domain.Payment, error)
	CountPayments(ctx context.Context) (int64, error)
	PaymentStats(ctx context.Context) ([]domain.MonthlyAmount, error)
	InitiatePayment(ctx context.Context, in PaymentInitiation) (*PaymentInitiationResult, error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
	UserStats(ctx context.Context) ([]domain.MonthlyCount, error)

	ListTypes(ctx context.Context) ([]domain.DatasetType, error)
	ListCountries(ctx context.Context) ([]domain.Country, error)
	ListRegions(ctx context.Context) ([]domain.Region, error)
}
