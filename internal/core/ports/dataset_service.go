package ports

import (
	"context"

	"github.com/geodonnees/admin-console/internal/core/domain"
)

// DatasetFormInput carries the raw form values as entered by the operator.
// Validation happens in the service, before any network call.
type DatasetFormInput struct {
	ID          int64    `validate:"omitempty,gte=0"`
	TypeID      int64    `validate:"required"`
	Title       string   `validate:"required"`
	Country     string   `validate:"omitempty"`
	Region      string   `validate:"omitempty"`
	Latitude    *float64 `validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `validate:"omitempty,gte=-180,lte=180"`
	Description string   `validate:"omitempty"`
	CollectedAt string   `validate:"omitempty,datetime=2006-01-02"`
	Access      string   `validate:"omitempty,oneof=public abonne"`
	Meta        string   `validate:"omitempty,json"`
}

// ReferenceData holds the three catalogs that populate the form's selects.
// A catalog that failed to load is simply empty; the form still renders.
type ReferenceData struct {
	Types     []domain.DatasetType
	Countries []domain.Country
	Regions   []domain.Region
}

// DatasetService is the dataset form's contract:
// submit(values, file?, thumbnail?) -> success | validationError | submissionError.
type DatasetService interface {
	// Get retrieves a single record for edit-mode prefill.
	Get(ctx context.Context, id int64) (*domain.Dataset, error)
	// ReferenceData loads the three catalogs concurrently. Individual
	// failures are logged, never fatal.
	ReferenceData(ctx context.Context) *ReferenceData
	// Submit validates input locally and, only if valid, serializes all
	// fields plus attachments as one multipart request to the upstream.
	Submit(ctx context.Context, input DatasetFormInput, file, thumbnail *Attachment) error
}
