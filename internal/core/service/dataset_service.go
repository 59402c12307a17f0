package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/geodonnees/admin-console/internal/api/metrics"
	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
)

// DatasetService implements the dataset record form contract: reference data
// loading, local validation and multipart submission.
type DatasetService struct {
	upstream ports.UpstreamAPI
	validate *validator.Validate
	logger   zerolog.Logger
}

var _ ports.DatasetService = (*DatasetService)(nil)

func NewDatasetService(upstream ports.UpstreamAPI, logger zerolog.Logger) *DatasetService {
	return &DatasetService{
		upstream: upstream,
		validate: validator.New(),
		logger:   logger,
	}
}

// Get retrieves one record for edit-mode prefill.
func (s *DatasetService) Get(ctx context.Context, id int64) (*domain.Dataset, error) {
	return s.upstream.GetDataset(ctx, id)
}

// ReferenceData loads the three catalogs concurrently. A failing catalog is
// logged and left empty; the form still renders with the options it has.
func (s *DatasetService) ReferenceData(ctx context.Context) *ports.ReferenceData {
	ref := &ports.ReferenceData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		types, err := s.upstream.ListTypes(gctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("type catalog load failed")
			return nil
		}
		ref.Types = types
		return nil
	})
	g.Go(func() error {
		countries, err := s.upstream.ListCountries(gctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("country catalog load failed")
			return nil
		}
		ref.Countries = countries
		return nil
	})
	g.Go(func() error {
		regions, err := s.upstream.ListRegions(gctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("region catalog load failed")
			return nil
		}
		ref.Regions = regions
		return nil
	})
	_ = g.Wait()

	return ref
}

// Submit validates the form values and, only when valid, serializes all
// fields plus any attachments as a single multipart request. A validation
// failure returns a *domain.ValidationError before any network call.
func (s *DatasetService) Submit(ctx context.Context, input ports.DatasetFormInput, file, thumbnail *ports.Attachment) error {
	if err := s.validateInput(input); err != nil {
		metrics.DatasetSubmissionsTotal.WithLabelValues("validation_failed").Inc()
		return err
	}

	sub := ports.DatasetSubmission{
		ID:          input.ID,
		TypeID:      input.TypeID,
		Title:       input.Title,
		Country:     input.Country,
		Region:      input.Region,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Description: input.Description,
		Access:      domain.AccessLevel(input.Access),
		Meta:        input.Meta,
		File:        file,
		Thumbnail:   thumbnail,
	}
	if sub.Access == "" {
		sub.Access = domain.AccessSubscriber
	}
	if input.CollectedAt != "" {
		// Layout already enforced by validation.
		t, err := time.Parse("2006-01-02", input.CollectedAt)
		if err != nil {
			return &domain.ValidationError{Fields: map[string]string{"date_collecte": "invalid date"}}
		}
		sub.CollectedAt = &t
	}

	if err := s.upstream.SubmitDataset(ctx, sub); err != nil {
		metrics.DatasetSubmissionsTotal.WithLabelValues("upstream_error").Inc()
		s.logger.Error().Err(err).Str("titre", input.Title).Msg("dataset submission failed")
		return err
	}

	metrics.DatasetSubmissionsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Int64("id_type", input.TypeID).Str("titre", input.Title).Bool("edit", input.ID > 0).Msg("dataset submitted")
	return nil
}

// validateInput runs struct validation and converts the result into
// field-keyed messages suitable for inline display.
func (s *DatasetService) validateInput(input ports.DatasetFormInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[formFieldName(fe.Field())] = fieldMessage(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

// formFieldName maps struct field names to the wire form keys the operator
// sees next to the offending input.
func formFieldName(field string) string {
	switch field {
	case "TypeID":
		return "id_type"
	case "Title":
		return "titre"
	case "Country":
		return "pays"
	case "Region":
		return "region"
	case "Latitude":
		return "latitude"
	case "Longitude":
		return "longitude"
	case "CollectedAt":
		return "date_collecte"
	case "Access":
		return "acces"
	case "Meta":
		return "meta"
	default:
		return strings.ToLower(field)
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return "must be a date formatted as YYYY-MM-DD"
	case "json":
		return "must be valid JSON"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
