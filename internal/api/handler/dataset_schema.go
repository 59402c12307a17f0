package handler

import (
	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/presenter"
)

// datasetRow is one table row of the données screen: presented cells plus the
// raw identifiers the edit action needs.
type datasetRow struct {
	ID           int64         `json:"id_donnee"`
	TypeID       int64         `json:"id_type"`
	Title        string        `json:"titre"`
	Country      string        `json:"pays"`
	Region       string        `json:"region"`
	CollectedAt  string        `json:"date_collecte"`
	Access       presenter.Tag `json:"acces"`
	FileURL      string        `json:"fichier_url,omitempty"`
	ThumbnailURL string        `json:"vignette_url,omitempty"`
}

type datasetListResponse struct {
	screenMeta
	Rows []datasetRow `json:"rows"`
}

// datasetDetail carries the raw record for edit-mode prefill. Dates use the
// form's YYYY-MM-DD convention, not the display format.
type datasetDetail struct {
	ID           int64    `json:"id_donnee"`
	TypeID       int64    `json:"id_type"`
	Title        string   `json:"titre"`
	Country      string   `json:"pays"`
	Region       string   `json:"region"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Description  string   `json:"description"`
	CollectedAt  string   `json:"date_collecte"`
	Access       string   `json:"acces"`
	FileURL      string   `json:"fichier_url"`
	ThumbnailURL string   `json:"vignette_url"`
	Meta         string   `json:"meta"`
}

type catalogOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// referenceDataResponse holds the three select catalogs for the form.
type referenceDataResponse struct {
	Types     []catalogOption `json:"types"`
	Countries []catalogOption `json:"pays"`
	Regions   []catalogOption `json:"provinces"`
}

func toDatasetRow(d domain.Dataset) datasetRow {
	return datasetRow{
		ID:           d.ID,
		TypeID:       d.TypeID,
		Title:        d.Title,
		Country:      d.Country,
		Region:       d.Region,
		CollectedAt:  presenter.Date(d.CollectedAt),
		Access:       presenter.Access(d.Access),
		FileURL:      d.FileURL,
		ThumbnailURL: d.ThumbnailURL,
	}
}

func toDatasetDetail(d *domain.Dataset) datasetDetail {
	detail := datasetDetail{
		ID:           d.ID,
		TypeID:       d.TypeID,
		Title:        d.Title,
		Country:      d.Country,
		Region:       d.Region,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
		Description:  d.Description,
		Access:       string(d.Access),
		FileURL:      d.FileURL,
		ThumbnailURL: d.ThumbnailURL,
		Meta:         d.Meta,
	}
	if d.CollectedAt != nil {
		detail.CollectedAt = d.CollectedAt.Format("2006-01-02")
	}
	return detail
}
