package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
	"github.com/geodonnees/admin-console/internal/core/view"
)

// DatasetHandler serves the données screen: the paginated table plus the
// create/edit form endpoints.
type DatasetHandler struct {
	service    ports.DatasetService
	collection *view.Collection[domain.Dataset]
}

func NewDatasetHandler(service ports.DatasetService, collection *view.Collection[domain.Dataset]) *DatasetHandler {
	return &DatasetHandler{service: service, collection: collection}
}

// List renders the dataset table. Every visit refreshes the collection; a
// failed refresh keeps serving the previous snapshot with a notice.
//
// @Summary      List datasets
// @Tags         datasets
// @Produce      json
// @Param        page   query  int     false  "Page number (1-based)"
// @Param        sort   query  string  false  "Sort key: titre, pays, date_collecte"
// @Param        order  query  string  false  "asc or desc"
// @Success      200    {object}  datasetListResponse
// @Failure      502    {object}  map[string]string
// @Router       /donnees [get]
func (h *DatasetHandler) List(c echo.Context) error {
	err := h.collection.Refresh(c.Request().Context())
	snap := h.collection.Snapshot()
	if err != nil && !errors.Is(err, view.ErrSuperseded) && len(snap.Items) == 0 {
		return err
	}

	sortKey, desc := querySort(c)
	snap = snap.Sort(datasetLess(sortKey), desc)

	items, pg := snap.Page(queryPage(c))
	rows := make([]datasetRow, 0, len(items))
	for _, d := range items {
		rows = append(rows, toDatasetRow(d))
	}

	return c.JSON(http.StatusOK, datasetListResponse{
		screenMeta: meta(snap, pg),
		Rows:       rows,
	})
}

func datasetLess(key string) func(a, b domain.Dataset) bool {
	switch key {
	case "titre":
		return func(a, b domain.Dataset) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case "pays":
		return func(a, b domain.Dataset) bool {
			return strings.ToLower(a.Country) < strings.ToLower(b.Country)
		}
	case "date_collecte":
		return func(a, b domain.Dataset) bool {
			// Records without a date sort last.
			if a.CollectedAt == nil {
				return false
			}
			if b.CollectedAt == nil {
				return true
			}
			return a.CollectedAt.Before(*b.CollectedAt)
		}
	default:
		return nil
	}
}

// One returns the raw record for edit-mode prefill.
//
// @Summary      Get one dataset
// @Tags         datasets
// @Produce      json
// @Param        id   query     int  true  "Dataset id"
// @Success      200  {object}  datasetDetail
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /donnees/one [get]
func (h *DatasetHandler) One(c echo.Context) error {
	id, err := strconv.ParseInt(c.QueryParam("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dataset id")
	}

	record, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDatasetDetail(record))
}

// Form returns the reference catalogs for the form's selects. Catalogs that
// failed to load come back empty rather than failing the whole form.
//
// @Summary      Dataset form reference data
// @Tags         datasets
// @Produce      json
// @Success      200  {object}  referenceDataResponse
// @Router       /donnees/form [get]
func (h *DatasetHandler) Form(c echo.Context) error {
	ref := h.service.ReferenceData(c.Request().Context())

	resp := referenceDataResponse{
		Types:     make([]catalogOption, 0, len(ref.Types)),
		Countries: make([]catalogOption, 0, len(ref.Countries)),
		Regions:   make([]catalogOption, 0, len(ref.Regions)),
	}
	for _, t := range ref.Types {
		resp.Types = append(resp.Types, catalogOption{ID: t.ID, Name: t.Name})
	}
	for _, p := range ref.Countries {
		resp.Countries = append(resp.Countries, catalogOption{ID: p.ID, Name: p.Name})
	}
	for _, r := range ref.Regions {
		resp.Regions = append(resp.Regions, catalogOption{ID: r.ID, Name: r.Name})
	}
	return c.JSON(http.StatusOK, resp)
}

// Submit handles the multipart create/edit form. The presence of id_donnee
// switches the request to edit mode. Validation failures come back as 422
// with per-field messages.
//
// @Summary      Create or edit a dataset
// @Tags         datasets
// @Accept       multipart/form-data
// @Produce      json
// @Param        id_donnee      formData  int     false  "Record id (edit mode)"
// @Param        id_type        formData  int     true   "Dataset type id"
// @Param        titre          formData  string  true   "Title"
// @Param        pays           formData  string  false  "Country"
// @Param        region         formData  string  false  "Region"
// @Param        latitude       formData  number  false  "Latitude"
// @Param        longitude      formData  number  false  "Longitude"
// @Param        description    formData  string  false  "Description"
// @Param        date_collecte  formData  string  false  "Collection date (YYYY-MM-DD)"
// @Param        acces          formData  string  false  "public or abonne"
// @Param        meta           formData  string  false  "Free-form JSON metadata"
// @Param        fichier        formData  file    false  "Data file"
// @Param        vignette       formData  file    false  "Thumbnail image"
// @Success      200  {object}  map[string]string
// @Success      201  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /donnees [post]
func (h *DatasetHandler) Submit(c echo.Context) error {
	input, err := bindDatasetForm(c)
	if err != nil {
		return err
	}

	file, err := formAttachment(c, "fichier")
	if err != nil {
		return err
	}
	thumbnail, err := formAttachment(c, "vignette")
	if err != nil {
		return err
	}

	if err := h.service.Submit(c.Request().Context(), input, file, thumbnail); err != nil {
		return err
	}

	// The table is stale now; refresh it so the next List render is current.
	// A failure here is the next visit's problem, not the submission's.
	_ = h.collection.Refresh(c.Request().Context())

	if input.ID > 0 {
		return c.JSON(http.StatusOK, map[string]string{"message": "dataset updated"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "dataset created"})
}

// bindDatasetForm reads the multipart fields into the service input. Numeric
// fields that do not parse are reported as field-level validation errors, in
// the same envelope the service uses.
func bindDatasetForm(c echo.Context) (ports.DatasetFormInput, error) {
	input := ports.DatasetFormInput{
		Title:       strings.TrimSpace(c.FormValue("titre")),
		Country:     strings.TrimSpace(c.FormValue("pays")),
		Region:      strings.TrimSpace(c.FormValue("region")),
		Description: c.FormValue("description"),
		CollectedAt: strings.TrimSpace(c.FormValue("date_collecte")),
		Access:      strings.TrimSpace(c.FormValue("acces")),
		Meta:        strings.TrimSpace(c.FormValue("meta")),
	}

	fields := map[string]string{}

	if raw := strings.TrimSpace(c.FormValue("id_donnee")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields["id_donnee"] = "must be a number"
		} else {
			input.ID = id
		}
	}
	if raw := strings.TrimSpace(c.FormValue("id_type")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields["id_type"] = "must be a number"
		} else {
			input.TypeID = id
		}
	}
	if v, ferr := optionalFloat(c.FormValue("latitude")); ferr != "" {
		fields["latitude"] = ferr
	} else {
		input.Latitude = v
	}
	if v, ferr := optionalFloat(c.FormValue("longitude")); ferr != "" {
		fields["longitude"] = ferr
	} else {
		input.Longitude = v
	}

	if len(fields) > 0 {
		return input, &domain.ValidationError{Fields: fields}
	}
	return input, nil
}

func optionalFloat(raw string) (*float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, "must be a number"
	}
	return &v, ""
}

// formAttachment reads one optional file part fully into memory. The form
// keeps attachments local until submission, so there is no temp file stage.
func formAttachment(c echo.Context, name string) (*ports.Attachment, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		// Absent part, or no multipart body at all. Both mean "no attachment".
		return nil, nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file part: "+name)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file part: "+name)
	}

	return &ports.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
