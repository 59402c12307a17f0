// Package upstream is the console's HTTP client for the platform REST API.
// It exposes one method per endpoint, targets a single injected base address
// and parses wire payloads into domain types at this boundary, so the rest of
// the console never sees untyped server shapes.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/geodonnees/admin-console/internal/api/metrics"
	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// StatusError is a non-2xx upstream response. It is distinct from transport
// failures and from empty results.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Body)
}

// Client implements ports.UpstreamAPI over HTTP.
type Client struct {
	base  *url.URL
	httpc *http.Client
	log   zerolog.Logger
}

var _ ports.UpstreamAPI = (*Client)(nil)

// New builds a client for the given base address. The address is injected
// here once; nothing else in the console reads it.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:  u,
		httpc: &http.Client{Timeout: timeout},
		log:   log.With().Str("component", "upstream").Logger(),
	}, nil
}

// do issues the request, records metrics and decodes a 2xx JSON body into out
// (skipped when out is nil).
func (c *Client) do(ctx context.Context, endpoint string, req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("upstream request failed")
		return fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "http_error").Inc()
		c.log.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("upstream returned error status")
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(ctx, endpoint, req, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", endpoint, err)
	}
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(ctx, endpoint, req, out)
}

// --- Datasets ---

func (c *Client) ListDatasets(ctx context.Context) ([]domain.Dataset, error) {
	var wire []datasetWire
	if err := c.getJSON(ctx, "list_datasets", "/api/donnees", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Dataset, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (c *Client) CountDatasets(ctx context.Context) (int64, error) {
	var wire countWire
	if err := c.getJSON(ctx, "count_datasets", "/api/donnees/count", nil, &wire); err != nil {
		return 0, err
	}
	return wire.Count, nil
}

func (c *Client) GetDataset(ctx context.Context, id int64) (*domain.Dataset, error) {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	var wire datasetWire
	err := c.getJSON(ctx, "get_dataset", "/api/donnees/one", q, &wire)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, err
	}
	d := wire.toDomain()
	return &d, nil
}

// SubmitDataset serializes the record plus any attachments as one multipart
// request. Date fields travel as YYYY-MM-DD.
func (c *Client) SubmitDataset(ctx context.Context, sub ports.DatasetSubmission) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"id_type":     strconv.FormatInt(sub.TypeID, 10),
		"titre":       sub.Title,
		"pays":        sub.Country,
		"region":      sub.Region,
		"description": sub.Description,
		"acces":       string(sub.Access),
		"meta":        sub.Meta,
	}
	if sub.ID > 0 {
		fields["id_donnee"] = strconv.FormatInt(sub.ID, 10)
	}
	if sub.Latitude != nil {
		fields["latitude"] = strconv.FormatFloat(*sub.Latitude, 'f', -1, 64)
	}
	if sub.Longitude != nil {
		fields["longitude"] = strconv.FormatFloat(*sub.Longitude, 'f', -1, 64)
	}
	if sub.CollectedAt != nil {
		fields["date_collecte"] = sub.CollectedAt.Format("2006-01-02")
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}

	for _, att := range []struct {
		name string
		file *ports.Attachment
	}{
		{"fichier", sub.File},
		{"vignette", sub.Thumbnail},
	} {
		if att.file == nil {
			continue
		}
		part, err := mw.CreateFormFile(att.name, att.file.Filename)
		if err != nil {
			return fmt.Errorf("create %s part: %w", att.name, err)
		}
		if _, err := part.Write(att.file.Content); err != nil {
			return fmt.Errorf("write %s part: %w", att.name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/api/donnees"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), &buf)
	if err != nil {
		return fmt.Errorf("build submit_dataset request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(ctx, "submit_dataset", req, nil)
}

// --- Payments ---

func (c *Client) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	var wire []paymentWire
	if err := c.getJSON(ctx, "list_payments", "/api/payment", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Payment, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (c *Client) CountPayments(ctx context.Context) (int64, error) {
	var wire countWire
	if err := c.getJSON(ctx, "count_payments", "/api/payment/count", nil, &wire); err != nil {
		return 0, err
	}
	return wire.Count, nil
}

func (c *Client) PaymentStats(ctx context.Context) ([]domain.MonthlyAmount, error) {
	var wire []monthlyAmountWire
	if err := c.getJSON(ctx, "payment_stats", "/api/payment/stat", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.MonthlyAmount, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.MonthlyAmount{Month: w.Month, Amount: w.Amount})
	}
	return out, nil
}

func (c *Client) InitiatePayment(ctx context.Context, in ports.PaymentInitiation) (*ports.PaymentInitiationResult, error) {
	payload := paymentInitiationWire{
		UserID:       in.UserID,
		Subscription: in.Subscription,
		Amount:       in.Amount,
		Method:       in.Method,
	}
	var wire paymentInitiationResultWire
	if err := c.postJSON(ctx, "initiate_payment", "/api/payment/initiate", payload, &wire); err != nil {
		return nil, err
	}
	return &ports.PaymentInitiationResult{
		TransactionID: wire.TransactionID,
		Status:        domain.PaymentStatus(wire.Status),
	}, nil
}

// --- Users ---

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var wire []userWire
	if err := c.getJSON(ctx, "list_users", "/api/user", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	var wire countWire
	if err := c.getJSON(ctx, "count_users", "/api/user/count", nil, &wire); err != nil {
		return 0, err
	}
	return wire.Count, nil
}

func (c *Client) UserStats(ctx context.Context) ([]domain.MonthlyCount, error) {
	var wire []monthlyUsersWire
	if err := c.getJSON(ctx, "user_stats", "/api/user/stat", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.MonthlyCount, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.MonthlyCount{Month: w.Month, Count: w.Users})
	}
	return out, nil
}

// --- Reference catalogs ---

func (c *Client) ListTypes(ctx context.Context) ([]domain.DatasetType, error) {
	var wire []typeWire
	if err := c.getJSON(ctx, "list_types", "/api/types", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.DatasetType, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.DatasetType{ID: w.ID, Name: w.Name})
	}
	return out, nil
}

func (c *Client) ListCountries(ctx context.Context) ([]domain.Country, error) {
	var wire []countryWire
	if err := c.getJSON(ctx, "list_countries", "/api/types/pays", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Country, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.Country{ID: w.ID, Name: w.Name})
	}
	return out, nil
}

func (c *Client) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var wire []regionWire
	if err := c.getJSON(ctx, "list_regions", "/api/types/province", nil, &wire); err != nil {
		return nil, err
	}
	out := make([]domain.Region, 0, len(wire))
	for _, w := range wire {
		out = append(out, domain.Region{ID: w.ID, Name: w.NameFR})
	}
	return out, nil
}
