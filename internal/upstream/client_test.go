package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, 5*time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, srv
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := New("localhost:3000", 0, zerolog.Nop()); err == nil {
		t.Error("expected error for URL without scheme")
	}
	if _, err := New("", 0, zerolog.Nop()); err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestListDatasets_ParsesWirePayload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/donnees" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id_donnee":7,"id_type":2,"titre":"Relevé pluies","pays":"Cameroun","region":"Littoral",
			 "latitude":4.05,"longitude":9.7,"date_collecte":"2024-06-10","acces":"public",
			 "fichier_url":"/files/7.csv","vignette_url":"/thumbs/7.png","meta":{"source":"station"}},
			{"id_donnee":8,"titre":"Sans date","acces":"abonne","date_collecte":null}
		]`))
	}))

	got, err := c.ListDatasets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(got))
	}

	d := got[0]
	if d.ID != 7 || d.Title != "Relevé pluies" || d.Access != domain.AccessPublic {
		t.Errorf("first dataset mismapped: %+v", d)
	}
	if d.CollectedAt == nil || d.CollectedAt.Format("2006-01-02") != "2024-06-10" {
		t.Errorf("date_collecte not parsed: %v", d.CollectedAt)
	}
	if d.Latitude == nil || *d.Latitude != 4.05 {
		t.Errorf("latitude not parsed: %v", d.Latitude)
	}
	if d.Meta == "" {
		t.Error("meta should carry the raw JSON text")
	}
	if got[1].CollectedAt != nil {
		t.Errorf("null date must map to nil, got %v", got[1].CollectedAt)
	}
}

func TestListDatasets_EmptyCollection(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	got, err := c.ListDatasets(context.Background())
	if err != nil {
		t.Fatalf("empty list must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 datasets, got %d", len(got))
	}
}

func TestDo_NonSuccessStatusIsStatusError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.ListPayments(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", se.Code)
	}
	if se.Body != "boom" {
		t.Errorf("expected body to be preserved, got %q", se.Body)
	}
}

func TestDo_TransportFailureWrapsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // connection refused from here on

	c, err := New(url, time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = c.CountUsers(context.Background())
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestGetDataset_NotFoundMapsToSentinel(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "42" {
			t.Errorf("expected id=42, got %q", got)
		}
		http.Error(w, "no such record", http.StatusNotFound)
	}))

	_, err := c.GetDataset(context.Background(), 42)
	if !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Errorf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestCountEndpoints(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/donnees/count", "/api/payment/count", "/api/user/count":
			_, _ = w.Write([]byte(`{"count":12}`))
		default:
			http.NotFound(w, r)
		}
	}))

	ctx := context.Background()
	for name, fn := range map[string]func(context.Context) (int64, error){
		"datasets": c.CountDatasets,
		"payments": c.CountPayments,
		"users":    c.CountUsers,
	} {
		n, err := fn(ctx)
		if err != nil {
			t.Fatalf("%s count: %v", name, err)
		}
		if n != 12 {
			t.Errorf("%s count: expected 12, got %d", name, n)
		}
	}
}

func TestStats_ParseSeries(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/payment/stat":
			_, _ = w.Write([]byte(`[{"month":"2025-01","amount":1200.5},{"month":"2025-02","amount":900}]`))
		case "/api/user/stat":
			_, _ = w.Write([]byte(`[{"month":"2025-01","users":4}]`))
		default:
			http.NotFound(w, r)
		}
	}))

	pay, err := c.PaymentStats(context.Background())
	if err != nil {
		t.Fatalf("payment stats: %v", err)
	}
	if len(pay) != 2 || pay[0].Amount != 1200.5 {
		t.Errorf("payment series mismapped: %+v", pay)
	}

	users, err := c.UserStats(context.Background())
	if err != nil {
		t.Fatalf("user stats: %v", err)
	}
	if len(users) != 1 || users[0].Count != 4 {
		t.Errorf("user series mismapped: %+v", users)
	}
}

func TestSubmitDataset_MultipartEncoding(t *testing.T) {
	lat, lng := 4.345678, 15.345678
	collected := time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/donnees" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		want := map[string]string{
			"id_type":       "2",
			"titre":         "Relevé",
			"pays":          "Cameroun",
			"region":        "Littoral",
			"latitude":      "4.345678",
			"longitude":     "15.345678",
			"date_collecte": "2024-11-03",
			"acces":         "abonne",
			"meta":          `{"a":1}`,
		}
		for field, expected := range want {
			if got := r.FormValue(field); got != expected {
				t.Errorf("field %s: expected %q, got %q", field, expected, got)
			}
		}

		file, header, err := r.FormFile("fichier")
		if err != nil {
			t.Fatalf("fichier part missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "data.csv" {
			t.Errorf("expected filename data.csv, got %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "a;b;c" {
			t.Errorf("file content mismatch: %q", content)
		}

		if _, _, err := r.FormFile("vignette"); err == nil {
			t.Error("vignette was not supplied and must be absent")
		}

		w.WriteHeader(http.StatusCreated)
	}))

	err := c.SubmitDataset(context.Background(), ports.DatasetSubmission{
		TypeID:      2,
		Title:       "Relevé",
		Country:     "Cameroun",
		Region:      "Littoral",
		Latitude:    &lat,
		Longitude:   &lng,
		CollectedAt: &collected,
		Access:      domain.AccessSubscriber,
		Meta:        `{"a":1}`,
		File:        &ports.Attachment{Filename: "data.csv", Content: []byte("a;b;c")},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestListCatalogs(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/types":
			_, _ = w.Write([]byte(`[{"id_type":1,"nom_type":"Climat"}]`))
		case "/api/types/pays":
			_, _ = w.Write([]byte(`[{"id_pays":3,"nom_pays":"Cameroun"}]`))
		case "/api/types/province":
			_, _ = w.Write([]byte(`[{"id":9,"name_fr":"Littoral"}]`))
		default:
			http.NotFound(w, r)
		}
	}))

	ctx := context.Background()
	types, err := c.ListTypes(ctx)
	if err != nil || len(types) != 1 || types[0].Name != "Climat" {
		t.Errorf("types: err=%v got=%+v", err, types)
	}
	countries, err := c.ListCountries(ctx)
	if err != nil || len(countries) != 1 || countries[0].Name != "Cameroun" {
		t.Errorf("countries: err=%v got=%+v", err, countries)
	}
	regions, err := c.ListRegions(ctx)
	if err != nil || len(regions) != 1 || regions[0].Name != "Littoral" {
		t.Errorf("regions: err=%v got=%+v", err, regions)
	}
}
