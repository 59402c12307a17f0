package upstream

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/geodonnees/admin-console/internal/core/domain"
)

// Wire types mirror the upstream JSON shapes (French field names). They are
// parsed into domain types here so nothing dynamic leaks past this package.

// wireTime accepts the date layouts the platform is known to emit. A null,
// empty or unparseable value decodes to the zero time rather than failing the
// whole payload.
type wireTime struct {
	t time.Time
}

var wireTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (w *wireTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		w.t = time.Time{}
		return nil
	}
	for _, layout := range wireTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			w.t = t
			return nil
		}
	}
	w.t = time.Time{}
	return nil
}

func (w wireTime) ptr() *time.Time {
	if w.t.IsZero() {
		return nil
	}
	t := w.t
	return &t
}

type countWire struct {
	Count int64 `json:"count"`
}

type datasetWire struct {
	ID           int64           `json:"id_donnee"`
	TypeID       int64           `json:"id_type"`
	Title        string          `json:"titre"`
	Country      string          `json:"pays"`
	Region       string          `json:"region"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Description  string          `json:"description"`
	CollectedAt  wireTime        `json:"date_collecte"`
	Access       string          `json:"acces"`
	FileURL      string          `json:"fichier_url"`
	ThumbnailURL string          `json:"vignette_url"`
	Meta         json.RawMessage `json:"meta"`
}

func (w datasetWire) toDomain() domain.Dataset {
	meta := strings.Trim(string(w.Meta), `"`)
	if meta == "null" {
		meta = ""
	}
	return domain.Dataset{
		ID:           w.ID,
		TypeID:       w.TypeID,
		Title:        w.Title,
		Country:      w.Country,
		Region:       w.Region,
		Latitude:     w.Latitude,
		Longitude:    w.Longitude,
		Description:  w.Description,
		CollectedAt:  w.CollectedAt.ptr(),
		Access:       domain.AccessLevel(w.Access),
		FileURL:      w.FileURL,
		ThumbnailURL: w.ThumbnailURL,
		Meta:         meta,
	}
}

type paymentWire struct {
	ID            int64    `json:"id_payments"`
	UserName      string   `json:"nom"`
	Subscription  string   `json:"name"`
	Amount        float64  `json:"amount"`
	Method        string   `json:"payment_method"`
	TransactionID string   `json:"transaction_id"`
	PaidAt        wireTime `json:"payment_date"`
	Status        string   `json:"status"`
}

func (w paymentWire) toDomain() domain.Payment {
	return domain.Payment{
		ID:            w.ID,
		UserName:      w.UserName,
		Subscription:  w.Subscription,
		Amount:        w.Amount,
		Method:        w.Method,
		TransactionID: w.TransactionID,
		PaidAt:        w.PaidAt.ptr(),
		Status:        domain.PaymentStatus(w.Status),
	}
}

type userWire struct {
	ID               int64    `json:"id"`
	Name             string   `json:"nom"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Role             string   `json:"role"`
	SubscriptionEnds wireTime `json:"abonnement_expires_le"`
	CreatedAt        wireTime `json:"created_at"`
}

func (w userWire) toDomain() domain.User {
	return domain.User{
		ID:               w.ID,
		Name:             w.Name,
		Email:            w.Email,
		Phone:            w.Phone,
		Role:             domain.Role(w.Role),
		SubscriptionEnds: w.SubscriptionEnds.ptr(),
		CreatedAt:        w.CreatedAt.ptr(),
	}
}

type monthlyAmountWire struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type monthlyUsersWire struct {
	Month string `json:"month"`
	Users int64  `json:"users"`
}

type typeWire struct {
	ID   int64  `json:"id_type"`
	Name string `json:"nom_type"`
}

type countryWire struct {
	ID   int64  `json:"id_pays"`
	Name string `json:"nom_pays"`
}

type regionWire struct {
	ID     int64  `json:"id"`
	NameFR string `json:"name_fr"`
}

type paymentInitiationWire struct {
	UserID       int64   `json:"id_user"`
	Subscription string  `json:"name"`
	Amount       float64 `json:"amount"`
	Method       string  `json:"payment_method"`
}

type paymentInitiationResultWire struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}
