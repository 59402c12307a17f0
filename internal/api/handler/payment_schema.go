package handler

import (
	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/presenter"
)

// paymentRow is one table row of the paiement screen. Fully presented: the
// screen is read-only, so no raw values are needed beyond the id.
type paymentRow struct {
	ID            int64         `json:"id_payments"`
	UserName      string        `json:"nom"`
	Subscription  string        `json:"name"`
	Amount        string        `json:"amount"`
	Method        string        `json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
	PaidAt        string        `json:"payment_date"`
	Status        presenter.Tag `json:"status"`
}

type paymentListResponse struct {
	screenMeta
	Rows []paymentRow `json:"rows"`
}

type initiatePaymentRequest struct {
	UserID       int64   `json:"id_user"        validate:"required,gt=0"`
	Subscription string  `json:"name"           validate:"required"`
	Amount       float64 `json:"amount"         validate:"required,gt=0"`
	Method       string  `json:"payment_method" validate:"required"`
}

type initiatePaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

func toPaymentRow(p domain.Payment) paymentRow {
	return paymentRow{
		ID:            p.ID,
		UserName:      p.UserName,
		Subscription:  p.Subscription,
		Amount:        presenter.Amount(p.Amount),
		Method:        p.Method,
		TransactionID: p.TransactionID,
		PaidAt:        presenter.DateTime(p.PaidAt),
		Status:        presenter.PaymentStatus(p.Status),
	}
}
