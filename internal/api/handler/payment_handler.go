package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
	"github.com/geodonnees/admin-console/internal/core/view"
)

// PaymentHandler serves the read-only paiement screen and the payment
// initiation passthrough.
type PaymentHandler struct {
	upstream   ports.UpstreamAPI
	collection *view.Collection[domain.Payment]
}

func NewPaymentHandler(upstream ports.UpstreamAPI, collection *view.Collection[domain.Payment]) *PaymentHandler {
	return &PaymentHandler{upstream: upstream, collection: collection}
}

// List renders the payment table with an optional status filter and
// client-side sorting over the loaded snapshot.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        page    query  int     false  "Page number (1-based)"
// @Param        status  query  string  false  "Filter: success, failed, pending"
// @Param        sort    query  string  false  "Sort key: payment_date, amount"
// @Param        order   query  string  false  "asc or desc"
// @Success      200     {object}  paymentListResponse
// @Failure      502     {object}  map[string]string
// @Router       /paiement [get]
func (h *PaymentHandler) List(c echo.Context) error {
	err := h.collection.Refresh(c.Request().Context())
	snap := h.collection.Snapshot()
	if err != nil && !errors.Is(err, view.ErrSuperseded) && len(snap.Items) == 0 {
		return err
	}

	if status := domain.PaymentStatus(strings.TrimSpace(c.QueryParam("status"))); status != "" {
		snap = snap.Filter(func(p domain.Payment) bool { return p.Status == status })
	}

	sortKey, desc := querySort(c)
	snap = snap.Sort(paymentLess(sortKey), desc)

	items, pg := snap.Page(queryPage(c))
	rows := make([]paymentRow, 0, len(items))
	for _, p := range items {
		rows = append(rows, toPaymentRow(p))
	}

	return c.JSON(http.StatusOK, paymentListResponse{
		screenMeta: meta(snap, pg),
		Rows:       rows,
	})
}

func paymentLess(key string) func(a, b domain.Payment) bool {
	switch key {
	case "payment_date":
		return func(a, b domain.Payment) bool {
			if a.PaidAt == nil {
				return false
			}
			if b.PaidAt == nil {
				return true
			}
			return a.PaidAt.Before(*b.PaidAt)
		}
	case "amount":
		return func(a, b domain.Payment) bool { return a.Amount < b.Amount }
	default:
		return nil
	}
}

// Initiate relays a payment initiation to the platform. The console performs
// no payment logic of its own; it validates the shape and passes through.
//
// @Summary      Initiate a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      initiatePaymentRequest  true  "Payment details"
// @Success      202   {object}  initiatePaymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /paiement/initiate [post]
func (h *PaymentHandler) Initiate(c echo.Context) error {
	var req initiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.upstream.InitiatePayment(c.Request().Context(), ports.PaymentInitiation{
		UserID:       req.UserID,
		Subscription: req.Subscription,
		Amount:       req.Amount,
		Method:       req.Method,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, initiatePaymentResponse{
		TransactionID: result.TransactionID,
		Status:        string(result.Status),
	})
}
