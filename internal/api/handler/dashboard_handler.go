package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
)

// DashboardHandler serves the overview screen: three counters and two
// monthly charts.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type chartPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// chart renders as a placeholder when its series failed to load or came back
// empty.
type chart struct {
	Points      []chartPoint `json:"points"`
	Placeholder bool         `json:"placeholder"`
}

type dashboardCounters struct {
	Users    int64 `json:"utilisateurs"`
	Payments int64 `json:"paiements"`
	Datasets int64 `json:"donnees"`
}

type dashboardResponse struct {
	Counters dashboardCounters `json:"counters"`
	Payments chart             `json:"payments_chart"`
	Users    chart             `json:"users_chart"`
	Failed   []string          `json:"failed,omitempty"`
	Notice   string            `json:"notice,omitempty"`
}

// Overview renders the dashboard snapshot. Stat sources that failed keep
// their widgets at zero/placeholder; the rest still display.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       / [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	snap := h.service.Load(c.Request().Context())

	resp := dashboardResponse{
		Counters: dashboardCounters{
			Users:    snap.Users,
			Payments: snap.Payments,
			Datasets: snap.Datasets,
		},
		Payments: paymentChart(snap.PaymentSeries),
		Users:    userChart(snap.UserSeries),
		Failed:   snap.Failed,
	}
	if snap.Degraded() {
		resp.Notice = "some statistics could not be loaded"
	}

	return c.JSON(http.StatusOK, resp)
}

func paymentChart(series []domain.MonthlyAmount) chart {
	points := make([]chartPoint, 0, len(series))
	for _, p := range series {
		points = append(points, chartPoint{Month: p.Month, Value: p.Amount})
	}
	return chart{Points: points, Placeholder: len(points) == 0}
}

func userChart(series []domain.MonthlyCount) chart {
	points := make([]chartPoint, 0, len(series))
	for _, p := range series {
		points = append(points, chartPoint{Month: p.Month, Value: float64(p.Count)})
	}
	return chart{Points: points, Placeholder: len(points) == 0}
}
