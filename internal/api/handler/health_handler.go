package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/geodonnees/admin-console/internal/core/ports"
)

const readinessTimeout = 3 * time.Second

// HealthHandler exposes the liveness and readiness probes. Readiness checks
// that the upstream platform answers; the console is useless without it.
type HealthHandler struct {
	upstream ports.UpstreamAPI
}

func NewHealthHandler(upstream ports.UpstreamAPI) *HealthHandler {
	return &HealthHandler{upstream: upstream}
}

// Live reports that the process is up.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the upstream platform is reachable.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if _, err := h.upstream.CountDatasets(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  "upstream unreachable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
