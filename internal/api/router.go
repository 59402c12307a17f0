package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/geodonnees/admin-console/docs"
	"github.com/geodonnees/admin-console/internal/api/handler"
	"github.com/geodonnees/admin-console/internal/api/middleware"
	"github.com/geodonnees/admin-console/internal/core/domain"
	"github.com/geodonnees/admin-console/internal/core/ports"
	"github.com/geodonnees/admin-console/internal/core/service"
	"github.com/geodonnees/admin-console/internal/core/view"
	"github.com/geodonnees/admin-console/internal/infrastructure/config"
)

// Screen page sizes. The utilisateurs table is denser and shows fewer rows.
const (
	datasetPageSize = 10
	paymentPageSize = 10
	userPageSize    = 8
)

// Router bundles the Echo instance with the collections it owns, so the
// caller can close in-flight refreshes on shutdown.
type Router struct {
	Echo *echo.Echo

	datasets *view.Collection[domain.Dataset]
	payments *view.Collection[domain.Payment]
	users    *view.Collection[domain.User]
}

// Close cancels any in-flight collection refresh.
func (r *Router) Close() {
	r.datasets.Close()
	r.payments.Close()
	r.users.Close()
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, up ports.UpstreamAPI, log zerolog.Logger) *Router {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	// HTTP metrics live in a per-router registry so building a second router
	// never collides on registration; the exposition handler also gathers the
	// default registry, where the console's own counters are registered.
	registry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "console",
		Registerer: registry,
	}))

	// --- Services ---
	authService := service.NewAuthService(
		cfg.Session.Username,
		cfg.Session.PasswordHash,
		cfg.Session.Secret,
		cfg.Session.TTL,
		log,
	)
	datasetService := service.NewDatasetService(up, log)
	dashboardService := service.NewDashboardService(up, log)

	// --- Per-screen collections ---
	datasets := view.NewCollection("donnees", datasetPageSize, up.ListDatasets, log)
	payments := view.NewCollection("paiement", paymentPageSize, up.ListPayments, log)
	users := view.NewCollection("utilisateurs", userPageSize, up.ListUsers, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.Session.TTL)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	datasetHandler := handler.NewDatasetHandler(datasetService, datasets)
	paymentHandler := handler.NewPaymentHandler(up, payments)
	userHandler := handler.NewUserHandler(users)
	healthHandler := handler.NewHealthHandler(up)

	// --- Public routes ---
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{registry, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Protected screens ---
	session := middleware.Session(authService)
	e.GET("/", dashboardHandler.Overview, session)
	e.GET("/donnees", datasetHandler.List, session)
	e.POST("/donnees", datasetHandler.Submit, session)
	e.GET("/donnees/one", datasetHandler.One, session)
	e.GET("/donnees/form", datasetHandler.Form, session)
	e.GET("/paiement", paymentHandler.List, session)
	e.POST("/paiement/initiate", paymentHandler.Initiate, session)
	e.GET("/utilisateurs", userHandler.List, session)

	return &Router{
		Echo:     e,
		datasets: datasets,
		payments: payments,
		users:    users,
	}
}
