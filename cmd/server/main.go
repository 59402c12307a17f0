package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geodonnees/admin-console/internal/api"
	"github.com/geodonnees/admin-console/internal/infrastructure/config"
	"github.com/geodonnees/admin-console/internal/upstream"
	"github.com/geodonnees/admin-console/pkg/logger"
)

// @title        Geodonnees Admin Console API
// @version      1.0
// @description  Back-office console for the geodonnees data platform.
// @BasePath     /

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New("info", "")
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.Env)

	up, err := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build upstream client")
	}

	router := api.NewRouter(cfg, up, log)
	defer router.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.Echo,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
