package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/harena/myshop/internal/config"
	"github.com/harena/myshop/internal/events"
	"github.com/harena/myshop/internal/handlers"
	"github.com/harena/myshop/internal/logging"
	"github.com/harena/myshop/internal/store"
	httpserver "github.com/harena/myshop/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("open store", "err", err)
		os.Exit(1)
	}
	if err := st.Initialize(context.Background()); err != nil {
		logger.Error("initialize schema", "err", err)
		os.Exit(1)
	}
	logger.Info("store ready", "path", cfg.DBPath, "schema_version", store.SchemaVersion)

	producer := events.NewProducer(cfg.KafkaBrokers, "shop_events")

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Store: st, JWTSecret: cfg.JWTSecret, Producer: producer},
		CatalogHandler: &handlers.CatalogHandler{Store: st, Producer: producer},
		CartHandler:    &handlers.CartHandler{Store: st, JWTSecret: cfg.JWTSecret, Producer: producer},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	if err := st.Close(); err != nil {
		logger.Error("store close", "err", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("producer close", "err", err)
	}

	logger.Info("shutdown complete")
}
