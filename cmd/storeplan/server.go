package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/storekit/storeplan/internal/shell/api"
	"github.com/storekit/storeplan/internal/shell/store"
)

// =============================================================================
// serve
// =============================================================================

// runServe runs the HTTP resolve API until interrupted.
func runServe(cfg *Config, logger *slog.Logger) int {
	var s store.Store
	if cfg.Database.DSN != "" {
		sqlStore, err := store.NewSQLiteStore(cfg.Database.DSN)
		if err != nil {
			logger.Error("failed to open run history", "dsn", cfg.Database.DSN, "error", err)
			return ExitServerError
		}
		defer sqlStore.Close()
		s = sqlStore
	}

	handler := api.NewHandler(nil, s, cfg.Binding.Options(), logger)
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting storeplan server", "addr", server.Addr, "version", Version)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			return ExitServerError
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
			return ExitServerError
		}
	}
	return ExitSuccess
}
