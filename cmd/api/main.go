// Command api runs the tick sighting HTTP service.
//
// On first startup (no database file yet) it seeds the store from the
// historical sightings CSV before accepting requests.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/tick-sighting-api/internal/adapter/http"
	"github.com/couchcryptid/tick-sighting-api/internal/config"
	"github.com/couchcryptid/tick-sighting-api/internal/ingest"
	"github.com/couchcryptid/tick-sighting-api/internal/observability"
	"github.com/couchcryptid/tick-sighting-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// The seed import is gated on the database file not existing yet, so it
	// runs at most once per deployment.
	firstRun := !store.Exists(cfg.DBPath)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if firstRun {
		importer := ingest.New(st, logger, metrics)
		if _, err := importer.Run(ctx, cfg.SeedCSV); err != nil {
			// Row-level problems never reach here; this is a storage fault.
			logger.Error("seed import failed", "error", err)
			_ = st.Close()
			os.Exit(1)
		}
	} else {
		logger.Info("store already exists, skipping seed import", "path", cfg.DBPath)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, st, st, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := st.Close(); err != nil {
		logger.Error("store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
