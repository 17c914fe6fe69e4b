package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sachithsamaraweera/chaptersplit/internal/api"
	"github.com/sachithsamaraweera/chaptersplit/internal/config"
	"github.com/sachithsamaraweera/chaptersplit/internal/document"
	"github.com/sachithsamaraweera/chaptersplit/internal/export"
	"github.com/sachithsamaraweera/chaptersplit/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Session registry with background TTL eviction.
	store := session.NewStore(cfg.SessionTTL, cfg.MaxSessions)
	store.Start(ctx)

	loader := document.NewLoader(log)
	exporter := export.NewExporter(log, export.NewStats(time.Hour))

	srv := api.NewServer(store, loader, exporter, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		store.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting chaptersplit", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
