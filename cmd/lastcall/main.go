package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dcall/lastcall/internal/api"
	"github.com/dcall/lastcall/internal/cdr"
	"github.com/dcall/lastcall/internal/config"
	"github.com/dcall/lastcall/internal/history"
	"github.com/dcall/lastcall/internal/ingest"
	"github.com/dcall/lastcall/internal/pbx"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("lastcall starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := cdr.NewStore()

	// Historical seed. Failure here is non-fatal: the service still serves
	// live-ingested calls, just without the trailing window.
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set — starting with an empty store")
	} else {
		seedStore(ctx, cfg, store)
	}

	// Live call-completion events
	bus, err := pbx.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to event bus", "error", err)
		os.Exit(1)
	}
	defer bus.Close()
	slog.Info("event bus connected", "url", cfg.NatsURL)

	ing := ingest.New(store, slog.Default())
	go ing.Run(ctx)

	if err := bus.Subscribe(cfg.CDRSubject, ing.HandleCDR); err != nil {
		slog.Error("failed to subscribe to cdr events", "error", err)
		os.Exit(1)
	}

	// HTTP API
	srv := api.NewServer(store, cfg.Port)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("lastcall ready", "port", cfg.Port, "records", store.Len())

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("lastcall stopped")
}

func seedStore(ctx context.Context, cfg config.Config, store *cdr.Store) {
	loader, err := history.New(ctx, cfg.DatabaseURL, cfg.HistoryWindowDays, slog.Default())
	if err != nil {
		slog.Error("failed to connect to history database", "error", err)
		return
	}
	defer loader.Close()

	records, err := loader.Load(ctx)
	if err != nil {
		slog.Error("historical load failed", "error", err)
		return
	}
	store.Seed(records)
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
