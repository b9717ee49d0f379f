package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pauljones0/skysold-bot/internal/config"
	"github.com/pauljones0/skysold-bot/internal/hypixel"
	"github.com/pauljones0/skysold-bot/internal/logging"
	"github.com/pauljones0/skysold-bot/internal/notifier"
	"github.com/pauljones0/skysold-bot/internal/processor"
	"github.com/pauljones0/skysold-bot/internal/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped.")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("critical error loading configuration: %w", err)
	}

	logger, logCloser := logging.Setup(cfg.LogLevel, cfg.LogFile)
	defer logCloser.Close()
	slog.SetDefault(logger)
	slog.Info("Starting SkyBlock sold auction bot...", "player", cfg.Player, "min_price", cfg.MinPrice, "interval", cfg.FetchInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var ledger processor.SaleLedger
	if cfg.ProjectID != "" {
		store, err := storage.New(ctx, cfg.ProjectID)
		if err != nil {
			return fmt.Errorf("critical error initializing Firestore client: %w", err)
		}
		defer store.Close()
		ledger = store
	}

	fetcher := hypixel.New(cfg.HypixelAPIKey, hypixel.WithBaseURL(cfg.HypixelAPIURL))
	n := notifier.New(cfg.DiscordWebhookURL, cfg.NotificationTitle)
	p := processor.New(fetcher, n, ledger, cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `{"status":"ok"}`)
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening on port", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := p.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	// Graceful shutdown on SIGTERM/SIGINT or when the poll loop stops.
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
