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

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iakhil/phronesis/internal/bot"
	"github.com/iakhil/phronesis/internal/config"
	"github.com/iakhil/phronesis/internal/content"
	"github.com/iakhil/phronesis/internal/daily"
	"github.com/iakhil/phronesis/internal/gemini"
	"github.com/iakhil/phronesis/internal/logger"
	"github.com/iakhil/phronesis/internal/metrics"
	"github.com/iakhil/phronesis/internal/orchestrator"
	"github.com/iakhil/phronesis/internal/server"
	"github.com/iakhil/phronesis/internal/store"
	storefactory "github.com/iakhil/phronesis/internal/store/factory"
)

type serveFlags struct {
	ConfigPath string
	Listen     string
}

func runServe(flags *serveFlags) error {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	if flags.Listen != "" {
		cfg.Server.Listen = flags.Listen
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Color)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	if cfg.Daily.APIKey == "" {
		slog.Warn("DAILY_API_KEY not set; room provisioning will fail")
	}
	if cfg.Bot.Command == "" {
		slog.Warn("bot command not configured; connect requests will fail to spawn")
	}

	var st store.Store
	if cfg.Store.DSN != "" {
		st, err = storefactory.NewFromDSN(cfg.Store.DSN)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = st.EnsureSchema(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("ensure store schema: %w", err)
		}
	}

	mgr := bot.NewManager(cfg.Bot)
	svc := orchestrator.NewService(daily.New(cfg.Daily), mgr)
	cs := content.NewService(gemini.New(cfg.Gemini), st)

	router := server.NewRouter(svc, cs, server.Options{
		MeetingDomain: cfg.Server.MeetingDomain,
		StaticDir:     cfg.Server.StaticDir,
	})
	srv := server.NewServer(cfg.Server.Listen, router.Handler())

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", "err", err)
	}
	svc.Shutdown()
	return nil
}
