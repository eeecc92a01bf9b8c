package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/focusd/internal/ai"
	"github.com/sandeepkv93/focusd/internal/config"
	"github.com/sandeepkv93/focusd/internal/logging"
	"github.com/sandeepkv93/focusd/internal/metrics"
	"github.com/sandeepkv93/focusd/internal/session"
	"github.com/sandeepkv93/focusd/internal/storage"
	"github.com/sandeepkv93/focusd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "focusd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := cfg.ResolveLogFile()
	if err != nil {
		return err
	}
	logger, logCloser, err := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
		File:        logFile,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	logger.Info().
		Str("environment", cfg.Environment).
		Str("storage", cfg.StorageBackend).
		Bool("ai_enabled", cfg.AIEnabled()).
		Bool("metrics_enabled", cfg.MetricsEnabled()).
		Msg("starting focusd")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	repo := storage.NewRepository(kv, logger)
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error().Err(err).Msg("close storage")
		}
	}()

	m := metrics.New()
	opts := []session.Option{session.WithLogger(logger), session.WithMetrics(m)}
	if cfg.AIEnabled() {
		client, err := newAIClient(cfg, logger, m)
		if err != nil {
			logger.Warn().Err(err).Msg("assistant disabled")
		} else {
			opts = append(opts, session.WithCollaborator(client))
		}
	} else {
		logger.Info().Msg("GROQ_API_KEY not set, assistant disabled")
	}

	sess := session.New(ctx, repo, session.Config{
		WakeInterval:    cfg.WakeInterval,
		DrainInterval:   cfg.DrainInterval,
		SnoozeDefault:   cfg.SnoozeDefault,
		SchedulerBuffer: cfg.SchedulerBuffer,
	}, opts...)

	if cfg.MetricsEnabled() {
		srv := serveMetrics(cfg.MetricsAddr, m, logger)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	runDone := make(chan error, 1)
	go func() { runDone <- sess.Run(ctx) }()

	program := tea.NewProgram(update.NewModel(ctx, sess, update.RuntimeConfigFrom(cfg)), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	cancel()
	<-runDone
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui: %w", err)
	}
	logger.Info().Msg("focusd stopped")
	return nil
}

func openStore(cfg *config.Config) (storage.KV, error) {
	path, err := cfg.ResolveStoragePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if cfg.StorageBackend == config.StorageFile {
		kv, err := storage.NewFileKV(path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	}
	kv, err := storage.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return kv, nil
}

func newAIClient(cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) (*ai.Client, error) {
	retry := ai.DefaultRetryConfig()
	retry.MaxAttempts = cfg.AIMaxRetries + 1
	return ai.NewClient(cfg.GroqAPIKey,
		ai.WithBaseURL(cfg.GroqBaseURL),
		ai.WithModel(cfg.GroqModel),
		ai.WithTimeout(cfg.AITimeout),
		ai.WithRetry(retry),
		ai.WithLogger(logger),
		ai.WithObserver(func(op, status string, elapsed time.Duration) {
			m.RecordAIRequest(op, status, elapsed.Seconds())
		}),
	)
}

func serveMetrics(addr string, m *metrics.Metrics, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", addr).Msg("metrics server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
	return srv
}
