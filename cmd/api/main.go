// Package main starts an HTTP server that provides endpoints for health checks
// and pipeline validation. It uses the internal handlers package to process
// incoming requests and return JSON responses.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"github.com/pipelinecheck/core/cmd/api/middleware"
	"github.com/pipelinecheck/core/internal/config"
	"github.com/pipelinecheck/core/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		hclog.Default().Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) hclog.Logger {
	jsonFormat := cfg.LogFormat == "json"
	if cfg.LogFormat == "auto" {
		jsonFormat = !isatty.IsTerminal(os.Stdout.Fd())
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       handlers.ServiceName,
		Level:      hclog.LevelFromString(cfg.LogLevel),
		Output:     os.Stdout,
		JSONFormat: jsonFormat,
		Color:      hclog.AutoColor,
	})
}

func newRouter(cfg *config.Config, logger hclog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handlers.RootHandler)
	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.Handle("/pipelines/parse", handlers.NewParseHandler(logger.Named("pipelines"), cfg.MaxBodyBytes))

	httpLog := logger.Named("http")
	return middleware.Chain(mux,
		middleware.Logging(httpLog),
		middleware.Recover(httpLog),
		middleware.Cors(middleware.CorsConfig{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowCredentials: cfg.AllowCredentials,
		}),
	)
}

func run(ctx context.Context, cfg *config.Config, logger hclog.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(cfg, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 server starting", "addr", srv.Addr, "allowed_origins", cfg.AllowedOrigins)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
