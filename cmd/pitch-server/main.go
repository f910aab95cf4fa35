// cmd/pitch-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"pitchforge/internal/common/config"
	"pitchforge/internal/common/logger"
	"pitchforge/internal/common/observability"
	"pitchforge/internal/pipeline"
	"pitchforge/internal/providers"
	"pitchforge/internal/server"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting pitch server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild with the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.Observability.ServiceName)
	defer obs.Shutdown()

	if cfg.Observability.TracingEnabled {
		if err := obs.EnableTracing(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint); err != nil {
			zapLog.Warn("tracing setup failed, continuing without it", zap.Error(err))
		}
	}

	ctx := context.Background()

	// --- Init Provider Chain ---
	chain, err := providers.BuildChain(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("provider chain initialization failed", zap.Error(err))
	}
	zapLog.Info("Provider chain initialized",
		zap.Strings("providers", chain.Names()),
		zap.Bool("mockMode", cfg.Generation.MockMode),
		zap.Bool("geminiConfigured", cfg.GeminiConfigured()),
		zap.Bool("openaiConfigured", cfg.OpenAIConfigured()),
	)

	generator := pipeline.New(cfg, chain, obs, log)
	srv := server.New(cfg, generator, log)

	// --- HTTP Server ---
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		zapLog.Fatal("server failed", zap.Error(err))
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received, stopping server...", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("Pitch server stopped gracefully")
}
